package policy

import (
	"fmt"
	"iter"
)

const DefaultMaxYields = 1024

// YieldLimiter counts items produced by an enumeration and fails once a
// maximum is passed.
type YieldLimiter struct {
	max   int
	count int
}

// NewYieldLimiter creates a limiter allowing at most limit items
func NewYieldLimiter(limit int) *YieldLimiter {
	return &YieldLimiter{max: limit}
}

// Increment records one item. It returns ErrQuotaExceeded when the item
// would go past the maximum.
func (l *YieldLimiter) Increment() error {
	l.count++
	if l.count > l.max {
		return fmt.Errorf("%w: more than %d policy alternatives enumerated", ErrQuotaExceeded, l.max)
	}
	return nil
}

// Count returns the number of items recorded so far
func (l *YieldLimiter) Count() int {
	return l.count
}

// Each yields the alternatives of a single scope
func Each(alternatives []Alternative) iter.Seq2[Alternative, error] {
	return func(yield func(Alternative, error) bool) {
		for _, a := range alternatives {
			if !yield(a, nil) {
				return
			}
		}
	}
}

// CrossProduct lazily yields every alternative of left merged with every
// alternative of right, left-major. After maxYields items it yields
// ErrQuotaExceeded and stops. Each iteration starts a fresh count.
func CrossProduct(left, right []Alternative, maxYields int) iter.Seq2[Alternative, error] {
	return func(yield func(Alternative, error) bool) {
		limiter := NewYieldLimiter(maxYields)
		for _, l := range left {
			for _, r := range right {
				if err := limiter.Increment(); err != nil {
					yield(nil, err)
					return
				}
				merged := make(Alternative, 0, len(l)+len(r))
				merged = append(merged, l...)
				merged = append(merged, r...)
				if !yield(merged, nil) {
					return
				}
			}
		}
	}
}

// Combinations lazily yields one pick from every set, varying the last set
// fastest. No sets yield one empty combination; an empty set yields none.
func Combinations[T any](sets [][]T) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for _, set := range sets {
			if len(set) == 0 {
				return
			}
		}

		index := make([]int, len(sets))
		for {
			combination := make([]T, len(sets))
			for i, set := range sets {
				combination[i] = set[index[i]]
			}
			if !yield(combination) {
				return
			}

			i := len(sets) - 1
			for ; i >= 0; i-- {
				index[i]++
				if index[i] < len(sets[i]) {
					break
				}
				index[i] = 0
			}
			if i < 0 {
				return
			}
		}
	}
}
