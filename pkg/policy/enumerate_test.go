package policy

import (
	"testing"

	"github.com/pyneda/wsimport/pkg/xmlnode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alternativesOf(localNames ...string) []Alternative {
	result := make([]Alternative, 0, len(localNames))
	for _, name := range localNames {
		e := &xmlnode.Element{}
		e.Name.Local = name
		result = append(result, Alternative{e})
	}
	return result
}

func TestCrossProduct(t *testing.T) {
	left := alternativesOf("a", "b")
	right := alternativesOf("x", "y", "z")

	var got []Alternative
	for alt, err := range CrossProduct(left, right, DefaultMaxYields) {
		require.NoError(t, err)
		got = append(got, alt)
	}
	assert.Equal(t, []string{"a,x", "a,y", "a,z", "b,x", "b,y", "b,z"}, names(got))

	// restartable: a second pass yields the same sequence
	count := 0
	for _, err := range CrossProduct(left, right, DefaultMaxYields) {
		require.NoError(t, err)
		count++
	}
	assert.Equal(t, 6, count)
}

func TestCrossProductQuota(t *testing.T) {
	left := alternativesOf("a", "b", "c", "d")
	right := alternativesOf("w", "x", "y", "z")

	yielded := 0
	var quotaErr error
	for _, err := range CrossProduct(left, right, 10) {
		if err != nil {
			quotaErr = err
			break
		}
		yielded++
	}
	assert.Equal(t, 10, yielded)
	assert.ErrorIs(t, quotaErr, ErrQuotaExceeded)
}

func TestCrossProductEarlyStop(t *testing.T) {
	left := alternativesOf("a", "b")
	right := alternativesOf("x", "y")

	var first Alternative
	for alt, err := range CrossProduct(left, right, 1) {
		require.NoError(t, err)
		first = alt
		break
	}
	assert.Equal(t, []string{"a,x"}, names([]Alternative{first}))
}

func TestEach(t *testing.T) {
	count := 0
	for _, err := range Each(alternativesOf("a", "b", "c")) {
		require.NoError(t, err)
		count++
	}
	assert.Equal(t, 3, count)
}

func TestCombinations(t *testing.T) {
	var got [][]int
	for c := range Combinations([][]int{{1, 2}, {3}, {4, 5}}) {
		got = append(got, c)
	}
	assert.Equal(t, [][]int{{1, 3, 4}, {1, 3, 5}, {2, 3, 4}, {2, 3, 5}}, got)

	got = nil
	for c := range Combinations[int](nil) {
		got = append(got, c)
	}
	assert.Equal(t, [][]int{{}}, got)

	got = nil
	for c := range Combinations([][]int{{1}, {}}) {
		got = append(got, c)
	}
	assert.Empty(t, got)
}

func TestYieldLimiter(t *testing.T) {
	l := NewYieldLimiter(2)
	assert.NoError(t, l.Increment())
	assert.NoError(t, l.Increment())
	assert.ErrorIs(t, l.Increment(), ErrQuotaExceeded)
	assert.Equal(t, 3, l.Count())
}
