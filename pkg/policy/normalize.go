package policy

import (
	"fmt"

	"github.com/pyneda/wsimport/pkg/xmlnode"
)

const (
	DefaultMaxNodes      = 4096
	DefaultMaxAssertions = 1024
)

// Resolver looks up the target of a policy reference. context is the
// top-level policy element the reference was found in, or nil for
// references attached directly to a WSDL item.
type Resolver interface {
	ResolvePolicyReference(uri string, context *xmlnode.Element) *xmlnode.Element
}

// ResolverFunc adapts a function to the Resolver interface
type ResolverFunc func(uri string, context *xmlnode.Element) *xmlnode.Element

func (f ResolverFunc) ResolvePolicyReference(uri string, context *xmlnode.Element) *xmlnode.Element {
	return f(uri, context)
}

// Normalizer reduces policy expressions to alternatives.
//
// Policy and All are conjunctions, ExactlyOne is a disjunction and
// PolicyReference is replaced by its target. An assertion marked
// wsp:Optional="true" yields one alternative with it and one without.
// References that cannot be resolved, or that refer back to a policy
// being expanded, are reported through Warn and ignored.
type Normalizer struct {
	Resolver      Resolver
	MaxNodes      int
	MaxAssertions int
	Warn          func(message string)
}

// NewNormalizer creates a Normalizer with the default limits
func NewNormalizer(resolver Resolver) *Normalizer {
	return &Normalizer{
		Resolver:      resolver,
		MaxNodes:      DefaultMaxNodes,
		MaxAssertions: DefaultMaxAssertions,
	}
}

type normalization struct {
	*Normalizer
	nodes     int
	resolving map[*xmlnode.Element]bool
}

// Normalize merges the given policies (all of which apply) into one list of
// alternatives. No policies yield a single empty alternative.
func (n *Normalizer) Normalize(policies ...*xmlnode.Element) ([]Alternative, error) {
	state := &normalization{Normalizer: n, resolving: make(map[*xmlnode.Element]bool)}
	result := []Alternative{{}}
	for _, p := range policies {
		state.resolving[p] = true
		alternatives, err := state.node(p, p)
		delete(state.resolving, p)
		if err != nil {
			return nil, err
		}
		if result, err = state.conjoin(result, alternatives); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (s *normalization) node(e, root *xmlnode.Element) ([]Alternative, error) {
	s.nodes++
	if s.MaxNodes > 0 && s.nodes > s.MaxNodes {
		return nil, fmt.Errorf("%w: policy has more than %d nodes", ErrQuotaExceeded, s.MaxNodes)
	}

	switch Classify(e) {
	case NodePolicy, NodeAll:
		result := []Alternative{{}}
		for _, child := range e.Children {
			alternatives, err := s.node(child, root)
			if err != nil {
				return nil, err
			}
			if result, err = s.conjoin(result, alternatives); err != nil {
				return nil, err
			}
		}
		return result, nil

	case NodeExactlyOne:
		var result []Alternative
		for _, child := range e.Children {
			alternatives, err := s.node(child, root)
			if err != nil {
				return nil, err
			}
			result = append(result, alternatives...)
			if s.MaxNodes > 0 && len(result) > s.MaxNodes {
				return nil, fmt.Errorf("%w: policy has more than %d alternatives", ErrQuotaExceeded, s.MaxNodes)
			}
		}
		return result, nil

	case NodePolicyReference:
		return s.reference(e, root)

	default:
		if IsOptional(e) {
			return []Alternative{{e}, {}}, nil
		}
		return []Alternative{{e}}, nil
	}
}

func (s *normalization) reference(e, root *xmlnode.Element) ([]Alternative, error) {
	uri, ok := ReferenceURI(e)
	if !ok || uri == "" {
		s.warn("policy reference without a URI ignored")
		return []Alternative{{}}, nil
	}

	var target *xmlnode.Element
	if s.Resolver != nil {
		target = s.Resolver.ResolvePolicyReference(uri, root)
	}
	if target == nil {
		s.warn(fmt.Sprintf("policy reference %q could not be resolved and was ignored", uri))
		return []Alternative{{}}, nil
	}
	if s.resolving[target] {
		s.warn(fmt.Sprintf("policy reference %q is circular and was ignored", uri))
		return []Alternative{{}}, nil
	}

	s.resolving[target] = true
	defer delete(s.resolving, target)
	return s.node(target, target)
}

// conjoin returns the cross product of two alternative lists
func (s *normalization) conjoin(left, right []Alternative) ([]Alternative, error) {
	if len(left) == 0 || len(right) == 0 {
		return nil, nil
	}
	if s.MaxNodes > 0 && len(left)*len(right) > s.MaxNodes {
		return nil, fmt.Errorf("%w: policy has more than %d alternatives", ErrQuotaExceeded, s.MaxNodes)
	}

	result := make([]Alternative, 0, len(left)*len(right))
	for _, l := range left {
		for _, r := range right {
			if s.MaxAssertions > 0 && len(l)+len(r) > s.MaxAssertions {
				return nil, fmt.Errorf("%w: policy alternative has more than %d assertions", ErrQuotaExceeded, s.MaxAssertions)
			}
			merged := make(Alternative, 0, len(l)+len(r))
			merged = append(merged, l...)
			merged = append(merged, r...)
			result = append(result, merged)
		}
	}
	return result, nil
}

func (s *normalization) warn(message string) {
	if s.Warn != nil {
		s.Warn(message)
	}
}
