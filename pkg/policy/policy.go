// Package policy implements WS-Policy 1.2 and 1.5 normalization: policy
// expressions are reduced to a list of alternatives, each an ordered set of
// assertions.
package policy

import (
	"encoding/xml"
	"errors"
	"strings"

	"github.com/pyneda/wsimport/pkg/xmlnode"
)

const (
	Namespace12  = "http://schemas.xmlsoap.org/ws/2004/09/policy"
	Namespace15  = "http://www.w3.org/ns/ws-policy"
	WSUNamespace = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-utility-1.0.xsd"
	XMLNamespace = "http://www.w3.org/XML/1998/namespace"
)

// ErrQuotaExceeded is returned when normalization or enumeration exceeds
// one of the configured limits.
var ErrQuotaExceeded = errors.New("policy quota exceeded")

// NodeType classifies an element found inside a policy expression
type NodeType int

const (
	NodeAssertion NodeType = iota
	NodePolicy
	NodeAll
	NodeExactlyOne
	NodePolicyReference
)

// Alternative is one way of satisfying a policy: a set of assertions that
// must all hold.
type Alternative []*xmlnode.Element

// IsPolicyNamespace reports whether ns is a WS-Policy namespace
func IsPolicyNamespace(ns string) bool {
	return ns == Namespace12 || ns == Namespace15
}

// Classify returns the node type of e
func Classify(e *xmlnode.Element) NodeType {
	if !IsPolicyNamespace(e.NamespaceURI()) {
		return NodeAssertion
	}
	switch e.LocalName() {
	case "Policy":
		return NodePolicy
	case "All":
		return NodeAll
	case "ExactlyOne":
		return NodeExactlyOne
	case "PolicyReference":
		return NodePolicyReference
	default:
		return NodeAssertion
	}
}

// IsPolicy reports whether e is a wsp:Policy element
func IsPolicy(e *xmlnode.Element) bool {
	return Classify(e) == NodePolicy
}

// IsPolicyReference reports whether e is a wsp:PolicyReference element
func IsPolicyReference(e *xmlnode.Element) bool {
	return Classify(e) == NodePolicyReference
}

// FragmentID returns the wsu:Id or xml:id of e, or "" when it has neither
func FragmentID(e *xmlnode.Element) string {
	if id := e.GetAttributeNS(WSUNamespace, "Id"); id != "" {
		return id
	}
	return e.GetAttributeNS(XMLNamespace, "id")
}

// IsOptional reports whether an assertion carries wsp:Optional="true"
func IsOptional(e *xmlnode.Element) bool {
	for _, ns := range []string{Namespace15, Namespace12} {
		if v, ok := xmlnode.AttrValue(e.Attrs, ns, "Optional"); ok {
			v = strings.TrimSpace(v)
			return v == "true" || v == "1"
		}
	}
	return false
}

// ReferenceURI returns the URI attribute of a wsp:PolicyReference. The
// boolean is false when the attribute is missing.
func ReferenceURI(e *xmlnode.Element) (string, bool) {
	if !e.HasAttribute("URI") {
		return "", false
	}
	return strings.TrimSpace(e.GetAttribute("URI")), true
}

// PolicyURIs returns the references listed in a wsp:PolicyURIs attribute
func PolicyURIs(attrs []xml.Attr) []string {
	for _, ns := range []string{Namespace15, Namespace12} {
		if v, ok := xmlnode.AttrValue(attrs, ns, "PolicyURIs"); ok {
			return strings.Fields(v)
		}
	}
	return nil
}

// HasPolicyURIs reports whether attrs carry a wsp:PolicyURIs attribute
func HasPolicyURIs(attrs []xml.Attr) bool {
	for _, ns := range []string{Namespace15, Namespace12} {
		if _, ok := xmlnode.AttrValue(attrs, ns, "PolicyURIs"); ok {
			return true
		}
	}
	return false
}
