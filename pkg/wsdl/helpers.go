package wsdl

import (
	"net/url"
	"strings"
)

// QName represents a qualified name with namespace
type QName struct {
	Namespace string `json:"namespace,omitempty"`
	LocalPart string `json:"local_part"`
}

// IsZero reports whether the name is empty
func (q QName) IsZero() bool {
	return q.Namespace == "" && q.LocalPart == ""
}

// String renders the name in Clark notation
func (q QName) String() string {
	return MakeTypeKey(q.Namespace, q.LocalPart)
}

// ParseQName parses a qualified name string like "tns:localName" or "{namespace}localName"
func ParseQName(qname string, namespaces map[string]string) QName {
	qname = strings.TrimSpace(qname)

	// Handle Clark notation: {namespace}localName
	if strings.HasPrefix(qname, "{") {
		idx := strings.Index(qname, "}")
		if idx > 0 {
			return QName{
				Namespace: qname[1:idx],
				LocalPart: qname[idx+1:],
			}
		}
	}

	// Handle prefix:localName
	if idx := strings.Index(qname, ":"); idx > 0 {
		return QName{
			Namespace: namespaces[qname[:idx]],
			LocalPart: qname[idx+1:],
		}
	}

	// No prefix - use default namespace if available
	return QName{
		Namespace: namespaces[""],
		LocalPart: qname,
	}
}

// MakeTypeKey creates a unique key for type lookup combining namespace and local name
func MakeTypeKey(namespace, localName string) string {
	if namespace == "" {
		return localName
	}
	return "{" + namespace + "}" + localName
}

// ResolveURL resolves a relative URL against a base URL
func ResolveURL(baseURL, relativeURL string) string {
	if relativeURL == "" {
		return baseURL
	}

	if strings.HasPrefix(relativeURL, "http://") || strings.HasPrefix(relativeURL, "https://") {
		return relativeURL
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return relativeURL
	}

	rel, err := url.Parse(relativeURL)
	if err != nil {
		return relativeURL
	}

	return base.ResolveReference(rel).String()
}

// NamespaceMap holds the prefixes declared on a document element
type NamespaceMap struct {
	prefixToNS map[string]string
}

// NewNamespaceMap creates an empty namespace map
func NewNamespaceMap() *NamespaceMap {
	return &NamespaceMap{prefixToNS: make(map[string]string)}
}

// Add declares a prefix, replacing an earlier declaration
func (nm *NamespaceMap) Add(prefix, namespace string) {
	nm.prefixToNS[prefix] = namespace
}

// GetNamespace returns the namespace for a prefix
func (nm *NamespaceMap) GetNamespace(prefix string) string {
	return nm.prefixToNS[prefix]
}

// ResolveQName resolves a prefixed name against the declared prefixes
func (nm *NamespaceMap) ResolveQName(qname string) QName {
	return ParseQName(qname, nm.prefixToNS)
}
