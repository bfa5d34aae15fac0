// Package metadata holds the dialect-tagged sections an import session
// starts from and classifies them into WSDL documents, XML Schemas and
// WS-Policy documents.
package metadata

import (
	"encoding/xml"
	"fmt"

	"github.com/pyneda/wsimport/pkg/policy"
	"github.com/pyneda/wsimport/pkg/wsdl"
)

// Dialects understood by the importer
const (
	DialectWSDL      = "http://schemas.xmlsoap.org/wsdl/"
	DialectXMLSchema = "http://www.w3.org/2001/XMLSchema"
	DialectPolicy    = "http://schemas.xmlsoap.org/ws/2004/09/policy"
)

// Section is one piece of metadata. Metadata holds raw XML bytes, an
// already parsed value (*wsdl.Document, *wsdl.XSDSchema or
// *xmlnode.Element for policies), or an unresolved Reference or Location.
type Section struct {
	Dialect    string
	Identifier string
	Metadata   any
}

// Reference points at metadata that has not been retrieved
type Reference struct {
	Address string
}

// Location is the URL of metadata that has not been retrieved
type Location string

// Set is an ordered collection of sections
type Set struct {
	Sections []Section
}

// NewSet creates a set from the given sections
func NewSet(sections ...Section) Set {
	return Set{Sections: sections}
}

// Add appends a section
func (s *Set) Add(section Section) {
	s.Sections = append(s.Sections, section)
}

// DialectOf reports the dialect of an XML document from its root element
func DialectOf(name xml.Name) (string, bool) {
	switch {
	case name.Space == wsdl.WSDLNamespace && name.Local == "definitions":
		return DialectWSDL, true
	case name.Space == wsdl.XSDNamespace && name.Local == "schema":
		return DialectXMLSchema, true
	case policy.IsPolicyNamespace(name.Space) && name.Local == "Policy":
		return DialectPolicy, true
	default:
		return "", false
	}
}

// rootOf returns the expected document element of a dialect
func rootOf(dialect string) xml.Name {
	switch dialect {
	case DialectWSDL:
		return xml.Name{Space: wsdl.WSDLNamespace, Local: "definitions"}
	case DialectXMLSchema:
		return xml.Name{Space: wsdl.XSDNamespace, Local: "schema"}
	default:
		return xml.Name{Space: DialectPolicy, Local: "Policy"}
	}
}

func clark(name xml.Name) string {
	return wsdl.MakeTypeKey(name.Space, name.Local)
}

func describe(v any) string {
	return fmt.Sprintf("%T", v)
}
