// Package xmlnode provides a small element tree used for WSDL extensibility
// elements and WS-Policy assertions, whose content is open ended.
package xmlnode

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// Element is a parsed XML element with its attributes and child elements.
// Namespace declarations are not kept as attributes.
type Element struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Children []*Element
	Text     string
}

// ErrNoRootElement is returned when a document has no element content.
var ErrNoRootElement = errors.New("no root element")

// NewDecoder returns an XML decoder that also accepts documents declared
// in a non UTF-8 encoding such as ISO-8859-1 or windows-1252.
func NewDecoder(r io.Reader) *xml.Decoder {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	return decoder
}

// Parse decodes the first element of data and everything below it.
func Parse(data []byte) (*Element, error) {
	decoder := NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return nil, ErrNoRootElement
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse XML: %w", err)
		}
		if start, ok := token.(xml.StartElement); ok {
			root := &Element{}
			if err := root.UnmarshalXML(decoder, start); err != nil {
				return nil, fmt.Errorf("failed to parse XML: %w", err)
			}
			return root, nil
		}
	}
}

// RootName returns the expanded name of the document element without
// decoding the rest of the document.
func RootName(data []byte) (xml.Name, error) {
	decoder := NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return xml.Name{}, ErrNoRootElement
		}
		if err != nil {
			return xml.Name{}, fmt.Errorf("failed to read XML: %w", err)
		}
		if start, ok := token.(xml.StartElement); ok {
			return start.Name, nil
		}
	}
}

// UnmarshalXML lets Element be the target of `xml:",any"` fields.
func (e *Element) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	e.Name = start.Name
	e.Attrs = e.Attrs[:0]
	e.Children = nil
	for _, attr := range start.Attr {
		if IsNamespaceDecl(attr) {
			continue
		}
		e.Attrs = append(e.Attrs, attr)
	}

	var text strings.Builder
	for {
		token, err := d.Token()
		if err != nil {
			return err
		}
		switch t := token.(type) {
		case xml.StartElement:
			child := &Element{}
			if err := child.UnmarshalXML(d, t); err != nil {
				return err
			}
			e.Children = append(e.Children, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			e.Text = strings.TrimSpace(text.String())
			return nil
		}
	}
}

// LocalName returns the element name without namespace.
func (e *Element) LocalName() string {
	return e.Name.Local
}

// NamespaceURI returns the namespace the element belongs to.
func (e *Element) NamespaceURI() string {
	return e.Name.Space
}

// Is reports whether the element has the given namespace and local name.
func (e *Element) Is(namespace, local string) bool {
	return e != nil && e.Name.Space == namespace && e.Name.Local == local
}

// GetAttribute returns the value of an unqualified attribute.
func (e *Element) GetAttribute(local string) string {
	value, _ := AttrValue(e.Attrs, "", local)
	return value
}

// HasAttribute reports whether an unqualified attribute is present.
func (e *Element) HasAttribute(local string) bool {
	_, ok := AttrValue(e.Attrs, "", local)
	return ok
}

// GetAttributeNS returns the value of a namespace-qualified attribute.
func (e *Element) GetAttributeNS(namespace, local string) string {
	value, _ := AttrValue(e.Attrs, namespace, local)
	return value
}

// HasAttributeNS reports whether a namespace-qualified attribute is present.
func (e *Element) HasAttributeNS(namespace, local string) bool {
	_, ok := AttrValue(e.Attrs, namespace, local)
	return ok
}

// Find returns the first child element with the given name, or nil.
func (e *Element) Find(namespace, local string) *Element {
	for _, child := range e.Children {
		if child.Is(namespace, local) {
			return child
		}
	}
	return nil
}

// FindAll returns every child element with the given name.
func (e *Element) FindAll(namespace, local string) []*Element {
	var result []*Element
	for _, child := range e.Children {
		if child.Is(namespace, local) {
			result = append(result, child)
		}
	}
	return result
}

// TextContent returns the trimmed character data of the element and its
// descendants.
func (e *Element) TextContent() string {
	var b strings.Builder
	e.collectText(&b)
	return strings.TrimSpace(b.String())
}

func (e *Element) collectText(b *strings.Builder) {
	b.WriteString(e.Text)
	for _, child := range e.Children {
		child.collectText(b)
	}
}

// Clone returns a deep copy of the element.
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	clone := &Element{
		Name:  e.Name,
		Attrs: append([]xml.Attr(nil), e.Attrs...),
		Text:  e.Text,
	}
	for _, child := range e.Children {
		clone.Children = append(clone.Children, child.Clone())
	}
	return clone
}

// String renders the element name in Clark notation.
func (e *Element) String() string {
	if e.Name.Space == "" {
		return e.Name.Local
	}
	return "{" + e.Name.Space + "}" + e.Name.Local
}

// AttrValue looks up an attribute by namespace and local name.
func AttrValue(attrs []xml.Attr, namespace, local string) (string, bool) {
	for _, attr := range attrs {
		if attr.Name.Space == namespace && attr.Name.Local == local {
			return attr.Value, true
		}
	}
	return "", false
}

// IsNamespaceDecl reports whether attr is an xmlns declaration.
func IsNamespaceDecl(attr xml.Attr) bool {
	return attr.Name.Space == "xmlns" || (attr.Name.Space == "" && attr.Name.Local == "xmlns")
}
