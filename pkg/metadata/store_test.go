package metadata

import (
	"testing"

	"github.com/pyneda/wsimport/pkg/wsdl"
	"github.com/pyneda/wsimport/pkg/xmlnode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storeWSDL = `<definitions xmlns="http://schemas.xmlsoap.org/wsdl/" xmlns:tns="urn:store"
  xmlns:xsd="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:store">
  <types><xsd:schema targetNamespace="urn:store"><xsd:element name="Item" type="xsd:string"/></xsd:schema></types>
  <portType name="Inventory"/>
</definitions>`

const storeXSD = `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:types">
  <xs:complexType name="Order"/>
</xs:schema>`

const storePolicy = `<wsp:Policy xmlns:wsp="http://schemas.xmlsoap.org/ws/2004/09/policy"><a/></wsp:Policy>`

func TestNewStore(t *testing.T) {
	parsed, err := wsdl.NewParser().ParseFromBytes([]byte(`<definitions xmlns="http://schemas.xmlsoap.org/wsdl/" targetNamespace="urn:parsed"><portType name="P"/></definitions>`), "parsed")
	require.NoError(t, err)
	element, err := xmlnode.Parse([]byte(storePolicy))
	require.NoError(t, err)

	store, warnings, err := NewStore([]Section{
		{Dialect: DialectWSDL, Identifier: "store.wsdl", Metadata: []byte(storeWSDL)},
		{Dialect: DialectWSDL, Identifier: "parsed", Metadata: parsed},
		{Dialect: DialectXMLSchema, Identifier: "types.xsd", Metadata: []byte(storeXSD)},
		{Dialect: DialectPolicy, Identifier: "http://host/policy", Metadata: []byte(storePolicy)},
		{Dialect: DialectPolicy, Identifier: "second", Metadata: element},
		{Dialect: DialectPolicy, Metadata: []byte(storePolicy)},
		{Dialect: DialectWSDL, Identifier: "remote", Metadata: Reference{Address: "http://host/remote?wsdl"}},
		{Dialect: DialectWSDL, Identifier: "location", Metadata: Location("http://host/location?wsdl")},
		{Dialect: "urn:unknown-dialect", Identifier: "other", Metadata: []byte("<x/>")},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, store.Documents.Len())
	assert.Equal(t, "store.wsdl", store.Documents.Documents()[0].SourceURL)
	assert.NotNil(t, store.Documents.PortType(wsdl.QName{Namespace: "urn:parsed", LocalPart: "P"}))

	assert.Equal(t, 2, store.Schemas.Len(), "embedded and standalone schemas")
	assert.NotNil(t, store.Schemas.Element(wsdl.QName{Namespace: "urn:store", LocalPart: "Item"}))
	assert.NotNil(t, store.Schemas.ComplexType(wsdl.QName{Namespace: "urn:types", LocalPart: "Order"}))

	require.Len(t, store.Policies, 2)
	assert.Equal(t, "http://host/policy", store.Policies[0].Identifier)
	assert.Same(t, element, store.PolicyElements()[1])

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "no identifier")
}

func TestNewStoreDialectMismatch(t *testing.T) {
	tests := []struct {
		name     string
		section  Section
		expected string
		actual   string
	}{
		{
			name:     "schema bytes in wsdl section",
			section:  Section{Dialect: DialectWSDL, Identifier: "bad.wsdl", Metadata: []byte(storeXSD)},
			expected: "{http://schemas.xmlsoap.org/wsdl/}definitions",
			actual:   "{http://www.w3.org/2001/XMLSchema}schema",
		},
		{
			name:     "wrong go type",
			section:  Section{Dialect: DialectXMLSchema, Identifier: "bad.xsd", Metadata: "a string"},
			expected: "*wsdl.XSDSchema",
			actual:   "string",
		},
		{
			name:     "document in policy section",
			section:  Section{Dialect: DialectPolicy, Identifier: "bad-policy", Metadata: &wsdl.Document{}},
			expected: "*xmlnode.Element",
			actual:   "*wsdl.Document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := NewStore([]Section{tt.section})
			var mismatch *DialectMismatchError
			require.ErrorAs(t, err, &mismatch)
			assert.Equal(t, tt.section.Identifier, mismatch.Identifier)
			assert.Equal(t, tt.expected, mismatch.Expected)
			assert.Equal(t, tt.actual, mismatch.Actual)
			assert.Contains(t, err.Error(), tt.section.Identifier)
		})
	}
}

func TestNewStoreMalformedContent(t *testing.T) {
	_, _, err := NewStore([]Section{
		{Dialect: DialectWSDL, Identifier: "broken.wsdl", Metadata: []byte(`<definitions xmlns="http://schemas.xmlsoap.org/wsdl/"><portType>`)},
	})
	var sectionErr *SectionError
	require.ErrorAs(t, err, &sectionErr)
	assert.Equal(t, "broken.wsdl", sectionErr.Identifier)
	assert.Contains(t, err.Error(), "broken.wsdl")
}

func TestSectionFromBytes(t *testing.T) {
	tests := []struct {
		data    string
		dialect string
	}{
		{storeWSDL, DialectWSDL},
		{storeXSD, DialectXMLSchema},
		{storePolicy, DialectPolicy},
		{`<wsp:Policy xmlns:wsp="http://www.w3.org/ns/ws-policy"/>`, DialectPolicy},
	}

	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			section, err := SectionFromBytes([]byte(tt.data), "id")
			require.NoError(t, err)
			assert.Equal(t, tt.dialect, section.Dialect)
			assert.Equal(t, "id", section.Identifier)
		})
	}

	_, err := SectionFromBytes([]byte(`<html/>`), "page")
	assert.ErrorIs(t, err, ErrUnknownDialect)
}
