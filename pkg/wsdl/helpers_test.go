package wsdl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQName(t *testing.T) {
	namespaces := map[string]string{
		"":    "urn:default",
		"tns": "urn:tns",
	}

	tests := []struct {
		input string
		want  QName
	}{
		{"tns:Greeter", QName{Namespace: "urn:tns", LocalPart: "Greeter"}},
		{"Greeter", QName{Namespace: "urn:default", LocalPart: "Greeter"}},
		{"{urn:clark}Greeter", QName{Namespace: "urn:clark", LocalPart: "Greeter"}},
		{"unknown:Greeter", QName{LocalPart: "Greeter"}},
		{"  tns:Padded ", QName{Namespace: "urn:tns", LocalPart: "Padded"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQName(tt.input, namespaces))
		})
	}

	assert.Equal(t, QName{LocalPart: "Bare"}, ParseQName("Bare", nil))
}

func TestQNameString(t *testing.T) {
	assert.Equal(t, "{urn:a}b", QName{Namespace: "urn:a", LocalPart: "b"}.String())
	assert.Equal(t, "b", QName{LocalPart: "b"}.String())
	assert.True(t, QName{}.IsZero())
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		base     string
		relative string
		want     string
	}{
		{"http://host/svc/main.wsdl", "types.xsd", "http://host/svc/types.xsd"},
		{"http://host/svc/main.wsdl", "../shared/a.xsd", "http://host/shared/a.xsd"},
		{"http://host/svc/main.wsdl", "https://other/x.wsdl", "https://other/x.wsdl"},
		{"http://host/svc/main.wsdl", "", "http://host/svc/main.wsdl"},
	}

	for _, tt := range tests {
		t.Run(tt.relative, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveURL(tt.base, tt.relative))
		})
	}

}

func TestNamespaceMap(t *testing.T) {
	nm := NewNamespaceMap()
	nm.Add("a", "urn:one")
	nm.Add("b", "urn:one")

	assert.Equal(t, "urn:one", nm.GetNamespace("b"))
	assert.Equal(t, QName{Namespace: "urn:one", LocalPart: "x"}, nm.ResolveQName("b:x"))
	assert.Equal(t, "", nm.GetNamespace("c"))
}
