package wsdl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const otherWSDL = `<definitions xmlns="http://schemas.xmlsoap.org/wsdl/" xmlns:tns="urn:other" targetNamespace="urn:other">
  <portType name="Greeter"/>
  <portType name="Audit"/>
  <binding name="AuditBinding" type="tns:Audit"/>
  <service name="AuditService">
    <port name="A" binding="tns:AuditBinding"/>
    <port name="B" binding="tns:AuditBinding"/>
  </service>
</definitions>`

func loadCollection(t *testing.T) *Collection {
	t.Helper()
	parser := NewParser()
	greet, err := parser.ParseFromBytes([]byte(greetWSDL), "greet.wsdl")
	require.NoError(t, err)
	other, err := parser.ParseFromBytes([]byte(otherWSDL), "other.wsdl")
	require.NoError(t, err)

	c := NewCollection()
	c.Add(greet)
	c.Add(other)
	return c
}

func TestCollectionLookup(t *testing.T) {
	c := loadCollection(t)
	assert.Equal(t, 2, c.Len())

	greeter := c.PortType(QName{Namespace: "http://example.com/greet", LocalPart: "Greeter"})
	require.NotNil(t, greeter)
	assert.Equal(t, "greet.wsdl", greeter.OwnerDocument().SourceURL)

	otherGreeter := c.PortType(QName{Namespace: "urn:other", LocalPart: "Greeter"})
	require.NotNil(t, otherGreeter)
	assert.NotSame(t, greeter, otherGreeter)

	assert.Nil(t, c.PortType(QName{Namespace: "urn:missing", LocalPart: "Greeter"}))
	assert.NotNil(t, c.Binding(QName{Namespace: "urn:other", LocalPart: "AuditBinding"}))
	assert.NotNil(t, c.Message(QName{Namespace: "http://example.com/greet", LocalPart: "HelloIn"}))
	assert.NotNil(t, c.Service(QName{Namespace: "urn:other", LocalPart: "AuditService"}))
}

func TestCollectionEnumeration(t *testing.T) {
	c := loadCollection(t)

	var portTypes []string
	for pt := range c.PortTypes() {
		portTypes = append(portTypes, pt.QName().String())
	}
	assert.Equal(t, []string{
		"{http://example.com/greet}Greeter",
		"{urn:other}Greeter",
		"{urn:other}Audit",
	}, portTypes)

	var ports []string
	for p := range c.Ports() {
		ports = append(ports, p.Name)
	}
	assert.Equal(t, []string{"GreeterPort", "A", "B"}, ports)

	// sequences are restartable
	count := 0
	for range c.Bindings() {
		count++
	}
	for range c.Bindings() {
		count++
	}
	assert.Equal(t, 4, count)

	// early break stops the enumeration
	var first *Port
	for p := range c.Ports() {
		first = p
		break
	}
	require.NotNil(t, first)
	assert.Equal(t, "GreeterPort", first.Name)
}
