package description

import (
	"testing"

	"github.com/pyneda/wsimport/pkg/xmlnode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContractDescription(t *testing.T) {
	c := NewContractDescription("Greeter", "urn:greet")
	assert.Equal(t, "{urn:greet}Greeter", c.QName().String())
	assert.Equal(t, SessionModeAllowed, c.SessionMode)

	hello := c.AddOperation("Hello")
	assert.True(t, hello.IsInitiating)
	assert.False(t, hello.IsTerminating)
	assert.True(t, hello.IsOneWay())

	hello.Messages = append(hello.Messages,
		&MessageDescription{Direction: DirectionInput, MessageName: "HelloRequest"},
		&MessageDescription{Direction: DirectionOutput, MessageName: "HelloResponse"},
	)
	assert.False(t, hello.IsOneWay())
	assert.Equal(t, "HelloResponse", hello.Message(DirectionOutput).MessageName)

	assert.Same(t, hello, c.Operation("Hello"))
	assert.Nil(t, c.Operation("Missing"))
}

func TestFindElement(t *testing.T) {
	unrecognized := NewUnrecognizedAssertionsBindingElement(QName{Name: "B"}, []*xmlnode.Element{{}})
	b := NewBinding("B", "urn:b", []BindingElement{
		unrecognized,
		&TextMessageEncodingBindingElement{EnvelopeVersion: EnvelopeSOAP12},
		&HTTPTransportBindingElement{Secure: true},
	})

	encoding, ok := FindElement[*TextMessageEncodingBindingElement](b)
	require.True(t, ok)
	assert.Equal(t, EnvelopeSOAP12, encoding.EnvelopeVersion)

	_, ok = FindElement[*ReliableSessionBindingElement](b)
	assert.False(t, ok)

	assert.Equal(t, []string{"unrecognizedAssertions", "textMessageEncoding", "httpsTransport"}, b.ElementKinds())

	transport, _ := FindElement[*HTTPTransportBindingElement](b)
	assert.Equal(t, "https", transport.Scheme())

	op := NewOperationDescription("Op")
	unrecognized.OperationAssertions[op] = []*xmlnode.Element{{}, {}}
	assert.Equal(t, 3, unrecognized.Count())
}
