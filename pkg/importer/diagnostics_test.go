package importer

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pyneda/wsimport/pkg/metadata"
	"github.com/pyneda/wsimport/pkg/wsdl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocator(t *testing.T) {
	imp := newTestImporter(t, DefaultOptions(), greetWSDL)
	doc := imp.Documents()[0]
	pt := doc.PortTypes[0]
	b := doc.Bindings[0]
	ob := b.Operations[0]
	p := doc.Services[0].Ports[0]

	const root = "//wsdl:definitions[@targetNamespace='http://example.com/greet']"
	tests := []struct {
		item    wsdl.NamedItem
		locator string
		element string
	}{
		{doc, root, "wsdl:definitions"},
		{doc.Messages[0], root + "/wsdl:message[@name='HelloIn']", "wsdl:message"},
		{pt, root + "/wsdl:portType[@name='Greeter']", "wsdl:portType"},
		{pt.Operations[0], root + "/wsdl:portType[@name='Greeter']/wsdl:operation[@name='Hello']", "wsdl:operation"},
		{pt.Operations[0].Input(), root + "/wsdl:portType[@name='Greeter']/wsdl:operation[@name='Hello']/wsdl:input", "wsdl:input"},
		{pt.Operations[0].Faults[0], root + "/wsdl:portType[@name='Greeter']/wsdl:operation[@name='Hello']/wsdl:fault[@name='Oops']", "wsdl:fault"},
		{b, root + "/wsdl:binding[@name='GreeterSoap']", "wsdl:binding"},
		{ob, root + "/wsdl:binding[@name='GreeterSoap']/wsdl:operation[@name='Hello']", "wsdl:operation"},
		{ob.Input, root + "/wsdl:binding[@name='GreeterSoap']/wsdl:operation[@name='Hello']/wsdl:input", "wsdl:input"},
		{ob.Output, root + "/wsdl:binding[@name='GreeterSoap']/wsdl:operation[@name='Hello']/wsdl:output[@name='HelloReply']", "wsdl:output"},
		{doc.Services[0], root + "/wsdl:service[@name='GreetService']", "wsdl:service"},
		{p, root + "/wsdl:service[@name='GreetService']/wsdl:port[@name='GreeterPort']", "wsdl:port"},
		{nil, "XPath unavailable", "wsdl item"},
	}

	for _, tt := range tests {
		t.Run(tt.locator, func(t *testing.T) {
			assert.Equal(t, tt.locator, Locator(tt.item))
			assert.Equal(t, tt.element, ElementName(tt.item))
		})
	}
}

func TestNewImportErrorRetargetsChildren(t *testing.T) {
	imp := newTestImporter(t, DefaultOptions(), greetWSDL)
	doc := imp.Documents()[0]
	b := doc.Bindings[0]
	ob := b.Operations[0]
	cause := errors.New("bad operation")

	child := newImportError(ob, cause)
	parent := newImportError(b, child)
	assert.Same(t, child, parent, "a child failure is re-targeted instead of nested")
	assert.Same(t, b, parent.Source())
	assert.Equal(t, Locator(ob), parent.Locator())
	assert.Equal(t, "bad operation", parent.Message())
	assert.ErrorIs(t, parent, cause)

	p := doc.Services[0].Ports[0]
	dependent := newImportError(p, parent)
	assert.NotSame(t, parent, dependent)
	assert.Equal(t, Locator(p), dependent.Locator())
	assert.Equal(t, "bad operation", dependent.Message())

	faulted := &AlreadyFaultedError{Element: "wsdl:binding", Inner: parent}
	unwrapped := newImportError(p, faulted)
	assert.Same(t, parent, unwrapped.Unwrap(), "already-faulted errors are replaced by the original failure")
	assert.NotErrorIs(t, unwrapped, ErrAlreadyFaulted)
}

func TestLogWarningDeduplicates(t *testing.T) {
	imp, err := New(metadata.NewSet(), DefaultOptions())
	require.NoError(t, err)

	imp.LogWarning("first")
	imp.LogWarning("first")
	imp.LogWarning("second")

	errs := imp.Errors()
	require.Len(t, errs, 2)
	assert.Equal(t, ConversionError{Message: "first", IsWarning: true}, errs[0])
	assert.Equal(t, "warning: second", errs[1].String())
}

func TestLogWarningClearsSetAtCapacity(t *testing.T) {
	imp, err := New(metadata.NewSet(), DefaultOptions())
	require.NoError(t, err)

	for i := range maxWarningSet {
		imp.LogWarning(fmt.Sprintf("warning %d", i))
	}
	imp.LogWarning("warning 0")
	assert.Len(t, imp.Errors(), maxWarningSet, "the set still holds every warning")

	imp.LogWarning("overflow")
	imp.LogWarning("warning 0")
	assert.Len(t, imp.Errors(), maxWarningSet+2, "warnings repeat once the set has been cleared")
}

func TestErrorsReturnsCopy(t *testing.T) {
	imp, err := New(metadata.NewSet(), DefaultOptions())
	require.NoError(t, err)
	imp.LogWarning("kept")

	errs := imp.Errors()
	errs[0].Message = "changed"
	assert.Equal(t, "kept", imp.Errors()[0].Message)
}
