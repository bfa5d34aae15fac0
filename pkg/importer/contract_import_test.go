package importer

import (
	"testing"

	"github.com/pyneda/wsimport/pkg/description"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAction(t *testing.T) {
	tests := []struct {
		namespace string
		portType  string
		message   string
		want      string
	}{
		{"http://tempuri.org/", "IService", "Op", "http://tempuri.org/IService/Op"},
		{"http://tempuri.org", "IService", "Op", "http://tempuri.org/IService/Op"},
		{"urn:test", "P", "M", "urn:test:P:M"},
		{"URN:test:", "P", "M", "URN:test:P:M"},
		{"", "P", "M", "/P/M"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultAction(tt.namespace, tt.portType, tt.message))
		})
	}
}

const shapesWSDL = `<wsdl:definitions xmlns:wsdl="http://schemas.xmlsoap.org/wsdl/"
  xmlns:wsam="http://www.w3.org/2007/05/addressing/metadata"
  xmlns:msc="http://schemas.microsoft.com/ws/2005/12/wsdl/contract"
  xmlns:tns="urn:shapes" targetNamespace="urn:shapes">
  <wsdl:message name="M"/>
  <wsdl:portType name="Shapes" msc:usingSession="true">
    <wsdl:operation name="OneWay">
      <wsdl:input message="tns:M"/>
    </wsdl:operation>
    <wsdl:operation name="Solicit" msc:isInitiating="false" msc:isTerminating="true">
      <wsdl:output message="tns:M"/>
      <wsdl:input message="tns:M"/>
    </wsdl:operation>
    <wsdl:operation name="Explicit">
      <wsdl:input message="tns:M" wsam:Action="urn:explicit-in"/>
      <wsdl:output name="Out" message="tns:M"/>
      <wsdl:fault message="tns:M"/>
      <wsdl:fault name="Failed" message="tns:M" wsam:Action="urn:failed"/>
    </wsdl:operation>
  </wsdl:portType>
  <wsdl:portType name="TooMany">
    <wsdl:operation name="Chatty">
      <wsdl:input message="tns:M"/>
      <wsdl:output message="tns:M"/>
      <wsdl:input message="tns:M"/>
    </wsdl:operation>
  </wsdl:portType>
</wsdl:definitions>`

func TestImportContractShapes(t *testing.T) {
	imp := newTestImporter(t, DefaultOptions(), shapesWSDL)

	contract, err := imp.ImportContract(portType(t, imp, "urn:shapes", "Shapes"))
	require.NoError(t, err)
	assert.Equal(t, description.SessionModeRequired, contract.SessionMode)
	require.Len(t, contract.Operations, 3)

	oneWay := contract.Operation("OneWay")
	require.NotNil(t, oneWay)
	assert.True(t, oneWay.IsOneWay())
	assert.Equal(t, "OneWay", oneWay.Messages[0].MessageName)
	assert.Equal(t, "urn:shapes:Shapes:OneWay", oneWay.Messages[0].Action)

	solicit := contract.Operation("Solicit")
	require.NotNil(t, solicit)
	assert.False(t, solicit.IsInitiating)
	assert.True(t, solicit.IsTerminating)
	require.Len(t, solicit.Messages, 2)
	assert.Equal(t, description.DirectionOutput, solicit.Messages[0].Direction)
	assert.Equal(t, "SolicitSolicit", solicit.Messages[0].MessageName)
	assert.Equal(t, "SolicitResponse", solicit.Messages[1].MessageName)

	explicit := contract.Operation("Explicit")
	require.NotNil(t, explicit)
	assert.Equal(t, "urn:explicit-in", explicit.Message(description.DirectionInput).Action)
	assert.Equal(t, "urn:shapes:Shapes:Out", explicit.Message(description.DirectionOutput).Action)
	require.Len(t, explicit.Faults, 1, "unnamed faults are skipped")
	assert.Equal(t, "Failed", explicit.Faults[0].Name)
	assert.Equal(t, "urn:failed", explicit.Faults[0].Action)
}

func TestImportContractRejectsOperationsWithExtraMessages(t *testing.T) {
	imp := newTestImporter(t, DefaultOptions(), shapesWSDL)

	_, err := imp.ImportContract(portType(t, imp, "urn:shapes", "TooMany"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedOperation)

	var importErr *ImportError
	require.ErrorAs(t, err, &importErr)
	assert.Equal(t, "TooMany", importErr.Source().ItemName(), "the operation failure is attributed to its port type")
	assert.Equal(t, "//wsdl:definitions[@targetNamespace='urn:shapes']/wsdl:portType[@name='TooMany']/wsdl:operation[@name='Chatty']", importErr.Locator())
}

const overloadWSDL = `<wsdl:definitions xmlns:wsdl="http://schemas.xmlsoap.org/wsdl/"
  xmlns:soap="http://schemas.xmlsoap.org/wsdl/soap/"
  xmlns:tns="urn:overload" targetNamespace="urn:overload">
  <wsdl:message name="M"/>
  <wsdl:portType name="Math">
    <wsdl:operation name="Add">
      <wsdl:input name="AddInts" message="tns:M"/>
      <wsdl:output message="tns:M"/>
    </wsdl:operation>
    <wsdl:operation name="Add">
      <wsdl:input message="tns:M"/>
      <wsdl:output message="tns:M"/>
    </wsdl:operation>
    <wsdl:operation name="Echo">
      <wsdl:input message="tns:M"/>
      <wsdl:output message="tns:M"/>
    </wsdl:operation>
  </wsdl:portType>
  <wsdl:binding name="MathSoap" type="tns:Math">
    <soap:binding transport="http://schemas.xmlsoap.org/soap/http"/>
    <wsdl:operation name="Add">
      <wsdl:input><soap:body use="literal"/></wsdl:input>
      <wsdl:output><soap:body use="literal"/></wsdl:output>
    </wsdl:operation>
    <wsdl:operation name="Echo">
      <wsdl:input name="EchoRequest"><soap:body use="literal"/></wsdl:input>
      <wsdl:output><soap:body use="literal"/></wsdl:output>
    </wsdl:operation>
  </wsdl:binding>
  <wsdl:binding name="Mismatch" type="tns:Math">
    <soap:binding transport="http://schemas.xmlsoap.org/soap/http"/>
    <wsdl:operation name="Subtract">
      <wsdl:input><soap:body use="literal"/></wsdl:input>
    </wsdl:operation>
  </wsdl:binding>
</wsdl:definitions>`

func TestBindingOperationMatchPrecedence(t *testing.T) {
	ext := newRecordingExtension()
	imp := newTestImporter(t, optionsWith(ext), overloadWSDL)
	b := binding(t, imp, "urn:overload", "MathSoap")

	_, err := imp.ImportBinding(b)
	require.NoError(t, err)
	require.Len(t, ext.endpoints, 1)
	ctx := ext.endpoints[0]

	contract := ctx.Endpoint.Contract
	require.Len(t, contract.Operations, 3)
	assert.Nil(t, ctx.OperationBinding(contract.Operations[0]), "a partial match loses to an exact one")
	assert.Same(t, b.Operations[0], ctx.OperationBinding(contract.Operations[1]))
	assert.Same(t, b.Operations[1], ctx.OperationBinding(contract.Operations[2]), "partial matches are accepted")

	echo := contract.Operations[2]
	assert.Same(t, b.Operations[1].Input, ctx.MessageBinding(echo.Message(description.DirectionInput)))
	assert.Same(t, echo.Message(description.DirectionOutput), ctx.Message(b.Operations[1].Output))

	wop := ctx.Contract.WSDLOperation(echo)
	require.NotNil(t, wop)
	assert.Same(t, echo, ctx.Contract.Operation(wop))
	assert.Same(t, echo.Message(description.DirectionInput), ctx.Contract.Message(wop.Input()))
}

func TestBindingOperationMismatch(t *testing.T) {
	imp := newTestImporter(t, DefaultOptions(), overloadWSDL)

	_, err := imp.ImportBinding(binding(t, imp, "urn:overload", "Mismatch"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBindingOperationMismatch)

	errs := imp.Errors()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "Cannot import wsdl:binding\n")
	assert.Contains(t, errs[0].Message, "XPath to Error Source: //wsdl:definitions[@targetNamespace='urn:overload']/wsdl:binding[@name='Mismatch']/wsdl:operation[@name='Subtract']")
}

func TestCompareOperationsWithKnownContract(t *testing.T) {
	known := description.NewContractDescription("Math", "urn:overload")
	add := known.AddOperation("Add")
	add.Messages = []*description.MessageDescription{{Direction: description.DirectionInput}}
	echo := known.AddOperation("Echo")
	echo.Messages = []*description.MessageDescription{
		{Direction: description.DirectionInput},
		{Direction: description.DirectionOutput},
	}

	opts := DefaultOptions()
	opts.KnownContracts = []*description.ContractDescription{known}
	imp := newTestImporter(t, opts, overloadWSDL)

	_, err := imp.ImportBinding(binding(t, imp, "urn:overload", "MathSoap"))
	require.Error(t, err, "Add has an output in the binding but not in the contract")
	assert.ErrorIs(t, err, ErrBindingOperationMismatch)
}
