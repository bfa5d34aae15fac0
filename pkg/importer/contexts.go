package importer

import (
	"github.com/pyneda/wsimport/pkg/description"
	"github.com/pyneda/wsimport/pkg/wsdl"
)

// correlation maps description objects to the WSDL items they were built
// from, and back
type correlation[D comparable, W comparable] struct {
	items map[D]W
	descs map[W]D
}

func newCorrelation[D comparable, W comparable]() correlation[D, W] {
	return correlation[D, W]{items: make(map[D]W), descs: make(map[W]D)}
}

func (c correlation[D, W]) add(d D, w W) {
	c.items[d] = w
	c.descs[w] = d
}

// ContractConversionContext correlates a contract with the port type it
// was imported from
type ContractConversionContext struct {
	Contract *description.ContractDescription
	PortType *wsdl.PortType

	operations correlation[*description.OperationDescription, *wsdl.Operation]
	messages   correlation[*description.MessageDescription, *wsdl.OperationMessage]
	faults     correlation[*description.FaultDescription, *wsdl.OperationMessage]
}

func newContractConversionContext(contract *description.ContractDescription, portType *wsdl.PortType) *ContractConversionContext {
	return &ContractConversionContext{
		Contract:   contract,
		PortType:   portType,
		operations: newCorrelation[*description.OperationDescription, *wsdl.Operation](),
		messages:   newCorrelation[*description.MessageDescription, *wsdl.OperationMessage](),
		faults:     newCorrelation[*description.FaultDescription, *wsdl.OperationMessage](),
	}
}

// Operation returns the operation built from a port type operation
func (c *ContractConversionContext) Operation(op *wsdl.Operation) *description.OperationDescription {
	return c.operations.descs[op]
}

// WSDLOperation returns the port type operation an operation was built from
func (c *ContractConversionContext) WSDLOperation(op *description.OperationDescription) *wsdl.Operation {
	return c.operations.items[op]
}

// Message returns the message built from an operation message
func (c *ContractConversionContext) Message(m *wsdl.OperationMessage) *description.MessageDescription {
	return c.messages.descs[m]
}

// WSDLMessage returns the operation message a message was built from
func (c *ContractConversionContext) WSDLMessage(m *description.MessageDescription) *wsdl.OperationMessage {
	return c.messages.items[m]
}

// Fault returns the fault built from an operation fault
func (c *ContractConversionContext) Fault(f *wsdl.OperationMessage) *description.FaultDescription {
	return c.faults.descs[f]
}

// WSDLFault returns the operation fault a fault was built from
func (c *ContractConversionContext) WSDLFault(f *description.FaultDescription) *wsdl.OperationMessage {
	return c.faults.items[f]
}

// EndpointConversionContext correlates an endpoint with the binding, and
// possibly the port, it was imported from. Contract is nil when the
// endpoint's contract was supplied by the caller rather than imported.
type EndpointConversionContext struct {
	Contract *ContractConversionContext
	Endpoint *description.ServiceEndpoint
	Binding  *wsdl.Binding
	Port     *wsdl.Port

	operations correlation[*description.OperationDescription, *wsdl.OperationBinding]
	messages   correlation[*description.MessageDescription, *wsdl.MessageBinding]
	faults     correlation[*description.FaultDescription, *wsdl.MessageBinding]
}

func newEndpointConversionContext(contract *ContractConversionContext, endpoint *description.ServiceEndpoint, binding *wsdl.Binding) *EndpointConversionContext {
	return &EndpointConversionContext{
		Contract:   contract,
		Endpoint:   endpoint,
		Binding:    binding,
		operations: newCorrelation[*description.OperationDescription, *wsdl.OperationBinding](),
		messages:   newCorrelation[*description.MessageDescription, *wsdl.MessageBinding](),
		faults:     newCorrelation[*description.FaultDescription, *wsdl.MessageBinding](),
	}
}

// forPort derives the context of a port from the context of its binding.
// The correlations are shared.
func (c *EndpointConversionContext) forPort(endpoint *description.ServiceEndpoint, port *wsdl.Port) *EndpointConversionContext {
	derived := *c
	derived.Endpoint = endpoint
	derived.Port = port
	return &derived
}

// OperationBinding returns the operation binding of an operation
func (c *EndpointConversionContext) OperationBinding(op *description.OperationDescription) *wsdl.OperationBinding {
	return c.operations.items[op]
}

// Operation returns the operation bound by an operation binding
func (c *EndpointConversionContext) Operation(ob *wsdl.OperationBinding) *description.OperationDescription {
	return c.operations.descs[ob]
}

// MessageBinding returns the input or output binding of a message
func (c *EndpointConversionContext) MessageBinding(m *description.MessageDescription) *wsdl.MessageBinding {
	return c.messages.items[m]
}

// Message returns the message bound by an input or output binding
func (c *EndpointConversionContext) Message(mb *wsdl.MessageBinding) *description.MessageDescription {
	return c.messages.descs[mb]
}

// FaultBinding returns the fault binding of a fault
func (c *EndpointConversionContext) FaultBinding(f *description.FaultDescription) *wsdl.MessageBinding {
	return c.faults.items[f]
}

// Fault returns the fault bound by a fault binding
func (c *EndpointConversionContext) Fault(fb *wsdl.MessageBinding) *description.FaultDescription {
	return c.faults.descs[fb]
}
