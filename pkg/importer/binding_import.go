package importer

import (
	"fmt"

	"github.com/pyneda/wsimport/pkg/description"
	"github.com/pyneda/wsimport/pkg/wsdl"
)

type matchResult int

const (
	matchNone matchResult = iota
	matchPartial
	matchExact
)

// importBinding returns the endpoint context of a binding, building it on
// first use
func (imp *Importer) importBinding(b *wsdl.Binding, behavior errorBehavior) (*EndpointConversionContext, error) {
	if imp.isBlocklisted(b) {
		return nil, imp.alreadyFaulted(b)
	}

	name := b.QName()
	if ctx, ok := imp.importedBindings[name]; ok {
		return ctx, nil
	}
	if err := imp.ensureBeforeImport(); err != nil {
		return nil, err
	}

	ctx, err := imp.buildBinding(b)
	if err != nil {
		return nil, imp.fail(b, err, behavior)
	}
	imp.importedBindings[name] = ctx
	imp.logger.Debug().Str("binding", name.String()).Strs("elements", ctx.Endpoint.Binding.ElementKinds()).Msg("Imported binding")
	return ctx, nil
}

func (imp *Importer) buildBinding(b *wsdl.Binding) (*EndpointConversionContext, error) {
	contract, err := imp.contractFor(b.Type)
	if err != nil {
		return nil, err
	}

	endpoint := description.NewServiceEndpoint(contract)
	ctx := newEndpointConversionContext(imp.importedPortTypes[b.Type], endpoint, b)
	for _, ob := range b.Operations {
		if err := imp.bindOperation(ctx, ob); err != nil {
			return nil, newImportError(ob, err)
		}
	}

	binding, err := imp.createBinding(ctx, b.Name, b.OwnerDocument().TargetNamespace)
	if err != nil {
		return nil, err
	}
	endpoint.Binding = binding

	if err := imp.callImportEndpoint(ctx); err != nil {
		return nil, err
	}
	if err := imp.verifyBinding(b); err != nil {
		return nil, err
	}
	return ctx, nil
}

// bindOperation correlates an operation binding, its message bindings and
// its fault bindings with the contract
func (imp *Importer) bindOperation(ctx *EndpointConversionContext, ob *wsdl.OperationBinding) error {
	op, err := imp.findOperation(ctx, ob)
	if err != nil {
		return err
	}
	ctx.operations.add(op, ob)

	for _, m := range op.Messages {
		if mb := findMessageBinding(ob, m); mb != nil {
			ctx.messages.add(m, mb)
		}
	}
	for _, f := range op.Faults {
		if fb := findFaultBinding(ob, f); fb != nil {
			ctx.faults.add(f, fb)
		}
	}
	return nil
}

// createBinding resolves the policy of an endpoint into a binding
func (imp *Importer) createBinding(ctx *EndpointConversionContext, name, namespace string) (*description.Binding, error) {
	elements, err := imp.importPolicy(ctx)
	if err != nil {
		var item wsdl.NamedItem = ctx.Binding
		if ctx.Port != nil {
			item = ctx.Port
		}
		return nil, newImportError(item, err)
	}
	return description.NewBinding(name, namespace, elements), nil
}

// findOperation returns the contract operation an operation binding binds.
// Imported contracts are matched through their port type; known contracts
// are matched by comparing operation shapes.
func (imp *Importer) findOperation(ctx *EndpointConversionContext, ob *wsdl.OperationBinding) (*description.OperationDescription, error) {
	if ctx.Contract != nil {
		wop, err := findWSDLOperation(ob, ctx.Contract.PortType)
		if err != nil {
			return nil, err
		}
		return ctx.Contract.Operation(wop), nil
	}

	contract := ctx.Endpoint.Contract
	for _, op := range contract.Operations {
		if imp.compareOperations(op, contract, ob) {
			return op, nil
		}
	}
	return nil, fmt.Errorf("%w: unable to locate operation %s in contract %s", ErrBindingOperationMismatch, ob.Name, contract.Name)
}

// findWSDLOperation returns the port type operation an operation binding
// matches, preferring an exact match over a partial one
func findWSDLOperation(ob *wsdl.OperationBinding, pt *wsdl.PortType) (*wsdl.Operation, error) {
	if ob.Name == "" {
		return nil, fmt.Errorf("an operation binding of binding %s has no name", ob.Binding().Name)
	}

	var partial *wsdl.Operation
	for _, wop := range pt.Operations {
		switch matchOperation(ob, wop) {
		case matchExact:
			return wop, nil
		case matchPartial:
			partial = wop
		}
	}
	if partial != nil {
		return partial, nil
	}
	return nil, fmt.Errorf("%w: binding %s has an operation %s with no matching operation in port type %s",
		ErrBindingOperationMismatch, ob.Binding().Name, ob.Name, pt.Name)
}

// matchOperation compares the names of an operation binding and its message
// bindings with a port type operation. Unnamed messages match partially
// when the other side carries the default name.
func matchOperation(ob *wsdl.OperationBinding, wop *wsdl.Operation) matchResult {
	if ob.Name != wop.Name {
		return matchNone
	}

	result := matchExact
	for _, wm := range wop.Messages() {
		mb := ob.Input
		if wm.Direction == wsdl.DirectionOutput {
			mb = ob.Output
		}
		if mb == nil {
			return matchNone
		}
		switch matchMessageName(mb, wm) {
		case matchNone:
			return matchNone
		case matchPartial:
			result = matchPartial
		}
	}
	return result
}

func matchMessageName(mb *wsdl.MessageBinding, wm *wsdl.OperationMessage) matchResult {
	if mb.Name == wm.Name {
		return matchExact
	}
	implied := messageName(wm)
	if wm.Name == "" && mb.Name == implied {
		return matchPartial
	}
	if mb.Name == "" && wm.Name == implied {
		return matchPartial
	}
	return matchNone
}

// compareOperations matches an operation of a known contract with an
// operation binding. Only operations with at most one input and one output
// are supported; others never match.
func (imp *Importer) compareOperations(op *description.OperationDescription, contract *description.ContractDescription, ob *wsdl.OperationBinding) bool {
	if op.Name != ob.Name {
		return false
	}
	if len(op.Messages) > 2 {
		imp.LogWarning(fmt.Sprintf("operation %s of contract %s has %d messages and cannot be matched with a binding operation",
			op.Name, contract.Name, len(op.Messages)))
		return false
	}
	if (op.Message(description.DirectionOutput) != nil) != (ob.Output != nil) {
		return false
	}
	if (op.Message(description.DirectionInput) != nil) != (ob.Input != nil) {
		return false
	}
	return true
}

func findMessageBinding(ob *wsdl.OperationBinding, m *description.MessageDescription) *wsdl.MessageBinding {
	if m.Direction == description.DirectionInput {
		return ob.Input
	}
	return ob.Output
}

func findFaultBinding(ob *wsdl.OperationBinding, f *description.FaultDescription) *wsdl.MessageBinding {
	for _, fb := range ob.Faults {
		if fb.Name == f.Name {
			return fb
		}
	}
	return nil
}
