package importer

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/pyneda/wsimport/pkg/description"
	"github.com/pyneda/wsimport/pkg/wsdl"
	"github.com/pyneda/wsimport/pkg/xmlnode"
)

const (
	// AddressingWSDLNamespace is the WS-Addressing 1.0 WSDL binding namespace
	AddressingWSDLNamespace = "http://www.w3.org/2006/05/addressing/wsdl"
	// AddressingMetadataNamespace is the WS-Addressing 1.0 Metadata namespace
	AddressingMetadataNamespace = "http://www.w3.org/2007/05/addressing/metadata"
	// SessionNamespace holds the session attributes of port types and
	// operations
	SessionNamespace = "http://schemas.microsoft.com/ws/2005/12/wsdl/contract"

	DefaultFaultAction = "http://www.w3.org/2005/08/addressing/soap/fault"
)

// importPortType returns the contract for a port type, building it on first
// use. Known contracts and contracts imported earlier in the session are
// reused.
func (imp *Importer) importPortType(pt *wsdl.PortType, behavior errorBehavior) (*description.ContractDescription, error) {
	if imp.isBlocklisted(pt) {
		return nil, imp.alreadyFaulted(pt)
	}

	name := pt.QName()
	if contract, ok := imp.existingContract(name); ok {
		return contract, nil
	}
	if err := imp.ensureBeforeImport(); err != nil {
		return nil, err
	}

	ctx, err := imp.buildContract(pt)
	if err != nil {
		return nil, imp.fail(pt, err, behavior)
	}
	imp.importedPortTypes[name] = ctx
	imp.logger.Debug().Str("portType", name.String()).Int("operations", len(ctx.Contract.Operations)).Msg("Imported contract")
	return ctx.Contract, nil
}

func (imp *Importer) existingContract(portType wsdl.QName) (*description.ContractDescription, bool) {
	if contract, ok := imp.knownContracts[contractName(portType)]; ok {
		return contract, true
	}
	if ctx, ok := imp.importedPortTypes[portType]; ok {
		return ctx.Contract, true
	}
	return nil, false
}

// contractFor resolves the contract of a binding's port type, importing the
// port type when needed
func (imp *Importer) contractFor(portType wsdl.QName) (*description.ContractDescription, error) {
	if contract, ok := imp.existingContract(portType); ok {
		return contract, nil
	}
	pt := imp.store.Documents.PortType(portType)
	if pt == nil {
		return nil, fmt.Errorf("%w: port type %s", ErrUnresolvedReference, portType)
	}
	return imp.importPortType(pt, rethrowErrors)
}

func (imp *Importer) buildContract(pt *wsdl.PortType) (*ContractConversionContext, error) {
	name := contractName(pt.QName())
	contract := description.NewContractDescription(name.Name, name.Namespace)
	setSessionMode(contract, pt)
	ctx := newContractConversionContext(contract, pt)

	for _, wop := range pt.Operations {
		if n := len(wop.Messages()); n > 2 {
			return nil, newImportError(wop, fmt.Errorf("%w: operation %s has %d input and output messages", ErrUnsupportedOperation, wop.Name, n))
		}

		op := contract.AddOperation(wop.Name)
		setInitiatingTerminating(op, wop)
		ctx.operations.add(op, wop)

		for _, wm := range wop.Messages() {
			m := imp.createMessage(wm)
			op.Messages = append(op.Messages, m)
			ctx.messages.add(m, wm)
		}
		for _, wf := range wop.Faults {
			if wf.Name == "" {
				continue
			}
			f := &description.FaultDescription{
				Action:      actionURI(wf),
				Name:        wf.Name,
				MessageType: toQName(wf.Message),
			}
			op.Faults = append(op.Faults, f)
			ctx.faults.add(f, wf)
		}
	}

	if err := imp.callImportContract(ctx); err != nil {
		return nil, err
	}
	if err := imp.verifyPortType(pt); err != nil {
		return nil, err
	}
	return ctx, nil
}

func (imp *Importer) createMessage(wm *wsdl.OperationMessage) *description.MessageDescription {
	m := &description.MessageDescription{
		Action:      actionURI(wm),
		Direction:   description.DirectionInput,
		MessageName: messageName(wm),
		MessageType: toQName(wm.Message),
	}
	if wm.Direction == wsdl.DirectionOutput {
		m.Direction = description.DirectionOutput
	}
	if msg := imp.store.Documents.Message(wm.Message); msg != nil {
		for _, part := range msg.Parts {
			m.Parts = append(m.Parts, description.MessagePartDescription{
				Name:    part.Name,
				Element: toQName(part.Element),
				Type:    toQName(part.Type),
			})
		}
	}
	return m
}

// contractName maps a port type name to the name of its contract
func contractName(portType wsdl.QName) description.QName {
	return toQName(portType)
}

func toQName(q wsdl.QName) description.QName {
	return description.QName{Name: q.LocalPart, Namespace: q.Namespace}
}

// messageName returns the name of an operation message, deriving one from
// the operation when the message is unnamed
func messageName(wm *wsdl.OperationMessage) string {
	if wm.Name != "" {
		return wm.Name
	}
	op := wm.Operation()
	messages := op.Messages()
	if len(messages) == 1 {
		return op.Name
	}
	switch {
	case len(messages) > 0 && messages[0] == wm:
		if wm.Direction == wsdl.DirectionOutput {
			return op.Name + "Solicit"
		}
		return op.Name + "Request"
	case len(messages) > 1 && messages[1] == wm:
		return op.Name + "Response"
	}
	return ""
}

// actionURI returns the explicit WS-Addressing action of a message, or the
// default action derived from its port type and name
func actionURI(wm *wsdl.OperationMessage) string {
	if action, ok := explicitAction(wm.Attributes); ok {
		return action
	}
	if wm.Direction == wsdl.DirectionFault {
		return DefaultFaultAction
	}

	pt := wm.Operation().PortType()
	return DefaultAction(pt.OwnerDocument().TargetNamespace, pt.Name, messageName(wm))
}

// DefaultAction builds the action URI of a message that declares none
func DefaultAction(namespace, portType, message string) string {
	delimiter := "/"
	if len(namespace) >= 4 && strings.EqualFold(namespace[:4], "urn:") {
		delimiter = ":"
	}
	base := namespace
	if !strings.HasSuffix(base, delimiter) {
		base += delimiter
	}
	return base + portType + delimiter + message
}

func explicitAction(attrs []xml.Attr) (string, bool) {
	for _, ns := range []string{AddressingWSDLNamespace, AddressingMetadataNamespace} {
		if v, ok := xmlnode.AttrValue(attrs, ns, "Action"); ok {
			return v, true
		}
	}
	return "", false
}

func setSessionMode(contract *description.ContractDescription, pt *wsdl.PortType) {
	switch v, _ := xmlnode.AttrValue(pt.Attributes, SessionNamespace, "usingSession"); v {
	case "true":
		contract.SessionMode = description.SessionModeRequired
	case "false":
		contract.SessionMode = description.SessionModeNotAllowed
	}
}

func setInitiatingTerminating(op *description.OperationDescription, wop *wsdl.Operation) {
	switch v, _ := xmlnode.AttrValue(wop.Attributes, SessionNamespace, "isInitiating"); v {
	case "true":
		op.IsInitiating = true
	case "false":
		op.IsInitiating = false
	}
	switch v, _ := xmlnode.AttrValue(wop.Attributes, SessionNamespace, "isTerminating"); v {
	case "true":
		op.IsTerminating = true
	case "false":
		op.IsTerminating = false
	}
}
