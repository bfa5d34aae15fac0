package wsdl

import (
	"encoding/xml"

	"github.com/pyneda/wsimport/pkg/xmlnode"
)

// ItemKind identifies the WSDL construct a NamedItem was parsed from
type ItemKind int

const (
	KindDefinitions ItemKind = iota
	KindMessage
	KindPortType
	KindOperation
	KindOperationInput
	KindOperationOutput
	KindOperationFault
	KindBinding
	KindOperationBinding
	KindInputBinding
	KindOutputBinding
	KindFaultBinding
	KindService
	KindPort
)

// MessageDirection distinguishes input, output and fault messages
type MessageDirection int

const (
	DirectionInput MessageDirection = iota
	DirectionOutput
	DirectionFault
)

func (d MessageDirection) String() string {
	switch d {
	case DirectionInput:
		return "input"
	case DirectionOutput:
		return "output"
	default:
		return "fault"
	}
}

// NamedItem is implemented by every WSDL construct that can carry
// extensibility elements and attributes.
type NamedItem interface {
	ItemName() string
	Kind() ItemKind
	OwnerDocument() *Document
	ExtensionElements() []*xmlnode.Element
	ExtensionAttributes() []xml.Attr
}

// Item holds the fields shared by all named WSDL constructs
type Item struct {
	Name          string             `json:"name,omitempty"`
	Documentation string             `json:"documentation,omitempty"`
	Extensions    []*xmlnode.Element `json:"-"`
	Attributes    []xml.Attr         `json:"-"`
}

func (i *Item) ItemName() string                      { return i.Name }
func (i *Item) ExtensionElements() []*xmlnode.Element { return i.Extensions }
func (i *Item) ExtensionAttributes() []xml.Attr       { return i.Attributes }

// Document represents a parsed WSDL 1.1 document
type Document struct {
	Item
	TargetNamespace string        `json:"target_namespace"`
	SourceURL       string        `json:"source_url,omitempty"`
	Types           *Types        `json:"types,omitempty"`
	Messages        []*Message    `json:"messages"`
	PortTypes       []*PortType   `json:"port_types"`
	Bindings        []*Binding    `json:"bindings"`
	Services        []*Service    `json:"services"`
	Imports         []WSDLImport  `json:"-"`
	Namespaces      *NamespaceMap `json:"-"`
}

func (d *Document) Kind() ItemKind           { return KindDefinitions }
func (d *Document) OwnerDocument() *Document { return d }

// WSDLImport represents a wsdl:import element
type WSDLImport struct {
	Namespace string `json:"namespace,omitempty"`
	Location  string `json:"location,omitempty"`
}

// Types contains the type definitions (XSD schemas)
type Types struct {
	Schemas []*XSDSchema `json:"schemas"`
}

// Message defines an abstract data definition
type Message struct {
	Item
	Parts []MessagePart `json:"parts"`
	doc   *Document
}

func (m *Message) Kind() ItemKind           { return KindMessage }
func (m *Message) OwnerDocument() *Document { return m.doc }

// QName returns the qualified name of the message
func (m *Message) QName() QName { return QName{Namespace: m.doc.TargetNamespace, LocalPart: m.Name} }

// MessagePart references a type or element within a message
type MessagePart struct {
	Name    string `json:"name"`
	Element QName  `json:"element,omitempty"`
	Type    QName  `json:"type,omitempty"`
}

// PortType defines abstract operation signatures (interface)
type PortType struct {
	Item
	Operations []*Operation `json:"operations"`
	doc        *Document
}

func (pt *PortType) Kind() ItemKind           { return KindPortType }
func (pt *PortType) OwnerDocument() *Document { return pt.doc }

// QName returns the qualified name of the port type
func (pt *PortType) QName() QName { return QName{Namespace: pt.doc.TargetNamespace, LocalPart: pt.Name} }

// Operation defines a single abstract operation
type Operation struct {
	Item
	ParameterOrder string              `json:"parameter_order,omitempty"`
	Faults         []*OperationMessage `json:"faults,omitempty"`
	messages       []*OperationMessage
	portType       *PortType
}

func (o *Operation) Kind() ItemKind           { return KindOperation }
func (o *Operation) OwnerDocument() *Document { return o.portType.doc }

// PortType returns the port type declaring the operation
func (o *Operation) PortType() *PortType { return o.portType }

// Messages returns the input and output messages in document order
func (o *Operation) Messages() []*OperationMessage { return o.messages }

// Input returns the first input message, or nil
func (o *Operation) Input() *OperationMessage { return o.message(DirectionInput) }

// Output returns the first output message, or nil
func (o *Operation) Output() *OperationMessage { return o.message(DirectionOutput) }

func (o *Operation) message(direction MessageDirection) *OperationMessage {
	for _, m := range o.messages {
		if m.Direction == direction {
			return m
		}
	}
	return nil
}

// OperationMessage is an input, output or fault of a port type operation
type OperationMessage struct {
	Item
	Message   QName            `json:"message"`
	Direction MessageDirection `json:"direction"`
	operation *Operation
}

func (m *OperationMessage) Kind() ItemKind {
	switch m.Direction {
	case DirectionInput:
		return KindOperationInput
	case DirectionOutput:
		return KindOperationOutput
	default:
		return KindOperationFault
	}
}

func (m *OperationMessage) OwnerDocument() *Document { return m.operation.OwnerDocument() }

// Operation returns the operation the message belongs to
func (m *OperationMessage) Operation() *Operation { return m.operation }

// Binding represents the concrete protocol binding for a port type
type Binding struct {
	Item
	Type       QName               `json:"type"`
	Operations []*OperationBinding `json:"operations"`
	doc        *Document
}

func (b *Binding) Kind() ItemKind           { return KindBinding }
func (b *Binding) OwnerDocument() *Document { return b.doc }

// QName returns the qualified name of the binding
func (b *Binding) QName() QName { return QName{Namespace: b.doc.TargetNamespace, LocalPart: b.Name} }

// OperationBinding defines operation-level binding details
type OperationBinding struct {
	Item
	Input   *MessageBinding   `json:"input,omitempty"`
	Output  *MessageBinding   `json:"output,omitempty"`
	Faults  []*MessageBinding `json:"faults,omitempty"`
	binding *Binding
}

func (ob *OperationBinding) Kind() ItemKind           { return KindOperationBinding }
func (ob *OperationBinding) OwnerDocument() *Document { return ob.binding.doc }

// Binding returns the binding declaring the operation binding
func (ob *OperationBinding) Binding() *Binding { return ob.binding }

// MessageBinding describes the encoding of an input, output or fault
type MessageBinding struct {
	Item
	Direction        MessageDirection `json:"direction"`
	operationBinding *OperationBinding
}

func (mb *MessageBinding) Kind() ItemKind {
	switch mb.Direction {
	case DirectionInput:
		return KindInputBinding
	case DirectionOutput:
		return KindOutputBinding
	default:
		return KindFaultBinding
	}
}

func (mb *MessageBinding) OwnerDocument() *Document { return mb.operationBinding.OwnerDocument() }

// OperationBinding returns the operation binding the message binding belongs to
func (mb *MessageBinding) OperationBinding() *OperationBinding { return mb.operationBinding }

// Service represents a WSDL service (collection of ports/endpoints)
type Service struct {
	Item
	Ports []*Port `json:"ports"`
	doc   *Document
}

func (s *Service) Kind() ItemKind           { return KindService }
func (s *Service) OwnerDocument() *Document { return s.doc }

// Port represents a single endpoint (binding + address)
type Port struct {
	Item
	Binding QName `json:"binding"`
	service *Service
}

func (p *Port) Kind() ItemKind           { return KindPort }
func (p *Port) OwnerDocument() *Document { return p.service.doc }

// Service returns the service declaring the port
func (p *Port) Service() *Service { return p.service }

// Link sets the parent references of every item in the document. Documents
// built by the parser are already linked; call Link after assembling or
// modifying a Document by hand.
func (d *Document) Link() {
	for _, m := range d.Messages {
		m.doc = d
	}
	for _, pt := range d.PortTypes {
		pt.doc = d
		for _, op := range pt.Operations {
			op.portType = pt
			for _, m := range op.messages {
				m.operation = op
			}
			for _, f := range op.Faults {
				f.Direction = DirectionFault
				f.operation = op
			}
		}
	}
	for _, b := range d.Bindings {
		b.doc = d
		for _, ob := range b.Operations {
			ob.binding = b
			if ob.Input != nil {
				ob.Input.Direction = DirectionInput
				ob.Input.operationBinding = ob
			}
			if ob.Output != nil {
				ob.Output.Direction = DirectionOutput
				ob.Output.operationBinding = ob
			}
			for _, f := range ob.Faults {
				f.Direction = DirectionFault
				f.operationBinding = ob
			}
		}
	}
	for _, s := range d.Services {
		s.doc = d
		for _, p := range s.Ports {
			p.service = s
		}
	}
}

// AddMessage appends an input or output message to the operation, keeping
// document order.
func (o *Operation) AddMessage(m *OperationMessage) {
	m.operation = o
	o.messages = append(o.messages, m)
}
