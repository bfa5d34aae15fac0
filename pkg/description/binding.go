package description

import "github.com/pyneda/wsimport/pkg/xmlnode"

// BindingElement is one layer of a binding's channel stack
type BindingElement interface {
	ElementKind() string
}

// Binding is an ordered stack of binding elements
type Binding struct {
	Name      string           `json:"name"`
	Namespace string           `json:"namespace"`
	Elements  []BindingElement `json:"-"`
}

// NewBinding creates a binding holding the given elements
func NewBinding(name, namespace string, elements []BindingElement) *Binding {
	return &Binding{Name: name, Namespace: namespace, Elements: elements}
}

// QName returns the qualified name of the binding
func (b *Binding) QName() QName {
	return QName{Name: b.Name, Namespace: b.Namespace}
}

// ElementKinds lists the kinds of the binding elements in order
func (b *Binding) ElementKinds() []string {
	kinds := make([]string, 0, len(b.Elements))
	for _, e := range b.Elements {
		kinds = append(kinds, e.ElementKind())
	}
	return kinds
}

// FindElement returns the first binding element of type T
func FindElement[T BindingElement](b *Binding) (T, bool) {
	for _, e := range b.Elements {
		if typed, ok := e.(T); ok {
			return typed, true
		}
	}
	var zero T
	return zero, false
}

// EnvelopeVersion identifies the SOAP envelope format
type EnvelopeVersion string

const (
	EnvelopeSOAP11 EnvelopeVersion = "soap11"
	EnvelopeSOAP12 EnvelopeVersion = "soap12"
)

// AddressingVersion identifies the WS-Addressing version in use
type AddressingVersion string

const (
	AddressingNone   AddressingVersion = "none"
	Addressing200408 AddressingVersion = "wsa2004/08"
	Addressing10     AddressingVersion = "wsa10"
)

// AddressingMode restricts which response addresses are accepted
type AddressingMode string

const (
	AddressingModeAny          AddressingMode = "any"
	AddressingModeAnonymous    AddressingMode = "anonymous"
	AddressingModeNonAnonymous AddressingMode = "nonAnonymous"
)

// TextMessageEncodingBindingElement encodes messages as SOAP text
type TextMessageEncodingBindingElement struct {
	EnvelopeVersion EnvelopeVersion
}

func (*TextMessageEncodingBindingElement) ElementKind() string { return "textMessageEncoding" }

// HTTPTransportBindingElement sends messages over HTTP or HTTPS
type HTTPTransportBindingElement struct {
	Secure bool
}

func (e *HTTPTransportBindingElement) ElementKind() string {
	if e.Secure {
		return "httpsTransport"
	}
	return "httpTransport"
}

// Scheme returns the URI scheme of the transport
func (e *HTTPTransportBindingElement) Scheme() string {
	if e.Secure {
		return "https"
	}
	return "http"
}

// AddressingBindingElement records the WS-Addressing requirements of a binding
type AddressingBindingElement struct {
	Version AddressingVersion
	Mode    AddressingMode
}

func (*AddressingBindingElement) ElementKind() string { return "addressing" }

// TransportSecurityBindingElement requires the transport to provide security
type TransportSecurityBindingElement struct {
	PolicyNamespace string
}

func (*TransportSecurityBindingElement) ElementKind() string { return "transportSecurity" }

// ReliableSessionBindingElement enables WS-ReliableMessaging
type ReliableSessionBindingElement struct {
	PolicyNamespace string
	Ordered         bool
}

func (*ReliableSessionBindingElement) ElementKind() string { return "reliableSession" }

// UnrecognizedAssertionsBindingElement carries the policy assertions no
// importer understood, grouped by the scope they were attached to.
type UnrecognizedAssertionsBindingElement struct {
	BindingName         QName
	BindingAssertions   []*xmlnode.Element
	OperationAssertions map[*OperationDescription][]*xmlnode.Element
	MessageAssertions   map[*MessageDescription][]*xmlnode.Element
	FaultAssertions     map[*FaultDescription][]*xmlnode.Element
}

// NewUnrecognizedAssertionsBindingElement creates an empty catch-all element
func NewUnrecognizedAssertionsBindingElement(bindingName QName, bindingAssertions []*xmlnode.Element) *UnrecognizedAssertionsBindingElement {
	return &UnrecognizedAssertionsBindingElement{
		BindingName:         bindingName,
		BindingAssertions:   bindingAssertions,
		OperationAssertions: make(map[*OperationDescription][]*xmlnode.Element),
		MessageAssertions:   make(map[*MessageDescription][]*xmlnode.Element),
		FaultAssertions:     make(map[*FaultDescription][]*xmlnode.Element),
	}
}

func (*UnrecognizedAssertionsBindingElement) ElementKind() string { return "unrecognizedAssertions" }

// Count returns the total number of unrecognized assertions
func (e *UnrecognizedAssertionsBindingElement) Count() int {
	n := len(e.BindingAssertions)
	for _, a := range e.OperationAssertions {
		n += len(a)
	}
	for _, a := range e.MessageAssertions {
		n += len(a)
	}
	for _, a := range e.FaultAssertions {
		n += len(a)
	}
	return n
}
