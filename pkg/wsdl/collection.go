package wsdl

import "iter"

// Collection is an ordered set of WSDL documents with lookup by qualified
// name across all of them. Where two documents declare the same name the
// first one added wins.
type Collection struct {
	documents []*Document
	messages  map[QName]*Message
	portTypes map[QName]*PortType
	bindings  map[QName]*Binding
	services  map[QName]*Service
}

// NewCollection creates an empty collection
func NewCollection() *Collection {
	return &Collection{
		messages:  make(map[QName]*Message),
		portTypes: make(map[QName]*PortType),
		bindings:  make(map[QName]*Binding),
		services:  make(map[QName]*Service),
	}
}

// Add appends a document and indexes its named items
func (c *Collection) Add(doc *Document) {
	c.documents = append(c.documents, doc)
	ns := doc.TargetNamespace
	for _, m := range doc.Messages {
		addFirst(c.messages, QName{Namespace: ns, LocalPart: m.Name}, m)
	}
	for _, pt := range doc.PortTypes {
		addFirst(c.portTypes, QName{Namespace: ns, LocalPart: pt.Name}, pt)
	}
	for _, b := range doc.Bindings {
		addFirst(c.bindings, QName{Namespace: ns, LocalPart: b.Name}, b)
	}
	for _, s := range doc.Services {
		addFirst(c.services, QName{Namespace: ns, LocalPart: s.Name}, s)
	}
}

func addFirst[T any](index map[QName]T, key QName, value T) {
	if _, exists := index[key]; !exists {
		index[key] = value
	}
}

// Documents returns the documents in the order they were added
func (c *Collection) Documents() []*Document {
	return c.documents
}

// Len returns the number of documents
func (c *Collection) Len() int {
	return len(c.documents)
}

// Message looks up a message by qualified name
func (c *Collection) Message(name QName) *Message {
	return c.messages[name]
}

// PortType looks up a port type by qualified name
func (c *Collection) PortType(name QName) *PortType {
	return c.portTypes[name]
}

// Binding looks up a binding by qualified name
func (c *Collection) Binding(name QName) *Binding {
	return c.bindings[name]
}

// Service looks up a service by qualified name
func (c *Collection) Service(name QName) *Service {
	return c.services[name]
}

// PortTypes enumerates every port type of every document in order
func (c *Collection) PortTypes() iter.Seq[*PortType] {
	return func(yield func(*PortType) bool) {
		for _, doc := range c.documents {
			for _, pt := range doc.PortTypes {
				if !yield(pt) {
					return
				}
			}
		}
	}
}

// Bindings enumerates every binding of every document in order
func (c *Collection) Bindings() iter.Seq[*Binding] {
	return func(yield func(*Binding) bool) {
		for _, doc := range c.documents {
			for _, b := range doc.Bindings {
				if !yield(b) {
					return
				}
			}
		}
	}
}

// Services enumerates every service of every document in order
func (c *Collection) Services() iter.Seq[*Service] {
	return func(yield func(*Service) bool) {
		for _, doc := range c.documents {
			for _, s := range doc.Services {
				if !yield(s) {
					return
				}
			}
		}
	}
}

// Ports enumerates every port of every service in order
func (c *Collection) Ports() iter.Seq[*Port] {
	return func(yield func(*Port) bool) {
		for s := range c.Services() {
			for _, p := range s.Ports {
				if !yield(p) {
					return
				}
			}
		}
	}
}
