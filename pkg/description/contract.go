// Package description holds the logical service model produced by the
// importer: contracts, bindings and endpoints, free of any WSDL document
// structure.
package description

// QName is a namespace qualified name
type QName struct {
	Name      string `json:"name" yaml:"name"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

func (q QName) String() string {
	if q.Namespace == "" {
		return q.Name
	}
	return "{" + q.Namespace + "}" + q.Name
}

// SessionMode states whether a contract requires a session
type SessionMode int

const (
	SessionModeAllowed SessionMode = iota
	SessionModeRequired
	SessionModeNotAllowed
)

func (m SessionMode) String() string {
	switch m {
	case SessionModeRequired:
		return "required"
	case SessionModeNotAllowed:
		return "notAllowed"
	default:
		return "allowed"
	}
}

// MessageDirection is the direction of a message relative to the service
type MessageDirection int

const (
	DirectionInput MessageDirection = iota
	DirectionOutput
)

func (d MessageDirection) String() string {
	if d == DirectionOutput {
		return "output"
	}
	return "input"
}

// ContractDescription describes a service contract
type ContractDescription struct {
	Name        string                  `json:"name"`
	Namespace   string                  `json:"namespace"`
	SessionMode SessionMode             `json:"session_mode"`
	Operations  []*OperationDescription `json:"operations"`
}

// NewContractDescription creates an empty contract
func NewContractDescription(name, namespace string) *ContractDescription {
	return &ContractDescription{Name: name, Namespace: namespace}
}

// QName returns the qualified name of the contract
func (c *ContractDescription) QName() QName {
	return QName{Name: c.Name, Namespace: c.Namespace}
}

// AddOperation appends a new operation to the contract and returns it
func (c *ContractDescription) AddOperation(name string) *OperationDescription {
	op := NewOperationDescription(name)
	c.Operations = append(c.Operations, op)
	return op
}

// Operation returns the first operation with the given name, or nil
func (c *ContractDescription) Operation(name string) *OperationDescription {
	for _, op := range c.Operations {
		if op.Name == name {
			return op
		}
	}
	return nil
}

// OperationDescription describes an operation of a contract
type OperationDescription struct {
	Name          string                `json:"name"`
	IsInitiating  bool                  `json:"is_initiating"`
	IsTerminating bool                  `json:"is_terminating"`
	Messages      []*MessageDescription `json:"messages"`
	Faults        []*FaultDescription   `json:"faults,omitempty"`
}

// NewOperationDescription creates an initiating, non-terminating operation
func NewOperationDescription(name string) *OperationDescription {
	return &OperationDescription{Name: name, IsInitiating: true}
}

// Message returns the message flowing in the given direction, or nil
func (o *OperationDescription) Message(direction MessageDirection) *MessageDescription {
	for _, m := range o.Messages {
		if m.Direction == direction {
			return m
		}
	}
	return nil
}

// IsOneWay reports whether the operation has no output message
func (o *OperationDescription) IsOneWay() bool {
	return o.Message(DirectionOutput) == nil
}

// MessageDescription describes a message exchanged by an operation
type MessageDescription struct {
	Action      string                   `json:"action"`
	Direction   MessageDirection         `json:"direction"`
	MessageName string                   `json:"message_name"`
	MessageType QName                    `json:"message_type"`
	Parts       []MessagePartDescription `json:"parts,omitempty"`
}

// MessagePartDescription describes a part of a message body
type MessagePartDescription struct {
	Name    string `json:"name"`
	Element QName  `json:"element,omitempty"`
	Type    QName  `json:"type,omitempty"`
}

// FaultDescription describes a declared fault of an operation
type FaultDescription struct {
	Action      string `json:"action"`
	Name        string `json:"name"`
	MessageType QName  `json:"message_type"`
}
