package wsdl

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/pyneda/wsimport/pkg/xmlnode"
)

// Parser converts WSDL and XSD documents into the domain model
type Parser struct{}

// NewParser creates a new WSDL parser
func NewParser() *Parser {
	return &Parser{}
}

// ParseFromBytes parses a WSDL document. sourceURL is recorded on the
// document and used to resolve relative imports; it may be empty.
func (p *Parser) ParseFromBytes(data []byte, sourceURL string) (*Document, error) {
	var raw rawDefinitions
	if err := xmlnode.NewDecoder(bytes.NewReader(data)).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse WSDL XML: %w", err)
	}

	namespaces := p.extractNamespaces(data)
	doc := p.convertRawWSDL(&raw, namespaces)
	doc.SourceURL = sourceURL
	doc.Link()

	return doc, nil
}

// ParseSchema parses a standalone XML Schema document
func (p *Parser) ParseSchema(data []byte, sourceURL string) (*XSDSchema, error) {
	var raw rawSchema
	if err := xmlnode.NewDecoder(bytes.NewReader(data)).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse XSD XML: %w", err)
	}

	schema := p.convertRawSchema(&raw, p.extractNamespaces(data))
	schema.SourceURL = sourceURL
	return schema, nil
}

// extractNamespaces parses XML to extract namespace declarations
func (p *Parser) extractNamespaces(data []byte) *NamespaceMap {
	nsMap := NewNamespaceMap()
	decoder := xmlnode.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		if t, ok := token.(xml.StartElement); ok {
			for _, attr := range t.Attr {
				if xmlnode.IsNamespaceDecl(attr) {
					prefix := ""
					if attr.Name.Space == "xmlns" {
						prefix = attr.Name.Local
					}
					nsMap.Add(prefix, attr.Value)
				}
			}
			// Only need namespaces from root element for most cases
			return nsMap
		}
	}

	return nsMap
}

// convertRawWSDL converts raw XML structures to domain model
func (p *Parser) convertRawWSDL(raw *rawDefinitions, namespaces *NamespaceMap) *Document {
	doc := &Document{
		Item:            newItem(raw.Name, raw.Documentation, raw.Extensions, raw.Attrs),
		TargetNamespace: raw.TargetNamespace,
		Namespaces:      namespaces,
		Messages:        make([]*Message, 0, len(raw.Messages)),
		PortTypes:       make([]*PortType, 0, len(raw.PortTypes)),
		Bindings:        make([]*Binding, 0, len(raw.Bindings)),
		Services:        make([]*Service, 0, len(raw.Services)),
		Imports:         make([]WSDLImport, 0, len(raw.Imports)),
	}

	for _, imp := range raw.Imports {
		doc.Imports = append(doc.Imports, WSDLImport{
			Namespace: imp.Namespace,
			Location:  imp.Location,
		})
	}

	if raw.Types != nil {
		doc.Types = &Types{}
		for i := range raw.Types.Schemas {
			doc.Types.Schemas = append(doc.Types.Schemas, p.convertRawSchema(&raw.Types.Schemas[i], namespaces))
		}
	}

	for i := range raw.Messages {
		doc.Messages = append(doc.Messages, p.convertRawMessage(&raw.Messages[i], namespaces))
	}

	for i := range raw.PortTypes {
		doc.PortTypes = append(doc.PortTypes, p.convertRawPortType(&raw.PortTypes[i], namespaces))
	}

	for i := range raw.Bindings {
		doc.Bindings = append(doc.Bindings, p.convertRawBinding(&raw.Bindings[i], namespaces))
	}

	for i := range raw.Services {
		doc.Services = append(doc.Services, p.convertRawService(&raw.Services[i], namespaces))
	}

	return doc
}

// convertRawSchema converts raw XSD schema to domain model
func (p *Parser) convertRawSchema(raw *rawSchema, namespaces *NamespaceMap) *XSDSchema {
	schema := &XSDSchema{
		TargetNamespace:    raw.TargetNamespace,
		ElementFormDefault: raw.ElementFormDefault,
		Imports:            make([]XSDImport, 0, len(raw.Imports)),
		Includes:           make([]XSDInclude, 0, len(raw.Includes)),
		Elements:           make([]XSDElement, 0, len(raw.Elements)),
	}

	for _, imp := range raw.Imports {
		schema.Imports = append(schema.Imports, XSDImport{
			Namespace:      imp.Namespace,
			SchemaLocation: imp.SchemaLocation,
		})
	}

	for _, inc := range raw.Includes {
		schema.Includes = append(schema.Includes, XSDInclude{SchemaLocation: inc.SchemaLocation})
	}

	for _, elem := range raw.Elements {
		converted := XSDElement{Name: elem.Name, Nillable: elem.Nillable}
		if elem.Type != "" {
			converted.Type = namespaces.ResolveQName(elem.Type)
		}
		schema.Elements = append(schema.Elements, converted)
	}

	for _, ct := range raw.ComplexTypes {
		schema.ComplexTypes = append(schema.ComplexTypes, XSDComplexType{Name: ct.Name, Abstract: ct.Abstract})
	}

	for _, st := range raw.SimpleTypes {
		schema.SimpleTypes = append(schema.SimpleTypes, XSDSimpleType{Name: st.Name})
	}

	return schema
}

// convertRawMessage converts raw message to domain model
func (p *Parser) convertRawMessage(raw *rawMessage, namespaces *NamespaceMap) *Message {
	msg := &Message{
		Item:  newItem(raw.Name, raw.Documentation, raw.Extensions, raw.Attrs),
		Parts: make([]MessagePart, 0, len(raw.Parts)),
	}

	for _, part := range raw.Parts {
		converted := MessagePart{Name: part.Name}
		if part.Element != "" {
			converted.Element = namespaces.ResolveQName(part.Element)
		}
		if part.Type != "" {
			converted.Type = namespaces.ResolveQName(part.Type)
		}
		msg.Parts = append(msg.Parts, converted)
	}

	return msg
}

// convertRawPortType converts raw port type to domain model
func (p *Parser) convertRawPortType(raw *rawPortType, namespaces *NamespaceMap) *PortType {
	pt := &PortType{
		Item:       newItem(raw.Name, raw.Documentation, raw.Extensions, raw.Attrs),
		Operations: make([]*Operation, 0, len(raw.Operations)),
	}

	for i := range raw.Operations {
		pt.Operations = append(pt.Operations, p.convertRawOperation(&raw.Operations[i], namespaces))
	}

	return pt
}

// convertRawOperation converts a port type operation, keeping the order of
// its input and output messages
func (p *Parser) convertRawOperation(raw *rawOperation, namespaces *NamespaceMap) *Operation {
	op := &Operation{
		Item:           Item{Name: raw.Name, Attributes: filterAttrs(raw.Attrs)},
		ParameterOrder: raw.ParameterOrder,
	}

	for _, child := range raw.Children {
		switch {
		case child.Is(WSDLNamespace, "input"):
			op.AddMessage(p.convertOperationMessage(child, DirectionInput, namespaces))
		case child.Is(WSDLNamespace, "output"):
			op.AddMessage(p.convertOperationMessage(child, DirectionOutput, namespaces))
		case child.Is(WSDLNamespace, "fault"):
			op.Faults = append(op.Faults, p.convertOperationMessage(child, DirectionFault, namespaces))
		case child.Is(WSDLNamespace, "documentation"):
			op.Documentation = child.TextContent()
		default:
			op.Extensions = append(op.Extensions, child)
		}
	}

	return op
}

// convertOperationMessage converts a generically decoded input, output or fault
func (p *Parser) convertOperationMessage(el *xmlnode.Element, direction MessageDirection, namespaces *NamespaceMap) *OperationMessage {
	msg := &OperationMessage{
		Item:      Item{Name: el.GetAttribute("name")},
		Direction: direction,
	}
	if ref := el.GetAttribute("message"); ref != "" {
		msg.Message = namespaces.ResolveQName(ref)
	}

	for _, attr := range el.Attrs {
		if attr.Name.Space == "" && (attr.Name.Local == "name" || attr.Name.Local == "message") {
			continue
		}
		msg.Attributes = append(msg.Attributes, attr)
	}

	for _, child := range el.Children {
		if child.Is(WSDLNamespace, "documentation") {
			msg.Documentation = child.TextContent()
			continue
		}
		msg.Extensions = append(msg.Extensions, child)
	}

	return msg
}

// convertRawBinding converts raw binding to domain model
func (p *Parser) convertRawBinding(raw *rawBinding, namespaces *NamespaceMap) *Binding {
	binding := &Binding{
		Item:       newItem(raw.Name, raw.Documentation, raw.Extensions, raw.Attrs),
		Operations: make([]*OperationBinding, 0, len(raw.Operations)),
	}
	if raw.Type != "" {
		binding.Type = namespaces.ResolveQName(raw.Type)
	}

	for _, rawOp := range raw.Operations {
		op := &OperationBinding{
			Item: newItem(rawOp.Name, rawOp.Documentation, rawOp.Extensions, rawOp.Attrs),
		}
		if rawOp.Input != nil {
			op.Input = convertRawMessageBinding(rawOp.Input, DirectionInput)
		}
		if rawOp.Output != nil {
			op.Output = convertRawMessageBinding(rawOp.Output, DirectionOutput)
		}
		for i := range rawOp.Faults {
			op.Faults = append(op.Faults, convertRawMessageBinding(&rawOp.Faults[i], DirectionFault))
		}
		binding.Operations = append(binding.Operations, op)
	}

	return binding
}

func convertRawMessageBinding(raw *rawMessageBinding, direction MessageDirection) *MessageBinding {
	return &MessageBinding{
		Item:      newItem(raw.Name, raw.Documentation, raw.Extensions, raw.Attrs),
		Direction: direction,
	}
}

// convertRawService converts raw service to domain model
func (p *Parser) convertRawService(raw *rawService, namespaces *NamespaceMap) *Service {
	svc := &Service{
		Item:  newItem(raw.Name, raw.Documentation, raw.Extensions, raw.Attrs),
		Ports: make([]*Port, 0, len(raw.Ports)),
	}

	for _, rawPort := range raw.Ports {
		port := &Port{
			Item: newItem(rawPort.Name, rawPort.Documentation, rawPort.Extensions, rawPort.Attrs),
		}
		if rawPort.Binding != "" {
			port.Binding = namespaces.ResolveQName(rawPort.Binding)
		}
		svc.Ports = append(svc.Ports, port)
	}

	return svc
}

func newItem(name string, doc *rawDocumentation, extensions []*xmlnode.Element, attrs []xml.Attr) Item {
	return Item{
		Name:          name,
		Documentation: extractDocumentation(doc),
		Extensions:    extensions,
		Attributes:    filterAttrs(attrs),
	}
}

// filterAttrs drops namespace declarations from captured attributes
func filterAttrs(attrs []xml.Attr) []xml.Attr {
	var result []xml.Attr
	for _, attr := range attrs {
		if xmlnode.IsNamespaceDecl(attr) {
			continue
		}
		result = append(result, attr)
	}
	return result
}

// extractDocumentation extracts text from documentation element
func extractDocumentation(doc *rawDocumentation) string {
	if doc == nil {
		return ""
	}
	return strings.TrimSpace(doc.Content)
}
