package wsdl

import (
	"encoding/xml"

	"github.com/pyneda/wsimport/pkg/xmlnode"
)

// Raw XML parsing structures for WSDL 1.1
// These map directly to XML and are converted to domain models.
// Anything outside the WSDL namespace lands in the ",any" fields and is
// kept as an extensibility element.

// rawDefinitions is the root WSDL element
type rawDefinitions struct {
	XMLName         xml.Name           `xml:"http://schemas.xmlsoap.org/wsdl/ definitions"`
	TargetNamespace string             `xml:"targetNamespace,attr"`
	Name            string             `xml:"name,attr"`
	Documentation   *rawDocumentation  `xml:"http://schemas.xmlsoap.org/wsdl/ documentation"`
	Imports         []rawWSDLImport    `xml:"http://schemas.xmlsoap.org/wsdl/ import"`
	Types           *rawTypes          `xml:"http://schemas.xmlsoap.org/wsdl/ types"`
	Messages        []rawMessage       `xml:"http://schemas.xmlsoap.org/wsdl/ message"`
	PortTypes       []rawPortType      `xml:"http://schemas.xmlsoap.org/wsdl/ portType"`
	Bindings        []rawBinding       `xml:"http://schemas.xmlsoap.org/wsdl/ binding"`
	Services        []rawService       `xml:"http://schemas.xmlsoap.org/wsdl/ service"`
	Extensions      []*xmlnode.Element `xml:",any"`
	Attrs           []xml.Attr         `xml:",any,attr"`
}

// rawWSDLImport represents wsdl:import
type rawWSDLImport struct {
	Namespace string `xml:"namespace,attr"`
	Location  string `xml:"location,attr"`
}

// rawTypes contains type definitions (XSD schemas)
type rawTypes struct {
	Schemas []rawSchema `xml:"http://www.w3.org/2001/XMLSchema schema"`
}

// rawDocumentation represents wsdl:documentation
type rawDocumentation struct {
	Content string `xml:",chardata"`
}

// rawMessage represents wsdl:message
type rawMessage struct {
	Name          string             `xml:"name,attr"`
	Parts         []rawMessagePart   `xml:"http://schemas.xmlsoap.org/wsdl/ part"`
	Documentation *rawDocumentation  `xml:"http://schemas.xmlsoap.org/wsdl/ documentation"`
	Extensions    []*xmlnode.Element `xml:",any"`
	Attrs         []xml.Attr         `xml:",any,attr"`
}

// rawMessagePart represents wsdl:part
type rawMessagePart struct {
	Name    string `xml:"name,attr"`
	Element string `xml:"element,attr"`
	Type    string `xml:"type,attr"`
}

// rawPortType represents wsdl:portType
type rawPortType struct {
	Name          string             `xml:"name,attr"`
	Operations    []rawOperation     `xml:"http://schemas.xmlsoap.org/wsdl/ operation"`
	Documentation *rawDocumentation  `xml:"http://schemas.xmlsoap.org/wsdl/ documentation"`
	Extensions    []*xmlnode.Element `xml:",any"`
	Attrs         []xml.Attr         `xml:",any,attr"`
}

// rawOperation represents wsdl:operation in portType.
// Input and output order is significant (request-response vs
// solicit-response), so children are decoded generically.
type rawOperation struct {
	Name           string             `xml:"name,attr"`
	ParameterOrder string             `xml:"parameterOrder,attr"`
	Children       []*xmlnode.Element `xml:",any"`
	Attrs          []xml.Attr         `xml:",any,attr"`
}

// rawBinding represents wsdl:binding
type rawBinding struct {
	Name          string                `xml:"name,attr"`
	Type          string                `xml:"type,attr"`
	Operations    []rawBindingOperation `xml:"http://schemas.xmlsoap.org/wsdl/ operation"`
	Documentation *rawDocumentation     `xml:"http://schemas.xmlsoap.org/wsdl/ documentation"`
	Extensions    []*xmlnode.Element    `xml:",any"`
	Attrs         []xml.Attr            `xml:",any,attr"`
}

// rawBindingOperation represents wsdl:operation in binding
type rawBindingOperation struct {
	Name          string              `xml:"name,attr"`
	Input         *rawMessageBinding  `xml:"http://schemas.xmlsoap.org/wsdl/ input"`
	Output        *rawMessageBinding  `xml:"http://schemas.xmlsoap.org/wsdl/ output"`
	Faults        []rawMessageBinding `xml:"http://schemas.xmlsoap.org/wsdl/ fault"`
	Documentation *rawDocumentation   `xml:"http://schemas.xmlsoap.org/wsdl/ documentation"`
	Extensions    []*xmlnode.Element  `xml:",any"`
	Attrs         []xml.Attr          `xml:",any,attr"`
}

// rawMessageBinding represents input/output/fault in binding operation
type rawMessageBinding struct {
	Name          string             `xml:"name,attr"`
	Documentation *rawDocumentation  `xml:"http://schemas.xmlsoap.org/wsdl/ documentation"`
	Extensions    []*xmlnode.Element `xml:",any"`
	Attrs         []xml.Attr         `xml:",any,attr"`
}

// rawService represents wsdl:service
type rawService struct {
	Name          string             `xml:"name,attr"`
	Ports         []rawPort          `xml:"http://schemas.xmlsoap.org/wsdl/ port"`
	Documentation *rawDocumentation  `xml:"http://schemas.xmlsoap.org/wsdl/ documentation"`
	Extensions    []*xmlnode.Element `xml:",any"`
	Attrs         []xml.Attr         `xml:",any,attr"`
}

// rawPort represents wsdl:port
type rawPort struct {
	Name          string             `xml:"name,attr"`
	Binding       string             `xml:"binding,attr"`
	Documentation *rawDocumentation  `xml:"http://schemas.xmlsoap.org/wsdl/ documentation"`
	Extensions    []*xmlnode.Element `xml:",any"`
	Attrs         []xml.Attr         `xml:",any,attr"`
}

// rawSchema represents the top level of xsd:schema. Only global
// declarations are decoded; their content models are not needed for import.
type rawSchema struct {
	XMLName            xml.Name        `xml:"http://www.w3.org/2001/XMLSchema schema"`
	TargetNamespace    string          `xml:"targetNamespace,attr"`
	ElementFormDefault string          `xml:"elementFormDefault,attr"`
	Imports            []rawXSDImport  `xml:"http://www.w3.org/2001/XMLSchema import"`
	Includes           []rawXSDInclude `xml:"http://www.w3.org/2001/XMLSchema include"`
	Elements           []rawElement    `xml:"http://www.w3.org/2001/XMLSchema element"`
	ComplexTypes       []rawNamedType  `xml:"http://www.w3.org/2001/XMLSchema complexType"`
	SimpleTypes        []rawNamedType  `xml:"http://www.w3.org/2001/XMLSchema simpleType"`
}

// rawXSDImport represents xsd:import
type rawXSDImport struct {
	Namespace      string `xml:"namespace,attr"`
	SchemaLocation string `xml:"schemaLocation,attr"`
}

// rawXSDInclude represents xsd:include
type rawXSDInclude struct {
	SchemaLocation string `xml:"schemaLocation,attr"`
}

// rawElement represents a global xsd:element
type rawElement struct {
	Name     string `xml:"name,attr"`
	Type     string `xml:"type,attr"`
	Nillable bool   `xml:"nillable,attr"`
}

// rawNamedType represents a global xsd:complexType or xsd:simpleType
type rawNamedType struct {
	Name     string `xml:"name,attr"`
	Abstract bool   `xml:"abstract,attr"`
}
