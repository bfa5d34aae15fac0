package wsdl

// XSDSchema represents an XSD schema embedded in WSDL or imported externally.
// Only global declarations are kept.
type XSDSchema struct {
	TargetNamespace    string           `json:"target_namespace,omitempty"`
	ElementFormDefault string           `json:"element_form_default,omitempty"` // "qualified" or "unqualified"
	SourceURL          string           `json:"source_url,omitempty"`
	Imports            []XSDImport      `json:"-"` // For import resolution
	Includes           []XSDInclude     `json:"-"` // For import resolution
	Elements           []XSDElement     `json:"elements,omitempty"`
	ComplexTypes       []XSDComplexType `json:"complex_types,omitempty"`
	SimpleTypes        []XSDSimpleType  `json:"simple_types,omitempty"`
}

// XSDImport represents xsd:import element
type XSDImport struct {
	Namespace      string `json:"namespace,omitempty"`
	SchemaLocation string `json:"schema_location,omitempty"`
}

// XSDInclude represents xsd:include element (same namespace)
type XSDInclude struct {
	SchemaLocation string `json:"schema_location,omitempty"`
}

// XSDElement represents a global element declaration
type XSDElement struct {
	Name     string `json:"name"`
	Type     QName  `json:"type,omitempty"`
	Nillable bool   `json:"nillable,omitempty"`
}

// XSDComplexType represents a global complex type definition
type XSDComplexType struct {
	Name     string `json:"name"`
	Abstract bool   `json:"abstract,omitempty"`
}

// XSDSimpleType represents a global simple type definition
type XSDSimpleType struct {
	Name string `json:"name"`
}

// SchemaSet indexes the global declarations of a set of schemas
type SchemaSet struct {
	schemas      []*XSDSchema
	elements     map[QName]*XSDElement
	complexTypes map[QName]*XSDComplexType
	simpleTypes  map[QName]*XSDSimpleType
}

// NewSchemaSet creates an empty schema set
func NewSchemaSet() *SchemaSet {
	return &SchemaSet{
		elements:     make(map[QName]*XSDElement),
		complexTypes: make(map[QName]*XSDComplexType),
		simpleTypes:  make(map[QName]*XSDSimpleType),
	}
}

// Add indexes a schema. The first declaration of a name wins.
func (s *SchemaSet) Add(schema *XSDSchema) {
	s.schemas = append(s.schemas, schema)
	ns := schema.TargetNamespace
	for i := range schema.Elements {
		key := QName{Namespace: ns, LocalPart: schema.Elements[i].Name}
		if _, exists := s.elements[key]; !exists {
			s.elements[key] = &schema.Elements[i]
		}
	}
	for i := range schema.ComplexTypes {
		key := QName{Namespace: ns, LocalPart: schema.ComplexTypes[i].Name}
		if _, exists := s.complexTypes[key]; !exists {
			s.complexTypes[key] = &schema.ComplexTypes[i]
		}
	}
	for i := range schema.SimpleTypes {
		key := QName{Namespace: ns, LocalPart: schema.SimpleTypes[i].Name}
		if _, exists := s.simpleTypes[key]; !exists {
			s.simpleTypes[key] = &schema.SimpleTypes[i]
		}
	}
}

// Schemas returns the schemas in the order they were added
func (s *SchemaSet) Schemas() []*XSDSchema {
	return s.schemas
}

// Len returns the number of schemas in the set
func (s *SchemaSet) Len() int {
	return len(s.schemas)
}

// Element looks up a global element declaration
func (s *SchemaSet) Element(name QName) *XSDElement {
	return s.elements[name]
}

// ComplexType looks up a global complex type
func (s *SchemaSet) ComplexType(name QName) *XSDComplexType {
	return s.complexTypes[name]
}

// SimpleType looks up a global simple type
func (s *SchemaSet) SimpleType(name QName) *XSDSimpleType {
	return s.simpleTypes[name]
}

// HasType reports whether name is a global type of the set or an XSD built-in
func (s *SchemaSet) HasType(name QName) bool {
	if name.Namespace == XSDNamespace && IsXSDBuiltinType(name.LocalPart) {
		return true
	}
	return s.complexTypes[name] != nil || s.simpleTypes[name] != nil
}

// Common namespace constants
const (
	XSDNamespace    = "http://www.w3.org/2001/XMLSchema"
	SOAP11Namespace = "http://schemas.xmlsoap.org/wsdl/soap/"
	SOAP12Namespace = "http://schemas.xmlsoap.org/wsdl/soap12/"
	WSDLNamespace   = "http://schemas.xmlsoap.org/wsdl/"
	HTTPNamespace   = "http://schemas.xmlsoap.org/wsdl/http/"
	MIMENamespace   = "http://schemas.xmlsoap.org/wsdl/mime/"

	// Transport
	SOAPHTTPTransport = "http://schemas.xmlsoap.org/soap/http"
)

var xsdBuiltins = map[string]bool{
	"string": true, "boolean": true, "decimal": true, "float": true,
	"double": true, "duration": true, "dateTime": true, "time": true,
	"date": true, "gYearMonth": true, "gYear": true, "gMonthDay": true,
	"gDay": true, "gMonth": true, "hexBinary": true, "base64Binary": true,
	"anyURI": true, "QName": true, "NOTATION": true, "normalizedString": true,
	"token": true, "language": true, "NMTOKEN": true, "NMTOKENS": true,
	"Name": true, "NCName": true, "ID": true, "IDREF": true, "IDREFS": true,
	"ENTITY": true, "ENTITIES": true, "integer": true, "nonPositiveInteger": true,
	"negativeInteger": true, "long": true, "int": true, "short": true,
	"byte": true, "nonNegativeInteger": true, "unsignedLong": true,
	"unsignedInt": true, "unsignedShort": true, "unsignedByte": true,
	"positiveInteger": true, "anyType": true, "anySimpleType": true,
}

// IsXSDBuiltinType checks if a type name is a built-in XSD type
func IsXSDBuiltinType(typeName string) bool {
	return xsdBuiltins[typeName]
}
