package metadata

import (
	"errors"
	"fmt"

	"github.com/pyneda/wsimport/pkg/wsdl"
	"github.com/pyneda/wsimport/pkg/xmlnode"
	"github.com/rs/zerolog/log"
)

// PolicyDocument is an external policy and the identifier it was
// published under
type PolicyDocument struct {
	Identifier string
	Element    *xmlnode.Element
}

// Store is the classified content of a metadata set
type Store struct {
	Documents *wsdl.Collection
	Schemas   *wsdl.SchemaSet
	Policies  []PolicyDocument
}

// NewStore classifies sections by dialect. It returns the warnings produced
// along the way; any section whose content does not fit its dialect fails
// the whole store.
func NewStore(sections []Section) (*Store, []string, error) {
	store := &Store{
		Documents: wsdl.NewCollection(),
		Schemas:   wsdl.NewSchemaSet(),
	}
	parser := wsdl.NewParser()
	var warnings []string

	for _, section := range sections {
		switch section.Metadata.(type) {
		case Reference, *Reference, Location:
			log.Debug().Str("identifier", section.Identifier).Str("dialect", section.Dialect).Msg("Skipping unresolved metadata reference")
			continue
		}

		switch section.Dialect {
		case DialectWSDL:
			doc, err := section.document(parser)
			if err != nil {
				return nil, warnings, err
			}
			store.Documents.Add(doc)
			if doc.Types != nil {
				for _, schema := range doc.Types.Schemas {
					store.Schemas.Add(schema)
				}
			}

		case DialectXMLSchema:
			schema, err := section.schema(parser)
			if err != nil {
				return nil, warnings, err
			}
			store.Schemas.Add(schema)

		case DialectPolicy:
			if section.Identifier == "" {
				warnings = append(warnings, "A policy metadata section has no identifier and was ignored.")
				continue
			}
			element, err := section.policy()
			if err != nil {
				return nil, warnings, err
			}
			store.Policies = append(store.Policies, PolicyDocument{Identifier: section.Identifier, Element: element})

		default:
			log.Debug().Str("identifier", section.Identifier).Str("dialect", section.Dialect).Msg("Ignoring metadata section with unknown dialect")
		}
	}

	return store, warnings, nil
}

// PolicyElements returns the external policy elements in order
func (s *Store) PolicyElements() []*xmlnode.Element {
	elements := make([]*xmlnode.Element, 0, len(s.Policies))
	for _, p := range s.Policies {
		elements = append(elements, p.Element)
	}
	return elements
}

func (s Section) document(parser *wsdl.Parser) (*wsdl.Document, error) {
	switch m := s.Metadata.(type) {
	case *wsdl.Document:
		return m, nil
	case []byte:
		if err := s.checkRoot(m); err != nil {
			return nil, err
		}
		doc, err := parser.ParseFromBytes(m, s.Identifier)
		if err != nil {
			return nil, &SectionError{Identifier: s.Identifier, Dialect: s.Dialect, Err: err}
		}
		return doc, nil
	default:
		return nil, s.mismatch("*wsdl.Document", describe(s.Metadata))
	}
}

func (s Section) schema(parser *wsdl.Parser) (*wsdl.XSDSchema, error) {
	switch m := s.Metadata.(type) {
	case *wsdl.XSDSchema:
		return m, nil
	case []byte:
		if err := s.checkRoot(m); err != nil {
			return nil, err
		}
		schema, err := parser.ParseSchema(m, s.Identifier)
		if err != nil {
			return nil, &SectionError{Identifier: s.Identifier, Dialect: s.Dialect, Err: err}
		}
		return schema, nil
	default:
		return nil, s.mismatch("*wsdl.XSDSchema", describe(s.Metadata))
	}
}

func (s Section) policy() (*xmlnode.Element, error) {
	switch m := s.Metadata.(type) {
	case *xmlnode.Element:
		return m, nil
	case []byte:
		element, err := xmlnode.Parse(m)
		if err != nil {
			return nil, &SectionError{Identifier: s.Identifier, Dialect: s.Dialect, Err: err}
		}
		return element, nil
	default:
		return nil, s.mismatch("*xmlnode.Element", describe(s.Metadata))
	}
}

// checkRoot verifies the document element of raw content before it is
// handed to the dialect's parser
func (s Section) checkRoot(data []byte) error {
	name, err := xmlnode.RootName(data)
	if err != nil {
		return &SectionError{Identifier: s.Identifier, Dialect: s.Dialect, Err: err}
	}
	if dialect, _ := DialectOf(name); dialect != s.Dialect {
		return s.mismatch(clark(rootOf(s.Dialect)), clark(name))
	}
	return nil
}

func (s Section) mismatch(expected, actual string) error {
	return &DialectMismatchError{
		Identifier: s.Identifier,
		Dialect:    s.Dialect,
		Expected:   expected,
		Actual:     actual,
	}
}

// SectionFromBytes builds a section for raw XML, choosing the dialect from
// the document element
func SectionFromBytes(data []byte, identifier string) (Section, error) {
	name, err := xmlnode.RootName(data)
	if err != nil {
		return Section{}, &SectionError{Identifier: identifier, Err: err}
	}
	dialect, ok := DialectOf(name)
	if !ok {
		return Section{}, &SectionError{
			Identifier: identifier,
			Err:        fmt.Errorf("%w: %s", ErrUnknownDialect, clark(name)),
		}
	}
	return Section{Dialect: dialect, Identifier: identifier, Metadata: data}, nil
}

// ErrUnknownDialect is returned when a document's root element does not
// belong to any supported dialect
var ErrUnknownDialect = errors.New("unsupported metadata document")
