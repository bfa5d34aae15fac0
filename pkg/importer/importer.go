// Package importer resolves WSDL port types, bindings and ports into
// contracts, bindings and service endpoints.
//
// An Importer is a single import session. It memoizes every item it
// imports, remembers every item that failed, and accumulates conversion
// errors and warnings that can be read with Errors at any time. An
// Importer is not safe for concurrent use.
package importer

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pyneda/wsimport/pkg/description"
	"github.com/pyneda/wsimport/pkg/metadata"
	"github.com/pyneda/wsimport/pkg/policy"
	"github.com/pyneda/wsimport/pkg/wsdl"
	"github.com/pyneda/wsimport/pkg/xmlnode"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type errorBehavior int

const (
	rethrowErrors errorBehavior = iota
	logErrors
)

// Importer converts service metadata into the description model
type Importer struct {
	id               uuid.UUID
	store            *metadata.Store
	extensions       []Extension
	policyExtensions []PolicyImportExtension
	quotas           Quotas
	knownContracts   map[description.QName]*description.ContractDescription

	importedPortTypes map[wsdl.QName]*ContractConversionContext
	importedBindings  map[wsdl.QName]*EndpointConversionContext
	importedPorts     map[*wsdl.Port]*description.ServiceEndpoint
	importErrors      map[wsdl.NamedItem]*ImportError
	handled           map[*xmlnode.Element]struct{}

	errors   []ConversionError
	warnings map[string]struct{}

	beforeImportCalled bool
	faulted            bool

	policyReader *policyReader
	logger       zerolog.Logger
}

// New creates an import session over the given metadata. Sections whose
// content does not match their dialect fail the construction.
func New(set metadata.Set, opts Options) (*Importer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	store, warnings, err := metadata.NewStore(set.Sections)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	imp := &Importer{
		id:                id,
		store:             store,
		extensions:        opts.extensions(),
		policyExtensions:  opts.policyExtensions(),
		quotas:            opts.Quotas,
		knownContracts:    make(map[description.QName]*description.ContractDescription),
		importedPortTypes: make(map[wsdl.QName]*ContractConversionContext),
		importedBindings:  make(map[wsdl.QName]*EndpointConversionContext),
		importedPorts:     make(map[*wsdl.Port]*description.ServiceEndpoint),
		importErrors:      make(map[wsdl.NamedItem]*ImportError),
		handled:           make(map[*xmlnode.Element]struct{}),
		warnings:          make(map[string]struct{}),
		logger:            log.With().Str("component", "importer").Str("session", id.String()).Logger(),
	}
	for _, contract := range opts.KnownContracts {
		imp.knownContracts[contract.QName()] = contract
	}
	for _, warning := range warnings {
		imp.LogWarning(warning)
	}
	imp.policyReader = newPolicyReader(imp)

	imp.logger.Debug().
		Int("documents", store.Documents.Len()).
		Int("schemas", store.Schemas.Len()).
		Int("policies", len(store.Policies)).
		Int("extensions", len(imp.extensions)).
		Msg("Import session created")
	return imp, nil
}

// ID identifies the session in log output
func (imp *Importer) ID() uuid.UUID {
	return imp.id
}

// Store returns the classified metadata of the session
func (imp *Importer) Store() *metadata.Store {
	return imp.store
}

// Documents returns the WSDL documents of the session
func (imp *Importer) Documents() []*wsdl.Document {
	return imp.store.Documents.Documents()
}

// Schemas returns the XML Schemas of the session
func (imp *Importer) Schemas() *wsdl.SchemaSet {
	return imp.store.Schemas
}

// PolicyDocuments returns the external policy documents of the session
func (imp *Importer) PolicyDocuments() []metadata.PolicyDocument {
	return imp.store.Policies
}

// Quotas returns the quotas in effect
func (imp *Importer) Quotas() Quotas {
	return imp.quotas
}

// NormalizePolicy reduces policy expressions to alternatives, resolving
// references against the policies of the session
func (imp *Importer) NormalizePolicy(policies ...*xmlnode.Element) ([]policy.Alternative, error) {
	return imp.policyReader.normalize(policies...)
}

// ResolvePolicyReference looks up a policy by URI. Fragment references
// ("#id") are resolved within the document that holds context.
func (imp *Importer) ResolvePolicyReference(uri string, context *xmlnode.Element) *xmlnode.Element {
	return imp.policyReader.ResolvePolicyReference(uri, context)
}

func (imp *Importer) checkFaulted() error {
	if imp.faulted {
		return ErrImporterFaulted
	}
	return nil
}

func (imp *Importer) isBlocklisted(item wsdl.NamedItem) bool {
	_, ok := imp.importErrors[item]
	return ok
}

// ImportAllContracts imports every port type. Port types that fail are
// recorded as warnings and left out of the result.
func (imp *Importer) ImportAllContracts() ([]*description.ContractDescription, error) {
	if err := imp.checkFaulted(); err != nil {
		return nil, err
	}
	if err := imp.ensureBeforeImport(); err != nil {
		return nil, err
	}

	var contracts []*description.ContractDescription
	for pt := range imp.store.Documents.PortTypes() {
		if imp.isBlocklisted(pt) {
			continue
		}
		contract, err := imp.importPortType(pt, logErrors)
		if err != nil {
			continue
		}
		contracts = append(contracts, contract)
	}
	return contracts, nil
}

// ImportAllBindings imports every binding. Bindings that fail are recorded
// as warnings and left out of the result.
func (imp *Importer) ImportAllBindings() ([]*description.Binding, error) {
	if err := imp.checkFaulted(); err != nil {
		return nil, err
	}
	if err := imp.ensureBeforeImport(); err != nil {
		return nil, err
	}

	var bindings []*description.Binding
	for b := range imp.store.Documents.Bindings() {
		if imp.isBlocklisted(b) {
			continue
		}
		ctx, err := imp.importBinding(b, logErrors)
		if err != nil {
			continue
		}
		bindings = append(bindings, ctx.Endpoint.Binding)
	}
	return bindings, nil
}

// ImportAllEndpoints imports every port of every service. Ports that fail
// are recorded as warnings and left out of the result.
func (imp *Importer) ImportAllEndpoints() ([]*description.ServiceEndpoint, error) {
	if err := imp.checkFaulted(); err != nil {
		return nil, err
	}
	if err := imp.ensureBeforeImport(); err != nil {
		return nil, err
	}

	var endpoints []*description.ServiceEndpoint
	for p := range imp.store.Documents.Ports() {
		if imp.isBlocklisted(p) {
			continue
		}
		endpoint, err := imp.importPort(p, logErrors)
		if err != nil {
			continue
		}
		endpoints = append(endpoints, endpoint)
	}
	return endpoints, nil
}

// ImportContract imports a single port type
func (imp *Importer) ImportContract(pt *wsdl.PortType) (*description.ContractDescription, error) {
	if err := imp.checkFaulted(); err != nil {
		return nil, err
	}
	if pt == nil {
		return nil, errors.New("port type is nil")
	}
	return imp.importPortType(pt, rethrowErrors)
}

// ImportBinding imports a single binding and the port type it depends on
func (imp *Importer) ImportBinding(b *wsdl.Binding) (*description.Binding, error) {
	if err := imp.checkFaulted(); err != nil {
		return nil, err
	}
	if b == nil {
		return nil, errors.New("binding is nil")
	}
	ctx, err := imp.importBinding(b, rethrowErrors)
	if err != nil {
		return nil, err
	}
	return ctx.Endpoint.Binding, nil
}

// ImportEndpoint imports a single port and the items it depends on
func (imp *Importer) ImportEndpoint(p *wsdl.Port) (*description.ServiceEndpoint, error) {
	if err := imp.checkFaulted(); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.New("port is nil")
	}
	return imp.importPort(p, rethrowErrors)
}

// ImportEndpointsForPortType imports the port type, then the endpoints of
// every binding of it
func (imp *Importer) ImportEndpointsForPortType(pt *wsdl.PortType) ([]*description.ServiceEndpoint, error) {
	if err := imp.checkFaulted(); err != nil {
		return nil, err
	}
	if pt == nil {
		return nil, errors.New("port type is nil")
	}
	if imp.isBlocklisted(pt) {
		return nil, imp.alreadyFaulted(pt)
	}
	if _, err := imp.importPortType(pt, rethrowErrors); err != nil {
		return nil, err
	}
	return imp.importEndpointsForBindingsOf(pt.QName())
}

// ImportEndpointsForContract imports the endpoints of every binding of a
// known contract
func (imp *Importer) ImportEndpointsForContract(contract *description.ContractDescription) ([]*description.ServiceEndpoint, error) {
	if err := imp.checkFaulted(); err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, errors.New("contract is nil")
	}
	if _, known := imp.knownContracts[contract.QName()]; !known {
		return nil, fmt.Errorf("contract %s must be one of the known contracts", contract.QName())
	}
	if err := imp.ensureBeforeImport(); err != nil {
		return nil, err
	}
	return imp.importEndpointsForBindingsOf(wsdl.QName{Namespace: contract.Namespace, LocalPart: contract.Name})
}

func (imp *Importer) importEndpointsForBindingsOf(portType wsdl.QName) ([]*description.ServiceEndpoint, error) {
	var endpoints []*description.ServiceEndpoint
	for b := range imp.store.Documents.Bindings() {
		if b.Type != portType || imp.isBlocklisted(b) {
			continue
		}
		found, err := imp.ImportEndpointsForBinding(b)
		if err != nil {
			return nil, err
		}
		endpoints = append(endpoints, found...)
	}
	return endpoints, nil
}

// ImportEndpointsForBinding imports the binding, then every port that uses
// it. Ports that fail are recorded as warnings and left out of the result.
func (imp *Importer) ImportEndpointsForBinding(b *wsdl.Binding) ([]*description.ServiceEndpoint, error) {
	if err := imp.checkFaulted(); err != nil {
		return nil, err
	}
	if b == nil {
		return nil, errors.New("binding is nil")
	}
	if imp.isBlocklisted(b) {
		return nil, imp.alreadyFaulted(b)
	}
	if _, err := imp.importBinding(b, rethrowErrors); err != nil {
		return nil, err
	}

	name := b.QName()
	var endpoints []*description.ServiceEndpoint
	for p := range imp.store.Documents.Ports() {
		if p.Binding != name || imp.isBlocklisted(p) {
			continue
		}
		endpoint, err := imp.importPort(p, logErrors)
		if err != nil {
			continue
		}
		endpoints = append(endpoints, endpoint)
	}
	return endpoints, nil
}

// ImportEndpointsForService imports every port of a service. Ports that
// fail are recorded as warnings and left out of the result.
func (imp *Importer) ImportEndpointsForService(s *wsdl.Service) ([]*description.ServiceEndpoint, error) {
	if err := imp.checkFaulted(); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errors.New("service is nil")
	}
	if err := imp.ensureBeforeImport(); err != nil {
		return nil, err
	}

	var endpoints []*description.ServiceEndpoint
	for _, p := range s.Ports {
		if imp.isBlocklisted(p) {
			continue
		}
		endpoint, err := imp.importPort(p, logErrors)
		if err != nil {
			continue
		}
		endpoints = append(endpoints, endpoint)
	}
	return endpoints, nil
}

// fail records the failure of item and returns it
func (imp *Importer) fail(item wsdl.NamedItem, cause error, behavior errorBehavior) *ImportError {
	err := newImportError(item, cause)
	imp.logImportError(item, err, behavior == logErrors)
	return err
}
