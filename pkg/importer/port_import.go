package importer

import (
	"fmt"

	"github.com/pyneda/wsimport/pkg/description"
	"github.com/pyneda/wsimport/pkg/wsdl"
)

// importPort returns the endpoint of a port, building it on first use
func (imp *Importer) importPort(p *wsdl.Port, behavior errorBehavior) (*description.ServiceEndpoint, error) {
	if imp.isBlocklisted(p) {
		return nil, imp.alreadyFaulted(p)
	}
	if endpoint, ok := imp.importedPorts[p]; ok {
		return endpoint, nil
	}
	if err := imp.ensureBeforeImport(); err != nil {
		return nil, err
	}

	endpoint, err := imp.buildEndpoint(p, behavior)
	if err != nil {
		return nil, imp.fail(p, err, behavior)
	}
	imp.importedPorts[p] = endpoint

	event := imp.logger.Debug().Str("service", p.Service().Name).Str("port", p.Name)
	if endpoint.Address != nil {
		event = event.Str("address", endpoint.Address.URI)
	}
	event.Msg("Imported endpoint")
	return endpoint, nil
}

func (imp *Importer) buildEndpoint(p *wsdl.Port, behavior errorBehavior) (*description.ServiceEndpoint, error) {
	b := imp.store.Documents.Binding(p.Binding)
	if b == nil {
		return nil, fmt.Errorf("%w: binding %s", ErrUnresolvedReference, p.Binding)
	}
	bindingCtx, err := imp.importBinding(b, behavior)
	if err != nil {
		return nil, err
	}

	endpoint := description.NewServiceEndpoint(bindingCtx.Endpoint.Contract)
	endpoint.Name = p.Name
	ctx := bindingCtx.forPort(endpoint, p)

	if hasPolicyAttached(p) {
		service := p.Service()
		binding, err := imp.createBinding(ctx, service.Name+"_"+p.Name, service.OwnerDocument().TargetNamespace)
		if err != nil {
			return nil, err
		}
		endpoint.Binding = binding
	} else {
		endpoint.Binding = bindingCtx.Endpoint.Binding
	}

	if err := imp.callImportEndpoint(ctx); err != nil {
		return nil, err
	}
	if err := imp.verifyPort(p); err != nil {
		return nil, err
	}
	return endpoint, nil
}
