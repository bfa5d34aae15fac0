package importer

import (
	"fmt"

	"github.com/pyneda/wsimport/pkg/wsdl"
	"github.com/pyneda/wsimport/pkg/xmlnode"
)

// Extension takes part in every import session. Hooks run in registration
// order; an error or panic from any of them fails the item being imported.
type Extension interface {
	// BeforeImport runs once, before the first import of the session. A
	// failure here faults the importer.
	BeforeImport(documents []*wsdl.Document, schemas *wsdl.SchemaSet, policies []*xmlnode.Element) error
	// ImportContract runs once per contract built from a port type
	ImportContract(imp *Importer, ctx *ContractConversionContext) error
	// ImportEndpoint runs once per imported binding and once per imported port
	ImportEndpoint(imp *Importer, ctx *EndpointConversionContext) error
}

// PolicyImportExtension turns policy assertions into binding elements. An
// importer removes the assertions it claims from the context and appends
// the binding elements they describe.
type PolicyImportExtension interface {
	ImportPolicy(imp *Importer, ctx *PolicyConversionContext) error
}

func extensionName(ext any) string {
	return fmt.Sprintf("%T", ext)
}

// invokeHook runs one extension hook, converting both returned errors and
// panics into an *ExtensionError
func invokeHook(ext any, hook string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("%v", r)
			}
			err = &ExtensionError{Extension: extensionName(ext), Hook: hook, Err: fmt.Errorf("panic: %w", cause)}
		}
	}()

	if hookErr := fn(); hookErr != nil {
		return &ExtensionError{Extension: extensionName(ext), Hook: hook, Err: hookErr}
	}
	return nil
}

// ensureBeforeImport runs BeforeImport on every extension the first time
// it is called
func (imp *Importer) ensureBeforeImport() error {
	if imp.beforeImportCalled {
		return nil
	}
	documents := imp.store.Documents.Documents()
	policies := imp.store.PolicyElements()
	for _, ext := range imp.extensions {
		err := invokeHook(ext, "BeforeImport", func() error {
			return ext.BeforeImport(documents, imp.store.Schemas, policies)
		})
		if err != nil {
			imp.faulted = true
			imp.logger.Error().Err(err).Msg("Import extension failed before import, importer is faulted")
			return fmt.Errorf("%w: %w", ErrImporterFaulted, err)
		}
	}
	imp.beforeImportCalled = true
	return nil
}

func (imp *Importer) callImportContract(ctx *ContractConversionContext) error {
	for _, ext := range imp.extensions {
		err := invokeHook(ext, "ImportContract", func() error {
			return ext.ImportContract(imp, ctx)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (imp *Importer) callImportEndpoint(ctx *EndpointConversionContext) error {
	for _, ext := range imp.extensions {
		err := invokeHook(ext, "ImportEndpoint", func() error {
			return ext.ImportEndpoint(imp, ctx)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// MarkHandled records that an extension element was understood. Elements
// left unhandled after an import are reported.
func (imp *Importer) MarkHandled(e *xmlnode.Element) {
	imp.handled[e] = struct{}{}
}

// IsHandled reports whether an extension element was marked handled
func (imp *Importer) IsHandled(e *xmlnode.Element) bool {
	_, ok := imp.handled[e]
	return ok
}

func (imp *Importer) verifyPortType(pt *wsdl.PortType) error {
	if err := imp.verifyExtensions(pt); err != nil {
		return err
	}
	for _, op := range pt.Operations {
		if err := imp.verifyExtensions(op); err != nil {
			return err
		}
		for _, m := range op.Messages() {
			if err := imp.verifyExtensions(m); err != nil {
				return err
			}
		}
		for _, f := range op.Faults {
			if err := imp.verifyExtensions(f); err != nil {
				return err
			}
		}
	}
	return nil
}

func (imp *Importer) verifyBinding(b *wsdl.Binding) error {
	if err := imp.verifyExtensions(b); err != nil {
		return err
	}
	for _, ob := range b.Operations {
		if err := imp.verifyExtensions(ob); err != nil {
			return err
		}
		if ob.Input != nil {
			if err := imp.verifyExtensions(ob.Input); err != nil {
				return err
			}
		}
		if ob.Output != nil {
			if err := imp.verifyExtensions(ob.Output); err != nil {
				return err
			}
		}
		for _, f := range ob.Faults {
			if err := imp.verifyExtensions(f); err != nil {
				return err
			}
		}
	}
	return nil
}

func (imp *Importer) verifyPort(p *wsdl.Port) error {
	return imp.verifyExtensions(p)
}

// verifyExtensions fails when a required extension element of item was not
// handled. Unhandled HTTP and MIME binding extensions count as required.
// Other unhandled elements are reported as warnings.
func (imp *Importer) verifyExtensions(item wsdl.NamedItem) error {
	for _, ext := range item.ExtensionElements() {
		if imp.IsHandled(ext) {
			continue
		}
		if isRequired(ext) || isNonSOAPBindingExtension(ext) {
			return newImportError(item, fmt.Errorf("%w: element '%s' from namespace '%s'",
				ErrRequiredExtensionIgnored, ext.LocalName(), ext.NamespaceURI()))
		}
		imp.LogWarning(fmt.Sprintf("optional WSDL extension ignored: element '%s' from namespace '%s' was not handled\nXPath: %s",
			ext.LocalName(), ext.NamespaceURI(), Locator(item)))
	}
	return nil
}

func isRequired(e *xmlnode.Element) bool {
	v, ok := xmlnode.AttrValue(e.Attrs, wsdl.WSDLNamespace, "required")
	return ok && (v == "true" || v == "1")
}

func isNonSOAPBindingExtension(e *xmlnode.Element) bool {
	ns := e.NamespaceURI()
	return ns == wsdl.HTTPNamespace || ns == wsdl.MIMENamespace
}
