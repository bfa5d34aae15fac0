package importer

import (
	"fmt"
	"strings"

	"github.com/pyneda/wsimport/pkg/description"
	"github.com/pyneda/wsimport/pkg/wsdl"
	"github.com/pyneda/wsimport/pkg/xmlnode"
)

const (
	Addressing10Namespace     = "http://www.w3.org/2005/08/addressing"
	Addressing200408Namespace = "http://schemas.xmlsoap.org/ws/2004/08/addressing"
)

// SOAPExtension imports the SOAP 1.1 and SOAP 1.2 WSDL bindings: it adds
// the message encoding and HTTP transport to a binding and reads the
// address of a port.
type SOAPExtension struct{}

// NewSOAPExtension creates the SOAP binding extension
func NewSOAPExtension() *SOAPExtension {
	return &SOAPExtension{}
}

func (*SOAPExtension) BeforeImport([]*wsdl.Document, *wsdl.SchemaSet, []*xmlnode.Element) error {
	return nil
}

func (*SOAPExtension) ImportContract(*Importer, *ContractConversionContext) error {
	return nil
}

func (s *SOAPExtension) ImportEndpoint(imp *Importer, ctx *EndpointConversionContext) error {
	soapBinding, version := findSOAPBinding(ctx.Binding)
	if soapBinding == nil {
		return nil
	}
	imp.MarkHandled(soapBinding)

	// A port without its own policy shares the binding's element list
	if ctx.Port == nil || hasPolicyAttached(ctx.Port) {
		if err := s.importBinding(imp, ctx, soapBinding, version); err != nil {
			return err
		}
	}
	if ctx.Port != nil {
		s.importAddress(imp, ctx)
	}
	return nil
}

func (s *SOAPExtension) importBinding(imp *Importer, ctx *EndpointConversionContext, soapBinding *xmlnode.Element, version description.EnvelopeVersion) error {
	transport := strings.TrimSpace(soapBinding.GetAttribute("transport"))
	if transport != "" && transport != wsdl.SOAPHTTPTransport {
		return fmt.Errorf("unsupported SOAP transport %q in binding %s", transport, ctx.Binding.Name)
	}

	namespace := soapNamespace(version)
	for _, ob := range ctx.Binding.Operations {
		markNamespace(imp, ob, namespace)
		for _, mb := range []*wsdl.MessageBinding{ob.Input, ob.Output} {
			if mb != nil {
				markNamespace(imp, mb, namespace)
			}
		}
		for _, fb := range ob.Faults {
			markNamespace(imp, fb, namespace)
		}
	}

	binding := ctx.Endpoint.Binding
	if _, ok := description.FindElement[*description.AddressingBindingElement](binding); !ok {
		for _, e := range ctx.Binding.Extensions {
			if e.Is(AddressingWSDLNamespace, "UsingAddressing") {
				imp.MarkHandled(e)
				binding.Elements = append(binding.Elements, &description.AddressingBindingElement{
					Version: description.Addressing10,
					Mode:    description.AddressingModeAny,
				})
				break
			}
		}
	}
	if _, ok := description.FindElement[*description.TextMessageEncodingBindingElement](binding); !ok {
		binding.Elements = append(binding.Elements, &description.TextMessageEncodingBindingElement{EnvelopeVersion: version})
	}
	if _, ok := description.FindElement[*description.HTTPTransportBindingElement](binding); !ok {
		_, secure := description.FindElement[*description.TransportSecurityBindingElement](binding)
		binding.Elements = append(binding.Elements, &description.HTTPTransportBindingElement{Secure: secure})
	}
	return nil
}

// importAddress sets the endpoint address from an endpoint reference or a
// soap:address element
func (s *SOAPExtension) importAddress(imp *Importer, ctx *EndpointConversionContext) {
	var address string
	for _, e := range ctx.Port.Extensions {
		switch {
		case e.Is(Addressing10Namespace, "EndpointReference"), e.Is(Addressing200408Namespace, "EndpointReference"):
			imp.MarkHandled(e)
			if a := e.Find(e.NamespaceURI(), "Address"); a != nil {
				address = a.TextContent()
			}
		case e.Is(wsdl.SOAP11Namespace, "address"), e.Is(wsdl.SOAP12Namespace, "address"):
			imp.MarkHandled(e)
			if address == "" {
				address = strings.TrimSpace(e.GetAttribute("location"))
			}
		}
	}
	if address != "" {
		ctx.Endpoint.Address = &description.EndpointAddress{URI: address}
	}
}

func findSOAPBinding(b *wsdl.Binding) (*xmlnode.Element, description.EnvelopeVersion) {
	for _, e := range b.Extensions {
		switch {
		case e.Is(wsdl.SOAP12Namespace, "binding"):
			return e, description.EnvelopeSOAP12
		case e.Is(wsdl.SOAP11Namespace, "binding"):
			return e, description.EnvelopeSOAP11
		}
	}
	return nil, ""
}

func soapNamespace(version description.EnvelopeVersion) string {
	if version == description.EnvelopeSOAP12 {
		return wsdl.SOAP12Namespace
	}
	return wsdl.SOAP11Namespace
}

func markNamespace(imp *Importer, item wsdl.NamedItem, namespace string) {
	for _, e := range item.ExtensionElements() {
		if e.NamespaceURI() == namespace {
			imp.MarkHandled(e)
		}
	}
}
