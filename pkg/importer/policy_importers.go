package importer

import (
	"github.com/pyneda/wsimport/pkg/description"
	"github.com/pyneda/wsimport/pkg/policy"
	"github.com/pyneda/wsimport/pkg/xmlnode"
)

const (
	// Addressing200408PolicyNamespace is the WS-Addressing 2004/08 policy namespace
	Addressing200408PolicyNamespace = "http://schemas.xmlsoap.org/ws/2004/08/addressing/policy"

	SecurityPolicy200702Namespace = "http://docs.oasis-open.org/ws-sx/ws-securitypolicy/200702"
	SecurityPolicy200507Namespace = "http://schemas.xmlsoap.org/ws/2005/07/securitypolicy"

	ReliableMessaging11PolicyNamespace = "http://docs.oasis-open.org/ws-rx/wsrmp/200702"
	ReliableMessagingFeb2005Namespace  = "http://schemas.xmlsoap.org/ws/2005/02/rm/policy"
	// ReliableMessagingOrderedNamespace holds the Ordered assertion that
	// accompanies a February 2005 RMAssertion
	ReliableMessagingOrderedNamespace = "http://schemas.microsoft.com/ws/2006/05/rm"
)

// DefaultPolicyExtensions returns the policy importers registered when
// Options.PolicyExtensions is nil
func DefaultPolicyExtensions() []PolicyImportExtension {
	return []PolicyImportExtension{
		&TransportSecurityPolicyImporter{},
		&ReliableSessionPolicyImporter{},
		&AddressingPolicyImporter{},
	}
}

// AddressingPolicyImporter claims the WS-Addressing assertions of an
// endpoint
type AddressingPolicyImporter struct{}

func (*AddressingPolicyImporter) ImportPolicy(imp *Importer, ctx *PolicyConversionContext) error {
	assertions := ctx.BindingAssertions()

	var element *description.AddressingBindingElement
	if e := assertions.Find(AddressingWSDLNamespace, "UsingAddressing", true); e != nil {
		element = &description.AddressingBindingElement{Version: description.Addressing10, Mode: description.AddressingModeAny}
	}
	if e := assertions.Find(AddressingMetadataNamespace, "Addressing", true); e != nil {
		mode, err := addressingMode(imp, e)
		if err != nil {
			return err
		}
		element = &description.AddressingBindingElement{Version: description.Addressing10, Mode: mode}
	}
	if element == nil {
		if e := assertions.Find(Addressing200408PolicyNamespace, "UsingAddressing", true); e != nil {
			element = &description.AddressingBindingElement{Version: description.Addressing200408, Mode: description.AddressingModeAny}
		}
	}

	if element != nil {
		ctx.AddBindingElement(element)
	}
	return nil
}

// addressingMode reads the response restriction from the nested policy of
// a wsam:Addressing assertion
func addressingMode(imp *Importer, e *xmlnode.Element) (description.AddressingMode, error) {
	nested := nestedPolicy(e)
	if nested == nil {
		imp.LogWarning("The wsam:Addressing assertion has no nested policy, anonymous responses are assumed.")
		return description.AddressingModeAnonymous, nil
	}

	alternatives, err := imp.NormalizePolicy(nested)
	if err != nil {
		return "", err
	}

	var mode description.AddressingMode
	for _, alternative := range alternatives {
		set := policy.NewAssertions(alternative...)
		var current description.AddressingMode
		switch {
		case set.Find(AddressingMetadataNamespace, "AnonymousResponses", false) != nil:
			current = description.AddressingModeAnonymous
		case set.Find(AddressingMetadataNamespace, "NonAnonymousResponses", false) != nil:
			current = description.AddressingModeNonAnonymous
		default:
			return description.AddressingModeAny, nil
		}
		if mode != "" && mode != current {
			return description.AddressingModeAny, nil
		}
		mode = current
	}
	if mode == "" {
		mode = description.AddressingModeAny
	}
	return mode, nil
}

// TransportSecurityPolicyImporter claims sp:TransportBinding assertions
type TransportSecurityPolicyImporter struct{}

func (*TransportSecurityPolicyImporter) ImportPolicy(_ *Importer, ctx *PolicyConversionContext) error {
	assertions := ctx.BindingAssertions()
	for _, ns := range []string{SecurityPolicy200702Namespace, SecurityPolicy200507Namespace} {
		if e := assertions.Find(ns, "TransportBinding", true); e != nil {
			ctx.AddBindingElement(&description.TransportSecurityBindingElement{PolicyNamespace: ns})
			return nil
		}
	}
	return nil
}

// ReliableSessionPolicyImporter claims WS-ReliableMessaging assertions
type ReliableSessionPolicyImporter struct{}

func (*ReliableSessionPolicyImporter) ImportPolicy(_ *Importer, ctx *PolicyConversionContext) error {
	assertions := ctx.BindingAssertions()

	if e := assertions.Find(ReliableMessaging11PolicyNamespace, "RMAssertion", true); e != nil {
		ctx.AddBindingElement(&description.ReliableSessionBindingElement{
			PolicyNamespace: ReliableMessaging11PolicyNamespace,
			Ordered:         hasDescendant(e, ReliableMessaging11PolicyNamespace, "InOrder"),
		})
		return nil
	}

	if e := assertions.Find(ReliableMessagingFeb2005Namespace, "RMAssertion", true); e != nil {
		ordered := assertions.Find(ReliableMessagingOrderedNamespace, "Ordered", true) != nil
		ctx.AddBindingElement(&description.ReliableSessionBindingElement{
			PolicyNamespace: ReliableMessagingFeb2005Namespace,
			Ordered:         ordered,
		})
	}
	return nil
}

func nestedPolicy(e *xmlnode.Element) *xmlnode.Element {
	for _, child := range e.Children {
		if policy.IsPolicy(child) {
			return child
		}
	}
	return nil
}

func hasDescendant(e *xmlnode.Element, namespace, local string) bool {
	for _, child := range e.Children {
		if child.Is(namespace, local) || hasDescendant(child, namespace, local) {
			return true
		}
	}
	return false
}
