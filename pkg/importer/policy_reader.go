package importer

import (
	"fmt"

	"github.com/pyneda/wsimport/pkg/metadata"
	"github.com/pyneda/wsimport/pkg/policy"
	"github.com/pyneda/wsimport/pkg/wsdl"
	"github.com/pyneda/wsimport/pkg/xmlnode"
)

// policyReader collects the policies attached to WSDL items and resolves
// policy references.
//
// Policies embedded at the top level of a WSDL document are keyed by
// "#" + fragment id within that document. External policy documents are
// keyed by their identifier followed by "#" + fragment id, or by the
// identifier alone when the policy has no id.
type policyReader struct {
	imp        *Importer
	embedded   map[*wsdl.Document]map[string]*xmlnode.Element
	external   map[string]*xmlnode.Element
	sources    map[*xmlnode.Element]*wsdl.Document
	normalizer *policy.Normalizer
}

func newPolicyReader(imp *Importer) *policyReader {
	r := &policyReader{
		imp:      imp,
		embedded: make(map[*wsdl.Document]map[string]*xmlnode.Element),
		external: make(map[string]*xmlnode.Element),
		sources:  make(map[*xmlnode.Element]*wsdl.Document),
	}
	r.normalizer = &policy.Normalizer{
		Resolver:      r,
		MaxNodes:      imp.quotas.MaxPolicyNodes,
		MaxAssertions: imp.quotas.MaxPolicyAssertions,
		Warn:          imp.LogWarning,
	}

	for _, doc := range imp.store.Documents.Documents() {
		for _, e := range doc.Extensions {
			if policy.IsPolicy(e) {
				r.addEmbedded(doc, e)
			}
		}
	}
	for _, p := range imp.store.Policies {
		r.addExternal(p)
	}
	return r
}

func (r *policyReader) addEmbedded(doc *wsdl.Document, e *xmlnode.Element) {
	id := policy.FragmentID(e)
	if id == "" {
		r.imp.LogWarning(fmt.Sprintf("A policy embedded in a WSDL document has no wsu:Id or xml:id and cannot be referenced.\nXPath: %s", Locator(doc)))
		return
	}

	key := "#" + id
	policies, ok := r.embedded[doc]
	if !ok {
		policies = make(map[string]*xmlnode.Element)
		r.embedded[doc] = policies
	} else if _, duplicate := policies[key]; duplicate {
		r.imp.LogWarning(fmt.Sprintf("A policy with a duplicate id was skipped.\nXPath: %s/wsp:Policy/[@Id='%s']", Locator(doc), id))
		return
	}
	policies[key] = e
	r.sources[e] = doc
}

func (r *policyReader) addExternal(p metadata.PolicyDocument) {
	if !policy.IsPolicyNamespace(p.Element.NamespaceURI()) {
		r.imp.LogWarning(fmt.Sprintf("The policy document %s has an unrecognized namespace %q and was ignored.", p.Identifier, p.Element.NamespaceURI()))
		return
	}
	if !policy.IsPolicy(p.Element) {
		r.imp.LogWarning(fmt.Sprintf("The policy document %s has an unsupported root element %q and was ignored.", p.Identifier, p.Element.LocalName()))
		return
	}

	key := p.Identifier
	if id := policy.FragmentID(p.Element); id != "" {
		key += "#" + id
	}
	if _, duplicate := r.external[key]; duplicate {
		r.imp.LogWarning(fmt.Sprintf("A duplicate policy document %s was skipped.", key))
		return
	}
	r.external[key] = p.Element
}

// ResolvePolicyReference implements policy.Resolver. Fragment references
// resolve within the document the context policy came from.
func (r *policyReader) ResolvePolicyReference(uri string, context *xmlnode.Element) *xmlnode.Element {
	if uri == "" {
		return nil
	}
	if uri[0] != '#' {
		return r.external[uri]
	}
	if context == nil {
		return nil
	}
	doc, ok := r.sources[context]
	if !ok {
		return nil
	}
	return r.resolveIn(uri, doc)
}

func (r *policyReader) resolveIn(uri string, doc *wsdl.Document) *xmlnode.Element {
	if uri == "" {
		return nil
	}
	if uri[0] != '#' {
		return r.external[uri]
	}
	return r.embedded[doc][uri]
}

func (r *policyReader) normalize(policies ...*xmlnode.Element) ([]policy.Alternative, error) {
	return r.normalizer.Normalize(policies...)
}

// alternatives normalizes every policy attached to item, both referenced
// and embedded. The policy elements are marked handled.
func (r *policyReader) alternatives(item wsdl.NamedItem, doc *wsdl.Document) ([]policy.Alternative, error) {
	var policies []*xmlnode.Element
	for _, uri := range r.referenceURIs(item) {
		target := r.resolveIn(uri, doc)
		if target == nil {
			r.imp.LogWarning(fmt.Sprintf("Unable to find the policy %q referenced by a WSDL item.\nXPath: %s", uri, Locator(item)))
			continue
		}
		policies = append(policies, target)
	}

	for _, e := range item.ExtensionElements() {
		if !policy.IsPolicy(e) {
			continue
		}
		r.imp.MarkHandled(e)
		policies = append(policies, e)
		if _, ok := r.sources[e]; !ok {
			r.sources[e] = doc
		}
	}

	alternatives, err := r.normalize(policies...)
	if err != nil {
		return nil, newImportError(item, err)
	}
	return alternatives, nil
}

// referenceURIs lists the references of the wsp:PolicyURIs attribute
// followed by those of wsp:PolicyReference elements
func (r *policyReader) referenceURIs(item wsdl.NamedItem) []string {
	uris := policy.PolicyURIs(item.ExtensionAttributes())
	for _, e := range item.ExtensionElements() {
		if !policy.IsPolicyReference(e) {
			continue
		}
		r.imp.MarkHandled(e)
		uri, ok := policy.ReferenceURI(e)
		switch {
		case !ok:
			r.imp.LogWarning("A policy reference has no URI attribute and was ignored.")
		case uri == "":
			r.imp.LogWarning("A policy reference has an empty URI and was ignored.")
		default:
			uris = append(uris, uri)
		}
	}
	return uris
}

// hasPolicyAttached reports whether item carries or references a policy
func hasPolicyAttached(item wsdl.NamedItem) bool {
	if policy.HasPolicyURIs(item.ExtensionAttributes()) {
		return true
	}
	for _, e := range item.ExtensionElements() {
		if policy.IsPolicy(e) || policy.IsPolicyReference(e) {
			return true
		}
	}
	return false
}
