package importer

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/pyneda/wsimport/pkg/description"
	"github.com/pyneda/wsimport/pkg/policy"
	"github.com/pyneda/wsimport/pkg/wsdl"
	"github.com/pyneda/wsimport/pkg/xmlnode"
)

const maxReportedAssertions = 128

// PolicyConversionContext is one combination of policy alternatives for an
// endpoint: an alternative for the endpoint itself and one for each bound
// operation, message and fault. Policy importers remove the assertions
// they understand and append binding elements.
type PolicyConversionContext struct {
	Contract        *description.ContractDescription
	BindingElements []description.BindingElement

	binding    *policy.Assertions
	operations map[*description.OperationDescription]*policy.Assertions
	messages   map[*description.MessageDescription]*policy.Assertions
	faults     map[*description.FaultDescription]*policy.Assertions
}

// BindingAssertions returns the endpoint scope assertions
func (c *PolicyConversionContext) BindingAssertions() *policy.Assertions {
	return c.binding
}

// OperationAssertions returns the assertions of an operation binding
func (c *PolicyConversionContext) OperationAssertions(op *description.OperationDescription) *policy.Assertions {
	return assertionsOf(c.operations, op)
}

// MessageAssertions returns the assertions of a message binding
func (c *PolicyConversionContext) MessageAssertions(m *description.MessageDescription) *policy.Assertions {
	return assertionsOf(c.messages, m)
}

// FaultAssertions returns the assertions of a fault binding
func (c *PolicyConversionContext) FaultAssertions(f *description.FaultDescription) *policy.Assertions {
	return assertionsOf(c.faults, f)
}

func assertionsOf[K comparable](m map[K]*policy.Assertions, key K) *policy.Assertions {
	a, ok := m[key]
	if !ok {
		a = policy.NewAssertions()
		m[key] = a
	}
	return a
}

// AddBindingElement appends a binding element
func (c *PolicyConversionContext) AddBindingElement(e description.BindingElement) {
	c.BindingElements = append(c.BindingElements, e)
}

// consumed reports whether every assertion was claimed by an importer
func (c *PolicyConversionContext) consumed() bool {
	if c.binding.Len() != 0 {
		return false
	}
	for _, scopes := range []iter.Seq[*policy.Assertions]{
		mapValues(c.operations), mapValues(c.messages), mapValues(c.faults),
	} {
		for a := range scopes {
			if a.Len() != 0 {
				return false
			}
		}
	}
	return true
}

func mapValues[K comparable, V any](m map[K]V) iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m {
			if !yield(v) {
				return
			}
		}
	}
}

// policyScope is an operation, message or fault binding and its policy
// alternatives
type policyScope struct {
	item         wsdl.NamedItem
	operation    *description.OperationDescription
	message      *description.MessageDescription
	fault        *description.FaultDescription
	alternatives []policy.Alternative
}

// endpointAlternatives holds the alternatives of every scope of an endpoint
type endpointAlternatives struct {
	endpoint iter.Seq2[policy.Alternative, error]
	scopes   []policyScope
}

// policyAlternatives gathers the policy alternatives of an endpoint. When a
// port takes part, the endpoint alternatives are the cross product of the
// binding and port alternatives.
func (imp *Importer) policyAlternatives(ctx *EndpointConversionContext) (*endpointAlternatives, error) {
	bindingDoc := ctx.Binding.OwnerDocument()
	bindingAlternatives, err := imp.policyReader.alternatives(ctx.Binding, bindingDoc)
	if err != nil {
		return nil, err
	}

	result := &endpointAlternatives{endpoint: policy.Each(bindingAlternatives)}
	if ctx.Port != nil {
		portAlternatives, err := imp.policyReader.alternatives(ctx.Port, ctx.Port.OwnerDocument())
		if err != nil {
			return nil, err
		}
		result.endpoint = policy.CrossProduct(bindingAlternatives, portAlternatives, imp.quotas.MaxYields)
	}

	for _, op := range ctx.Endpoint.Contract.Operations {
		ob := ctx.OperationBinding(op)
		if ob == nil {
			continue
		}
		alternatives, err := imp.policyReader.alternatives(ob, bindingDoc)
		if err != nil {
			return nil, err
		}
		result.scopes = append(result.scopes, policyScope{item: ob, operation: op, alternatives: alternatives})

		for _, m := range op.Messages {
			scope := policyScope{message: m, alternatives: []policy.Alternative{{}}}
			if mb := ctx.MessageBinding(m); mb != nil {
				if scope.alternatives, err = imp.policyReader.alternatives(mb, bindingDoc); err != nil {
					return nil, err
				}
				scope.item = mb
			}
			result.scopes = append(result.scopes, scope)
		}
		for _, f := range op.Faults {
			scope := policyScope{fault: f, alternatives: []policy.Alternative{{}}}
			if fb := ctx.FaultBinding(f); fb != nil {
				if scope.alternatives, err = imp.policyReader.alternatives(fb, bindingDoc); err != nil {
					return nil, err
				}
				scope.item = fb
			}
			result.scopes = append(result.scopes, scope)
		}
	}
	return result, nil
}

// policyContexts lazily yields every combination of the endpoint and scope
// alternatives. Past the yield quota it yields ErrQuotaExceeded and stops.
func (imp *Importer) policyContexts(contract *description.ContractDescription, alternatives *endpointAlternatives) iter.Seq2[*PolicyConversionContext, error] {
	sets := make([][]policy.Alternative, len(alternatives.scopes))
	for i, scope := range alternatives.scopes {
		sets[i] = scope.alternatives
	}

	return func(yield func(*PolicyConversionContext, error) bool) {
		limiter := policy.NewYieldLimiter(imp.quotas.MaxYields)
		for endpoint, err := range alternatives.endpoint {
			if err != nil {
				yield(nil, err)
				return
			}
			for combination := range policy.Combinations(sets) {
				if err := limiter.Increment(); err != nil {
					yield(nil, err)
					return
				}
				if !yield(newPolicyConversionContext(contract, endpoint, alternatives.scopes, combination), nil) {
					return
				}
			}
		}
	}
}

func newPolicyConversionContext(contract *description.ContractDescription, endpoint policy.Alternative, scopes []policyScope, combination []policy.Alternative) *PolicyConversionContext {
	ctx := &PolicyConversionContext{
		Contract:   contract,
		binding:    policy.NewAssertions(endpoint...),
		operations: make(map[*description.OperationDescription]*policy.Assertions),
		messages:   make(map[*description.MessageDescription]*policy.Assertions),
		faults:     make(map[*description.FaultDescription]*policy.Assertions),
	}
	for i, scope := range scopes {
		assertions := policy.NewAssertions(combination[i]...)
		switch {
		case scope.operation != nil:
			ctx.operations[scope.operation] = assertions
		case scope.message != nil:
			ctx.messages[scope.message] = assertions
		case scope.fault != nil:
			ctx.faults[scope.fault] = assertions
		}
	}
	return ctx
}

// importPolicy resolves the policy of an endpoint into binding elements.
// The first combination whose assertions are all claimed wins. When none
// is, the first combination is used with its unclaimed assertions kept in
// an UnrecognizedAssertionsBindingElement at the front.
func (imp *Importer) importPolicy(ctx *EndpointConversionContext) ([]description.BindingElement, error) {
	alternatives, err := imp.policyAlternatives(ctx)
	if err != nil {
		return nil, err
	}

	var first *PolicyConversionContext
	var report strings.Builder
	seen := 0
	for pctx, err := range imp.policyContexts(ctx.Endpoint.Contract, alternatives) {
		if err != nil {
			return nil, err
		}
		if first == nil {
			first = pctx
		}

		ok, err := imp.tryImportPolicy(pctx)
		if err != nil {
			return nil, err
		}
		if ok {
			return pctx.BindingElements, nil
		}
		appendUnimportedPolicy(&report, ctx, pctx)

		seen++
		if seen >= imp.quotas.MaxPolicyConversionContexts {
			break
		}
	}

	if first == nil {
		return nil, fmt.Errorf("%w: binding %s", ErrNoUsablePolicy, ctx.Binding.Name)
	}
	first.BindingElements = slices.Insert(first.BindingElements, 0, description.BindingElement(collectUnrecognizedAssertions(ctx, first)))
	imp.LogWarning(report.String())
	return first.BindingElements, nil
}

func (imp *Importer) tryImportPolicy(ctx *PolicyConversionContext) (bool, error) {
	for _, ext := range imp.policyExtensions {
		err := invokeHook(ext, "ImportPolicy", func() error {
			return ext.ImportPolicy(imp, ctx)
		})
		if err != nil {
			return false, err
		}
	}
	return ctx.consumed(), nil
}

func collectUnrecognizedAssertions(ctx *EndpointConversionContext, pctx *PolicyConversionContext) *description.UnrecognizedAssertionsBindingElement {
	b := ctx.Binding
	element := description.NewUnrecognizedAssertionsBindingElement(
		description.QName{Name: b.Name, Namespace: b.OwnerDocument().TargetNamespace},
		pctx.binding.All(),
	)
	for op, a := range pctx.operations {
		if a.Len() != 0 {
			element.OperationAssertions[op] = a.All()
		}
	}
	for m, a := range pctx.messages {
		if a.Len() != 0 {
			element.MessageAssertions[m] = a.All()
		}
	}
	for f, a := range pctx.faults {
		if a.Len() != 0 {
			element.FaultAssertions[f] = a.All()
		}
	}
	return element
}

// appendUnimportedPolicy adds the unclaimed assertions of one combination
// to the warning text, grouped by the item they were attached to
func appendUnimportedPolicy(b *strings.Builder, ctx *EndpointConversionContext, pctx *PolicyConversionContext) {
	if b.Len() == 0 {
		b.WriteString("The following policy assertions were not imported:\n")
	} else {
		b.WriteString("\n")
	}

	if pctx.binding.Len() != 0 {
		writeUnimported(b, ctx.Binding, pctx.binding.All())
	}
	for _, op := range pctx.Contract.Operations {
		if a, ok := pctx.operations[op]; ok && a.Len() != 0 {
			writeUnimported(b, ctx.OperationBinding(op), a.All())
		}
		for _, m := range op.Messages {
			if a, ok := pctx.messages[m]; ok && a.Len() != 0 {
				writeUnimported(b, ctx.MessageBinding(m), a.All())
			}
		}
		for _, f := range op.Faults {
			if a, ok := pctx.faults[f]; ok && a.Len() != 0 {
				writeUnimported(b, ctx.FaultBinding(f), a.All())
			}
		}
	}
}

func writeUnimported(b *strings.Builder, item wsdl.NamedItem, assertions []*xmlnode.Element) {
	fmt.Fprintf(b, "  XPath: %s\n  Assertions:\n", Locator(item))
	seen := make(map[*xmlnode.Element]struct{}, len(assertions))
	for _, e := range assertions {
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		if len(seen) > maxReportedAssertions {
			b.WriteString("..\n")
			return
		}
		if ns := e.NamespaceURI(); ns != "" {
			fmt.Fprintf(b, "    <%s xmlns='%s'>..</%s>\n", e.LocalName(), ns, e.LocalName())
		} else {
			fmt.Fprintf(b, "    <%s>..</%s>\n", e.LocalName(), e.LocalName())
		}
	}
}
