// Package view flattens imported descriptions into rows the command line
// can print as text, tables, JSON or YAML.
package view

import (
	"fmt"
	"strings"

	"github.com/pyneda/wsimport/lib"
	"github.com/pyneda/wsimport/pkg/description"
	"github.com/pyneda/wsimport/pkg/importer"
)

// ContractRow summarizes a contract
type ContractRow struct {
	Name        string         `json:"name" yaml:"name"`
	Namespace   string         `json:"namespace" yaml:"namespace"`
	SessionMode string         `json:"session_mode" yaml:"session_mode"`
	Operations  []OperationRow `json:"operations" yaml:"operations"`
}

// OperationRow summarizes an operation of a contract
type OperationRow struct {
	Name          string   `json:"name" yaml:"name"`
	OneWay        bool     `json:"one_way" yaml:"one_way"`
	IsInitiating  bool     `json:"is_initiating" yaml:"is_initiating"`
	IsTerminating bool     `json:"is_terminating" yaml:"is_terminating"`
	Actions       []string `json:"actions" yaml:"actions"`
	Faults        []string `json:"faults,omitempty" yaml:"faults,omitempty"`
}

// NewContractRow builds the row for a contract
func NewContractRow(c *description.ContractDescription) ContractRow {
	row := ContractRow{
		Name:        c.Name,
		Namespace:   c.Namespace,
		SessionMode: c.SessionMode.String(),
		Operations:  make([]OperationRow, 0, len(c.Operations)),
	}
	for _, op := range c.Operations {
		opRow := OperationRow{
			Name:          op.Name,
			OneWay:        op.IsOneWay(),
			IsInitiating:  op.IsInitiating,
			IsTerminating: op.IsTerminating,
		}
		for _, m := range op.Messages {
			opRow.Actions = append(opRow.Actions, fmt.Sprintf("%s %s", m.Direction, m.Action))
		}
		for _, f := range op.Faults {
			opRow.Faults = append(opRow.Faults, f.Name)
		}
		row.Operations = append(row.Operations, opRow)
	}
	return row
}

func (r ContractRow) operationNames() []string {
	names := make([]string, 0, len(r.Operations))
	for _, op := range r.Operations {
		names = append(names, op.Name)
	}
	return names
}

func (r ContractRow) String() string {
	return fmt.Sprintf("%s (%d operations)", qualified(r.Namespace, r.Name), len(r.Operations))
}

func (r ContractRow) Pretty() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", lib.Colorize("Contract:", lib.Blue), qualified(r.Namespace, r.Name))
	fmt.Fprintf(&b, "  Session: %s\n", r.SessionMode)
	for _, op := range r.Operations {
		kind := "request-reply"
		if op.OneWay {
			kind = "one-way"
		}
		fmt.Fprintf(&b, "  %s (%s)\n", lib.Colorize(op.Name, lib.Green), kind)
		for _, action := range op.Actions {
			fmt.Fprintf(&b, "    %s\n", action)
		}
		for _, fault := range op.Faults {
			fmt.Fprintf(&b, "    fault %s\n", fault)
		}
	}
	return b.String()
}

func (r ContractRow) TableHeaders() []string {
	return []string{"Name", "Namespace", "Session", "Operations"}
}

func (r ContractRow) TableRow() []string {
	return []string{r.Name, r.Namespace, r.SessionMode, strings.Join(r.operationNames(), ", ")}
}

// BindingRow summarizes a binding and its element stack
type BindingRow struct {
	Name      string   `json:"name" yaml:"name"`
	Namespace string   `json:"namespace" yaml:"namespace"`
	Scheme    string   `json:"scheme,omitempty" yaml:"scheme,omitempty"`
	Elements  []string `json:"elements" yaml:"elements"`
}

// NewBindingRow builds the row for a binding
func NewBindingRow(b *description.Binding) BindingRow {
	row := BindingRow{Name: b.Name, Namespace: b.Namespace, Elements: b.ElementKinds()}
	if transport, ok := description.FindElement[*description.HTTPTransportBindingElement](b); ok {
		row.Scheme = transport.Scheme()
	}
	return row
}

func (r BindingRow) String() string {
	return fmt.Sprintf("%s [%s]", qualified(r.Namespace, r.Name), strings.Join(r.Elements, " > "))
}

func (r BindingRow) Pretty() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", lib.Colorize("Binding:", lib.Blue), qualified(r.Namespace, r.Name))
	if r.Scheme != "" {
		fmt.Fprintf(&b, "  Scheme: %s\n", r.Scheme)
	}
	for i, kind := range r.Elements {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, kind)
	}
	return b.String()
}

func (r BindingRow) TableHeaders() []string {
	return []string{"Name", "Namespace", "Scheme", "Elements"}
}

func (r BindingRow) TableRow() []string {
	return []string{r.Name, r.Namespace, r.Scheme, strings.Join(r.Elements, ", ")}
}

// EndpointRow summarizes a service endpoint
type EndpointRow struct {
	Name     string   `json:"name" yaml:"name"`
	Address  string   `json:"address,omitempty" yaml:"address,omitempty"`
	Contract string   `json:"contract" yaml:"contract"`
	Binding  string   `json:"binding,omitempty" yaml:"binding,omitempty"`
	Elements []string `json:"elements,omitempty" yaml:"elements,omitempty"`
}

// NewEndpointRow builds the row for an endpoint
func NewEndpointRow(e *description.ServiceEndpoint) EndpointRow {
	row := EndpointRow{Name: e.Name}
	if e.Address != nil {
		row.Address = e.Address.URI
	}
	if e.Contract != nil {
		row.Contract = e.Contract.QName().String()
	}
	if e.Binding != nil {
		row.Binding = e.Binding.QName().String()
		row.Elements = e.Binding.ElementKinds()
	}
	return row
}

func (r EndpointRow) String() string {
	return fmt.Sprintf("%s %s (%s)", r.Name, r.Address, r.Contract)
}

func (r EndpointRow) Pretty() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", lib.Colorize("Endpoint:", lib.Blue), r.Name)
	fmt.Fprintf(&b, "  Address:  %s\n", r.Address)
	fmt.Fprintf(&b, "  Contract: %s\n", r.Contract)
	fmt.Fprintf(&b, "  Binding:  %s\n", r.Binding)
	if len(r.Elements) > 0 {
		fmt.Fprintf(&b, "  Elements: %s\n", strings.Join(r.Elements, " > "))
	}
	return b.String()
}

func (r EndpointRow) TableHeaders() []string {
	return []string{"Name", "Address", "Contract", "Binding"}
}

func (r EndpointRow) TableRow() []string {
	return []string{r.Name, r.Address, r.Contract, r.Binding}
}

// Rows maps a slice of descriptions to rows
func Rows[D any, R lib.Formattable](items []D, fn func(D) R) []R {
	rows := make([]R, 0, len(items))
	for _, item := range items {
		rows = append(rows, fn(item))
	}
	return rows
}

// Diagnostics converts conversion errors for printing
func Diagnostics(errs []importer.ConversionError) []lib.Diagnostic {
	out := make([]lib.Diagnostic, 0, len(errs))
	for _, e := range errs {
		out = append(out, lib.Diagnostic{Message: e.Message, IsWarning: e.IsWarning})
	}
	return out
}

func qualified(namespace, name string) string {
	return description.QName{Name: name, Namespace: namespace}.String()
}
