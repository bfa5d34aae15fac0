package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pyneda/wsimport/pkg/description"
	"github.com/pyneda/wsimport/pkg/policy"
)

const DefaultMaxPolicyConversionContexts = 32

// Quotas bound the work done while resolving policy
type Quotas struct {
	// MaxPolicyConversionContexts is the number of policy alternatives tried
	// per binding before falling back to the first one
	MaxPolicyConversionContexts int `json:"max_policy_conversion_contexts" mapstructure:"max_policy_conversion_contexts" validate:"min=1"`
	// MaxYields bounds each cross product of policy alternatives
	MaxYields           int `json:"max_yields" mapstructure:"max_yields" validate:"min=1"`
	MaxPolicyNodes      int `json:"max_policy_nodes" mapstructure:"max_policy_nodes" validate:"min=1"`
	MaxPolicyAssertions int `json:"max_policy_assertions" mapstructure:"max_policy_assertions" validate:"min=1"`
}

// DefaultQuotas returns the quotas used when none are configured
func DefaultQuotas() Quotas {
	return Quotas{
		MaxPolicyConversionContexts: DefaultMaxPolicyConversionContexts,
		MaxYields:                   policy.DefaultMaxYields,
		MaxPolicyNodes:              policy.DefaultMaxNodes,
		MaxPolicyAssertions:         policy.DefaultMaxAssertions,
	}
}

// Options configures an Importer.
//
// A nil Extensions or PolicyExtensions slice selects the built-in set; pass
// an empty slice to run without any.
type Options struct {
	Extensions       []Extension
	PolicyExtensions []PolicyImportExtension
	// KnownContracts are reused for port types with the same qualified name
	// instead of being imported
	KnownContracts []*description.ContractDescription
	Quotas         Quotas
}

// DefaultOptions returns options with the built-in extensions and the
// default quotas
func DefaultOptions() Options {
	return Options{Quotas: DefaultQuotas()}
}

// Validate checks the quotas
func (o Options) Validate() error {
	validate := validator.New()
	if err := validate.Struct(o.Quotas); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return err
		}
		fields := make([]string, 0, len(validationErrors))
		for _, fe := range validationErrors {
			fields = append(fields, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		}
		return fmt.Errorf("invalid importer quotas: %s", strings.Join(fields, ", "))
	}
	return nil
}

func (o Options) extensions() []Extension {
	if o.Extensions == nil {
		return []Extension{NewSOAPExtension()}
	}
	return o.Extensions
}

func (o Options) policyExtensions() []PolicyImportExtension {
	if o.PolicyExtensions == nil {
		return DefaultPolicyExtensions()
	}
	return o.PolicyExtensions
}
