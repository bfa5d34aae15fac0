package config

import (
	"testing"
	"time"

	"github.com/pyneda/wsimport/pkg/importer"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	SetDefaultConfig()
	t.Cleanup(viper.Reset)
}

func TestDefaults(t *testing.T) {
	resetViper(t)

	cfg, err := FromViper()
	require.NoError(t, err)

	assert.Equal(t, importer.DefaultQuotas(), cfg.Importer.Quotas)
	assert.True(t, cfg.Importer.Extensions.SOAP)
	assert.Equal(t, []string{"transport_security", "reliable_session", "addressing"}, cfg.Importer.Extensions.Policy)
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 5, cfg.Fetch.Concurrency)
	assert.Equal(t, 10, cfg.Fetch.MaxDepth)
	assert.Equal(t, "table", cfg.Output.Format)

	opts := cfg.Importer.Options()
	assert.Nil(t, opts.Extensions)
	assert.Len(t, opts.PolicyExtensions, 3)
	assert.NoError(t, opts.Validate())
}

func TestOverrides(t *testing.T) {
	resetViper(t)
	viper.Set("importer.quotas.max_yields", 10)
	viper.Set("importer.extensions.soap", false)
	viper.Set("importer.extensions.policy", []string{"addressing"})

	cfg, err := FromViper()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Importer.Quotas.MaxYields)
	assert.Equal(t, importer.DefaultMaxPolicyConversionContexts, cfg.Importer.Quotas.MaxPolicyConversionContexts)

	opts := cfg.Importer.Options()
	assert.NotNil(t, opts.Extensions)
	assert.Empty(t, opts.Extensions)
	require.Len(t, opts.PolicyExtensions, 1)
	assert.IsType(t, &importer.AddressingPolicyImporter{}, opts.PolicyExtensions[0])
}

func TestInvalidConfig(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
		want  string
	}{
		{name: "output format", key: "output.format", value: "xml", want: "Format"},
		{name: "fetch concurrency", key: "fetch.concurrency", value: 0, want: "Concurrency"},
		{name: "quota", key: "importer.quotas.max_policy_nodes", value: 0, want: "MaxPolicyNodes"},
		{name: "policy extension", key: "importer.extensions.policy", value: []string{"security"}, want: "Policy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			viper.Set(tt.key, tt.value)

			_, err := FromViper()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
