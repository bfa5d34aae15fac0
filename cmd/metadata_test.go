package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pyneda/wsimport/internal/config"
	"github.com/pyneda/wsimport/pkg/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalWSDL = `<definitions xmlns="http://schemas.xmlsoap.org/wsdl/" targetNamespace="urn:t"/>`

const minimalPolicy = `<wsp:Policy xmlns:wsp="http://schemas.xmlsoap.org/ws/2004/09/policy"/>`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSourceFlagsLoad(t *testing.T) {
	wsdlPath := writeFile(t, "service.wsdl", minimalWSDL)
	policyPath := writeFile(t, "policy.xml", minimalPolicy)

	sources := sourceFlags{
		files:    []string{wsdlPath},
		policies: []string{"http://host/policy=" + policyPath, policyPath},
	}
	set, err := sources.load(context.Background(), config.FetchConfig{})
	require.NoError(t, err)
	require.Len(t, set.Sections, 3)

	assert.Equal(t, metadata.DialectWSDL, set.Sections[0].Dialect)
	assert.Equal(t, wsdlPath, set.Sections[0].Identifier)
	assert.Equal(t, metadata.DialectPolicy, set.Sections[1].Dialect)
	assert.Equal(t, "http://host/policy", set.Sections[1].Identifier)
	assert.Equal(t, policyPath, set.Sections[2].Identifier)
}

func TestSourceFlagsLoadErrors(t *testing.T) {
	_, err := (&sourceFlags{}).load(context.Background(), config.FetchConfig{})
	assert.Error(t, err)

	_, err = (&sourceFlags{files: []string{filepath.Join(t.TempDir(), "missing.wsdl")}}).load(context.Background(), config.FetchConfig{})
	assert.ErrorContains(t, err, "failed to read")

	unknown := writeFile(t, "other.xml", `<root xmlns="urn:other"/>`)
	_, err = (&sourceFlags{files: []string{unknown}}).load(context.Background(), config.FetchConfig{})
	assert.ErrorIs(t, err, metadata.ErrUnknownDialect)
}
