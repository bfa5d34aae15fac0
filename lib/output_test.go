package lib

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRow struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

func (m mockRow) String() string         { return m.Name + "=" + m.Value }
func (m mockRow) Pretty() string         { return "Name: " + m.Name }
func (m mockRow) TableHeaders() []string { return []string{"Name", "Value"} }
func (m mockRow) TableRow() []string     { return []string{m.Name, m.Value} }

func TestFormatOutput(t *testing.T) {
	rows := []mockRow{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}

	tests := []struct {
		format   FormatType
		contains []string
	}{
		{Text, []string{"a=1\nb=2"}},
		{Pretty, []string{"Name: a\nName: b"}},
		{JSON, []string{`"name": "a"`, `"value": "2"`}},
		{YAML, []string{"- name: a", "  value: \"2\""}},
		{Table, []string{"NAME", "VALUE", "| a", "| b"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			out, err := FormatOutput(rows, tt.format)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestFormatOutputEmpty(t *testing.T) {
	out, err := FormatOutput([]mockRow(nil), JSON)
	require.NoError(t, err)
	assert.Equal(t, "[]", out)

	out, err = FormatOutput([]mockRow{}, Table)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestFormatOutputUnknown(t *testing.T) {
	_, err := FormatOutput([]mockRow{}, FormatType("xml"))
	assert.EqualError(t, err, "unknown format: xml")
}

func TestParseFormatType(t *testing.T) {
	format, err := ParseFormatType("YAML")
	require.NoError(t, err)
	assert.Equal(t, YAML, format)

	_, err = ParseFormatType("csv")
	assert.Error(t, err)
}

func TestWriteOutputAndFile(t *testing.T) {
	rows := []mockRow{{Name: "a", Value: "1"}}

	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, rows, Text))
	assert.Equal(t, "a=1\n", buf.String())

	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, FormatOutputToFile(rows, Text, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a=1", string(data))
}

func TestPrintDiagnostics(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	var buf bytes.Buffer
	PrintDiagnostics(&buf, []Diagnostic{
		{Message: "first", IsWarning: true},
		{Message: "second"},
	})
	assert.Equal(t, "warning: first\nerror: second\n", buf.String())
}
