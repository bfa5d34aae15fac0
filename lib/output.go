package lib

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// FormatType selects how command results are rendered
type FormatType string

const (
	Pretty FormatType = "pretty"
	Text   FormatType = "text"
	JSON   FormatType = "json"
	YAML   FormatType = "yaml"
	Table  FormatType = "table"
)

// Formattable is implemented by every row type a command prints
type Formattable interface {
	String() string
	Pretty() string
	TableHeaders() []string
	TableRow() []string
}

// FormatOutput renders a list of items in the given format
func FormatOutput[T Formattable](data []T, format FormatType) (string, error) {
	switch format {
	case Text:
		lines := make([]string, 0, len(data))
		for _, item := range data {
			lines = append(lines, item.String())
		}
		return strings.Join(lines, "\n"), nil
	case Pretty:
		blocks := make([]string, 0, len(data))
		for _, item := range data {
			blocks = append(blocks, item.Pretty())
		}
		return strings.Join(blocks, "\n"), nil
	case JSON:
		if data == nil {
			data = []T{}
		}
		j, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return "", err
		}
		return string(j), nil
	case YAML:
		y, err := yaml.Marshal(data)
		if err != nil {
			return "", err
		}
		return string(y), nil
	case Table:
		if len(data) == 0 {
			return "", nil
		}
		rows := make([][]string, 0, len(data))
		for _, item := range data {
			rows = append(rows, item.TableRow())
		}
		return renderTable(data[0].TableHeaders(), rows), nil
	default:
		return "", fmt.Errorf("unknown format: %v", format)
	}
}

func renderTable(headers []string, rows [][]string) string {
	buffer := new(bytes.Buffer)
	table := tablewriter.NewWriter(buffer)
	table.SetHeader(headers)
	table.SetBorder(true)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
	return buffer.String()
}

// WriteOutput renders the items and writes them to w
func WriteOutput[T Formattable](w io.Writer, data []T, format FormatType) error {
	formatted, err := FormatOutput(data, format)
	if err != nil {
		return err
	}
	if formatted == "" {
		return nil
	}
	if !strings.HasSuffix(formatted, "\n") {
		formatted += "\n"
	}
	_, err = io.WriteString(w, formatted)
	return err
}

// FormatOutputToFile renders the items into a file
func FormatOutputToFile[T Formattable](data []T, format FormatType, filepath string) error {
	formattedData, err := FormatOutput(data, format)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath, []byte(formattedData), 0644)
}

// ParseFormatType converts a string format to a FormatType.
func ParseFormatType(format string) (FormatType, error) {
	switch FormatType(strings.ToLower(format)) {
	case Pretty:
		return Pretty, nil
	case Text:
		return Text, nil
	case JSON:
		return JSON, nil
	case YAML:
		return YAML, nil
	case Table:
		return Table, nil
	default:
		return "", fmt.Errorf("unknown format: %s", format)
	}
}

// Diagnostic is a message to show next to the command results
type Diagnostic struct {
	Message   string
	IsWarning bool
}

// PrintDiagnostics writes errors in red and warnings in yellow
func PrintDiagnostics(w io.Writer, diagnostics []Diagnostic) {
	warning := color.New(color.FgYellow, color.Bold).SprintFunc()
	failure := color.New(color.FgRed, color.Bold).SprintFunc()
	for _, d := range diagnostics {
		if d.IsWarning {
			fmt.Fprintf(w, "%s %s\n", warning("warning:"), d.Message)
		} else {
			fmt.Fprintf(w, "%s %s\n", failure("error:"), d.Message)
		}
	}
}
