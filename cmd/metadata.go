package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pyneda/wsimport/internal/config"
	"github.com/pyneda/wsimport/internal/view"
	"github.com/pyneda/wsimport/lib"
	"github.com/pyneda/wsimport/pkg/importer"
	"github.com/pyneda/wsimport/pkg/metadata"
	"github.com/pyneda/wsimport/pkg/wsdl"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// sourceFlags are the metadata inputs shared by every import command
type sourceFlags struct {
	files    []string
	policies []string
	urls     []string
	format   string
	output   string
}

func (s *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&s.files, "file", "f", nil, "WSDL, XML Schema or WS-Policy file (repeatable)")
	cmd.Flags().StringArrayVarP(&s.policies, "policy", "p", nil, "External policy as identifier=file, referenced from the WSDL by its identifier (repeatable)")
	cmd.Flags().StringSliceVarP(&s.urls, "url", "u", nil, "Metadata URL to download together with its imports (repeatable)")
	cmd.Flags().StringVar(&s.format, "format", "", "Output format (pretty, text, json, yaml, table)")
	cmd.Flags().StringVarP(&s.output, "output", "o", "", "Write the results to a file instead of stdout")
}

// load builds the metadata set from files, policies and URLs
func (s *sourceFlags) load(ctx context.Context, cfg config.FetchConfig) (metadata.Set, error) {
	if len(s.files) == 0 && len(s.policies) == 0 && len(s.urls) == 0 {
		return metadata.Set{}, fmt.Errorf("at least one --file, --policy or --url must be provided")
	}

	var set metadata.Set
	for _, path := range s.files {
		data, err := os.ReadFile(path)
		if err != nil {
			return set, fmt.Errorf("failed to read %s: %w", path, err)
		}
		section, err := metadata.SectionFromBytes(data, path)
		if err != nil {
			return set, err
		}
		set.Add(section)
	}

	for _, value := range s.policies {
		identifier, path, found := strings.Cut(value, "=")
		if !found {
			path = identifier
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return set, fmt.Errorf("failed to read policy %s: %w", path, err)
		}
		set.Add(metadata.Section{Dialect: metadata.DialectPolicy, Identifier: identifier, Metadata: data})
	}

	if len(s.urls) > 0 {
		fetcher := metadata.NewFetcher().
			WithTimeout(cfg.Timeout).
			WithConcurrency(cfg.Concurrency).
			WithMaxDepth(cfg.MaxDepth).
			WithHeaders(cfg.Headers)
		fetched, err := fetcher.Fetch(ctx, s.urls...)
		if err != nil {
			return set, err
		}
		set.Sections = append(set.Sections, fetched.Sections...)
	}
	return set, nil
}

// runImport loads the metadata, runs the import and prints the rows and
// the conversion errors collected on the way
func runImport[R lib.Formattable](cmd *cobra.Command, sources *sourceFlags, component string, run func(imp *importer.Importer) ([]R, error)) {
	logger := log.With().Str("component", component).Logger()

	cfg, err := config.FromViper()
	if err != nil {
		logger.Error().Err(err).Msg("Invalid configuration")
		os.Exit(1)
	}

	formatName := sources.format
	if formatName == "" {
		formatName = cfg.Output.Format
	}
	format, err := lib.ParseFormatType(formatName)
	if err != nil {
		logger.Error().Err(err).Msg("Error parsing format type")
		os.Exit(1)
	}

	if format == lib.Pretty && !term.IsTerminal(int(os.Stdout.Fd())) {
		lib.DisableColors()
	}

	set, err := sources.load(cmd.Context(), cfg.Fetch)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load metadata")
		os.Exit(1)
	}
	logger.Debug().Int("sections", len(set.Sections)).Msg("Metadata loaded")

	imp, err := importer.New(set, cfg.Importer.Options())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create importer")
		os.Exit(1)
	}
	logger = logger.With().Str("session", imp.ID().String()).Logger()

	rows, err := run(imp)
	lib.PrintDiagnostics(os.Stderr, view.Diagnostics(imp.Errors()))
	if err != nil {
		logger.Error().Err(err).Msg("Import failed")
		os.Exit(1)
	}

	if sources.output != "" {
		if err := lib.FormatOutputToFile(rows, format, sources.output); err != nil {
			logger.Error().Err(err).Msg("Failed to write output file")
			os.Exit(1)
		}
		logger.Info().Str("file", sources.output).Int("count", len(rows)).Msg("Results written")
		return
	}
	if err := lib.WriteOutput(cmd.OutOrStdout(), rows, format); err != nil {
		logger.Error().Err(err).Msg("Error formatting output")
		os.Exit(1)
	}
	logImportSummary(logger, len(rows), imp.Errors())
}

func logImportSummary(logger zerolog.Logger, count int, errs []importer.ConversionError) {
	warnings := 0
	for _, e := range errs {
		if e.IsWarning {
			warnings++
		}
	}
	logger.Debug().Int("count", count).Int("errors", len(errs)-warnings).Int("warnings", warnings).Msg("Import finished")
}

// matchesName reports whether an item is named either by its local name
// or by {namespace}name
func matchesName(item wsdl.NamedItem, name string) bool {
	if item.ItemName() == name {
		return true
	}
	doc := item.OwnerDocument()
	if doc == nil {
		return false
	}
	return wsdl.QName{Namespace: doc.TargetNamespace, LocalPart: item.ItemName()}.String() == name
}
