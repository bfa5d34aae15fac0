package cmd

import (
	"fmt"
	"os"

	"github.com/pyneda/wsimport/api"
	"github.com/pyneda/wsimport/internal/config"
	"github.com/pyneda/wsimport/pkg/metadata"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var apiDisableFetch bool

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Starts the import API server",
	Long: `Serve POST /api/v1/import, which accepts inline metadata documents or
URLs to download and returns the imported contracts, bindings and endpoints.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := log.With().Str("component", "api").Logger()

		cfg, err := config.FromViper()
		if err != nil {
			logger.Error().Err(err).Msg("Invalid configuration")
			os.Exit(1)
		}

		handler := &api.ImportHandler{Options: cfg.Importer.Options()}
		if !apiDisableFetch {
			handler.Fetcher = metadata.NewFetcher().
				WithTimeout(cfg.Fetch.Timeout).
				WithConcurrency(cfg.Fetch.Concurrency).
				WithMaxDepth(cfg.Fetch.MaxDepth).
				WithHeaders(cfg.Fetch.Headers)
		}

		opts := api.ServerOptions{
			Address:     fmt.Sprintf("%s:%d", viper.GetString("api.listen.host"), viper.GetInt("api.listen.port")),
			CORSOrigins: viper.GetStringSlice("api.cors.origins"),
			BodyLimit:   viper.GetInt("api.body_limit"),
		}
		if err := api.StartAPI(handler, opts); err != nil {
			logger.Error().Err(err).Msg("API server stopped")
			os.Exit(1)
		}
	},
}

func init() {
	apiCmd.Flags().BoolVar(&apiDisableFetch, "disable-fetch", false, "Reject import requests that ask the server to download metadata")
	rootCmd.AddCommand(apiCmd)
}
