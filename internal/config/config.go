package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pyneda/wsimport/pkg/importer"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func LoadConfig() {
	viper.SetConfigName("config")         // name of config file (without extension)
	viper.SetConfigType("yaml")           // REQUIRED if the config file does not have the extension in the name
	viper.AddConfigPath("/etc/wsimport/") // path to look for the config file in
	viper.AddConfigPath(".")              // optionally look for config in the working directory
	viper.SetEnvPrefix("wsimport")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Debug().Msg("Config file not found, using defaults")
		} else {
			// Config file was found but another error was produced
			log.Panic().Err(err).Msg("Fatal error reading config file")
		}
	}
	SetDefaultConfig()
}

func SetDefaultConfig() {
	// Importer
	viper.SetDefault("importer.quotas.max_policy_conversion_contexts", importer.DefaultMaxPolicyConversionContexts)
	viper.SetDefault("importer.quotas.max_yields", importer.DefaultQuotas().MaxYields)
	viper.SetDefault("importer.quotas.max_policy_nodes", importer.DefaultQuotas().MaxPolicyNodes)
	viper.SetDefault("importer.quotas.max_policy_assertions", importer.DefaultQuotas().MaxPolicyAssertions)
	viper.SetDefault("importer.extensions.soap", true)
	viper.SetDefault("importer.extensions.policy", []string{"transport_security", "reliable_session", "addressing"})

	// Fetch
	viper.SetDefault("fetch.timeout", 30*time.Second)
	viper.SetDefault("fetch.concurrency", 5)
	viper.SetDefault("fetch.max_depth", 10)
	viper.SetDefault("fetch.headers", map[string]string{})

	// Output
	viper.SetDefault("output.format", "table")

	// API
	viper.SetDefault("api.listen.host", "")
	viper.SetDefault("api.listen.port", 8013)
	viper.SetDefault("api.cors.origins", []string{})
	viper.SetDefault("api.body_limit", 16*1024*1024)
}

// ImporterConfig is the importer section of the configuration
type ImporterConfig struct {
	Quotas     importer.Quotas `mapstructure:"quotas"`
	Extensions struct {
		SOAP   bool     `mapstructure:"soap"`
		Policy []string `mapstructure:"policy" validate:"dive,oneof=transport_security reliable_session addressing"`
	} `mapstructure:"extensions"`
}

// FetchConfig controls how remote metadata is downloaded
type FetchConfig struct {
	Timeout     time.Duration     `mapstructure:"timeout" validate:"gt=0"`
	Concurrency int               `mapstructure:"concurrency" validate:"min=1,max=64"`
	MaxDepth    int               `mapstructure:"max_depth" validate:"min=0"`
	Headers     map[string]string `mapstructure:"headers"`
}

// Config is the whole configuration of the command line tool
type Config struct {
	Importer ImporterConfig `mapstructure:"importer"`
	Fetch    FetchConfig    `mapstructure:"fetch"`
	Output   struct {
		Format string `mapstructure:"format" validate:"oneof=pretty text json yaml table"`
	} `mapstructure:"output"`
}

// FromViper reads and validates the configuration loaded into viper
func FromViper() (Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := validate(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Options converts the configuration into importer options
func (c ImporterConfig) Options() importer.Options {
	opts := importer.DefaultOptions()
	opts.Quotas = c.Quotas
	if !c.Extensions.SOAP {
		opts.Extensions = []importer.Extension{}
	}
	if c.Extensions.Policy != nil {
		opts.PolicyExtensions = make([]importer.PolicyImportExtension, 0, len(c.Extensions.Policy))
		for _, name := range c.Extensions.Policy {
			switch name {
			case "transport_security":
				opts.PolicyExtensions = append(opts.PolicyExtensions, &importer.TransportSecurityPolicyImporter{})
			case "reliable_session":
				opts.PolicyExtensions = append(opts.PolicyExtensions, &importer.ReliableSessionPolicyImporter{})
			case "addressing":
				opts.PolicyExtensions = append(opts.PolicyExtensions, &importer.AddressingPolicyImporter{})
			}
		}
	}
	return opts
}

func validate(v any) error {
	err := validator.New().Struct(v)
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	fields := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, fmt.Sprintf("%s failed on %s", fe.Namespace(), fe.Tag()))
	}
	return errors.New(strings.Join(fields, ", "))
}
