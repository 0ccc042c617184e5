package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/ougirez/agrorating/internal/pkg/constants"
	"github.com/spf13/viper"
)

// newViper registers every scalar key so that AGRO_* variables resolve during
// Unmarshal even when no file mentions them. "engine.reporting_currency" is
// read from AGRO_ENGINE_REPORTING_CURRENCY.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(constants.ViperServerAddrKey, DefaultServerAddr)
	v.SetDefault(constants.ViperServerAllowOriginsKey, []string{})
	v.SetDefault(constants.ViperDatabaseDSNKey, "")
	v.SetDefault(constants.ViperStoreMaxRetriesKey, DefaultStoreMaxRetries)
	v.SetDefault(constants.ViperStoreRetryDelayKey, DefaultStoreRetryDelay)
	v.SetDefault(constants.ViperReportingCurrencyKey, DefaultReportingCurrency)
	v.SetDefault(constants.ViperHorizonStartYearKey, 0)
	v.SetDefault(constants.ViperHorizonYearsKey, DefaultHorizonYears)
	v.SetDefault(constants.ViperMarketURLKey, "")
	v.SetDefault(constants.ViperMarketMaxRetriesKey, DefaultMarketMaxRetries)
	v.SetDefault(constants.ViperLogLevelKey, DefaultLogLevel)
	v.SetDefault(constants.ViperLogFormatKey, DefaultLogFormat)

	return v
}

// Load reads the YAML file at path, applies environment overrides and
// defaults, and validates the result.
func Load(path string) (*Config, error) {
	loadDotEnv()

	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper.ReadInConfig, path-%s: %w", path, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds the configuration from AGRO_* variables and defaults only.
func LoadFromEnv() (*Config, error) {
	loadDotEnv()
	return unmarshalAndFinalize(newViper())
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config.Validate: %w", err)
	}

	return cfg, nil
}

// loadDotEnv copies a local .env into the process environment. A missing file
// is fine, variables already set are kept.
func loadDotEnv() {
	_ = godotenv.Load()
}
