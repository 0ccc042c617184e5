// Package config holds the process configuration read from a YAML file,
// AGRO_* environment variables and an optional .env file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ougirez/agrorating/internal/domain"
	"github.com/ougirez/agrorating/internal/pkg/constants"
	"github.com/ougirez/agrorating/internal/rating"
)

type ServerConfig struct {
	Addr         string   `mapstructure:"addr" validate:"required"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

type StoreConfig struct {
	MaxRetries uint64        `mapstructure:"max_retries"`
	RetryDelay time.Duration `mapstructure:"retry_delay" validate:"gte=0"`
}

// EngineConfig drives the projection pipeline. HorizonStartYear, when unset,
// is the current year plus HorizonYears.
type EngineConfig struct {
	ReportingCurrency string `mapstructure:"reporting_currency" validate:"required,len=3,alpha"`
	HorizonStartYear  int    `mapstructure:"horizon_start_year" validate:"gte=1900"`
	HorizonYears      int    `mapstructure:"horizon_years" validate:"gte=0"`
}

type BandConfig struct {
	Direction  string    `mapstructure:"direction" validate:"required,oneof=lower higher"`
	Thresholds []float64 `mapstructure:"thresholds" validate:"len=5"`
}

// RatingConfig is keyed by indicator name. Keys are matched case-insensitively
// since viper lower-cases map keys.
type RatingConfig struct {
	Weights map[string]float64    `mapstructure:"weights" validate:"dive,gte=0"`
	Bands   map[string]BandConfig `mapstructure:"bands" validate:"dive"`
}

type MarketConfig struct {
	URL        string `mapstructure:"url" validate:"omitempty,url"`
	MaxRetries uint64 `mapstructure:"max_retries"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Store    StoreConfig    `mapstructure:"store"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Rating   RatingConfig   `mapstructure:"rating"`
	Market   MarketConfig   `mapstructure:"market"`
	Log      LogConfig      `mapstructure:"log"`
}

// Validate checks field constraints and then the rating policy built from
// the weights and bands.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validator.Struct: %v: %w", err, constants.ErrInvalidConfiguration)
	}

	policy, err := c.RatingPolicy()
	if err != nil {
		return err
	}

	return policy.Validate()
}

// RatingPolicy converts the rating section into a scorer policy.
func (c *Config) RatingPolicy() (rating.Policy, error) {
	policy := rating.Policy{
		Weights: make(map[domain.Indicator]float64, len(c.Rating.Weights)),
		Bands:   make(map[domain.Indicator]rating.Bands, len(c.Rating.Bands)),
	}

	for name, w := range c.Rating.Weights {
		policy.Weights[domain.Indicator(strings.ToUpper(name))] = w
	}

	for name, b := range c.Rating.Bands {
		if len(b.Thresholds) != 5 {
			return rating.Policy{}, fmt.Errorf("rating.bands, indicator-%s: want 5 thresholds, got %d: %w",
				name, len(b.Thresholds), constants.ErrInvalidConfiguration)
		}

		bands := rating.Bands{Direction: rating.Direction(strings.ToLower(b.Direction))}
		copy(bands.Thresholds[:], b.Thresholds)
		policy.Bands[domain.Indicator(strings.ToUpper(name))] = bands
	}

	return policy, nil
}
