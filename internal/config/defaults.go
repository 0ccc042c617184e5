package config

import (
	"strings"
	"time"

	"github.com/ougirez/agrorating/internal/rating"
)

const (
	DefaultServerAddr        = ":8080"
	DefaultStoreMaxRetries   = 3
	DefaultStoreRetryDelay   = 200 * time.Millisecond
	DefaultReportingCurrency = "BRL"
	DefaultHorizonYears      = 5
	DefaultMarketMaxRetries  = 3
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "json"
)

// ApplyDefaults fills zero values. Explicit settings always win. Bands missing
// for an indicator are taken from the default policy, so a file may override
// a single indicator.
func ApplyDefaults(cfg *Config) {
	ApplyDefaultsAt(cfg, time.Now())
}

func ApplyDefaultsAt(cfg *Config, now time.Time) {
	if cfg == nil {
		return
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultServerAddr
	}

	if cfg.Store.RetryDelay == 0 {
		cfg.Store.RetryDelay = DefaultStoreRetryDelay
	}

	cfg.Engine.ReportingCurrency = strings.ToUpper(strings.TrimSpace(cfg.Engine.ReportingCurrency))
	if cfg.Engine.ReportingCurrency == "" {
		cfg.Engine.ReportingCurrency = DefaultReportingCurrency
	}
	if cfg.Engine.HorizonYears == 0 {
		cfg.Engine.HorizonYears = DefaultHorizonYears
	}
	if cfg.Engine.HorizonStartYear == 0 {
		cfg.Engine.HorizonStartYear = now.Year() + cfg.Engine.HorizonYears
	}

	def := rating.DefaultPolicy()
	if len(cfg.Rating.Weights) == 0 {
		cfg.Rating.Weights = make(map[string]float64, len(def.Weights))
		for ind, w := range def.Weights {
			cfg.Rating.Weights[string(ind)] = w
		}
	}
	if cfg.Rating.Bands == nil {
		cfg.Rating.Bands = make(map[string]BandConfig, len(def.Bands))
	}
	for ind, b := range def.Bands {
		if hasKey(cfg.Rating.Bands, string(ind)) {
			continue
		}
		cfg.Rating.Bands[string(ind)] = BandConfig{
			Direction:  string(b.Direction),
			Thresholds: append([]float64(nil), b.Thresholds[:]...),
		}
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}

func hasKey[T any](m map[string]T, key string) bool {
	for k := range m {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}
