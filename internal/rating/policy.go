// Package rating scores an indicator set against a weighted band policy and
// maps the composite score to a letter rating.
package rating

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ougirez/agrorating/internal/domain"
	"github.com/ougirez/agrorating/internal/pkg/constants"
)

type Direction string

const (
	LowerIsBetter  Direction = "lower"
	HigherIsBetter Direction = "higher"
)

// Bands holds the five thresholds of one indicator. For LowerIsBetter they
// are ascending, for HigherIsBetter descending. The k-th threshold is the
// boundary of the k-th band, scored 100, 80, 60, 40 and 20.
type Bands struct {
	Direction  Direction  `mapstructure:"direction" json:"direction" yaml:"direction"`
	Thresholds [5]float64 `mapstructure:"thresholds" json:"thresholds" yaml:"thresholds"`
}

type Policy struct {
	Weights map[domain.Indicator]float64
	Bands   map[domain.Indicator]Bands
}

func DefaultPolicy() Policy {
	return Policy{
		Weights: map[domain.Indicator]float64{
			domain.IndicatorDebtEBITDA:       20,
			domain.IndicatorDebtRevenue:      20,
			domain.IndicatorLTV:              15,
			domain.IndicatorEBITDAMargin:     15,
			domain.IndicatorDebtEquity:       15,
			domain.IndicatorCurrentLiquidity: 10,
			domain.IndicatorNetDebtEBITDA:    5,
			domain.IndicatorNetDebtRevenue:   5,
		},
		Bands: map[domain.Indicator]Bands{
			domain.IndicatorDebtEBITDA:       {Direction: LowerIsBetter, Thresholds: [5]float64{1.5, 2.5, 3.5, 4.5, 5.5}},
			domain.IndicatorDebtRevenue:      {Direction: LowerIsBetter, Thresholds: [5]float64{0.3, 0.5, 0.7, 1.0, 1.5}},
			domain.IndicatorNetDebtEBITDA:    {Direction: LowerIsBetter, Thresholds: [5]float64{1, 2, 3, 4, 5}},
			domain.IndicatorNetDebtRevenue:   {Direction: LowerIsBetter, Thresholds: [5]float64{0.2, 0.4, 0.6, 0.8, 1.0}},
			domain.IndicatorLTV:              {Direction: LowerIsBetter, Thresholds: [5]float64{30, 40, 50, 60, 70}},
			domain.IndicatorDebtEquity:       {Direction: LowerIsBetter, Thresholds: [5]float64{0.3, 0.5, 0.8, 1.0, 1.5}},
			domain.IndicatorCurrentLiquidity: {Direction: HigherIsBetter, Thresholds: [5]float64{2.0, 1.5, 1.2, 1.0, 0.8}},
			domain.IndicatorEBITDAMargin:     {Direction: HigherIsBetter, Thresholds: [5]float64{30, 25, 20, 15, 10}},
		},
	}
}

// Validate rejects negative weights, a non-positive weight total, weighted
// indicators without bands and thresholds that are not strictly monotonic in
// their direction.
func (p Policy) Validate() error {
	var total float64
	for _, ind := range p.indicators() {
		w := p.Weights[ind]
		if w < 0 {
			return fmt.Errorf("rating.Validate, indicator-%s: negative weight %v: %w", ind, w, constants.ErrInvalidConfiguration)
		}
		total += w

		b, ok := p.Bands[ind]
		if !ok {
			return fmt.Errorf("rating.Validate, indicator-%s: no bands: %w", ind, constants.ErrInvalidConfiguration)
		}
		if err := b.validate(); err != nil {
			return fmt.Errorf("rating.Validate, indicator-%s: %v: %w", ind, err, constants.ErrInvalidConfiguration)
		}
	}

	if total <= 0 {
		return fmt.Errorf("rating.Validate: weights sum to %v: %w", total, constants.ErrInvalidConfiguration)
	}

	return nil
}

func (b Bands) validate() error {
	switch strings.ToLower(string(b.Direction)) {
	case string(LowerIsBetter):
		for i := 1; i < len(b.Thresholds); i++ {
			if b.Thresholds[i] <= b.Thresholds[i-1] {
				return fmt.Errorf("thresholds %v are not strictly ascending", b.Thresholds)
			}
		}
	case string(HigherIsBetter):
		for i := 1; i < len(b.Thresholds); i++ {
			if b.Thresholds[i] >= b.Thresholds[i-1] {
				return fmt.Errorf("thresholds %v are not strictly descending", b.Thresholds)
			}
		}
	default:
		return fmt.Errorf("unknown direction %q", b.Direction)
	}
	return nil
}

// indicators returns the weighted indicators in a stable order.
func (p Policy) indicators() []domain.Indicator {
	res := make([]domain.Indicator, 0, len(p.Weights))
	for ind := range p.Weights {
		res = append(res, ind)
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}
