package rating

import (
	"testing"

	"github.com/ougirez/agrorating/internal/domain"
	"github.com/ougirez/agrorating/internal/finance"
	"github.com/ougirez/agrorating/internal/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultScorer(t *testing.T) *Scorer {
	t.Helper()
	s, err := NewScorer(DefaultPolicy())
	require.NoError(t, err)
	return s
}

func subScore(t *testing.T, res domain.RatingResult, ind domain.Indicator) domain.SubScore {
	t.Helper()
	for _, sub := range res.SubScores {
		if sub.Indicator == ind {
			return sub
		}
	}
	t.Fatalf("no sub-score for %s", ind)
	return domain.SubScore{}
}

func TestScore_DebtEBITDABands(t *testing.T) {
	s := newDefaultScorer(t)

	tests := []struct {
		value float64
		score float64
		level string
	}{
		{value: 0.5, score: 100, level: "EXCELLENT"},
		{value: 1.5, score: 100, level: "EXCELLENT"},
		{value: 1.51, score: 80, level: "GOOD"},
		{value: 3.5, score: 60, level: "FAIR"},
		{value: 4.0, score: 40, level: "WEAK"},
		{value: 5.5, score: 20, level: "POOR"},
		{value: 6.0, score: 20, level: "CRITICAL"},
	}

	for _, tt := range tests {
		res, err := s.Score(domain.IndicatorSet{domain.IndicatorDebtEBITDA: tt.value})
		require.NoError(t, err)

		sub := subScore(t, res, domain.IndicatorDebtEBITDA)
		assert.Equalf(t, tt.score, sub.Score, "value %v", tt.value)
		assert.Equalf(t, tt.level, sub.Level, "value %v", tt.value)
		assert.Equal(t, tt.score, res.CompositeScore)
	}
}

func TestScore_NegativeDenominatorsScoreWorst(t *testing.T) {
	s := newDefaultScorer(t)

	tests := []struct {
		name      string
		ebitda    float64
		equity    float64
		indicator domain.Indicator
		score     float64
		level     string
	}{
		{name: "loss", ebitda: -100000, equity: 2000000, indicator: domain.IndicatorDebtEBITDA, score: 20, level: "CRITICAL"},
		{name: "loss net debt", ebitda: -100000, equity: 2000000, indicator: domain.IndicatorNetDebtEBITDA, score: 20, level: "CRITICAL"},
		{name: "thin margin", ebitda: 10000, equity: 2000000, indicator: domain.IndicatorDebtEBITDA, score: 20, level: "CRITICAL"},
		{name: "healthy", ebitda: 800000, equity: 2000000, indicator: domain.IndicatorDebtEBITDA, score: 100, level: "EXCELLENT"},
		{name: "negative equity", ebitda: 800000, equity: -100000, indicator: domain.IndicatorDebtEquity, score: 20, level: "CRITICAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := finance.ComputeIndicators(
				domain.FinancialStatement{Revenue: 2000000, EBITDA: tt.ebitda},
				domain.DebtPosition{TotalDebt: 1000000, LiquidDebt: 900000},
				finance.BalanceInputs{Equity: &tt.equity},
			)

			res, err := s.Score(set)
			require.NoError(t, err)

			sub := subScore(t, res, tt.indicator)
			assert.Equal(t, tt.score, sub.Score)
			assert.Equal(t, tt.level, sub.Level)
		})
	}
}

func TestScore_HigherIsBetter(t *testing.T) {
	s := newDefaultScorer(t)

	res, err := s.Score(domain.IndicatorSet{domain.IndicatorCurrentLiquidity: 2.5})
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.CompositeScore)

	res, err = s.Score(domain.IndicatorSet{domain.IndicatorCurrentLiquidity: 1.1})
	require.NoError(t, err)
	assert.Equal(t, 40.0, res.CompositeScore)

	res, err = s.Score(domain.IndicatorSet{domain.IndicatorCurrentLiquidity: 0.1})
	require.NoError(t, err)
	assert.Equal(t, 20.0, res.CompositeScore)
	assert.Equal(t, "CRITICAL", res.SubScores[0].Level)
}

func TestScore_MissingIndicatorsAreExcluded(t *testing.T) {
	s := newDefaultScorer(t)

	withTwo, err := s.Score(domain.IndicatorSet{
		domain.IndicatorDebtEBITDA:  2.0,
		domain.IndicatorDebtRevenue: 0.9,
	})
	require.NoError(t, err)

	withNull, err := s.Score(domain.IndicatorSet{
		domain.IndicatorDebtEBITDA:  2.0,
		domain.IndicatorDebtRevenue: 0.9,
		"UNKNOWN_RATIO":             123,
	})
	require.NoError(t, err)

	assert.Equal(t, withTwo.CompositeScore, withNull.CompositeScore)
	assert.Equal(t, 60.0, withTwo.CompositeScore)
	assert.Contains(t, withTwo.Skipped, domain.IndicatorLTV)
	assert.NotContains(t, withTwo.Skipped, domain.IndicatorDebtEBITDA)
}

func TestScore_Monotonic(t *testing.T) {
	s := newDefaultScorer(t)

	base := domain.IndicatorSet{
		domain.IndicatorDebtEBITDA:       3,
		domain.IndicatorDebtRevenue:      0.6,
		domain.IndicatorNetDebtEBITDA:    2.5,
		domain.IndicatorNetDebtRevenue:   0.5,
		domain.IndicatorLTV:              45,
		domain.IndicatorDebtEquity:       0.7,
		domain.IndicatorCurrentLiquidity: 1.3,
		domain.IndicatorEBITDAMargin:     22,
	}

	for ind, b := range s.Policy().Bands {
		prev := -1.0
		if b.Direction == LowerIsBetter {
			prev = 101
		}

		for step := 0; step <= 40; step++ {
			set := domain.IndicatorSet{}
			for k, v := range base {
				set[k] = v
			}
			set[ind] = float64(step) * (b.Thresholds[4] + b.Thresholds[0]) / 20

			res, err := s.Score(set)
			require.NoError(t, err)

			if b.Direction == LowerIsBetter {
				assert.LessOrEqualf(t, res.CompositeScore, prev, "%s at %v", ind, set[ind])
			} else {
				assert.GreaterOrEqualf(t, res.CompositeScore, prev, "%s at %v", ind, set[ind])
			}
			prev = res.CompositeScore
		}
	}
}

func TestScore_Composite(t *testing.T) {
	s := newDefaultScorer(t)

	res, err := s.Score(domain.IndicatorSet{
		domain.IndicatorDebtEBITDA:       1.0,  // 100 x 20
		domain.IndicatorDebtRevenue:      0.6,  // 60 x 20
		domain.IndicatorLTV:              35,   // 80 x 15
		domain.IndicatorEBITDAMargin:     12,   // 20 x 15
		domain.IndicatorCurrentLiquidity: 1.25, // 60 x 10
	})
	require.NoError(t, err)

	assert.InDelta(t, (2000+1200+1200+300+600)/80.0, res.CompositeScore, 1e-9)
	assert.Equal(t, "BBB", res.Letter)
	assert.Equal(t, domain.RiskGood, res.RiskTier)
	assert.NotEmpty(t, res.Description)
	assert.Len(t, res.SubScores, 5)
	assert.ElementsMatch(t, []domain.Indicator{
		domain.IndicatorDebtEquity,
		domain.IndicatorNetDebtEBITDA,
		domain.IndicatorNetDebtRevenue,
	}, res.Skipped)
}

func TestScore_NothingToScore(t *testing.T) {
	s := newDefaultScorer(t)

	_, err := s.Score(domain.IndicatorSet{})
	assert.ErrorIs(t, err, constants.ErrInsufficientData)
}

func TestNewScorer_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Policy)
	}{
		{
			name: "zero weights",
			mutate: func(p *Policy) {
				for ind := range p.Weights {
					p.Weights[ind] = 0
				}
			},
		},
		{
			name:   "negative weight",
			mutate: func(p *Policy) { p.Weights[domain.IndicatorLTV] = -1 },
		},
		{
			name: "ascending thresholds for higher is better",
			mutate: func(p *Policy) {
				p.Bands[domain.IndicatorEBITDAMargin] = Bands{Direction: HigherIsBetter, Thresholds: [5]float64{10, 15, 20, 25, 30}}
			},
		},
		{
			name: "repeated threshold",
			mutate: func(p *Policy) {
				p.Bands[domain.IndicatorLTV] = Bands{Direction: LowerIsBetter, Thresholds: [5]float64{30, 40, 40, 60, 70}}
			},
		},
		{
			name:   "missing bands",
			mutate: func(p *Policy) { delete(p.Bands, domain.IndicatorDebtEquity) },
		},
		{
			name: "unknown direction",
			mutate: func(p *Policy) {
				p.Bands[domain.IndicatorLTV] = Bands{Direction: "sideways", Thresholds: [5]float64{1, 2, 3, 4, 5}}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPolicy()
			tt.mutate(&p)

			_, err := NewScorer(p)
			assert.ErrorIs(t, err, constants.ErrInvalidConfiguration)
		})
	}
}

func TestLadder(t *testing.T) {
	tests := []struct {
		score  float64
		letter string
		tier   domain.RiskTier
	}{
		{score: 100, letter: "AAA", tier: domain.RiskExcellent},
		{score: 90, letter: "AAA", tier: domain.RiskExcellent},
		{score: 89.9, letter: "AA", tier: domain.RiskExcellent},
		{score: 80, letter: "AA", tier: domain.RiskExcellent},
		{score: 75, letter: "A", tier: domain.RiskGood},
		{score: 60, letter: "BBB", tier: domain.RiskGood},
		{score: 55, letter: "BB", tier: domain.RiskWarning},
		{score: 40, letter: "B", tier: domain.RiskWarning},
		{score: 39.9, letter: "CCC", tier: domain.RiskDanger},
		{score: 20, letter: "CC", tier: domain.RiskDanger},
		{score: 10, letter: "C", tier: domain.RiskDanger},
		{score: 9.99, letter: "D", tier: domain.RiskDanger},
		{score: 0, letter: "D", tier: domain.RiskDanger},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.letter, Letter(tt.score), "score %v", tt.score)
		assert.Equalf(t, tt.tier, Tier(tt.score), "score %v", tt.score)
		assert.NotEmpty(t, Description(tt.score))
	}
}
