package finance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/ougirez/agrorating/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeIndicators(t *testing.T) {
	st := domain.FinancialStatement{Revenue: 1000000, EBITDA: 250000, EBITDAMargin: 25}
	pos := domain.DebtPosition{TotalDebt: 500000, LiquidDebt: 400000}

	set := ComputeIndicators(st, pos, BalanceInputs{
		AssetValue:         ptr(2000000.0),
		CurrentAssets:      ptr(900000.0),
		CurrentLiabilities: ptr(600000.0),
		Equity:             ptr(1000000.0),
	})

	assert.Equal(t, domain.IndicatorSet{
		domain.IndicatorDebtRevenue:      0.5,
		domain.IndicatorDebtEBITDA:       2,
		domain.IndicatorNetDebtRevenue:   0.4,
		domain.IndicatorNetDebtEBITDA:    1.6,
		domain.IndicatorEBITDAMargin:     25,
		domain.IndicatorLTV:              25,
		domain.IndicatorCurrentLiquidity: 1.5,
		domain.IndicatorDebtEquity:       0.5,
	}, set)
}

func TestComputeIndicators_ZeroDenominators(t *testing.T) {
	set := ComputeIndicators(
		domain.FinancialStatement{},
		domain.DebtPosition{TotalDebt: 100, LiquidDebt: 100},
		BalanceInputs{AssetValue: ptr(0.0), CurrentAssets: ptr(10.0), CurrentLiabilities: ptr(0.0)},
	)

	for ind, v := range set {
		assert.Zerof(t, v, "indicator %s", ind)
	}
}

func TestComputeIndicators_NegativeDenominators(t *testing.T) {
	tests := []struct {
		name   string
		st     domain.FinancialStatement
		pos    domain.DebtPosition
		equity float64
		want   domain.IndicatorSet
	}{
		{
			name:   "loss with debt",
			st:     domain.FinancialStatement{Revenue: 500000, EBITDA: -100000, EBITDAMargin: -20},
			pos:    domain.DebtPosition{TotalDebt: 1000000, LiquidDebt: 800000},
			equity: 2000000,
			want: domain.IndicatorSet{
				domain.IndicatorDebtRevenue:    2,
				domain.IndicatorDebtEBITDA:     UnboundedLeverage,
				domain.IndicatorNetDebtRevenue: 1.6,
				domain.IndicatorNetDebtEBITDA:  UnboundedLeverage,
				domain.IndicatorEBITDAMargin:   -20,
				domain.IndicatorDebtEquity:     0.5,
			},
		},
		{
			name:   "negative equity",
			st:     domain.FinancialStatement{Revenue: 1000000, EBITDA: 250000, EBITDAMargin: 25},
			pos:    domain.DebtPosition{TotalDebt: 500000, LiquidDebt: 400000},
			equity: -100000,
			want: domain.IndicatorSet{
				domain.IndicatorDebtRevenue:    0.5,
				domain.IndicatorDebtEBITDA:     2,
				domain.IndicatorNetDebtRevenue: 0.4,
				domain.IndicatorNetDebtEBITDA:  1.6,
				domain.IndicatorEBITDAMargin:   25,
				domain.IndicatorDebtEquity:     UnboundedLeverage,
			},
		},
		{
			name:   "loss with net cash",
			st:     domain.FinancialStatement{Revenue: 500000, EBITDA: -100000, EBITDAMargin: -20},
			pos:    domain.DebtPosition{TotalDebt: 200000, LiquidDebt: -50000},
			equity: 1000000,
			want: domain.IndicatorSet{
				domain.IndicatorDebtRevenue:    0.4,
				domain.IndicatorDebtEBITDA:     UnboundedLeverage,
				domain.IndicatorNetDebtRevenue: -0.1,
				domain.IndicatorNetDebtEBITDA:  0,
				domain.IndicatorEBITDAMargin:   -20,
				domain.IndicatorDebtEquity:     0.2,
			},
		},
		{
			name:   "loss without debt",
			st:     domain.FinancialStatement{Revenue: 500000, EBITDA: -100000, EBITDAMargin: -20},
			equity: -10,
			want: domain.IndicatorSet{
				domain.IndicatorDebtRevenue:    0,
				domain.IndicatorDebtEBITDA:     0,
				domain.IndicatorNetDebtRevenue: 0,
				domain.IndicatorNetDebtEBITDA:  0,
				domain.IndicatorEBITDAMargin:   -20,
				domain.IndicatorDebtEquity:     0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := ComputeIndicators(tt.st, tt.pos, BalanceInputs{Equity: ptr(tt.equity)})
			assert.Equal(t, tt.want, set)
		})
	}
}

func TestComputeIndicators_MissingBalanceInputsAreAbsent(t *testing.T) {
	set := ComputeIndicators(domain.FinancialStatement{Revenue: 10}, domain.DebtPosition{TotalDebt: 5}, BalanceInputs{})

	for _, ind := range []domain.Indicator{domain.IndicatorLTV, domain.IndicatorCurrentLiquidity, domain.IndicatorDebtEquity} {
		_, ok := set.Lookup(ind)
		assert.Falsef(t, ok, "indicator %s", ind)
	}
	v, ok := set.Lookup(domain.IndicatorDebtRevenue)
	require.True(t, ok)
	assert.Equal(t, 0.5, v)
}

func TestBalanceFor(t *testing.T) {
	y := harvestYear(2024)
	other := uuid.New()

	properties := []domain.Property{
		{Name: "Fazenda A", CurrentValue: decimal.NewNullDecimal(dec(1500000))},
		{Name: "Fazenda B", CurrentValue: decimal.NewNullDecimal(dec(500000))},
		{Name: "Fazenda C"},
	}
	items := []domain.BalanceItem{
		{Kind: domain.BalanceAsset, Category: "CASH", Liquid: true, Current: true, Amounts: domain.YearValues{y.ID: dec(100000)}},
		{Kind: domain.BalanceAsset, Category: "INVENTORY", Liquid: true, Current: true, Amounts: domain.YearValues{y.ID: dec(200000), other: dec(1)}},
		{Kind: domain.BalanceAsset, Category: "MACHINERY", Amounts: domain.YearValues{y.ID: dec(700000)}},
		{Kind: domain.BalanceLiability, Category: "SUPPLIERS", Current: true, Amounts: domain.YearValues{y.ID: dec(50000)}},
	}

	liquid := LiquidAssets(items)
	assert.Equal(t, "300000", liquid.Get(y.ID).String())
	assert.Equal(t, "1", liquid.Get(other).String())

	pos := domain.DebtPosition{TotalDebt: 250000, LiquidAssets: 300000, LiquidAssetsAvailable: true}
	balance := BalanceFor(y.ID, properties, items, pos)

	require.NotNil(t, balance.AssetValue)
	assert.Equal(t, 2000000.0, *balance.AssetValue)
	require.NotNil(t, balance.CurrentAssets)
	assert.Equal(t, 300000.0, *balance.CurrentAssets)
	require.NotNil(t, balance.CurrentLiabilities)
	assert.Equal(t, 300000.0, *balance.CurrentLiabilities)
	require.NotNil(t, balance.Equity)
	assert.Equal(t, 2050000.0, *balance.Equity)
}

func TestBalanceFor_NoSources(t *testing.T) {
	balance := BalanceFor(uuid.New(), nil, nil, domain.DebtPosition{})

	assert.Nil(t, balance.AssetValue)
	assert.Nil(t, balance.CurrentAssets)
	assert.Nil(t, balance.CurrentLiabilities)
	assert.Nil(t, balance.Equity)
	assert.Nil(t, LiquidAssets(nil))
}

func TestGrowth(t *testing.T) {
	prev := domain.FinancialStatement{Revenue: 1000, Cost: 0, EBITDA: -200}
	cur := domain.FinancialStatement{Revenue: 1200, Cost: 300, EBITDA: 100}

	g := Growth(prev, cur)
	assert.InDelta(t, 20, g.Revenue, 1e-9)
	assert.Zero(t, g.Cost)
	assert.InDelta(t, 150, g.EBITDA, 1e-9)
}

func TestDebtReduction(t *testing.T) {
	r := DebtReduction(domain.DebtPosition{LiquidDebt: 1000}, domain.DebtPosition{LiquidDebt: 800})
	assert.Equal(t, 200.0, r.Amount)
	assert.InDelta(t, 20, r.Percent, 1e-9)

	r = DebtReduction(domain.DebtPosition{}, domain.DebtPosition{LiquidDebt: 800})
	assert.Equal(t, -800.0, r.Amount)
	assert.Zero(t, r.Percent)
}

func TestPrevious(t *testing.T) {
	y1, y2 := harvestYear(2023), harvestYear(2024)

	prev, ok := Previous([]domain.HarvestYear{y2, y1}, y2.ID)
	require.True(t, ok)
	assert.Equal(t, y1.ID, prev.ID)

	_, ok = Previous([]domain.HarvestYear{y2, y1}, y1.ID)
	assert.False(t, ok)
}
