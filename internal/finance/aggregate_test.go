package finance

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/ougirez/agrorating/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func harvestYear(start int) domain.HarvestYear {
	return domain.HarvestYear{
		ID:        uuid.New(),
		Label:     fmt.Sprintf("%d/%02d", start, (start+1)%100),
		StartYear: start,
		EndYear:   start + 1,
	}
}

type soyFixture struct {
	year    domain.HarvestYear
	culture uuid.UUID
	system  uuid.UUID
	input   AggregateInput
}

func newSoyFixture() soyFixture {
	y := harvestYear(2024)
	culture, system := uuid.New(), uuid.New()

	return soyFixture{
		year:    y,
		culture: culture,
		system:  system,
		input: AggregateInput{
			HarvestYears: []domain.HarvestYear{y},
			PlantedAreas: []domain.PlantedArea{{
				CultureID:    culture,
				SystemID:     system,
				CommodityKey: domain.CommoditySoybeanRainfed,
				Hectares:     domain.YearValues{y.ID: dec(100)},
			}},
			Productivities: []domain.Productivity{{
				CultureID: culture,
				SystemID:  system,
				Yields:    domain.YearValues{y.ID: dec(60)},
				Unit:      "sc/ha",
			}},
			Prices: []domain.CommodityPrice{{
				CommodityKey: domain.CommoditySoybeanRainfed,
				Currency:     "BRL",
				Prices:       domain.YearValues{y.ID: dec(150)},
			}},
			Costs: []domain.ProductionCost{{
				CultureID: &culture,
				SystemID:  &system,
				Basis:     domain.CostPerHectare,
				Amounts:   domain.YearValues{y.ID: dec(7000)},
			}},
		},
	}
}

func TestAggregate_SoybeanScenario(t *testing.T) {
	f := newSoyFixture()

	res := Aggregator{ReportingCurrency: "BRL"}.Aggregate(f.input)
	require.Len(t, res, 1)

	st := res[f.year.ID]
	assert.Equal(t, 900000.0, st.Revenue)
	assert.Equal(t, 700000.0, st.Cost)
	assert.Equal(t, 200000.0, st.EBITDA)
	assert.Equal(t, 100.0, st.PlantedHectares)
	assert.InDelta(t, 22.222, st.EBITDAMargin, 0.001)
	assert.Equal(t, map[domain.CommodityKey]float64{domain.CommoditySoybeanRainfed: 900000}, st.RevenueByCommodity)
}

func TestAggregate_MissingProductivityContributesZero(t *testing.T) {
	f := newSoyFixture()
	f.input.Productivities[0].SystemID = uuid.New()

	st := Aggregator{ReportingCurrency: "BRL"}.Aggregate(f.input)[f.year.ID]
	assert.Zero(t, st.Revenue)
	assert.Equal(t, 700000.0, st.Cost)
	assert.Equal(t, -700000.0, st.EBITDA)
	assert.Empty(t, st.RevenueByCommodity)
}

func TestAggregate_PriceFallbacks(t *testing.T) {
	t.Run("current price when year is missing", func(t *testing.T) {
		f := newSoyFixture()
		f.input.Prices[0].Prices = nil
		f.input.Prices[0].CurrentPrice = decimal.NewNullDecimal(dec(120))

		st := Aggregator{ReportingCurrency: "BRL"}.Aggregate(f.input)[f.year.ID]
		assert.Equal(t, 720000.0, st.Revenue)
	})

	t.Run("no price at all", func(t *testing.T) {
		f := newSoyFixture()
		f.input.Prices = nil

		st := Aggregator{ReportingCurrency: "BRL"}.Aggregate(f.input)[f.year.ID]
		assert.Zero(t, st.Revenue)
	})
}

func TestAggregate_ForeignPriceIsConverted(t *testing.T) {
	f := newSoyFixture()
	f.input.Prices[0].Currency = "USD"
	f.input.Prices[0].Prices = domain.YearValues{f.year.ID: dec(25)}
	f.input.ExchangeRates = []domain.ExchangeRate{{
		Currency:      "USD",
		QuoteCurrency: "BRL",
		Rates:         domain.YearValues{f.year.ID: dec(6)},
	}}

	st := Aggregator{ReportingCurrency: "BRL"}.Aggregate(f.input)[f.year.ID]
	assert.Equal(t, 900000.0, st.Revenue)
}

func TestAggregate_ForeignPriceWithoutRateContributesZero(t *testing.T) {
	f := newSoyFixture()
	f.input.Prices[0].Currency = "USD"

	st := Aggregator{ReportingCurrency: "BRL"}.Aggregate(f.input)[f.year.ID]
	assert.Zero(t, st.Revenue)
}

func TestAggregate_TotalCostsAndOtherExpenses(t *testing.T) {
	f := newSoyFixture()
	f.input.Costs = append(f.input.Costs, domain.ProductionCost{
		Basis:   domain.CostTotal,
		Amounts: domain.YearValues{f.year.ID: dec(50000)},
	})
	f.input.OtherExpenses = []domain.OtherExpense{
		{Category: "ADMIN", Amounts: domain.YearValues{f.year.ID: dec(30000)}},
		{Category: "TAX", Amounts: domain.YearValues{f.year.ID: dec(20000)}},
	}

	st := Aggregator{ReportingCurrency: "BRL"}.Aggregate(f.input)[f.year.ID]
	assert.Equal(t, 750000.0, st.Cost)
	assert.Equal(t, 50000.0, st.OtherExpenses)
	assert.Equal(t, st.Revenue-st.Cost-st.OtherExpenses, st.EBITDA)
}

func TestAggregate_PerHectareCostWildcard(t *testing.T) {
	f := newSoyFixture()
	f.input.Costs = []domain.ProductionCost{
		{Basis: domain.CostPerHectare, Amounts: domain.YearValues{f.year.ID: dec(100)}},
		{CultureID: ptr(uuid.New()), Basis: domain.CostPerHectare, Amounts: domain.YearValues{f.year.ID: dec(999)}},
	}

	st := Aggregator{ReportingCurrency: "BRL"}.Aggregate(f.input)[f.year.ID]
	assert.Equal(t, 10000.0, st.Cost)
}

func TestAggregate_EBITDAIdentity(t *testing.T) {
	years := []domain.HarvestYear{harvestYear(2023), harvestYear(2024), harvestYear(2025)}
	culture, system := uuid.New(), uuid.New()

	in := AggregateInput{HarvestYears: years}
	area := domain.PlantedArea{CultureID: culture, SystemID: system, CommodityKey: domain.CommodityCorn, Hectares: domain.YearValues{}}
	prod := domain.Productivity{CultureID: culture, SystemID: system, Yields: domain.YearValues{}}
	price := domain.CommodityPrice{CommodityKey: domain.CommodityCorn, Currency: "BRL", Prices: domain.YearValues{}}
	cost := domain.ProductionCost{Basis: domain.CostTotal, Amounts: domain.YearValues{}}
	other := domain.OtherExpense{Amounts: domain.YearValues{}}
	for i, y := range years {
		area.Hectares[y.ID] = dec(123.45 * float64(i+1))
		prod.Yields[y.ID] = dec(101.3)
		price.Prices[y.ID] = dec(57.91 + float64(i))
		cost.Amounts[y.ID] = dec(333333.33)
		other.Amounts[y.ID] = dec(12345.67)
	}
	in.PlantedAreas = []domain.PlantedArea{area}
	in.Productivities = []domain.Productivity{prod}
	in.Prices = []domain.CommodityPrice{price}
	in.Costs = []domain.ProductionCost{cost}
	in.OtherExpenses = []domain.OtherExpense{other}

	res := Aggregator{ReportingCurrency: "BRL"}.Aggregate(in)
	require.Len(t, res, 3)
	for _, st := range res {
		assert.InDelta(t, st.Revenue-st.Cost-st.OtherExpenses, st.EBITDA, 1e-6)
	}
}

func TestAggregate_HorizonExcludesLaterYears(t *testing.T) {
	f := newSoyFixture()
	late := harvestYear(2031)
	f.input.HarvestYears = append(f.input.HarvestYears, late)
	f.input.PlantedAreas[0].Hectares[late.ID] = dec(10)

	res := Aggregator{ReportingCurrency: "BRL", HorizonStartYear: 2029}.Aggregate(f.input)
	assert.Contains(t, res, f.year.ID)
	assert.NotContains(t, res, late.ID)

	res = Aggregator{ReportingCurrency: "BRL"}.Aggregate(f.input)
	assert.Contains(t, res, late.ID)
}

func TestAggregate_Deterministic(t *testing.T) {
	f := newSoyFixture()
	agg := Aggregator{ReportingCurrency: "BRL"}

	assert.Equal(t, agg.Aggregate(f.input), agg.Aggregate(f.input))
}

func TestOrderedStatements(t *testing.T) {
	y1, y2, y3 := harvestYear(2025), harvestYear(2023), harvestYear(2024)
	byYear := map[uuid.UUID]domain.FinancialStatement{
		y1.ID: {HarvestYearID: y1.ID, StartYear: 2025},
		y2.ID: {HarvestYearID: y2.ID, StartYear: 2023},
		y3.ID: {HarvestYearID: y3.ID, StartYear: 2024},
	}

	ordered := OrderedStatements([]domain.HarvestYear{y1, y2, y3}, byYear)
	require.Len(t, ordered, 3)
	assert.Equal(t, []int{2023, 2024, 2025}, []int{ordered[0].StartYear, ordered[1].StartYear, ordered[2].StartYear})
}
