// Package finance turns a fetched production and debt ledger into per harvest
// year statements, debt positions and indicators. Every function here is pure:
// same input, same output, no store access and no logging.
package finance

import (
	"github.com/google/uuid"
	"github.com/ougirez/agrorating/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type Aggregator struct {
	ReportingCurrency string
	// HorizonStartYear drops harvest years starting after it. Zero keeps all.
	HorizonStartYear int
}

type AggregateInput struct {
	HarvestYears   []domain.HarvestYear
	PlantedAreas   []domain.PlantedArea
	Productivities []domain.Productivity
	Prices         []domain.CommodityPrice
	ExchangeRates  []domain.ExchangeRate
	Costs          []domain.ProductionCost
	OtherExpenses  []domain.OtherExpense
}

type pairKey struct {
	culture uuid.UUID
	system  uuid.UUID
}

func (a Aggregator) InHorizon(year domain.HarvestYear) bool {
	return a.HorizonStartYear == 0 || year.StartYear <= a.HorizonStartYear
}

// HarvestYears returns the years inside the horizon in ascending order.
func (a Aggregator) HarvestYears(years []domain.HarvestYear) []domain.HarvestYear {
	sorted := domain.SortHarvestYears(years)
	res := make([]domain.HarvestYear, 0, len(sorted))
	for _, y := range sorted {
		if a.InHorizon(y) {
			res = append(res, y)
		}
	}
	return res
}

// Aggregate computes revenue, cost and EBITDA per harvest year. Combinations
// without a productivity, price or exchange rate contribute zero revenue.
func (a Aggregator) Aggregate(in AggregateInput) map[uuid.UUID]domain.FinancialStatement {
	fx := newFXTable(a.ReportingCurrency, in.HarvestYears, in.ExchangeRates)

	productivities := make(map[pairKey]domain.Productivity, len(in.Productivities))
	for _, p := range in.Productivities {
		key := pairKey{culture: p.CultureID, system: p.SystemID}
		if _, ok := productivities[key]; !ok {
			productivities[key] = p
		}
	}

	prices := make(map[domain.CommodityKey]domain.CommodityPrice, len(in.Prices))
	for _, p := range in.Prices {
		if _, ok := prices[p.CommodityKey]; !ok {
			prices[p.CommodityKey] = p
		}
	}

	var perHectare, totals []domain.ProductionCost
	for _, c := range in.Costs {
		if c.Basis == domain.CostPerHectare {
			perHectare = append(perHectare, c)
		} else {
			totals = append(totals, c)
		}
	}

	res := make(map[uuid.UUID]domain.FinancialStatement)
	for _, year := range a.HarvestYears(in.HarvestYears) {
		var (
			revenue     = decimal.Zero
			cost        = decimal.Zero
			other       = decimal.Zero
			hectares    = decimal.Zero
			byCommodity = make(map[domain.CommodityKey]decimal.Decimal)
		)

		for _, area := range in.PlantedAreas {
			ha := area.Hectares.Get(year.ID)
			if !ha.IsPositive() {
				continue
			}
			hectares = hectares.Add(ha)

			for _, c := range perHectare {
				if appliesTo(c, area) {
					cost = cost.Add(ha.Mul(c.Amounts.Get(year.ID)))
				}
			}

			productivity, ok := productivities[pairKey{culture: area.CultureID, system: area.SystemID}]
			if !ok {
				continue
			}

			line := ha.Mul(productivity.Yields.Get(year.ID)).Mul(unitPrice(prices, area.CommodityKey, year, fx))
			if line.IsZero() {
				continue
			}
			revenue = revenue.Add(line)
			byCommodity[area.CommodityKey] = byCommodity[area.CommodityKey].Add(line)
		}

		for _, c := range totals {
			cost = cost.Add(c.Amounts.Get(year.ID))
		}
		for _, e := range in.OtherExpenses {
			other = other.Add(e.Amounts.Get(year.ID))
		}

		ebitda := revenue.Sub(cost).Sub(other)

		revenueByCommodity := make(map[domain.CommodityKey]float64, len(byCommodity))
		for k, v := range byCommodity {
			revenueByCommodity[k] = v.InexactFloat64()
		}

		res[year.ID] = domain.FinancialStatement{
			HarvestYearID:      year.ID,
			HarvestYearLabel:   year.Label,
			StartYear:          year.StartYear,
			PlantedHectares:    hectares.InexactFloat64(),
			Revenue:            revenue.InexactFloat64(),
			Cost:               cost.InexactFloat64(),
			OtherExpenses:      other.InexactFloat64(),
			EBITDA:             ebitda.InexactFloat64(),
			EBITDAMargin:       percentOf(ebitda, revenue).InexactFloat64(),
			RevenueByCommodity: revenueByCommodity,
		}
	}

	return res
}

// appliesTo matches a per-hectare cost to an area; an unset culture or system
// on the cost matches any.
func appliesTo(c domain.ProductionCost, area domain.PlantedArea) bool {
	if c.CultureID != nil && *c.CultureID != area.CultureID {
		return false
	}
	if c.SystemID != nil && *c.SystemID != area.SystemID {
		return false
	}
	return true
}

// unitPrice resolves the price of one productivity unit in reporting currency.
func unitPrice(
	prices map[domain.CommodityKey]domain.CommodityPrice,
	key domain.CommodityKey,
	year domain.HarvestYear,
	fx fxTable,
) decimal.Decimal {
	price, ok := prices[key]
	if !ok {
		return decimal.Zero
	}

	value, ok := price.Prices.Lookup(year.ID)
	if !ok {
		if !price.CurrentPrice.Valid {
			return decimal.Zero
		}
		value = price.CurrentPrice.Decimal
	}

	rate, ok := fx.rate(price.Currency, year)
	if !ok {
		return decimal.Zero
	}

	return value.Mul(rate)
}

// percentOf returns part/whole in 0–100, or zero when whole is zero.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(whole)
}
