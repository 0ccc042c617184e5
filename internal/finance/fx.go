package finance

import (
	"strings"

	"github.com/ougirez/agrorating/internal/domain"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// fxTable converts foreign amounts into the reporting currency.
type fxTable struct {
	reporting string
	years     []domain.HarvestYear
	rates     map[string]domain.ExchangeRate
}

func newFXTable(reporting string, years []domain.HarvestYear, rates []domain.ExchangeRate) fxTable {
	t := fxTable{
		reporting: normalizeCurrency(reporting, ""),
		years:     domain.SortHarvestYears(years),
		rates:     make(map[string]domain.ExchangeRate, len(rates)),
	}
	for _, r := range rates {
		if normalizeCurrency(r.QuoteCurrency, t.reporting) != t.reporting {
			continue
		}
		cur := normalizeCurrency(r.Currency, "")
		if _, ok := t.rates[cur]; !ok {
			t.rates[cur] = r
		}
	}
	return t
}

func normalizeCurrency(code, fallback string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return fallback
	}
	return code
}

func (t fxTable) isReporting(currency string) bool {
	return normalizeCurrency(currency, t.reporting) == t.reporting
}

// rate returns the multiplier from currency into the reporting currency for
// the given year. A missing year falls back to the nearest earlier year with
// a rate, then to the current rate, then to the nearest later year.
func (t fxTable) rate(currency string, year domain.HarvestYear) (decimal.Decimal, bool) {
	if t.isReporting(currency) {
		return one, true
	}

	r, ok := t.rates[normalizeCurrency(currency, "")]
	if !ok {
		return decimal.Zero, false
	}

	if v, ok := r.Rates.Lookup(year.ID); ok && v.IsPositive() {
		return v, true
	}

	var later []domain.HarvestYear
	for i := len(t.years) - 1; i >= 0; i-- {
		y := t.years[i]
		if y.StartYear > year.StartYear {
			later = append(later, y)
			continue
		}
		if v, ok := r.Rates.Lookup(y.ID); ok && v.IsPositive() {
			return v, true
		}
	}

	if r.CurrentRate.Valid && r.CurrentRate.Decimal.IsPositive() {
		return r.CurrentRate.Decimal, true
	}

	for i := len(later) - 1; i >= 0; i-- {
		if v, ok := r.Rates.Lookup(later[i].ID); ok && v.IsPositive() {
			return v, true
		}
	}

	return decimal.Zero, false
}
