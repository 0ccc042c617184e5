package finance

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/ougirez/agrorating/internal/domain"
	"github.com/shopspring/decimal"
)

const institutionNotInformed = "NOT INFORMED"

type Consolidator struct {
	ReportingCurrency string
	HorizonStartYear  int
}

type ConsolidateInput struct {
	HarvestYears  []domain.HarvestYear
	Instruments   []domain.DebtInstrument
	ExchangeRates []domain.ExchangeRate
	// LiquidAssets is nil when no source supplies them; liquid debt then
	// equals total debt.
	LiquidAssets domain.YearValues
}

// Consolidate builds the debt position of every harvest year in the horizon.
// Instruments not tagged BANK are grouped as other liabilities.
func (c Consolidator) Consolidate(in ConsolidateInput) map[uuid.UUID]domain.DebtPosition {
	fx := newFXTable(c.ReportingCurrency, in.HarvestYears, in.ExchangeRates)
	horizon := Aggregator{HorizonStartYear: c.HorizonStartYear}

	res := make(map[uuid.UUID]domain.DebtPosition)
	for _, year := range horizon.HarvestYears(in.HarvestYears) {
		res[year.ID] = c.position(year, in, fx)
	}

	return res
}

func (c Consolidator) position(year domain.HarvestYear, in ConsolidateInput, fx fxTable) domain.DebtPosition {
	var (
		total      = decimal.Zero
		rateNum    = decimal.Zero
		rateDen    = decimal.Zero
		byCurrency = make(map[string]decimal.Decimal)
		byCategory = make(map[domain.DebtCategory]decimal.Decimal)
		byModality = make(map[domain.DebtModality]decimal.Decimal)
		banks      = make(map[string]decimal.Decimal)
		missing    = make(map[string]struct{})
	)

	for _, inst := range in.Instruments {
		payment, ok := inst.Payments.Lookup(year.ID)
		if !ok {
			continue
		}

		currency := normalizeCurrency(inst.Currency, fx.reporting)

		rate, ok := fx.rate(currency, year)
		if !ok {
			missing[currency] = struct{}{}
			rate = decimal.Zero
		}
		converted := payment.Mul(rate)

		total = total.Add(converted)

		byCurrency[currency] = byCurrency[currency].Add(converted)

		category := domain.DebtCategoryOtherLiabilities
		if inst.Category == domain.DebtCategoryBank {
			category = domain.DebtCategoryBank
		}
		byCategory[category] = byCategory[category].Add(converted)

		if inst.Modality != "" {
			byModality[inst.Modality] = byModality[inst.Modality].Add(converted)
		}

		if inst.RealInterestRate.IsPositive() {
			rateNum = rateNum.Add(inst.RealInterestRate.Mul(converted))
			rateDen = rateDen.Add(converted)
		}

		if converted.IsPositive() {
			name := NormalizeInstitution(inst.Institution)
			banks[name] = banks[name].Add(converted)
		}
	}

	pos := domain.DebtPosition{
		HarvestYearID:    year.ID,
		HarvestYearLabel: year.Label,
		StartYear:        year.StartYear,
		TotalDebt:        total.InexactFloat64(),
		LiquidDebt:       total.InexactFloat64(),
		ByCurrency:       toFloats(byCurrency),
		ByCategory:       toFloats(byCategory),
		ByModality:       toFloats(byModality),
		BankRanking:      rankBanks(banks),
	}

	for currency := range missing {
		pos.UnconvertedCurrencies = append(pos.UnconvertedCurrencies, currency)
	}
	sort.Strings(pos.UnconvertedCurrencies)

	if !rateDen.IsZero() {
		pos.WeightedRate = rateNum.Div(rateDen).InexactFloat64()
	}

	if in.LiquidAssets != nil {
		if liquid, ok := in.LiquidAssets.Lookup(year.ID); ok {
			pos.LiquidAssets = liquid.InexactFloat64()
			pos.LiquidAssetsAvailable = true
			pos.LiquidDebt = total.Sub(liquid).InexactFloat64()
		}
	}

	return pos
}

// NormalizeInstitution folds spelling variants of the same institution:
// whitespace is collapsed, letters upper-cased and a leading "BANK " dropped.
func NormalizeInstitution(name string) string {
	n := strings.ToUpper(strings.Join(strings.Fields(name), " "))
	n = strings.TrimPrefix(n, "BANK ")
	if n == "" {
		return institutionNotInformed
	}
	return n
}

func rankBanks(banks map[string]decimal.Decimal) []domain.BankShare {
	names := make([]string, 0, len(banks))
	sum := decimal.Zero
	for name, amount := range banks {
		names = append(names, name)
		sum = sum.Add(amount)
	}

	sort.Slice(names, func(i, j int) bool {
		if cmp := banks[names[i]].Cmp(banks[names[j]]); cmp != 0 {
			return cmp > 0
		}
		return names[i] < names[j]
	})

	ranking := make([]domain.BankShare, 0, len(names)+1)
	for i, name := range names {
		ranking = append(ranking, domain.BankShare{
			Rank:        i + 1,
			Institution: name,
			Amount:      banks[name].InexactFloat64(),
			Percent:     percentOf(banks[name], sum).InexactFloat64(),
		})
	}

	totalRow := domain.BankShare{
		Institution: domain.BankRankingTotal,
		Amount:      sum.InexactFloat64(),
	}
	if sum.IsPositive() {
		totalRow.Percent = 100
	}

	return append(ranking, totalRow)
}

func toFloats[K comparable](m map[K]decimal.Decimal) map[K]float64 {
	res := make(map[K]float64, len(m))
	for k, v := range m {
		res[k] = v.InexactFloat64()
	}
	return res
}
