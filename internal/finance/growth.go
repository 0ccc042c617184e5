package finance

import (
	"math"

	"github.com/google/uuid"
	"github.com/ougirez/agrorating/internal/domain"
)

// PercentChange returns the change from base to value in percent. A zero base
// yields 0.
func PercentChange(base, value float64) float64 {
	if base == 0 {
		return 0
	}
	return (value - base) / math.Abs(base) * 100
}

func Growth(prev, cur domain.FinancialStatement) domain.GrowthRates {
	return domain.GrowthRates{
		Revenue: PercentChange(prev.Revenue, cur.Revenue),
		Cost:    PercentChange(prev.Cost, cur.Cost),
		EBITDA:  PercentChange(prev.EBITDA, cur.EBITDA),
	}
}

// DebtReduction compares net debt with the previous harvest year. A positive
// amount means the debt went down.
func DebtReduction(prev, cur domain.DebtPosition) domain.DebtReduction {
	amount := prev.LiquidDebt - cur.LiquidDebt
	res := domain.DebtReduction{Amount: amount}
	if prev.LiquidDebt > 0 {
		res.Percent = amount / prev.LiquidDebt * 100
	}
	return res
}

// OrderedStatements lists statements by ascending harvest start year.
func OrderedStatements(years []domain.HarvestYear, byYear map[uuid.UUID]domain.FinancialStatement) []domain.FinancialStatement {
	res := make([]domain.FinancialStatement, 0, len(byYear))
	for _, y := range domain.SortHarvestYears(years) {
		if st, ok := byYear[y.ID]; ok {
			res = append(res, st)
		}
	}
	return res
}

// OrderedPositions lists debt positions by ascending harvest start year.
func OrderedPositions(years []domain.HarvestYear, byYear map[uuid.UUID]domain.DebtPosition) []domain.DebtPosition {
	res := make([]domain.DebtPosition, 0, len(byYear))
	for _, y := range domain.SortHarvestYears(years) {
		if pos, ok := byYear[y.ID]; ok {
			res = append(res, pos)
		}
	}
	return res
}

// Previous returns the harvest year right before id in start-year order.
func Previous(years []domain.HarvestYear, id uuid.UUID) (domain.HarvestYear, bool) {
	sorted := domain.SortHarvestYears(years)
	for i, y := range sorted {
		if y.ID == id {
			if i == 0 {
				return domain.HarvestYear{}, false
			}
			return sorted[i-1], true
		}
	}
	return domain.HarvestYear{}, false
}
