package finance

import "github.com/ougirez/agrorating/internal/domain"

// UnboundedLeverage stands in for a debt ratio whose denominator is negative.
// It sits past every configured threshold so the indicator scores worst.
const UnboundedLeverage = 999.0

// ComputeIndicators derives the leverage and liquidity ratios of one harvest
// year. Ratios with a zero denominator are 0. Debt against a negative EBITDA,
// equity or revenue is UnboundedLeverage. LTV and EBITDA margin are in
// percent, the rest are plain multiples.
func ComputeIndicators(st domain.FinancialStatement, pos domain.DebtPosition, balance BalanceInputs) domain.IndicatorSet {
	set := domain.IndicatorSet{
		domain.IndicatorDebtRevenue:    leverage(pos.TotalDebt, st.Revenue),
		domain.IndicatorDebtEBITDA:     leverage(pos.TotalDebt, st.EBITDA),
		domain.IndicatorNetDebtRevenue: leverage(pos.LiquidDebt, st.Revenue),
		domain.IndicatorNetDebtEBITDA:  leverage(pos.LiquidDebt, st.EBITDA),
		domain.IndicatorEBITDAMargin:   st.EBITDAMargin,
	}

	if balance.AssetValue != nil {
		set[domain.IndicatorLTV] = leverage(pos.TotalDebt, *balance.AssetValue) * 100
	}
	if balance.CurrentAssets != nil && balance.CurrentLiabilities != nil {
		set[domain.IndicatorCurrentLiquidity] = ratio(*balance.CurrentAssets, *balance.CurrentLiabilities)
	}
	if balance.Equity != nil {
		set[domain.IndicatorDebtEquity] = leverage(pos.TotalDebt, *balance.Equity)
	}

	return set
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// leverage is ratio for debt multiples. Outstanding debt against a loss or
// negative equity is UnboundedLeverage. Net cash (num <= 0) against a
// negative denominator is 0.
func leverage(num, den float64) float64 {
	if den < 0 {
		if num > 0 {
			return UnboundedLeverage
		}
		return 0
	}
	return ratio(num, den)
}
