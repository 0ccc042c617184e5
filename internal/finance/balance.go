package finance

import (
	"github.com/google/uuid"
	"github.com/ougirez/agrorating/internal/domain"
	"github.com/shopspring/decimal"
)

// BalanceInputs carries the figures the ledger does not produce itself. A nil
// field means the source did not supply it and the dependent indicator is
// left out.
type BalanceInputs struct {
	AssetValue         *float64
	CurrentAssets      *float64
	CurrentLiabilities *float64
	Equity             *float64
}

// LiquidAssets sums the liquid asset lines per harvest year. It returns nil
// when there are no liquid asset lines at all.
func LiquidAssets(items []domain.BalanceItem) domain.YearValues {
	var res domain.YearValues
	for _, item := range items {
		if item.Kind != domain.BalanceAsset || !item.Liquid {
			continue
		}
		if res == nil {
			res = make(domain.YearValues)
		}
		for id, v := range item.Amounts {
			res[id] = res[id].Add(v)
		}
	}
	return res
}

// BalanceFor derives the balance inputs of one harvest year. Asset value is
// the sum of the current property values. Current liabilities include the
// debt falling due in the year.
func BalanceFor(
	yearID uuid.UUID,
	properties []domain.Property,
	items []domain.BalanceItem,
	pos domain.DebtPosition,
) BalanceInputs {
	var res BalanceInputs

	assets, hasAssets := decimal.Zero, false
	for _, p := range properties {
		if p.CurrentValue.Valid {
			assets = assets.Add(p.CurrentValue.Decimal)
			hasAssets = true
		}
	}
	if hasAssets {
		res.AssetValue = ptr(assets.InexactFloat64())
	}

	currentAssets, hasCurrentAssets := decimal.Zero, false
	currentLiabilities, hasCurrentLiabilities := decimal.Zero, false
	for _, item := range items {
		if !item.Current {
			continue
		}
		v, ok := item.Amounts.Lookup(yearID)
		if !ok {
			continue
		}
		switch item.Kind {
		case domain.BalanceAsset:
			currentAssets = currentAssets.Add(v)
			hasCurrentAssets = true
		case domain.BalanceLiability:
			currentLiabilities = currentLiabilities.Add(v)
			hasCurrentLiabilities = true
		}
	}

	if hasCurrentAssets {
		res.CurrentAssets = ptr(currentAssets.InexactFloat64())
	}
	if hasCurrentLiabilities || pos.TotalDebt > 0 {
		res.CurrentLiabilities = ptr(currentLiabilities.InexactFloat64() + pos.TotalDebt)
	}

	if hasAssets {
		equity := assets.InexactFloat64() - pos.TotalDebt
		if pos.LiquidAssetsAvailable {
			equity += pos.LiquidAssets
		}
		res.Equity = ptr(equity)
	}

	return res
}

func ptr[T any](v T) *T {
	return &v
}
