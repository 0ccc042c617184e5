package domain

import "github.com/google/uuid"

type FinancialStatement struct {
	HarvestYearID      uuid.UUID                `json:"harvest_year_id"`
	HarvestYearLabel   string                   `json:"harvest_year_label"`
	StartYear          int                      `json:"start_year"`
	PlantedHectares    float64                  `json:"planted_hectares"`
	Revenue            float64                  `json:"revenue"`
	Cost               float64                  `json:"cost"`
	OtherExpenses      float64                  `json:"other_expenses"`
	EBITDA             float64                  `json:"ebitda"`
	EBITDAMargin       float64                  `json:"ebitda_margin"`
	RevenueByCommodity map[CommodityKey]float64 `json:"revenue_by_commodity"`
}

type GrowthRates struct {
	Revenue float64 `json:"revenue"`
	Cost    float64 `json:"cost"`
	EBITDA  float64 `json:"ebitda"`
}

type BankShare struct {
	Rank        int     `json:"rank"`
	Institution string  `json:"institution"`
	Amount      float64 `json:"amount"`
	Percent     float64 `json:"percent"`
}

// BankRankingTotal names the synthetic row closing every bank ranking.
const BankRankingTotal = "TOTAL"

type DebtPosition struct {
	HarvestYearID         uuid.UUID                `json:"harvest_year_id"`
	HarvestYearLabel      string                   `json:"harvest_year_label"`
	StartYear             int                      `json:"start_year"`
	TotalDebt             float64                  `json:"total_debt"`
	LiquidAssets          float64                  `json:"liquid_assets"`
	LiquidAssetsAvailable bool                     `json:"liquid_assets_available"`
	LiquidDebt            float64                  `json:"liquid_debt"`
	ByCurrency            map[string]float64       `json:"by_currency"`
	ByCategory            map[DebtCategory]float64 `json:"by_category"`
	ByModality            map[DebtModality]float64 `json:"by_modality"`
	WeightedRate          float64                  `json:"weighted_rate"`
	BankRanking           []BankShare              `json:"bank_ranking"`
	// UnconvertedCurrencies lists currencies with no exchange rate; their
	// payments count as zero.
	UnconvertedCurrencies []string                 `json:"unconverted_currencies,omitempty"`
}

type DebtReduction struct {
	Amount  float64 `json:"amount"`
	Percent float64 `json:"percent"`
}

type Indicator string

const (
	IndicatorDebtRevenue      Indicator = "DEBT_REVENUE"
	IndicatorDebtEBITDA       Indicator = "DEBT_EBITDA"
	IndicatorNetDebtRevenue   Indicator = "NET_DEBT_REVENUE"
	IndicatorNetDebtEBITDA    Indicator = "NET_DEBT_EBITDA"
	IndicatorLTV              Indicator = "LTV"
	IndicatorCurrentLiquidity Indicator = "CURRENT_LIQUIDITY"
	IndicatorEBITDAMargin     Indicator = "EBITDA_MARGIN"
	IndicatorDebtEquity       Indicator = "DEBT_EQUITY"
)

// IndicatorSet holds the indicators that could be computed. An indicator
// whose input is unknown is absent, which is different from a zero value.
type IndicatorSet map[Indicator]float64

func (s IndicatorSet) Lookup(ind Indicator) (float64, bool) {
	v, ok := s[ind]
	return v, ok
}

type YearIndicators struct {
	HarvestYearID    uuid.UUID    `json:"harvest_year_id"`
	HarvestYearLabel string       `json:"harvest_year_label"`
	StartYear        int          `json:"start_year"`
	Indicators       IndicatorSet `json:"indicators"`
}
