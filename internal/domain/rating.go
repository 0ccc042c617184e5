package domain

import "github.com/google/uuid"

type RiskTier string

const (
	RiskExcellent RiskTier = "excellent"
	RiskGood      RiskTier = "good"
	RiskWarning   RiskTier = "warning"
	RiskDanger    RiskTier = "danger"
)

type SubScore struct {
	Indicator Indicator `json:"indicator"`
	Value     float64   `json:"value"`
	Score     float64   `json:"score"`
	Level     string    `json:"level"`
	Weight    float64   `json:"weight"`
}

type RatingResult struct {
	CompositeScore float64    `json:"composite_score"`
	Letter         string     `json:"letter"`
	Description    string     `json:"description"`
	RiskTier       RiskTier   `json:"risk_tier"`
	SubScores      []SubScore `json:"sub_scores"`
	// Skipped lists weighted indicators that had no input value.
	Skipped []Indicator `json:"skipped,omitempty"`
}

// Report bundles every stage of one pipeline run for a single harvest year.
type Report struct {
	OrganizationID uuid.UUID          `json:"organization_id"`
	HarvestYear    HarvestYear        `json:"harvest_year"`
	Statement      FinancialStatement `json:"statement"`
	Growth         *GrowthRates       `json:"growth,omitempty"`
	DebtPosition   DebtPosition       `json:"debt_position"`
	DebtReduction  *DebtReduction     `json:"debt_reduction,omitempty"`
	Indicators     IndicatorSet       `json:"indicators"`
	Rating         RatingResult       `json:"rating"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}
