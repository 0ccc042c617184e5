package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type HarvestYear struct {
	ID             uuid.UUID `db:"id" json:"id"`
	OrganizationID uuid.UUID `db:"organization_id" json:"organization_id"`
	Label          string    `db:"label" json:"label"`
	StartYear      int       `db:"start_year" json:"start_year"`
	EndYear        int       `db:"end_year" json:"end_year"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"-"`
	UpdatedAt      time.Time `db:"updated_at" json:"-"`
}

// SortHarvestYears orders harvest years by ascending start year, then label.
func SortHarvestYears(years []HarvestYear) []HarvestYear {
	sorted := make([]HarvestYear, len(years))
	copy(sorted, years)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].StartYear != sorted[j].StartYear {
			return sorted[i].StartYear < sorted[j].StartYear
		}
		return sorted[i].Label < sorted[j].Label
	})
	return sorted
}

type Culture struct {
	ID             uuid.UUID `db:"id" json:"id"`
	OrganizationID uuid.UUID `db:"organization_id" json:"organization_id"`
	Name           string    `db:"name" json:"name"`
}

type System struct {
	ID             uuid.UUID `db:"id" json:"id"`
	OrganizationID uuid.UUID `db:"organization_id" json:"organization_id"`
	Name           string    `db:"name" json:"name"`
}

type Cycle struct {
	ID             uuid.UUID `db:"id" json:"id"`
	OrganizationID uuid.UUID `db:"organization_id" json:"organization_id"`
	Name           string    `db:"name" json:"name"`
}

type Property struct {
	ID             uuid.UUID           `db:"id" json:"id"`
	OrganizationID uuid.UUID           `db:"organization_id" json:"organization_id"`
	Name           string              `db:"name" json:"name"`
	City           string              `db:"city" json:"city,omitempty"`
	State          string              `db:"state" json:"state,omitempty"`
	CurrentValue   decimal.NullDecimal `db:"current_value" json:"current_value"`
}
