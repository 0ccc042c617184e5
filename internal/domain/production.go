package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PlantedArea struct {
	ID             uuid.UUID    `db:"id" json:"id"`
	OrganizationID uuid.UUID    `db:"organization_id" json:"organization_id"`
	CultureID      uuid.UUID    `db:"culture_id" json:"culture_id"`
	SystemID       uuid.UUID    `db:"system_id" json:"system_id"`
	CycleID        uuid.UUID    `db:"cycle_id" json:"cycle_id"`
	PropertyID     uuid.UUID    `db:"property_id" json:"property_id"`
	CommodityKey   CommodityKey `db:"commodity_key" json:"commodity_key"`
	Hectares       YearValues   `db:"hectares_by_harvest" json:"hectares_by_harvest"`
}

type Productivity struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	OrganizationID uuid.UUID  `db:"organization_id" json:"organization_id"`
	CultureID      uuid.UUID  `db:"culture_id" json:"culture_id"`
	SystemID       uuid.UUID  `db:"system_id" json:"system_id"`
	Yields         YearValues `db:"yields_by_harvest" json:"yields_by_harvest"`
	Unit           string     `db:"unit" json:"unit"`
}

type CommodityPrice struct {
	ID             uuid.UUID           `db:"id" json:"id"`
	OrganizationID uuid.UUID           `db:"organization_id" json:"organization_id"`
	CommodityKey   CommodityKey        `db:"commodity_key" json:"commodity_key"`
	Currency       string              `db:"currency" json:"currency"`
	Unit           string              `db:"unit" json:"unit"`
	Prices         YearValues          `db:"prices_by_harvest" json:"prices_by_harvest"`
	CurrentPrice   decimal.NullDecimal `db:"current_price" json:"current_price"`
}

// ExchangeRate converts one unit of Currency into QuoteCurrency.
type ExchangeRate struct {
	ID             uuid.UUID           `db:"id" json:"id"`
	OrganizationID uuid.UUID           `db:"organization_id" json:"organization_id"`
	Currency       string              `db:"currency" json:"currency"`
	QuoteCurrency  string              `db:"quote_currency" json:"quote_currency"`
	Rates          YearValues          `db:"rates_by_harvest" json:"rates_by_harvest"`
	CurrentRate    decimal.NullDecimal `db:"current_rate" json:"current_rate"`
}

type CostBasis string

const (
	CostPerHectare CostBasis = "PER_HECTARE"
	CostTotal      CostBasis = "TOTAL"
)

// ProductionCost is either a per-hectare cost joined on (culture, system) with
// the planted area, or a total summed directly into the harvest year.
type ProductionCost struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	OrganizationID uuid.UUID  `db:"organization_id" json:"organization_id"`
	CultureID      *uuid.UUID `db:"culture_id" json:"culture_id,omitempty"`
	SystemID       *uuid.UUID `db:"system_id" json:"system_id,omitempty"`
	Category       string     `db:"category" json:"category"`
	Basis          CostBasis  `db:"basis" json:"basis"`
	Amounts        YearValues `db:"amounts_by_harvest" json:"amounts_by_harvest"`
}

type OtherExpense struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	OrganizationID uuid.UUID  `db:"organization_id" json:"organization_id"`
	Category       string     `db:"category" json:"category"`
	Description    string     `db:"description" json:"description"`
	Amounts        YearValues `db:"amounts_by_harvest" json:"amounts_by_harvest"`
}
