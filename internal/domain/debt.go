package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DebtCategory string

const (
	DebtCategoryBank    DebtCategory = "BANK"
	DebtCategoryTrading DebtCategory = "TRADING"
	DebtCategoryOther   DebtCategory = "OTHER"

	// DebtCategoryOtherLiabilities groups every instrument not tagged BANK.
	DebtCategoryOtherLiabilities DebtCategory = "OTHER_LIABILITIES"
)

type DebtModality string

const (
	ModalityWorkingCapital DebtModality = "WORKING_CAPITAL"
	ModalityInvestment     DebtModality = "INVESTMENT"
)

type DebtInstrument struct {
	ID               uuid.UUID       `db:"id" json:"id"`
	OrganizationID   uuid.UUID       `db:"organization_id" json:"organization_id"`
	Institution      string          `db:"institution" json:"institution"`
	Currency         string          `db:"currency" json:"currency"`
	Category         DebtCategory    `db:"category" json:"category"`
	Modality         DebtModality    `db:"modality" json:"modality"`
	RealInterestRate decimal.Decimal `db:"real_interest_rate" json:"real_interest_rate"`
	Payments         YearValues      `db:"payments_by_harvest" json:"payments_by_harvest"`
}

type BalanceKind string

const (
	BalanceAsset     BalanceKind = "ASSET"
	BalanceLiability BalanceKind = "LIABILITY"
)

// BalanceItem is a per-harvest-year balance sheet line kept outside the
// production ledger: cash, inventories, biological assets, receivables,
// supplier payables.
type BalanceItem struct {
	ID             uuid.UUID   `db:"id" json:"id"`
	OrganizationID uuid.UUID   `db:"organization_id" json:"organization_id"`
	Kind           BalanceKind `db:"kind" json:"kind"`
	Category       string      `db:"category" json:"category"`
	Liquid         bool        `db:"liquid" json:"liquid"`
	Current        bool        `db:"current" json:"current"`
	Amounts        YearValues  `db:"amounts_by_harvest" json:"amounts_by_harvest"`
}
