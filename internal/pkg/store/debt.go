package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/ougirez/agrorating/internal/domain"
)

var (
	debtInstrumentColumns = []string{"id", "organization_id", "institution", "currency", "category", "modality", "real_interest_rate", "payments_by_harvest"}
	balanceItemColumns    = []string{"id", "organization_id", "kind", "category", "liquid", "current", "amounts_by_harvest"}
)

func (s *store) ListDebtInstruments(ctx context.Context, organizationID uuid.UUID) ([]domain.DebtInstrument, error) {
	return listByOrganization[domain.DebtInstrument](ctx, s, tableDebtInstruments, debtInstrumentColumns, organizationID, "institution", "id")
}

func (s *store) ListBalanceItems(ctx context.Context, organizationID uuid.UUID) ([]domain.BalanceItem, error) {
	return listByOrganization[domain.BalanceItem](ctx, s, tableBalanceItems, balanceItemColumns, organizationID, "kind", "category")
}
