package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/ougirez/agrorating/internal/domain"
)

var (
	harvestYearColumns = []string{"id", "organization_id", "label", "start_year", "end_year", "is_active", "created_at", "updated_at"}
	dimensionColumns   = []string{"id", "organization_id", "name"}
	propertyColumns    = []string{"id", "organization_id", "name", "city", "state", "current_value"}
)

func (s *store) ListHarvestYears(ctx context.Context, organizationID uuid.UUID) ([]domain.HarvestYear, error) {
	return listByOrganization[domain.HarvestYear](ctx, s, tableHarvestYears, harvestYearColumns, organizationID, "start_year", "label")
}

func (s *store) ListCultures(ctx context.Context, organizationID uuid.UUID) ([]domain.Culture, error) {
	return listByOrganization[domain.Culture](ctx, s, tableCultures, dimensionColumns, organizationID, "name")
}

func (s *store) ListSystems(ctx context.Context, organizationID uuid.UUID) ([]domain.System, error) {
	return listByOrganization[domain.System](ctx, s, tableSystems, dimensionColumns, organizationID, "name")
}

func (s *store) ListCycles(ctx context.Context, organizationID uuid.UUID) ([]domain.Cycle, error) {
	return listByOrganization[domain.Cycle](ctx, s, tableCycles, dimensionColumns, organizationID, "name")
}

func (s *store) ListProperties(ctx context.Context, organizationID uuid.UUID) ([]domain.Property, error) {
	return listByOrganization[domain.Property](ctx, s, tableProperties, propertyColumns, organizationID, "name")
}
