package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ougirez/agrorating/internal/domain"
)

var (
	plantedAreaColumns    = []string{"id", "organization_id", "culture_id", "system_id", "cycle_id", "property_id", "commodity_key", "hectares_by_harvest"}
	productivityColumns   = []string{"id", "organization_id", "culture_id", "system_id", "yields_by_harvest", "unit"}
	commodityPriceColumns = []string{"id", "organization_id", "commodity_key", "currency", "unit", "prices_by_harvest", "current_price"}
	exchangeRateColumns   = []string{"id", "organization_id", "currency", "quote_currency", "rates_by_harvest", "current_rate"}
	productionCostColumns = []string{"id", "organization_id", "culture_id", "system_id", "category", "basis", "amounts_by_harvest"}
	otherExpenseColumns   = []string{"id", "organization_id", "category", "description", "amounts_by_harvest"}
)

func (s *store) ListPlantedAreas(ctx context.Context, organizationID uuid.UUID) ([]domain.PlantedArea, error) {
	return listByOrganization[domain.PlantedArea](ctx, s, tablePlantedAreas, plantedAreaColumns, organizationID, "id")
}

func (s *store) ListProductivities(ctx context.Context, organizationID uuid.UUID) ([]domain.Productivity, error) {
	return listByOrganization[domain.Productivity](ctx, s, tableProductivities, productivityColumns, organizationID, "id")
}

func (s *store) ListCommodityPrices(ctx context.Context, organizationID uuid.UUID) ([]domain.CommodityPrice, error) {
	return listByOrganization[domain.CommodityPrice](ctx, s, tableCommodityPrices, commodityPriceColumns, organizationID, "commodity_key")
}

func (s *store) ListExchangeRates(ctx context.Context, organizationID uuid.UUID) ([]domain.ExchangeRate, error) {
	return listByOrganization[domain.ExchangeRate](ctx, s, tableExchangeRates, exchangeRateColumns, organizationID, "currency")
}

func (s *store) ListProductionCosts(ctx context.Context, organizationID uuid.UUID) ([]domain.ProductionCost, error) {
	return listByOrganization[domain.ProductionCost](ctx, s, tableProductionCosts, productionCostColumns, organizationID, "id")
}

func (s *store) ListOtherExpenses(ctx context.Context, organizationID uuid.UUID) ([]domain.OtherExpense, error) {
	return listByOrganization[domain.OtherExpense](ctx, s, tableOtherExpenses, otherExpenseColumns, organizationID, "id")
}

func (s *store) UpsertPlantedArea(ctx context.Context, area *domain.PlantedArea) error {
	if area.ID == uuid.Nil {
		area.ID = uuid.New()
	}

	hectares, err := area.Hectares.Value()
	if err != nil {
		return fmt.Errorf("failed to marshal hectares: %w", err)
	}

	query := builder().Insert(tablePlantedAreas).
		Columns(plantedAreaColumns...).
		Values(area.ID, area.OrganizationID, area.CultureID, area.SystemID, area.CycleID, area.PropertyID, area.CommodityKey, hectares).
		Suffix(`
on conflict (id)
do update
set
	culture_id = excluded.culture_id,
	system_id = excluded.system_id,
	cycle_id = excluded.cycle_id,
	property_id = excluded.property_id,
	commodity_key = excluded.commodity_key,
	hectares_by_harvest = excluded.hectares_by_harvest`)

	if err = s.exec(ctx, query); err != nil {
		return fmt.Errorf("insert planted area: %w", err)
	}

	return nil
}
