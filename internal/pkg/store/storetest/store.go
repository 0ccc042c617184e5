// Package storetest provides an in-memory store.Store for service tests.
package storetest

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/ougirez/agrorating/internal/domain"
	"github.com/ougirez/agrorating/internal/pkg/constants"
	"github.com/ougirez/agrorating/internal/pkg/store"
)

var _ store.Store = (*Store)(nil)

// Store keeps every collection in memory. Errs makes the read of an entity
// fail; Calls counts reads per entity.
type Store struct {
	mu sync.Mutex

	HarvestYears   []domain.HarvestYear
	Cultures       []domain.Culture
	Systems        []domain.System
	Cycles         []domain.Cycle
	Properties     []domain.Property
	PlantedAreas   []domain.PlantedArea
	Productivities []domain.Productivity
	Prices         []domain.CommodityPrice
	ExchangeRates  []domain.ExchangeRate
	Costs          []domain.ProductionCost
	OtherExpenses  []domain.OtherExpense
	Instruments    []domain.DebtInstrument
	BalanceItems   []domain.BalanceItem

	Errs  map[constants.Entity]error
	Calls map[constants.Entity]int
}

func list[T any](ctx context.Context, s *Store, entity constants.Entity, items []T) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Calls == nil {
		s.Calls = make(map[constants.Entity]int)
	}
	s.Calls[entity]++

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.Errs[entity]; err != nil {
		return nil, err
	}

	res := make([]T, len(items))
	copy(res, items)
	return res, nil
}

func (s *Store) ListHarvestYears(ctx context.Context, _ uuid.UUID) ([]domain.HarvestYear, error) {
	return list(ctx, s, constants.EntityHarvestYears, s.HarvestYears)
}

func (s *Store) ListCultures(ctx context.Context, _ uuid.UUID) ([]domain.Culture, error) {
	return list(ctx, s, constants.EntityCultures, s.Cultures)
}

func (s *Store) ListSystems(ctx context.Context, _ uuid.UUID) ([]domain.System, error) {
	return list(ctx, s, constants.EntitySystems, s.Systems)
}

func (s *Store) ListCycles(ctx context.Context, _ uuid.UUID) ([]domain.Cycle, error) {
	return list(ctx, s, constants.EntityCycles, s.Cycles)
}

func (s *Store) ListProperties(ctx context.Context, _ uuid.UUID) ([]domain.Property, error) {
	return list(ctx, s, constants.EntityProperties, s.Properties)
}

func (s *Store) ListPlantedAreas(ctx context.Context, _ uuid.UUID) ([]domain.PlantedArea, error) {
	return list(ctx, s, constants.EntityPlantedAreas, s.PlantedAreas)
}

func (s *Store) ListProductivities(ctx context.Context, _ uuid.UUID) ([]domain.Productivity, error) {
	return list(ctx, s, constants.EntityProductivities, s.Productivities)
}

func (s *Store) ListCommodityPrices(ctx context.Context, _ uuid.UUID) ([]domain.CommodityPrice, error) {
	return list(ctx, s, constants.EntityCommodityPrices, s.Prices)
}

func (s *Store) ListExchangeRates(ctx context.Context, _ uuid.UUID) ([]domain.ExchangeRate, error) {
	return list(ctx, s, constants.EntityExchangeRates, s.ExchangeRates)
}

func (s *Store) ListProductionCosts(ctx context.Context, _ uuid.UUID) ([]domain.ProductionCost, error) {
	return list(ctx, s, constants.EntityProductionCosts, s.Costs)
}

func (s *Store) ListOtherExpenses(ctx context.Context, _ uuid.UUID) ([]domain.OtherExpense, error) {
	return list(ctx, s, constants.EntityOtherExpenses, s.OtherExpenses)
}

func (s *Store) ListDebtInstruments(ctx context.Context, _ uuid.UUID) ([]domain.DebtInstrument, error) {
	return list(ctx, s, constants.EntityDebtInstruments, s.Instruments)
}

func (s *Store) ListBalanceItems(ctx context.Context, _ uuid.UUID) ([]domain.BalanceItem, error) {
	return list(ctx, s, constants.EntityBalanceItems, s.BalanceItems)
}

func (s *Store) UpsertPlantedArea(_ context.Context, area *domain.PlantedArea) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.Errs[constants.EntityPlantedAreas]; err != nil {
		return err
	}
	if area.ID == uuid.Nil {
		area.ID = uuid.New()
	}
	for i := range s.PlantedAreas {
		if s.PlantedAreas[i].ID == area.ID {
			s.PlantedAreas[i] = *area
			return nil
		}
	}
	s.PlantedAreas = append(s.PlantedAreas, *area)
	return nil
}

// UpsertCommodityPrice merges per-year prices the way the SQL store does.
func (s *Store) UpsertCommodityPrice(_ context.Context, price *domain.CommodityPrice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.Errs[constants.EntityCommodityPrices]; err != nil {
		return err
	}
	for i := range s.Prices {
		cur := &s.Prices[i]
		if cur.OrganizationID != price.OrganizationID || cur.CommodityKey != price.CommodityKey {
			continue
		}
		cur.Currency, cur.Unit = price.Currency, price.Unit
		if cur.Prices == nil {
			cur.Prices = make(domain.YearValues)
		}
		for id, v := range price.Prices {
			cur.Prices[id] = v
		}
		if price.CurrentPrice.Valid {
			cur.CurrentPrice = price.CurrentPrice
		}
		price.ID = cur.ID
		return nil
	}
	if price.ID == uuid.Nil {
		price.ID = uuid.New()
	}
	s.Prices = append(s.Prices, *price)
	return nil
}

func (s *Store) UpsertExchangeRate(_ context.Context, rate *domain.ExchangeRate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.Errs[constants.EntityExchangeRates]; err != nil {
		return err
	}
	for i := range s.ExchangeRates {
		cur := &s.ExchangeRates[i]
		if cur.OrganizationID != rate.OrganizationID || cur.Currency != rate.Currency || cur.QuoteCurrency != rate.QuoteCurrency {
			continue
		}
		if cur.Rates == nil {
			cur.Rates = make(domain.YearValues)
		}
		for id, v := range rate.Rates {
			cur.Rates[id] = v
		}
		if rate.CurrentRate.Valid {
			cur.CurrentRate = rate.CurrentRate
		}
		rate.ID = cur.ID
		return nil
	}
	if rate.ID == uuid.Nil {
		rate.ID = uuid.New()
	}
	s.ExchangeRates = append(s.ExchangeRates, *rate)
	return nil
}
