package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ougirez/agrorating/internal/domain"
	"github.com/ougirez/agrorating/internal/pkg/store/xpgx"
)

type Pool = xpgx.Pool

type Store interface {
	ReferenceStore
	LedgerStore
	MarketStore
}

type ReferenceStore interface {
	ListHarvestYears(ctx context.Context, organizationID uuid.UUID) ([]domain.HarvestYear, error)
	ListCultures(ctx context.Context, organizationID uuid.UUID) ([]domain.Culture, error)
	ListSystems(ctx context.Context, organizationID uuid.UUID) ([]domain.System, error)
	ListCycles(ctx context.Context, organizationID uuid.UUID) ([]domain.Cycle, error)
	ListProperties(ctx context.Context, organizationID uuid.UUID) ([]domain.Property, error)
}

type LedgerStore interface {
	ListPlantedAreas(ctx context.Context, organizationID uuid.UUID) ([]domain.PlantedArea, error)
	ListProductivities(ctx context.Context, organizationID uuid.UUID) ([]domain.Productivity, error)
	ListCommodityPrices(ctx context.Context, organizationID uuid.UUID) ([]domain.CommodityPrice, error)
	ListExchangeRates(ctx context.Context, organizationID uuid.UUID) ([]domain.ExchangeRate, error)
	ListProductionCosts(ctx context.Context, organizationID uuid.UUID) ([]domain.ProductionCost, error)
	ListOtherExpenses(ctx context.Context, organizationID uuid.UUID) ([]domain.OtherExpense, error)
	ListDebtInstruments(ctx context.Context, organizationID uuid.UUID) ([]domain.DebtInstrument, error)
	ListBalanceItems(ctx context.Context, organizationID uuid.UUID) ([]domain.BalanceItem, error)
	UpsertPlantedArea(ctx context.Context, area *domain.PlantedArea) error
}

type MarketStore interface {
	UpsertCommodityPrice(ctx context.Context, price *domain.CommodityPrice) error
	UpsertExchangeRate(ctx context.Context, rate *domain.ExchangeRate) error
}

type store struct {
	pool       Pool
	maxRetries uint64
	retryDelay time.Duration
}

type Option func(*store)

// WithRetry sets how many times a transient read or write failure is retried.
func WithRetry(maxRetries uint64, delay time.Duration) Option {
	return func(s *store) {
		s.maxRetries = maxRetries
		if delay > 0 {
			s.retryDelay = delay
		}
	}
}

func NewStore(pool Pool, opts ...Option) Store {
	s := &store{
		pool:       pool,
		maxRetries: defaultMaxRetries,
		retryDelay: defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
