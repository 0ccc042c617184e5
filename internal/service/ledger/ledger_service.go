package ledger

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/ougirez/agrorating/internal/domain"
	"github.com/ougirez/agrorating/internal/pkg/constants"
	"github.com/ougirez/agrorating/internal/pkg/logger"
	"github.com/ougirez/agrorating/internal/pkg/store"
	"golang.org/x/sync/errgroup"
)

// Snapshot is everything fetched for one organization. It is read once per
// request and not mutated afterwards.
type Snapshot struct {
	OrganizationID uuid.UUID

	HarvestYears []domain.HarvestYear
	Cultures     []domain.Culture
	Systems      []domain.System
	Cycles       []domain.Cycle
	Properties   []domain.Property

	PlantedAreas   []domain.PlantedArea
	Productivities []domain.Productivity
	Prices         []domain.CommodityPrice
	ExchangeRates  []domain.ExchangeRate
	Costs          []domain.ProductionCost
	OtherExpenses  []domain.OtherExpense
	Instruments    []domain.DebtInstrument
	BalanceItems   []domain.BalanceItem
}

func (s *Snapshot) HarvestYear(id uuid.UUID) (domain.HarvestYear, bool) {
	for _, y := range s.HarvestYears {
		if y.ID == id {
			return y, true
		}
	}
	return domain.HarvestYear{}, false
}

type Service struct {
	store store.Store
}

func NewLedgerService(store store.Store) *Service {
	return &Service{store: store}
}

// LoadSnapshot issues one read per entity type concurrently. The first failed
// read cancels the others and the whole snapshot is discarded.
func (s *Service) LoadSnapshot(ctx context.Context, organizationID uuid.UUID) (*Snapshot, error) {
	snap := &Snapshot{OrganizationID: organizationID}

	eg, egCtx := errgroup.WithContext(ctx)
	load(egCtx, eg, constants.EntityHarvestYears, organizationID, s.store.ListHarvestYears, &snap.HarvestYears)
	load(egCtx, eg, constants.EntityCultures, organizationID, s.store.ListCultures, &snap.Cultures)
	load(egCtx, eg, constants.EntitySystems, organizationID, s.store.ListSystems, &snap.Systems)
	load(egCtx, eg, constants.EntityCycles, organizationID, s.store.ListCycles, &snap.Cycles)
	load(egCtx, eg, constants.EntityProperties, organizationID, s.store.ListProperties, &snap.Properties)
	load(egCtx, eg, constants.EntityPlantedAreas, organizationID, s.store.ListPlantedAreas, &snap.PlantedAreas)
	load(egCtx, eg, constants.EntityProductivities, organizationID, s.store.ListProductivities, &snap.Productivities)
	load(egCtx, eg, constants.EntityCommodityPrices, organizationID, s.store.ListCommodityPrices, &snap.Prices)
	load(egCtx, eg, constants.EntityExchangeRates, organizationID, s.store.ListExchangeRates, &snap.ExchangeRates)
	load(egCtx, eg, constants.EntityProductionCosts, organizationID, s.store.ListProductionCosts, &snap.Costs)
	load(egCtx, eg, constants.EntityOtherExpenses, organizationID, s.store.ListOtherExpenses, &snap.OtherExpenses)
	load(egCtx, eg, constants.EntityDebtInstruments, organizationID, s.store.ListDebtInstruments, &snap.Instruments)
	load(egCtx, eg, constants.EntityBalanceItems, organizationID, s.store.ListBalanceItems, &snap.BalanceItems)

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if err := snap.validate(); err != nil {
		return nil, err
	}

	if n := snap.deriveCommodityKeys(); n > 0 {
		logger.Debugf(ctx, "derived commodity key for %d planted areas", n)
	}

	return snap, nil
}

func load[T any](
	ctx context.Context,
	eg *errgroup.Group,
	entity constants.Entity,
	organizationID uuid.UUID,
	list func(context.Context, uuid.UUID) ([]T, error),
	dst *[]T,
) {
	eg.Go(func() error {
		items, err := list(ctx, organizationID)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return &constants.SourceUnavailableError{Entity: entity, Err: err}
		}
		if items == nil {
			items = make([]T, 0)
		}
		*dst = items
		return nil
	})
}

// validate rejects rows breaking the non-negative hectare and payment rules.
func (s *Snapshot) validate() error {
	for _, a := range s.PlantedAreas {
		if id, ok := a.Hectares.FirstNegative(); ok {
			return fmt.Errorf("planted area %s, harvest_year-%s: negative hectares: %w", a.ID, id, constants.ErrInvalidData)
		}
	}
	for _, d := range s.Instruments {
		if id, ok := d.Payments.FirstNegative(); ok {
			return fmt.Errorf("debt instrument %s, harvest_year-%s: negative payment: %w", d.ID, id, constants.ErrInvalidData)
		}
	}
	return nil
}

// deriveCommodityKeys fills the key of legacy planted areas stored without
// one. It returns the number of rows it touched.
func (s *Snapshot) deriveCommodityKeys() int {
	names := newNameIndex(s.Cultures, s.Systems, s.Cycles)

	var n int
	for i := range s.PlantedAreas {
		a := &s.PlantedAreas[i]
		if a.CommodityKey.Valid() {
			continue
		}
		a.CommodityKey = names.commodityKey(a)
		n++
	}
	return n
}

// RecordPlantedArea stores a planted area, resolving its commodity key from
// the culture, system and cycle names when the caller did not set one.
func (s *Service) RecordPlantedArea(ctx context.Context, area *domain.PlantedArea) error {
	if id, ok := area.Hectares.FirstNegative(); ok {
		return fmt.Errorf("harvest_year-%s: negative hectares: %w", id, constants.ErrInvalidData)
	}

	if !area.CommodityKey.Valid() {
		eg, egCtx := errgroup.WithContext(ctx)

		var (
			cultures []domain.Culture
			systems  []domain.System
			cycles   []domain.Cycle
		)
		load(egCtx, eg, constants.EntityCultures, area.OrganizationID, s.store.ListCultures, &cultures)
		load(egCtx, eg, constants.EntitySystems, area.OrganizationID, s.store.ListSystems, &systems)
		load(egCtx, eg, constants.EntityCycles, area.OrganizationID, s.store.ListCycles, &cycles)
		if err := eg.Wait(); err != nil {
			return err
		}

		area.CommodityKey = newNameIndex(cultures, systems, cycles).commodityKey(area)
	}

	if err := s.store.UpsertPlantedArea(ctx, area); err != nil {
		return fmt.Errorf("store.UpsertPlantedArea, culture-%s: %w", area.CultureID, err)
	}

	logger.Infof(ctx, "planted area %s recorded as %s", area.ID, area.CommodityKey)
	return nil
}

type nameIndex struct {
	cultures map[uuid.UUID]string
	systems  map[uuid.UUID]string
	cycles   map[uuid.UUID]string
}

func newNameIndex(cultures []domain.Culture, systems []domain.System, cycles []domain.Cycle) nameIndex {
	idx := nameIndex{
		cultures: make(map[uuid.UUID]string, len(cultures)),
		systems:  make(map[uuid.UUID]string, len(systems)),
		cycles:   make(map[uuid.UUID]string, len(cycles)),
	}
	for _, c := range cultures {
		idx.cultures[c.ID] = c.Name
	}
	for _, c := range systems {
		idx.systems[c.ID] = c.Name
	}
	for _, c := range cycles {
		idx.cycles[c.ID] = c.Name
	}
	return idx
}

func (idx nameIndex) commodityKey(a *domain.PlantedArea) domain.CommodityKey {
	return domain.DeriveCommodityKey(idx.cultures[a.CultureID], idx.systems[a.SystemID], idx.cycles[a.CycleID])
}
