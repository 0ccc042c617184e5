package projection

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/ougirez/agrorating/internal/domain"
	"github.com/ougirez/agrorating/internal/finance"
	"github.com/ougirez/agrorating/internal/pkg/constants"
	"github.com/ougirez/agrorating/internal/pkg/logger"
	"github.com/ougirez/agrorating/internal/pkg/metrics"
	"github.com/ougirez/agrorating/internal/rating"
	"github.com/ougirez/agrorating/internal/service/ledger"
	"time"
)

type snapshotLoader interface {
	LoadSnapshot(ctx context.Context, organizationID uuid.UUID) (*ledger.Snapshot, error)
}

type Config struct {
	ReportingCurrency string
	HorizonStartYear  int
}

type Service struct {
	loader       snapshotLoader
	aggregator   finance.Aggregator
	consolidator finance.Consolidator
	scorer       *rating.Scorer
	metrics      *metrics.Metrics
}

func NewProjectionService(loader snapshotLoader, scorer *rating.Scorer, cfg Config, m *metrics.Metrics) *Service {
	return &Service{
		loader: loader,
		aggregator: finance.Aggregator{
			ReportingCurrency: cfg.ReportingCurrency,
			HorizonStartYear:  cfg.HorizonStartYear,
		},
		consolidator: finance.Consolidator{
			ReportingCurrency: cfg.ReportingCurrency,
			HorizonStartYear:  cfg.HorizonStartYear,
		},
		scorer:  scorer,
		metrics: m,
	}
}

// projection is one pipeline run over a snapshot. Nothing in it is shared
// between requests.
type projection struct {
	snap       *ledger.Snapshot
	years      []domain.HarvestYear
	statements map[uuid.UUID]domain.FinancialStatement
	positions  map[uuid.UUID]domain.DebtPosition
}

func (s *Service) project(ctx context.Context, organizationID uuid.UUID) (*projection, error) {
	snap, err := s.loader.LoadSnapshot(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("ledger.LoadSnapshot, organization-%s: %w", organizationID, err)
	}

	p := &projection{
		snap:  snap,
		years: s.aggregator.HarvestYears(snap.HarvestYears),
	}

	p.statements = s.aggregator.Aggregate(finance.AggregateInput{
		HarvestYears:   snap.HarvestYears,
		PlantedAreas:   snap.PlantedAreas,
		Productivities: snap.Productivities,
		Prices:         snap.Prices,
		ExchangeRates:  snap.ExchangeRates,
		Costs:          snap.Costs,
		OtherExpenses:  snap.OtherExpenses,
	})

	p.positions = s.consolidator.Consolidate(finance.ConsolidateInput{
		HarvestYears:  snap.HarvestYears,
		Instruments:   snap.Instruments,
		ExchangeRates: snap.ExchangeRates,
		LiquidAssets:  finance.LiquidAssets(snap.BalanceItems),
	})

	for _, pos := range p.positions {
		if len(pos.UnconvertedCurrencies) > 0 {
			logger.Warnf(ctx, "harvest year %s: no exchange rate for %v, payments counted as zero", pos.HarvestYearLabel, pos.UnconvertedCurrencies)
		}
	}

	return p, nil
}

func (p *projection) indicators(yearID uuid.UUID) domain.IndicatorSet {
	pos := p.positions[yearID]
	balance := finance.BalanceFor(yearID, p.snap.Properties, p.snap.BalanceItems, pos)
	return finance.ComputeIndicators(p.statements[yearID], pos, balance)
}

func (s *Service) HarvestYears(ctx context.Context, organizationID uuid.UUID) (res []domain.HarvestYear, err error) {
	defer s.observe(ctx, "harvest_years", time.Now(), &err)

	snap, err := s.loader.LoadSnapshot(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("ledger.LoadSnapshot, organization-%s: %w", organizationID, err)
	}

	return s.aggregator.HarvestYears(snap.HarvestYears), nil
}

// FinancialStatements returns one statement per harvest year in the horizon,
// by ascending start year.
func (s *Service) FinancialStatements(ctx context.Context, organizationID uuid.UUID) (res []domain.FinancialStatement, err error) {
	defer s.observe(ctx, "financial_statements", time.Now(), &err)

	p, err := s.project(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	return finance.OrderedStatements(p.years, p.statements), nil
}

func (s *Service) DebtPositions(ctx context.Context, organizationID uuid.UUID) (res []domain.DebtPosition, err error) {
	defer s.observe(ctx, "debt_positions", time.Now(), &err)

	p, err := s.project(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	return finance.OrderedPositions(p.years, p.positions), nil
}

func (s *Service) Indicators(ctx context.Context, organizationID uuid.UUID) (res []domain.YearIndicators, err error) {
	defer s.observe(ctx, "indicators", time.Now(), &err)

	p, err := s.project(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	res = make([]domain.YearIndicators, 0, len(p.years))
	for _, y := range p.years {
		res = append(res, domain.YearIndicators{
			HarvestYearID:    y.ID,
			HarvestYearLabel: y.Label,
			StartYear:        y.StartYear,
			Indicators:       p.indicators(y.ID),
		})
	}

	return res, nil
}

// Rate scores one harvest year.
func (s *Service) Rate(ctx context.Context, organizationID, harvestYearID uuid.UUID) (res domain.RatingResult, err error) {
	defer s.observe(ctx, "rate", time.Now(), &err)

	p, err := s.project(ctx, organizationID)
	if err != nil {
		return domain.RatingResult{}, err
	}

	if err = p.requireYear(harvestYearID); err != nil {
		return domain.RatingResult{}, err
	}

	res, err = s.scorer.Score(p.indicators(harvestYearID))
	if err != nil {
		return domain.RatingResult{}, fmt.Errorf("scorer.Score, harvest_year-%s: %w", harvestYearID, err)
	}

	return res, nil
}

// Report runs every stage for one harvest year and adds the comparison with
// the previous year when there is one.
func (s *Service) Report(ctx context.Context, organizationID, harvestYearID uuid.UUID) (res *domain.Report, err error) {
	defer s.observe(ctx, "report", time.Now(), &err)

	p, err := s.project(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	if err = p.requireYear(harvestYearID); err != nil {
		return nil, err
	}

	year, _ := p.snap.HarvestYear(harvestYearID)
	indicators := p.indicators(harvestYearID)

	result, err := s.scorer.Score(indicators)
	if err != nil {
		return nil, fmt.Errorf("scorer.Score, harvest_year-%s: %w", harvestYearID, err)
	}

	res = &domain.Report{
		OrganizationID: organizationID,
		HarvestYear:    year,
		Statement:      p.statements[harvestYearID],
		DebtPosition:   p.positions[harvestYearID],
		Indicators:     indicators,
		Rating:         result,
	}

	if prev, ok := finance.Previous(p.years, harvestYearID); ok {
		growth := finance.Growth(p.statements[prev.ID], res.Statement)
		reduction := finance.DebtReduction(p.positions[prev.ID], res.DebtPosition)
		res.Growth = &growth
		res.DebtReduction = &reduction
	}

	logger.Infof(ctx, "rated harvest year %s: %s (%.2f)", year.Label, result.Letter, result.CompositeScore)

	return res, nil
}

func (p *projection) requireYear(harvestYearID uuid.UUID) error {
	if _, ok := p.snap.HarvestYear(harvestYearID); !ok {
		return fmt.Errorf("harvest_year-%s: %w", harvestYearID, constants.ErrHarvestYearNotFound)
	}
	if _, ok := p.statements[harvestYearID]; !ok {
		return fmt.Errorf("harvest_year-%s is outside the projection horizon: %w", harvestYearID, constants.ErrInsufficientData)
	}
	return nil
}

func (s *Service) observe(ctx context.Context, operation string, started time.Time, err *error) {
	s.metrics.ObservePipeline(operation, started, *err)
	if *err != nil {
		logger.Errorf(ctx, "projection.%s: %v", operation, *err)
	}
}
