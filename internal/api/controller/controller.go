package controller

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/ougirez/agrorating/internal/domain"
	"github.com/ougirez/agrorating/internal/domain/dto"
	"github.com/ougirez/agrorating/internal/pkg/constants"
)

type projectionService interface {
	HarvestYears(ctx context.Context, organizationID uuid.UUID) ([]domain.HarvestYear, error)
	FinancialStatements(ctx context.Context, organizationID uuid.UUID) ([]domain.FinancialStatement, error)
	DebtPositions(ctx context.Context, organizationID uuid.UUID) ([]domain.DebtPosition, error)
	Indicators(ctx context.Context, organizationID uuid.UUID) ([]domain.YearIndicators, error)
	Rate(ctx context.Context, organizationID, harvestYearID uuid.UUID) (domain.RatingResult, error)
	Report(ctx context.Context, organizationID, harvestYearID uuid.UUID) (*domain.Report, error)
}

type ledgerService interface {
	RecordPlantedArea(ctx context.Context, area *domain.PlantedArea) error
}

type marketService interface {
	Backfill(ctx context.Context, organizationID uuid.UUID, mainURL string) (*dto.BackfillResult, error)
}

type Controller struct {
	projection projectionService
	ledger     ledgerService
	market     marketService
	marketURL  string
}

func NewController(projection projectionService, ledger ledgerService, market marketService, marketURL string) *Controller {
	return &Controller{
		projection: projection,
		ledger:     ledger,
		market:     market,
		marketURL:  marketURL,
	}
}

func organizationID(ctx echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Param("org_id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("org_id: %v: %w", err, constants.ErrBadRequest)
	}
	return id, nil
}

func harvestYearID(ctx echo.Context) (uuid.UUID, error) {
	raw := ctx.QueryParam("harvest_year_id")
	if raw == "" {
		return uuid.Nil, fmt.Errorf("harvest_year_id is required: %w", constants.ErrBadRequest)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("harvest_year_id: %v: %w", err, constants.ErrBadRequest)
	}
	return id, nil
}
