package controller

import (
	"fmt"
	"github.com/labstack/echo/v4"
	"github.com/ougirez/agrorating/internal/domain/dto"
	"github.com/ougirez/agrorating/internal/pkg/constants"
	"net/http"
)

func (c *Controller) RecordPlantedArea(ctx echo.Context) error {
	orgID, err := organizationID(ctx)
	if err != nil {
		return err
	}

	var req dto.PlantedAreaRequest
	if err = ctx.Bind(&req); err != nil {
		return err
	}

	area := req.PlantedArea(orgID)
	if err = c.ledger.RecordPlantedArea(ctx.Request().Context(), area); err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, area)
}

func (c *Controller) BackfillMarket(ctx echo.Context) error {
	orgID, err := organizationID(ctx)
	if err != nil {
		return err
	}

	var req dto.BackfillRequest
	if err = ctx.Bind(&req); err != nil {
		return err
	}

	mainURL := req.URL
	if mainURL == "" {
		mainURL = c.marketURL
	}
	if mainURL == "" {
		return fmt.Errorf("market url is not configured: %w", constants.ErrBadRequest)
	}

	res, err := c.market.Backfill(ctx.Request().Context(), orgID, mainURL)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, res)
}
