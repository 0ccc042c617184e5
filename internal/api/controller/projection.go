package controller

import (
	"github.com/labstack/echo/v4"
	"net/http"
)

func (c *Controller) GetHarvestYears(ctx echo.Context) error {
	orgID, err := organizationID(ctx)
	if err != nil {
		return err
	}

	years, err := c.projection.HarvestYears(ctx.Request().Context(), orgID)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, years)
}

func (c *Controller) GetFinancialStatements(ctx echo.Context) error {
	orgID, err := organizationID(ctx)
	if err != nil {
		return err
	}

	statements, err := c.projection.FinancialStatements(ctx.Request().Context(), orgID)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, statements)
}

func (c *Controller) GetDebtPositions(ctx echo.Context) error {
	orgID, err := organizationID(ctx)
	if err != nil {
		return err
	}

	positions, err := c.projection.DebtPositions(ctx.Request().Context(), orgID)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, positions)
}

func (c *Controller) GetIndicators(ctx echo.Context) error {
	orgID, err := organizationID(ctx)
	if err != nil {
		return err
	}

	indicators, err := c.projection.Indicators(ctx.Request().Context(), orgID)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, indicators)
}

func (c *Controller) GetRating(ctx echo.Context) error {
	orgID, err := organizationID(ctx)
	if err != nil {
		return err
	}
	yearID, err := harvestYearID(ctx)
	if err != nil {
		return err
	}

	result, err := c.projection.Rate(ctx.Request().Context(), orgID, yearID)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, result)
}

func (c *Controller) GetReport(ctx echo.Context) error {
	orgID, err := organizationID(ctx)
	if err != nil {
		return err
	}
	yearID, err := harvestYearID(ctx)
	if err != nil {
		return err
	}

	report, err := c.projection.Report(ctx.Request().Context(), orgID, yearID)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, report)
}
