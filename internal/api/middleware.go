package api

import (
	"fmt"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/ougirez/agrorating/internal/pkg/constants"
	"github.com/ougirez/agrorating/internal/pkg/logger"
)

// withOrganization rejects malformed organization ids and tags every log line
// of the request with the organization.
func withOrganization(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		orgID, err := uuid.Parse(c.Param("org_id"))
		if err != nil {
			return fmt.Errorf("org_id-%s: %v: %w", c.Param("org_id"), err, constants.ErrBadRequest)
		}

		req := c.Request()
		c.SetRequest(req.WithContext(logger.WithFields(req.Context(), "organization_id", orgID.String())))

		return next(c)
	}
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		BeforeNextFunc: func(c echo.Context) {
			req := c.Request()
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			c.SetRequest(req.WithContext(logger.WithFields(req.Context(), "request_id", id)))
		},
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Infof(c.Request().Context(), "%s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	})
}
