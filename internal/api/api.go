package api

import (
	"context"
	"errors"
	"fmt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/ougirez/agrorating/internal/api/controller"
	"github.com/ougirez/agrorating/internal/config"
	"github.com/ougirez/agrorating/internal/pkg/logger"
	"github.com/ougirez/agrorating/internal/pkg/metrics"
	"github.com/ougirez/agrorating/internal/pkg/store"
	"github.com/ougirez/agrorating/internal/rating"
	"github.com/ougirez/agrorating/internal/service/ledger"
	"github.com/ougirez/agrorating/internal/service/market"
	"github.com/ougirez/agrorating/internal/service/projection"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
)

type APIService struct {
	router            *echo.Echo
	ledgerService     *ledger.Service
	projectionService *projection.Service
	marketService     *market.Service
}

// Serve blocks until the server stops. A graceful Shutdown is not an error.
func (svc *APIService) Serve(addr string) error {
	if err := svc.router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func (svc *APIService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	svc.router.ServeHTTP(w, r)
}

func NewAPIService(cfg *config.Config, store store.Store, m *metrics.Metrics) (*APIService, error) {
	policy, err := cfg.RatingPolicy()
	if err != nil {
		return nil, err
	}
	scorer, err := rating.NewScorer(policy)
	if err != nil {
		return nil, fmt.Errorf("rating.NewScorer: %w", err)
	}

	svc := &APIService{router: echo.New()}

	svc.router.HideBanner = true
	svc.router.HidePort = true
	svc.router.Logger.SetLevel(gommonLevel(cfg.Log.Level))
	svc.router.JSONSerializer = NewJSONSerializer()
	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.HTTPErrorHandler = httpErrorHandler

	svc.router.Use(middleware.Recover())
	svc.router.Use(middleware.RequestID())
	svc.router.Use(requestLogger())
	if len(cfg.Server.AllowOrigins) > 0 {
		svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.Server.AllowOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost},
			AllowHeaders: []string{echo.HeaderContentType, echo.HeaderXRequestID},
		}))
	}

	svc.ledgerService = ledger.NewLedgerService(store)
	svc.projectionService = projection.NewProjectionService(svc.ledgerService, scorer, projection.Config{
		ReportingCurrency: cfg.Engine.ReportingCurrency,
		HorizonStartYear:  cfg.Engine.HorizonStartYear,
	}, m)
	svc.marketService = market.NewMarketService(store, nil, cfg.Market.MaxRetries, m)

	if m != nil {
		svc.router.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{
			EnableOpenMetrics: true,
		})))
	}
	svc.router.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	api := svc.router.Group("/api/v1")
	cntrl := controller.NewController(svc.projectionService, svc.ledgerService, svc.marketService, cfg.Market.URL)

	org := api.Group("/organizations/:org_id", withOrganization)
	org.GET("/harvest-years", cntrl.GetHarvestYears)
	org.GET("/financial-statements", cntrl.GetFinancialStatements)
	org.GET("/debt-positions", cntrl.GetDebtPositions)
	org.GET("/indicators", cntrl.GetIndicators)
	org.GET("/rating", cntrl.GetRating)
	org.GET("/report", cntrl.GetReport)
	org.POST("/planted-areas", cntrl.RecordPlantedArea)
	org.POST("/market/backfill", cntrl.BackfillMarket)

	logger.Debugf(context.Background(), "api routes registered: %d", len(svc.router.Routes()))

	return svc, nil
}

func gommonLevel(level string) log.Lvl {
	switch level {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}
