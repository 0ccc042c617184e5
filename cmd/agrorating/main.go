package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ougirez/agrorating/internal/config"
	"github.com/ougirez/agrorating/internal/pkg/logger"
	"github.com/ougirez/agrorating/internal/pkg/metrics"
	"github.com/ougirez/agrorating/internal/pkg/store"
	"github.com/ougirez/agrorating/internal/pkg/store/xpgx"
	"github.com/ougirez/agrorating/internal/rating"
	"github.com/ougirez/agrorating/internal/service/ledger"
	"github.com/ougirez/agrorating/internal/service/projection"
	"github.com/spf13/cobra"
)

type app struct {
	configPath string
	cfg        *config.Config
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "agrorating",
		Short:         "Farm financial projections and credit rating",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			logger.Sync()
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file path (AGRO_* variables only when empty)")

	cmd.AddCommand(
		newServeCommand(a),
		newRateCommand(a),
		newBackfillCommand(a),
		newMigrateCommand(a),
	)

	return cmd
}

func (a *app) init() error {
	var err error
	if a.configPath == "" {
		a.cfg, err = config.LoadFromEnv()
	} else {
		a.cfg, err = config.Load(a.configPath)
	}
	if err != nil {
		return err
	}

	return logger.Init(a.cfg.Log.Level, a.cfg.Log.Format)
}

func (a *app) openPool(ctx context.Context) (xpgx.Pool, error) {
	if a.cfg.Database.DSN == "" {
		return nil, fmt.Errorf("database.dsn is not set")
	}

	pool, err := xpgx.NewPool(ctx, a.cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("xpgx.NewPool: %w", err)
	}
	return pool, nil
}

// openStore connects to postgres. The returned func closes the pool.
func (a *app) openStore(ctx context.Context) (store.Store, func(), error) {
	pool, err := a.openPool(ctx)
	if err != nil {
		return nil, nil, err
	}

	return store.NewStore(pool, store.WithRetry(a.cfg.Store.MaxRetries, a.cfg.Store.RetryDelay)), pool.Close, nil
}

func (a *app) projectionService(st store.Store, m *metrics.Metrics) (*projection.Service, error) {
	policy, err := a.cfg.RatingPolicy()
	if err != nil {
		return nil, err
	}
	scorer, err := rating.NewScorer(policy)
	if err != nil {
		return nil, fmt.Errorf("rating.NewScorer: %w", err)
	}

	return projection.NewProjectionService(ledger.NewLedgerService(st), scorer, projection.Config{
		ReportingCurrency: a.cfg.Engine.ReportingCurrency,
		HorizonStartYear:  a.cfg.Engine.HorizonStartYear,
	}, m), nil
}
