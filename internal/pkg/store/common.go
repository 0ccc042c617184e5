package store

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ougirez/agrorating/internal/pkg/constants"
	"github.com/ougirez/agrorating/internal/pkg/store/xpgx"
)

const (
	tableHarvestYears    = "harvest_years"
	tableCultures        = "cultures"
	tableSystems         = "systems"
	tableCycles          = "cycles"
	tableProperties      = "properties"
	tablePlantedAreas    = "planted_areas"
	tableProductivities  = "productivities"
	tableCommodityPrices = "commodity_prices"
	tableExchangeRates   = "exchange_rates"
	tableProductionCosts = "production_costs"
	tableOtherExpenses   = "other_expenses"
	tableDebtInstruments = "debt_instruments"
	tableBalanceItems    = "balance_items"
)

var mapping = map[error]error{pgx.ErrNoRows: constants.ErrDBNotFound}

func wrapErr(err error) error {
	for k, v := range mapping {
		if errors.Is(err, k) {
			return v
		}
	}
	return err
}

// builder возвращает squirrel SQL Builder обьект.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// retry repeats op while the failure looks transient. Statement-level
// postgres errors, missing rows and cancelled contexts are returned at once.
func (s *store) retry(ctx context.Context, op func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.retryDelay

	return backoff.Retry(
		func() error {
			err := op()
			if err == nil {
				return nil
			}
			if isPermanent(ctx, err) {
				return backoff.Permanent(err)
			}
			return err
		},
		backoff.WithContext(backoff.WithMaxRetries(policy, s.maxRetries), ctx),
	)
}

func isPermanent(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr)
}

func listByOrganization[T any](
	ctx context.Context,
	s *store,
	table string,
	columns []string,
	organizationID uuid.UUID,
	orderBy ...string,
) ([]T, error) {
	query := builder().Select(columns...).
		From(table).
		Where(squirrel.Eq{"organization_id": organizationID})
	if len(orderBy) > 0 {
		query = query.OrderBy(orderBy...)
	}

	var selected []T
	err := s.retry(ctx, func() error {
		var selectErr error
		selected, selectErr = xpgx.Selectx[T](ctx, s.pool, query)
		return selectErr
	})
	if err != nil {
		return nil, wrapErr(err)
	}
	if selected == nil {
		selected = []T{}
	}

	return selected, nil
}

func (s *store) exec(ctx context.Context, query squirrel.Sqlizer) error {
	err := s.retry(ctx, func() error {
		_, execErr := s.pool.Execx(ctx, query)
		return execErr
	})
	return wrapErr(err)
}

const (
	defaultMaxRetries = 3
	defaultRetryDelay = 50 * time.Millisecond
)
