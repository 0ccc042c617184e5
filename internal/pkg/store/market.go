package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ougirez/agrorating/internal/domain"
)

// UpsertCommodityPrice writes the price row of (organization, commodity key).
// Year values already stored are kept unless the new row carries the same year.
func (s *store) UpsertCommodityPrice(ctx context.Context, price *domain.CommodityPrice) error {
	if price.ID == uuid.Nil {
		price.ID = uuid.New()
	}

	prices, err := price.Prices.Value()
	if err != nil {
		return fmt.Errorf("failed to marshal prices: %w", err)
	}

	query := builder().Insert(tableCommodityPrices).
		Columns(commodityPriceColumns...).
		Values(price.ID, price.OrganizationID, price.CommodityKey, price.Currency, price.Unit, prices, price.CurrentPrice).
		Suffix(`
on conflict (organization_id, commodity_key)
do update
set
	currency = excluded.currency,
	unit = excluded.unit,
	prices_by_harvest = commodity_prices.prices_by_harvest || excluded.prices_by_harvest,
	current_price = coalesce(excluded.current_price, commodity_prices.current_price)`)

	if err = s.exec(ctx, query); err != nil {
		return fmt.Errorf("upsert commodity price, key-%s: %w", price.CommodityKey, err)
	}

	return nil
}

func (s *store) UpsertExchangeRate(ctx context.Context, rate *domain.ExchangeRate) error {
	if rate.ID == uuid.Nil {
		rate.ID = uuid.New()
	}

	rates, err := rate.Rates.Value()
	if err != nil {
		return fmt.Errorf("failed to marshal rates: %w", err)
	}

	query := builder().Insert(tableExchangeRates).
		Columns(exchangeRateColumns...).
		Values(rate.ID, rate.OrganizationID, rate.Currency, rate.QuoteCurrency, rates, rate.CurrentRate).
		Suffix(`
on conflict (organization_id, currency, quote_currency)
do update
set
	rates_by_harvest = exchange_rates.rates_by_harvest || excluded.rates_by_harvest,
	current_rate = coalesce(excluded.current_rate, exchange_rates.current_rate)`)

	if err = s.exec(ctx, query); err != nil {
		return fmt.Errorf("upsert exchange rate, pair-%s/%s: %w", rate.Currency, rate.QuoteCurrency, err)
	}

	return nil
}
