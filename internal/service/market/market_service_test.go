package market

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ougirez/agrorating/internal/domain"
	"github.com/ougirez/agrorating/internal/pkg/metrics"
	"github.com/ougirez/agrorating/internal/pkg/store/storetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quotesPage = `<html><body>
<table id="quotes">
  <thead><tr><th>Produto</th><th>Preço</th></tr></thead>
  <tbody>
    <tr data-kind="commodity" data-code="SOYBEAN_RAINFED">
      <th><a href="/quotes/soja">Soja</a></th>
      <td class="price">R$ 135,50</td><td class="currency">BRL</td><td class="unit">sc</td>
    </tr>
    <tr data-kind="commodity">
      <th>Milho</th>
      <td class="price">62,10</td><td class="currency">BRL</td><td class="unit">sc</td>
    </tr>
    <tr data-kind="currency" data-code="usd">
      <th><a href="quotes/usd">Dólar</a></th>
      <td class="price">5,70</td><td class="currency">BRL</td>
    </tr>
    <tr data-kind="commodity">
      <th>Café arábica</th>
      <td class="price">1.450,00</td><td class="currency">BRL</td>
    </tr>
  </tbody>
</table>
</body></html>`

const soyPage = `<table class="projections"><tbody>
  <tr><th>2024/25</th><td class="price">130,00</td><td class="unit">sc</td></tr>
  <tr><th>2025/26</th><td class="price">128,40</td><td class="unit">sc</td></tr>
  <tr><th>2030/31</th><td class="price">140,00</td><td class="unit">sc</td></tr>
</tbody></table>`

const usdPage = `<table class="projections"><tbody>
  <tr><th>2024 / 25</th><td class="price">5,65</td></tr>
</tbody></table>`

func newQuotesServer(t *testing.T, soyFailures int32) (*httptest.Server, *int32) {
	t.Helper()

	var soyCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/quotes", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, quotesPage)
	})
	mux.HandleFunc("/quotes/soja", func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&soyCalls, 1) <= soyFailures {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, soyPage)
	})
	mux.HandleFunc("/quotes/usd", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, usdPage)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &soyCalls
}

type market struct {
	org   uuid.UUID
	y2024 domain.HarvestYear
	y2025 domain.HarvestYear
	store *storetest.Store
}

func newMarket() market {
	m := market{org: uuid.New()}
	m.y2024 = domain.HarvestYear{ID: uuid.New(), OrganizationID: m.org, Label: "2024/25", StartYear: 2024}
	m.y2025 = domain.HarvestYear{ID: uuid.New(), OrganizationID: m.org, Label: "2025/26", StartYear: 2025}
	m.store = &storetest.Store{HarvestYears: []domain.HarvestYear{m.y2024, m.y2025}}
	return m
}

func newTestService(st *storetest.Store, m *metrics.Metrics) *Service {
	s := NewMarketService(st, nil, 3, m)
	s.retryDelay = time.Millisecond
	return s
}

func TestBackfill(t *testing.T) {
	srv, soyCalls := newQuotesServer(t, 2)
	m := newMarket()

	res, err := newTestService(m.store, metrics.New()).Backfill(context.Background(), m.org, srv.URL+"/quotes")
	require.NoError(t, err)

	assert.Equal(t, 2, res.Prices)
	assert.Equal(t, 1, res.Rates)
	assert.Equal(t, []string{"Café arábica"}, res.Skipped)
	assert.Equal(t, int32(3), atomic.LoadInt32(soyCalls))

	prices := make(map[domain.CommodityKey]domain.CommodityPrice)
	for _, p := range m.store.Prices {
		prices[p.CommodityKey] = p
	}
	require.Contains(t, prices, domain.CommoditySoybeanRainfed)
	require.Contains(t, prices, domain.CommodityCorn)

	soy := prices[domain.CommoditySoybeanRainfed]
	assert.Equal(t, m.org, soy.OrganizationID)
	assert.Equal(t, "BRL", soy.Currency)
	assert.True(t, soy.CurrentPrice.Decimal.Equal(decimal.RequireFromString("135.50")))
	assert.Len(t, soy.Prices, 2)
	assert.True(t, soy.Prices.Get(m.y2024.ID).Equal(decimal.RequireFromString("130")))
	assert.True(t, soy.Prices.Get(m.y2025.ID).Equal(decimal.RequireFromString("128.4")))

	assert.Empty(t, prices[domain.CommodityCorn].Prices)

	require.Len(t, m.store.ExchangeRates, 1)
	usd := m.store.ExchangeRates[0]
	assert.Equal(t, "USD", usd.Currency)
	assert.Equal(t, "BRL", usd.QuoteCurrency)
	assert.True(t, usd.CurrentRate.Decimal.Equal(decimal.RequireFromString("5.7")))
	assert.True(t, usd.Rates.Get(m.y2024.ID).Equal(decimal.RequireFromString("5.65")))
}

func TestBackfill_MergesIntoExistingPrice(t *testing.T) {
	srv, _ := newQuotesServer(t, 0)
	m := newMarket()
	m.store.Prices = []domain.CommodityPrice{{
		ID:             uuid.New(),
		OrganizationID: m.org,
		CommodityKey:   domain.CommoditySoybeanRainfed,
		Currency:       "BRL",
		Prices:         domain.YearValues{m.y2025.ID: decimal.NewFromInt(999)},
	}}

	_, err := newTestService(m.store, nil).Backfill(context.Background(), m.org, srv.URL+"/quotes")
	require.NoError(t, err)

	require.Len(t, m.store.Prices, 2)
	soy := m.store.Prices[0]
	assert.True(t, soy.Prices.Get(m.y2025.ID).Equal(decimal.RequireFromString("128.4")))
	assert.True(t, soy.Prices.Get(m.y2024.ID).Equal(decimal.RequireFromString("130")))
}

func TestBackfill_DetailPageKeepsFailing(t *testing.T) {
	srv, soyCalls := newQuotesServer(t, 100)
	m := newMarket()

	_, err := newTestService(m.store, nil).Backfill(context.Background(), m.org, srv.URL+"/quotes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Equal(t, int32(4), atomic.LoadInt32(soyCalls))
}

func TestBackfill_NotFoundIsNotRetried(t *testing.T) {
	srv, _ := newQuotesServer(t, 0)
	m := newMarket()

	_, err := newTestService(m.store, nil).Backfill(context.Background(), m.org, srv.URL+"/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Empty(t, m.store.Prices)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "135,50", want: "135.5"},
		{in: "R$ 1.450,00", want: "1450"},
		{in: "5.70", want: "5.7"},
		{in: " -2,5 ", want: "-2.5"},
		{in: "1 234,5", want: "1234.5"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseNumber(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}

	_, err := parseNumber("n/d")
	assert.Error(t, err)
}
