package market

import (
	"context"
	"fmt"
	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/ougirez/agrorating/internal/domain"
	"github.com/ougirez/agrorating/internal/domain/dto"
	"github.com/ougirez/agrorating/internal/pkg/logger"
	"github.com/ougirez/agrorating/internal/pkg/metrics"
	"github.com/ougirez/agrorating/internal/pkg/store"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const defaultRetryDelay = 100 * time.Millisecond

type Service struct {
	store      store.Store
	client     *http.Client
	maxRetries uint64
	retryDelay time.Duration
	metrics    *metrics.Metrics
}

func NewMarketService(store store.Store, client *http.Client, maxRetries uint64, m *metrics.Metrics) *Service {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Service{
		store:      store,
		client:     client,
		maxRetries: maxRetries,
		retryDelay: defaultRetryDelay,
		metrics:    m,
	}
}

// Backfill reads the quotes page at mainURL and every linked detail page, then
// writes current prices and rates plus the per-harvest projections whose label
// matches one of the organization's harvest years.
func (s *Service) Backfill(ctx context.Context, organizationID uuid.UUID, mainURL string) (*dto.BackfillResult, error) {
	years, err := s.store.ListHarvestYears(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("store.ListHarvestYears, organization-%s: %w", organizationID, err)
	}
	yearByLabel := make(map[string]uuid.UUID, len(years))
	for _, y := range years {
		yearByLabel[normalizeLabel(y.Label)] = y.ID
	}

	base, err := url.Parse(mainURL)
	if err != nil {
		return nil, fmt.Errorf("url.Parse, url-%s: %w", mainURL, err)
	}

	doc, err := s.fetchDocument(ctx, mainURL)
	if err != nil {
		return nil, fmt.Errorf("fetchDocument, url-%s: %w", mainURL, err)
	}

	sheet := dto.NewQuoteSheet()
	res := &dto.BackfillResult{}
	resMx := sync.Mutex{}

	doc.Find("table#quotes tbody tr").Each(func(_ int, tr *goquery.Selection) {
		quote, ok := parseQuoteRow(tr, sheet)
		if !ok {
			resMx.Lock()
			res.Skipped = append(res.Skipped, strings.TrimSpace(tr.Find("th").Text()))
			resMx.Unlock()
			return
		}

		if href, ok := tr.Find("th a").Attr("href"); ok {
			if ref, parseErr := url.Parse(href); parseErr == nil {
				quote.DetailURL = base.ResolveReference(ref).String()
			}
		}
	})

	eg, egCtx := errgroup.WithContext(ctx)
	for _, quote := range sheet.Quotes() {
		quote := quote
		eg.Go(func() error {
			if quote.DetailURL != "" {
				if err := s.fillProjections(egCtx, quote); err != nil {
					return fmt.Errorf("fillProjections, code-%s: %w", quote.Code, err)
				}
			}

			values := make(domain.YearValues, len(quote.Projections))
			for label, v := range quote.Projections {
				if id, ok := yearByLabel[normalizeLabel(label)]; ok {
					values[id] = v
				}
			}

			switch quote.Kind {
			case dto.QuoteCommodity:
				price := &domain.CommodityPrice{
					OrganizationID: organizationID,
					CommodityKey:   domain.CommodityKey(quote.Code),
					Currency:       quote.Currency,
					Unit:           quote.Unit,
					Prices:         values,
					CurrentPrice:   quote.Current,
				}
				if err := s.store.UpsertCommodityPrice(egCtx, price); err != nil {
					return fmt.Errorf("store.UpsertCommodityPrice, commodity-%s: %w", quote.Code, err)
				}
			case dto.QuoteCurrency:
				rate := &domain.ExchangeRate{
					OrganizationID: organizationID,
					Currency:       quote.Code,
					QuoteCurrency:  quote.Currency,
					Rates:          values,
					CurrentRate:    quote.Current,
				}
				if err := s.store.UpsertExchangeRate(egCtx, rate); err != nil {
					return fmt.Errorf("store.UpsertExchangeRate, currency-%s: %w", quote.Code, err)
				}
			}

			logger.Debugf(ctx, "backfilled %s %s with %d projections", quote.Kind, quote.Code, len(values))

			resMx.Lock()
			defer resMx.Unlock()
			if quote.Kind == dto.QuoteCommodity {
				res.Prices++
			} else {
				res.Rates++
			}
			return nil
		})
	}

	if err = eg.Wait(); err != nil {
		return nil, fmt.Errorf("err in goroutine: %w", err)
	}

	s.metrics.AddMarketQuotes("price", res.Prices)
	s.metrics.AddMarketQuotes("rate", res.Rates)
	logger.Infof(ctx, "market backfill: %d prices, %d rates, %d skipped", res.Prices, res.Rates, len(res.Skipped))

	return res, nil
}

// parseQuoteRow reads one row of the main table into the sheet. Rows with an
// unknown commodity or an unreadable price are skipped.
func parseQuoteRow(tr *goquery.Selection, sheet *dto.QuoteSheet) (*dto.MarketQuote, bool) {
	kind := dto.QuoteKind(strings.ToLower(strings.TrimSpace(tr.AttrOr("data-kind", ""))))
	name := strings.TrimSpace(tr.Find("th").Text())
	code := strings.ToUpper(strings.TrimSpace(tr.AttrOr("data-code", "")))

	switch kind {
	case dto.QuoteCommodity:
		key := domain.CommodityKey(code)
		if !key.Valid() {
			key = domain.DeriveCommodityKey(name, name, "")
		}
		if !key.Valid() {
			return nil, false
		}
		code = string(key)
	case dto.QuoteCurrency:
		if code == "" {
			return nil, false
		}
	default:
		return nil, false
	}

	current, err := parseNumber(tr.Find("td.price").Text())
	if err != nil {
		return nil, false
	}

	quote := sheet.GetQuote(kind, code)
	quote.Name = name
	quote.Currency = strings.ToUpper(strings.TrimSpace(tr.Find("td.currency").Text()))
	quote.Unit = strings.TrimSpace(tr.Find("td.unit").Text())
	quote.Current = decimal.NewNullDecimal(current)

	return quote, true
}

func (s *Service) fillProjections(ctx context.Context, quote *dto.MarketQuote) error {
	doc, err := s.fetchDocument(ctx, quote.DetailURL)
	if err != nil {
		return err
	}

	doc.Find("table.projections tbody tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		label := strings.TrimSpace(tr.Find("th").Text())
		if label == "" {
			return true
		}

		val, parseErr := parseNumber(tr.Find("td.price").Text())
		if parseErr != nil {
			err = fmt.Errorf("failed to parse projection, harvest-%s: %w", label, parseErr)
			return false
		}

		putErr := quote.PutProjection(label, val, strings.TrimSpace(tr.Find("td.unit").Text()))
		if putErr != nil {
			err = fmt.Errorf("quote.PutProjection, harvest-%s: %w", label, putErr)
			return false
		}

		return true
	})

	return err
}

// fetchDocument GETs a page, retrying transport errors and 5xx answers.
func (s *Service) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	var doc *goquery.Document

	err := backoff.Retry(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
			if err != nil {
				return backoff.Permanent(err)
			}

			resp, err := s.client.Do(req)
			if err != nil {
				if ctx.Err() != nil {
					return backoff.Permanent(ctx.Err())
				}
				return fmt.Errorf("http.Get: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				statusErr := fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status)
				if resp.StatusCode < http.StatusInternalServerError && resp.StatusCode != http.StatusTooManyRequests {
					return backoff.Permanent(statusErr)
				}
				return statusErr
			}

			doc, err = goquery.NewDocumentFromReader(resp.Body)
			if err != nil {
				return backoff.Permanent(fmt.Errorf("goquery.NewDocumentFromReader: %w", err))
			}

			return nil
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(s.retryDelay), s.maxRetries),
			ctx,
		),
	)
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// parseNumber reads "1.234,56", "1234.56" or "R$ 150,00".
func parseNumber(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)

	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	return decimal.NewFromString(s)
}

func normalizeLabel(label string) string {
	return strings.Join(strings.Fields(label), "")
}
