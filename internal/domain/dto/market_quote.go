package dto

import (
	"fmt"
	"github.com/shopspring/decimal"
	"sort"
	"sync"
)

type QuoteKind string

const (
	QuoteCommodity QuoteKind = "commodity"
	QuoteCurrency  QuoteKind = "currency"
)

// MarketQuote is one row of the quotes page plus the per-harvest projections
// found on its detail page, keyed by harvest year label.
type MarketQuote struct {
	Kind        QuoteKind
	Code        string
	Name        string
	Currency    string
	Unit        string
	Current     decimal.NullDecimal
	DetailURL   string
	Projections map[string]decimal.Decimal
	mx          sync.Mutex
}

func (q *MarketQuote) PutProjection(label string, value decimal.Decimal, unit string) error {
	q.mx.Lock()
	defer q.mx.Unlock()

	if unit != "" {
		if q.Unit == "" {
			q.Unit = unit
		} else if q.Unit != unit {
			return fmt.Errorf("different units for one quote: %s and %s", q.Unit, unit)
		}
	}

	if q.Projections == nil {
		q.Projections = make(map[string]decimal.Decimal)
	}
	q.Projections[label] = value
	return nil
}

type QuoteSheet struct {
	quotes   map[string]*MarketQuote
	quotesMx sync.Mutex
}

func NewQuoteSheet() *QuoteSheet {
	return &QuoteSheet{quotes: make(map[string]*MarketQuote)}
}

// GetQuote returns the quote for kind and code, creating it on first use.
func (s *QuoteSheet) GetQuote(kind QuoteKind, code string) *MarketQuote {
	s.quotesMx.Lock()
	defer s.quotesMx.Unlock()

	key := string(kind) + ":" + code
	quote, ok := s.quotes[key]
	if !ok {
		quote = &MarketQuote{Kind: kind, Code: code}
		s.quotes[key] = quote
	}

	return quote
}

// Quotes lists the quotes ordered by kind and code.
func (s *QuoteSheet) Quotes() []*MarketQuote {
	s.quotesMx.Lock()
	defer s.quotesMx.Unlock()

	res := make([]*MarketQuote, 0, len(s.quotes))
	for _, q := range s.quotes {
		res = append(res, q)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Kind != res[j].Kind {
			return res[i].Kind < res[j].Kind
		}
		return res[i].Code < res[j].Code
	})

	return res
}

type BackfillResult struct {
	Prices  int      `json:"prices"`
	Rates   int      `json:"rates"`
	Skipped []string `json:"skipped,omitempty"`
}
