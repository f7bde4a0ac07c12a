package finance

import (
	"context"
	"time"

	"github.com/johnson-zhang-au/yfinance-mcp/internal/cache"
	"github.com/johnson-zhang-au/yfinance-mcp/internal/yahoo"
)

// DefaultIndices is used when the caller does not name any: S&P 500, Dow
// Jones, NASDAQ.
var DefaultIndices = []string{"^GSPC", "^DJI", "^IXIC"}

// indexNames maps index symbols to display names; quotes for indices often
// carry terse short names.
var indexNames = map[string]string{
	"^GSPC": "S&P 500",
	"^DJI":  "Dow Jones Industrial Average",
	"^IXIC": "NASDAQ Composite",
	"^RUT":  "Russell 2000",
	"^VIX":  "CBOE Volatility Index",
	"^FTSE": "FTSE 100",
	"^N225": "Nikkei 225",
	"^HSI":  "Hang Seng Index",
}

// IndexQuote is a market index quote with its display name resolved.
type IndexQuote struct {
	yahoo.Quote
	Name string `json:"name"`
}

// IndicesResult holds quotes for a set of market indices.
type IndicesResult struct {
	Indices     []IndexQuote `json:"indices"`
	RetrievedAt time.Time    `json:"timestamp"`
}

// Indices returns current data for the given market indices, defaulting to
// the S&P 500, Dow Jones and NASDAQ.
func (s *Service) Indices(ctx context.Context, indices []string) (*IndicesResult, error) {
	if len(indices) == 0 {
		indices = DefaultIndices
	}

	req := cache.Request{"action": "market_indices", "indices": indices}
	v, err := s.cached(ctx, req, func(ctx context.Context) (any, error) {
		quotes, err := s.data.Quote(ctx, indices...)
		if err != nil {
			return nil, err
		}
		res := &IndicesResult{RetrievedAt: time.Now().UTC()}
		for _, q := range quotes {
			name := indexNames[q.Symbol]
			if name == "" {
				name = q.ShortName
			}
			if name == "" {
				name = q.Symbol
			}
			res.Indices = append(res.Indices, IndexQuote{Quote: q, Name: name})
		}
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*IndicesResult), nil
}
