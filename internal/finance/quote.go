package finance

import (
	"context"
	"strings"
	"time"

	"github.com/johnson-zhang-au/yfinance-mcp/internal/cache"
	"github.com/johnson-zhang-au/yfinance-mcp/internal/yahoo"
)

// QuoteResult is a current quote plus the moment it was retrieved.
type QuoteResult struct {
	yahoo.Quote
	RetrievedAt time.Time `json:"timestamp"`
}

// Quote returns the current quote for a symbol.
func (s *Service) Quote(ctx context.Context, symbol string) (*QuoteResult, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, ErrMissingSymbol
	}

	req := cache.Request{"action": "quote", "symbol": symbol}
	v, err := s.cached(ctx, req, func(ctx context.Context) (any, error) {
		quotes, err := s.data.Quote(ctx, symbol)
		if err != nil {
			return nil, err
		}
		return &QuoteResult{Quote: quotes[0], RetrievedAt: time.Now().UTC()}, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*QuoteResult), nil
}
