package finance

import (
	"context"
	"strings"

	"github.com/johnson-zhang-au/yfinance-mcp/internal/cache"
	"github.com/johnson-zhang-au/yfinance-mcp/internal/yahoo"
)

// Info returns company information for a symbol.
func (s *Service) Info(ctx context.Context, symbol string) (*yahoo.CompanyProfile, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, ErrMissingSymbol
	}

	req := cache.Request{"action": "info", "symbol": symbol}
	v, err := s.cached(ctx, req, func(ctx context.Context) (any, error) {
		return s.data.Profile(ctx, symbol)
	})
	if err != nil {
		return nil, err
	}
	return v.(*yahoo.CompanyProfile), nil
}
