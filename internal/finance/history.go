package finance

import (
	"context"
	"fmt"
	"strings"

	"github.com/johnson-zhang-au/yfinance-mcp/internal/cache"
	"github.com/johnson-zhang-au/yfinance-mcp/internal/yahoo"
)

const (
	DefaultPeriod   = "1mo"
	DefaultInterval = "1d"
)

// HistoryResult is historical price data with the change over the period
// precomputed.
type HistoryResult struct {
	*yahoo.History
	Name               string   `json:"name"`
	TimeRange          string   `json:"time_range"`
	PriceChange        *float64 `json:"price_change"`
	PriceChangePercent *float64 `json:"price_change_percent"`
}

// History returns OHLCV data for a symbol. Empty period and interval fall
// back to one month of daily bars; defaults are applied before the request
// is canonicalized so explicit and implicit defaults share a cache entry.
func (s *Service) History(ctx context.Context, symbol, period, interval string) (*HistoryResult, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, ErrMissingSymbol
	}
	if period == "" {
		period = DefaultPeriod
	}
	if interval == "" {
		interval = DefaultInterval
	}
	if !validPeriods[period] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}
	if !validIntervals[interval] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidInterval, interval)
	}

	req := cache.Request{
		"action":   "stock_history",
		"symbol":   symbol,
		"period":   period,
		"interval": interval,
	}
	v, err := s.cached(ctx, req, func(ctx context.Context) (any, error) {
		hist, err := s.data.History(ctx, symbol, period, interval)
		if err != nil {
			return nil, err
		}
		res := &HistoryResult{History: hist, Name: symbol}
		if quotes, qerr := s.data.Quote(ctx, symbol); qerr == nil && quotes[0].ShortName != "" {
			res.Name = quotes[0].ShortName
		}
		annotate(res)
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*HistoryResult), nil
}

// annotate fills the derived fields from the bar data.
func annotate(res *HistoryResult) {
	bars := res.Bars
	if len(bars) == 0 {
		return
	}
	first := bars[0]
	last := bars[len(bars)-1]
	res.TimeRange = fmt.Sprintf("%s to %s",
		first.Timestamp.Format("01/02/2006"),
		last.Timestamp.Format("01/02/2006"))

	change := last.Close - first.Close
	res.PriceChange = &change
	if first.Close > 0 {
		pct := change / first.Close * 100
		res.PriceChangePercent = &pct
	}
}
