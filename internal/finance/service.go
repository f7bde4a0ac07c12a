// Package finance implements the tool's actions on top of the request
// cache and the Yahoo Finance client. Every operation builds a request
// descriptor with defaults already applied, then goes through the cache,
// so repeated identical tool calls within the freshness window never reach
// upstream twice.
package finance

import (
	"context"
	"errors"
	"time"

	"github.com/johnson-zhang-au/yfinance-mcp/internal/cache"
	"github.com/johnson-zhang-au/yfinance-mcp/internal/logger"
	"github.com/johnson-zhang-au/yfinance-mcp/internal/yahoo"
)

// Validation errors for tool arguments. These are caller mistakes, not
// fetch failures, and never touch the cache.
var (
	ErrMissingSymbol    = errors.New("finance: missing required parameter: symbol or ticker")
	ErrInvalidPeriod    = errors.New("finance: invalid period")
	ErrInvalidInterval  = errors.New("finance: invalid interval")
	ErrInvalidStatement = errors.New("finance: invalid statement type")
	ErrInvalidStmtSpan  = errors.New("finance: statement period must be annual or quarterly")
	ErrInvalidOption    = errors.New("finance: option type must be call or put")
	ErrInvalidDate      = errors.New("finance: expiration date must be YYYY-MM-DD")
	ErrMissingURL       = errors.New("finance: missing required parameter: url")
)

// MarketData is the slice of the Yahoo client the service consumes.
type MarketData interface {
	Quote(ctx context.Context, symbols ...string) ([]yahoo.Quote, error)
	History(ctx context.Context, symbol, period, interval string) (*yahoo.History, error)
	Options(ctx context.Context, symbol string, expiration time.Time) (*yahoo.OptionChain, error)
	Profile(ctx context.Context, symbol string) (*yahoo.CompanyProfile, error)
	Statements(ctx context.Context, symbol, statement, period string) ([]yahoo.Statement, error)
	News(ctx context.Context, query string, count int) ([]yahoo.NewsItem, error)
	Article(ctx context.Context, url string) (*yahoo.Article, error)
}

// Service owns the request cache and the upstream client.
type Service struct {
	store *cache.Store
	data  MarketData
	now   func() time.Time
}

// NewService wires the cache store in front of the market data source.
func NewService(store *cache.Store, data MarketData) *Service {
	return &Service{store: store, data: data, now: time.Now}
}

// cached runs fetch through the request cache under req's canonical key.
func (s *Service) cached(ctx context.Context, req cache.Request, fetch func(context.Context) (any, error)) (any, error) {
	return s.store.FetchOrGet(ctx, req, s.now(), func(ctx context.Context, r cache.Request) (any, error) {
		logger.Infof("fetching upstream for action %v", r["action"])
		return fetch(ctx)
	})
}

var validPeriods = map[string]bool{
	"1d": true, "5d": true, "1mo": true, "3mo": true, "6mo": true,
	"1y": true, "2y": true, "5y": true, "10y": true, "ytd": true, "max": true,
}

var validIntervals = map[string]bool{
	"1m": true, "2m": true, "5m": true, "15m": true, "30m": true,
	"60m": true, "90m": true, "1h": true, "1d": true, "5d": true,
	"1wk": true, "1mo": true, "3mo": true,
}
