package tools

import (
	"context"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnson-zhang-au/yfinance-mcp/internal/cache"
	"github.com/johnson-zhang-au/yfinance-mcp/internal/finance"
	"github.com/johnson-zhang-au/yfinance-mcp/internal/yahoo"
)

// stubData serves canned quotes and counts upstream calls.
type stubData struct {
	quoteCalls int
}

func (d *stubData) Quote(ctx context.Context, symbols ...string) ([]yahoo.Quote, error) {
	d.quoteCalls++
	quotes := make([]yahoo.Quote, len(symbols))
	for i, sym := range symbols {
		quotes[i] = yahoo.Quote{Symbol: sym, ShortName: "Apple Inc.", Currency: "USD", Price: 232.5}
	}
	return quotes, nil
}

func (d *stubData) History(ctx context.Context, symbol, period, interval string) (*yahoo.History, error) {
	return &yahoo.History{Symbol: symbol, Period: period, Interval: interval}, nil
}

func (d *stubData) Options(ctx context.Context, symbol string, expiration time.Time) (*yahoo.OptionChain, error) {
	return &yahoo.OptionChain{Symbol: symbol}, nil
}

func (d *stubData) Profile(ctx context.Context, symbol string) (*yahoo.CompanyProfile, error) {
	return &yahoo.CompanyProfile{Symbol: symbol}, nil
}

func (d *stubData) Statements(ctx context.Context, symbol, statement, period string) ([]yahoo.Statement, error) {
	return nil, nil
}

func (d *stubData) News(ctx context.Context, query string, count int) ([]yahoo.NewsItem, error) {
	return nil, nil
}

func (d *stubData) Article(ctx context.Context, url string) (*yahoo.Article, error) {
	return &yahoo.Article{URL: url}, nil
}

func newStubService(t *testing.T) (*finance.Service, *stubData) {
	t.Helper()
	store, err := cache.New(5 * time.Minute)
	require.NoError(t, err)
	data := &stubData{}
	return finance.NewService(store, data), data
}

func callWith(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.False(t, res.IsError)
	require.NotEmpty(t, res.Content)
	text, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok)
	return text.Text
}

func TestQuoteHandlerAcceptsTickerAlias(t *testing.T) {
	svc, data := newStubService(t)
	handler := QuoteHandler(svc)

	res, err := handler(context.Background(), callWith(map[string]any{"ticker": "AAPL"}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "Apple Inc. (AAPL)")
	assert.Equal(t, 1, data.quoteCalls)
}

func TestQuoteHandlerAliasSharesCacheEntry(t *testing.T) {
	svc, data := newStubService(t)
	handler := QuoteHandler(svc)

	first, err := handler(context.Background(), callWith(map[string]any{"symbol": "AAPL"}))
	require.NoError(t, err)
	second, err := handler(context.Background(), callWith(map[string]any{"ticker": "AAPL"}))
	require.NoError(t, err)

	assert.Equal(t, resultText(t, first), resultText(t, second))
	assert.Equal(t, 1, data.quoteCalls)
}

func TestQuoteHandlerMissingSymbol(t *testing.T) {
	svc, _ := newStubService(t)
	handler := QuoteHandler(svc)

	res, err := handler(context.Background(), callWith(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
