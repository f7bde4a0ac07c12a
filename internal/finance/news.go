package finance

import (
	"context"
	"strings"

	"github.com/johnson-zhang-au/yfinance-mcp/internal/cache"
	"github.com/johnson-zhang-au/yfinance-mcp/internal/yahoo"
)

const (
	DefaultNewsCount = 5
	MaxNewsCount     = 10

	// marketNewsProxy stands in for "the market" when no symbol is given.
	marketNewsProxy = "^GSPC"
)

// NewsResult is a batch of recent news articles for a symbol or for the
// general market.
type NewsResult struct {
	Source string           `json:"source"`
	Count  int              `json:"count"`
	Items  []yahoo.NewsItem `json:"news"`
}

// News returns recent news. An empty symbol yields general market news;
// count defaults to 5 and is capped at 10.
func (s *Service) News(ctx context.Context, symbol string, count int) (*NewsResult, error) {
	symbol = strings.TrimSpace(symbol)
	if count <= 0 {
		count = DefaultNewsCount
	}
	if count > MaxNewsCount {
		count = MaxNewsCount
	}

	req := cache.Request{"action": "stock_news", "symbol": symbol, "count": count}
	v, err := s.cached(ctx, req, func(ctx context.Context) (any, error) {
		query := symbol
		source := symbol
		if query == "" {
			query = marketNewsProxy
			source = "General Market News"
		}
		items, err := s.data.News(ctx, query, count)
		if err != nil {
			return nil, err
		}
		if symbol != "" {
			if quotes, qerr := s.data.Quote(ctx, symbol); qerr == nil && quotes[0].ShortName != "" {
				source = quotes[0].ShortName + " (" + symbol + ")"
			}
		}
		return &NewsResult{Source: source, Count: len(items), Items: items}, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*NewsResult), nil
}

// Article returns the readable body of a news article as Markdown.
func (s *Service) Article(ctx context.Context, url string) (*yahoo.Article, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, ErrMissingURL
	}

	req := cache.Request{"action": "read_article", "url": url}
	v, err := s.cached(ctx, req, func(ctx context.Context) (any, error) {
		return s.data.Article(ctx, url)
	})
	if err != nil {
		return nil, err
	}
	return v.(*yahoo.Article), nil
}
