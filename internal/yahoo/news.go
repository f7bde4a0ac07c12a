package yahoo

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

// NewsItem is one article from the finance search endpoint.
type NewsItem struct {
	UUID           string    `json:"uuid"`
	Title          string    `json:"title"`
	Publisher      string    `json:"publisher"`
	Link           string    `json:"link"`
	PublishedAt    time.Time `json:"publishedAt"`
	Type           string    `json:"type"`
	RelatedTickers []string  `json:"relatedTickers"`
}

// News fetches recent news for a search query (typically a ticker symbol).
func (c *Client) News(ctx context.Context, query string, count int) ([]NewsItem, error) {
	var env struct {
		News []struct {
			UUID                string   `json:"uuid"`
			Title               string   `json:"title"`
			Publisher           string   `json:"publisher"`
			Link                string   `json:"link"`
			ProviderPublishTime int64    `json:"providerPublishTime"`
			Type                string   `json:"type"`
			RelatedTickers      []string `json:"relatedTickers"`
		} `json:"news"`
	}

	params := url.Values{
		"q":           {query},
		"newsCount":   {strconv.Itoa(count)},
		"quotesCount": {"0"},
	}
	if err := c.getJSON(ctx, "/v1/finance/search", params, false, &env); err != nil {
		return nil, err
	}

	items := make([]NewsItem, 0, len(env.News))
	for _, n := range env.News {
		items = append(items, NewsItem{
			UUID:           n.UUID,
			Title:          n.Title,
			Publisher:      n.Publisher,
			Link:           n.Link,
			PublishedAt:    time.Unix(n.ProviderPublishTime, 0).UTC(),
			Type:           n.Type,
			RelatedTickers: n.RelatedTickers,
		})
	}
	if len(items) > count {
		items = items[:count]
	}
	return items, nil
}
