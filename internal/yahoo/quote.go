package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Quote is one row of the v7 quote endpoint, trimmed to the fields the
// tool reports.
type Quote struct {
	Symbol        string  `json:"symbol"`
	ShortName     string  `json:"shortName"`
	Currency      string  `json:"currency"`
	Exchange      string  `json:"fullExchangeName"`
	Price         float64 `json:"regularMarketPrice"`
	Change        float64 `json:"regularMarketChange"`
	ChangePercent float64 `json:"regularMarketChangePercent"`
	PreviousClose float64 `json:"regularMarketPreviousClose"`
	Open          float64 `json:"regularMarketOpen"`
	DayHigh       float64 `json:"regularMarketDayHigh"`
	DayLow        float64 `json:"regularMarketDayLow"`
	Volume        int64   `json:"regularMarketVolume"`
	MarketCap     int64   `json:"marketCap"`
}

// Quote fetches current quotes for one or more symbols. Symbols Yahoo does
// not recognize are absent from the result; asking only for unknown
// symbols is an upstream error.
func (c *Client) Quote(ctx context.Context, symbols ...string) ([]Quote, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("%w: no symbols given", ErrUpstream)
	}

	var env struct {
		QuoteResponse struct {
			Result []Quote   `json:"result"`
			Error  *apiError `json:"error"`
		} `json:"quoteResponse"`
	}
	params := url.Values{"symbols": {strings.Join(symbols, ",")}}
	if err := c.getJSON(ctx, "/v7/finance/quote", params, true, &env); err != nil {
		return nil, err
	}
	if env.QuoteResponse.Error != nil {
		return nil, env.QuoteResponse.Error.wrap()
	}
	if len(env.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("%w: no quote data for %s", ErrUpstream, strings.Join(symbols, ","))
	}
	return env.QuoteResponse.Result, nil
}
