package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Bar is one OHLCV row of historical price data.
type Bar struct {
	Timestamp time.Time `json:"date"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
}

// History is the chart endpoint's answer for one symbol.
type History struct {
	Symbol   string `json:"symbol"`
	Currency string `json:"currency"`
	Period   string `json:"period"`
	Interval string `json:"interval"`
	Bars     []Bar  `json:"bars"`
}

// History fetches historical OHLCV data. Rows where Yahoo reports no close
// (halted or partial intervals) are skipped.
func (c *Client) History(ctx context.Context, symbol, period, interval string) (*History, error) {
	var env struct {
		Chart struct {
			Result []struct {
				Meta struct {
					Currency string `json:"currency"`
					Symbol   string `json:"symbol"`
				} `json:"meta"`
				Timestamp  []int64 `json:"timestamp"`
				Indicators struct {
					Quote []struct {
						Open   []*float64 `json:"open"`
						High   []*float64 `json:"high"`
						Low    []*float64 `json:"low"`
						Close  []*float64 `json:"close"`
						Volume []*int64   `json:"volume"`
					} `json:"quote"`
				} `json:"indicators"`
			} `json:"result"`
			Error *apiError `json:"error"`
		} `json:"chart"`
	}

	params := url.Values{
		"range":    {period},
		"interval": {interval},
		"events":   {"div,splits"},
	}
	path := "/v8/finance/chart/" + url.PathEscape(symbol)
	if err := c.getJSON(ctx, path, params, false, &env); err != nil {
		return nil, err
	}
	if env.Chart.Error != nil {
		return nil, env.Chart.Error.wrap()
	}
	if len(env.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: no chart data for %s", ErrUpstream, symbol)
	}

	res := env.Chart.Result[0]
	hist := &History{
		Symbol:   res.Meta.Symbol,
		Currency: res.Meta.Currency,
		Period:   period,
		Interval: interval,
	}
	if len(res.Indicators.Quote) == 0 {
		return hist, nil
	}
	q := res.Indicators.Quote[0]
	for i, ts := range res.Timestamp {
		if i >= len(q.Close) || q.Close[i] == nil {
			continue
		}
		bar := Bar{Timestamp: time.Unix(ts, 0).UTC(), Close: *q.Close[i]}
		if i < len(q.Open) && q.Open[i] != nil {
			bar.Open = *q.Open[i]
		}
		if i < len(q.High) && q.High[i] != nil {
			bar.High = *q.High[i]
		}
		if i < len(q.Low) && q.Low[i] != nil {
			bar.Low = *q.Low[i]
		}
		if i < len(q.Volume) && q.Volume[i] != nil {
			bar.Volume = *q.Volume[i]
		}
		hist.Bars = append(hist.Bars, bar)
	}
	return hist, nil
}
