package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Contract is a single option contract from the options chain.
type Contract struct {
	ContractSymbol    string  `json:"contractSymbol"`
	Strike            float64 `json:"strike"`
	LastPrice         float64 `json:"lastPrice"`
	Bid               float64 `json:"bid"`
	Ask               float64 `json:"ask"`
	Change            float64 `json:"change"`
	PercentChange     float64 `json:"percentChange"`
	Volume            int64   `json:"volume"`
	OpenInterest      int64   `json:"openInterest"`
	ImpliedVolatility float64 `json:"impliedVolatility"`
}

// OptionChain holds the calls and puts for one expiration, plus all
// expirations Yahoo offers for the symbol.
type OptionChain struct {
	Symbol      string      `json:"symbol"`
	Expirations []time.Time `json:"expirations"`
	Expiration  time.Time   `json:"expiration"`
	Calls       []Contract  `json:"calls"`
	Puts        []Contract  `json:"puts"`
}

// Options fetches the option chain for symbol. A zero expiration selects
// Yahoo's first available date. A non-zero expiration must be one of the
// listed dates; the caller is expected to validate against Expirations.
func (c *Client) Options(ctx context.Context, symbol string, expiration time.Time) (*OptionChain, error) {
	var env struct {
		OptionChain struct {
			Result []struct {
				UnderlyingSymbol string  `json:"underlyingSymbol"`
				ExpirationDates  []int64 `json:"expirationDates"`
				Options          []struct {
					ExpirationDate int64      `json:"expirationDate"`
					Calls          []Contract `json:"calls"`
					Puts           []Contract `json:"puts"`
				} `json:"options"`
			} `json:"result"`
			Error *apiError `json:"error"`
		} `json:"optionChain"`
	}

	params := url.Values{}
	if !expiration.IsZero() {
		params.Set("date", strconv.FormatInt(expiration.UTC().Unix(), 10))
	}
	path := "/v7/finance/options/" + url.PathEscape(symbol)
	if err := c.getJSON(ctx, path, params, true, &env); err != nil {
		return nil, err
	}
	if env.OptionChain.Error != nil {
		return nil, env.OptionChain.Error.wrap()
	}
	if len(env.OptionChain.Result) == 0 {
		return nil, fmt.Errorf("%w: no options data for %s", ErrUpstream, symbol)
	}

	res := env.OptionChain.Result[0]
	chain := &OptionChain{Symbol: res.UnderlyingSymbol}
	for _, ts := range res.ExpirationDates {
		chain.Expirations = append(chain.Expirations, time.Unix(ts, 0).UTC())
	}
	if len(res.Options) > 0 {
		opt := res.Options[0]
		chain.Expiration = time.Unix(opt.ExpirationDate, 0).UTC()
		chain.Calls = opt.Calls
		chain.Puts = opt.Puts
	}
	return chain, nil
}
