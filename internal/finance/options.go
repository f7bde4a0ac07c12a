package finance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/johnson-zhang-au/yfinance-mcp/internal/cache"
	"github.com/johnson-zhang-au/yfinance-mcp/internal/yahoo"
)

// MaxStrikes caps how many contracts of each side an options result
// carries; full chains are too large for an agent turn.
const MaxStrikes = 10

const expirationLayout = "2006-01-02"

// OptionsResult is an options chain filtered to the requested side, or a
// message plus the available expirations when the requested date does not
// trade.
type OptionsResult struct {
	Symbol               string           `json:"symbol"`
	ExpirationDate       string           `json:"expirationDate,omitempty"`
	OptionType           string           `json:"optionType,omitempty"`
	Calls                []yahoo.Contract `json:"calls,omitempty"`
	Puts                 []yahoo.Contract `json:"puts,omitempty"`
	AvailableExpirations []string         `json:"availableExpirations,omitempty"`
	Message              string           `json:"message,omitempty"`
}

// Options returns the option chain for a symbol. optionType filters to
// "call" or "put" (empty returns both). An empty expirationDate selects
// the first date Yahoo lists; an unavailable date yields a result that
// reports the valid choices instead of an error.
func (s *Service) Options(ctx context.Context, symbol, optionType, expirationDate string) (*OptionsResult, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, ErrMissingSymbol
	}
	if optionType != "" && optionType != "call" && optionType != "put" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOption, optionType)
	}
	var expiration time.Time
	if expirationDate != "" {
		var err error
		expiration, err = time.Parse(expirationLayout, expirationDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, expirationDate)
		}
	}

	req := cache.Request{
		"action":         "options",
		"symbol":         symbol,
		"optionType":     optionType,
		"expirationDate": expirationDate,
	}
	v, err := s.cached(ctx, req, func(ctx context.Context) (any, error) {
		chain, err := s.data.Options(ctx, symbol, time.Time{})
		if err != nil {
			return nil, err
		}
		if len(chain.Expirations) == 0 {
			return &OptionsResult{
				Symbol:  symbol,
				Message: "No options data available for this ticker",
			}, nil
		}

		available := make([]string, len(chain.Expirations))
		for i, exp := range chain.Expirations {
			available[i] = exp.Format(expirationLayout)
		}

		if expiration.IsZero() {
			expiration = chain.Expirations[0]
		} else if !containsDate(chain.Expirations, expiration) {
			return &OptionsResult{
				Symbol:               symbol,
				AvailableExpirations: available,
				Message: fmt.Sprintf("Expiration date %s not available. Please choose from available dates.",
					expirationDate),
			}, nil
		}

		// The initial fetch already holds the chain for the first date.
		if !expiration.Equal(chain.Expirations[0]) {
			chain, err = s.data.Options(ctx, symbol, expiration)
			if err != nil {
				return nil, err
			}
		}

		res := &OptionsResult{
			Symbol:         symbol,
			ExpirationDate: expiration.Format(expirationLayout),
			OptionType:     optionType,
		}
		switch optionType {
		case "call":
			res.Calls = capStrikes(chain.Calls)
		case "put":
			res.Puts = capStrikes(chain.Puts)
		default:
			res.Calls = capStrikes(chain.Calls)
			res.Puts = capStrikes(chain.Puts)
		}
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*OptionsResult), nil
}

func capStrikes(contracts []yahoo.Contract) []yahoo.Contract {
	if len(contracts) > MaxStrikes {
		return contracts[:MaxStrikes]
	}
	return contracts
}

func containsDate(dates []time.Time, want time.Time) bool {
	for _, d := range dates {
		if d.Year() == want.Year() && d.YearDay() == want.YearDay() {
			return true
		}
	}
	return false
}
