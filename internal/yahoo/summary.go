package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
)

// CompanyProfile combines the assetProfile and price quoteSummary modules.
type CompanyProfile struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Industry    string `json:"industry"`
	Sector      string `json:"sector"`
	Country     string `json:"country"`
	Website     string `json:"website"`
	Currency    string `json:"currency"`
	Exchange    string `json:"exchange"`
	MarketCap   int64  `json:"marketCap"`
	Employees   int    `json:"employees"`
	Description string `json:"description"`
}

// Statement is one reporting period of a financial statement: every line
// item Yahoo reports, keyed by its camelCase name, in the statement's
// currency units.
type Statement struct {
	EndDate time.Time          `json:"endDate"`
	Items   map[string]float64 `json:"items"`
}

// rawValue is Yahoo's {"raw": n, "fmt": "..."} number wrapper.
type rawValue struct {
	Raw *float64 `json:"raw"`
}

type quoteSummaryEnvelope struct {
	QuoteSummary struct {
		Result []map[string]json.RawMessage `json:"result"`
		Error  *apiError                    `json:"error"`
	} `json:"quoteSummary"`
}

func (c *Client) quoteSummary(ctx context.Context, symbol string, modules []string) (map[string]json.RawMessage, error) {
	var env quoteSummaryEnvelope
	params := url.Values{"modules": {strings.Join(modules, ",")}}
	path := "/v10/finance/quoteSummary/" + url.PathEscape(symbol)
	if err := c.getJSON(ctx, path, params, true, &env); err != nil {
		return nil, err
	}
	if env.QuoteSummary.Error != nil {
		return nil, env.QuoteSummary.Error.wrap()
	}
	if len(env.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("%w: no summary data for %s", ErrUpstream, symbol)
	}
	return env.QuoteSummary.Result[0], nil
}

// Profile fetches company information for symbol.
func (c *Client) Profile(ctx context.Context, symbol string) (*CompanyProfile, error) {
	result, err := c.quoteSummary(ctx, symbol, []string{"assetProfile", "price"})
	if err != nil {
		return nil, err
	}

	profile := &CompanyProfile{Symbol: symbol}
	if raw, ok := result["assetProfile"]; ok {
		var ap struct {
			Industry          string `json:"industry"`
			Sector            string `json:"sector"`
			Country           string `json:"country"`
			Website           string `json:"website"`
			FullTimeEmployees int    `json:"fullTimeEmployees"`
			Summary           string `json:"longBusinessSummary"`
		}
		if err := json.Unmarshal(raw, &ap); err == nil {
			profile.Industry = ap.Industry
			profile.Sector = ap.Sector
			profile.Country = ap.Country
			profile.Website = ap.Website
			profile.Employees = ap.FullTimeEmployees
			profile.Description = ap.Summary
		}
	}
	if raw, ok := result["price"]; ok {
		var p struct {
			ShortName    string   `json:"shortName"`
			Currency     string   `json:"currency"`
			ExchangeName string   `json:"exchangeName"`
			MarketCap    rawValue `json:"marketCap"`
		}
		if err := json.Unmarshal(raw, &p); err == nil {
			profile.Name = p.ShortName
			profile.Currency = p.Currency
			profile.Exchange = p.ExchangeName
			if p.MarketCap.Raw != nil {
				profile.MarketCap = int64(*p.MarketCap.Raw)
			}
		}
	}
	return profile, nil
}

// Statement module names by statement type and period.
var statementModules = map[string]map[string]string{
	"income":  {"annual": "incomeStatementHistory", "quarterly": "incomeStatementHistoryQuarterly"},
	"balance": {"annual": "balanceSheetHistory", "quarterly": "balanceSheetHistoryQuarterly"},
	"cash":    {"annual": "cashflowStatementHistory", "quarterly": "cashflowStatementHistoryQuarterly"},
}

// Statements fetches one kind of financial statement ("income", "balance"
// or "cash") for the given period ("annual" or "quarterly"), newest first.
func (c *Client) Statements(ctx context.Context, symbol, statement, period string) ([]Statement, error) {
	periods, ok := statementModules[statement]
	if !ok {
		return nil, fmt.Errorf("%w: unknown statement type %q", ErrUpstream, statement)
	}
	module, ok := periods[period]
	if !ok {
		return nil, fmt.Errorf("%w: unknown statement period %q", ErrUpstream, period)
	}

	result, err := c.quoteSummary(ctx, symbol, []string{module})
	if err != nil {
		return nil, err
	}
	raw, ok := result[module]
	if !ok {
		return nil, nil
	}

	// The module wraps the statement list under a key that varies with the
	// module name, so pick whichever inner field is an array.
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrUpstream, module, err)
	}
	var rows []map[string]json.RawMessage
	for _, inner := range wrapper {
		if len(inner) > 0 && inner[0] == '[' {
			if err := json.Unmarshal(inner, &rows); err != nil {
				return nil, fmt.Errorf("%w: decode %s: %v", ErrUpstream, module, err)
			}
			break
		}
	}

	statements := make([]Statement, 0, len(rows))
	for _, row := range rows {
		st := Statement{Items: make(map[string]float64)}
		for name, val := range row {
			var rv rawValue
			if err := json.Unmarshal(val, &rv); err != nil || rv.Raw == nil {
				continue
			}
			if name == "endDate" {
				st.EndDate = time.Unix(int64(*rv.Raw), 0).UTC()
				continue
			}
			st.Items[name] = *rv.Raw
		}
		if st.EndDate.IsZero() && len(st.Items) == 0 {
			continue
		}
		statements = append(statements, st)
	}
	sort.Slice(statements, func(i, j int) bool {
		return statements[i].EndDate.After(statements[j].EndDate)
	})
	return statements, nil
}
