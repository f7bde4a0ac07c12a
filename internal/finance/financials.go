package finance

import (
	"context"
	"fmt"
	"strings"

	"github.com/johnson-zhang-au/yfinance-mcp/internal/cache"
	"github.com/johnson-zhang-au/yfinance-mcp/internal/yahoo"
)

const (
	DefaultStatement     = "income"
	DefaultStatementSpan = "annual"
)

// Statement type names as exposed to the agent, mapped to the keys used in
// the result.
var statementKeys = map[string]string{
	"income":  "income_statement",
	"balance": "balance_sheet",
	"cash":    "cash_flow",
}

// FinancialsResult groups the requested financial statements by kind,
// newest period first.
type FinancialsResult struct {
	Symbol        string                       `json:"symbol"`
	Name          string                       `json:"name"`
	Currency      string                       `json:"currency"`
	StatementType string                       `json:"statement_type"`
	Period        string                       `json:"period"`
	Financials    map[string][]yahoo.Statement `json:"financials"`
}

// Financials returns financial statement data for a symbol. statement is
// income, balance, cash or all (default income); period is annual or
// quarterly (default annual).
func (s *Service) Financials(ctx context.Context, symbol, statement, period string) (*FinancialsResult, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, ErrMissingSymbol
	}
	if statement == "" {
		statement = DefaultStatement
	}
	if period == "" {
		period = DefaultStatementSpan
	}
	if statement != "all" && statementKeys[statement] == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatement, statement)
	}
	if period != "annual" && period != "quarterly" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStmtSpan, period)
	}

	req := cache.Request{
		"action":    "company_financials",
		"symbol":    symbol,
		"statement": statement,
		"period":    period,
	}
	v, err := s.cached(ctx, req, func(ctx context.Context) (any, error) {
		res := &FinancialsResult{
			Symbol:        symbol,
			Name:          symbol,
			StatementType: statement,
			Period:        period,
			Financials:    make(map[string][]yahoo.Statement),
		}
		if quotes, qerr := s.data.Quote(ctx, symbol); qerr == nil {
			if quotes[0].ShortName != "" {
				res.Name = quotes[0].ShortName
			}
			res.Currency = quotes[0].Currency
		}

		kinds := []string{statement}
		if statement == "all" {
			kinds = []string{"income", "balance", "cash"}
		}
		for _, kind := range kinds {
			statements, err := s.data.Statements(ctx, symbol, kind, period)
			if err != nil {
				return nil, err
			}
			if len(statements) > 0 {
				res.Financials[statementKeys[kind]] = statements
			}
		}
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*FinancialsResult), nil
}
