// Package tools exposes the finance service as MCP tools. Handlers
// validate arguments, delegate to the service and render the result as a
// human-readable text block for the agent.
package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/johnson-zhang-au/yfinance-mcp/internal/finance"
)

// symbolArg resolves the symbol argument, accepting "ticker" as an alias.
func symbolArg(req mcp.CallToolRequest) string {
	if s := req.GetString("symbol", ""); s != "" {
		return s
	}
	return req.GetString("ticker", "")
}

// QuoteHandler returns the MCP tool handler for the "get-stock-price" tool.
func QuoteHandler(svc *finance.Service) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := svc.Quote(ctx, symbolArg(req))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(formatQuote(res)), nil
	}
}

func formatQuote(q *finance.QuoteResult) string {
	var sb strings.Builder
	name := q.ShortName
	if name == "" {
		name = q.Symbol
	}
	fmt.Fprintf(&sb, "%s (%s)\n", name, q.Symbol)
	fmt.Fprintf(&sb, "Price: %s %s\n", money(q.Price), q.Currency)
	fmt.Fprintf(&sb, "Change: %s (%s%%)\n", signed(q.Change), signed(q.ChangePercent))
	fmt.Fprintf(&sb, "Previous Close: %s\n", money(q.PreviousClose))
	fmt.Fprintf(&sb, "Open: %s\n", money(q.Open))
	fmt.Fprintf(&sb, "Day Range: %s - %s\n", money(q.DayLow), money(q.DayHigh))
	fmt.Fprintf(&sb, "Volume: %s\n", humanize.Comma(q.Volume))
	if q.MarketCap > 0 {
		fmt.Fprintf(&sb, "Market Cap: %s\n", humanize.Comma(q.MarketCap))
	}
	fmt.Fprintf(&sb, "As of: %s", q.RetrievedAt.Format("2006-01-02 15:04:05 MST"))
	return sb.String()
}

// money renders a price with two decimals and thousands separators.
func money(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}

// signed prefixes positive values with "+" the way finance tickers do.
func signed(v float64) string {
	if v > 0 {
		return "+" + humanize.CommafWithDigits(v, 2)
	}
	return humanize.CommafWithDigits(v, 2)
}
