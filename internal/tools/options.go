package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/johnson-zhang-au/yfinance-mcp/internal/finance"
	"github.com/johnson-zhang-au/yfinance-mcp/internal/yahoo"
)

// OptionsHandler returns the MCP tool handler for the "get-stock-options"
// tool.
func OptionsHandler(svc *finance.Service) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := svc.Options(ctx,
			symbolArg(req),
			req.GetString("optionType", ""),
			req.GetString("expirationDate", ""),
		)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(formatOptions(res)), nil
	}
}

func formatOptions(o *finance.OptionsResult) string {
	var sb strings.Builder
	if o.Message != "" {
		fmt.Fprintf(&sb, "%s: %s", o.Symbol, o.Message)
		if len(o.AvailableExpirations) > 0 {
			fmt.Fprintf(&sb, "\nAvailable expirations: %s", strings.Join(o.AvailableExpirations, ", "))
		}
		return sb.String()
	}

	fmt.Fprintf(&sb, "Options chain for %s expiring %s\n", o.Symbol, o.ExpirationDate)
	if len(o.Calls) > 0 {
		sb.WriteString("\n=== Calls ===\n")
		writeContracts(&sb, o.Calls)
	}
	if len(o.Puts) > 0 {
		sb.WriteString("\n=== Puts ===\n")
		writeContracts(&sb, o.Puts)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func writeContracts(sb *strings.Builder, contracts []yahoo.Contract) {
	fmt.Fprintf(sb, "%-9s | %-9s | %-9s | %-9s | %-8s | %-8s | %-7s\n",
		"Strike", "Last", "Bid", "Ask", "Volume", "OI", "IV")
	for _, c := range contracts {
		fmt.Fprintf(sb, "%-9s | %-9s | %-9s | %-9s | %-8s | %-8s | %-7s\n",
			money(c.Strike),
			money(c.LastPrice),
			money(c.Bid),
			money(c.Ask),
			humanize.Comma(c.Volume),
			humanize.Comma(c.OpenInterest),
			fmt.Sprintf("%.1f%%", c.ImpliedVolatility*100))
	}
}
