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

// InfoHandler returns the MCP tool handler for the "get-company-info" tool.
func InfoHandler(svc *finance.Service) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := svc.Info(ctx, symbolArg(req))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(formatProfile(res)), nil
	}
}

func formatProfile(p *yahoo.CompanyProfile) string {
	var sb strings.Builder
	name := p.Name
	if name == "" {
		name = p.Symbol
	}
	fmt.Fprintf(&sb, "%s (%s)\n", name, p.Symbol)
	writeField(&sb, "Sector", p.Sector)
	writeField(&sb, "Industry", p.Industry)
	writeField(&sb, "Country", p.Country)
	writeField(&sb, "Exchange", p.Exchange)
	writeField(&sb, "Currency", p.Currency)
	writeField(&sb, "Website", p.Website)
	if p.MarketCap > 0 {
		fmt.Fprintf(&sb, "Market Cap: %s\n", humanize.Comma(p.MarketCap))
	}
	if p.Employees > 0 {
		fmt.Fprintf(&sb, "Employees: %s\n", humanize.Comma(int64(p.Employees)))
	}
	if p.Description != "" {
		fmt.Fprintf(&sb, "\n%s", p.Description)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func writeField(sb *strings.Builder, label, value string) {
	if value != "" {
		fmt.Fprintf(sb, "%s: %s\n", label, value)
	}
}
