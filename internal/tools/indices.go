package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/johnson-zhang-au/yfinance-mcp/internal/finance"
)

// IndicesHandler returns the MCP tool handler for the "get-market-indices"
// tool.
func IndicesHandler(svc *finance.Service) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := svc.Indices(ctx, req.GetStringSlice("indices", nil))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(formatIndices(res)), nil
	}
}

func formatIndices(r *finance.IndicesResult) string {
	var sb strings.Builder
	for i, idx := range r.Indices {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s\n", idx.Name)
		fmt.Fprintf(&sb, "Price: %s\n", money(idx.Price))
		fmt.Fprintf(&sb, "Change: %s (%s%%)\n", signed(idx.Change), signed(idx.ChangePercent))
		fmt.Fprintf(&sb, "Previous Close: %s\n", money(idx.PreviousClose))
		fmt.Fprintf(&sb, "Day Range: %s - %s\n", money(idx.DayLow), money(idx.DayHigh))
	}
	return strings.TrimRight(sb.String(), "\n")
}
