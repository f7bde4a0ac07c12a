package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/johnson-zhang-au/yfinance-mcp/internal/finance"
)

// SentimentHandler returns the MCP tool handler for the
// "get-market-sentiment" tool.
func SentimentHandler(svc *finance.Service) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := svc.Sentiment(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(formatSentiment(res)), nil
	}
}

func formatSentiment(s *finance.SentimentResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Market Sentiment: %s (%d/100)\n", s.Label, s.Score)
	fmt.Fprintf(&sb, "VIX: %.2f\n", s.VIX)
	fmt.Fprintf(&sb, "Components: volatility %.0f, breadth %.0f\n",
		s.Components["volatility"], s.Components["breadth"])
	fmt.Fprintf(&sb, "As of: %s", s.RetrievedAt.Format("2006-01-02 15:04:05 MST"))
	return sb.String()
}
