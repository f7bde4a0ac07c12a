package tools

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/johnson-zhang-au/yfinance-mcp/internal/finance"
)

// maxSummaryLen truncates long article titles used as one-line summaries.
const maxSummaryLen = 300

// NewsHandler returns the MCP tool handler for the "get-stock-news" tool.
func NewsHandler(svc *finance.Service) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := svc.News(ctx, symbolArg(req), req.GetInt("count", 0))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(formatNews(res)), nil
	}
}

func formatNews(r *finance.NewsResult) string {
	if len(r.Items) == 0 {
		return fmt.Sprintf("No news articles available for %s", r.Source)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Latest News for %s ===\n\n", r.Source)
	for i, item := range r.Items {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, truncate(item.Title, maxSummaryLen))
		fmt.Fprintf(&sb, "   Source: %s | Date: %s\n", item.Publisher, item.PublishedAt.Format("2006-01-02 15:04:05"))
		if len(item.RelatedTickers) > 0 {
			fmt.Fprintf(&sb, "   Related Tickers: %s\n", strings.Join(item.RelatedTickers, ", "))
		}
		fmt.Fprintf(&sb, "   Link: %s\n\n", item.Link)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// truncate shortens s to at most n bytes, never cutting inside a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
