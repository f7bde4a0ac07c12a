package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/johnson-zhang-au/yfinance-mcp/internal/finance"
)

// ArticleHandler returns the MCP tool handler for the "read-news-article"
// tool.
func ArticleHandler(svc *finance.Service) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := req.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		article, err := svc.Article(ctx, url)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var sb strings.Builder
		if article.Title != "" {
			sb.WriteString("# ")
			sb.WriteString(article.Title)
			sb.WriteString("\n\n")
		}
		sb.WriteString(article.Markdown)
		return mcp.NewToolResultText(sb.String()), nil
	}
}
