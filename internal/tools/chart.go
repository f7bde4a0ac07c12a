package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/johnson-zhang-au/yfinance-mcp/internal/finance"
)

const (
	chartWidth  = 70
	chartHeight = 12
)

// ChartHandler returns the MCP tool handler for the "get-stock-chart" tool.
// It reuses the cached history data and renders closing prices as an
// ASCII line chart.
func ChartHandler(svc *finance.Service) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := svc.History(ctx,
			symbolArg(req),
			req.GetString("period", ""),
			req.GetString("interval", ""),
		)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		chart, err := renderChart(res)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(chart), nil
	}
}

func renderChart(h *finance.HistoryResult) (string, error) {
	if len(h.Bars) < 2 {
		return "", fmt.Errorf("not enough data points to chart %s", h.Symbol)
	}
	closes := make([]float64, len(h.Bars))
	for i, bar := range h.Bars {
		closes[i] = bar.Close
	}

	caption := fmt.Sprintf("%s (%s) close, %s / %s, %s", h.Name, h.Symbol, h.Period, h.Interval, h.TimeRange)
	plot := asciigraph.Plot(closes,
		asciigraph.Width(chartWidth),
		asciigraph.Height(chartHeight),
		asciigraph.Caption(caption),
	)

	var sb strings.Builder
	sb.WriteString(plot)
	if h.PriceChange != nil && h.PriceChangePercent != nil {
		fmt.Fprintf(&sb, "\n\nPrice Change: %s$%s (%s%%)",
			changeSign(*h.PriceChange), money(abs(*h.PriceChange)), signed(*h.PriceChangePercent))
	}
	return sb.String(), nil
}
