package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/johnson-zhang-au/yfinance-mcp/internal/finance"
)

// maxTableRows bounds the history table; longer histories are sampled
// evenly so the agent still sees the whole range.
const maxTableRows = 7

// HistoryHandler returns the MCP tool handler for the "get-stock-history"
// tool.
func HistoryHandler(svc *finance.Service) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := svc.History(ctx,
			symbolArg(req),
			req.GetString("period", ""),
			req.GetString("interval", ""),
		)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(formatHistory(res)), nil
	}
}

func formatHistory(h *finance.HistoryResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Historical data for %s (%s) (%s, %s intervals)\n", h.Name, h.Symbol, h.Period, h.Interval)
	fmt.Fprintf(&sb, "Currency: %s\n", h.Currency)

	if len(h.Bars) == 0 {
		sb.WriteString("\nNo historical data available for this period and interval")
		return sb.String()
	}
	fmt.Fprintf(&sb, "Trading Period: %s\n\n", h.TimeRange)

	fmt.Fprintf(&sb, "%-11s | %-9s | %-9s | %-9s | %-9s | %-12s\n", "Date", "Open", "High", "Low", "Close", "Volume")
	sb.WriteString(strings.Repeat("-", 11) + "|" + strings.Repeat("-", 11) + "|" +
		strings.Repeat("-", 11) + "|" + strings.Repeat("-", 11) + "|" +
		strings.Repeat("-", 11) + "|" + strings.Repeat("-", 14) + "\n")

	for _, i := range sampleIndices(len(h.Bars), maxTableRows) {
		bar := h.Bars[i]
		fmt.Fprintf(&sb, "%-11s | %-9s | %-9s | %-9s | %-9s | %-12s\n",
			bar.Timestamp.Format("2006-01-02"),
			"$"+money(bar.Open),
			"$"+money(bar.High),
			"$"+money(bar.Low),
			"$"+money(bar.Close),
			humanize.Comma(bar.Volume))
	}

	if h.PriceChange != nil && h.PriceChangePercent != nil {
		fmt.Fprintf(&sb, "\nPrice Change: %s$%s (%s%%)",
			changeSign(*h.PriceChange), money(abs(*h.PriceChange)), signed(*h.PriceChangePercent))
	}
	return sb.String()
}

// sampleIndices picks up to max row indices evenly spread over n rows,
// always including the first row.
func sampleIndices(n, max int) []int {
	if n <= max {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}
	step := n / max
	out := make([]int, 0, max)
	for i := 0; i < n && len(out) < max; i += step {
		out = append(out, i)
	}
	return out
}

func changeSign(v float64) string {
	if v > 0 {
		return "+"
	}
	if v < 0 {
		return "-"
	}
	return ""
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
