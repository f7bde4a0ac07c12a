package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/johnson-zhang-au/yfinance-mcp/internal/finance"
)

// Statement section order and titles for formatted output.
var statementSections = []struct {
	key   string
	title string
}{
	{"income_statement", "Income Statement"},
	{"balance_sheet", "Balance Sheet"},
	{"cash_flow", "Cash Flow Statement"},
}

// FinancialsHandler returns the MCP tool handler for the
// "get-company-financials" tool.
func FinancialsHandler(svc *finance.Service) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := svc.Financials(ctx,
			symbolArg(req),
			req.GetString("statement", ""),
			req.GetString("period", ""),
		)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(formatFinancials(res)), nil
	}
}

func formatFinancials(f *finance.FinancialsResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Financial Statements for %s (%s)\n", f.Name, f.Symbol)
	if f.Currency != "" {
		fmt.Fprintf(&sb, "Currency: %s\n", f.Currency)
	}

	if len(f.Financials) == 0 {
		sb.WriteString("\nNo financial statement data available")
		return sb.String()
	}

	periodLabel := "Annual"
	if f.Period == "quarterly" {
		periodLabel = "Quarterly"
	}

	for _, section := range statementSections {
		statements, ok := f.Financials[section.key]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "\n=== %s %s ===\n", periodLabel, section.title)
		for _, st := range statements {
			fmt.Fprintf(&sb, "%s:\n", st.EndDate.Format("2006-01-02"))
			for _, item := range sortedItemNames(st.Items) {
				fmt.Fprintf(&sb, "  %s: %s\n", item, money(st.Items[item]))
			}
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func sortedItemNames(items map[string]float64) []string {
	names := make([]string, 0, len(items))
	for name := range items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
