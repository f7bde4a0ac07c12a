package tools

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnson-zhang-au/yfinance-mcp/internal/finance"
	"github.com/johnson-zhang-au/yfinance-mcp/internal/yahoo"
)

func sampleHistory(nBars int) *finance.HistoryResult {
	h := &finance.HistoryResult{
		History: &yahoo.History{
			Symbol:   "AAPL",
			Currency: "USD",
			Period:   "1mo",
			Interval: "1d",
		},
		Name:      "Apple Inc.",
		TimeRange: "01/05/2026 to 02/05/2026",
	}
	t0 := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	for i := 0; i < nBars; i++ {
		h.Bars = append(h.Bars, yahoo.Bar{
			Timestamp: t0.AddDate(0, 0, i),
			Open:      100 + float64(i),
			High:      105 + float64(i),
			Low:       99 + float64(i),
			Close:     104 + float64(i),
			Volume:    1_000_000,
		})
	}
	if nBars > 0 {
		change := h.Bars[nBars-1].Close - h.Bars[0].Close
		pct := change / h.Bars[0].Close * 100
		h.PriceChange = &change
		h.PriceChangePercent = &pct
	}
	return h
}

func TestFormatQuote(t *testing.T) {
	out := formatQuote(&finance.QuoteResult{
		Quote: yahoo.Quote{
			Symbol:        "AAPL",
			ShortName:     "Apple Inc.",
			Currency:      "USD",
			Price:         232.5,
			Change:        3.25,
			ChangePercent: 1.42,
			PreviousClose: 229.25,
			Open:          230,
			DayHigh:       233.1,
			DayLow:        229.8,
			Volume:        52_000_000,
			MarketCap:     3_500_000_000_000,
		},
		RetrievedAt: time.Date(2026, 2, 5, 21, 0, 0, 0, time.UTC),
	})

	assert.Contains(t, out, "Apple Inc. (AAPL)")
	assert.Contains(t, out, "Price: 232.5 USD")
	assert.Contains(t, out, "Change: +3.25 (+1.42%)")
	assert.Contains(t, out, "Volume: 52,000,000")
	assert.Contains(t, out, "Market Cap: 3,500,000,000,000")
}

func TestFormatHistorySamplesLongRanges(t *testing.T) {
	out := formatHistory(sampleHistory(30))

	assert.Contains(t, out, "Historical data for Apple Inc. (AAPL) (1mo, 1d intervals)")
	assert.Contains(t, out, "Trading Period: 01/05/2026 to 02/05/2026")
	assert.Contains(t, out, "Price Change: +$29 (+27.88%)")

	// Header + separator + at most 7 data rows.
	dataRows := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "2026-") {
			dataRows++
		}
	}
	assert.Equal(t, maxTableRows, dataRows)
}

func TestFormatHistoryEmpty(t *testing.T) {
	out := formatHistory(sampleHistory(0))
	assert.Contains(t, out, "No historical data available")
}

func TestSampleIndices(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2}, sampleIndices(3, 7))

	sampled := sampleIndices(100, 7)
	assert.Len(t, sampled, 7)
	assert.Equal(t, 0, sampled[0])
	for i := 1; i < len(sampled); i++ {
		assert.Greater(t, sampled[i], sampled[i-1])
	}
}

func TestFormatOptionsMessagePath(t *testing.T) {
	out := formatOptions(&finance.OptionsResult{
		Symbol:               "AAPL",
		Message:              "Expiration date 2030-01-01 not available. Please choose from available dates.",
		AvailableExpirations: []string{"2026-09-18", "2026-10-16"},
	})
	assert.Contains(t, out, "not available")
	assert.Contains(t, out, "2026-09-18, 2026-10-16")
}

func TestFormatOptionsChain(t *testing.T) {
	out := formatOptions(&finance.OptionsResult{
		Symbol:         "AAPL",
		ExpirationDate: "2026-09-18",
		Calls:          []yahoo.Contract{{Strike: 230, LastPrice: 5.4, Bid: 5.3, Ask: 5.5, Volume: 1200, OpenInterest: 9100, ImpliedVolatility: 0.312}},
	})
	assert.Contains(t, out, "Options chain for AAPL expiring 2026-09-18")
	assert.Contains(t, out, "=== Calls ===")
	assert.Contains(t, out, "31.2%")
	assert.NotContains(t, out, "=== Puts ===")
}

func TestFormatNews(t *testing.T) {
	out := formatNews(&finance.NewsResult{
		Source: "Apple Inc. (AAPL)",
		Count:  2,
		Items: []yahoo.NewsItem{
			{Title: "First headline", Publisher: "Wire", Link: "https://example.com/1", PublishedAt: time.Unix(1_750_000_000, 0).UTC(), RelatedTickers: []string{"AAPL", "MSFT"}},
			{Title: "Second headline", Publisher: "Post", Link: "https://example.com/2", PublishedAt: time.Unix(1_750_000_100, 0).UTC()},
		},
	})
	assert.Contains(t, out, "=== Latest News for Apple Inc. (AAPL) ===")
	assert.Contains(t, out, "1. First headline")
	assert.Contains(t, out, "2. Second headline")
	assert.Contains(t, out, "Related Tickers: AAPL, MSFT")

	empty := formatNews(&finance.NewsResult{Source: "General Market News"})
	assert.Contains(t, empty, "No news articles available")
}

func TestFormatSentiment(t *testing.T) {
	out := formatSentiment(&finance.SentimentResult{
		Score:       62,
		Label:       "Greed",
		VIX:         15.3,
		Components:  map[string]float64{"volatility": 82, "breadth": 33},
		RetrievedAt: time.Date(2026, 2, 5, 21, 0, 0, 0, time.UTC),
	})
	assert.Contains(t, out, "Market Sentiment: Greed (62/100)")
	assert.Contains(t, out, "VIX: 15.30")
}

func TestRenderChart(t *testing.T) {
	out, err := renderChart(sampleHistory(10))
	require.NoError(t, err)
	assert.Contains(t, out, "Apple Inc. (AAPL) close, 1mo / 1d")

	_, err = renderChart(sampleHistory(1))
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	long := strings.Repeat("a", 400)
	got := truncate(long, maxSummaryLen)
	assert.Len(t, got, maxSummaryLen)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	long := strings.Repeat("é", 200) // 400 bytes, boundary falls mid-rune
	got := truncate(long, maxSummaryLen)
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), maxSummaryLen)
	assert.True(t, strings.HasSuffix(got, "..."))
}
