package main

import (
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/johnson-zhang-au/yfinance-mcp/internal/cache"
	"github.com/johnson-zhang-au/yfinance-mcp/internal/config"
	"github.com/johnson-zhang-au/yfinance-mcp/internal/finance"
	"github.com/johnson-zhang-au/yfinance-mcp/internal/logger"
	"github.com/johnson-zhang-au/yfinance-mcp/internal/tools"
	"github.com/johnson-zhang-au/yfinance-mcp/internal/yahoo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logPath := cfg.LogFile
	if logPath == "" {
		logPath = logger.DefaultPath()
	}
	if err := logger.Init(logPath, cfg.LogLevel); err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Infof("Starting Yahoo Finance MCP server")
	logger.Infof("Cache expiry %s, fetch timeout %s", cfg.CacheExpiry(), cfg.FetchTimeout())

	store, err := cache.New(cfg.CacheExpiry())
	if err != nil {
		logger.Errorf("cache init: %v", err)
		panic(err)
	}
	client := yahoo.NewClient(cfg.FetchTimeout())
	svc := finance.NewService(store, client)
	logger.Infof("Initialized finance service with request cache")

	s := server.NewMCPServer(
		"Yahoo Finance MCP",
		"0.1.0",
		server.WithRecovery(),
		server.WithToolCapabilities(false),
	)
	logger.Infof("Created MCP server instance")

	symbolDesc := mcp.Description("Stock ticker symbol, e.g. AAPL or MSFT")

	toolQuote := mcp.NewTool("get-stock-price",
		mcp.WithDescription(multiline(
			"Gets the current price and trading data for a stock",
			"\nFunctionality:",
			"- Returns price, change, previous close, open, day range, volume and market cap",
			"- Results are cached; repeated calls for the same symbol within the cache window are served locally",
			"\nUsage notes:",
			"- The symbol must be a Yahoo Finance ticker (indices use a ^ prefix, e.g. ^GSPC)",
		)),
		mcp.WithString("symbol", mcp.Required(), symbolDesc),
	)
	s.AddTool(toolQuote, tools.QuoteHandler(svc))

	toolHistory := mcp.NewTool("get-stock-history",
		mcp.WithDescription(multiline(
			"Gets historical price data for a stock as a sampled OHLCV table",
			"\nFunctionality:",
			"- Returns open, high, low, close and volume over the requested period",
			"- Long ranges are sampled down to a handful of representative rows",
			"- Reports the overall price change across the period",
			"\nUsage notes:",
			"- period: one of 1d, 5d, 1mo, 3mo, 6mo, 1y, 2y, 5y, 10y, ytd, max (default 1mo)",
			"- interval: one of 1m, 2m, 5m, 15m, 30m, 60m, 90m, 1h, 1d, 5d, 1wk, 1mo, 3mo (default 1d)",
		)),
		mcp.WithString("symbol", mcp.Required(), symbolDesc),
		mcp.WithString("period", mcp.Description("History length, e.g. 1mo or 1y")),
		mcp.WithString("interval", mcp.Description("Bar interval, e.g. 1d or 1wk")),
	)
	s.AddTool(toolHistory, tools.HistoryHandler(svc))

	toolChart := mcp.NewTool("get-stock-chart",
		mcp.WithDescription(multiline(
			"Renders closing prices for a stock as an ASCII line chart",
			"\nFunctionality:",
			"- Plots the close series for the requested period and interval",
			"- Shares cached data with get-stock-history for the same arguments",
			"\nUsage notes:",
			"- Accepts the same period and interval values as get-stock-history",
		)),
		mcp.WithString("symbol", mcp.Required(), symbolDesc),
		mcp.WithString("period", mcp.Description("History length, e.g. 1mo or 1y")),
		mcp.WithString("interval", mcp.Description("Bar interval, e.g. 1d or 1wk")),
	)
	s.AddTool(toolChart, tools.ChartHandler(svc))

	toolOptions := mcp.NewTool("get-stock-options",
		mcp.WithDescription(multiline(
			"Gets the options chain for a stock",
			"\nFunctionality:",
			"- Returns calls and puts with strike, last price, bid/ask, volume, open interest and implied volatility",
			"- Strikes are centered near the money and capped per side",
			"- Without an expiration date the nearest expiration is used",
			"\nUsage notes:",
			"- optionType: call or put to restrict one side of the chain",
			"- expirationDate: YYYY-MM-DD; unknown dates return the available ones",
		)),
		mcp.WithString("symbol", mcp.Required(), symbolDesc),
		mcp.WithString("optionType", mcp.Description("call or put")),
		mcp.WithString("expirationDate", mcp.Description("Expiration date as YYYY-MM-DD")),
	)
	s.AddTool(toolOptions, tools.OptionsHandler(svc))

	toolInfo := mcp.NewTool("get-company-info",
		mcp.WithDescription(multiline(
			"Gets company profile information for a stock",
			"\nFunctionality:",
			"- Returns sector, industry, country, exchange, market cap, employee count and a business summary",
		)),
		mcp.WithString("symbol", mcp.Required(), symbolDesc),
	)
	s.AddTool(toolInfo, tools.InfoHandler(svc))

	toolIndices := mcp.NewTool("get-market-indices",
		mcp.WithDescription(multiline(
			"Gets current values for major market indices",
			"\nFunctionality:",
			"- Defaults to the S&P 500, Dow Jones and NASDAQ",
			"- Reports value, change and day range per index",
			"\nUsage notes:",
			"- indices: optional list of index symbols, e.g. ^GSPC, ^FTSE, ^N225",
		)),
		mcp.WithArray("indices", mcp.Description("Index symbols to fetch")),
	)
	s.AddTool(toolIndices, tools.IndicesHandler(svc))

	toolFinancials := mcp.NewTool("get-company-financials",
		mcp.WithDescription(multiline(
			"Gets financial statements for a company",
			"\nFunctionality:",
			"- Returns income statement, balance sheet or cash flow data by fiscal period",
			"\nUsage notes:",
			"- statement: income, balance, cash or all (default income)",
			"- period: annual or quarterly (default annual)",
		)),
		mcp.WithString("symbol", mcp.Required(), symbolDesc),
		mcp.WithString("statement", mcp.Description("income, balance, cash or all")),
		mcp.WithString("period", mcp.Description("annual or quarterly")),
	)
	s.AddTool(toolFinancials, tools.FinancialsHandler(svc))

	toolNews := mcp.NewTool("get-stock-news",
		mcp.WithDescription(multiline(
			"Gets recent news articles for a stock or for the market in general",
			"\nFunctionality:",
			"- Returns headlines with publisher, date, related tickers and links",
			"- Without a symbol, returns general market news",
			"\nUsage notes:",
			"- count: number of articles, capped at 10 (default 5)",
		)),
		mcp.WithString("symbol", symbolDesc),
		mcp.WithNumber("count", mcp.Description("Number of articles to return")),
	)
	s.AddTool(toolNews, tools.NewsHandler(svc))

	toolArticle := mcp.NewTool("read-news-article",
		mcp.WithDescription(multiline(
			"Fetches a news article and returns its content as markdown",
			"\nFunctionality:",
			"- Strips navigation, scripts and boilerplate from the page",
			"- Converts the main article body to markdown",
			"\nUsage notes:",
			"- The URL must be a fully-formed valid URL, typically a link from get-stock-news",
		)),
		mcp.WithString("url", mcp.Required(), mcp.Description("The article URL to read")),
	)
	s.AddTool(toolArticle, tools.ArticleHandler(svc))

	toolSentiment := mcp.NewTool("get-market-sentiment",
		mcp.WithDescription(multiline(
			"Gets a fear/greed style market sentiment score",
			"\nFunctionality:",
			"- Combines the VIX level with major index breadth into a 0-100 score",
			"- Labels the score from Extreme Fear to Extreme Greed",
		)),
	)
	s.AddTool(toolSentiment, tools.SentimentHandler(svc))

	logger.Infof("Starting MCP server on stdio")
	if err := server.ServeStdio(s); err != nil {
		logger.Errorf("server error: %v", err)
	}
}

// multiline joins lines with newlines for tool descriptions.
func multiline(lines ...string) string { return strings.Join(lines, "\n") }
