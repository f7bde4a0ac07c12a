package finance

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/johnson-zhang-au/yfinance-mcp/internal/cache"
)

var errNoVIX = errors.New("finance: no VIX quote in upstream response")

// SentimentResult is a simple fear/greed style reading of the US market,
// derived from the VIX level and the breadth of the major indices.
type SentimentResult struct {
	Score       int                `json:"score"` // 0 = extreme fear, 100 = extreme greed
	Label       string             `json:"label"`
	VIX         float64            `json:"vix"`
	Components  map[string]float64 `json:"components"`
	RetrievedAt time.Time          `json:"timestamp"`
}

// VIX bands for the volatility component: at or below the floor the market
// reads as fully complacent, at or above the ceiling as fully fearful.
const (
	vixFloor   = 10.0
	vixCeiling = 40.0
)

// Sentiment computes the market sentiment index.
func (s *Service) Sentiment(ctx context.Context) (*SentimentResult, error) {
	req := cache.Request{"action": "market_sentiment"}
	v, err := s.cached(ctx, req, func(ctx context.Context) (any, error) {
		symbols := append([]string{"^VIX"}, DefaultIndices...)
		quotes, err := s.data.Quote(ctx, symbols...)
		if err != nil {
			return nil, err
		}

		var vix float64
		advancing, counted := 0, 0
		for _, q := range quotes {
			if q.Symbol == "^VIX" {
				vix = q.Price
				continue
			}
			counted++
			if q.ChangePercent > 0 {
				advancing++
			}
		}
		if vix == 0 {
			return nil, errNoVIX
		}

		volScore := (vixCeiling - vix) / (vixCeiling - vixFloor) * 100
		volScore = math.Max(0, math.Min(100, volScore))

		breadth := 50.0
		if counted > 0 {
			breadth = float64(advancing) / float64(counted) * 100
		}

		score := int(math.Round(0.6*volScore + 0.4*breadth))
		return &SentimentResult{
			Score: score,
			Label: sentimentLabel(score),
			VIX:   vix,
			Components: map[string]float64{
				"volatility": math.Round(volScore),
				"breadth":    math.Round(breadth),
			},
			RetrievedAt: time.Now().UTC(),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*SentimentResult), nil
}

func sentimentLabel(score int) string {
	switch {
	case score < 25:
		return "Extreme Fear"
	case score < 45:
		return "Fear"
	case score <= 55:
		return "Neutral"
	case score <= 75:
		return "Greed"
	default:
		return "Extreme Greed"
	}
}
