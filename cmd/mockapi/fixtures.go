package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"

	"foliodesk/internal/api"
	"foliodesk/internal/models"
)

const historyDays = 5

// Curated fundamentals for common tickers. Anything else gets deterministic
// values derived from the symbol so responses are stable between runs.
var knownStocks = map[string]struct{ peRatio, eps float64 }{
	"AAPL": {29.42, 6.43},
	"GOOG": {22.15, 7.54},
	"MSFT": {35.61, 11.80},
	"AMZN": {42.33, 4.18},
	"TSLA": {68.96, 3.55},
}

var newsDesks = []struct{ source, format string }{
	{"Bloomberg", "%s beats quarterly revenue expectations"},
	{"Reuters", "Analysts split on %s outlook after guidance update"},
	{"MarketWatch", "What the latest filings reveal about %s"},
}

var (
	actions     = []string{"Buy", "Hold", "Sell"}
	confidences = []string{"High", "Medium", "Low"}
)

func tickerSeed(ticker string) float64 {
	var seed float64
	for _, r := range ticker {
		seed += float64(r)
	}
	return seed
}

func stockFixture(ticker string) models.StockDatum {
	seed := tickerSeed(ticker)
	peRatio := math.Round((12+math.Mod(seed, 25))*100) / 100
	eps := math.Round((2+math.Mod(seed, 9))*100) / 100
	if known, ok := knownStocks[ticker]; ok {
		peRatio, eps = known.peRatio, known.eps
	}

	base := 40 + math.Mod(seed*3, 260)
	history := make([]models.PricePoint, 0, historyDays)
	day := time.Now().AddDate(0, 0, -historyDays)
	price := base
	for i := 0; i < historyDays; i++ {
		price *= 1 + 0.01*math.Sin(seed+float64(i))
		history = append(history, models.PricePoint{
			Date:  day.AddDate(0, 0, i).Format("2006-01-02"),
			Close: math.Round(price*100) / 100,
		})
	}

	return models.StockDatum{
		Ticker:       ticker,
		PERatio:      peRatio,
		EPS:          eps,
		PriceHistory: history,
	}
}

func newsFixture(tickers []string) []models.NewsHeadline {
	headlines := make([]models.NewsHeadline, 0, len(tickers)*len(newsDesks))
	for _, ticker := range tickers {
		for i, desk := range newsDesks {
			headlines = append(headlines, models.NewsHeadline{
				Source: desk.source,
				Title:  fmt.Sprintf(desk.format, ticker),
				Link:   fmt.Sprintf("https://news.example.com/%s/%d", strings.ToLower(ticker), i+1),
			})
		}
	}
	return headlines
}

func recommendationFor(ticker, sentiment string, metrics api.MetricsEntry) models.Recommendation {
	seed := int(tickerSeed(ticker))
	action := actions[seed%len(actions)]
	confidence := confidences[(seed/3)%len(confidences)]

	reasoning := fmt.Sprintf("%s trades at a P/E of %.2f with EPS of %.2f.", ticker, metrics.PERatio, metrics.EPS)
	if metrics.Ticker == "" {
		reasoning = fmt.Sprintf("No current metrics were supplied for %s.", ticker)
	}
	if sentiment != "" {
		reasoning += fmt.Sprintf(" Your stated sentiment (%q) was weighed into the %s call.", sentiment, strings.ToLower(action))
	}

	return models.Recommendation{
		Ticker:         ticker,
		Recommendation: action,
		Confidence:     confidence,
		Reasoning:      reasoning,
	}
}

// liveHistory fetches real daily closes for the past week from Yahoo Finance.
func liveHistory(ticker string) ([]models.PricePoint, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -7)

	params := &chart.Params{
		Symbol:   ticker,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}

	iter := chart.Get(params)
	history := make([]models.PricePoint, 0, 8)
	for iter.Next() {
		bar := iter.Bar()
		closePrice, _ := bar.Close.Float64()
		history = append(history, models.PricePoint{
			Date:  time.Unix(int64(bar.Timestamp), 0).Format("2006-01-02"),
			Close: closePrice,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("fetch history for %s: %w", ticker, err)
	}

	return history, nil
}
