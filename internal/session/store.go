// Package session holds the in-memory state for one client session.
package session

import (
	"github.com/shopspring/decimal"

	"foliodesk/internal/models"
)

// Store keeps the five session slots. It is written only from the UI update
// loop (or a sequential one-shot flow), so it carries no lock; the epoch
// counter lets that single writer recognize results launched before a
// logout and drop them.
type Store struct {
	transactions []models.Transaction
	sentiment    string
	stockData    []models.StockDatum
	news         []models.NewsHeadline
	analysis     []models.Recommendation
	epoch        uint64
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Transactions() []models.Transaction {
	return s.transactions
}

func (s *Store) SetTransactions(txs []models.Transaction) {
	s.transactions = txs
}

func (s *Store) Sentiment() string {
	return s.sentiment
}

func (s *Store) SetSentiment(sentiment string) {
	s.sentiment = sentiment
}

func (s *Store) StockData() []models.StockDatum {
	return s.stockData
}

func (s *Store) SetStockData(data []models.StockDatum) {
	s.stockData = data
}

func (s *Store) News() []models.NewsHeadline {
	return s.news
}

func (s *Store) SetNews(headlines []models.NewsHeadline) {
	s.news = headlines
}

func (s *Store) Analysis() []models.Recommendation {
	return s.analysis
}

func (s *Store) SetAnalysis(recs []models.Recommendation) {
	s.analysis = recs
}

// ReadyForAnalysis reports whether every input the analysis endpoint needs
// is present.
func (s *Store) ReadyForAnalysis() bool {
	return len(s.transactions) > 0 &&
		s.sentiment != "" &&
		len(s.stockData) > 0 &&
		len(s.news) > 0
}

// MissingForAnalysis names the empty prerequisite slots in display order.
func (s *Store) MissingForAnalysis() []string {
	var missing []string
	if len(s.transactions) == 0 {
		missing = append(missing, "transactions")
	}
	if s.sentiment == "" {
		missing = append(missing, "sentiment")
	}
	if len(s.stockData) == 0 {
		missing = append(missing, "stock data")
	}
	if len(s.news) == 0 {
		missing = append(missing, "news")
	}
	return missing
}

// Reset clears every slot and advances the epoch so in-flight results from
// before the reset are recognizable as stale.
func (s *Store) Reset() {
	s.transactions = nil
	s.sentiment = ""
	s.stockData = nil
	s.news = nil
	s.analysis = nil
	s.epoch++
}

// Epoch is the current session generation. Fetches capture it at launch and
// their results are applied only if it still matches.
func (s *Store) Epoch() uint64 {
	return s.epoch
}

// Tickers returns the distinct transaction tickers in first-seen order.
func (s *Store) Tickers() []string {
	seen := make(map[string]struct{}, len(s.transactions))
	var out []string
	for _, t := range s.transactions {
		if _, ok := seen[t.Ticker]; ok {
			continue
		}
		seen[t.Ticker] = struct{}{}
		out = append(out, t.Ticker)
	}
	return out
}

// CostBasis totals quantity times price across the stored transactions.
func (s *Store) CostBasis() decimal.Decimal {
	total := decimal.Zero
	for _, t := range s.transactions {
		qty := decimal.NewFromFloat(t.Quantity)
		price := decimal.NewFromFloat(t.Price)
		total = total.Add(qty.Mul(price))
	}
	return total
}
