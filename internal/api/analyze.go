package api

import "foliodesk/internal/models"

// HistoryEntry is a transaction as the analysis endpoint expects it: the
// upload's buy_date relabeled to transaction_date, plus a transaction type.
type HistoryEntry struct {
	Ticker          string  `json:"ticker"`
	TransactionDate string  `json:"transaction_date"`
	TransactionType string  `json:"transaction_type"`
	Quantity        float64 `json:"quantity"`
	Price           float64 `json:"price"`
}

// MetricsEntry is the stock snapshot forwarded to analysis, price history
// dropped.
type MetricsEntry struct {
	Ticker  string  `json:"ticker"`
	PERatio float64 `json:"pe_ratio"`
	EPS     float64 `json:"eps"`
}

// NewsSummary is one headline forwarded to analysis.
type NewsSummary struct {
	Ticker  string `json:"ticker"`
	Summary string `json:"summary"`
}

// AnalyzeRequest is the combined payload for the analysis endpoint.
type AnalyzeRequest struct {
	UserID             string         `json:"user_id"`
	Sentiment          string         `json:"sentiment"`
	TransactionHistory []HistoryEntry `json:"transaction_history"`
	CurrentMetrics     []MetricsEntry `json:"current_metrics"`
	NewsSummaries      []NewsSummary  `json:"news_summaries"`
}

// BuildAnalyzeRequest assembles the analysis payload from the session data.
func BuildAnalyzeRequest(userID, sentiment string, txs []models.Transaction, stocks []models.StockDatum, news []models.NewsHeadline) AnalyzeRequest {
	req := AnalyzeRequest{
		UserID:             userID,
		Sentiment:          sentiment,
		TransactionHistory: make([]HistoryEntry, 0, len(txs)),
		CurrentMetrics:     make([]MetricsEntry, 0, len(stocks)),
		NewsSummaries:      make([]NewsSummary, 0, len(news)),
	}

	for _, t := range txs {
		req.TransactionHistory = append(req.TransactionHistory, HistoryEntry{
			Ticker:          t.Ticker,
			TransactionDate: t.BuyDate,
			TransactionType: "buy",
			Quantity:        t.Quantity,
			Price:           t.Price,
		})
	}
	for _, s := range stocks {
		req.CurrentMetrics = append(req.CurrentMetrics, MetricsEntry{
			Ticker:  s.Ticker,
			PERatio: s.PERatio,
			EPS:     s.EPS,
		})
	}
	for _, n := range news {
		// Ticker stays empty here. The backend has always been sent an empty
		// ticker on news summaries; changing it is a contract change, not a
		// client fix.
		req.NewsSummaries = append(req.NewsSummaries, NewsSummary{Summary: n.Title})
	}

	return req
}
