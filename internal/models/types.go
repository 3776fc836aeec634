// Package models holds the value records exchanged with the portfolio API.
package models

// Transaction is one row of uploaded brokerage history.
type Transaction struct {
	Ticker   string  `json:"ticker"`
	BuyDate  string  `json:"buy_date"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

// PricePoint is a single daily close in a price history series.
type PricePoint struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
}

// StockDatum bundles the metrics returned for one ticker.
type StockDatum struct {
	Ticker       string       `json:"ticker"`
	PERatio      float64      `json:"pe_ratio"`
	EPS          float64      `json:"eps"`
	PriceHistory []PricePoint `json:"price_history"`
}

type NewsHeadline struct {
	Source string `json:"source"`
	Title  string `json:"title"`
	Link   string `json:"link"`
}

// Recommendation is one entry of an analysis result.
type Recommendation struct {
	Ticker         string `json:"ticker"`
	Recommendation string `json:"recommendation"`
	Confidence     string `json:"confidence"`
	Reasoning      string `json:"reasoning"`
}
