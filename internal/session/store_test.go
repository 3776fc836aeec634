package session

import (
	"testing"

	"foliodesk/internal/models"
)

func populated() *Store {
	s := NewStore()
	s.SetTransactions([]models.Transaction{{Ticker: "AAPL", BuyDate: "2023-01-01", Quantity: 10, Price: 150.25}})
	s.SetSentiment("bullish on tech")
	s.SetStockData([]models.StockDatum{{Ticker: "AAPL", PERatio: 28.5, EPS: 6.1}})
	s.SetNews([]models.NewsHeadline{{Source: "Reuters", Title: "Apple ships more"}})
	return s
}

func TestReadyForAnalysisRequiresAllFour(t *testing.T) {
	cases := []struct {
		name  string
		clear func(*Store)
		want  bool
	}{
		{"all present", func(s *Store) {}, true},
		{"no transactions", func(s *Store) { s.SetTransactions(nil) }, false},
		{"no sentiment", func(s *Store) { s.SetSentiment("") }, false},
		{"no stock data", func(s *Store) { s.SetStockData(nil) }, false},
		{"no news", func(s *Store) { s.SetNews(nil) }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := populated()
			tc.clear(s)
			if got := s.ReadyForAnalysis(); got != tc.want {
				t.Fatalf("ReadyForAnalysis = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMissingForAnalysis(t *testing.T) {
	s := NewStore()
	missing := s.MissingForAnalysis()
	if len(missing) != 4 {
		t.Fatalf("empty store should miss all four, got %v", missing)
	}

	s = populated()
	s.SetNews(nil)
	missing = s.MissingForAnalysis()
	if len(missing) != 1 || missing[0] != "news" {
		t.Fatalf("expected only news missing, got %v", missing)
	}
}

func TestResetClearsEverythingAndBumpsEpoch(t *testing.T) {
	s := populated()
	s.SetAnalysis([]models.Recommendation{{Ticker: "AAPL", Recommendation: "Hold"}})

	before := s.Epoch()
	s.Reset()

	if len(s.Transactions()) != 0 || s.Sentiment() != "" || len(s.StockData()) != 0 ||
		len(s.News()) != 0 || len(s.Analysis()) != 0 {
		t.Fatalf("Reset left data behind")
	}
	if s.Epoch() != before+1 {
		t.Fatalf("Reset must advance the epoch, got %d -> %d", before, s.Epoch())
	}

	// A second reset is harmless and still advances the epoch.
	s.Reset()
	if len(s.Transactions()) != 0 || s.Sentiment() != "" {
		t.Fatalf("double Reset left data behind")
	}
	if s.Epoch() != before+2 {
		t.Fatalf("second Reset must advance the epoch again")
	}
}

func TestTickersDeduplicatesInOrder(t *testing.T) {
	s := NewStore()
	s.SetTransactions([]models.Transaction{
		{Ticker: "AAPL"}, {Ticker: "GOOG"}, {Ticker: "AAPL"}, {Ticker: "MSFT"},
	})

	got := s.Tickers()
	want := []string{"AAPL", "GOOG", "MSFT"}
	if len(got) != len(want) {
		t.Fatalf("Tickers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Tickers = %v, want %v", got, want)
		}
	}
}

func TestCostBasis(t *testing.T) {
	s := NewStore()
	s.SetTransactions([]models.Transaction{
		{Ticker: "AAPL", Quantity: 10, Price: 150.25},
		{Ticker: "GOOG", Quantity: 5, Price: 30.10},
	})

	if got := s.CostBasis().StringFixed(2); got != "1653.00" {
		t.Fatalf("CostBasis = %s, want 1653.00", got)
	}
}
