package ui

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"foliodesk/config"
	"foliodesk/internal/api"
	"foliodesk/internal/models"
	"foliodesk/internal/router"
	"foliodesk/internal/session"
	"foliodesk/pkg/logger"
)

func newTestModel(t *testing.T, baseURL string) Model {
	t.Helper()
	cfg := config.Config{APIBaseURL: baseURL, UserID: "demo-user"}
	return NewModel(cfg, api.NewClient(&cfg), api.NewPreviewClient(&cfg),
		session.NewStore(), router.New(), logger.Nop())
}

// nextNavigation pulls the event the router emitted, the way the running
// program's listener command does.
func nextNavigation(t *testing.T, r *router.Router) navigationMsg {
	t.Helper()
	select {
	case evt := <-r.Events():
		return navigationMsg(evt)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a navigation event")
		return navigationMsg{}
	}
}

func keyRune(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestUploadWithEmptyPathMakesNoRequest(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
	}))
	defer srv.Close()

	m := newTestModel(t, srv.URL)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatalf("expected no command for an empty upload path")
	}
	view := updated.(Model).View()
	if !strings.Contains(view, "Please select a CSV file to upload.") {
		t.Errorf("view does not show the inline validation error:\n%s", view)
	}
	if atomic.LoadInt64(&hits) != 0 {
		t.Errorf("expected zero requests, server saw %d", hits)
	}
}

func TestUploadSuccessNavigatesToDashboard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"preview":[{"ticker":"AAPL","buy_date":"2023-01-01","quantity":10,"price":150.25}]}`)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "transactions.csv")
	if err := os.WriteFile(path, []byte("ticker,buy_date,quantity,price\nAAPL,2023-01-01,10,150.25\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := newTestModel(t, srv.URL)
	m.upload.input.SetValue(path)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected an upload command")
	}
	updated, _ = m.Update(cmd())
	m = updated.(Model)

	if len(m.session.Transactions()) != 1 {
		t.Fatalf("expected one preview transaction, got %d", len(m.session.Transactions()))
	}
	updated, _ = m.Update(nextNavigation(t, m.router))
	m = updated.(Model)
	if m.page != router.PageDashboard {
		t.Fatalf("successful upload should land on the dashboard, got %s", m.page)
	}
}

func TestDashboardShowsUploadedTransactions(t *testing.T) {
	m := newTestModel(t, "http://localhost:0")
	m.session.SetTransactions([]models.Transaction{
		{Ticker: "AAPL", BuyDate: "2023-01-01", Quantity: 10, Price: 150.25},
	})
	m.router.Navigate("/dashboard")
	updated, _ := m.Update(nextNavigation(t, m.router))

	view := updated.(Model).View()
	for _, want := range []string{"AAPL", "2023-01-01", " 10", "$150.25"} {
		if !strings.Contains(view, want) {
			t.Errorf("dashboard view missing %q:\n%s", want, view)
		}
	}
}

func TestStockErrorStaysInStockSection(t *testing.T) {
	m := newTestModel(t, "http://localhost:0")
	m.router.Navigate("/market-data")
	updated, _ := m.Update(nextNavigation(t, m.router))
	m = updated.(Model)

	epoch := m.session.Epoch()
	updated, _ = m.Update(newsDoneMsg{epoch: epoch, headlines: []models.NewsHeadline{
		{Source: "Reuters", Title: "Apple ships new chip", Link: "http://example.com/a"},
	}})
	m = updated.(Model)
	updated, _ = m.Update(stockDoneMsg{epoch: epoch, err: &api.APIError{StatusCode: 500, Message: "server error"}})
	m = updated.(Model)

	view := m.View()
	if !strings.Contains(view, "server error") {
		t.Errorf("stock section does not surface the server message:\n%s", view)
	}
	if !strings.Contains(view, "Apple ships new chip") {
		t.Errorf("news section should be unaffected by the stock failure:\n%s", view)
	}
	if m.market.news.State == StateFailed {
		t.Errorf("news status must not fail with the stock fetch")
	}
}

func TestMarketFetchesRunIndependently(t *testing.T) {
	var stockHits, newsHits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/get-stock-data":
			atomic.AddInt64(&stockHits, 1)
			fmt.Fprint(w, `{"data":[{"ticker":"AAPL","pe_ratio":28.4,"eps":6.1,"price_history":[]}]}`)
		case "/get-news":
			atomic.AddInt64(&newsHits, 1)
			fmt.Fprint(w, `{"headlines":[{"source":"Reuters","title":"Apple ships new chip","link":""}]}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	m := newTestModel(t, srv.URL)
	m.router.Navigate("/market-data")
	updated, _ := m.Update(nextNavigation(t, m.router))
	m = updated.(Model)
	m.market.input.SetValue("AAPL,GOOG")

	updated, cmd := m.Update(keyRune("s"))
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("s should fire the stock fetch")
	}
	if !m.market.stocks.Loading() {
		t.Errorf("stock status should be loading")
	}
	if m.market.news.Loading() {
		t.Errorf("news status must stay idle while only stocks load")
	}
	updated, _ = m.Update(cmd())
	m = updated.(Model)
	if m.market.stocks.Loading() {
		t.Errorf("stock status should settle after the response")
	}
	if len(m.session.StockData()) != 1 {
		t.Fatalf("expected one stock datum, got %d", len(m.session.StockData()))
	}

	updated, cmd = m.Update(keyRune("n"))
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("n should fire the news fetch")
	}
	updated, _ = m.Update(cmd())
	m = updated.(Model)
	if len(m.session.News()) != 1 {
		t.Fatalf("expected one headline, got %d", len(m.session.News()))
	}
	if atomic.LoadInt64(&stockHits) != 1 || atomic.LoadInt64(&newsHits) != 1 {
		t.Errorf("expected one hit per endpoint, got stocks=%d news=%d", stockHits, newsHits)
	}
}

func TestSentimentEchoedValueIsConfirmed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/get-sentiment" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"sentiment":"bullish on tech"}`)
	}))
	defer srv.Close()

	m := newTestModel(t, srv.URL)
	m.router.Navigate("/sentiment")
	updated, _ := m.Update(nextNavigation(t, m.router))
	m = updated.(Model)
	m.sentiment.input.SetValue("bullish on tech")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected a submit command")
	}
	updated, _ = m.Update(cmd())
	m = updated.(Model)

	if got := m.session.Sentiment(); got != "bullish on tech" {
		t.Fatalf("stored sentiment = %q, want %q", got, "bullish on tech")
	}
	if !strings.Contains(m.View(), "bullish on tech") {
		t.Errorf("confirmation should include the echoed sentiment:\n%s", m.View())
	}
}

func TestAnalysisBlockedUntilAllSlotsFilled(t *testing.T) {
	fill := map[string]func(s *session.Store){
		"transactions": func(s *session.Store) {
			s.SetTransactions([]models.Transaction{{Ticker: "AAPL", Quantity: 10, Price: 150.25}})
		},
		"sentiment": func(s *session.Store) { s.SetSentiment("bullish") },
		"stock data": func(s *session.Store) {
			s.SetStockData([]models.StockDatum{{Ticker: "AAPL", PERatio: 28.4}})
		},
		"news": func(s *session.Store) { s.SetNews([]models.NewsHeadline{{Title: "headline"}}) },
	}

	for skip := range fill {
		m := newTestModel(t, "http://localhost:0")
		for name, apply := range fill {
			if name != skip {
				apply(m.session)
			}
		}
		m.router.Navigate("/analysis")
		updated, _ := m.Update(nextNavigation(t, m.router))
		m = updated.(Model)

		updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if cmd != nil {
			t.Errorf("analysis must stay blocked while %s is missing", skip)
		}
		if !strings.Contains(updated.(Model).View(), skip) {
			t.Errorf("blocked view should name the missing slot %q", skip)
		}
	}

	m := newTestModel(t, "http://localhost:0")
	for _, apply := range fill {
		apply(m.session)
	}
	m.router.Navigate("/analysis")
	updated, _ := m.Update(nextNavigation(t, m.router))
	_, cmd := updated.(Model).Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("analysis should fire once all four slots are filled")
	}
}

func TestLateResponseAfterLogoutIsDropped(t *testing.T) {
	m := newTestModel(t, "http://localhost:0")
	stale := m.session.Epoch()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m = updated.(Model)

	updated, _ = m.Update(uploadDoneMsg{epoch: stale, preview: []models.Transaction{{Ticker: "AAPL"}}})
	m = updated.(Model)

	if len(m.session.Transactions()) != 0 {
		t.Fatalf("stale upload result must not repopulate a reset session")
	}
}

func TestLogoutTwiceLeavesEverythingEmpty(t *testing.T) {
	m := newTestModel(t, "http://localhost:0")
	m.session.SetTransactions([]models.Transaction{{Ticker: "AAPL"}})
	m.session.SetSentiment("bullish")
	m.session.SetStockData([]models.StockDatum{{Ticker: "AAPL"}})
	m.session.SetNews([]models.NewsHeadline{{Title: "headline"}})
	m.session.SetAnalysis([]models.Recommendation{{Ticker: "AAPL"}})

	m.router.Navigate("/dashboard")
	updated, _ := m.Update(nextNavigation(t, m.router))
	m = updated.(Model)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m = updated.(Model)
	updated, _ = m.Update(nextNavigation(t, m.router))
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m = updated.(Model)

	if m.router.Location() != "/upload" || m.page != router.PageUpload {
		t.Fatalf("expected the upload page after logout, at %s", m.router.Location())
	}
	if len(m.session.Transactions()) != 0 || m.session.Sentiment() != "" ||
		len(m.session.StockData()) != 0 || len(m.session.News()) != 0 ||
		len(m.session.Analysis()) != 0 {
		t.Fatalf("logout must clear every session slot")
	}
}

func TestNumberKeysNavigate(t *testing.T) {
	m := newTestModel(t, "http://localhost:0")
	updated, _ := m.Update(keyRune("3"))
	m = updated.(Model)
	updated, _ = m.Update(nextNavigation(t, m.router))
	m = updated.(Model)
	if m.page != router.PageSentiment {
		t.Fatalf("key 3 should land on sentiment, got %s", m.page)
	}

	updated, _ = m.Update(keyRune("["))
	m = updated.(Model)
	updated, _ = m.Update(nextNavigation(t, m.router))
	m = updated.(Model)
	if m.page != router.PageUpload {
		t.Fatalf("back should return to upload, got %s", m.page)
	}
}
