package router

import (
	"testing"
	"time"
)

func TestResolveKnownLocations(t *testing.T) {
	cases := map[string]Page{
		"/upload":      PageUpload,
		"/dashboard":   PageDashboard,
		"/sentiment":   PageSentiment,
		"/market-data": PageMarketData,
		"/analysis":    PageAnalysis,
	}
	for loc, want := range cases {
		if got := Resolve(loc); got != want {
			t.Fatalf("Resolve(%q) = %q, want %q", loc, got, want)
		}
	}
}

func TestResolveUnknownFallsBackToUpload(t *testing.T) {
	for _, loc := range []string{"", "/", "/settings", "/Dashboard", "dashboard", "/market_data", "#/upload"} {
		if got := Resolve(loc); got != PageUpload {
			t.Fatalf("Resolve(%q) = %q, want upload fallback", loc, got)
		}
	}
}

func TestNavigateRoundTripAndBack(t *testing.T) {
	r := New()
	if r.Location() != DefaultLocation {
		t.Fatalf("fresh router at %q, want %q", r.Location(), DefaultLocation)
	}

	r.Navigate("/dashboard")
	if r.Location() != "/dashboard" {
		t.Fatalf("after Navigate, location = %q", r.Location())
	}
	if r.Current() != PageDashboard {
		t.Fatalf("after Navigate, page = %q", r.Current())
	}

	if !r.Back() {
		t.Fatalf("Back should move with history behind it")
	}
	if r.Location() != "/upload" || r.Current() != PageUpload {
		t.Fatalf("Back did not restore the previous page, at %q", r.Location())
	}

	if r.Back() {
		t.Fatalf("Back at the start of history must not move")
	}
}

func TestForwardAfterBack(t *testing.T) {
	r := New()
	r.Navigate("/dashboard")
	r.Navigate("/sentiment")

	r.Back()
	if r.Location() != "/dashboard" {
		t.Fatalf("Back landed on %q", r.Location())
	}
	if !r.Forward() {
		t.Fatalf("Forward should move after a Back")
	}
	if r.Location() != "/sentiment" {
		t.Fatalf("Forward landed on %q", r.Location())
	}
	if r.Forward() {
		t.Fatalf("Forward at the end of history must not move")
	}
}

func TestNavigateTruncatesForwardHistory(t *testing.T) {
	r := New()
	r.Navigate("/dashboard")
	r.Navigate("/sentiment")
	r.Back()

	r.Navigate("/market-data")
	if r.Forward() {
		t.Fatalf("Navigate must drop forward history")
	}
	if r.Location() != "/market-data" {
		t.Fatalf("at %q after push", r.Location())
	}
	r.Back()
	if r.Location() != "/dashboard" {
		t.Fatalf("history behind the push changed, at %q", r.Location())
	}
}

func TestNavigateEmitsEvent(t *testing.T) {
	r := New()
	r.Navigate("/analysis")

	select {
	case evt := <-r.Events():
		if evt.Location != "/analysis" || evt.Page != PageAnalysis {
			t.Fatalf("unexpected event %+v", evt)
		}
	case <-time.After(time.Second):
		t.Fatalf("Navigate did not emit an event")
	}
}

func TestNavigateToCurrentLocationIsSilent(t *testing.T) {
	r := New()
	r.Navigate(DefaultLocation)

	select {
	case evt := <-r.Events():
		t.Fatalf("no-op navigation emitted %+v", evt)
	case <-time.After(50 * time.Millisecond):
	}
	if r.Back() {
		t.Fatalf("no-op navigation must not grow history")
	}
}

func TestSlowConsumerDoesNotBlockNavigation(t *testing.T) {
	r := New()
	locations := []string{"/dashboard", "/sentiment", "/market-data", "/analysis"}
	for i := 0; i < 10; i++ {
		for _, loc := range locations {
			r.Navigate(loc)
		}
		r.Navigate("/upload")
	}

	// Drain whatever survived; the newest event must be the last navigation.
	var last Event
	for {
		select {
		case evt := <-r.Events():
			last = evt
			continue
		default:
		}
		break
	}
	if last.Location != "/upload" {
		t.Fatalf("newest surviving event is %+v, want the final navigation", last)
	}
}
