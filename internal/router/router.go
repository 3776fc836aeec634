// Package router is the navigation state machine of the client.
package router

import "sync"

// Page identifies one of the five screens.
type Page string

const (
	PageUpload     Page = "upload"
	PageDashboard  Page = "dashboard"
	PageSentiment  Page = "sentiment"
	PageMarketData Page = "market-data"
	PageAnalysis   Page = "analysis"
)

// Title returns the display name used in navigation chrome.
func (p Page) Title() string {
	switch p {
	case PageDashboard:
		return "Dashboard"
	case PageSentiment:
		return "Sentiment"
	case PageMarketData:
		return "Market Data"
	case PageAnalysis:
		return "Analysis"
	default:
		return "Upload"
	}
}

// DefaultLocation is where a fresh session starts.
const DefaultLocation = "/upload"

// Locations lists the known locations in navigation order.
var Locations = []string{"/upload", "/dashboard", "/sentiment", "/market-data", "/analysis"}

var pagesByLocation = map[string]Page{
	"/upload":      PageUpload,
	"/dashboard":   PageDashboard,
	"/sentiment":   PageSentiment,
	"/market-data": PageMarketData,
	"/analysis":    PageAnalysis,
}

// Resolve maps a location to its page. Unknown and empty locations fall
// through to the upload page without rewriting the stored location.
func Resolve(location string) Page {
	if p, ok := pagesByLocation[location]; ok {
		return p
	}
	return PageUpload
}

// Event announces that the current location changed.
type Event struct {
	Location string
	Page     Page
}

// Router keeps the location history. Writing the location is the only way
// the active page changes, and every change is announced on Events.
type Router struct {
	mu      sync.Mutex
	history []string
	cursor  int
	events  chan Event
}

func New() *Router {
	return &Router{
		history: []string{DefaultLocation},
		events:  make(chan Event, 16),
	}
}

// Location returns the current location.
func (r *Router) Location() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.history[r.cursor]
}

// Current resolves the current location to its page.
func (r *Router) Current() Page {
	return Resolve(r.Location())
}

// Navigate pushes a new location, dropping any forward history. Navigating
// to the current location is a no-op.
func (r *Router) Navigate(location string) {
	r.mu.Lock()
	if r.history[r.cursor] == location {
		r.mu.Unlock()
		return
	}
	r.history = append(r.history[:r.cursor+1], location)
	r.cursor++
	r.mu.Unlock()

	r.emit(Event{Location: location, Page: Resolve(location)})
}

// Back moves one step into history, reporting whether it moved.
func (r *Router) Back() bool {
	r.mu.Lock()
	if r.cursor == 0 {
		r.mu.Unlock()
		return false
	}
	r.cursor--
	loc := r.history[r.cursor]
	r.mu.Unlock()

	r.emit(Event{Location: loc, Page: Resolve(loc)})
	return true
}

// Forward undoes a Back, reporting whether it moved.
func (r *Router) Forward() bool {
	r.mu.Lock()
	if r.cursor >= len(r.history)-1 {
		r.mu.Unlock()
		return false
	}
	r.cursor++
	loc := r.history[r.cursor]
	r.mu.Unlock()

	r.emit(Event{Location: loc, Page: Resolve(loc)})
	return true
}

// Events is the navigation feed. A consumer that falls behind loses the
// oldest events rather than blocking navigation.
func (r *Router) Events() <-chan Event {
	return r.events
}

func (r *Router) emit(evt Event) {
	for {
		select {
		case r.events <- evt:
			return
		default:
			select {
			case <-r.events:
			default:
			}
		}
	}
}
