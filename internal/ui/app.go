// Package ui is the interactive terminal client: one bubbletea model shared
// by the five pages, with the router as the only source of page changes.
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"foliodesk/config"
	"foliodesk/internal/api"
	"foliodesk/internal/models"
	"foliodesk/internal/router"
	"foliodesk/internal/session"
	"foliodesk/pkg/logger"
)

// Messages.

// navigationMsg carries one router event into the update loop.
type navigationMsg router.Event

// ConfigReloadedMsg tells the running program that the config file changed on
// disk. The config watcher sends it through Program.Send.
type ConfigReloadedMsg struct {
	Config config.Config
}

type uploadDoneMsg struct {
	epoch   uint64
	preview []models.Transaction
	err     error
}

type sentimentDoneMsg struct {
	epoch     uint64
	sentiment string
	err       error
}

type stockDoneMsg struct {
	epoch uint64
	data  []models.StockDatum
	err   error
}

type newsDoneMsg struct {
	epoch     uint64
	headlines []models.NewsHeadline
	err       error
}

type analyzeDoneMsg struct {
	epoch uint64
	recs  []models.Recommendation
	err   error
}

type previewDoneMsg struct {
	epoch   uint64
	link    string
	article *api.ArticlePreview
	err     error
}

// Model is the top-level bubbletea model. Session and router are shared
// pointers; everything else is value state carried through Update.
type Model struct {
	cfg     config.Config
	api     *api.Client
	preview *api.PreviewClient
	session *session.Store
	router  *router.Router
	log     *logger.Logger

	width  int
	height int
	page   router.Page

	spinner spinner.Model

	upload    uploadState
	sentiment sentimentState
	market    marketState
	analysis  analysisState
}

func NewModel(cfg config.Config, client *api.Client, preview *api.PreviewClient, store *session.Store, r *router.Router, log *logger.Logger) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	m := Model{
		cfg:     cfg,
		api:     client,
		preview: preview,
		session: store,
		router:  r,
		log:     log,
		page:    r.Current(),
		spinner: sp,
	}
	m.resetPages()
	return m
}

// listenNavigation waits for the next router event. The update loop re-arms
// it after every received event, so no navigation is ever missed.
func listenNavigation(r *router.Router) tea.Cmd {
	return func() tea.Msg {
		return navigationMsg(<-r.Events())
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, listenNavigation(m.router))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case navigationMsg:
		m.page = msg.Page
		m.log.Debug("page changed", logger.StringField("location", msg.Location))
		if m.page == router.PageMarketData && strings.TrimSpace(m.market.input.Value()) == "" {
			if tickers := m.session.Tickers(); len(tickers) > 0 {
				m.market.input.SetValue(strings.Join(tickers, ","))
			}
		}
		return m, listenNavigation(m.router)

	case ConfigReloadedMsg:
		m.cfg = msg.Config
		m.api.SetBaseURL(msg.Config.APIBaseURL)
		SetAccent(msg.Config.Accent)
		m.log.Info("configuration reloaded",
			logger.StringField("api_base_url", msg.Config.APIBaseURL))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case uploadDoneMsg:
		if msg.epoch != m.session.Epoch() {
			return m, nil
		}
		if msg.err != nil {
			m.upload.status.Fail(api.ErrorMessage(msg.err))
			m.log.Warn("upload failed", logger.ErrorField(msg.err))
			return m, nil
		}
		m.upload.status.Done()
		m.session.SetTransactions(msg.preview)
		m.log.Info("transactions uploaded", logger.IntField("rows", len(msg.preview)))
		m.router.Navigate("/dashboard")
		return m, nil

	case sentimentDoneMsg:
		if msg.epoch != m.session.Epoch() {
			return m, nil
		}
		if msg.err != nil {
			m.sentiment.status.Fail(api.ErrorMessage(msg.err))
			m.log.Warn("sentiment submission failed", logger.ErrorField(msg.err))
			return m, nil
		}
		m.sentiment.status.Done()
		m.session.SetSentiment(msg.sentiment)
		return m, nil

	case stockDoneMsg:
		if msg.epoch != m.session.Epoch() {
			return m, nil
		}
		if msg.err != nil {
			m.market.stocks.Fail(api.ErrorMessage(msg.err))
			m.log.Warn("stock data fetch failed", logger.ErrorField(msg.err))
			return m, nil
		}
		m.market.stocks.Done()
		m.session.SetStockData(msg.data)
		return m, nil

	case newsDoneMsg:
		if msg.epoch != m.session.Epoch() {
			return m, nil
		}
		if msg.err != nil {
			m.market.news.Fail(api.ErrorMessage(msg.err))
			m.log.Warn("news fetch failed", logger.ErrorField(msg.err))
			return m, nil
		}
		m.market.news.Done()
		m.market.selected = 0
		m.session.SetNews(msg.headlines)
		return m, nil

	case previewDoneMsg:
		if msg.epoch != m.session.Epoch() {
			return m, nil
		}
		if msg.err != nil {
			m.market.previewStatus.Fail(api.ErrorMessage(msg.err))
			return m, nil
		}
		m.market.previewStatus.Done()
		m.market.article = msg.article
		m.market.articleFor = msg.link
		return m, nil

	case analyzeDoneMsg:
		if msg.epoch != m.session.Epoch() {
			return m, nil
		}
		if msg.err != nil {
			m.analysis.status.Fail(api.ErrorMessage(msg.err))
			m.log.Warn("analysis failed", logger.ErrorField(msg.err))
			return m, nil
		}
		m.analysis.status.Done()
		m.session.SetAnalysis(msg.recs)
		m.log.Info("analysis received", logger.IntField("recommendations", len(msg.recs)))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+l":
			return m.logout()
		}
		if !m.typing() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1", "2", "3", "4", "5":
				m.router.Navigate(router.Locations[msg.String()[0]-'1'])
				return m, nil
			case "[":
				m.router.Back()
				return m, nil
			case "]":
				m.router.Forward()
				return m, nil
			}
		}
		return m.updatePage(msg)
	}

	return m.updatePage(msg)
}

// typing reports whether the active page's text input has focus, which routes
// printable keys into the input instead of the global bindings.
func (m Model) typing() bool {
	switch m.page {
	case router.PageSentiment:
		return m.sentiment.input.Focused()
	case router.PageMarketData:
		return m.market.input.Focused()
	case router.PageUpload:
		return m.upload.input.Focused()
	}
	return false
}

func (m Model) updatePage(msg tea.Msg) (Model, tea.Cmd) {
	switch m.page {
	case router.PageDashboard:
		return m, nil
	case router.PageSentiment:
		return m.updateSentiment(msg)
	case router.PageMarketData:
		return m.updateMarketData(msg)
	case router.PageAnalysis:
		return m.updateAnalysis(msg)
	default:
		return m.updateUpload(msg)
	}
}

// logout clears the whole session and returns to the upload page. Running it
// twice in a row is safe: the second pass finds everything already empty and
// the navigation is a no-op.
func (m Model) logout() (Model, tea.Cmd) {
	m.session.Reset()
	m.resetPages()
	m.router.Navigate(router.DefaultLocation)
	m.log.Info("logged out")
	return m, nil
}

func (m *Model) resetPages() {
	m.upload = newUploadState()
	m.sentiment = newSentimentState()
	m.market = newMarketState()
	m.analysis = analysisState{}
}

func (m Model) View() string {
	header := titleStyle.Render("FolioDesk") + " " +
		dimStyle.Render("portfolio insights  "+m.router.Location())
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.navView(), panelStyle.Render(m.pageView()))
	return header + "\n" + body + "\n" + dimStyle.Render(m.helpLine())
}

func (m Model) navView() string {
	var b strings.Builder
	for i, loc := range router.Locations {
		page := router.Resolve(loc)
		label := string('1'+rune(i)) + " " + page.Title()
		if page == m.page {
			b.WriteString(navActiveStyle.Render("> " + label))
		} else {
			b.WriteString(navItemStyle.Render("  " + label))
		}
		if i < len(router.Locations)-1 {
			b.WriteString("\n")
		}
	}
	return navStyle.Render(b.String())
}

func (m Model) pageView() string {
	switch m.page {
	case router.PageDashboard:
		return m.viewDashboard()
	case router.PageSentiment:
		return m.viewSentiment()
	case router.PageMarketData:
		return m.viewMarketData()
	case router.PageAnalysis:
		return m.viewAnalysis()
	default:
		return m.viewUpload()
	}
}

func (m Model) helpLine() string {
	base := "1-5 pages  [ back  ] forward  i edit  esc done  ctrl+l logout  q quit"
	if m.page == router.PageMarketData {
		base = "enter fetch  s stocks  n news  up/down select  o preview  " + base
	}
	return " " + base
}
