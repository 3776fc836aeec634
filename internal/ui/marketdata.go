package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"foliodesk/internal/api"
)

type marketState struct {
	input textinput.Model

	// Stocks and news each own a Status so one fetch can be in flight while
	// the other is idle, and errors stay under their own section.
	stocks Status
	news   Status

	selected      int
	previewStatus Status
	article       *api.ArticlePreview
	articleFor    string
}

func newMarketState() marketState {
	ti := textinput.New()
	ti.Placeholder = "AAPL,GOOG"
	ti.CharLimit = 256
	ti.Width = 48
	return marketState{input: ti}
}

func (m Model) updateMarketData(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "i":
			if !m.market.input.Focused() {
				return m, m.market.input.Focus()
			}
		case "esc":
			m.market.input.Blur()
			return m, nil
		case "enter":
			return m.submitMarket(true, true)
		case "s":
			if !m.market.input.Focused() {
				return m.submitMarket(true, false)
			}
		case "n":
			if !m.market.input.Focused() {
				return m.submitMarket(false, true)
			}
		case "up":
			if m.market.selected > 0 {
				m.market.selected--
			}
			return m, nil
		case "down":
			if m.market.selected < len(m.session.News())-1 {
				m.market.selected++
			}
			return m, nil
		case "o":
			if !m.market.input.Focused() {
				return m.openPreview()
			}
		}
	}

	var cmd tea.Cmd
	m.market.input, cmd = m.market.input.Update(msg)
	return m, cmd
}

// submitMarket fires the requested fetches. Both run concurrently on enter;
// each settles its own Status independently.
func (m Model) submitMarket(stocks, news bool) (Model, tea.Cmd) {
	tickers := strings.TrimSpace(m.market.input.Value())
	if tickers == "" {
		if stocks {
			m.market.stocks.Fail("Please enter at least one ticker.")
		}
		if news {
			m.market.news.Fail("Please enter at least one ticker.")
		}
		return m, nil
	}
	m.market.input.Blur()

	client := m.api
	epoch := m.session.Epoch()
	var cmds []tea.Cmd
	if stocks && !m.market.stocks.Loading() {
		m.market.stocks.Start()
		cmds = append(cmds, func() tea.Msg {
			data, err := client.GetStockData(tickers)
			return stockDoneMsg{epoch: epoch, data: data, err: err}
		})
	}
	if news && !m.market.news.Loading() {
		m.market.news.Start()
		cmds = append(cmds, func() tea.Msg {
			headlines, err := client.GetNews(tickers)
			return newsDoneMsg{epoch: epoch, headlines: headlines, err: err}
		})
	}
	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

func (m Model) openPreview() (Model, tea.Cmd) {
	headlines := m.session.News()
	if len(headlines) == 0 || m.market.previewStatus.Loading() {
		return m, nil
	}
	sel := m.market.selected
	if sel >= len(headlines) {
		sel = len(headlines) - 1
	}
	link := headlines[sel].Link

	m.market.previewStatus.Start()
	m.market.article = nil
	client := m.preview
	epoch := m.session.Epoch()
	return m, func() tea.Msg {
		article, err := client.Preview(link)
		return previewDoneMsg{epoch: epoch, link: link, article: article, err: err}
	}
}

func (m Model) viewMarketData() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Market data"))
	b.WriteString("\n\n")
	b.WriteString("Tickers (comma-separated):\n")
	b.WriteString(m.market.input.View())
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Stocks"))
	b.WriteString("\n")
	if line := m.market.stocks.View(m.spinner.View(), "Fetching stock data..."); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	} else if data := m.session.StockData(); len(data) > 0 {
		for _, d := range data {
			b.WriteString(fmt.Sprintf("%-8s P/E %.2f   EPS %.2f   %d closes\n",
				d.Ticker, d.PERatio, d.EPS, len(d.PriceHistory)))
		}
	} else {
		b.WriteString(dimStyle.Render("no stock data yet"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("News"))
	b.WriteString("\n")
	if line := m.market.news.View(m.spinner.View(), "Fetching news..."); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	} else if headlines := m.session.News(); len(headlines) > 0 {
		for i, h := range headlines {
			row := fmt.Sprintf("[%s] %s", h.Source, h.Title)
			if i == m.market.selected {
				b.WriteString(selectedStyle.Render("> " + row))
			} else {
				b.WriteString("  " + row)
			}
			b.WriteString("\n")
		}
		b.WriteString(m.viewArticlePreview())
	} else {
		b.WriteString(dimStyle.Render("no headlines yet"))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewArticlePreview() string {
	if line := m.market.previewStatus.View(m.spinner.View(), "Loading preview..."); line != "" {
		return "\n" + line + "\n"
	}
	if m.market.article == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n")
	if m.market.article.Title != "" {
		b.WriteString(okStyle.Render(m.market.article.Title))
		b.WriteString("\n")
	}
	if m.market.article.Description != "" {
		b.WriteString(dimStyle.Render(m.market.article.Description))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(m.market.articleFor))
	b.WriteString("\n")
	return b.String()
}
