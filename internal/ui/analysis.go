package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"foliodesk/internal/api"
)

type analysisState struct {
	status Status
}

func (m Model) updateAnalysis(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		return m.submitAnalyze()
	}
	return m, nil
}

// submitAnalyze is gated on the four prerequisite slots; until every one is
// filled it shows what is missing and issues no request.
func (m Model) submitAnalyze() (Model, tea.Cmd) {
	if m.analysis.status.Loading() {
		return m, nil
	}
	if !m.session.ReadyForAnalysis() {
		m.analysis.status.Fail("Cannot analyze yet, still missing: " +
			strings.Join(m.session.MissingForAnalysis(), ", ") + ".")
		return m, nil
	}
	m.analysis.status.Start()

	client := m.api
	epoch := m.session.Epoch()
	req := api.BuildAnalyzeRequest(m.cfg.UserID, m.session.Sentiment(),
		m.session.Transactions(), m.session.StockData(), m.session.News())
	return m, func() tea.Msg {
		recs, err := client.Analyze(req)
		return analyzeDoneMsg{epoch: epoch, recs: recs, err: err}
	}
}

func (m Model) viewAnalysis() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Portfolio analysis"))
	b.WriteString("\n\n")

	if line := m.analysis.status.View(m.spinner.View(), "Analyzing portfolio..."); line != "" {
		b.WriteString(line)
		b.WriteString("\n\n")
	}

	if recs := m.session.Analysis(); len(recs) > 0 {
		for _, r := range recs {
			b.WriteString(okStyle.Render(r.Ticker + ": " + r.Recommendation))
			b.WriteString(dimStyle.Render("  (" + r.Confidence + " confidence)"))
			b.WriteString("\n")
			b.WriteString("  " + r.Reasoning)
			b.WriteString("\n\n")
		}
	}

	if m.session.ReadyForAnalysis() {
		b.WriteString(dimStyle.Render("press enter to request recommendations"))
	} else {
		b.WriteString(dimStyle.Render("Analysis unlocks once transactions, sentiment, stock data and news are all loaded."))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Missing: " + strings.Join(m.session.MissingForAnalysis(), ", ")))
	}
	return b.String()
}
