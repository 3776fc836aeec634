package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type sentimentState struct {
	input  textinput.Model
	status Status
}

func newSentimentState() sentimentState {
	ti := textinput.New()
	ti.Placeholder = "bullish on tech, cautious on energy"
	ti.CharLimit = 512
	ti.Width = 48
	return sentimentState{input: ti}
}

func (m Model) updateSentiment(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "i":
			if !m.sentiment.input.Focused() {
				return m, m.sentiment.input.Focus()
			}
		case "esc":
			m.sentiment.input.Blur()
			return m, nil
		case "enter":
			return m.submitSentiment()
		}
	}

	var cmd tea.Cmd
	m.sentiment.input, cmd = m.sentiment.input.Update(msg)
	return m, cmd
}

// submitSentiment posts the note with the configured user id. Resubmission is
// never blocked; only an already in-flight request is.
func (m Model) submitSentiment() (Model, tea.Cmd) {
	text := strings.TrimSpace(m.sentiment.input.Value())
	if text == "" {
		m.sentiment.status.Fail("Please enter a sentiment before submitting.")
		return m, nil
	}
	if m.sentiment.status.Loading() {
		return m, nil
	}
	m.sentiment.input.Blur()
	m.sentiment.status.Start()

	client := m.api
	epoch := m.session.Epoch()
	userID := m.cfg.UserID
	return m, func() tea.Msg {
		echoed, err := client.SubmitSentiment(userID, text)
		return sentimentDoneMsg{epoch: epoch, sentiment: echoed, err: err}
	}
}

func (m Model) viewSentiment() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Market sentiment"))
	b.WriteString("\n\n")
	b.WriteString("How do you feel about the market right now?\n")
	b.WriteString(m.sentiment.input.View())
	b.WriteString("\n\n")
	if line := m.sentiment.status.View(m.spinner.View(), "Submitting..."); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if s := m.session.Sentiment(); s != "" {
		b.WriteString(okStyle.Render(fmt.Sprintf("Recorded sentiment: %q", s)))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("press i to edit, enter to submit"))
	return b.String()
}
