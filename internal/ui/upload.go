package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type uploadState struct {
	input  textinput.Model
	status Status
}

func newUploadState() uploadState {
	ti := textinput.New()
	ti.Placeholder = "transactions.csv"
	ti.CharLimit = 256
	ti.Width = 48
	return uploadState{input: ti}
}

func (m Model) updateUpload(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "i":
			if !m.upload.input.Focused() {
				return m, m.upload.input.Focus()
			}
		case "esc":
			m.upload.input.Blur()
			return m, nil
		case "enter":
			return m.submitUpload()
		}
	}

	var cmd tea.Cmd
	m.upload.input, cmd = m.upload.input.Update(msg)
	return m, cmd
}

// submitUpload validates the path locally first: an empty input never reaches
// the network.
func (m Model) submitUpload() (Model, tea.Cmd) {
	path := strings.TrimSpace(m.upload.input.Value())
	if path == "" {
		m.upload.status.Fail("Please select a CSV file to upload.")
		return m, nil
	}
	if m.upload.status.Loading() {
		return m, nil
	}
	m.upload.input.Blur()
	m.upload.status.Start()
	return m, m.uploadCmd(path)
}

func (m Model) uploadCmd(path string) tea.Cmd {
	client := m.api
	epoch := m.session.Epoch()
	return func() tea.Msg {
		preview, err := client.UploadTransactions(path)
		return uploadDoneMsg{epoch: epoch, preview: preview, err: err}
	}
}

func (m Model) viewUpload() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Upload transaction history"))
	b.WriteString("\n\n")
	b.WriteString("CSV file path:\n")
	b.WriteString(m.upload.input.View())
	b.WriteString("\n\n")
	if line := m.upload.status.View(m.spinner.View(), "Uploading..."); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if n := len(m.session.Transactions()); n > 0 {
		b.WriteString(okStyle.Render(fmt.Sprintf("%d transactions loaded", n)))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("press i to edit the path, enter to upload"))
	return b.String()
}
