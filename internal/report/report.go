// Package report formats analysis results for the terminal and for export.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"

	"foliodesk/internal/models"
)

// Markdown builds the analysis report from the recommendations and the
// session they were produced from.
func Markdown(recs []models.Recommendation, txs []models.Transaction, sentiment string) string {
	var b strings.Builder

	b.WriteString("# Portfolio Analysis\n\n")
	fmt.Fprintf(&b, "_Generated %s_\n\n", time.Now().Format("2006-01-02 15:04"))

	if sentiment != "" {
		fmt.Fprintf(&b, "Stated sentiment: **%s**\n\n", sentiment)
	}
	if len(txs) > 0 {
		total := decimal.Zero
		for _, t := range txs {
			total = total.Add(decimal.NewFromFloat(t.Quantity).Mul(decimal.NewFromFloat(t.Price)))
		}
		fmt.Fprintf(&b, "Holdings: %d positions, cost basis $%s\n\n", len(txs), total.StringFixed(2))
	}

	if len(recs) == 0 {
		b.WriteString("No recommendations were returned.\n")
		return b.String()
	}

	b.WriteString("| Ticker | Recommendation | Confidence |\n")
	b.WriteString("|--------|----------------|------------|\n")
	for _, r := range recs {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", r.Ticker, r.Recommendation, r.Confidence)
	}
	b.WriteString("\n")

	for _, r := range recs {
		fmt.Fprintf(&b, "## %s: %s\n\n%s\n\n", r.Ticker, r.Recommendation, r.Reasoning)
	}

	return b.String()
}

// Render pipes the markdown through glamour for terminal display.
func Render(md string) (string, error) {
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return out, nil
}

// Save writes the raw markdown to the given path, creating parent
// directories as needed.
func Save(md, path string) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %v", path, err)
	}
	return nil
}
