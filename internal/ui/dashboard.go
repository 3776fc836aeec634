package ui

import (
	"fmt"
	"strconv"
	"strings"
)

func (m Model) viewDashboard() string {
	txs := m.session.Transactions()

	var b strings.Builder
	b.WriteString(sectionStyle.Render("Dashboard"))
	b.WriteString("\n\n")

	if len(txs) == 0 {
		b.WriteString(dimStyle.Render("No transactions yet. Upload a CSV to get started."))
		return b.String()
	}

	b.WriteString(tableHeaderStyle.Render(fmt.Sprintf("%-8s %-12s %10s %12s", "Ticker", "Buy Date", "Quantity", "Price")))
	b.WriteString("\n")
	for _, t := range txs {
		qty := strconv.FormatFloat(t.Quantity, 'f', -1, 64)
		b.WriteString(fmt.Sprintf("%-8s %-12s %10s %12s\n",
			t.Ticker, t.BuyDate, qty, fmt.Sprintf("$%.2f", t.Price)))
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%d holdings, cost basis %s",
		len(txs), okStyle.Render("$"+m.session.CostBasis().StringFixed(2))))
	return b.String()
}
