// Package render turns report lines into terminal tables. Presentation
// only; the report schema is owned by the services.
package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/hanjoon/cexfolio/internal/domain"
)

const timeLayout = "2006-01-02 15:04:05"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Table renders report lines. withExchange adds the exchange column used
// by the aggregated and holdings reports.
func Table(lines []domain.ReportLine, withExchange bool) string {
	headers := []string{"CURRENCY", "BALANCE", "PRICE", "TOTAL", "DATE"}
	if withExchange {
		headers = append(headers, "EXCHANGE")
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)

	for _, line := range lines {
		row := []string{
			line.Currency,
			line.Balance.StringFixed(4),
			line.Price.StringFixed(4),
			line.Total.StringFixed(4),
			line.Time.Format(timeLayout),
		}
		if withExchange {
			row = append(row, line.Exchange)
		}
		t.Row(row...)
	}
	return t.Render()
}

// GrandTotal sums the line totals.
func GrandTotal(lines []domain.ReportLine) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(line.Total)
	}
	return sum
}
