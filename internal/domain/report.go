package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportLine is one priced row of a portfolio report.
// Exchange is empty for single-exchange reports and carries either the
// owning exchange (aggregated report) or the quoting source (holdings report).
type ReportLine struct {
	Currency string
	Balance  decimal.Decimal
	Price    decimal.Decimal
	Total    decimal.Decimal
	Time     time.Time
	Exchange string
}

// Holding is an externally supplied position: a symbol and how much of it is held.
type Holding struct {
	Symbol string
	Amount decimal.Decimal
}
