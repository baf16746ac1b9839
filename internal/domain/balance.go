package domain

import "github.com/shopspring/decimal"

// KRW is the local fiat unit every report is denominated in.
const KRW = "KRW"

// Balance is one currency position as reported by an exchange,
// split into the freely available part and the part locked in orders.
type Balance struct {
	Currency  string
	Available decimal.Decimal
	Locked    decimal.Decimal
}

// Total returns the full position size, locked funds included.
func (b Balance) Total() decimal.Decimal {
	return b.Available.Add(b.Locked)
}
