package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceQuote is a single venue's answer for a symbol's KRW price.
// Time is set only when the venue's payload carries its own timestamp.
type PriceQuote struct {
	Source string
	Price  decimal.Decimal
	Time   time.Time
	Err    error
}

// Valid reports whether the quote is economically usable:
// no error and a strictly positive price.
func (q PriceQuote) Valid() bool {
	return q.Err == nil && q.Price.IsPositive()
}
