// Package balance converts the exchanges' heterogeneous account payloads
// into the canonical Balance shape and filters them for reporting.
package balance

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hanjoon/cexfolio/internal/domain"
)

// Row is one account entry exactly as an exchange encodes it, keyed by the
// exchange's own field names.
type Row map[string]any

// Schema maps an exchange's raw field names onto the canonical Balance
// shape. Field names are validated here, at the boundary, instead of being
// looked up ad hoc downstream.
type Schema struct {
	Currency  string
	Available string
	Locked    string
}

// Per-exchange field mappings. Locked funds go by a different name on
// every venue: in-order quantity on Upbit and Bithumb, withdrawal limit on
// Coinone, trade-in-use on Korbit.
var (
	UpbitSchema   = Schema{Currency: "currency", Available: "balance", Locked: "locked"}
	BithumbSchema = Schema{Currency: "currency", Available: "balance", Locked: "locked"}
	CoinoneSchema = Schema{Currency: "currency", Available: "available", Locked: "limit"}
	KorbitSchema  = Schema{Currency: "currency", Available: "available", Locked: "trade_in_use"}
)

// Normalize converts raw rows into canonical balances with uppercase
// currency codes. Rows with a missing currency or an unparseable available
// amount are dropped; a row is never allowed to break the whole payload.
// An absent locked field counts as zero.
func (s Schema) Normalize(rows []Row) []domain.Balance {
	out := make([]domain.Balance, 0, len(rows))
	for _, row := range rows {
		currency, ok := row[s.Currency].(string)
		if !ok || currency == "" {
			continue
		}
		available, ok := amount(row[s.Available])
		if !ok {
			continue
		}
		locked := decimal.Zero
		if raw, present := row[s.Locked]; present {
			locked, ok = amount(raw)
			if !ok {
				continue
			}
		}
		out = append(out, domain.Balance{
			Currency:  strings.ToUpper(currency),
			Available: available,
			Locked:    locked,
		})
	}
	return out
}

// amount parses an exchange-reported quantity, which may arrive as a JSON
// string or number.
func amount(raw any) (decimal.Decimal, bool) {
	switch v := raw.(type) {
	case string:
		d, err := decimal.NewFromString(v)
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(v), true
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		return d, err == nil
	default:
		return decimal.Decimal{}, false
	}
}

// Fill emits one balance per requested currency, in request order: the held
// balance when the exchange reported it, a zero placeholder otherwise. The
// result length always equals the request length.
func Fill(balances []domain.Balance, currencies []string) []domain.Balance {
	byCurrency := make(map[string]domain.Balance, len(balances))
	for _, b := range balances {
		byCurrency[b.Currency] = b
	}
	out := make([]domain.Balance, 0, len(currencies))
	for _, currency := range currencies {
		code := strings.ToUpper(currency)
		if b, ok := byCurrency[code]; ok {
			out = append(out, b)
			continue
		}
		out = append(out, domain.Balance{Currency: code})
	}
	return out
}

// NonzeroOnly keeps balances with a positive total whose currency is not in
// the exclusion set. Exclusions match case-insensitively; locked funds count
// toward the nonzero test the same way they count toward the total.
func NonzeroOnly(balances []domain.Balance, excluded []string) []domain.Balance {
	skip := make(map[string]struct{}, len(excluded))
	for _, code := range excluded {
		skip[strings.ToUpper(code)] = struct{}{}
	}
	out := make([]domain.Balance, 0, len(balances))
	for _, b := range balances {
		if !b.Total().IsPositive() {
			continue
		}
		if _, ok := skip[strings.ToUpper(b.Currency)]; ok {
			continue
		}
		out = append(out, b)
	}
	return out
}
