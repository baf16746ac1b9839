package report

import (
	"context"
	"strings"
	"time"

	"github.com/hanjoon/cexfolio/internal/domain"
)

// Holdings prices an externally supplied portfolio through the resolver
// and tags every line with the quoting source. Unpriced rows are kept,
// with a zero price and the sentinel source, so callers can flag them
// instead of silently losing them. Lines are sorted by total, largest
// first.
func Holdings(ctx context.Context, holdings []domain.Holding, resolver Resolver) []domain.ReportLine {
	lines := make([]domain.ReportLine, 0, len(holdings))
	for _, h := range holdings {
		quote := resolver.Resolve(ctx, h.Symbol)
		ts := quote.Time
		if ts.IsZero() {
			ts = time.Now()
		}
		lines = append(lines, domain.ReportLine{
			Currency: strings.ToUpper(h.Symbol),
			Balance:  h.Amount,
			Price:    quote.Price,
			Total:    h.Amount.Mul(quote.Price),
			Time:     ts,
			Exchange: quote.Source,
		})
	}
	sortByTotal(lines)
	return lines
}
