// Package report joins normalized balances with resolved prices into
// sorted portfolio reports, per exchange and across exchanges.
package report

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/hanjoon/cexfolio/internal/domain"
)

// Resolver yields a priced quote for a symbol. Satisfied by
// pricer.Resolver, whether it wraps the full cascade or a single venue.
type Resolver interface {
	Resolve(ctx context.Context, symbol string) domain.PriceQuote
}

// Builder prices balances and assembles report lines.
type Builder struct {
	resolver Resolver
	logger   *zap.Logger
	now      func() time.Time
}

func NewBuilder(resolver Resolver, logger *zap.Logger) *Builder {
	return &Builder{resolver: resolver, logger: logger, now: time.Now}
}

// Build prices every balance and returns lines sorted by total, largest
// first, ties keeping their input order. Balances the resolver cannot
// price are dropped with a warning rather than reported at zero. A line's
// time is the quote's own timestamp when the venue supplied one, the
// build time otherwise.
func (b *Builder) Build(ctx context.Context, balances []domain.Balance) []domain.ReportLine {
	lines := make([]domain.ReportLine, 0, len(balances))
	for _, bal := range balances {
		quote := b.resolver.Resolve(ctx, bal.Currency)
		if !quote.Valid() {
			b.logger.Warn("dropping unpriced balance",
				zap.String("currency", bal.Currency),
				zap.String("source", quote.Source))
			continue
		}

		ts := quote.Time
		if ts.IsZero() {
			ts = b.now()
		}
		total := bal.Total().Mul(quote.Price)
		lines = append(lines, domain.ReportLine{
			Currency: bal.Currency,
			Balance:  bal.Total(),
			Price:    quote.Price,
			Total:    total,
			Time:     ts,
		})
	}
	sortByTotal(lines)
	return lines
}

func sortByTotal(lines []domain.ReportLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Total.GreaterThan(lines[j].Total)
	})
}
