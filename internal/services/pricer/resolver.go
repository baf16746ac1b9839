package pricer

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/hanjoon/cexfolio/internal/domain"
)

// NoValidPrice is the sentinel source attribution returned when every
// source in the cascade has been exhausted. Callers must treat such a
// quote as "unpriced" rather than as a failure.
const NoValidPrice = "No valid price found"

// Resolver walks a priority-ordered source list and returns the first
// economically valid quote. The order is a documented contract, not an
// implementation detail: venues earlier in the list win even when later
// ones also carry the symbol.
type Resolver struct {
	sources []Source
	logger  *zap.Logger
}

func NewResolver(logger *zap.Logger, sources ...Source) *Resolver {
	return &Resolver{sources: sources, logger: logger}
}

// NewCascade wires the default order: Upbit, Bithumb, Coinone, then
// CoinGecko as the generic last resort.
func NewCascade(logger *zap.Logger) *Resolver {
	return NewResolver(logger,
		NewUpbitSource(),
		NewBithumbSource(),
		NewCoinoneSource(),
		NewCoinGeckoSource(),
	)
}

// Resolve returns the first valid quote for symbol. KRW itself
// short-circuits to 1.0, attributed to the source under evaluation,
// without any network call. A failing source only advances the cascade;
// exhausting it yields the zero-price sentinel quote, never an error.
func (r *Resolver) Resolve(ctx context.Context, symbol string) domain.PriceQuote {
	for _, source := range r.sources {
		if strings.EqualFold(symbol, domain.KRW) {
			return domain.PriceQuote{Source: source.Name(), Price: decimal.NewFromInt(1)}
		}
		quote := source.Quote(ctx, symbol)
		if quote.Valid() {
			return quote
		}
		if quote.Err != nil {
			r.logger.Debug("price source failed",
				zap.String("source", source.Name()),
				zap.String("symbol", symbol),
				zap.Error(quote.Err))
		}
	}
	return domain.PriceQuote{Source: NoValidPrice}
}
