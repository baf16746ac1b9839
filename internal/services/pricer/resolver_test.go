package pricer

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hanjoon/cexfolio/internal/domain"
)

type fakeSource struct {
	name  string
	quote domain.PriceQuote
	calls int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Quote(_ context.Context, _ string) domain.PriceQuote {
	f.calls++
	q := f.quote
	q.Source = f.name
	return q
}

func TestResolveStopsAtFirstValidQuote(t *testing.T) {
	first := &fakeSource{name: "first", quote: domain.PriceQuote{Err: errors.New("down")}}
	second := &fakeSource{name: "second", quote: domain.PriceQuote{Price: decimal.NewFromInt(42)}}
	third := &fakeSource{name: "third", quote: domain.PriceQuote{Price: decimal.NewFromInt(99)}}

	resolver := NewResolver(zap.NewNop(), first, second, third)
	quote := resolver.Resolve(context.Background(), "BTC")

	require.True(t, quote.Valid())
	require.True(t, quote.Price.Equal(decimal.NewFromInt(42)))
	require.Equal(t, "second", quote.Source)
	require.Equal(t, 1, first.calls)
	require.Equal(t, 1, second.calls)
	require.Equal(t, 0, third.calls, "a valid quote must short-circuit the cascade")
}

func TestResolveKRWShortCircuitsWithoutNetworkCall(t *testing.T) {
	first := &fakeSource{name: "Upbit", quote: domain.PriceQuote{Price: decimal.NewFromInt(5)}}
	second := &fakeSource{name: "Bithumb", quote: domain.PriceQuote{Price: decimal.NewFromInt(5)}}

	resolver := NewResolver(zap.NewNop(), first, second)

	for _, symbol := range []string{"KRW", "krw", "Krw"} {
		quote := resolver.Resolve(context.Background(), symbol)
		require.True(t, quote.Price.Equal(decimal.NewFromInt(1)))
		require.Equal(t, "Upbit", quote.Source)
	}
	require.Equal(t, 0, first.calls)
	require.Equal(t, 0, second.calls)
}

func TestResolveErrorQuoteIsInvalidRegardlessOfPrice(t *testing.T) {
	// An errored quote must not win even when it carries a positive price.
	poisoned := &fakeSource{name: "poisoned", quote: domain.PriceQuote{Price: decimal.NewFromInt(100), Err: errors.New("stale")}}
	healthy := &fakeSource{name: "healthy", quote: domain.PriceQuote{Price: decimal.NewFromInt(7)}}

	resolver := NewResolver(zap.NewNop(), poisoned, healthy)
	quote := resolver.Resolve(context.Background(), "ETH")

	require.Equal(t, "healthy", quote.Source)
	require.True(t, quote.Price.Equal(decimal.NewFromInt(7)))
}

func TestResolveExhaustionReturnsSentinel(t *testing.T) {
	down := &fakeSource{name: "down", quote: domain.PriceQuote{Err: errors.New("boom")}}
	zero := &fakeSource{name: "zero", quote: domain.PriceQuote{Price: decimal.Zero}}

	resolver := NewResolver(zap.NewNop(), down, zero)
	quote := resolver.Resolve(context.Background(), "NOTDEFINEDCOIN")

	require.False(t, quote.Valid())
	require.Equal(t, NoValidPrice, quote.Source)
	require.True(t, quote.Price.IsZero())
	require.Equal(t, 1, down.calls)
	require.Equal(t, 1, zero.calls)
}
