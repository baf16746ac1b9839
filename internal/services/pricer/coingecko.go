package pricer

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/hanjoon/cexfolio/internal/domain"
)

// coingeckoIDs maps local trading symbols to CoinGecko's canonical asset
// identifiers. Symbols missing here fall back to the lower-cased symbol
// verbatim as a best-effort identifier.
var coingeckoIDs = map[string]string{
	"btc":     "bitcoin",
	"eth":     "ethereum",
	"sol":     "solana",
	"xrp":     "ripple",
	"ada":     "cardano",
	"doge":    "dogecoin",
	"link":    "chainlink",
	"uni":     "uniswap",
	"ai16z":   "ai16z",
	"virtual": "virtual-protocol",
	"sui":     "sui",
	"fet":     "fetch-ai",
	"usdc":    "usd-coin",
	"usdt":    "tether",
}

// CoinGeckoSource is the generic market-data fallback at the end of the
// cascade, covering symbols no local venue lists.
type CoinGeckoSource struct {
	baseURL    string
	httpClient *http.Client
}

func NewCoinGeckoSource() *CoinGeckoSource {
	return &CoinGeckoSource{baseURL: "https://api.coingecko.com", httpClient: newHTTPClient()}
}

func (s *CoinGeckoSource) Name() string { return "Coingecko" }

func (s *CoinGeckoSource) Quote(ctx context.Context, symbol string) domain.PriceQuote {
	quote := domain.PriceQuote{Source: s.Name()}

	id, ok := coingeckoIDs[strings.ToLower(symbol)]
	if !ok {
		id = strings.ToLower(symbol)
	}

	endpoint := fmt.Sprintf("%s/api/v3/simple/price?ids=%s&vs_currencies=krw", s.baseURL, url.QueryEscape(id))
	var prices map[string]map[string]decimal.Decimal
	if err := fetchJSON(ctx, s.httpClient, endpoint, &prices); err != nil {
		quote.Err = err
		return quote
	}

	price, ok := prices[id]["krw"]
	if !ok {
		quote.Err = errors.Errorf("coingecko returned no krw price for %s", id)
		return quote
	}
	quote.Price = price
	return quote
}
