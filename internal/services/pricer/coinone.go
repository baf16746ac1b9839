package pricer

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/hanjoon/cexfolio/internal/domain"
)

type CoinoneSource struct {
	baseURL    string
	httpClient *http.Client
}

func NewCoinoneSource() *CoinoneSource {
	return &CoinoneSource{baseURL: "https://api.coinone.co.kr", httpClient: newHTTPClient()}
}

func (s *CoinoneSource) Name() string { return "Coinone" }

type coinoneTicker struct {
	ErrorCode string          `json:"errorCode"`
	Last      decimal.Decimal `json:"last"`
}

func (s *CoinoneSource) Quote(ctx context.Context, symbol string) domain.PriceQuote {
	quote := domain.PriceQuote{Source: s.Name()}

	url := fmt.Sprintf("%s/ticker/?currency=%s", s.baseURL, strings.ToLower(symbol))
	var ticker coinoneTicker
	if err := fetchJSON(ctx, s.httpClient, url, &ticker); err != nil {
		quote.Err = err
		return quote
	}
	if ticker.ErrorCode != "0" {
		quote.Err = errors.Errorf("coinone ticker returned errorCode %q for %s", ticker.ErrorCode, symbol)
		return quote
	}

	quote.Price = ticker.Last
	return quote
}
