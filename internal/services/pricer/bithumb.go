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

type BithumbSource struct {
	baseURL    string
	httpClient *http.Client
}

func NewBithumbSource() *BithumbSource {
	return &BithumbSource{baseURL: "https://api.bithumb.com", httpClient: newHTTPClient()}
}

func (s *BithumbSource) Name() string { return "Bithumb" }

type bithumbTicker struct {
	Status string `json:"status"`
	Data   struct {
		ClosingPrice decimal.Decimal `json:"closing_price"`
	} `json:"data"`
}

func (s *BithumbSource) Quote(ctx context.Context, symbol string) domain.PriceQuote {
	quote := domain.PriceQuote{Source: s.Name()}

	url := fmt.Sprintf("%s/public/ticker/%s_KRW", s.baseURL, strings.ToUpper(symbol))
	var ticker bithumbTicker
	if err := fetchJSON(ctx, s.httpClient, url, &ticker); err != nil {
		quote.Err = err
		return quote
	}
	if ticker.Status != "0000" {
		quote.Err = errors.Errorf("bithumb ticker returned status %q for %s", ticker.Status, symbol)
		return quote
	}

	quote.Price = ticker.Data.ClosingPrice
	return quote
}
