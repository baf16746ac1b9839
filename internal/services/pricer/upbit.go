package pricer

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/hanjoon/cexfolio/internal/domain"
)

type UpbitSource struct {
	baseURL    string
	httpClient *http.Client
}

func NewUpbitSource() *UpbitSource {
	return &UpbitSource{baseURL: "https://api.upbit.com", httpClient: newHTTPClient()}
}

func (s *UpbitSource) Name() string { return "Upbit" }

type upbitTicker struct {
	TradePrice decimal.Decimal `json:"trade_price"`
	Timestamp  int64           `json:"timestamp"`
}

func (s *UpbitSource) Quote(ctx context.Context, symbol string) domain.PriceQuote {
	quote := domain.PriceQuote{Source: s.Name()}

	url := fmt.Sprintf("%s/v1/ticker?markets=KRW-%s", s.baseURL, strings.ToUpper(symbol))
	var tickers []upbitTicker
	if err := fetchJSON(ctx, s.httpClient, url, &tickers); err != nil {
		quote.Err = err
		return quote
	}
	if len(tickers) == 0 {
		quote.Err = errors.Errorf("upbit returned no ticker for %s", symbol)
		return quote
	}

	quote.Price = tickers[0].TradePrice
	quote.Time = time.UnixMilli(tickers[0].Timestamp)
	return quote
}
