package pricer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hanjoon/cexfolio/internal/domain"
)

// KorbitSource serves the Korbit per-exchange report; the venue is not part
// of the default cascade.
type KorbitSource struct {
	baseURL    string
	httpClient *http.Client
}

func NewKorbitSource() *KorbitSource {
	return &KorbitSource{baseURL: "https://api.korbit.co.kr", httpClient: newHTTPClient()}
}

func (s *KorbitSource) Name() string { return "Korbit" }

type korbitTicker struct {
	Timestamp json.Number     `json:"timestamp"`
	Last      decimal.Decimal `json:"last"`
}

func (s *KorbitSource) Quote(ctx context.Context, symbol string) domain.PriceQuote {
	quote := domain.PriceQuote{Source: s.Name()}

	url := fmt.Sprintf("%s/v1/ticker/detailed?currency_pair=%s_krw", s.baseURL, strings.ToLower(symbol))
	var ticker korbitTicker
	if err := fetchJSON(ctx, s.httpClient, url, &ticker); err != nil {
		quote.Err = err
		return quote
	}

	quote.Price = ticker.Last
	if millis, err := strconv.ParseInt(ticker.Timestamp.String(), 10, 64); err == nil && millis > 0 {
		quote.Time = time.UnixMilli(millis)
	}
	return quote
}
