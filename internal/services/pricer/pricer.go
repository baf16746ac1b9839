// Package pricer quotes KRW prices from the public ticker endpoints of the
// supported venues and resolves a symbol's price through a fixed cascade.
package pricer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/hanjoon/cexfolio/internal/domain"
)

const quoteTimeout = 10 * time.Second

// Source quotes one venue's KRW price for a trading symbol.
type Source interface {
	Name() string
	Quote(ctx context.Context, symbol string) domain.PriceQuote
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: quoteTimeout}
}

func fetchJSON(ctx context.Context, httpClient *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("GET %s: status %d", req.URL.Path, resp.StatusCode)
	}
	return errors.Wrapf(json.Unmarshal(body, out), "decode %s response", req.URL.Path)
}
