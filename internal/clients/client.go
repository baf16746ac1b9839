package clients

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/hanjoon/cexfolio/internal/domain"
)

const requestTimeout = 10 * time.Second

// Exchange is the capability every signed exchange client provides.
// With a non-nil currencies list the result always holds one entry per
// requested currency, in request order, zero-filled for currencies the
// exchange does not hold. With a nil list the exchange's own held
// currencies are returned.
type Exchange interface {
	Name() string
	Balances(ctx context.Context, currencies []string) ([]domain.Balance, error)
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}

// doJSON issues the request and decodes a 2xx JSON response into out.
// Transport failures, non-2xx statuses and undecodable bodies all come
// back as errors; callers treat them as "no data" for that call.
func doJSON(httpClient *http.Client, req *http.Request, out any) error {
	resp, err := httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", req.Method, req.URL.Path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "read %s response", req.URL.Path)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("%s %s: status %d: %s", req.Method, req.URL.Path, resp.StatusCode, snippet(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrapf(err, "decode %s response", req.URL.Path)
	}
	return nil
}

func snippet(body []byte) string {
	const max = 200
	if len(body) > max {
		body = body[:max]
	}
	return string(body)
}
