package clients

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/hanjoon/cexfolio/internal/domain"
	"github.com/hanjoon/cexfolio/internal/services/balance"
)

const bithumbBaseURL = "https://api.bithumb.com"

// Bithumb signs every call with a bearer JWT carrying the access key, a
// fresh UUID nonce and a millisecond timestamp.
type Bithumb struct {
	baseURL    string
	creds      domain.Credentials
	httpClient *http.Client
	now        func() time.Time
}

func NewBithumb(key, secret string) *Bithumb {
	return &Bithumb{
		baseURL:    bithumbBaseURL,
		creds:      domain.Credentials{Key: key, Secret: secret},
		httpClient: newHTTPClient(),
		now:        time.Now,
	}
}

func (b *Bithumb) Name() string { return "Bithumb" }

func (b *Bithumb) authToken() (string, error) {
	claims := jwt.MapClaims{
		"access_key": b.creds.Key,
		"nonce":      uuid.NewString(),
		"timestamp":  b.now().UnixMilli(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(b.creds.Secret))
	if err != nil {
		return "", errors.Wrap(err, "sign bithumb token")
	}
	return "Bearer " + token, nil
}

func (b *Bithumb) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+path, nil)
	if err != nil {
		return err
	}
	token, err := b.authToken()
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", token)
	return doJSON(b.httpClient, req, out)
}

func (b *Bithumb) Balances(ctx context.Context, currencies []string) ([]domain.Balance, error) {
	var rows []balance.Row
	if err := b.get(ctx, "/v1/accounts", &rows); err != nil {
		return nil, err
	}
	balances := balance.BithumbSchema.Normalize(rows)
	if currencies != nil {
		return balance.Fill(balances, currencies), nil
	}
	return balances, nil
}
