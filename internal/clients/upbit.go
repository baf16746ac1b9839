package clients

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"net/url"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/hanjoon/cexfolio/internal/domain"
	"github.com/hanjoon/cexfolio/internal/services/balance"
)

const upbitBaseURL = "https://api.upbit.com"

// Upbit signs every call with a bearer JWT. When the call carries query
// parameters, a SHA-512 digest of the encoded query string is embedded in
// the claims so the token is only valid for that exact query.
type Upbit struct {
	baseURL    string
	creds      domain.Credentials
	httpClient *http.Client
}

func NewUpbit(key, secret string) *Upbit {
	return &Upbit{
		baseURL:    upbitBaseURL,
		creds:      domain.Credentials{Key: key, Secret: secret},
		httpClient: newHTTPClient(),
	}
}

func (u *Upbit) Name() string { return "Upbit" }

func (u *Upbit) authToken(query url.Values) (string, error) {
	claims := jwt.MapClaims{
		"access_key": u.creds.Key,
		"nonce":      uuid.NewString(),
	}
	if len(query) > 0 {
		sum := sha512.Sum512([]byte(query.Encode()))
		claims["query_hash"] = hex.EncodeToString(sum[:])
		claims["query_hash_alg"] = "SHA512"
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(u.creds.Secret))
	if err != nil {
		return "", errors.Wrap(err, "sign upbit token")
	}
	return "Bearer " + token, nil
}

func (u *Upbit) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := u.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	token, err := u.authToken(query)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", token)
	return doJSON(u.httpClient, req, out)
}

func (u *Upbit) Balances(ctx context.Context, currencies []string) ([]domain.Balance, error) {
	var rows []balance.Row
	if err := u.get(ctx, "/v1/accounts", nil, &rows); err != nil {
		return nil, err
	}
	balances := balance.UpbitSchema.Normalize(rows)
	if currencies != nil {
		return balance.Fill(balances, currencies), nil
	}
	return balances, nil
}
