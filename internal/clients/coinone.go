package clients

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/hanjoon/cexfolio/internal/domain"
	"github.com/hanjoon/cexfolio/internal/services/balance"
)

const coinoneBaseURL = "https://api.coinone.co.kr"

// Coinone authenticates with an HMAC-signed payload: the JSON body is
// base64-encoded into one header and its HMAC-SHA512 hex signature into
// another. A fresh UUID nonce is injected into every payload before
// encoding; reusing a nonce gets the request rejected as a replay.
type Coinone struct {
	baseURL    string
	creds      domain.Credentials
	httpClient *http.Client
}

func NewCoinone(key, secret string) *Coinone {
	return &Coinone{
		baseURL:    coinoneBaseURL,
		creds:      domain.Credentials{Key: key, Secret: secret},
		httpClient: newHTTPClient(),
	}
}

func (c *Coinone) Name() string { return "Coinone" }

func (c *Coinone) encodePayload(payload map[string]any) ([]byte, error) {
	payload["nonce"] = uuid.NewString()
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "encode coinone payload")
	}
	encoded := make([]byte, base64.StdEncoding.EncodedLen(len(raw)))
	base64.StdEncoding.Encode(encoded, raw)
	return encoded, nil
}

func (c *Coinone) sign(encodedPayload []byte) string {
	mac := hmac.New(sha512.New, []byte(c.creds.Secret))
	mac.Write(encodedPayload)
	return hex.EncodeToString(mac.Sum(nil))
}

func (c *Coinone) post(ctx context.Context, path string, payload map[string]any, out any) error {
	encoded, err := c.encodePayload(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-COINONE-PAYLOAD", string(encoded))
	req.Header.Set("X-COINONE-SIGNATURE", c.sign(encoded))
	return doJSON(c.httpClient, req, out)
}

type coinoneBalanceResponse struct {
	Result   string        `json:"result"`
	Balances []balance.Row `json:"balances"`
}

func (c *Coinone) Balances(ctx context.Context, currencies []string) ([]domain.Balance, error) {
	payload := map[string]any{"access_token": c.creds.Key}
	path := "/v2.1/account/balance/all"
	if currencies != nil {
		path = "/v2.1/account/balance"
		payload["currencies"] = currencies
	}

	var resp coinoneBalanceResponse
	if err := c.post(ctx, path, payload, &resp); err != nil {
		return nil, err
	}
	if resp.Result != "success" {
		return nil, errors.Errorf("coinone balance request rejected: result=%q", resp.Result)
	}

	balances := balance.CoinoneSchema.Normalize(resp.Balances)
	if currencies != nil {
		return balance.Fill(balances, currencies), nil
	}
	return balances, nil
}
