package clients

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCoinoneBalancesSignsEncodedPayload(t *testing.T) {
	const secret = "coinone-secret"
	var payloadHeader, signatureHeader string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v2.1/account/balance/all", r.URL.Path)
		payloadHeader = r.Header.Get("X-COINONE-PAYLOAD")
		signatureHeader = r.Header.Get("X-COINONE-SIGNATURE")
		fmt.Fprint(w, `{"result": "success", "balances": [
			{"currency": "SOL", "available": "10", "limit": "2"}
		]}`)
	}))
	defer srv.Close()

	client := NewCoinone("coinone-token", secret)
	client.baseURL = srv.URL
	client.httpClient = srv.Client()

	balances, err := client.Balances(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	require.Equal(t, "SOL", balances[0].Currency)
	require.True(t, balances[0].Total().Equal(decimalFromString(t, "12")))

	// The signature is the hex HMAC-SHA512 of the exact base64 payload bytes.
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(payloadHeader))
	require.Equal(t, hex.EncodeToString(mac.Sum(nil)), signatureHeader)

	raw, err := base64.StdEncoding.DecodeString(payloadHeader)
	require.NoError(t, err)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	require.Equal(t, "coinone-token", payload["access_token"])
	nonce, ok := payload["nonce"].(string)
	require.True(t, ok, "payload must carry an injected nonce")
	_, err = uuid.Parse(nonce)
	require.NoError(t, err)
}

func TestCoinoneNoncesAreUniquePerRequest(t *testing.T) {
	client := NewCoinone("token", "secret")

	decode := func(encoded []byte) string {
		raw, err := base64.StdEncoding.DecodeString(string(encoded))
		require.NoError(t, err)
		var payload map[string]any
		require.NoError(t, json.Unmarshal(raw, &payload))
		return payload["nonce"].(string)
	}

	first, err := client.encodePayload(map[string]any{"access_token": "token"})
	require.NoError(t, err)
	second, err := client.encodePayload(map[string]any{"access_token": "token"})
	require.NoError(t, err)
	require.NotEqual(t, decode(first), decode(second))
}

func TestCoinoneBalancesRequestedCurrencies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2.1/account/balance", r.URL.Path)
		raw, err := base64.StdEncoding.DecodeString(r.Header.Get("X-COINONE-PAYLOAD"))
		require.NoError(t, err)
		var payload map[string]any
		require.NoError(t, json.Unmarshal(raw, &payload))
		require.ElementsMatch(t, []any{"KRW", "BTC", "AI16Z"}, payload["currencies"])
		fmt.Fprint(w, `{"result": "success", "balances": [
			{"currency": "BTC", "available": "1", "limit": "0"}
		]}`)
	}))
	defer srv.Close()

	client := NewCoinone("token", "secret")
	client.baseURL = srv.URL
	client.httpClient = srv.Client()

	balances, err := client.Balances(context.Background(), []string{"KRW", "BTC", "AI16Z"})
	require.NoError(t, err)
	require.Len(t, balances, 3, "absent requested currencies become zero placeholders")
	require.Equal(t, "KRW", balances[0].Currency)
	require.True(t, balances[0].Total().IsZero())
	require.Equal(t, "BTC", balances[1].Currency)
	require.Equal(t, "AI16Z", balances[2].Currency)
}

func TestCoinoneBalancesRejectedResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"result": "error", "errorCode": "107"}`)
	}))
	defer srv.Close()

	client := NewCoinone("token", "secret")
	client.baseURL = srv.URL
	client.httpClient = srv.Client()

	_, err := client.Balances(context.Background(), nil)
	require.Error(t, err)
}
