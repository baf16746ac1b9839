package clients

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/hanjoon/cexfolio/internal/domain"
	"github.com/hanjoon/cexfolio/internal/services/balance"
)

const (
	korbitBaseURL = "https://api.korbit.co.kr"

	// tokenSafetyMargin is subtracted from the grant lifetime so the token
	// is refreshed before the exchange actually invalidates it.
	tokenSafetyMargin = 60 * time.Second
)

// Korbit authenticates through an OAuth2 client-credentials grant. The
// access token is cached on the client and refreshed lazily; the refresh
// runs under a mutex so expiry races never trigger duplicate grants.
type Korbit struct {
	baseURL    string
	creds      domain.Credentials
	httpClient *http.Client
	now        func() time.Time

	mu      sync.Mutex
	session domain.AuthSession
}

func NewKorbit(key, secret string) *Korbit {
	return &Korbit{
		baseURL:    korbitBaseURL,
		creds:      domain.Credentials{Key: key, Secret: secret},
		httpClient: newHTTPClient(),
		now:        time.Now,
	}
}

func (k *Korbit) Name() string { return "Korbit" }

type korbitGrant struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// accessToken returns the cached token, exchanging the client credentials
// for a fresh one once the previous grant is inside the safety margin.
// A failed grant propagates as a hard error: no balance call can proceed
// without a token.
func (k *Korbit) accessToken(ctx context.Context) (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.session.Live(k.now()) {
		return k.session.Token, nil
	}

	form := url.Values{
		"client_id":     {k.creds.Key},
		"client_secret": {k.creds.Secret},
		"grant_type":    {"client_credentials"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		k.baseURL+"/v1/oauth2/access_token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var grant korbitGrant
	if err := doJSON(k.httpClient, req, &grant); err != nil {
		return "", errors.Wrap(err, "korbit token grant")
	}
	if grant.AccessToken == "" {
		return "", errors.New("korbit token grant returned empty access_token")
	}

	k.session = domain.AuthSession{
		Token:     grant.AccessToken,
		ExpiresAt: k.now().Add(time.Duration(grant.ExpiresIn)*time.Second - tokenSafetyMargin),
	}
	return k.session.Token, nil
}

func (k *Korbit) Balances(ctx context.Context, currencies []string) ([]domain.Balance, error) {
	token, err := k.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.baseURL+"/v1/user/balances", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	// Korbit keys each row by its currency instead of embedding the code.
	var raw map[string]balance.Row
	if err := doJSON(k.httpClient, req, &raw); err != nil {
		return nil, err
	}
	rows := make([]balance.Row, 0, len(raw))
	for currency, row := range raw {
		row["currency"] = currency
		rows = append(rows, row)
	}

	balances := balance.KorbitSchema.Normalize(rows)
	sort.Slice(balances, func(i, j int) bool { return balances[i].Currency < balances[j].Currency })
	if currencies != nil {
		return balance.Fill(balances, currencies), nil
	}
	return balances, nil
}
