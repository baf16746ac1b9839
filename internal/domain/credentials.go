package domain

import "time"

// Credentials is an exchange API key pair, bound at construction and never mutated.
type Credentials struct {
	Key    string
	Secret string
}

// Empty reports whether either half of the pair is missing.
func (c Credentials) Empty() bool {
	return c.Key == "" || c.Secret == ""
}

// AuthSession is a cached OAuth2 access token with its effective expiry
// (grant expiry minus the refresh safety margin).
type AuthSession struct {
	Token     string
	ExpiresAt time.Time
}

// Live reports whether the session can still be used at the given instant.
func (s AuthSession) Live(now time.Time) bool {
	return s.Token != "" && now.Before(s.ExpiresAt)
}
