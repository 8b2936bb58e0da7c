// Package auth provides HMAC-SHA256 request signing shared by the exchange
// clients. Binance signs the query string; Bybit signs a concatenation of
// timestamp, key, receive window and query string. Both use the same
// credential pair layout.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Credentials holds one exchange's API key pair.
type Credentials struct {
	APIKey    string
	APISecret string
}

// LoadCredentials validates and wraps an API key pair.
func LoadCredentials(apiKey, apiSecret string) (*Credentials, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if apiSecret == "" {
		return nil, fmt.Errorf("API secret is required")
	}
	return &Credentials{APIKey: apiKey, APISecret: apiSecret}, nil
}

// Sign returns the lowercase hex HMAC-SHA256 signature of payload under the
// API secret.
func (c *Credentials) Sign(payload string) string {
	mac := hmac.New(sha256.New, []byte(c.APISecret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
