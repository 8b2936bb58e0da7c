package binance

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aqleung/trade-ledger/internal/auth"
	"github.com/aqleung/trade-ledger/internal/ratelimit"
)

func TestAPIError(t *testing.T) {
	t.Run("Error method", func(t *testing.T) {
		err := &APIError{StatusCode: 400, Code: -1121, Message: "Invalid symbol."}
		want := "binance api error 400 (code -1121): Invalid symbol."
		if err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})

	t.Run("IsRetryable", func(t *testing.T) {
		tests := []struct {
			code int
			want bool
		}{
			{500, true},
			{503, true},
			{429, true},
			{400, false},
			{404, false},
			{418, false}, // binance IP auto-ban replies 418; retrying makes it worse
		}
		for _, tt := range tests {
			err := &APIError{StatusCode: tt.code}
			if got := err.IsRetryable(); got != tt.want {
				t.Errorf("IsRetryable() for %d = %v, want %v", tt.code, got, tt.want)
			}
		}
	})

	t.Run("IsInvalidSymbol", func(t *testing.T) {
		if !(&APIError{Code: -1121}).IsInvalidSymbol() {
			t.Error("code -1121 should report invalid symbol")
		}
		if (&APIError{Code: -1000}).IsInvalidSymbol() {
			t.Error("code -1000 should not report invalid symbol")
		}
	})
}

func TestDoWithRetry(t *testing.T) {
	t.Run("retries transient errors", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			json.NewEncoder(w).Encode(ExchangeInfoResponse{})
		}))
		defer server.Close()

		creds, _ := auth.LoadCredentials("k", "s")
		client := NewClient(server.URL, creds,
			WithLogger(testLogger()),
			WithGovernor(ratelimit.New(0)),
			WithRetries(3, time.Millisecond),
		)

		if _, err := client.GetExchangeInfo(context.Background()); err != nil {
			t.Fatalf("GetExchangeInfo() error = %v", err)
		}
		if got := calls.Load(); got != 3 {
			t.Errorf("server called %d times, want 3", got)
		}
	})

	t.Run("signed request without credentials", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		}))
		defer server.Close()

		client := NewClient(server.URL, nil,
			WithLogger(testLogger()),
			WithGovernor(ratelimit.New(0)),
			WithRetries(0, time.Millisecond),
		)

		if _, err := client.GetAccount(context.Background()); err == nil {
			t.Fatal("expected error from a signed call without credentials")
		}
		if got := calls.Load(); got != 0 {
			t.Errorf("server called %d times, want 0", got)
		}
	})

	t.Run("does not retry permanent errors", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{"code": -1121, "msg": "Invalid symbol."})
		}))
		defer server.Close()

		creds, _ := auth.LoadCredentials("k", "s")
		client := NewClient(server.URL, creds,
			WithLogger(testLogger()),
			WithGovernor(ratelimit.New(0)),
			WithRetries(3, time.Millisecond),
		)

		_, err := client.GetMyTrades(context.Background(), "NOPE", 10)
		if err == nil {
			t.Fatal("expected error")
		}
		if got := calls.Load(); got != 1 {
			t.Errorf("server called %d times, want 1", got)
		}
	})
}
