package bybit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// envelope is the V5 response wrapper common to every endpoint.
type envelope struct {
	RetCode int             `json:"retCode"`
	RetMsg  string          `json:"retMsg"`
	Result  json.RawMessage `json:"result"`
}

// APIError represents an error from the Bybit API: either an HTTP failure or
// a non-zero retCode embedded in a successful response.
type APIError struct {
	StatusCode int
	RetCode    int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bybit api error %d (retCode %d): %s", e.StatusCode, e.RetCode, e.Message)
}

// IsRetryable returns true if the error should trigger a retry.
// Application-level retCode errors are never retried here; the source decides
// what to do with them.
func (e *APIError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

// IsApplication reports a non-zero retCode inside an HTTP 200 response.
func (e *APIError) IsApplication() bool {
	return e.StatusCode == http.StatusOK && e.RetCode != 0
}

// doRequest performs a signed GET against the given path. V5 signing covers
// timestamp + key + recvWindow + query string, sent via X-BAPI-* headers.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	if c.creds == nil {
		return nil, fmt.Errorf("request %s requires credentials", path)
	}

	encoded := query.Encode()

	fullURL := c.baseURL + path
	if encoded != "" {
		fullURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	timestamp := strconv.FormatInt(time.Now().UnixMilli(), 10)
	recvWindow := strconv.FormatInt(c.recvWindow.Milliseconds(), 10)

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-BAPI-API-KEY", c.creds.APIKey)
	req.Header.Set("X-BAPI-TIMESTAMP", timestamp)
	req.Header.Set("X-BAPI-RECV-WINDOW", recvWindow)
	req.Header.Set("X-BAPI-SIGN", c.creds.Sign(timestamp+c.creds.APIKey+recvWindow+encoded))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
		}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}

	if env.RetCode != 0 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			RetCode:    env.RetCode,
			Message:    env.RetMsg,
		}
	}

	return env.Result, nil
}

// doWithRetry performs a request with exponential backoff retry, pacing each
// attempt through the rate governor.
func (c *Client) doWithRetry(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	var lastErr error
	backoff := c.retryBackoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Add jitter: backoff * (0.5 to 1.5)
			jitter := backoff/2 + time.Duration(rand.Int64N(int64(backoff)))
			c.logger.Debug("retrying request",
				"attempt", attempt,
				"backoff", jitter,
				"path", path,
			)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(jitter):
			}

			backoff *= 2
		}

		if err := c.governor.Wait(ctx); err != nil {
			return nil, err
		}

		result, err := c.doRequest(ctx, path, query)
		if err == nil {
			return result, nil
		}

		lastErr = err

		apiErr, ok := err.(*APIError)
		if !ok || !apiErr.IsRetryable() {
			return nil, err
		}
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// get performs a GET request with retries and decodes the result payload.
func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	raw, err := c.doWithRetry(ctx, path, query)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("unmarshal result: %w", err)
	}

	return nil
}
