package binance

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

// APIError represents an error from the Binance API. Binance embeds an
// application error code in the JSON body alongside the HTTP status.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("binance api error %d (code %d): %s", e.StatusCode, e.Code, e.Message)
}

// IsRetryable returns true if the error should trigger a retry.
func (e *APIError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

// IsInvalidSymbol reports the permanent -1121 error for a symbol the exchange
// does not recognize. Non-fatal: that symbol simply contributes zero trades.
func (e *APIError) IsInvalidSymbol() bool {
	return e.Code == -1121
}

// doRequest performs a GET against the given path. Signed requests get a
// timestamp/recvWindow pair and an HMAC signature over the query string, with
// the API key in the X-MBX-APIKEY header.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values, signed bool) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}

	if signed {
		if c.creds == nil {
			return nil, fmt.Errorf("signed request %s requires credentials", path)
		}
		query.Set("timestamp", strconv.FormatInt(time.Now().UnixMilli(), 10))
		query.Set("recvWindow", strconv.FormatInt(c.recvWindow.Milliseconds(), 10))
		query.Set("signature", c.creds.Sign(query.Encode()))
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if signed {
		req.Header.Set("X-MBX-APIKEY", c.creds.APIKey)
	}

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
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
		}
		var errBody struct {
			Code int    `json:"code"`
			Msg  string `json:"msg"`
		}
		if json.Unmarshal(body, &errBody) == nil && errBody.Msg != "" {
			apiErr.Code = errBody.Code
			apiErr.Message = errBody.Msg
		}
		return nil, apiErr
	}

	return body, nil
}

// doWithRetry performs a request with exponential backoff retry, pacing each
// attempt through the rate governor.
func (c *Client) doWithRetry(ctx context.Context, path string, query url.Values, signed bool) ([]byte, error) {
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

		// Signed queries are rebuilt per attempt so the timestamp stays fresh.
		attemptQuery := url.Values{}
		for k, v := range query {
			attemptQuery[k] = v
		}

		body, err := c.doRequest(ctx, path, attemptQuery, signed)
		if err == nil {
			return body, nil
		}

		lastErr = err

		apiErr, ok := err.(*APIError)
		if !ok || !apiErr.IsRetryable() {
			return nil, err
		}
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// get performs a GET request with retries and decodes the JSON response.
func (c *Client) get(ctx context.Context, path string, query url.Values, signed bool, result any) error {
	body, err := c.doWithRetry(ctx, path, query, signed)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}
