package binance

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// GetAccount fetches the account's balances (signed).
func (c *Client) GetAccount(ctx context.Context) (*AccountResponse, error) {
	var resp AccountResponse
	if err := c.get(ctx, "/api/v3/account", nil, true, &resp); err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &resp, nil
}

// GetExchangeInfo fetches the full tradable-symbol catalog (public).
func (c *Client) GetExchangeInfo(ctx context.Context) (*ExchangeInfoResponse, error) {
	var resp ExchangeInfoResponse
	if err := c.get(ctx, "/api/v3/exchangeInfo", nil, false, &resp); err != nil {
		return nil, fmt.Errorf("get exchange info: %w", err)
	}
	return &resp, nil
}

// GetMyTrades fetches up to limit executions for one symbol (signed).
// The API caps limit at 1000.
func (c *Client) GetMyTrades(ctx context.Context, symbol string, limit int) ([]Trade, error) {
	query := url.Values{}
	query.Set("symbol", symbol)
	if limit > 0 {
		if limit > 1000 {
			limit = 1000
		}
		query.Set("limit", strconv.Itoa(limit))
	}

	var trades []Trade
	if err := c.get(ctx, "/api/v3/myTrades", query, true, &trades); err != nil {
		return nil, fmt.Errorf("get my trades %s: %w", symbol, err)
	}
	return trades, nil
}
