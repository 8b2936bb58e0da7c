package bybit

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// GetExecutions fetches one page of execution history. An empty cursor
// requests the first page; the API caps limit at 100.
func (c *Client) GetExecutions(ctx context.Context, category, cursor string, limit int) (*ExecutionListResult, error) {
	query := url.Values{}
	query.Set("category", category)
	if limit > 0 {
		if limit > 100 {
			limit = 100
		}
		query.Set("limit", strconv.Itoa(limit))
	}
	if cursor != "" {
		query.Set("cursor", cursor)
	}

	var result ExecutionListResult
	if err := c.get(ctx, "/v5/execution/list", query, &result); err != nil {
		return nil, fmt.Errorf("get executions: %w", err)
	}
	return &result, nil
}
