package bybit

import (
	"context"
	"log/slog"

	"github.com/aqleung/trade-ledger/internal/model"
)

// Source fetches the account's spot executions by cursor paging: each page's
// nextPageCursor feeds the next request until the exchange returns none.
type Source struct {
	client *Client
	logger *slog.Logger

	pageLimit int
}

// NewSource creates a Bybit trade source.
func NewSource(client *Client, pageLimit int, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	if pageLimit <= 0 {
		pageLimit = 100
	}
	return &Source{
		client:    client,
		logger:    logger,
		pageLimit: pageLimit,
	}
}

// Exchange identifies this source's origin tag.
func (s *Source) Exchange() model.Exchange {
	return model.ExchangeBybit
}

// FetchAllTrades returns every spot execution it can retrieve for the
// account. It never returns an error: a failed page is logged and ends the
// walk, keeping whatever earlier pages produced.
func (s *Source) FetchAllTrades(ctx context.Context) []model.RawRecord {
	var records []model.RawRecord
	cursor := ""

	for {
		result, err := s.client.GetExecutions(ctx, CategorySpot, cursor, s.pageLimit)
		if err != nil {
			s.logger.Error("fetch executions failed, stopping pagination",
				"cursor", cursor,
				"collected", len(records),
				"error", err,
			)
			break
		}

		for _, e := range result.List {
			records = append(records, model.RawRecord{
				Exchange: model.ExchangeBybit,
				Payload:  e,
			})
		}

		if result.NextPageCursor == "" {
			break
		}
		cursor = result.NextPageCursor
		s.logger.Debug("fetched execution page, continuing",
			"page_size", len(result.List),
			"total", len(records),
		)
	}

	s.logger.Info("bybit trades collected", "count", len(records))
	return records
}
