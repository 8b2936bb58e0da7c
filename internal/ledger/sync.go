package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/aqleung/trade-ledger/internal/model"
)

// Syncer merges a normalized trade batch into a ledger, appending only trades
// whose (exchange, trade_id) key is not already present.
type Syncer struct {
	ledger Ledger
	logger *slog.Logger
}

// NewSyncer creates a Syncer.
func NewSyncer(ledger Ledger, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{ledger: ledger, logger: logger}
}

// Result counts one sync's outcomes.
type Result struct {
	Written int // newly appended rows
	Skipped int // already present in the ledger or earlier in the batch
	Failed  int // append errors, logged and left for the next run
}

// Sync appends the unseen trades in batch order. Per-row append failures are
// logged, counted and skipped; only store-level failures (reading the ledger,
// initializing the header) are returned, since nothing can be written safely
// without knowing the existing keys.
func (s *Syncer) Sync(ctx context.Context, trades []model.Trade) (Result, error) {
	rows, err := s.ledger.Rows(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("read ledger: %w", err)
	}

	exchangeCol, tradeIDCol := model.ColExchange, model.ColTradeID
	var previous [][]string
	if len(rows) == 0 {
		if err := s.ledger.Init(ctx, model.HeaderRow()); err != nil {
			return Result{}, fmt.Errorf("init ledger header: %w", err)
		}
		s.logger.Info("ledger initialized with universal header")
	} else {
		exchangeCol, tradeIDCol = headerColumns(rows[0])
		if !slices.Equal(rows[0], model.HeaderRow()) {
			// Older headers are used as-is; no migration path exists.
			s.logger.Warn("ledger header differs from canonical header",
				"header", rows[0],
			)
		}
		previous = rows[1:]
	}

	existing := existingKeys(previous, exchangeCol, tradeIDCol)

	var res Result
	for _, trade := range trades {
		key := trade.Key()
		if existing[key] {
			res.Skipped++
			s.logger.Debug("trade already recorded, skipping", "key", key)
			continue
		}

		if err := s.ledger.Append(ctx, trade.Row()); err != nil {
			res.Failed++
			s.logger.Error("append trade failed, continuing",
				"key", key,
				"error", err,
			)
			continue
		}

		// Mark immediately so within-batch duplicates (overlapping pagination
		// windows) are also suppressed.
		existing[key] = true
		res.Written++
	}

	s.logger.Info("ledger sync complete",
		"written", res.Written,
		"skipped", res.Skipped,
		"failed", res.Failed,
	)
	return res, nil
}

// headerColumns locates the key columns in an existing header, falling back
// to the canonical positions when the names are not found.
func headerColumns(header []string) (exchangeCol, tradeIDCol int) {
	exchangeCol, tradeIDCol = model.ColExchange, model.ColTradeID
	for i, name := range header {
		switch name {
		case "Exchange":
			exchangeCol = i
		case "Trade ID":
			tradeIDCol = i
		}
	}
	return exchangeCol, tradeIDCol
}

// existingKeys builds the dedup set from previously written rows. Cells are
// taken as opaque strings; rows too short to carry both key columns are
// ignored.
func existingKeys(rows [][]string, exchangeCol, tradeIDCol int) map[string]bool {
	keys := make(map[string]bool, len(rows))
	for _, row := range rows {
		if exchangeCol >= len(row) || tradeIDCol >= len(row) {
			continue
		}
		if row[exchangeCol] == "" || row[tradeIDCol] == "" {
			continue
		}
		keys[model.Key(model.Exchange(row[exchangeCol]), row[tradeIDCol])] = true
	}
	return keys
}
