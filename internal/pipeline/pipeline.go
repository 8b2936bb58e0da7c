package pipeline

import (
	"context"
	"log/slog"
	"sort"

	"github.com/aqleung/trade-ledger/internal/model"
)

// Source provides raw trade records for one exchange. Implementations absorb
// their own failures: FetchAllTrades always returns, an empty slice meaning
// "no trades or total failure" (with logged context distinguishing the two).
type Source interface {
	Exchange() model.Exchange
	FetchAllTrades(ctx context.Context) []model.RawRecord
}

// NormalizeFunc maps one exchange's raw payload to the universal record.
// It must be pure and deterministic: same payload, same Trade, always.
type NormalizeFunc func(payload any) (model.Trade, error)

// Stats counts one run's ingestion outcomes.
type Stats struct {
	Fetched    int // raw records across all sources
	Normalized int // records surviving normalization
	Dropped    int // records lost to mapping errors
}

// Pipeline merges normalized trades from all configured sources.
type Pipeline struct {
	sources     []Source
	normalizers map[model.Exchange]NormalizeFunc
	logger      *slog.Logger
}

// New creates a Pipeline.
func New(sources []Source, normalizers map[model.Exchange]NormalizeFunc, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		sources:     sources,
		normalizers: normalizers,
		logger:      logger,
	}
}

// Run polls every source sequentially, normalizes each record, and returns
// the merged batch sorted by time descending. The sort is stable, so records
// with identical timestamps keep their per-exchange arrival order. A record
// that defeats normalization is logged and dropped, never aborting the batch.
func (p *Pipeline) Run(ctx context.Context) ([]model.Trade, Stats) {
	var trades []model.Trade
	var stats Stats

	for _, src := range p.sources {
		exchange := src.Exchange()
		p.logger.Info("fetching trades", "exchange", exchange)

		normalize, ok := p.normalizers[exchange]
		if !ok {
			p.logger.Error("no normalizer registered, skipping source", "exchange", exchange)
			continue
		}

		records := src.FetchAllTrades(ctx)
		stats.Fetched += len(records)

		for _, rec := range records {
			trade, err := normalize(rec.Payload)
			if err != nil {
				stats.Dropped++
				p.logger.Error("normalize failed, dropping record",
					"exchange", rec.Exchange,
					"error", err,
				)
				continue
			}
			trades = append(trades, trade)
		}
	}

	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].Time > trades[j].Time
	})

	stats.Normalized = len(trades)
	p.logger.Info("pipeline run complete",
		"fetched", stats.Fetched,
		"normalized", stats.Normalized,
		"dropped", stats.Dropped,
	)

	return trades, stats
}
