package ledger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aqleung/trade-ledger/internal/model"
)

// memLedger is an in-memory Ledger with optional fault injection.
type memLedger struct {
	rows [][]string

	rowsErr   error
	appendErr map[string]error // keyed by trade ID cell
}

func (m *memLedger) Rows(_ context.Context) ([][]string, error) {
	if m.rowsErr != nil {
		return nil, m.rowsErr
	}
	return m.rows, nil
}

func (m *memLedger) Append(_ context.Context, row []string) error {
	if len(row) > model.ColTradeID {
		if err := m.appendErr[row[model.ColTradeID]]; err != nil {
			return err
		}
	}
	m.rows = append(m.rows, row)
	return nil
}

func (m *memLedger) Init(ctx context.Context, header []string) error {
	return m.Append(ctx, header)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func trade(exchange model.Exchange, tradeID, ts string) model.Trade {
	return model.Trade{
		Exchange: exchange,
		Symbol:   "BTCUSDT",
		TradeID:  tradeID,
		Price:    "50000.0",
		Quantity: "0.001",
		Total:    "50.0",
		Side:     model.SideBuy,
		Time:     ts,
		Fee:      "0",
		IsMaker:  "False",
	}
}

func TestSyncInitializesEmptyLedger(t *testing.T) {
	store := &memLedger{}
	syncer := NewSyncer(store, testLogger())

	res, err := syncer.Sync(context.Background(), []model.Trade{
		trade(model.ExchangeBinance, "100", "2024-01-01 10:00:00"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Written != 1 {
		t.Errorf("written = %d, want 1", res.Written)
	}
	if len(store.rows) != 2 {
		t.Fatalf("got %d rows, want header + 1 trade", len(store.rows))
	}
	if store.rows[0][0] != "Exchange" || store.rows[0][2] != "Trade ID" {
		t.Errorf("header row = %v", store.rows[0])
	}
}

func TestSyncEmptyLedgerEmptyBatch(t *testing.T) {
	store := &memLedger{}
	syncer := NewSyncer(store, testLogger())

	res, err := syncer.Sync(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if res != (Result{}) {
		t.Errorf("res = %+v, want zero counts", res)
	}
	if len(store.rows) != 1 {
		t.Errorf("got %d rows, want just the header", len(store.rows))
	}
}

func TestSyncIsIdempotent(t *testing.T) {
	store := &memLedger{}
	syncer := NewSyncer(store, testLogger())
	batch := []model.Trade{
		trade(model.ExchangeBinance, "100", "2024-01-01 10:00:00"),
		trade(model.ExchangeBybit, "abc", "2024-01-02 10:00:00"),
	}

	first, err := syncer.Sync(context.Background(), batch)
	if err != nil {
		t.Fatal(err)
	}
	if first.Written != 2 {
		t.Fatalf("first sync written = %d, want 2", first.Written)
	}

	second, err := syncer.Sync(context.Background(), batch)
	if err != nil {
		t.Fatal(err)
	}
	if second.Written != 0 {
		t.Errorf("second sync written = %d, want 0", second.Written)
	}
	if second.Skipped != 2 {
		t.Errorf("second sync skipped = %d, want 2", second.Skipped)
	}
	if len(store.rows) != 3 {
		t.Errorf("got %d rows after re-sync, want header + 2 trades", len(store.rows))
	}
}

func TestSyncSkipsAlreadyRecordedTrades(t *testing.T) {
	store := &memLedger{rows: [][]string{
		model.HeaderRow(),
		trade(model.ExchangeBinance, "100", "2024-01-01 10:00:00").Row(),
	}}
	syncer := NewSyncer(store, testLogger())

	res, err := syncer.Sync(context.Background(), []model.Trade{
		trade(model.ExchangeBinance, "100", "2024-01-01 10:00:00"), // already there
		trade(model.ExchangeBybit, "200", "2024-01-03 10:00:00"),   // new
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Written != 1 || res.Skipped != 1 {
		t.Errorf("res = %+v, want 1 written, 1 skipped", res)
	}
	last := store.rows[len(store.rows)-1]
	if last[model.ColExchange] != "Bybit" || last[model.ColTradeID] != "200" {
		t.Errorf("appended row = %v, want the Bybit trade", last)
	}
}

func TestSyncSameIDDifferentExchange(t *testing.T) {
	store := &memLedger{rows: [][]string{
		model.HeaderRow(),
		trade(model.ExchangeBinance, "100", "2024-01-01 10:00:00").Row(),
	}}
	syncer := NewSyncer(store, testLogger())

	// Same trade ID under a different exchange is a distinct key.
	res, err := syncer.Sync(context.Background(), []model.Trade{
		trade(model.ExchangeBybit, "100", "2024-01-02 10:00:00"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Written != 1 {
		t.Errorf("written = %d, want 1", res.Written)
	}
}

func TestSyncSuppressesWithinBatchDuplicates(t *testing.T) {
	store := &memLedger{}
	syncer := NewSyncer(store, testLogger())

	// Overlapping pagination windows can repeat a trade inside one batch.
	res, err := syncer.Sync(context.Background(), []model.Trade{
		trade(model.ExchangeBinance, "100", "2024-01-01 10:00:00"),
		trade(model.ExchangeBinance, "100", "2024-01-01 10:00:00"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Written != 1 || res.Skipped != 1 {
		t.Errorf("res = %+v, want 1 written, 1 skipped", res)
	}
}

func TestSyncCountsFailuresSeparately(t *testing.T) {
	store := &memLedger{
		appendErr: map[string]error{"bad": errors.New("backend rejected row")},
	}
	syncer := NewSyncer(store, testLogger())

	res, err := syncer.Sync(context.Background(), []model.Trade{
		trade(model.ExchangeBinance, "bad", "2024-01-01 10:00:00"),
		trade(model.ExchangeBinance, "good", "2024-01-02 10:00:00"),
	})
	if err != nil {
		t.Fatal(err)
	}
	// A failed append is not a duplicate; the counts must not blur together.
	if res.Written != 1 || res.Skipped != 0 || res.Failed != 1 {
		t.Errorf("res = %+v, want 1 written, 0 skipped, 1 failed", res)
	}
}

func TestSyncPropagatesReadFailure(t *testing.T) {
	store := &memLedger{rowsErr: errors.New("connection refused")}
	syncer := NewSyncer(store, testLogger())

	if _, err := syncer.Sync(context.Background(), nil); err == nil {
		t.Fatal("expected error when the ledger cannot be read")
	}
}

func TestSyncReorderedHeader(t *testing.T) {
	// Key columns found by name, not position.
	store := &memLedger{rows: [][]string{
		{"Trade ID", "Exchange", "Price"},
		{"100", "Binance", "50000.0"},
	}}
	syncer := NewSyncer(store, testLogger())

	res, err := syncer.Sync(context.Background(), []model.Trade{
		trade(model.ExchangeBinance, "100", "2024-01-01 10:00:00"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Written != 0 {
		t.Errorf("written = %d, want 0 for a trade keyed in the reordered header", res.Written)
	}
}
