package ledger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aqleung/trade-ledger/internal/model"
)

func TestCSVLedgerMissingFileIsEmpty(t *testing.T) {
	l := NewCSVLedger(filepath.Join(t.TempDir(), "ledger.csv"))

	rows, err := l.Rows(context.Background())
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if rows != nil {
		t.Errorf("got %d rows from a missing file", len(rows))
	}
}

func TestCSVLedgerRoundtrip(t *testing.T) {
	ctx := context.Background()
	l := NewCSVLedger(filepath.Join(t.TempDir(), "ledger.csv"))

	if err := l.Init(ctx, model.HeaderRow()); err != nil {
		t.Fatal(err)
	}

	row := trade(model.ExchangeBinance, "100", "2024-01-01 10:00:00").Row()
	if err := l.Append(ctx, row); err != nil {
		t.Fatal(err)
	}

	rows, err := l.Rows(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(rows))
	}
	for i, cell := range row {
		if rows[1][i] != cell {
			t.Errorf("column %d = %q, want %q", i, rows[1][i], cell)
		}
	}
}

func TestCSVLedgerPreservesLeadingZeros(t *testing.T) {
	ctx := context.Background()
	l := NewCSVLedger(filepath.Join(t.TempDir(), "ledger.csv"))

	// IDs are opaque strings; a numeric-looking ID must survive verbatim.
	if err := l.Append(ctx, []string{"Binance", "BTCUSDT", "007", "0012"}); err != nil {
		t.Fatal(err)
	}

	rows, err := l.Rows(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if rows[0][2] != "007" || rows[0][3] != "0012" {
		t.Errorf("ID cells mangled: %v", rows[0])
	}
}

func TestCSVLedgerSyncEndToEnd(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.csv")
	batch := []model.Trade{
		trade(model.ExchangeBinance, "100", "2024-01-01 10:00:00"),
		trade(model.ExchangeBybit, "abc", "2024-01-02 10:00:00"),
	}

	res, err := NewSyncer(NewCSVLedger(path), testLogger()).Sync(ctx, batch)
	if err != nil {
		t.Fatal(err)
	}
	if res.Written != 2 {
		t.Fatalf("first sync written = %d, want 2", res.Written)
	}

	// A fresh syncer over the same file sees the keys on disk.
	res, err = NewSyncer(NewCSVLedger(path), testLogger()).Sync(ctx, batch)
	if err != nil {
		t.Fatal(err)
	}
	if res.Written != 0 || res.Skipped != 2 {
		t.Errorf("re-sync = %+v, want 0 written, 2 skipped", res)
	}
}
