package ledger

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// CSVLedger stores rows in a local CSV file. CSV cells are text by nature, so
// numeric-looking trade IDs survive verbatim without extra work.
type CSVLedger struct {
	path string
}

// NewCSVLedger creates a ledger backed by the file at path. The file is
// created lazily on first Init/Append.
func NewCSVLedger(path string) *CSVLedger {
	return &CSVLedger{path: path}
}

// Rows reads the whole file. A missing file is an empty, uninitialized
// ledger, not an error.
func (l *CSVLedger) Rows(_ context.Context) ([][]string, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open ledger file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read ledger file: %w", err)
	}
	return rows, nil
}

// Append writes one row to the end of the file.
func (l *CSVLedger) Append(_ context.Context, row []string) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open ledger file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush row: %w", err)
	}
	return nil
}

// Init writes the header row.
func (l *CSVLedger) Init(ctx context.Context, header []string) error {
	return l.Append(ctx, header)
}
