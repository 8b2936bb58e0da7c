package portfolio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// LoadCSV reads a portfolio table from a CSV file. A missing file is an empty
// portfolio, not an error.
func LoadCSV(path string) ([]Asset, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open portfolio file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read portfolio file: %w", err)
	}
	return ParseRows(rows), nil
}

// SaveCSV rewrites the portfolio table. Unlike the trade ledger this table is
// a snapshot, so it is cleared and rebuilt on every update.
func SaveCSV(path string, assets []Asset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create portfolio file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, a := range assets {
		if err := w.Write(a.Row()); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush portfolio file: %w", err)
	}
	return nil
}
