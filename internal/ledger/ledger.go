package ledger

import "context"

// Ledger is an append-friendly tabular store. Cells are opaque strings end to
// end; in particular the ID columns must never pass through a numeric type,
// or large integer identifiers silently lose precision.
type Ledger interface {
	// Rows returns every row currently in the store, header included when
	// present. An empty result means the store has never been initialized.
	Rows(ctx context.Context) ([][]string, error)

	// Append adds one row after the existing ones.
	Append(ctx context.Context, row []string) error

	// Init writes the header row into an empty store and pins the Trade ID /
	// Order ID columns to plain text so a spreadsheet-like backend cannot
	// reinterpret them as floats.
	Init(ctx context.Context, header []string) error
}
