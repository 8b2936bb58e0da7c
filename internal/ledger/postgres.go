package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aqleung/trade-ledger/internal/model"
)

// Column names matching the canonical header, in fixed order.
var pgColumns = []string{
	"exchange", "symbol", "trade_id", "order_id",
	"price", "quantity", "total", "side",
	"executed_at", "fee", "fee_asset", "is_maker",
}

// PGLedger stores rows in a Postgres table of TEXT columns, so identifiers
// are never reinterpreted as numbers. A serial row_id preserves append order.
type PGLedger struct {
	db    *pgxpool.Pool
	table string
}

// NewPGLedger creates a ledger backed by the named table in db.
func NewPGLedger(db *pgxpool.Pool, table string) *PGLedger {
	return &PGLedger{db: db, table: table}
}

// Rows returns the canonical header followed by all stored rows in append
// order. A missing table is an empty, uninitialized ledger.
func (l *PGLedger) Rows(ctx context.Context) ([][]string, error) {
	var exists *string
	err := l.db.QueryRow(ctx, "SELECT to_regclass($1)::text", l.table).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check ledger table: %w", err)
	}
	if exists == nil {
		return nil, nil
	}

	query := fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY row_id",
		strings.Join(pgColumns, ", "),
		pgx.Identifier{l.table}.Sanitize(),
	)

	dbRows, err := l.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query ledger rows: %w", err)
	}
	defer dbRows.Close()

	rows := [][]string{model.HeaderRow()}
	for dbRows.Next() {
		cells := make([]string, len(pgColumns))
		dest := make([]any, len(pgColumns))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := dbRows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan ledger row: %w", err)
		}
		rows = append(rows, cells)
	}
	if err := dbRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger rows: %w", err)
	}

	return rows, nil
}

// Append inserts one row.
func (l *PGLedger) Append(ctx context.Context, row []string) error {
	if len(row) != len(pgColumns) {
		return fmt.Errorf("row has %d cells, want %d", len(row), len(pgColumns))
	}

	placeholders := make([]string, len(pgColumns))
	args := make([]any, len(row))
	for i, cell := range row {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = cell
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		pgx.Identifier{l.table}.Sanitize(),
		strings.Join(pgColumns, ", "),
		strings.Join(placeholders, ", "),
	)

	if _, err := l.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert ledger row: %w", err)
	}
	return nil
}

// Init creates the ledger table. The header lives in the schema itself, so no
// header row is stored.
func (l *PGLedger) Init(ctx context.Context, _ []string) error {
	cols := make([]string, 0, len(pgColumns)+1)
	cols = append(cols, "row_id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY")
	for _, c := range pgColumns {
		cols = append(cols, c+" TEXT NOT NULL DEFAULT ''")
	}

	query := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (%s)",
		pgx.Identifier{l.table}.Sanitize(),
		strings.Join(cols, ", "),
	)

	if _, err := l.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("create ledger table: %w", err)
	}
	return nil
}
