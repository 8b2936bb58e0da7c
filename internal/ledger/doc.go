// Package ledger persists universal trade records into an append-oriented
// tabular store, exactly once per (exchange, trade_id) pair.
//
// The store itself is an external collaborator behind the Ledger interface;
// CSV-file and Postgres backends are provided. The syncer holds no state
// between runs: dedup keys are re-derived from the ledger's own contents on
// every run, which is what makes re-running safe.
package ledger
