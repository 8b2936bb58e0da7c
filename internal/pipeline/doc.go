// Package pipeline orchestrates one sync run's ingestion: each exchange
// source is polled in turn, raw records are normalized to the universal
// model, and the combined batch is stable-sorted newest first.
//
// The pipeline never deduplicates; that requires knowledge of what the
// ledger already holds and belongs to the ledger syncer.
package pipeline
