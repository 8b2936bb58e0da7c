// Package database provides the Postgres connection pool backing the ledger.
package database
