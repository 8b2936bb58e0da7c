package config

import (
	"errors"
	"fmt"
)

// Backend names accepted in ledger.backend.
const (
	BackendCSV      = "csv"
	BackendPostgres = "postgres"
)

// Validate checks that all required fields are set and values are valid.
func (c *SyncerConfig) Validate() error {
	if c.Instance.ID == "" {
		return errors.New("instance.id is required")
	}

	if c.Binance.APIKey == "" && c.Bybit.APIKey == "" {
		return errors.New("at least one exchange api_key is required")
	}
	if err := c.Binance.validate("binance"); err != nil {
		return err
	}
	if err := c.Bybit.validate("bybit"); err != nil {
		return err
	}

	switch c.Ledger.Backend {
	case BackendCSV:
		if c.Ledger.CSVPath == "" {
			return errors.New("ledger.csv_path is required for the csv backend")
		}
	case BackendPostgres:
		if err := c.Ledger.Postgres.validate("ledger.postgres"); err != nil {
			return err
		}
	default:
		return fmt.Errorf("ledger.backend must be %q or %q, got %q",
			BackendCSV, BackendPostgres, c.Ledger.Backend)
	}

	return nil
}

func (ex *ExchangeConfig) validate(prefix string) error {
	// A disabled exchange (no key) needs no further checks.
	if ex.APIKey == "" {
		return nil
	}
	if ex.APISecret == "" {
		return fmt.Errorf("%s.api_secret is required when %s.api_key is set", prefix, prefix)
	}
	if ex.PageLimit < 1 {
		return fmt.Errorf("%s.page_limit must be >= 1", prefix)
	}
	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
