// Package config defines and loads the syncer's YAML configuration.
package config

import "time"

// SyncerConfig is the root configuration for a sync run.
type SyncerConfig struct {
	Instance  InstanceConfig  `yaml:"instance"`
	Binance   ExchangeConfig  `yaml:"binance"`
	Bybit     ExchangeConfig  `yaml:"bybit"`
	CoinGecko CoinGeckoConfig `yaml:"coingecko"`
	Ledger    LedgerConfig    `yaml:"ledger"`
	Portfolio PortfolioConfig `yaml:"portfolio"`
}

// InstanceConfig identifies this syncer.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// ExchangeConfig holds one exchange's API settings. An exchange with no
// api_key is skipped by the run, not an error.
type ExchangeConfig struct {
	RestURL            string        `yaml:"rest_url"`
	APIKey             string        `yaml:"api_key"`
	APISecret          string        `yaml:"api_secret"`
	Timeout            time.Duration `yaml:"timeout"`
	MaxRetries         int           `yaml:"max_retries"`
	MinRequestInterval time.Duration `yaml:"min_request_interval"`
	PageLimit          int           `yaml:"page_limit"` // per-symbol limit (Binance) or page size (Bybit)
}

// CoinGeckoConfig holds price-lookup settings for portfolio valuation.
type CoinGeckoConfig struct {
	RestURL string        `yaml:"rest_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

// LedgerConfig selects and configures the trade ledger backend.
type LedgerConfig struct {
	Backend  string   `yaml:"backend"` // "csv" or "postgres"
	Table    string   `yaml:"table"`   // postgres table name
	CSVPath  string   `yaml:"csv_path"`
	Postgres DBConfig `yaml:"postgres"`
}

// PortfolioConfig configures the optional portfolio valuation output.
type PortfolioConfig struct {
	Enabled bool   `yaml:"enabled"`
	Table   string `yaml:"table"`
	CSVPath string `yaml:"csv_path"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}
