package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultBinanceRestURL   = "https://api.binance.com"
	DefaultBybitRestURL     = "https://api.bybit.com"
	DefaultCoinGeckoRestURL = "https://api.coingecko.com/api/v3"

	DefaultAPITimeout = 30 * time.Second
	DefaultMaxRetries = 3

	// Minimum spacing between consecutive calls to one exchange. Tighter
	// spacing risks throttling, not incorrect data.
	DefaultBinanceMinInterval = 100 * time.Millisecond
	DefaultBybitMinInterval   = 120 * time.Millisecond

	DefaultBinancePageLimit = 500 // trades per symbol, API max 1000
	DefaultBybitPageLimit   = 100 // executions per page, API max 100

	DefaultLedgerBackend  = "csv"
	DefaultLedgerTable    = "trade_history"
	DefaultLedgerCSVPath  = "trade_history.csv"
	DefaultPortfolioTable = "portfolio"
	DefaultPortfolioCSV   = "portfolio.csv"

	DefaultDBPort    = 5432
	DefaultDBSSLMode = "prefer"
	DefaultMaxConns  = 4
	DefaultMinConns  = 1
)

func (c *SyncerConfig) applyDefaults() {
	applyExchangeDefaults(&c.Binance, DefaultBinanceRestURL, DefaultBinanceMinInterval, DefaultBinancePageLimit)
	applyExchangeDefaults(&c.Bybit, DefaultBybitRestURL, DefaultBybitMinInterval, DefaultBybitPageLimit)

	if c.CoinGecko.RestURL == "" {
		c.CoinGecko.RestURL = DefaultCoinGeckoRestURL
	}
	if c.CoinGecko.Timeout == 0 {
		c.CoinGecko.Timeout = DefaultAPITimeout
	}

	if c.Ledger.Backend == "" {
		c.Ledger.Backend = DefaultLedgerBackend
	}
	if c.Ledger.Table == "" {
		c.Ledger.Table = DefaultLedgerTable
	}
	if c.Ledger.CSVPath == "" {
		c.Ledger.CSVPath = DefaultLedgerCSVPath
	}
	if c.Portfolio.Table == "" {
		c.Portfolio.Table = DefaultPortfolioTable
	}
	if c.Portfolio.CSVPath == "" {
		c.Portfolio.CSVPath = DefaultPortfolioCSV
	}

	applyDBDefaults(&c.Ledger.Postgres)
}

func applyExchangeDefaults(ex *ExchangeConfig, restURL string, minInterval time.Duration, pageLimit int) {
	if ex.RestURL == "" {
		ex.RestURL = restURL
	}
	if ex.Timeout == 0 {
		ex.Timeout = DefaultAPITimeout
	}
	if ex.MaxRetries == 0 {
		ex.MaxRetries = DefaultMaxRetries
	}
	if ex.MinRequestInterval == 0 {
		ex.MinRequestInterval = minInterval
	}
	if ex.PageLimit == 0 {
		ex.PageLimit = pageLimit
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
