package model

// -----------------------------------------------------------------------------
// Vocabularies
// -----------------------------------------------------------------------------

// Exchange identifies the origin of a trade.
type Exchange string

const (
	ExchangeBinance Exchange = "Binance"
	ExchangeBybit   Exchange = "Bybit"
)

// Side is the normalized trade side. Exchanges that report free-form side
// strings pass them through uppercased, so values outside the two constants
// are possible but never produced for Binance.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// -----------------------------------------------------------------------------
// Records
// -----------------------------------------------------------------------------

// RawRecord is an exchange-native execution record tagged with its origin at
// the source boundary. Payload holds the exchange package's own trade type;
// only that exchange's normalizer looks inside.
type RawRecord struct {
	Exchange Exchange
	Payload  any
}

// Trade is the universal, exchange-agnostic trade record. All fields are
// rendered strings so the record maps one-to-one onto a ledger row. A Trade is
// immutable once constructed; re-normalizing the same raw record must produce
// an identical Trade.
type Trade struct {
	Exchange Exchange // Origin exchange
	Symbol   string   // Trading pair, exchange-native format
	TradeID  string   // Unique within (Exchange, TradeID), opaque string
	OrderID  string   // Parent order ID, may be empty
	Price    string   // Execution price
	Quantity string   // Executed quantity
	Total    string   // Quote value (price*quantity, or exchange-supplied)
	Side     Side     // BUY / SELL
	Time     string   // Local-time "2006-01-02 15:04:05"
	Fee      string   // Fee amount, "0" when absent
	FeeAsset string   // Fee currency, "" when absent
	IsMaker  string   // "True" / "False"
}

// Key returns the dedup key identifying this trade within the ledger.
func (t Trade) Key() string {
	return Key(t.Exchange, t.TradeID)
}

// Key builds the (exchange, trade_id) dedup key used for ledger lookups.
func Key(exchange Exchange, tradeID string) string {
	return string(exchange) + "_" + tradeID
}

// Row renders the trade as a ledger row in canonical header order.
func (t Trade) Row() []string {
	return []string{
		string(t.Exchange),
		t.Symbol,
		t.TradeID,
		t.OrderID,
		t.Price,
		t.Quantity,
		t.Total,
		string(t.Side),
		t.Time,
		t.Fee,
		t.FeeAsset,
		t.IsMaker,
	}
}

// -----------------------------------------------------------------------------
// Ledger header
// -----------------------------------------------------------------------------

// Column positions within the canonical header (0-based).
const (
	ColExchange = 0
	ColTradeID  = 2
	ColOrderID  = 3
)

// HeaderRow returns the canonical ledger header in fixed order.
func HeaderRow() []string {
	return []string{
		"Exchange",
		"Symbol",
		"Trade ID",
		"Order ID",
		"Price",
		"Quantity",
		"Total",
		"Side",
		"Time",
		"Fee",
		"Fee Asset",
		"Is Maker",
	}
}
