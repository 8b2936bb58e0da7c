// Package model defines the exchange-agnostic trade record shared across the
// syncer.
//
// Conventions:
//   - Decimal fields (price, quantity, total, fee) are strings rendered by
//     FormatDecimal; malformed inputs parse to 0, never to an error.
//   - Timestamps: exchanges report epoch milliseconds; records carry the
//     local-time rendering "2006-01-02 15:04:05".
//   - Identity: a trade is unique per (Exchange, TradeID). Trade IDs are
//     opaque strings and must never be parsed as numbers (large integer IDs
//     lose precision as floats).
package model
