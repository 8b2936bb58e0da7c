// Package binance fetches executed spot trades from the Binance REST API.
//
// Binance only exposes account trades per symbol (/api/v3/myTrades), so the
// Source enumerates candidate symbols first: account balances bound the asset
// set, and the exchange catalog is filtered to TRADING symbols whose base or
// quote asset is held. Every request is paced by the rate governor.
package binance
