// Package bybit fetches executed spot trades from the Bybit V5 REST API.
//
// Unlike Binance, Bybit exposes one execution-history endpoint across all
// symbols (/v5/execution/list), so the Source pages through it with the
// opaque nextPageCursor until exhausted. Application-level errors arrive as a
// non-zero retCode inside an HTTP 200 response and are absorbed at the source
// boundary.
package bybit
