package binance

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aqleung/trade-ledger/internal/model"
)

// balanceEpsilon filters dust: an asset counts as held only when
// free+locked exceeds it.
const balanceEpsilon = 1e-5

// earnPrefix marks Binance Earn wrapper assets (LDBTC holds BTC).
const earnPrefix = "LD"

// Source fetches the account's trades by symbol enumeration: balances bound
// the asset set, the exchange catalog is filtered to symbols touching a held
// asset, and each surviving symbol's history is fetched in turn.
type Source struct {
	client *Client
	logger *slog.Logger

	perSymbolLimit int
}

// NewSource creates a Binance trade source.
func NewSource(client *Client, perSymbolLimit int, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	if perSymbolLimit <= 0 {
		perSymbolLimit = 500
	}
	return &Source{
		client:         client,
		logger:         logger,
		perSymbolLimit: perSymbolLimit,
	}
}

// Exchange identifies this source's origin tag.
func (s *Source) Exchange() model.Exchange {
	return model.ExchangeBinance
}

// FetchAllTrades returns every execution it can retrieve for the account.
// It never returns an error: every failure is absorbed here, logged, and
// degrades to fewer (possibly zero) records so one exchange cannot abort the
// whole run.
func (s *Source) FetchAllTrades(ctx context.Context) []model.RawRecord {
	assets := s.heldAssets(ctx)
	if len(assets) == 0 {
		s.logger.Warn("no assets with balances, skipping binance trade fetch")
		return nil
	}
	s.logger.Info("found assets with balances", "count", len(assets))

	symbols := s.relevantSymbols(ctx, assets)
	if len(symbols) == 0 {
		s.logger.Warn("no relevant trading symbols for held assets")
		return nil
	}
	s.logger.Info("found relevant trading symbols", "count", len(symbols))

	var records []model.RawRecord
	for _, symbol := range symbols {
		trades, err := s.client.GetMyTrades(ctx, symbol, s.perSymbolLimit)
		if err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.IsInvalidSymbol() {
				s.logger.Warn("invalid symbol, skipping", "symbol", symbol)
			} else {
				s.logger.Error("fetch trades failed, skipping symbol",
					"symbol", symbol,
					"error", err,
				)
			}
			continue
		}

		for _, t := range trades {
			records = append(records, model.RawRecord{
				Exchange: model.ExchangeBinance,
				Payload:  t,
			})
		}
	}

	s.logger.Info("binance trades collected", "count", len(records))
	return records
}

// heldAssets returns assets with a non-negligible balance, with Earn-wrapped
// names cleaned back to their underlying asset.
func (s *Source) heldAssets(ctx context.Context) map[string]bool {
	account, err := s.client.GetAccount(ctx)
	if err != nil {
		s.logger.Error("get account balances failed", "error", err)
		return nil
	}

	assets := make(map[string]bool)
	for _, b := range account.Balances {
		if model.ParseDecimal(b.Free)+model.ParseDecimal(b.Locked) > balanceEpsilon {
			assets[CleanAssetName(b.Asset)] = true
		}
	}
	return assets
}

// relevantSymbols returns TRADING symbols whose base or quote asset is held.
// OR matching is deliberate: a historical trade's quote asset may no longer
// be held.
func (s *Source) relevantSymbols(ctx context.Context, assets map[string]bool) []string {
	info, err := s.client.GetExchangeInfo(ctx)
	if err != nil {
		s.logger.Error("get exchange info failed", "error", err)
		return nil
	}

	var symbols []string
	for _, si := range info.Symbols {
		if si.Status != StatusTrading {
			continue
		}
		if assets[si.BaseAsset] || assets[si.QuoteAsset] {
			symbols = append(symbols, si.Symbol)
		}
	}
	return symbols
}

// CleanAssetName strips the Binance Earn prefix so wrapped holdings match
// their spot trading symbols.
func CleanAssetName(asset string) string {
	if strings.HasPrefix(asset, earnPrefix) && len(asset) > len(earnPrefix) {
		return asset[len(earnPrefix):]
	}
	return asset
}
