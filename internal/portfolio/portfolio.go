// Package portfolio revalues a held-asset table against current prices:
// USD price and value per asset, plus each asset's share of the total.
package portfolio

import (
	"regexp"
	"strings"

	"github.com/aqleung/trade-ledger/internal/model"
)

// Asset is one row of the portfolio table.
type Asset struct {
	Crypto   string // Display name, optionally with a ticker suffix: "Bitcoin (BTC)"
	Quantity string // Held amount; malformed values degrade to 0
	PriceUSD float64
	ValueUSD float64
	Percent  string // "12.34%" share of total value, "0%" when total is zero
}

// Header returns the portfolio table's column names in fixed order.
func Header() []string {
	return []string{"Crypto", "Quantity", "Price (USD)", "Value (USD)", "% of Portfolio"}
}

// Row renders the asset in Header order.
func (a Asset) Row() []string {
	return []string{
		a.Crypto,
		a.Quantity,
		model.FormatDecimal(a.PriceUSD),
		model.FormatDecimal(a.ValueUSD),
		a.Percent,
	}
}

var tickerSuffix = regexp.MustCompile(`\s*\(.*?\)`)

// CoinID derives the price-lookup key from a display name: the parenthesized
// ticker suffix is stripped and the remainder lowercased, matching CoinGecko
// coin IDs for common assets ("Bitcoin (BTC)" -> "bitcoin").
func CoinID(crypto string) string {
	return strings.ToLower(strings.TrimSpace(tickerSuffix.ReplaceAllString(crypto, "")))
}

// Update recomputes prices, values and portfolio percentages in place and
// returns the total portfolio value. Assets without a price entry value to
// zero rather than failing the batch.
func Update(assets []Asset, prices map[string]float64) float64 {
	var total float64
	for i := range assets {
		quantity := model.ParseDecimal(assets[i].Quantity)
		price := prices[CoinID(assets[i].Crypto)]

		assets[i].PriceUSD = price
		assets[i].ValueUSD = price * quantity
		total += assets[i].ValueUSD
	}

	for i := range assets {
		if total > 0 {
			assets[i].Percent = model.FormatPercent(assets[i].ValueUSD / total * 100)
		} else {
			assets[i].Percent = "0%"
		}
	}

	return total
}

// ParseRows reads a portfolio table (header plus rows) back into assets.
// Short or empty rows are skipped.
func ParseRows(rows [][]string) []Asset {
	if len(rows) <= 1 {
		return nil
	}

	assets := make([]Asset, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < 2 || row[0] == "" {
			continue
		}
		assets = append(assets, Asset{
			Crypto:   row[0],
			Quantity: row[1],
		})
	}
	return assets
}
