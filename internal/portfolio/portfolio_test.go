package portfolio

import (
	"math"
	"path/filepath"
	"testing"
)

func TestCoinID(t *testing.T) {
	tests := []struct {
		crypto string
		want   string
	}{
		{"Bitcoin (BTC)", "bitcoin"},
		{"Ethereum (ETH)", "ethereum"},
		{"Solana", "solana"},
		{"  Cardano (ADA)  ", "cardano"},
		{"USD Coin (USDC)", "usd coin"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CoinID(tt.crypto); got != tt.want {
			t.Errorf("CoinID(%q) = %q, want %q", tt.crypto, got, tt.want)
		}
	}
}

func TestUpdate(t *testing.T) {
	assets := []Asset{
		{Crypto: "Bitcoin (BTC)", Quantity: "0.5"},
		{Crypto: "Ethereum (ETH)", Quantity: "10"},
		{Crypto: "Unknown Coin", Quantity: "100"}, // no price entry
	}
	prices := map[string]float64{
		"bitcoin":  60000,
		"ethereum": 3000,
	}

	total := Update(assets, prices)

	if total != 60000 {
		t.Errorf("total = %v, want 60000", total)
	}
	if assets[0].ValueUSD != 30000 {
		t.Errorf("BTC value = %v, want 30000", assets[0].ValueUSD)
	}
	if assets[0].Percent != "50.00%" {
		t.Errorf("BTC percent = %q, want 50.00%%", assets[0].Percent)
	}
	if assets[1].Percent != "50.00%" {
		t.Errorf("ETH percent = %q, want 50.00%%", assets[1].Percent)
	}
	if assets[2].PriceUSD != 0 || assets[2].ValueUSD != 0 {
		t.Errorf("unpriced asset valued: %+v", assets[2])
	}
	if assets[2].Percent != "0.00%" {
		t.Errorf("unpriced percent = %q, want 0.00%%", assets[2].Percent)
	}
}

func TestUpdateZeroTotal(t *testing.T) {
	assets := []Asset{
		{Crypto: "Bitcoin (BTC)", Quantity: "1"},
	}

	total := Update(assets, nil)

	if total != 0 {
		t.Errorf("total = %v, want 0", total)
	}
	if assets[0].Percent != "0%" {
		t.Errorf("percent = %q, want 0%% when the portfolio is worthless", assets[0].Percent)
	}
}

func TestUpdateMalformedQuantity(t *testing.T) {
	assets := []Asset{
		{Crypto: "Bitcoin (BTC)", Quantity: "not-a-number"},
	}

	total := Update(assets, map[string]float64{"bitcoin": 60000})

	if total != 0 || assets[0].ValueUSD != 0 {
		t.Errorf("malformed quantity should value to zero, got total %v", total)
	}
}

func TestParseRows(t *testing.T) {
	rows := [][]string{
		Header(),
		{"Bitcoin (BTC)", "0.5", "60000.0", "30000.0", "100.00%"},
		{""},                // blank line
		{"Ethereum (ETH)"},  // too short
		{"Solana", "12.25"}, // minimal
	}

	assets := ParseRows(rows)

	if len(assets) != 2 {
		t.Fatalf("got %d assets, want 2", len(assets))
	}
	if assets[0].Crypto != "Bitcoin (BTC)" || assets[0].Quantity != "0.5" {
		t.Errorf("assets[0] = %+v", assets[0])
	}
	if assets[1].Crypto != "Solana" || assets[1].Quantity != "12.25" {
		t.Errorf("assets[1] = %+v", assets[1])
	}
}

func TestParseRowsEmpty(t *testing.T) {
	if got := ParseRows(nil); got != nil {
		t.Errorf("ParseRows(nil) = %v", got)
	}
	if got := ParseRows([][]string{Header()}); got != nil {
		t.Errorf("header-only table produced assets: %v", got)
	}
}

func TestCSVRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.csv")

	assets := []Asset{
		{Crypto: "Bitcoin (BTC)", Quantity: "0.5"},
		{Crypto: "Ethereum (ETH)", Quantity: "10"},
	}
	Update(assets, map[string]float64{"bitcoin": 60000, "ethereum": 3000})

	if err := SaveCSV(path, assets); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 2 {
		t.Fatalf("got %d assets, want 2", len(loaded))
	}
	if loaded[0].Crypto != "Bitcoin (BTC)" || loaded[0].Quantity != "0.5" {
		t.Errorf("loaded[0] = %+v", loaded[0])
	}
}

func TestLoadCSVMissingFile(t *testing.T) {
	assets, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if assets != nil {
		t.Errorf("got %d assets from a missing file", len(assets))
	}
}

func TestUpdatePercentagesSum(t *testing.T) {
	assets := []Asset{
		{Crypto: "Bitcoin (BTC)", Quantity: "1"},
		{Crypto: "Ethereum (ETH)", Quantity: "1"},
		{Crypto: "Solana", Quantity: "1"},
	}
	prices := map[string]float64{"bitcoin": 100, "ethereum": 200, "solana": 700}

	total := Update(assets, prices)

	if math.Abs(total-1000) > 1e-9 {
		t.Fatalf("total = %v, want 1000", total)
	}
	want := []string{"10.00%", "20.00%", "70.00%"}
	for i, a := range assets {
		if a.Percent != want[i] {
			t.Errorf("assets[%d].Percent = %q, want %q", i, a.Percent, want[i])
		}
	}
}
