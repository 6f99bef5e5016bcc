// Package tickers fetches equity symbol lists from public constituent tables.
package tickers

import "strings"

// Source describes one constituent table: where it lives, which table holds
// the constituents, which column carries the symbol, and how to normalize
// each symbol for the market data provider.
type Source struct {
	Name         string
	URL          string
	TableID      string
	SymbolColumn string
	Normalize    func(string) string
}

// SP500 returns the S&P 500 constituents source (NYSE proxy). Symbols use
// Yahoo's dash convention: BRK.B -> BRK-B.
func SP500() Source {
	return Source{
		Name:         "sp500",
		URL:          "https://en.wikipedia.org/wiki/List_of_S%26P_500_companies",
		TableID:      "constituents",
		SymbolColumn: "Symbol",
		Normalize: func(s string) string {
			return strings.ReplaceAll(s, ".", "-")
		},
	}
}

// FTSE100 returns the FTSE 100 constituents source (LSE proxy). Yahoo
// identifies LSE listings with an .L suffix: SHEL -> SHEL.L.
func FTSE100() Source {
	return Source{
		Name:         "ftse100",
		URL:          "https://en.wikipedia.org/wiki/FTSE_100_Index",
		TableID:      "constituents",
		SymbolColumn: "Ticker",
		Normalize: func(s string) string {
			return s + ".L"
		},
	}
}
