package domain

import (
	"sort"
	"strings"
)

// coinCatalog maps the user-facing symbol to the canonical id understood by
// the quote service. The set is deliberately small and static.
var coinCatalog = map[string]string{
	"btc":   "bitcoin",
	"eth":   "ethereum",
	"bnb":   "binancecoin",
	"sol":   "solana",
	"ada":   "cardano",
	"doge":  "dogecoin",
	"xrp":   "ripple",
	"meme":  "meme",
	"moxie": "moxie",
	"degen": "degen-base",
}

// ResolveCoin returns the canonical id for a display symbol, matched
// case-insensitively.
func ResolveCoin(symbol string) (string, bool) {
	id, ok := coinCatalog[strings.ToLower(strings.TrimSpace(symbol))]
	return id, ok
}

// CoinEntry is one row of the supported-coin listing.
type CoinEntry struct {
	Symbol string
	CoinID string
}

// Coins lists the catalog in stable symbol order for the /coins command.
func Coins() []CoinEntry {
	entries := make([]CoinEntry, 0, len(coinCatalog))
	for symbol, id := range coinCatalog {
		entries = append(entries, CoinEntry{Symbol: symbol, CoinID: id})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Symbol < entries[j].Symbol })
	return entries
}
