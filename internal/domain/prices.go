package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// PriceSource fetches current prices for a batch of canonical coin ids.
// An empty input yields an empty map without a remote call. Ids missing
// from the result were simply not returned by the quote service this round;
// callers must treat absence as "unknown", never as zero.
type PriceSource interface {
	Fetch(ctx context.Context, coinIDs []string) (map[string]decimal.Decimal, error)
}

// Notifier delivers a text message to a user's chat. Delivery failure is
// the caller's to log; it never blocks alert retirement.
type Notifier interface {
	Notify(userID int64, text string) error
}
