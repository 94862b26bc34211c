package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Direction is the polarity of an alert's trigger condition.
type Direction string

const (
	DirectionAbove Direction = "above"
	DirectionBelow Direction = "below"
)

// ParseDirection accepts "above"/"below" case-insensitively and falls back
// to above for anything else, matching the /add command contract.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(DirectionBelow)) {
		return DirectionBelow
	}
	return DirectionAbove
}

// Alert is a pending price watch owned by a single user. ID is assigned by
// the store at insertion and is the identity the matcher deletes by.
type Alert struct {
	ID        uint
	UserID    int64
	Coin      string // canonical quote-service id, e.g. "bitcoin"
	Symbol    string // display symbol, e.g. "btc"
	Threshold decimal.Decimal
	Direction Direction
	CreatedAt time.Time
}

// Triggered reports whether price satisfies the alert's condition.
// Boundaries are inclusive: a price exactly at the threshold triggers.
func (a Alert) Triggered(price decimal.Decimal) bool {
	if a.Direction == DirectionBelow {
		return price.LessThanOrEqual(a.Threshold)
	}
	return price.GreaterThanOrEqual(a.Threshold)
}
