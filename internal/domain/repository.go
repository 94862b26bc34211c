package domain

import (
	"context"
	"errors"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// AlertRepository is the durable alert collection. It is the sole owner of
// the backing medium; every method is an atomic operation on it, so a user
// removal and a matcher deletion can never interleave mid-write.
type AlertRepository interface {
	Create(ctx context.Context, alert *Alert) error
	ListByUser(ctx context.Context, userID int64) ([]Alert, error)
	ListAll(ctx context.Context) ([]Alert, error)
	// RemoveAt deletes the index-th (1-based) alert of the user's list and
	// returns it. The index is resolved to a stable ID inside the store's
	// critical section, so a concurrent matcher deletion cannot shift it
	// onto the wrong record.
	RemoveAt(ctx context.Context, userID int64, index int) (Alert, error)
	// DeleteByID retires a specific alert by identity. Returns ErrNotFound
	// when the alert is already gone, which callers treat as success.
	DeleteByID(ctx context.Context, userID int64, alertID uint) error
}
