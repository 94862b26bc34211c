package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/coinwatchbot/coinwatch/internal/domain"
	"github.com/shopspring/decimal"
)

// memRepo is an in-memory AlertRepository with the same ordering and
// identity semantics as the sqlite-backed one.
type memRepo struct {
	mu     sync.Mutex
	nextID uint
	alerts []domain.Alert
}

func (r *memRepo) Create(_ context.Context, alert *domain.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	alert.ID = r.nextID
	alert.CreatedAt = time.Now()
	r.alerts = append(r.alerts, *alert)
	return nil
}

func (r *memRepo) ListByUser(_ context.Context, userID int64) ([]domain.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Alert, 0)
	for _, alert := range r.alerts {
		if alert.UserID == userID {
			out = append(out, alert)
		}
	}
	return out, nil
}

func (r *memRepo) ListAll(_ context.Context) ([]domain.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Alert, len(r.alerts))
	copy(out, r.alerts)
	return out, nil
}

func (r *memRepo) RemoveAt(_ context.Context, userID int64, index int) (domain.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	owned := make([]int, 0)
	for i, alert := range r.alerts {
		if alert.UserID == userID {
			owned = append(owned, i)
		}
	}
	if index < 1 || index > len(owned) {
		return domain.Alert{}, domain.ErrIndexOutOfRange
	}
	pos := owned[index-1]
	removed := r.alerts[pos]
	r.alerts = append(r.alerts[:pos], r.alerts[pos+1:]...)
	return removed, nil
}

func (r *memRepo) DeleteByID(_ context.Context, userID int64, alertID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, alert := range r.alerts {
		if alert.ID == alertID && alert.UserID == userID {
			r.alerts = append(r.alerts[:i], r.alerts[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// stubSource returns a canned price map and records every fetch batch.
type stubSource struct {
	mu     sync.Mutex
	prices map[string]decimal.Decimal
	err    error
	calls  [][]string
}

func (s *stubSource) Fetch(_ context.Context, coinIDs []string) (map[string]decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	batch := make([]string, len(coinIDs))
	copy(batch, coinIDs)
	s.calls = append(s.calls, batch)
	if s.err != nil {
		return nil, s.err
	}
	out := make(map[string]decimal.Decimal, len(coinIDs))
	for _, id := range coinIDs {
		if price, ok := s.prices[id]; ok {
			out[id] = price
		}
	}
	return out, nil
}

type sentMessage struct {
	userID int64
	text   string
}

type stubNotifier struct {
	mu   sync.Mutex
	err  error
	sent []sentMessage
}

func (n *stubNotifier) Notify(userID int64, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMessage{userID: userID, text: text})
	return n.err
}
