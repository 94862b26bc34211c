package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/coinwatchbot/coinwatch/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownSymbol    = errors.New("unknown symbol")
	ErrInvalidThreshold = errors.New("invalid threshold")
	ErrIndexOutOfRange  = domain.ErrIndexOutOfRange
	ErrQuoteUnavailable = errors.New("quotes unavailable")
)

// AlertUsecase implements the user-facing alert operations: add, list,
// remove, and ad-hoc price lookup.
type AlertUsecase struct {
	alerts domain.AlertRepository
	source domain.PriceSource
}

func NewAlertUsecase(alerts domain.AlertRepository, source domain.PriceSource) *AlertUsecase {
	return &AlertUsecase{alerts: alerts, source: source}
}

// AddAlert validates and persists a new alert. The symbol must be in the
// coin catalog and the threshold strictly positive; an unrecognized
// direction silently defaults to above.
func (u *AlertUsecase) AddAlert(ctx context.Context, userID int64, symbol, threshold, direction string) (*domain.Alert, error) {
	normalized := strings.ToLower(strings.TrimSpace(symbol))
	coinID, ok := domain.ResolveCoin(normalized)
	if !ok {
		return nil, ErrUnknownSymbol
	}

	target, err := decimal.NewFromString(strings.TrimSpace(threshold))
	if err != nil || !target.IsPositive() {
		return nil, ErrInvalidThreshold
	}

	alert := &domain.Alert{
		UserID:    userID,
		Coin:      coinID,
		Symbol:    normalized,
		Threshold: target,
		Direction: domain.ParseDirection(direction),
	}
	if err := u.alerts.Create(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

// ListAlerts returns the user's alerts in insertion order; the position in
// the slice plus one is the index /remove accepts.
func (u *AlertUsecase) ListAlerts(ctx context.Context, userID int64) ([]domain.Alert, error) {
	return u.alerts.ListByUser(ctx, userID)
}

// RemoveAlert deletes the user's index-th alert (1-based) and returns it.
func (u *AlertUsecase) RemoveAlert(ctx context.Context, userID int64, index int) (domain.Alert, error) {
	return u.alerts.RemoveAt(ctx, userID, index)
}

// Quote is one /price result line. Price is nil when the quote service did
// not return the coin this time.
type Quote struct {
	Symbol string
	Price  *decimal.Decimal
}

// Prices resolves the symbols and fetches their current quotes in a single
// batch. All symbols must be known; a symbol the service fails to quote
// still produces an entry, with a nil price.
func (u *AlertUsecase) Prices(ctx context.Context, symbols []string) ([]Quote, error) {
	normalized := lo.Map(symbols, func(s string, _ int) string {
		return strings.ToLower(strings.TrimSpace(s))
	})

	coinIDs := make([]string, 0, len(normalized))
	for _, symbol := range normalized {
		coinID, ok := domain.ResolveCoin(symbol)
		if !ok {
			return nil, ErrUnknownSymbol
		}
		coinIDs = append(coinIDs, coinID)
	}

	prices, err := u.source.Fetch(ctx, lo.Uniq(coinIDs))
	if err != nil {
		return nil, ErrQuoteUnavailable
	}

	quotes := make([]Quote, 0, len(normalized))
	for i, symbol := range normalized {
		quote := Quote{Symbol: symbol}
		if price, ok := prices[coinIDs[i]]; ok {
			value := price
			quote.Price = &value
		}
		quotes = append(quotes, quote)
	}
	return quotes, nil
}
