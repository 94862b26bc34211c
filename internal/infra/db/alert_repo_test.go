package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/coinwatchbot/coinwatch/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRepo(t *testing.T) *AlertRepository {
	t.Helper()
	conn, err := Open(filepath.Join(t.TempDir(), "alerts.db"), zap.NewNop())
	require.NoError(t, err)
	return NewAlertRepository(conn)
}

func seedAlert(t *testing.T, repo *AlertRepository, userID int64, coin, symbol, threshold string, direction domain.Direction) domain.Alert {
	t.Helper()
	alert := &domain.Alert{
		UserID:    userID,
		Coin:      coin,
		Symbol:    symbol,
		Threshold: decimal.RequireFromString(threshold),
		Direction: direction,
	}
	require.NoError(t, repo.Create(context.Background(), alert))
	return *alert
}

func TestCreateAssignsStableIDs(t *testing.T) {
	repo := newTestRepo(t)
	first := seedAlert(t, repo, 1, "bitcoin", "btc", "50000", domain.DirectionAbove)
	second := seedAlert(t, repo, 1, "bitcoin", "btc", "50000", domain.DirectionAbove)

	assert.NotZero(t, first.ID)
	assert.NotZero(t, second.ID)
	assert.NotEqual(t, first.ID, second.ID, "duplicate content still gets distinct identity")
}

func TestListByUserInsertionOrder(t *testing.T) {
	repo := newTestRepo(t)
	seedAlert(t, repo, 1, "bitcoin", "btc", "50000", domain.DirectionAbove)
	seedAlert(t, repo, 2, "dogecoin", "doge", "1", domain.DirectionBelow)
	seedAlert(t, repo, 1, "ethereum", "eth", "1500", domain.DirectionBelow)

	alerts, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, "btc", alerts[0].Symbol)
	assert.Equal(t, "eth", alerts[1].Symbol)
	assert.True(t, alerts[1].Threshold.Equal(decimal.RequireFromString("1500")))
	assert.Equal(t, domain.DirectionBelow, alerts[1].Direction)
}

func TestListAllSpansOwners(t *testing.T) {
	repo := newTestRepo(t)
	seedAlert(t, repo, 1, "bitcoin", "btc", "50000", domain.DirectionAbove)
	seedAlert(t, repo, 2, "ethereum", "eth", "1500", domain.DirectionBelow)

	alerts, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, alerts, 2)
}

func TestRemoveAtMiddlePreservesOrder(t *testing.T) {
	repo := newTestRepo(t)
	seedAlert(t, repo, 1, "bitcoin", "btc", "1", domain.DirectionAbove)
	seedAlert(t, repo, 1, "ethereum", "eth", "2", domain.DirectionAbove)
	seedAlert(t, repo, 1, "solana", "sol", "3", domain.DirectionAbove)

	removed, err := repo.RemoveAt(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "eth", removed.Symbol)

	alerts, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, "btc", alerts[0].Symbol)
	assert.Equal(t, "sol", alerts[1].Symbol)
}

func TestRemoveAtOutOfRange(t *testing.T) {
	repo := newTestRepo(t)
	seedAlert(t, repo, 1, "bitcoin", "btc", "1", domain.DirectionAbove)

	for _, index := range []int{0, -1, 2} {
		_, err := repo.RemoveAt(context.Background(), 1, index)
		assert.ErrorIs(t, err, domain.ErrIndexOutOfRange, "index %d", index)
	}

	// an empty list rejects every index
	_, err := repo.RemoveAt(context.Background(), 99, 1)
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
}

func TestRemoveAtIsPerOwner(t *testing.T) {
	repo := newTestRepo(t)
	seedAlert(t, repo, 1, "bitcoin", "btc", "1", domain.DirectionAbove)
	other := seedAlert(t, repo, 2, "ethereum", "eth", "2", domain.DirectionAbove)

	// index 1 for owner 2 is their own first alert, not the global first row
	removed, err := repo.RemoveAt(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.Equal(t, other.ID, removed.ID)

	alerts, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, alerts, 1)
}

func TestDeleteByID(t *testing.T) {
	repo := newTestRepo(t)
	alert := seedAlert(t, repo, 1, "bitcoin", "btc", "1", domain.DirectionAbove)

	require.NoError(t, repo.DeleteByID(context.Background(), 1, alert.ID))

	err := repo.DeleteByID(context.Background(), 1, alert.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "second delete of the same identity")

	alerts, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestDeleteByIDWrongOwner(t *testing.T) {
	repo := newTestRepo(t)
	alert := seedAlert(t, repo, 1, "bitcoin", "btc", "1", domain.DirectionAbove)

	err := repo.DeleteByID(context.Background(), 2, alert.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	alerts, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, alerts, 1, "another owner's delete must not touch the record")
}

func TestAlertsSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "alerts.db")

	conn, err := Open(path, zap.NewNop())
	require.NoError(t, err)
	repo := NewAlertRepository(conn)
	seedAlert(t, repo, 1, "bitcoin", "btc", "50000", domain.DirectionAbove)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	conn, err = Open(path, zap.NewNop())
	require.NoError(t, err)
	alerts, err := NewAlertRepository(conn).ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "btc", alerts[0].Symbol)
	assert.True(t, alerts[0].Threshold.Equal(decimal.RequireFromString("50000")))
}

func TestOpenCorruptFileFallsBackToEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "alerts.db")
	require.NoError(t, os.WriteFile(path, []byte("this is not a database"), 0o600))

	conn, err := Open(path, zap.NewNop())
	require.NoError(t, err, "a corrupt store degrades to empty, it never crashes startup")

	alerts, err := NewAlertRepository(conn).ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, alerts)

	matches, err := filepath.Glob(path + ".corrupt-*")
	require.NoError(t, err)
	assert.Len(t, matches, 1, "the unreadable file is kept aside for inspection")
}
