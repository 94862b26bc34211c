package db

import (
	"context"

	"github.com/coinwatchbot/coinwatch/internal/domain"
	"gorm.io/gorm"
)

type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	model := mapAlertToModel(*alert)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	alert.ID = model.ID
	alert.CreatedAt = model.CreatedAt
	return nil
}

func (r *AlertRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Alert, error) {
	var models []alertModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	return mapAlertsToDomain(models), nil
}

func (r *AlertRepository) ListAll(ctx context.Context) ([]domain.Alert, error) {
	var models []alertModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	return mapAlertsToDomain(models), nil
}

// RemoveAt resolves the 1-based index to a concrete row inside a single
// transaction, so the index cannot drift onto another record while the
// matcher is retiring alerts concurrently.
func (r *AlertRepository) RemoveAt(ctx context.Context, userID int64, index int) (domain.Alert, error) {
	var removed domain.Alert
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var models []alertModel
		if err := tx.Where("user_id = ?", userID).Order("id").Find(&models).Error; err != nil {
			return err
		}
		if index < 1 || index > len(models) {
			return domain.ErrIndexOutOfRange
		}
		target := models[index-1]
		if err := tx.Delete(&alertModel{}, target.ID).Error; err != nil {
			return err
		}
		removed = mapAlertToDomain(target)
		return nil
	})
	if err != nil {
		return domain.Alert{}, err
	}
	return removed, nil
}

func (r *AlertRepository) DeleteByID(ctx context.Context, userID int64, alertID uint) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", alertID, userID).Delete(&alertModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func mapAlertsToDomain(models []alertModel) []domain.Alert {
	alerts := make([]domain.Alert, 0, len(models))
	for _, model := range models {
		alerts = append(alerts, mapAlertToDomain(model))
	}
	return alerts
}

func mapAlertToDomain(model alertModel) domain.Alert {
	return domain.Alert{
		ID:        model.ID,
		UserID:    model.UserID,
		Coin:      model.Coin,
		Symbol:    model.Symbol,
		Threshold: model.Threshold,
		Direction: domain.Direction(model.Direction),
		CreatedAt: model.CreatedAt,
	}
}

func mapAlertToModel(alert domain.Alert) alertModel {
	return alertModel{
		ID:        alert.ID,
		UserID:    alert.UserID,
		Coin:      alert.Coin,
		Symbol:    alert.Symbol,
		Threshold: alert.Threshold,
		Direction: string(alert.Direction),
		CreatedAt: alert.CreatedAt,
	}
}
