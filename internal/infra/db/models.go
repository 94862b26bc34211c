package db

import (
	"time"

	"github.com/shopspring/decimal"
)

type alertModel struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    int64           `gorm:"index;not null"`
	Coin      string          `gorm:"not null"`
	Symbol    string          `gorm:"not null"`
	Threshold decimal.Decimal `gorm:"type:numeric;not null"`
	Direction string          `gorm:"not null"`
	CreatedAt time.Time
}

func (alertModel) TableName() string { return "alerts" }
