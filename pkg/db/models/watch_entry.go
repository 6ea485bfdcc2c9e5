package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WatchEntry persists one tracked game for one user. The table carries no
// uniqueness constraint beyond the primary key; the service layer pre-checks
// duplicate names before inserting.
type WatchEntry struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	UserID       string          `gorm:"column:user_id;not null"`
	AppID        int64           `gorm:"column:app_id;not null"`
	GameName     string          `gorm:"column:game_name;not null"`
	TrackedPrice decimal.Decimal `gorm:"column:tracked_price;type:numeric;not null"`
	LastChecked  time.Time       `gorm:"column:last_checked;not null"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
}
