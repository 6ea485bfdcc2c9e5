package watchlist

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rmoreira/steamwatch-bot/pkg/db/models"
)

// Repository exposes persistence helpers for watch entries.
type Repository interface {
	Exists(ctx context.Context, userID, name string) (bool, error)
	Insert(ctx context.Context, entry *models.WatchEntry) error
	ListByUser(ctx context.Context, userID string) ([]models.WatchEntry, error)
	RemoveByName(ctx context.Context, userID, name string) (int64, error)
	UpdatePrice(ctx context.Context, userID string, appID int64, price decimal.Decimal, checkedAt time.Time) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a watchlist repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

// Exists reports whether the user already tracks a game under this name.
// Matching is case-insensitive and exact, same as RemoveByName.
func (r *repositoryImpl) Exists(ctx context.Context, userID, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.WatchEntry{}).
		Where("user_id = ? AND LOWER(game_name) = LOWER(?)", userID, name).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert appends a new entry. Duplicate names are not rejected here; the
// service pre-checks with Exists before calling.
func (r *repositoryImpl) Insert(ctx context.Context, entry *models.WatchEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListByUser returns the user's entries in insertion order.
func (r *repositoryImpl) ListByUser(ctx context.Context, userID string) ([]models.WatchEntry, error) {
	var entries []models.WatchEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&entries).
		Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// RemoveByName deletes the user's entries matching the name, reporting how
// many rows went away.
func (r *repositoryImpl) RemoveByName(ctx context.Context, userID, name string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND LOWER(game_name) = LOWER(?)", userID, name).
		Delete(&models.WatchEntry{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// UpdatePrice overwrites the tracked price and last-checked timestamp for
// the user's entry on that app.
func (r *repositoryImpl) UpdatePrice(ctx context.Context, userID string, appID int64, price decimal.Decimal, checkedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.WatchEntry{}).
		Where("user_id = ? AND app_id = ?", userID, appID).
		Updates(map[string]any{
			"tracked_price": price,
			"last_checked":  checkedAt,
		}).
		Error
}
