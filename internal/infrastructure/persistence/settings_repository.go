package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aravind238/funding-sub001/internal/domain/client"
	"github.com/aravind238/funding-sub001/internal/domain/shared"
)

// GormSettingsRepository implements client.SettingsRepository using GORM
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// FindByClient finds the settings row for a client
func (r *GormSettingsRepository) FindByClient(ctx context.Context, clientID int64) (*client.Settings, error) {
	var s client.Settings
	if err := r.db.WithContext(ctx).First(&s, "client_id = ?", clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetOrCreate returns the settings row for a client, creating a zero-fee
// row when none exists. The unique index on client_id plus ON CONFLICT DO
// NOTHING keeps concurrent first accesses from racing into duplicates.
func (r *GormSettingsRepository) GetOrCreate(ctx context.Context, clientID int64) (*client.Settings, error) {
	existing, err := r.FindByClient(ctx, clientID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	fresh, err := client.NewDefaultSettings(clientID)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client_id"}},
			DoNothing: true,
		}).
		Create(fresh).Error; err != nil {
		return nil, err
	}

	// Re-read: a concurrent creator may have won the conflict.
	return r.FindByClient(ctx, clientID)
}

// Save creates or updates a settings row
func (r *GormSettingsRepository) Save(ctx context.Context, s *client.Settings) error {
	return r.db.WithContext(ctx).Save(s).Error
}

var _ client.SettingsRepository = (*GormSettingsRepository)(nil)
