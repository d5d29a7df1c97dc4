package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/aravind238/funding-sub001/internal/domain/client"
	"github.com/aravind238/funding-sub001/internal/domain/shared"
)

// GormClientRepository implements client.Repository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByID finds a client by internal id
func (r *GormClientRepository) FindByID(ctx context.Context, id int64) (*client.Client, error) {
	var c client.Client
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByRefKey finds a client by its Cadence ref key
func (r *GormClientRepository) FindByRefKey(ctx context.Context, refKey int64) (*client.Client, error) {
	var c client.Client
	if err := r.db.WithContext(ctx).First(&c, "ref_key = ?", refKey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Save creates or updates a client
func (r *GormClientRepository) Save(ctx context.Context, c *client.Client) error {
	return r.db.WithContext(ctx).Save(c).Error
}

var _ client.Repository = (*GormClientRepository)(nil)
