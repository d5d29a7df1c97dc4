package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/aravind238/funding-sub001/internal/domain/funding"
	"github.com/aravind238/funding-sub001/internal/domain/shared"
)

// GormSOARepository implements funding.SOARepository using GORM
type GormSOARepository struct {
	db *gorm.DB
}

// NewGormSOARepository creates a new GormSOARepository
func NewGormSOARepository(db *gorm.DB) *GormSOARepository {
	return &GormSOARepository{db: db}
}

// FindByID finds a statement of account by id
func (r *GormSOARepository) FindByID(ctx context.Context, id int64) (*funding.StatementOfAccount, error) {
	var soa funding.StatementOfAccount
	if err := r.db.WithContext(ctx).First(&soa, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &soa, nil
}

// Save creates or updates a statement of account
func (r *GormSOARepository) Save(ctx context.Context, soa *funding.StatementOfAccount) error {
	return r.db.WithContext(ctx).Save(soa).Error
}

var _ funding.SOARepository = (*GormSOARepository)(nil)

// GormReserveReleaseRepository implements funding.ReserveReleaseRepository
// using GORM
type GormReserveReleaseRepository struct {
	db *gorm.DB
}

// NewGormReserveReleaseRepository creates a new GormReserveReleaseRepository
func NewGormReserveReleaseRepository(db *gorm.DB) *GormReserveReleaseRepository {
	return &GormReserveReleaseRepository{db: db}
}

// FindByID finds a reserve release by id
func (r *GormReserveReleaseRepository) FindByID(ctx context.Context, id int64) (*funding.ReserveRelease, error) {
	var rr funding.ReserveRelease
	if err := r.db.WithContext(ctx).First(&rr, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rr, nil
}

// Save creates or updates a reserve release
func (r *GormReserveReleaseRepository) Save(ctx context.Context, rr *funding.ReserveRelease) error {
	return r.db.WithContext(ctx).Save(rr).Error
}

var _ funding.ReserveReleaseRepository = (*GormReserveReleaseRepository)(nil)
