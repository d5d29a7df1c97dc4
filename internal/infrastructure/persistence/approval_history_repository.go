package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/aravind238/funding-sub001/internal/domain/funding"
	"github.com/aravind238/funding-sub001/internal/domain/shared"
)

// GormApprovalHistoryRepository implements funding.ApprovalHistoryRepository
// using GORM
type GormApprovalHistoryRepository struct {
	db *gorm.DB
}

// NewGormApprovalHistoryRepository creates a new GormApprovalHistoryRepository
func NewGormApprovalHistoryRepository(db *gorm.DB) *GormApprovalHistoryRepository {
	return &GormApprovalHistoryRepository{db: db}
}

// LatestSnapshot returns the most recent history entry carrying a fee
// snapshot for a request
func (r *GormApprovalHistoryRepository) LatestSnapshot(ctx context.Context, kind funding.RequestKind, requestID int64) (*funding.ApprovalHistory, error) {
	var h funding.ApprovalHistory
	if err := r.db.WithContext(ctx).
		Where("request_kind = ? AND request_id = ? AND snapshot IS NOT NULL", kind, requestID).
		Order("recorded_at DESC").
		First(&h).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &h, nil
}

// Save appends a history entry
func (r *GormApprovalHistoryRepository) Save(ctx context.Context, h *funding.ApprovalHistory) error {
	return r.db.WithContext(ctx).Create(h).Error
}

var _ funding.ApprovalHistoryRepository = (*GormApprovalHistoryRepository)(nil)
