package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/aravind238/funding-sub001/internal/domain/funding"
)

// GormDisbursementRepository implements funding.DisbursementRepository
// using GORM. Listing hydrates each item's payee relation from the
// client_payees link for the owning request's client.
type GormDisbursementRepository struct {
	db *gorm.DB
}

// NewGormDisbursementRepository creates a new GormDisbursementRepository
func NewGormDisbursementRepository(db *gorm.DB) *GormDisbursementRepository {
	return &GormDisbursementRepository{db: db}
}

// ListForSOA lists the line items attached to a statement of account
func (r *GormDisbursementRepository) ListForSOA(ctx context.Context, soaID int64) ([]funding.Disbursement, error) {
	var clientID int64
	if err := r.db.WithContext(ctx).
		Model(&funding.StatementOfAccount{}).
		Select("client_id").
		Where("id = ?", soaID).
		Scan(&clientID).Error; err != nil {
		return nil, err
	}

	var items []funding.Disbursement
	if err := r.db.WithContext(ctx).
		Where("soa_id = ?", soaID).
		Order("id").
		Find(&items).Error; err != nil {
		return nil, err
	}

	if err := r.hydrateRelations(ctx, clientID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListForReserveRelease lists the line items attached to a reserve release
// through the join table
func (r *GormDisbursementRepository) ListForReserveRelease(ctx context.Context, reserveReleaseID int64) ([]funding.Disbursement, error) {
	var clientID int64
	if err := r.db.WithContext(ctx).
		Model(&funding.ReserveRelease{}).
		Select("client_id").
		Where("id = ?", reserveReleaseID).
		Scan(&clientID).Error; err != nil {
		return nil, err
	}

	var items []funding.Disbursement
	if err := r.db.WithContext(ctx).
		Joins("JOIN reserve_release_disbursements rrd ON rrd.disbursement_id = disbursements.id").
		Where("rrd.reserve_release_id = ?", reserveReleaseID).
		Order("disbursements.id").
		Find(&items).Error; err != nil {
		return nil, err
	}

	if err := r.hydrateRelations(ctx, clientID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Save creates or updates a disbursement
func (r *GormDisbursementRepository) Save(ctx context.Context, d *funding.Disbursement) error {
	return r.db.WithContext(ctx).Save(d).Error
}

// hydrateRelations fills each item's Relation from the client_payees link.
// Payees without a link for this client are treated as third parties,
// which is the fee-safe direction.
func (r *GormDisbursementRepository) hydrateRelations(ctx context.Context, clientID int64, items []funding.Disbursement) error {
	if len(items) == 0 {
		return nil
	}

	payeeIDs := make([]int64, 0, len(items))
	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.PayeeID]; !ok {
			seen[item.PayeeID] = struct{}{}
			payeeIDs = append(payeeIDs, item.PayeeID)
		}
	}

	var links []funding.ClientPayee
	if err := r.db.WithContext(ctx).
		Where("client_id = ? AND payee_id IN ?", clientID, payeeIDs).
		Find(&links).Error; err != nil {
		return err
	}

	relations := make(map[int64]funding.PayeeRelation, len(links))
	for _, link := range links {
		relations[link.PayeeID] = link.Relation
	}

	for i := range items {
		if rel, ok := relations[items[i].PayeeID]; ok {
			items[i].Relation = rel
		} else {
			items[i].Relation = funding.RelationPayee
		}
	}
	return nil
}

var _ funding.DisbursementRepository = (*GormDisbursementRepository)(nil)
