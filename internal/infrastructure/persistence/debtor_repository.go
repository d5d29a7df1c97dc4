package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/aravind238/funding-sub001/internal/domain/client"
	"github.com/aravind238/funding-sub001/internal/domain/shared"
)

// GormDebtorRepository implements client.DebtorRepository using GORM
type GormDebtorRepository struct {
	db *gorm.DB
}

// NewGormDebtorRepository creates a new GormDebtorRepository
func NewGormDebtorRepository(db *gorm.DB) *GormDebtorRepository {
	return &GormDebtorRepository{db: db}
}

// FindByID finds a debtor by internal id
func (r *GormDebtorRepository) FindByID(ctx context.Context, id int64) (*client.Debtor, error) {
	var d client.Debtor
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// debtorKeyRow is the projection used to build addressing maps
type debtorKeyRow struct {
	ID     int64
	RefKey int64
}

// RefKeyMap returns ref key -> internal debtor id for a client's debtors
func (r *GormDebtorRepository) RefKeyMap(ctx context.Context, clientID int64) (map[int64]int64, error) {
	rows, err := r.keyRows(ctx, clientID)
	if err != nil {
		return nil, err
	}
	m := make(map[int64]int64, len(rows))
	for _, row := range rows {
		m[row.RefKey] = row.ID
	}
	return m, nil
}

// SwapMap returns internal debtor id -> ref key for a client's debtors
func (r *GormDebtorRepository) SwapMap(ctx context.Context, clientID int64) (map[int64]int64, error) {
	rows, err := r.keyRows(ctx, clientID)
	if err != nil {
		return nil, err
	}
	m := make(map[int64]int64, len(rows))
	for _, row := range rows {
		m[row.ID] = row.RefKey
	}
	return m, nil
}

func (r *GormDebtorRepository) keyRows(ctx context.Context, clientID int64) ([]debtorKeyRow, error) {
	var rows []debtorKeyRow
	if err := r.db.WithContext(ctx).
		Model(&client.Debtor{}).
		Select("id", "ref_key").
		Where("client_id = ?", clientID).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Save creates or updates a debtor
func (r *GormDebtorRepository) Save(ctx context.Context, d *client.Debtor) error {
	return r.db.WithContext(ctx).Save(d).Error
}

var _ client.DebtorRepository = (*GormDebtorRepository)(nil)
