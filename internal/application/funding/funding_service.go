package funding

import (
	"context"

	"github.com/aravind238/funding-sub001/internal/domain/funding"
	"go.uber.org/zap"
)

// Service drives the funding-request workflow: approval transitions and
// the fee accounting that accompanies them.
type Service struct {
	soas            funding.SOARepository
	reserveReleases funding.ReserveReleaseRepository
	disbursements   funding.DisbursementRepository
	history         funding.ApprovalHistoryRepository
	feeResolver     *FeeResolver
	accountant      *funding.Accountant
	logger          *zap.Logger
}

// NewService creates a new funding Service
func NewService(
	soas funding.SOARepository,
	reserveReleases funding.ReserveReleaseRepository,
	disbursements funding.DisbursementRepository,
	history funding.ApprovalHistoryRepository,
	feeResolver *FeeResolver,
	logger *zap.Logger,
) *Service {
	return &Service{
		soas:            soas,
		reserveReleases: reserveReleases,
		disbursements:   disbursements,
		history:         history,
		feeResolver:     feeResolver,
		accountant:      funding.NewAccountant(),
		logger:          logger,
	}
}

// GetSOA returns a statement of account by id
func (s *Service) GetSOA(ctx context.Context, id int64) (*funding.StatementOfAccount, error) {
	return s.soas.FindByID(ctx, id)
}

// GetReserveRelease returns a reserve release by id
func (s *Service) GetReserveRelease(ctx context.Context, id int64) (*funding.ReserveRelease, error) {
	return s.reserveReleases.FindByID(ctx, id)
}

// ApproveSOA transitions a statement of account to approved, recomputes its
// fee accounting with the fees in effect, and freezes those fees into the
// approval history so later settings edits never reprice it.
func (s *Service) ApproveSOA(ctx context.Context, id int64) (*funding.StatementOfAccount, error) {
	soa, err := s.soas.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Fees are resolved before the transition: a pending request reads live
	// settings, and those are what gets frozen.
	fees, err := s.feeResolver.Resolve(ctx, soa)
	if err != nil {
		return nil, err
	}

	previous := soa.Status
	if err := soa.Approve(); err != nil {
		return nil, err
	}

	items, err := s.disbursements.ListForSOA(ctx, id)
	if err != nil {
		return nil, err
	}
	result := s.accountant.ComputeFees(soa, items, fees)
	soa.ApplyAccounting(result)

	if err := s.soas.Save(ctx, soa); err != nil {
		return nil, err
	}

	h, err := funding.NewApprovalHistoryWithSnapshot(funding.KindSOA, id, previous, soa.Status, fees)
	if err != nil {
		return nil, err
	}
	if err := s.history.Save(ctx, h); err != nil {
		return nil, err
	}

	s.logger.Info("statement of account approved",
		zap.Int64("soa_id", id),
		zap.Int64("client_id", soa.ClientID),
		zap.String("disbursement_amount", soa.DisbursementAmount.String()),
	)
	return soa, nil
}

// ApproveReserveRelease mirrors ApproveSOA for the reserve-release kind
func (s *Service) ApproveReserveRelease(ctx context.Context, id int64) (*funding.ReserveRelease, error) {
	rr, err := s.reserveReleases.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fees, err := s.feeResolver.Resolve(ctx, rr)
	if err != nil {
		return nil, err
	}

	previous := rr.Status
	if err := rr.Approve(); err != nil {
		return nil, err
	}

	items, err := s.disbursements.ListForReserveRelease(ctx, id)
	if err != nil {
		return nil, err
	}
	result := s.accountant.ComputeFees(rr, items, fees)
	rr.ApplyAccounting(result)

	if err := s.reserveReleases.Save(ctx, rr); err != nil {
		return nil, err
	}

	h, err := funding.NewApprovalHistoryWithSnapshot(funding.KindReserveRelease, id, previous, rr.Status, fees)
	if err != nil {
		return nil, err
	}
	if err := s.history.Save(ctx, h); err != nil {
		return nil, err
	}

	s.logger.Info("reserve release approved",
		zap.Int64("reserve_release_id", id),
		zap.Int64("client_id", rr.ClientID),
		zap.String("disbursement_amount", rr.DisbursementAmount.String()),
	)
	return rr, nil
}

// RecalculateSOA recomputes a statement's fee accounting without changing
// its status. Approved statements recalculate with their frozen snapshot.
func (s *Service) RecalculateSOA(ctx context.Context, id int64) (*funding.StatementOfAccount, error) {
	soa, err := s.soas.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	fees, err := s.feeResolver.Resolve(ctx, soa)
	if err != nil {
		return nil, err
	}
	items, err := s.disbursements.ListForSOA(ctx, id)
	if err != nil {
		return nil, err
	}
	soa.ApplyAccounting(s.accountant.ComputeFees(soa, items, fees))
	if err := s.soas.Save(ctx, soa); err != nil {
		return nil, err
	}
	return soa, nil
}

// RecalculateReserveRelease recomputes a reserve release's fee accounting
// without changing its status
func (s *Service) RecalculateReserveRelease(ctx context.Context, id int64) (*funding.ReserveRelease, error) {
	rr, err := s.reserveReleases.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	fees, err := s.feeResolver.Resolve(ctx, rr)
	if err != nil {
		return nil, err
	}
	items, err := s.disbursements.ListForReserveRelease(ctx, id)
	if err != nil {
		return nil, err
	}
	rr.ApplyAccounting(s.accountant.ComputeFees(rr, items, fees))
	if err := s.reserveReleases.Save(ctx, rr); err != nil {
		return nil, err
	}
	return rr, nil
}
