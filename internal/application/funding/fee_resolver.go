package funding

import (
	"context"
	"errors"

	"github.com/aravind238/funding-sub001/internal/domain/client"
	"github.com/aravind238/funding-sub001/internal/domain/funding"
	"github.com/aravind238/funding-sub001/internal/domain/shared"
	"go.uber.org/zap"
)

// FeeResolver picks the fee schedule a funding request must be priced
// with. Resolution order:
//
//  1. Approved and completed requests use the schedule frozen into their
//     latest approval-history snapshot. Later fee edits never reprice them.
//  2. Everything earlier in the workflow uses the client's live settings.
//  3. A client with no settings row gets one created lazily with zero fees.
type FeeResolver struct {
	settings client.SettingsRepository
	history  funding.ApprovalHistoryRepository
	logger   *zap.Logger
}

// NewFeeResolver creates a new FeeResolver
func NewFeeResolver(settings client.SettingsRepository, history funding.ApprovalHistoryRepository, logger *zap.Logger) *FeeResolver {
	return &FeeResolver{
		settings: settings,
		history:  history,
		logger:   logger,
	}
}

// Resolve returns the fee schedule in effect for the request
func (r *FeeResolver) Resolve(ctx context.Context, req funding.Request) (funding.FeeSchedule, error) {
	if req.CurrentStatus().UsesFrozenFees() {
		h, err := r.history.LatestSnapshot(ctx, req.Kind(), req.RequestID())
		switch {
		case err == nil && h.HasSnapshot():
			return *h.Snapshot.Schedule, nil
		case err != nil && !errors.Is(err, shared.ErrNotFound):
			return funding.FeeSchedule{}, err
		}
		// An approved request with no snapshot predates snapshotting. Fall
		// back to live settings rather than failing the recalculation.
		r.logger.Warn("approved request has no fee snapshot, using live settings",
			zap.String("kind", string(req.Kind())),
			zap.Int64("request_id", req.RequestID()))
	}

	settings, err := r.settings.GetOrCreate(ctx, req.RequestClientID())
	if err != nil {
		return funding.FeeSchedule{}, err
	}
	return scheduleFromSettings(settings), nil
}

// scheduleFromSettings maps a client settings row onto the value object the
// accountant consumes
func scheduleFromSettings(s *client.Settings) funding.FeeSchedule {
	return funding.FeeSchedule{
		HighPriorityFee: s.HighPriorityFee,
		SameDayACHFee:   s.SameDayACHFee,
		WireFee:         s.WireFee,
		ThirdPartyFee:   s.ThirdPartyFee,
	}
}
