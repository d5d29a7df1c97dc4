package funding

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// FeeSchedule is the set of per-client fee amounts applied when pricing a
// funding request's disbursements. All amounts are flat currency values,
// never percentages.
type FeeSchedule struct {
	HighPriorityFee decimal.Decimal `json:"high_priority_fee"`
	SameDayACHFee   decimal.Decimal `json:"same_day_ach_fee"`
	WireFee         decimal.Decimal `json:"wire_fee"`
	ThirdPartyFee   decimal.Decimal `json:"third_party_fee"`
}

// ZeroFeeSchedule returns a schedule with every fee at zero. Used as the
// lazy default for clients that have never been configured.
func ZeroFeeSchedule() FeeSchedule {
	return FeeSchedule{
		HighPriorityFee: decimal.Zero,
		SameDayACHFee:   decimal.Zero,
		WireFee:         decimal.Zero,
		ThirdPartyFee:   decimal.Zero,
	}
}

// FeeSnapshot is a FeeSchedule frozen into an approval-history row as a
// JSONB column. A nil snapshot means the transition recorded no fee state
// (e.g. a rejection).
type FeeSnapshot struct {
	Schedule *FeeSchedule
}

// Value implements driver.Valuer for database storage
func (s FeeSnapshot) Value() (driver.Value, error) {
	if s.Schedule == nil {
		return nil, nil
	}
	return json.Marshal(s.Schedule)
}

// Scan implements sql.Scanner for database retrieval
func (s *FeeSnapshot) Scan(value any) error {
	if value == nil {
		s.Schedule = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into FeeSnapshot", value)
	}
	var schedule FeeSchedule
	if err := json.Unmarshal(raw, &schedule); err != nil {
		return fmt.Errorf("invalid fee snapshot: %w", err)
	}
	s.Schedule = &schedule
	return nil
}
