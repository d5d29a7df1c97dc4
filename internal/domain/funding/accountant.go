package funding

import (
	"github.com/shopspring/decimal"
)

// AccountingResult carries the fee totals and derived amounts for one
// funding request. All values keep full decimal precision; Rounded()
// produces the 2dp boundary values the caller persists and exports.
//
// TotalFeeToClient and TotalFeesASAP are intentionally different
// aggregates: the former is the display total shown to the client, the
// latter feeds the external disbursement export and must include the
// high-priority fee plus both payee subtotals. Never conflate them.
type AccountingResult struct {
	// FeesToClient is the subtotal of per-item fees on client-as-payee
	// line items.
	FeesToClient decimal.Decimal `json:"fees_to_client"`
	// ThirdPartyFees is the subtotal of per-item fees on
	// third-party-as-payee line items.
	ThirdPartyFees decimal.Decimal `json:"third_party_fees"`
	// TotalFeeToClient is the display aggregate: high-priority fee plus
	// per-method fees plus third-party item fees.
	TotalFeeToClient decimal.Decimal `json:"total_fee_to_client"`
	// TotalFeesASAP is the export aggregate: high-priority fee plus both
	// payee subtotals.
	TotalFeesASAP decimal.Decimal `json:"total_fees_asap"`
	// DisbursementAmount is the advance subtotal minus TotalFeesASAP.
	DisbursementAmount decimal.Decimal `json:"disbursement_amount"`
	// OutstandingAmount is the advance subtotal minus everything disbursed,
	// including the high-priority fee when flagged.
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
	// HighPriorityAmount is the high-priority fee when the request is
	// flagged, zero otherwise.
	HighPriorityAmount decimal.Decimal `json:"high_priority_amount"`
	// PayeeIDs lists every distinct payee touched, in line-item order.
	PayeeIDs []int64 `json:"get_payees"`
}

// Rounded returns a copy with every monetary field rounded to 2 decimal
// places. Internal math never rounds; only the persisted/exported boundary
// does.
func (r AccountingResult) Rounded() AccountingResult {
	rounded := r
	rounded.FeesToClient = r.FeesToClient.Round(2)
	rounded.ThirdPartyFees = r.ThirdPartyFees.Round(2)
	rounded.TotalFeeToClient = r.TotalFeeToClient.Round(2)
	rounded.TotalFeesASAP = r.TotalFeesASAP.Round(2)
	rounded.DisbursementAmount = r.DisbursementAmount.Round(2)
	rounded.OutstandingAmount = r.OutstandingAmount.Round(2)
	rounded.HighPriorityAmount = r.HighPriorityAmount.Round(2)
	return rounded
}

// Accountant computes disbursement fee totals for funding requests. It is
// stateless: identical inputs always produce identical results.
type Accountant struct{}

// NewAccountant creates a new Accountant
func NewAccountant() *Accountant {
	return &Accountant{}
}

// ComputeFees walks a request's disbursement line items, accumulates fee
// totals per payee relation and payment method, and derives the
// disbursement and outstanding amounts.
//
// Fee rules per line item:
//   - client-as-payee: the item's client_fee + third_party_fee go into the
//     client subtotal; wire and same-day-ACH items additionally charge the
//     schedule's method fee into the client fee total.
//   - third-party-as-payee: the item's fees go into the third-party
//     subtotal; the schedule's third-party fee is always charged into the
//     client fee total, with wire/same-day-ACH method fees on top.
func (a *Accountant) ComputeFees(req Request, items []Disbursement, fees FeeSchedule) AccountingResult {
	feeToClient := decimal.Zero
	feesASAP := decimal.Zero
	highPriorityAmount := decimal.Zero

	// The high-priority fee is request-level, not tied to any line item.
	// It charges the client and must also ride along in the export total.
	if req.IsHighPriority() {
		highPriorityAmount = fees.HighPriorityFee
		feeToClient = feeToClient.Add(fees.HighPriorityFee)
		feesASAP = feesASAP.Add(fees.HighPriorityFee)
	}

	clientSubtotal := decimal.Zero
	thirdPartySubtotal := decimal.Zero
	totalAmount := decimal.Zero

	payeeIDs := make([]int64, 0, len(items))
	seenPayees := make(map[int64]struct{}, len(items))

	for _, item := range items {
		totalAmount = totalAmount.Add(item.Amount)
		if _, seen := seenPayees[item.PayeeID]; !seen {
			seenPayees[item.PayeeID] = struct{}{}
			payeeIDs = append(payeeIDs, item.PayeeID)
		}

		itemFees := item.ThirdPartyFee.Add(item.ClientFee)

		if item.IsClientPayee() {
			clientSubtotal = clientSubtotal.Add(itemFees)
			switch item.PaymentMethod {
			case MethodWire:
				feeToClient = feeToClient.Add(fees.WireFee)
			case MethodSameDayACH:
				feeToClient = feeToClient.Add(fees.SameDayACHFee)
			}
			continue
		}

		thirdPartySubtotal = thirdPartySubtotal.Add(itemFees)
		// Third-party payouts always charge the third-party fee, whatever
		// the method.
		feeToClient = feeToClient.Add(fees.ThirdPartyFee)
		switch item.PaymentMethod {
		case MethodWire:
			feeToClient = feeToClient.Add(fees.WireFee)
		case MethodSameDayACH:
			feeToClient = feeToClient.Add(fees.SameDayACHFee)
		}
	}

	feesASAP = feesASAP.Add(clientSubtotal).Add(thirdPartySubtotal)

	advanceSubtotal := req.AdvanceSubtotal()
	disbursementAmount := advanceSubtotal.Sub(feesASAP)
	outstandingAmount := advanceSubtotal.Sub(totalAmount.Add(highPriorityAmount))

	return AccountingResult{
		FeesToClient:       clientSubtotal,
		ThirdPartyFees:     thirdPartySubtotal,
		TotalFeeToClient:   feeToClient,
		TotalFeesASAP:      feesASAP,
		DisbursementAmount: disbursementAmount,
		OutstandingAmount:  outstandingAmount,
		HighPriorityAmount: highPriorityAmount,
		PayeeIDs:           payeeIDs,
	}
}
