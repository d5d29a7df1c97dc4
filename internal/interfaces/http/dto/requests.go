package dto

import (
	"github.com/aravind238/funding-sub001/internal/domain/invoice"
)

// ValidateInvoicesRequest is the body for the batch validation endpoint.
// DebtorRefKeyExists selects how the candidates address their debtor:
// true means Cadence ref keys, false means internal debtor ids.
type ValidateInvoicesRequest struct {
	ClientID           int64               `json:"client_id" binding:"required,gt=0"`
	DebtorRefKeyExists bool                `json:"debtor_ref_key_exists"`
	Invoices           []invoice.Candidate `json:"invoices" binding:"required,min=1"`
}

// ImportInvoicesRequest is the body for the batch import endpoint. SOAID,
// when present, attaches the inserted invoices to a statement of account.
type ImportInvoicesRequest struct {
	ClientID           int64               `json:"client_id" binding:"required,gt=0"`
	DebtorRefKeyExists bool                `json:"debtor_ref_key_exists"`
	SOAID              *int64              `json:"soa_id,omitempty"`
	Invoices           []invoice.Candidate `json:"invoices" binding:"required,min=1"`
}
