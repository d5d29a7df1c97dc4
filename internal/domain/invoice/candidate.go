package invoice

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Candidate is a transient invoice record submitted for classification.
// It is never persisted as-is: the validator sorts each candidate into
// exactly one outcome bucket and the caller decides what to save.
//
// Exactly one of DebtorID / RefKey addressing modes is active per batch,
// selected by Mode.DebtorRefKeyExists. Caller-supplied audit fields
// (created_at/updated_at) are not modeled here at all, which is what keeps
// stale client-side audit data from ever reaching the store.
type Candidate struct {
	// ID is set only when the candidate claims to reference an existing
	// persisted invoice, i.e. it represents an update.
	ID          *int64          `json:"id,omitempty"`
	Number      string          `json:"invoice_number"`
	Date        Date            `json:"invoice_date"`
	DebtorID    *int64          `json:"debtor,omitempty"`
	RefKey      *int64          `json:"ref_key,omitempty"`
	ClientID    int64           `json:"client_id"`
	Amount      decimal.Decimal `json:"amount"`
	// CurrentDate is the caller-supplied "today" in the client's local
	// business timezone, used for the date-sanity check. When absent the
	// check is skipped.
	CurrentDate *Date `json:"current_date,omitempty"`

	// Message is set when the candidate is rejected into wrong_invoice_data
	// or wrong_debtors.
	Message string `json:"msg,omitempty"`
	// ResolvedDebtorID is set on insert-classified candidates: the internal
	// debtor id the ref key resolved to.
	ResolvedDebtorID int64 `json:"debtor_id,omitempty"`
}

// NumberLower returns the invoice number lowered for duplicate matching.
// The persisted value keeps its original case; only set-membership
// comparisons are case-insensitive.
func (c Candidate) NumberLower() string {
	return strings.ToLower(c.Number)
}

// FundingKey identifies an invoice within the funding store by debtor ref
// key and lower-cased invoice number
type FundingKey struct {
	RefKey      int64
	NumberLower string
}

// UniqueKey identifies a persisted invoice row for true re-save detection
type UniqueKey struct {
	ID          int64
	ClientID    int64
	DebtorID    int64
	NumberLower string
}

// UpdateKey is the looser row-identity variant used when the candidate's
// ref key resolves to zero
type UpdateKey struct {
	ID          int64
	ClientID    int64
	NumberLower string
}

// CadenceKey formats the membership token used by the Cadence invoice set.
// The original-case invoice number is used on purpose: Cadence stores
// whatever case it purchased.
func CadenceKey(refKey int64, number string) string {
	return fmt.Sprintf("%d|%s", refKey, number)
}

// ReferenceSets bundles the three membership sets pulled from the persisted
// invoice store for one client
type ReferenceSets struct {
	// FundingInvoices holds (ref_key, invoice_number_lower) for invoices
	// that already exist and are not excluded by status.
	FundingInvoices map[FundingKey]struct{}
	// UniqueInvoices holds (id, client_id, debtor_id, invoice_number_lower)
	// for detecting a row being re-saved as itself.
	UniqueInvoices map[UniqueKey]struct{}
	// UniqueInvoicesUpdate holds (id, client_id, invoice_number_lower), the
	// looser variant consulted when the ref key is zero.
	UniqueInvoicesUpdate map[UpdateKey]struct{}
}

// NewReferenceSets creates empty reference sets
func NewReferenceSets() *ReferenceSets {
	return &ReferenceSets{
		FundingInvoices:      make(map[FundingKey]struct{}),
		UniqueInvoices:       make(map[UniqueKey]struct{}),
		UniqueInvoicesUpdate: make(map[UpdateKey]struct{}),
	}
}

// ReferenceBundle carries everything the validator consults: the two debtor
// addressing maps, the persisted-invoice sets and the Cadence membership
// set. It is assembled fresh per request by the caller; the validator only
// reads it.
type ReferenceBundle struct {
	// DebtorsByRefKey maps debtor ref key -> internal debtor id.
	DebtorsByRefKey map[int64]int64
	// RefKeysByDebtor maps internal debtor id -> ref key. Consulted only by
	// the legacy addressing mode.
	RefKeysByDebtor map[int64]int64

	Sets *ReferenceSets

	// CadenceInvoices holds "refKey|InvoiceNumber" tokens for invoices
	// already purchased in the external system of record.
	CadenceInvoices map[string]struct{}
}

// NewReferenceBundle creates an empty reference bundle
func NewReferenceBundle() *ReferenceBundle {
	return &ReferenceBundle{
		DebtorsByRefKey: make(map[int64]int64),
		RefKeysByDebtor: make(map[int64]int64),
		Sets:            NewReferenceSets(),
		CadenceInvoices: make(map[string]struct{}),
	}
}

// ValidationResult holds the six disjoint outcome buckets. Every candidate
// of the input batch lands in exactly one bucket, in input order.
type ValidationResult struct {
	Inserts             []Candidate `json:"insert_invoices"`
	Updates             []Candidate `json:"update_invoices"`
	AlreadyExistFunding []Candidate `json:"already_exist_funding"`
	AlreadyExistCadence []Candidate `json:"already_exist_cadence"`
	WrongDebtors        []Candidate `json:"wrong_debtors"`
	WrongInvoiceData    []Candidate `json:"wrong_invoice_data"`
}

// NewValidationResult creates a result with empty (non-nil) buckets so the
// JSON rendering always shows all six keys
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		Inserts:             make([]Candidate, 0),
		Updates:             make([]Candidate, 0),
		AlreadyExistFunding: make([]Candidate, 0),
		AlreadyExistCadence: make([]Candidate, 0),
		WrongDebtors:        make([]Candidate, 0),
		WrongInvoiceData:    make([]Candidate, 0),
	}
}

// Total returns the number of classified candidates across all buckets
func (r *ValidationResult) Total() int {
	return len(r.Inserts) + len(r.Updates) + len(r.AlreadyExistFunding) +
		len(r.AlreadyExistCadence) + len(r.WrongDebtors) + len(r.WrongInvoiceData)
}
