package invoice

import "fmt"

// Mode selects how candidates address their debtor
type Mode struct {
	// DebtorRefKeyExists is true when candidates carry the Cadence debtor
	// ref key; false when they carry the internal debtor id (legacy
	// imports predating the Cadence sync).
	DebtorRefKeyExists bool
}

// Validator classifies candidate invoices against a reference bundle.
// It is stateless and performs no I/O; callers fetch a fresh bundle per
// batch and persist the outcome inside their own transaction.
type Validator struct{}

// NewValidator creates a new Validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate classifies each candidate into exactly one outcome bucket.
// Candidates are processed independently in input order, and each bucket
// preserves that order.
func (v *Validator) Validate(candidates []Candidate, ref *ReferenceBundle, mode Mode) *ValidationResult {
	result := NewValidationResult()
	for _, c := range candidates {
		v.classify(c, ref, mode, result)
	}
	return result
}

// classify routes a single candidate into its bucket
func (v *Validator) classify(c Candidate, ref *ReferenceBundle, mode Mode, result *ValidationResult) {
	if c.Number == "" {
		c.Message = "invoice_number is required"
		result.WrongInvoiceData = append(result.WrongInvoiceData, c)
		return
	}
	if c.Date.IsZero() {
		c.Message = "invoice_date is required"
		result.WrongInvoiceData = append(result.WrongInvoiceData, c)
		return
	}

	// Date sanity: an invoice cannot be dated in the client's future.
	// Skipped when the caller supplied no reference date.
	if c.CurrentDate != nil && c.Date.After(*c.CurrentDate) {
		c.Message = fmt.Sprintf("invoice_date is greater than current date(%s)", c.CurrentDate)
		result.WrongInvoiceData = append(result.WrongInvoiceData, c)
		return
	}

	refKey, debtorID, ok := v.resolveDebtor(c, ref, mode)
	if !ok {
		c.Message = "Invoice having wrong debtor"
		result.WrongDebtors = append(result.WrongDebtors, c)
		return
	}

	numberLower := c.NumberLower()

	// Candidates carrying an id claim to reference an existing row; when
	// the update predicate holds they bypass the duplicate checks entirely.
	if c.ID != nil && isExistingInvoiceUpdate(*c.ID, c.ClientID, refKey, debtorID, numberLower, ref.Sets) {
		result.Updates = append(result.Updates, c)
		return
	}

	if _, exists := ref.Sets.FundingInvoices[FundingKey{RefKey: refKey, NumberLower: numberLower}]; exists {
		result.AlreadyExistFunding = append(result.AlreadyExistFunding, c)
		return
	}

	// Cadence membership uses the original-case number.
	if _, exists := ref.CadenceInvoices[CadenceKey(refKey, c.Number)]; exists {
		result.AlreadyExistCadence = append(result.AlreadyExistCadence, c)
		return
	}

	c.ResolvedDebtorID = debtorID
	result.Inserts = append(result.Inserts, c)
}

// resolveDebtor maps the candidate's debtor reference onto (refKey,
// internal debtor id) using the addressing mode of the batch. A reference
// that does not resolve through the relevant map is a wrong debtor.
func (v *Validator) resolveDebtor(c Candidate, ref *ReferenceBundle, mode Mode) (refKey, debtorID int64, ok bool) {
	if mode.DebtorRefKeyExists {
		if c.RefKey != nil {
			refKey = *c.RefKey
		}
		debtorID, ok = ref.DebtorsByRefKey[refKey]
		return refKey, debtorID, ok
	}

	if c.DebtorID != nil {
		debtorID = *c.DebtorID
	}
	refKey, ok = ref.RefKeysByDebtor[debtorID]
	return refKey, debtorID, ok
}

// isExistingInvoiceUpdate decides whether a candidate carrying an id is a
// legitimate update of a persisted row.
//
// The three clauses reconcile the two debtor addressing schemes used at
// different points of the platform's history. They are kept exactly as the
// funding store applies them; do not collapse them without confirming
// against production data:
//
//  1. The full row identity (id, client_id, debtor, number_lower) matches a
//     persisted row AND the (ref_key, number_lower) pair does not collide
//     with any live funding invoice. This is the re-save of a row addressed
//     by ref key.
//  2. The ref key resolved to zero (legacy rows imported before ref keys
//     existed) AND the looser (id, client_id, number_lower) identity
//     matches AND there is still no funding collision.
//  3. Catch-all: the (ref_key, number_lower) pair collides with nothing
//     persisted at all. An update whose key no longer collides is safe to
//     apply even when neither row-identity set recognises it. This clause
//     is intentionally permissive.
func isExistingInvoiceUpdate(id, clientID, refKey, debtorID int64, numberLower string, sets *ReferenceSets) bool {
	_, inFunding := sets.FundingInvoices[FundingKey{RefKey: refKey, NumberLower: numberLower}]

	_, uniqueMatch := sets.UniqueInvoices[UniqueKey{
		ID:          id,
		ClientID:    clientID,
		DebtorID:    debtorID,
		NumberLower: numberLower,
	}]
	if uniqueMatch && !inFunding {
		return true
	}

	if refKey == 0 {
		_, updateMatch := sets.UniqueInvoicesUpdate[UpdateKey{
			ID:          id,
			ClientID:    clientID,
			NumberLower: numberLower,
		}]
		if updateMatch && !inFunding {
			return true
		}
	}

	return !inFunding
}
