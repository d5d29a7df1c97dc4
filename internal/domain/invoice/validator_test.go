package invoice

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func datePtr(d Date) *Date {
	return &d
}

// newCandidate builds a ref-key addressed candidate for tests
func newCandidate(number string, refKey int64, invoiceDate, currentDate Date) Candidate {
	return Candidate{
		Number:      number,
		Date:        invoiceDate,
		RefKey:      int64Ptr(refKey),
		ClientID:    10,
		Amount:      decimal.NewFromInt(1000),
		CurrentDate: datePtr(currentDate),
	}
}

func newBundle() *ReferenceBundle {
	ref := NewReferenceBundle()
	ref.DebtorsByRefKey[500] = 77
	ref.RefKeysByDebtor[77] = 500
	return ref
}

func TestValidatorInsertScenario(t *testing.T) {
	// Candidate against empty funding and Cadence sets lands in inserts
	// annotated with the resolved debtor id.
	v := NewValidator()
	day := NewDate(2024, time.January, 10)
	c := newCandidate("INV-1", 500, day, day)

	result := v.Validate([]Candidate{c}, newBundle(), Mode{DebtorRefKeyExists: true})

	require.Len(t, result.Inserts, 1)
	assert.Equal(t, int64(77), result.Inserts[0].ResolvedDebtorID)
	assert.Equal(t, "INV-1", result.Inserts[0].Number)
	assert.Empty(t, result.Updates)
	assert.Empty(t, result.AlreadyExistFunding)
	assert.Empty(t, result.AlreadyExistCadence)
	assert.Empty(t, result.WrongDebtors)
	assert.Empty(t, result.WrongInvoiceData)
}

func TestValidatorAlreadyExistFunding(t *testing.T) {
	v := NewValidator()
	day := NewDate(2024, time.January, 10)
	ref := newBundle()
	ref.Sets.FundingInvoices[FundingKey{RefKey: 500, NumberLower: "inv-1"}] = struct{}{}

	c := newCandidate("INV-1", 500, day, day)
	result := v.Validate([]Candidate{c}, ref, Mode{DebtorRefKeyExists: true})

	require.Len(t, result.AlreadyExistFunding, 1)
	assert.Empty(t, result.Inserts)
}

func TestValidatorCaseInsensitiveMatching(t *testing.T) {
	// Two candidates differing only in invoice-number case are the same
	// invoice for duplicate detection.
	v := NewValidator()
	day := NewDate(2024, time.January, 10)
	ref := newBundle()
	ref.Sets.FundingInvoices[FundingKey{RefKey: 500, NumberLower: "inv-9"}] = struct{}{}

	lower := newCandidate("inv-9", 500, day, day)
	upper := newCandidate("INV-9", 500, day, day)
	result := v.Validate([]Candidate{lower, upper}, ref, Mode{DebtorRefKeyExists: true})

	assert.Len(t, result.AlreadyExistFunding, 2)
	assert.Empty(t, result.Inserts)
}

func TestValidatorDateBoundary(t *testing.T) {
	v := NewValidator()
	today := NewDate(2024, time.March, 15)

	t.Run("invoice dated today is accepted", func(t *testing.T) {
		c := newCandidate("INV-2", 500, today, today)
		result := v.Validate([]Candidate{c}, newBundle(), Mode{DebtorRefKeyExists: true})
		assert.Len(t, result.Inserts, 1)
		assert.Empty(t, result.WrongInvoiceData)
	})

	t.Run("invoice dated one day ahead is rejected", func(t *testing.T) {
		c := newCandidate("INV-2", 500, NewDate(2024, time.March, 16), today)
		result := v.Validate([]Candidate{c}, newBundle(), Mode{DebtorRefKeyExists: true})
		require.Len(t, result.WrongInvoiceData, 1)
		assert.Equal(t, "invoice_date is greater than current date(2024-03-15)", result.WrongInvoiceData[0].Message)
		assert.Empty(t, result.Inserts)
	})

	t.Run("check is skipped when current date is absent", func(t *testing.T) {
		c := newCandidate("INV-2", 500, NewDate(2099, time.January, 1), Date{})
		c.CurrentDate = nil
		result := v.Validate([]Candidate{c}, newBundle(), Mode{DebtorRefKeyExists: true})
		assert.Len(t, result.Inserts, 1)
	})
}

func TestValidatorWrongDebtor(t *testing.T) {
	v := NewValidator()
	day := NewDate(2024, time.January, 10)

	t.Run("unknown ref key", func(t *testing.T) {
		c := newCandidate("INV-3", 999, day, day)
		result := v.Validate([]Candidate{c}, newBundle(), Mode{DebtorRefKeyExists: true})
		require.Len(t, result.WrongDebtors, 1)
		assert.Equal(t, "Invoice having wrong debtor", result.WrongDebtors[0].Message)
	})

	t.Run("missing ref key in ref-key mode", func(t *testing.T) {
		c := newCandidate("INV-3", 0, day, day)
		c.RefKey = nil
		result := v.Validate([]Candidate{c}, newBundle(), Mode{DebtorRefKeyExists: true})
		assert.Len(t, result.WrongDebtors, 1)
	})

	t.Run("unknown internal debtor id in legacy mode", func(t *testing.T) {
		c := newCandidate("INV-3", 0, day, day)
		c.RefKey = nil
		c.DebtorID = int64Ptr(12345)
		result := v.Validate([]Candidate{c}, newBundle(), Mode{DebtorRefKeyExists: false})
		assert.Len(t, result.WrongDebtors, 1)
	})
}

func TestValidatorLegacyDebtorAddressing(t *testing.T) {
	// Legacy mode resolves the ref key through the swap map before running
	// the same duplicate checks.
	v := NewValidator()
	day := NewDate(2024, time.January, 10)
	c := newCandidate("INV-4", 0, day, day)
	c.RefKey = nil
	c.DebtorID = int64Ptr(77)

	result := v.Validate([]Candidate{c}, newBundle(), Mode{DebtorRefKeyExists: false})

	require.Len(t, result.Inserts, 1)
	assert.Equal(t, int64(77), result.Inserts[0].ResolvedDebtorID)
}

func TestValidatorAlreadyExistCadence(t *testing.T) {
	v := NewValidator()
	day := NewDate(2024, time.January, 10)
	ref := newBundle()
	// Cadence tokens keep the original invoice-number case.
	ref.CadenceInvoices["500|INV-5"] = struct{}{}

	result := v.Validate([]Candidate{newCandidate("INV-5", 500, day, day)}, ref, Mode{DebtorRefKeyExists: true})

	assert.Len(t, result.AlreadyExistCadence, 1)
	assert.Empty(t, result.Inserts)
}

func TestValidatorUpdateShortCircuit(t *testing.T) {
	// A candidate with an id whose (ref_key, number_lower) is absent from
	// the funding set is an update, never an insert.
	v := NewValidator()
	day := NewDate(2024, time.January, 10)
	c := newCandidate("INV-6", 500, day, day)
	c.ID = int64Ptr(42)

	result := v.Validate([]Candidate{c}, newBundle(), Mode{DebtorRefKeyExists: true})

	assert.Len(t, result.Updates, 1)
	assert.Empty(t, result.Inserts)
}

func TestValidatorUpdateFundingCollision(t *testing.T) {
	// When the candidate's key collides with a live funding invoice and no
	// row-identity clause rescues it, it falls through to already-exists.
	v := NewValidator()
	day := NewDate(2024, time.January, 10)
	ref := newBundle()
	ref.Sets.FundingInvoices[FundingKey{RefKey: 500, NumberLower: "inv-7"}] = struct{}{}

	c := newCandidate("INV-7", 500, day, day)
	c.ID = int64Ptr(42)
	result := v.Validate([]Candidate{c}, ref, Mode{DebtorRefKeyExists: true})

	assert.Len(t, result.AlreadyExistFunding, 1)
	assert.Empty(t, result.Updates)
}

func TestIsExistingInvoiceUpdatePredicate(t *testing.T) {
	sets := NewReferenceSets()
	sets.FundingInvoices[FundingKey{RefKey: 500, NumberLower: "inv-8"}] = struct{}{}
	sets.UniqueInvoices[UniqueKey{ID: 42, ClientID: 10, DebtorID: 77, NumberLower: "inv-8"}] = struct{}{}
	sets.UniqueInvoicesUpdate[UpdateKey{ID: 42, ClientID: 10, NumberLower: "inv-8"}] = struct{}{}

	t.Run("funding collision blocks every clause", func(t *testing.T) {
		assert.False(t, isExistingInvoiceUpdate(42, 10, 500, 77, "inv-8", sets))
	})

	t.Run("row identity match without collision", func(t *testing.T) {
		free := NewReferenceSets()
		free.UniqueInvoices[UniqueKey{ID: 42, ClientID: 10, DebtorID: 77, NumberLower: "inv-8"}] = struct{}{}
		assert.True(t, isExistingInvoiceUpdate(42, 10, 500, 77, "inv-8", free))
	})

	t.Run("zero ref key uses the looser identity", func(t *testing.T) {
		free := NewReferenceSets()
		free.UniqueInvoicesUpdate[UpdateKey{ID: 42, ClientID: 10, NumberLower: "inv-8"}] = struct{}{}
		assert.True(t, isExistingInvoiceUpdate(42, 10, 0, 77, "inv-8", free))
	})

	t.Run("catch-all accepts any non-colliding key", func(t *testing.T) {
		assert.True(t, isExistingInvoiceUpdate(99, 10, 500, 77, "other", NewReferenceSets()))
	})
}

func TestValidatorPartitionProperty(t *testing.T) {
	// The six buckets partition the input: every candidate appears exactly
	// once, and bucket order mirrors input order.
	v := NewValidator()
	day := NewDate(2024, time.January, 10)
	ref := newBundle()
	ref.DebtorsByRefKey[600] = 88
	ref.RefKeysByDebtor[88] = 600
	ref.Sets.FundingInvoices[FundingKey{RefKey: 500, NumberLower: "dup-1"}] = struct{}{}
	ref.CadenceInvoices["600|CAD-1"] = struct{}{}

	update := newCandidate("UPD-1", 500, day, day)
	update.ID = int64Ptr(7)
	future := newCandidate("LATE-1", 500, NewDate(2024, time.January, 11), day)
	wrong := newCandidate("BAD-1", 12345, day, day)

	batch := []Candidate{
		newCandidate("NEW-1", 500, day, day),
		newCandidate("DUP-1", 500, day, day),
		newCandidate("CAD-1", 600, day, day),
		update,
		future,
		wrong,
		newCandidate("NEW-2", 600, day, day),
	}

	result := v.Validate(batch, ref, Mode{DebtorRefKeyExists: true})

	assert.Equal(t, len(batch), result.Total())
	require.Len(t, result.Inserts, 2)
	assert.Equal(t, "NEW-1", result.Inserts[0].Number)
	assert.Equal(t, "NEW-2", result.Inserts[1].Number)
	assert.Len(t, result.Updates, 1)
	assert.Len(t, result.AlreadyExistFunding, 1)
	assert.Len(t, result.AlreadyExistCadence, 1)
	assert.Len(t, result.WrongDebtors, 1)
	assert.Len(t, result.WrongInvoiceData, 1)

	seen := make(map[string]int)
	for _, bucket := range [][]Candidate{
		result.Inserts, result.Updates, result.AlreadyExistFunding,
		result.AlreadyExistCadence, result.WrongDebtors, result.WrongInvoiceData,
	} {
		for _, c := range bucket {
			seen[c.Number]++
		}
	}
	for _, c := range batch {
		assert.Equal(t, 1, seen[c.Number], "candidate %s must land in exactly one bucket", c.Number)
	}
}

func TestValidatorMissingInvoiceNumber(t *testing.T) {
	v := NewValidator()
	day := NewDate(2024, time.January, 10)
	c := newCandidate("", 500, day, day)

	result := v.Validate([]Candidate{c}, newBundle(), Mode{DebtorRefKeyExists: true})

	require.Len(t, result.WrongInvoiceData, 1)
	assert.Equal(t, "invoice_number is required", result.WrongInvoiceData[0].Message)
}

func TestDateJSONRoundTrip(t *testing.T) {
	d, err := ParseDate("2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", d.String())

	raw, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-10"`, string(raw))

	var parsed Date
	require.NoError(t, parsed.UnmarshalJSON(raw))
	assert.Equal(t, d, parsed)

	_, err = ParseDate("10/01/2024")
	assert.Error(t, err)
}
