package invoice

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aravind238/funding-sub001/internal/domain/client"
	"github.com/aravind238/funding-sub001/internal/domain/invoice"
	"github.com/aravind238/funding-sub001/internal/domain/shared"
)

type fakeInvoiceRepo struct {
	byID       map[int64]*invoice.Invoice
	sets       *invoice.ReferenceSets
	batchSaves int
	saved      struct {
		inserts []*invoice.Invoice
		updates []*invoice.Invoice
	}
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		byID: make(map[int64]*invoice.Invoice),
		sets: invoice.NewReferenceSets(),
	}
}

func (r *fakeInvoiceRepo) FindByID(_ context.Context, id int64) (*invoice.Invoice, error) {
	inv, ok := r.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return inv, nil
}

func (r *fakeInvoiceRepo) LoadReferenceSets(_ context.Context, _ int64) (*invoice.ReferenceSets, error) {
	return r.sets, nil
}

func (r *fakeInvoiceRepo) Save(_ context.Context, inv *invoice.Invoice) error {
	r.byID[inv.ID] = inv
	return nil
}

func (r *fakeInvoiceRepo) SaveBatch(_ context.Context, inserts, updates []*invoice.Invoice) error {
	r.batchSaves++
	r.saved.inserts = inserts
	r.saved.updates = updates
	return nil
}

type fakeClientRepo struct {
	byID map[int64]*client.Client
}

func (r *fakeClientRepo) FindByID(_ context.Context, id int64) (*client.Client, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

func (r *fakeClientRepo) FindByRefKey(_ context.Context, refKey int64) (*client.Client, error) {
	for _, c := range r.byID {
		if c.RefKey == refKey {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeClientRepo) Save(_ context.Context, c *client.Client) error {
	r.byID[c.ID] = c
	return nil
}

type fakeDebtorRepo struct {
	refKeyMap map[int64]int64
	swapMap   map[int64]int64
}

func (r *fakeDebtorRepo) FindByID(_ context.Context, _ int64) (*client.Debtor, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeDebtorRepo) RefKeyMap(_ context.Context, _ int64) (map[int64]int64, error) {
	return r.refKeyMap, nil
}

func (r *fakeDebtorRepo) SwapMap(_ context.Context, _ int64) (map[int64]int64, error) {
	return r.swapMap, nil
}

func (r *fakeDebtorRepo) Save(_ context.Context, _ *client.Debtor) error {
	return nil
}

type fakeCadenceGateway struct {
	purchased map[string]struct{}
	err       error
	calls     int

	lastDebtors  []int64
	lastInvoices []string
}

func (g *fakeCadenceGateway) PurchasedInvoices(_ context.Context, _ int64, debtorRefKeys []int64, invoiceNumbers []string) (map[string]struct{}, error) {
	g.calls++
	g.lastDebtors = debtorRefKeys
	g.lastInvoices = invoiceNumbers
	if g.err != nil {
		return nil, g.err
	}
	return g.purchased, nil
}

type serviceFixture struct {
	invoices *fakeInvoiceRepo
	clients  *fakeClientRepo
	debtors  *fakeDebtorRepo
	cadence  *fakeCadenceGateway
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	c, err := client.NewClient(900, "Acme Staffing")
	require.NoError(t, err)
	c.ID = 1
	return &serviceFixture{
		invoices: newFakeInvoiceRepo(),
		clients:  &fakeClientRepo{byID: map[int64]*client.Client{1: c}},
		debtors: &fakeDebtorRepo{
			refKeyMap: map[int64]int64{500: 77},
			swapMap:   map[int64]int64{77: 500},
		},
		cadence: &fakeCadenceGateway{purchased: map[string]struct{}{}},
	}
}

func (f *serviceFixture) build(failClosed bool) *ValidationService {
	return NewValidationService(f.invoices, f.clients, f.debtors, f.cadence, failClosed, zap.NewNop())
}

func refKeyCandidate(number string, refKey int64) invoice.Candidate {
	rk := refKey
	return invoice.Candidate{
		Number:   number,
		Date:     invoice.NewDate(2024, time.March, 10),
		RefKey:   &rk,
		ClientID: 1,
		Amount:   decimal.NewFromInt(1000),
	}
}

func TestValidationService_Validate(t *testing.T) {
	ctx := context.Background()
	mode := invoice.Mode{DebtorRefKeyExists: true}

	t.Run("classifies against assembled bundle", func(t *testing.T) {
		f := newServiceFixture(t)
		f.cadence.purchased = map[string]struct{}{
			invoice.CadenceKey(500, "INV-2"): {},
		}
		svc := f.build(false)

		result, err := svc.Validate(ctx, 1, []invoice.Candidate{
			refKeyCandidate("INV-1", 500),
			refKeyCandidate("INV-2", 500),
			refKeyCandidate("INV-3", 999),
		}, mode)

		require.NoError(t, err)
		assert.Len(t, result.Inserts, 1)
		assert.Len(t, result.AlreadyExistCadence, 1)
		assert.Len(t, result.WrongDebtors, 1)
		assert.Equal(t, int64(77), result.Inserts[0].ResolvedDebtorID)
		// The Cadence lookup is scoped to the batch contents.
		assert.ElementsMatch(t, []int64{500, 999}, f.cadence.lastDebtors)
		assert.ElementsMatch(t, []string{"INV-1", "INV-2", "INV-3"}, f.cadence.lastInvoices)
	})

	t.Run("cadence outage fails open by default", func(t *testing.T) {
		f := newServiceFixture(t)
		f.cadence.err = shared.ErrCadenceUnavailable
		svc := f.build(false)

		result, err := svc.Validate(ctx, 1, []invoice.Candidate{
			refKeyCandidate("INV-1", 500),
		}, mode)

		require.NoError(t, err)
		// Without the purchased set the candidate classifies as an insert.
		assert.Len(t, result.Inserts, 1)
	})

	t.Run("cadence outage rejects batch when fail closed", func(t *testing.T) {
		f := newServiceFixture(t)
		f.cadence.err = shared.ErrCadenceUnavailable
		svc := f.build(true)

		_, err := svc.Validate(ctx, 1, []invoice.Candidate{
			refKeyCandidate("INV-1", 500),
		}, mode)

		assert.ErrorIs(t, err, shared.ErrCadenceUnavailable)
	})

	t.Run("unknown client rejects batch", func(t *testing.T) {
		f := newServiceFixture(t)
		svc := f.build(false)

		_, err := svc.Validate(ctx, 42, []invoice.Candidate{
			refKeyCandidate("INV-1", 500),
		}, mode)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("legacy mode uses swap map", func(t *testing.T) {
		f := newServiceFixture(t)
		svc := f.build(false)
		debtorID := int64(77)

		result, err := svc.Validate(ctx, 1, []invoice.Candidate{{
			Number:   "INV-1",
			Date:     invoice.NewDate(2024, time.March, 10),
			DebtorID: &debtorID,
			ClientID: 1,
			Amount:   decimal.NewFromInt(1000),
		}}, invoice.Mode{DebtorRefKeyExists: false})

		require.NoError(t, err)
		assert.Len(t, result.Inserts, 1)
	})
}

func TestValidationService_ImportBatch(t *testing.T) {
	ctx := context.Background()
	mode := invoice.Mode{DebtorRefKeyExists: true}

	t.Run("persists inserts and updates in one batch", func(t *testing.T) {
		f := newServiceFixture(t)

		existing, err := invoice.NewInvoice(func() invoice.Candidate {
			c := refKeyCandidate("INV-OLD", 500)
			c.ResolvedDebtorID = 77
			return c
		}(), nil)
		require.NoError(t, err)
		existing.ID = 300
		f.invoices.byID[300] = existing
		f.invoices.sets.UniqueInvoices[invoice.UniqueKey{
			ID: 300, ClientID: 1, DebtorID: 77, NumberLower: "inv-old",
		}] = struct{}{}

		update := refKeyCandidate("INV-OLD", 500)
		updateID := int64(300)
		update.ID = &updateID
		update.Amount = decimal.NewFromInt(2500)

		svc := f.build(false)
		result, err := svc.ImportBatch(ctx, 1, []invoice.Candidate{
			refKeyCandidate("INV-NEW", 500),
			update,
		}, mode, nil)

		require.NoError(t, err)
		assert.Len(t, result.Inserts, 1)
		assert.Len(t, result.Updates, 1)
		assert.Equal(t, 1, f.invoices.batchSaves)
		require.Len(t, f.invoices.saved.inserts, 1)
		assert.Equal(t, "INV-NEW", f.invoices.saved.inserts[0].Number)
		require.Len(t, f.invoices.saved.updates, 1)
		assert.True(t, f.invoices.saved.updates[0].Amount.Equal(decimal.NewFromInt(2500)))
	})

	t.Run("update referencing missing row is skipped", func(t *testing.T) {
		f := newServiceFixture(t)
		update := refKeyCandidate("INV-GONE", 500)
		missingID := int64(9999)
		update.ID = &missingID

		svc := f.build(false)
		result, err := svc.ImportBatch(ctx, 1, []invoice.Candidate{update}, mode, nil)

		require.NoError(t, err)
		assert.Len(t, result.Updates, 1)
		// Nothing persisted: the only candidate had no row to apply to.
		assert.Equal(t, 0, f.invoices.batchSaves)
	})

	t.Run("fully rejected batch saves nothing", func(t *testing.T) {
		f := newServiceFixture(t)
		svc := f.build(false)

		result, err := svc.ImportBatch(ctx, 1, []invoice.Candidate{
			refKeyCandidate("", 500),
			refKeyCandidate("INV-1", 999),
		}, mode, nil)

		require.NoError(t, err)
		assert.Equal(t, 0, f.invoices.batchSaves)
		assert.Len(t, result.WrongInvoiceData, 1)
		assert.Len(t, result.WrongDebtors, 1)
	})
}
