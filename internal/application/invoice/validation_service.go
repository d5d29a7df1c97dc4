package invoice

import (
	"context"
	"errors"

	"github.com/aravind238/funding-sub001/internal/domain/client"
	"github.com/aravind238/funding-sub001/internal/domain/invoice"
	"github.com/aravind238/funding-sub001/internal/domain/shared"
	"go.uber.org/zap"
)

// CadenceGateway fetches the set of invoices the external system of record
// has already purchased. The lookup is scoped to the debtor ref keys and
// invoice numbers of the batch being validated. Keys use the
// "refKey|InvoiceNumber" token format with the invoice number in its
// original case.
type CadenceGateway interface {
	PurchasedInvoices(ctx context.Context, clientRefKey int64, debtorRefKeys []int64, invoiceNumbers []string) (map[string]struct{}, error)
}

// ValidationService orchestrates invoice batch validation: it assembles the
// reference bundle from the persisted stores and the Cadence gateway, runs
// the classifier, and optionally persists the accepted buckets.
type ValidationService struct {
	invoices  invoice.Repository
	clients   client.Repository
	debtors   client.DebtorRepository
	cadence   CadenceGateway
	validator *invoice.Validator

	// failClosed turns a Cadence outage into a batch rejection instead of
	// validating against an empty purchased set.
	failClosed bool
	logger     *zap.Logger
}

// NewValidationService creates a new ValidationService
func NewValidationService(
	invoices invoice.Repository,
	clients client.Repository,
	debtors client.DebtorRepository,
	cadence CadenceGateway,
	failClosed bool,
	logger *zap.Logger,
) *ValidationService {
	return &ValidationService{
		invoices:   invoices,
		clients:    clients,
		debtors:    debtors,
		cadence:    cadence,
		validator:  invoice.NewValidator(),
		failClosed: failClosed,
		logger:     logger,
	}
}

// Validate classifies a batch of candidates for one client without
// persisting anything. The caller inspects the buckets and decides whether
// to import.
func (s *ValidationService) Validate(ctx context.Context, clientID int64, candidates []invoice.Candidate, mode invoice.Mode) (*invoice.ValidationResult, error) {
	bundle, err := s.buildReferenceBundle(ctx, clientID, candidates, mode)
	if err != nil {
		return nil, err
	}
	return s.validator.Validate(candidates, bundle, mode), nil
}

// ImportBatch classifies a batch and persists the insert and update buckets
// in a single transaction. Rejected buckets are returned untouched so the
// caller can report them.
func (s *ValidationService) ImportBatch(ctx context.Context, clientID int64, candidates []invoice.Candidate, mode invoice.Mode, soaID *int64) (*invoice.ValidationResult, error) {
	result, err := s.Validate(ctx, clientID, candidates, mode)
	if err != nil {
		return nil, err
	}

	inserts := make([]*invoice.Invoice, 0, len(result.Inserts))
	for _, c := range result.Inserts {
		inv, err := invoice.NewInvoice(c, soaID)
		if err != nil {
			return nil, err
		}
		inserts = append(inserts, inv)
	}

	updates := make([]*invoice.Invoice, 0, len(result.Updates))
	for _, c := range result.Updates {
		existing, err := s.invoices.FindByID(ctx, *c.ID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				// The update predicate admits ids that no longer resolve to a
				// row. Nothing to apply; skip and keep the rest of the batch.
				s.logger.Warn("update candidate references missing invoice",
					zap.Int64("invoice_id", *c.ID),
					zap.Int64("client_id", clientID))
				continue
			}
			return nil, err
		}
		if err := existing.ApplyCandidate(c); err != nil {
			return nil, err
		}
		updates = append(updates, existing)
	}

	if len(inserts) > 0 || len(updates) > 0 {
		if err := s.invoices.SaveBatch(ctx, inserts, updates); err != nil {
			return nil, err
		}
	}

	s.logger.Info("invoice batch imported",
		zap.Int64("client_id", clientID),
		zap.Int("inserted", len(inserts)),
		zap.Int("updated", len(updates)),
		zap.Int("rejected", len(result.WrongDebtors)+len(result.WrongInvoiceData)),
	)
	return result, nil
}

// buildReferenceBundle assembles everything the classifier consults: the
// debtor addressing maps, the persisted-invoice sets, and the Cadence
// purchased set.
func (s *ValidationService) buildReferenceBundle(ctx context.Context, clientID int64, candidates []invoice.Candidate, mode invoice.Mode) (*invoice.ReferenceBundle, error) {
	cl, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	bundle := invoice.NewReferenceBundle()

	if mode.DebtorRefKeyExists {
		bundle.DebtorsByRefKey, err = s.debtors.RefKeyMap(ctx, clientID)
	} else {
		bundle.RefKeysByDebtor, err = s.debtors.SwapMap(ctx, clientID)
	}
	if err != nil {
		return nil, err
	}

	bundle.Sets, err = s.invoices.LoadReferenceSets(ctx, clientID)
	if err != nil {
		return nil, err
	}

	debtorKeys, numbers := cadenceLookupScope(candidates, bundle, mode)
	purchased, err := s.cadence.PurchasedInvoices(ctx, cl.RefKey, debtorKeys, numbers)
	if err != nil {
		if s.failClosed {
			s.logger.Error("cadence lookup failed, rejecting batch",
				zap.Int64("client_id", clientID), zap.Error(err))
			return nil, shared.ErrCadenceUnavailable
		}
		// Fail open: validate against an empty purchased set. Duplicates
		// Cadence knows about surface as insert conflicts downstream.
		s.logger.Warn("cadence lookup failed, validating without purchased set",
			zap.Int64("client_id", clientID), zap.Error(err))
		purchased = map[string]struct{}{}
	}
	bundle.CadenceInvoices = purchased

	return bundle, nil
}

// cadenceLookupScope collects the distinct debtor ref keys and invoice
// numbers of a batch so the Cadence lookup covers only what the batch can
// collide with
func cadenceLookupScope(candidates []invoice.Candidate, bundle *invoice.ReferenceBundle, mode invoice.Mode) ([]int64, []string) {
	seenKeys := make(map[int64]struct{}, len(candidates))
	seenNumbers := make(map[string]struct{}, len(candidates))
	keys := make([]int64, 0, len(candidates))
	numbers := make([]string, 0, len(candidates))

	for _, c := range candidates {
		var refKey int64
		if mode.DebtorRefKeyExists {
			if c.RefKey != nil {
				refKey = *c.RefKey
			}
		} else if c.DebtorID != nil {
			refKey = bundle.RefKeysByDebtor[*c.DebtorID]
		}
		if refKey != 0 {
			if _, ok := seenKeys[refKey]; !ok {
				seenKeys[refKey] = struct{}{}
				keys = append(keys, refKey)
			}
		}
		if c.Number != "" {
			if _, ok := seenNumbers[c.Number]; !ok {
				seenNumbers[c.Number] = struct{}{}
				numbers = append(numbers, c.Number)
			}
		}
	}
	return keys, numbers
}
