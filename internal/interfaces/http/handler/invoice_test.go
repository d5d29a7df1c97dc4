package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aravind238/funding-sub001/internal/domain/invoice"
	"github.com/aravind238/funding-sub001/internal/domain/shared"
)

type stubValidationService struct {
	result *invoice.ValidationResult
	err    error

	lastClientID int64
	lastMode     invoice.Mode
	lastSOAID    *int64
}

func (s *stubValidationService) Validate(_ context.Context, clientID int64, _ []invoice.Candidate, mode invoice.Mode) (*invoice.ValidationResult, error) {
	s.lastClientID = clientID
	s.lastMode = mode
	return s.result, s.err
}

func (s *stubValidationService) ImportBatch(_ context.Context, clientID int64, _ []invoice.Candidate, mode invoice.Mode, soaID *int64) (*invoice.ValidationResult, error) {
	s.lastClientID = clientID
	s.lastMode = mode
	s.lastSOAID = soaID
	return s.result, s.err
}

func newInvoiceRouter(svc *stubValidationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := NewInvoiceHandler(svc, zap.NewNop())
	h.RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func performJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestInvoiceHandler_Validate(t *testing.T) {
	t.Run("returns all six buckets", func(t *testing.T) {
		result := invoice.NewValidationResult()
		result.Inserts = append(result.Inserts, invoice.Candidate{Number: "INV-001", ClientID: 1})
		svc := &stubValidationService{result: result}
		engine := newInvoiceRouter(svc)

		w := performJSON(t, engine, http.MethodPost, "/api/v1/invoices/validate", gin.H{
			"client_id":             1,
			"debtor_ref_key_exists": true,
			"invoices":              []gin.H{{"invoice_number": "INV-001", "invoice_date": "2025-06-01", "ref_key": 500, "client_id": 1, "amount": "100"}},
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(1), svc.lastClientID)
		assert.True(t, svc.lastMode.DebtorRefKeyExists)

		var resp struct {
			Success bool `json:"success"`
			Data    struct {
				Inserts             []json.RawMessage `json:"insert_invoices"`
				Updates             []json.RawMessage `json:"update_invoices"`
				AlreadyExistFunding []json.RawMessage `json:"already_exist_funding"`
				AlreadyExistCadence []json.RawMessage `json:"already_exist_cadence"`
				WrongDebtors        []json.RawMessage `json:"wrong_debtors"`
				WrongInvoiceData    []json.RawMessage `json:"wrong_invoice_data"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Len(t, resp.Data.Inserts, 1)
		assert.NotNil(t, resp.Data.WrongDebtors)
	})

	t.Run("missing client_id is a validation error", func(t *testing.T) {
		engine := newInvoiceRouter(&stubValidationService{result: invoice.NewValidationResult()})

		w := performJSON(t, engine, http.MethodPost, "/api/v1/invoices/validate", gin.H{
			"invoices": []gin.H{{"invoice_number": "INV-001"}},
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_VALIDATION")
	})

	t.Run("empty batch is rejected", func(t *testing.T) {
		engine := newInvoiceRouter(&stubValidationService{result: invoice.NewValidationResult()})

		w := performJSON(t, engine, http.MethodPost, "/api/v1/invoices/validate", gin.H{
			"client_id": 1,
			"invoices":  []gin.H{},
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("cadence outage maps to 503", func(t *testing.T) {
		engine := newInvoiceRouter(&stubValidationService{err: shared.ErrCadenceUnavailable})

		w := performJSON(t, engine, http.MethodPost, "/api/v1/invoices/validate", gin.H{
			"client_id": 1,
			"invoices":  []gin.H{{"invoice_number": "INV-001", "invoice_date": "2025-06-01", "client_id": 1, "amount": "100"}},
		})

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_UPSTREAM_UNAVAILABLE")
	})

	t.Run("unknown client maps to 404", func(t *testing.T) {
		engine := newInvoiceRouter(&stubValidationService{err: shared.ErrNotFound})

		w := performJSON(t, engine, http.MethodPost, "/api/v1/invoices/validate", gin.H{
			"client_id": 42,
			"invoices":  []gin.H{{"invoice_number": "INV-001", "invoice_date": "2025-06-01", "client_id": 42, "amount": "100"}},
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestInvoiceHandler_Import(t *testing.T) {
	t.Run("forwards soa attachment", func(t *testing.T) {
		svc := &stubValidationService{result: invoice.NewValidationResult()}
		engine := newInvoiceRouter(svc)

		w := performJSON(t, engine, http.MethodPost, "/api/v1/invoices/import", gin.H{
			"client_id": 1,
			"soa_id":    77,
			"invoices":  []gin.H{{"invoice_number": "INV-001", "invoice_date": "2025-06-01", "ref_key": 500, "client_id": 1, "amount": "100"}},
		})

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, svc.lastSOAID)
		assert.Equal(t, int64(77), *svc.lastSOAID)
	})

	t.Run("import without soa leaves invoices unattached", func(t *testing.T) {
		svc := &stubValidationService{result: invoice.NewValidationResult()}
		engine := newInvoiceRouter(svc)

		w := performJSON(t, engine, http.MethodPost, "/api/v1/invoices/import", gin.H{
			"client_id": 1,
			"invoices":  []gin.H{{"invoice_number": "INV-001", "invoice_date": "2025-06-01", "ref_key": 500, "client_id": 1, "amount": "100"}},
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, svc.lastSOAID)
	})
}
