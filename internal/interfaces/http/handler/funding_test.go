package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aravind238/funding-sub001/internal/domain/funding"
	"github.com/aravind238/funding-sub001/internal/domain/shared"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type stubFundingService struct {
	soa *funding.StatementOfAccount
	rr  *funding.ReserveRelease
	err error

	lastID int64
}

func (s *stubFundingService) GetSOA(_ context.Context, id int64) (*funding.StatementOfAccount, error) {
	s.lastID = id
	return s.soa, s.err
}

func (s *stubFundingService) ApproveSOA(_ context.Context, id int64) (*funding.StatementOfAccount, error) {
	s.lastID = id
	return s.soa, s.err
}

func (s *stubFundingService) RecalculateSOA(_ context.Context, id int64) (*funding.StatementOfAccount, error) {
	s.lastID = id
	return s.soa, s.err
}

func (s *stubFundingService) GetReserveRelease(_ context.Context, id int64) (*funding.ReserveRelease, error) {
	s.lastID = id
	return s.rr, s.err
}

func (s *stubFundingService) ApproveReserveRelease(_ context.Context, id int64) (*funding.ReserveRelease, error) {
	s.lastID = id
	return s.rr, s.err
}

func (s *stubFundingService) RecalculateReserveRelease(_ context.Context, id int64) (*funding.ReserveRelease, error) {
	s.lastID = id
	return s.rr, s.err
}

func newFundingRouter(svc *stubFundingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := NewFundingHandler(svc, zap.NewNop())
	h.RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func perform(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestFundingHandler_SOA(t *testing.T) {
	t.Run("get returns statement", func(t *testing.T) {
		soa, err := funding.NewStatementOfAccount(1, false)
		require.NoError(t, err)
		soa.ID = 10
		svc := &stubFundingService{soa: soa}
		engine := newFundingRouter(svc)

		w := perform(engine, http.MethodGet, "/api/v1/soas/10")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(10), svc.lastID)
		assert.Contains(t, w.Body.String(), `"success":true`)
	})

	t.Run("approve transitions and returns accounting", func(t *testing.T) {
		soa, err := funding.NewStatementOfAccount(1, false)
		require.NoError(t, err)
		soa.ID = 10
		require.NoError(t, soa.Submit())
		require.NoError(t, soa.Approve())
		engine := newFundingRouter(&stubFundingService{soa: soa})

		w := perform(engine, http.MethodPut, "/api/v1/soas/10/approve")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), string(funding.StatusApproved))
	})

	t.Run("missing statement maps to 404", func(t *testing.T) {
		engine := newFundingRouter(&stubFundingService{err: shared.ErrNotFound})

		w := perform(engine, http.MethodPut, "/api/v1/soas/999/approve")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid transition maps to 422", func(t *testing.T) {
		engine := newFundingRouter(&stubFundingService{err: shared.ErrInvalidState})

		w := perform(engine, http.MethodPut, "/api/v1/soas/10/approve")

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_INVALID_STATE")
	})

	t.Run("non-numeric id is a bad request", func(t *testing.T) {
		engine := newFundingRouter(&stubFundingService{})

		w := perform(engine, http.MethodGet, "/api/v1/soas/abc")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestFundingHandler_ReserveRelease(t *testing.T) {
	t.Run("recalculate returns release", func(t *testing.T) {
		rr, err := funding.NewReserveRelease(1, dec("1000"), false)
		require.NoError(t, err)
		rr.ID = 5
		svc := &stubFundingService{rr: rr}
		engine := newFundingRouter(svc)

		w := perform(engine, http.MethodPut, "/api/v1/reserve-releases/5/recalculate")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(5), svc.lastID)
	})

	t.Run("missing release maps to 404", func(t *testing.T) {
		engine := newFundingRouter(&stubFundingService{err: shared.ErrNotFound})

		w := perform(engine, http.MethodGet, "/api/v1/reserve-releases/999")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
