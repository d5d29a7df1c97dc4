package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appfunding "github.com/aravind238/funding-sub001/internal/application/funding"
	"github.com/aravind238/funding-sub001/internal/domain/funding"
)

// FundingService is the application surface the funding handler depends on
type FundingService interface {
	GetSOA(ctx context.Context, id int64) (*funding.StatementOfAccount, error)
	ApproveSOA(ctx context.Context, id int64) (*funding.StatementOfAccount, error)
	RecalculateSOA(ctx context.Context, id int64) (*funding.StatementOfAccount, error)
	GetReserveRelease(ctx context.Context, id int64) (*funding.ReserveRelease, error)
	ApproveReserveRelease(ctx context.Context, id int64) (*funding.ReserveRelease, error)
	RecalculateReserveRelease(ctx context.Context, id int64) (*funding.ReserveRelease, error)
}

var _ FundingService = (*appfunding.Service)(nil)

// FundingHandler exposes the funding-request endpoints: statements of
// account and reserve releases
type FundingHandler struct {
	BaseHandler
	service FundingService
	logger  *zap.Logger
}

// NewFundingHandler creates a new FundingHandler
func NewFundingHandler(service FundingService, logger *zap.Logger) *FundingHandler {
	return &FundingHandler{service: service, logger: logger}
}

// RegisterRoutes registers funding routes
func (h *FundingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	soas := rg.Group("/soas")
	{
		soas.GET("/:id", h.GetSOA)
		soas.PUT("/:id/approve", h.ApproveSOA)
		soas.PUT("/:id/recalculate", h.RecalculateSOA)
	}

	releases := rg.Group("/reserve-releases")
	{
		releases.GET("/:id", h.GetReserveRelease)
		releases.PUT("/:id/approve", h.ApproveReserveRelease)
		releases.PUT("/:id/recalculate", h.RecalculateReserveRelease)
	}
}

// GetSOA returns a statement of account by id
func (h *FundingHandler) GetSOA(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid statement of account id")
		return
	}
	soa, err := h.service.GetSOA(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, soa)
}

// ApproveSOA approves a statement of account and returns it with its
// recomputed fee accounting
func (h *FundingHandler) ApproveSOA(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid statement of account id")
		return
	}
	soa, err := h.service.ApproveSOA(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, soa)
}

// RecalculateSOA recomputes a statement's fee accounting without a status
// change
func (h *FundingHandler) RecalculateSOA(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid statement of account id")
		return
	}
	soa, err := h.service.RecalculateSOA(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, soa)
}

// GetReserveRelease returns a reserve release by id
func (h *FundingHandler) GetReserveRelease(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid reserve release id")
		return
	}
	rr, err := h.service.GetReserveRelease(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rr)
}

// ApproveReserveRelease approves a reserve release and returns it with its
// recomputed fee accounting
func (h *FundingHandler) ApproveReserveRelease(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid reserve release id")
		return
	}
	rr, err := h.service.ApproveReserveRelease(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rr)
}

// RecalculateReserveRelease recomputes a reserve release's fee accounting
// without a status change
func (h *FundingHandler) RecalculateReserveRelease(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid reserve release id")
		return
	}
	rr, err := h.service.RecalculateReserveRelease(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rr)
}
