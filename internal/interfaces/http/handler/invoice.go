package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appinvoice "github.com/aravind238/funding-sub001/internal/application/invoice"
	"github.com/aravind238/funding-sub001/internal/domain/invoice"
	"github.com/aravind238/funding-sub001/internal/interfaces/http/dto"
)

// InvoiceValidationService is the application surface the invoice handler
// depends on
type InvoiceValidationService interface {
	Validate(ctx context.Context, clientID int64, candidates []invoice.Candidate, mode invoice.Mode) (*invoice.ValidationResult, error)
	ImportBatch(ctx context.Context, clientID int64, candidates []invoice.Candidate, mode invoice.Mode, soaID *int64) (*invoice.ValidationResult, error)
}

var _ InvoiceValidationService = (*appinvoice.ValidationService)(nil)

// InvoiceHandler exposes the invoice batch validation and import endpoints
type InvoiceHandler struct {
	BaseHandler
	service InvoiceValidationService
	logger  *zap.Logger
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(service InvoiceValidationService, logger *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{service: service, logger: logger}
}

// RegisterRoutes registers invoice routes
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	{
		invoices.POST("/validate", h.Validate)
		invoices.POST("/import", h.Import)
	}
}

// Validate classifies a candidate batch without persisting anything.
// The response carries all six outcome buckets.
func (h *InvoiceHandler) Validate(c *gin.Context) {
	var req dto.ValidateInvoicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	result, err := h.service.Validate(c.Request.Context(), req.ClientID, req.Invoices,
		invoice.Mode{DebtorRefKeyExists: req.DebtorRefKeyExists})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Import classifies a candidate batch and persists the insert and update
// buckets. Rejected buckets come back in the response untouched.
func (h *InvoiceHandler) Import(c *gin.Context) {
	var req dto.ImportInvoicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	result, err := h.service.ImportBatch(c.Request.Context(), req.ClientID, req.Invoices,
		invoice.Mode{DebtorRefKeyExists: req.DebtorRefKeyExists}, req.SOAID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
