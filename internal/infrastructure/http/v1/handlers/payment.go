package handlers

import (
	"github.com/gin-gonic/gin"

	"batibill/internal/domain/payments"
	"batibill/internal/infrastructure/http/v1/dto"
)

// PaymentHandler exposes the invoice payment ledger.
type PaymentHandler struct {
	*BaseHandler
	service *payments.Service
}

// NewPaymentHandler creates a payment handler.
func NewPaymentHandler(base *BaseHandler, service *payments.Service) *PaymentHandler {
	return &PaymentHandler{BaseHandler: base, service: service}
}

// RegisterRoutes wires payment endpoints on the group.
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Record)
	rg.GET("/invoice/:invoiceId", h.ListByInvoice)
	rg.DELETE("/:id", h.Delete)
}

// Record handles POST /payments. The response carries the payment and
// the invoice state it produced.
func (h *PaymentHandler) Record(c *gin.Context) {
	var req dto.RecordPaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	p, state, err := h.service.Record(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.CreatedData(c, dto.NewPaymentResponse(p, state))
}

// ListByInvoice handles GET /payments/invoice/:invoiceId.
func (h *PaymentHandler) ListByInvoice(c *gin.Context) {
	invoiceID, ok := h.ParseIDParam(c, "invoiceId")
	if !ok {
		return
	}

	list, err := h.service.ListByInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(list))
}

// Delete handles DELETE /payments/:id and returns the recomputed
// invoice state.
func (h *PaymentHandler) Delete(c *gin.Context) {
	paymentID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	state, err := h.service.Delete(c.Request.Context(), paymentID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromLedgerState(state))
}
