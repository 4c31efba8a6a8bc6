package handlers

import (
	"github.com/gin-gonic/gin"

	"batibill/internal/domain/expenses"
	"batibill/internal/infrastructure/http/v1/dto"
)

// ExpenseHandler exposes expense tracking.
type ExpenseHandler struct {
	*BaseHandler
	service *expenses.Service
}

// NewExpenseHandler creates an expense handler.
func NewExpenseHandler(base *BaseHandler, service *expenses.Service) *ExpenseHandler {
	return &ExpenseHandler{BaseHandler: base, service: service}
}

// RegisterRoutes wires expense endpoints on the group.
func (h *ExpenseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	e, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	e, err = h.service.Create(c.Request.Context(), e)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.CreatedData(c, e)
}

func (h *ExpenseHandler) List(c *gin.Context) {
	var q dto.ExpenseFilter
	if !h.BindQuery(c, &q) {
		return
	}

	filter, err := q.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	list, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(list))
}

func (h *ExpenseHandler) Get(c *gin.Context) {
	expenseID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	e, err := h.service.Get(c.Request.Context(), expenseID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, e)
}

func (h *ExpenseHandler) Update(c *gin.Context) {
	expenseID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateExpenseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	e, err := h.service.Get(ctx, expenseID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.ApplyTo(e)

	if err := h.service.Update(ctx, e); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, e)
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	expenseID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), expenseID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
