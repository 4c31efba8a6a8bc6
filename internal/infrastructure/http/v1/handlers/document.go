package handlers

import (
	"github.com/gin-gonic/gin"

	"batibill/internal/domain/documents"
	"batibill/internal/infrastructure/http/v1/dto"
)

// DocumentHandler exposes the financial document engine: creation with
// computed totals and sequential numbering, lifecycle transitions,
// retrieval, and deletion of drafts.
type DocumentHandler struct {
	*BaseHandler
	service *documents.Service
}

// NewDocumentHandler creates a document handler.
func NewDocumentHandler(base *BaseHandler, service *documents.Service) *DocumentHandler {
	return &DocumentHandler{BaseHandler: base, service: service}
}

// RegisterRoutes wires document endpoints on the group.
func (h *DocumentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.GET("/number/:type/:number", h.GetByNumber)
	rg.POST("/:id/transition", h.Transition)
	rg.DELETE("/:id", h.Delete)
}

// Create handles POST /documents.
func (h *DocumentHandler) Create(c *gin.Context) {
	var req dto.CreateDocumentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	doc, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.CreatedData(c, doc)
}

// List handles GET /documents.
func (h *DocumentHandler) List(c *gin.Context) {
	var q dto.DocumentFilter
	if !h.BindQuery(c, &q) {
		return
	}

	filter, err := q.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	docs, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(docs))
}

// Get handles GET /documents/:id.
func (h *DocumentHandler) Get(c *gin.Context) {
	docID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.service.Get(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, doc)
}

// GetByNumber handles GET /documents/number/:type/:number.
func (h *DocumentHandler) GetByNumber(c *gin.Context) {
	doc, err := h.service.GetByNumber(c.Request.Context(),
		documents.Type(c.Param("type")), c.Param("number"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, doc)
}

// Transition handles POST /documents/:id/transition.
func (h *DocumentHandler) Transition(c *gin.Context) {
	docID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.TransitionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.Transition(c.Request.Context(), docID, documents.Status(req.Status))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, doc)
}

// Delete handles DELETE /documents/:id. Drafts only.
func (h *DocumentHandler) Delete(c *gin.Context) {
	docID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), docID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
