package handlers

import (
	"github.com/gin-gonic/gin"

	"batibill/internal/domain/catalogs/catalogitem"
	"batibill/internal/domain/catalogs/client"
	"batibill/internal/domain/catalogs/site"
	"batibill/internal/infrastructure/http/v1/dto"
)

// --- Catalog items ---

// ItemHandler exposes the service/material catalog.
type ItemHandler struct {
	*BaseHandler
	service *catalogitem.Service
}

// NewItemHandler creates a catalog item handler.
func NewItemHandler(base *BaseHandler, service *catalogitem.Service) *ItemHandler {
	return &ItemHandler{BaseHandler: base, service: service}
}

// RegisterRoutes wires catalog item endpoints on the group.
func (h *ItemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

func (h *ItemHandler) Create(c *gin.Context) {
	var req dto.CreateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.service.Create(c.Request.Context(), req.ToEntity())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.CreatedData(c, item)
}

func (h *ItemHandler) List(c *gin.Context) {
	activeOnly := c.Query("activeOnly") == "true"
	items, err := h.service.List(c.Request.Context(), activeOnly)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(items))
}

func (h *ItemHandler) Get(c *gin.Context) {
	itemID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.service.Get(c.Request.Context(), itemID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, item)
}

func (h *ItemHandler) Update(c *gin.Context) {
	itemID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	item, err := h.service.Get(ctx, itemID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.ApplyTo(item)

	if err := h.service.Update(ctx, item); err != nil {
		h.Error(c, err)
		return
	}
	item.Touch() // repository persisted version+1
	h.OK(c, item)
}

func (h *ItemHandler) Delete(c *gin.Context) {
	itemID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), itemID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// --- Clients ---

// ClientHandler exposes the client registry.
type ClientHandler struct {
	*BaseHandler
	service *client.Service
}

// NewClientHandler creates a client handler.
func NewClientHandler(base *BaseHandler, service *client.Service) *ClientHandler {
	return &ClientHandler{BaseHandler: base, service: service}
}

// RegisterRoutes wires client endpoints on the group.
func (h *ClientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req dto.CreateClientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cl, err := h.service.Create(c.Request.Context(), req.ToEntity())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.CreatedData(c, cl)
}

func (h *ClientHandler) List(c *gin.Context) {
	activeOnly := c.Query("activeOnly") == "true"
	clients, err := h.service.List(c.Request.Context(), activeOnly)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(clients))
}

func (h *ClientHandler) Get(c *gin.Context) {
	clientID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	cl, err := h.service.Get(c.Request.Context(), clientID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, cl)
}

func (h *ClientHandler) Update(c *gin.Context) {
	clientID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateClientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	cl, err := h.service.Get(ctx, clientID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.ApplyTo(cl)

	if err := h.service.Update(ctx, cl); err != nil {
		h.Error(c, err)
		return
	}
	cl.Touch() // repository persisted version+1
	h.OK(c, cl)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	clientID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), clientID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// --- Sites ---

// SiteHandler exposes construction sites.
type SiteHandler struct {
	*BaseHandler
	service *site.Service
}

// NewSiteHandler creates a site handler.
func NewSiteHandler(base *BaseHandler, service *site.Service) *SiteHandler {
	return &SiteHandler{BaseHandler: base, service: service}
}

// RegisterRoutes wires site endpoints on the group.
func (h *SiteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

func (h *SiteHandler) Create(c *gin.Context) {
	var req dto.CreateSiteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	s, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	s, err = h.service.Create(c.Request.Context(), s)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.CreatedData(c, s)
}

func (h *SiteHandler) List(c *gin.Context) {
	status := site.Status(c.Query("status"))
	sites, err := h.service.List(c.Request.Context(), status)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(sites))
}

func (h *SiteHandler) Get(c *gin.Context) {
	siteID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	s, err := h.service.Get(c.Request.Context(), siteID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, s)
}

func (h *SiteHandler) Update(c *gin.Context) {
	siteID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateSiteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	s, err := h.service.Get(ctx, siteID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.ApplyTo(s)

	if err := h.service.Update(ctx, s); err != nil {
		h.Error(c, err)
		return
	}
	s.Touch() // repository persisted version+1
	h.OK(c, s)
}

func (h *SiteHandler) Delete(c *gin.Context) {
	siteID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), siteID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
