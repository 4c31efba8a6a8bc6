package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"batibill/internal/domain/hr"
	"batibill/internal/infrastructure/http/v1/dto"
)

// HRHandler exposes employees and daily attendance.
type HRHandler struct {
	*BaseHandler
	service *hr.Service
}

// NewHRHandler creates a workforce handler.
func NewHRHandler(base *BaseHandler, service *hr.Service) *HRHandler {
	return &HRHandler{BaseHandler: base, service: service}
}

// RegisterRoutes wires workforce endpoints on the group.
func (h *HRHandler) RegisterRoutes(rg *gin.RouterGroup) {
	employees := rg.Group("/employees")
	employees.POST("", h.CreateEmployee)
	employees.GET("", h.ListEmployees)
	employees.GET("/:id", h.GetEmployee)
	employees.PUT("/:id", h.UpdateEmployee)
	employees.DELETE("/:id", h.DeleteEmployee)

	attendance := rg.Group("/attendance")
	attendance.POST("", h.RecordAttendance)
	attendance.GET("", h.ListAttendance)
	attendance.DELETE("/:id", h.DeleteAttendance)
}

func (h *HRHandler) CreateEmployee(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	e, err := h.service.CreateEmployee(c.Request.Context(), req.ToEntity())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.CreatedData(c, e)
}

func (h *HRHandler) ListEmployees(c *gin.Context) {
	activeOnly := c.Query("activeOnly") == "true"
	list, err := h.service.ListEmployees(c.Request.Context(), activeOnly)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(list))
}

func (h *HRHandler) GetEmployee(c *gin.Context) {
	employeeID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	e, err := h.service.GetEmployee(c.Request.Context(), employeeID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, e)
}

func (h *HRHandler) UpdateEmployee(c *gin.Context) {
	employeeID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateEmployeeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	e, err := h.service.GetEmployee(ctx, employeeID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.ApplyTo(e)

	if err := h.service.UpdateEmployee(ctx, e); err != nil {
		h.Error(c, err)
		return
	}
	e.Touch() // repository persisted version+1
	h.OK(c, e)
}

func (h *HRHandler) DeleteEmployee(c *gin.Context) {
	employeeID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteEmployee(c.Request.Context(), employeeID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// RecordAttendance handles POST /hr/attendance. One row per employee-day:
// re-sending replaces the previous entry.
func (h *HRHandler) RecordAttendance(c *gin.Context) {
	var req dto.RecordAttendanceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	a, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	a, err = h.service.RecordAttendance(c.Request.Context(), a)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.CreatedData(c, a)
}

func (h *HRHandler) ListAttendance(c *gin.Context) {
	var q dto.AttendanceFilter
	if !h.BindQuery(c, &q) {
		return
	}

	var from, to time.Time
	if q.From != nil {
		from = *q.From
	}
	if q.To != nil {
		to = *q.To
	}

	list, err := h.service.ListAttendance(c.Request.Context(), from, to)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(list))
}

func (h *HRHandler) DeleteAttendance(c *gin.Context) {
	attendanceID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteAttendance(c.Request.Context(), attendanceID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
