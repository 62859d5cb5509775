package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/taptime-api/internal/dto"
	"github.com/noah-isme/taptime-api/internal/models"
	"github.com/noah-isme/taptime-api/pkg/i18n"
	"github.com/noah-isme/taptime-api/pkg/response"
)

type employeeService interface {
	List(ctx context.Context, sessionID string, query dto.EmployeeQuery) (*dto.EmployeesView, error)
	Add(ctx context.Context, sessionID string, req dto.CreateEmployeeRequest) (*models.Employee, error)
	Remove(ctx context.Context, sessionID, employeeID string) error
	AddDepartment(ctx context.Context, sessionID string, req dto.CreateDepartmentRequest) (*models.Department, error)
}

// EmployeeHandler exposes the employee directory.
type EmployeeHandler struct {
	service    employeeService
	translator translator
}

// NewEmployeeHandler constructs the handler.
func NewEmployeeHandler(service employeeService, tr translator) *EmployeeHandler {
	return &EmployeeHandler{service: service, translator: tr}
}

// List godoc
// @Summary Employee directory
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name or employee code"
// @Param department query string false "Department or all"
// @Success 200 {object} response.Envelope
// @Router /panels/employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var query dto.EmployeeQuery
	if !bindQuery(c, &query) {
		return
	}
	view, err := h.service.List(c.Request.Context(), id, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Add godoc
// @Summary Add an employee
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateEmployeeRequest true "Employee"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /panels/employees [post]
func (h *EmployeeHandler) Add(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}
	employee, err := h.service.Add(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, employee, noticeMeta(c, h.translator,
		notice("employee.added", i18n.LevelSuccess, map[string]interface{}{"Name": employee.Name})))
}

// Remove godoc
// @Summary Remove an employee
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /panels/employees/{id} [delete]
func (h *EmployeeHandler) Remove(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	employeeID := c.Param("id")
	if err := h.service.Remove(c.Request.Context(), id, employeeID); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"id": employeeID}, noticeMeta(c, h.translator,
		notice("employee.removed", i18n.LevelInfo, nil)))
}

// AddDepartment godoc
// @Summary Add a department
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateDepartmentRequest true "Department"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /panels/employees/departments [post]
func (h *EmployeeHandler) AddDepartment(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateDepartmentRequest
	if !bindJSON(c, &req) {
		return
	}
	department, err := h.service.AddDepartment(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, department, noticeMeta(c, h.translator,
		notice("department.added", i18n.LevelSuccess, map[string]interface{}{"Name": department.Name})))
}
