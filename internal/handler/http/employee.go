package http

import (
	"encoding/json"
	"net/http"

	"github.com/vtc-hr/attendance-backend-go/internal/domain/employee"
	"github.com/vtc-hr/attendance-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	Enroll(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	AssignManager(w http.ResponseWriter, r *http.Request)
	BulkAssignManager(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
	}
}

// Enroll implements EmployeeHandler.
func (h *employeeHandlerImpl) Enroll(w http.ResponseWriter, r *http.Request) {
	var req employee.EnrollRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.employeeService.Enroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee enrolled", result)
}

// List implements EmployeeHandler.
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// AssignManager implements EmployeeHandler.
func (h *employeeHandlerImpl) AssignManager(w http.ResponseWriter, r *http.Request) {
	var req employee.AssignManagerRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.employeeService.AssignManager(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Manager assigned", nil)
}

// BulkAssignManager implements EmployeeHandler.
func (h *employeeHandlerImpl) BulkAssignManager(w http.ResponseWriter, r *http.Request) {
	var req employee.BulkAssignManagerRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.employeeService.BulkAssignManager(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Manager assigned", nil)
}
