package http

import (
	"net/http"

	"github.com/vtc-hr/attendance-backend-go/internal/domain/salary"
	"github.com/vtc-hr/attendance-backend-go/internal/handler/http/response"
)

type SalaryHandler interface {
	GenerateSlip(w http.ResponseWriter, r *http.Request)
}

type salaryHandlerImpl struct {
	salaryService salary.SalaryService
}

func NewSalaryHandler(salaryService salary.SalaryService) SalaryHandler {
	return &salaryHandlerImpl{
		salaryService: salaryService,
	}
}

// GenerateSlip implements SalaryHandler.
func (h *salaryHandlerImpl) GenerateSlip(w http.ResponseWriter, r *http.Request) {
	req := salary.SlipRequest{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Period:     r.URL.Query().Get("period"),
	}

	result, err := h.salaryService.GenerateSlip(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
