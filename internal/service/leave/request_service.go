package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/vtc-hr/attendance-backend-go/internal/domain/employee"
	"github.com/vtc-hr/attendance-backend-go/internal/domain/leave"
	"github.com/vtc-hr/attendance-backend-go/internal/pkg/sse"
	"github.com/vtc-hr/attendance-backend-go/internal/service/file"
)

type RequestServiceImpl struct {
	leave.RequestRepository
	employeeRepo   employee.EmployeeRepository
	balanceService leave.BalanceService
	fileService    file.FileService
	hub            *sse.Hub
}

func NewRequestService(
	requestRepo leave.RequestRepository,
	employeeRepo employee.EmployeeRepository,
	balanceService leave.BalanceService,
	fileService file.FileService,
	hub *sse.Hub,
) leave.RequestService {
	return &RequestServiceImpl{
		RequestRepository: requestRepo,
		employeeRepo:      employeeRepo,
		balanceService:    balanceService,
		fileService:       fileService,
		hub:               hub,
	}
}

// actorFromContext extracts the authenticated employee's identity from the JWT.
func actorFromContext(ctx context.Context) (string, employee.Role, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", fmt.Errorf("employee_id not found in token")
	}

	roleStr, ok := claims["role"].(string)
	if !ok || roleStr == "" {
		return "", "", fmt.Errorf("role not found in token")
	}

	return employeeID, employee.Role(roleStr), nil
}

// Submit implements leave.RequestService. Admission requires a positive
// counter in the requested category; the counter itself is not debited here
// or at any later point of the workflow.
func (s *RequestServiceImpl) Submit(ctx context.Context, req leave.SubmitRequest) (leave.RequestResponse, error) {
	employeeID, _, err := actorFromContext(ctx)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	category := leave.Category(req.Category)

	balance, err := s.balanceService.Get(ctx, employeeID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if balance.Get(category) <= 0 {
		return leave.RequestResponse{}, leave.ErrInsufficientBalance
	}

	documentURL := req.DocumentURL
	if req.File != nil && req.FileHeader != nil {
		url, err := s.fileService.UploadLeaveDocument(ctx, employeeID, req.File, req.FileHeader.Filename)
		if err != nil {
			return leave.RequestResponse{}, fmt.Errorf("failed to store supporting document: %w", err)
		}
		documentURL = &url
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	request := leave.Request{
		EmployeeID:  employeeID,
		Category:    category,
		StartDate:   startDate,
		EndDate:     endDate,
		Reason:      req.Reason,
		DocumentURL: documentURL,
		Status:      leave.RequestStatusPending,
	}

	created, err := s.RequestRepository.Create(ctx, request)
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return toRequestResponse(created), nil
}

// Decide implements leave.RequestService. Repeating an identical decision is
// a no-op; flipping an already decided request is a conflict.
func (s *RequestServiceImpl) Decide(ctx context.Context, req leave.DecideRequest) (leave.RequestResponse, error) {
	actorID, role, err := actorFromContext(ctx)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	if !employee.CanApprove(role) {
		return leave.RequestResponse{}, employee.ErrApprovalRoleNeeded
	}

	var decision leave.RequestStatus
	switch req.Decision {
	case string(leave.RequestStatusApproved):
		decision = leave.RequestStatusApproved
	case string(leave.RequestStatusRejected):
		decision = leave.RequestStatusRejected
	default:
		return leave.RequestResponse{}, leave.ErrInvalidDecision
	}

	request, err := s.RequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	if role == employee.RoleManager {
		managedIDs, err := s.employeeRepo.ListManagedIDs(ctx, actorID)
		if err != nil {
			return leave.RequestResponse{}, fmt.Errorf("failed to resolve managed employees: %w", err)
		}
		if !containsID(managedIDs, request.EmployeeID) {
			return leave.RequestResponse{}, employee.ErrOutsideManagedSet
		}
	}

	if request.Decided() {
		if request.Status == decision {
			return toRequestResponse(request), nil
		}
		return leave.RequestResponse{}, leave.ErrRequestAlreadyDecided
	}

	now := time.Now()
	request.Status = decision
	request.ApprovedBy = &actorID
	request.ApprovedAt = &now

	if err := s.RequestRepository.Update(ctx, request); err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	s.hub.Publish(sse.Event{
		EmployeeID: request.EmployeeID,
		Event:      sse.EventLeaveDecided,
		Data: map[string]any{
			"request_id": request.ID,
			"category":   string(request.Category),
			"status":     string(request.Status),
		},
	})

	return toRequestResponse(request), nil
}

// GetMyBalance implements leave.RequestService.
func (s *RequestServiceImpl) GetMyBalance(ctx context.Context) (leave.BalanceResponse, error) {
	employeeID, _, err := actorFromContext(ctx)
	if err != nil {
		return leave.BalanceResponse{}, err
	}

	balance, err := s.balanceService.Get(ctx, employeeID)
	if err != nil {
		return leave.BalanceResponse{}, err
	}

	return leave.BalanceResponse{
		EmployeeID:   balance.EmployeeID,
		Casual:       balance.Casual,
		Sick:         balance.Sick,
		Earned:       balance.Earned,
		Compensatory: balance.Compensatory,
	}, nil
}

// GetMyRequests implements leave.RequestService.
func (s *RequestServiceImpl) GetMyRequests(ctx context.Context) ([]leave.RequestResponse, error) {
	employeeID, _, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	requests, err := s.RequestRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, toRequestResponse(r))
	}
	return responses, nil
}

// List implements leave.RequestService. Admin and HR see every request,
// managers only those of their managed set.
func (s *RequestServiceImpl) List(ctx context.Context, status *leave.RequestStatus) ([]leave.RequestResponse, error) {
	actorID, role, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if !employee.HasPermission(role, employee.PermissionLeaveViewAll) {
		return nil, employee.ErrApprovalRoleNeeded
	}

	var employeeIDs []string
	if role == employee.RoleManager {
		employeeIDs, err = s.employeeRepo.ListManagedIDs(ctx, actorID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve managed employees: %w", err)
		}
		if len(employeeIDs) == 0 {
			return []leave.RequestResponse{}, nil
		}
	}

	requests, err := s.RequestRepository.List(ctx, status, employeeIDs)
	if err != nil {
		if errors.Is(err, leave.ErrRequestNotFound) {
			return []leave.RequestResponse{}, nil
		}
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, toRequestResponse(r))
	}
	return responses, nil
}

func toRequestResponse(r leave.Request) leave.RequestResponse {
	resp := leave.RequestResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Category:     string(r.Category),
		StartDate:    r.StartDate.Format("2006-01-02"),
		EndDate:      r.EndDate.Format("2006-01-02"),
		Days:         r.Days(),
		Reason:       r.Reason,
		DocumentURL:  r.DocumentURL,
		Status:       string(r.Status),
		ApprovedBy:   r.ApprovedBy,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
	}
	if r.ApprovedAt != nil {
		approvedAt := r.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &approvedAt
	}
	return resp
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
