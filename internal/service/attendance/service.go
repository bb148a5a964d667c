package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/vtc-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/vtc-hr/attendance-backend-go/internal/domain/employee"
	"github.com/vtc-hr/attendance-backend-go/internal/domain/leave"
	"github.com/vtc-hr/attendance-backend-go/internal/pkg/sse"
	"github.com/vtc-hr/attendance-backend-go/internal/service/file"
)

type SessionServiceImpl struct {
	attendance.SessionRepository
	employeeRepo   employee.EmployeeRepository
	balanceService leave.BalanceService
	fileService    file.FileService
	hub            *sse.Hub
	logger         *slog.Logger
}

func NewSessionService(
	sessionRepo attendance.SessionRepository,
	employeeRepo employee.EmployeeRepository,
	balanceService leave.BalanceService,
	fileService file.FileService,
	hub *sse.Hub,
	logger *slog.Logger,
) attendance.SessionService {
	return &SessionServiceImpl{
		SessionRepository: sessionRepo,
		employeeRepo:      employeeRepo,
		balanceService:    balanceService,
		fileService:       fileService,
		hub:               hub,
		logger:            logger,
	}
}

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

// workDay truncates a timestamp to its calendar day in UTC.
func workDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SignIn implements attendance.SessionService. Opens today's session and
// runs compensatory accrual; an accrual failure never blocks the sign-in.
func (s *SessionServiceImpl) SignIn(ctx context.Context, req attendance.SignInRequest) (attendance.SessionResponse, error) {
	employeeID, _, err := actorFromContext(ctx)
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return attendance.SessionResponse{}, err
	}

	now := time.Now()
	date := workDay(now)

	if _, err := s.SessionRepository.GetOpenSession(ctx, employeeID, date); err == nil {
		return attendance.SessionResponse{}, attendance.ErrOpenSessionExists
	}

	// Checked before the insert so the accrual idempotency flag reflects the
	// state prior to this sign-in.
	hadSession, err := s.SessionRepository.HasSessionOn(ctx, employeeID, date)
	if err != nil {
		return attendance.SessionResponse{}, fmt.Errorf("failed to check existing sessions: %w", err)
	}

	photoURL, err := s.fileService.UploadSignInPhoto(ctx, employeeID, date, req.File, req.FileHeader.Filename)
	if err != nil {
		return attendance.SessionResponse{}, fmt.Errorf("failed to store verification photo: %w", err)
	}

	session := attendance.Session{
		EmployeeID:      employeeID,
		Date:            date,
		SignInAt:        now,
		SignInLatitude:  req.Latitude,
		SignInLongitude: req.Longitude,
		SignInPhotoURL:  photoURL,
		Status:          attendance.SessionStatusPending,
	}

	created, err := s.SessionRepository.Create(ctx, session)
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	if err := s.balanceService.AccrueCompensatory(ctx, employeeID, date, !hadSession); err != nil {
		s.logger.Warn("compensatory accrual failed",
			slog.String("employee_id", employeeID),
			slog.String("date", date.Format("2006-01-02")),
			slog.Any("error", err),
		)
	} else if !hadSession {
		s.hub.Publish(sse.Event{
			EmployeeID: employeeID,
			Event:      sse.EventBalanceCredited,
			Data: map[string]any{
				"category": string(leave.CategoryCompensatory),
				"date":     date.Format("2006-01-02"),
			},
		})
	}

	return toSessionResponse(created), nil
}

// SignOut implements attendance.SessionService.
func (s *SessionServiceImpl) SignOut(ctx context.Context, req attendance.SignOutRequest) (attendance.SessionResponse, error) {
	employeeID, _, err := actorFromContext(ctx)
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return attendance.SessionResponse{}, err
	}

	now := time.Now()

	session, err := s.SessionRepository.GetOpenSession(ctx, employeeID, workDay(now))
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	session.SignOutAt = &now
	session.SignOutLatitude = &req.Latitude
	session.SignOutLongitude = &req.Longitude

	if err := s.SessionRepository.Update(ctx, session); err != nil {
		return attendance.SessionResponse{}, fmt.Errorf("failed to close session: %w", err)
	}

	return toSessionResponse(session), nil
}

// Decide implements attendance.SessionService. Repeating an identical
// decision is a no-op; flipping an already decided session is a conflict.
func (s *SessionServiceImpl) Decide(ctx context.Context, req attendance.DecideSessionRequest) (attendance.SessionResponse, error) {
	actorID, role, err := actorFromContext(ctx)
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	if !employee.CanApprove(role) {
		return attendance.SessionResponse{}, employee.ErrApprovalRoleNeeded
	}

	var decision attendance.SessionStatus
	switch req.Decision {
	case string(attendance.SessionStatusApproved):
		decision = attendance.SessionStatusApproved
	case string(attendance.SessionStatusRejected):
		decision = attendance.SessionStatusRejected
	default:
		return attendance.SessionResponse{}, attendance.ErrInvalidDecision
	}

	session, err := s.SessionRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	if role == employee.RoleManager {
		managedIDs, err := s.employeeRepo.ListManagedIDs(ctx, actorID)
		if err != nil {
			return attendance.SessionResponse{}, fmt.Errorf("failed to resolve managed employees: %w", err)
		}
		if !containsID(managedIDs, session.EmployeeID) {
			return attendance.SessionResponse{}, employee.ErrOutsideManagedSet
		}
	}

	if session.Decided() {
		if session.Status == decision {
			return toSessionResponse(session), nil
		}
		return attendance.SessionResponse{}, attendance.ErrSessionAlreadyDecided
	}

	now := time.Now()
	session.Status = decision
	session.ApprovedBy = &actorID
	session.ApprovedAt = &now

	if err := s.SessionRepository.Update(ctx, session); err != nil {
		return attendance.SessionResponse{}, fmt.Errorf("failed to update session: %w", err)
	}

	s.hub.Publish(sse.Event{
		EmployeeID: session.EmployeeID,
		Event:      sse.EventSessionDecided,
		Data: map[string]any{
			"session_id": session.ID,
			"date":       session.Date.Format("2006-01-02"),
			"status":     string(session.Status),
		},
	})

	return toSessionResponse(session), nil
}

// CreateOnBehalf implements attendance.SessionService. Records created here
// skip the approval queue: the acting authority's identity is stamped as the
// approver at creation time.
func (s *SessionServiceImpl) CreateOnBehalf(ctx context.Context, req attendance.OnBehalfRequest) (attendance.SessionResponse, error) {
	actorID, role, err := actorFromContext(ctx)
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	if !employee.HasPermission(role, employee.PermissionAttendanceOnBehalf) {
		return attendance.SessionResponse{}, employee.ErrApprovalRoleNeeded
	}

	if err := req.Validate(); err != nil {
		return attendance.SessionResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.SessionResponse{}, err
	}

	if role == employee.RoleManager {
		managedIDs, err := s.employeeRepo.ListManagedIDs(ctx, actorID)
		if err != nil {
			return attendance.SessionResponse{}, fmt.Errorf("failed to resolve managed employees: %w", err)
		}
		if !containsID(managedIDs, req.EmployeeID) {
			return attendance.SessionResponse{}, employee.ErrOutsideManagedSet
		}
	}

	now := time.Now()
	date := workDay(now)

	switch attendance.OnBehalfAction(req.Action) {
	case attendance.OnBehalfSignIn:
		if _, err := s.SessionRepository.GetOpenSession(ctx, req.EmployeeID, date); err == nil {
			return attendance.SessionResponse{}, attendance.ErrOpenSessionExists
		}

		// No verification photo: the acting authority vouches for presence.
		session := attendance.Session{
			EmployeeID: req.EmployeeID,
			Date:       date,
			SignInAt:   now,
			Status:     attendance.SessionStatusApproved,
			ApprovedBy: &actorID,
			ApprovedAt: &now,
		}

		created, err := s.SessionRepository.Create(ctx, session)
		if err != nil {
			return attendance.SessionResponse{}, err
		}
		return toSessionResponse(created), nil

	case attendance.OnBehalfSignOut:
		session, err := s.SessionRepository.GetOpenApprovedSession(ctx, req.EmployeeID, date)
		if err != nil {
			return attendance.SessionResponse{}, err
		}

		session.SignOutAt = &now
		if err := s.SessionRepository.Update(ctx, session); err != nil {
			return attendance.SessionResponse{}, fmt.Errorf("failed to close session: %w", err)
		}
		return toSessionResponse(session), nil
	}

	return attendance.SessionResponse{}, attendance.ErrInvalidDecision
}

// List implements attendance.SessionService. Admin and HR see every session,
// managers only their managed set.
func (s *SessionServiceImpl) List(ctx context.Context, filter attendance.SessionFilter) (attendance.ListSessionsResponse, error) {
	actorID, role, err := actorFromContext(ctx)
	if err != nil {
		return attendance.ListSessionsResponse{}, err
	}

	if !employee.HasPermission(role, employee.PermissionAttendanceViewAll) {
		return attendance.ListSessionsResponse{}, employee.ErrApprovalRoleNeeded
	}

	if err := filter.Validate(); err != nil {
		return attendance.ListSessionsResponse{}, err
	}

	var employeeIDs []string
	if role == employee.RoleManager {
		employeeIDs, err = s.employeeRepo.ListManagedIDs(ctx, actorID)
		if err != nil {
			return attendance.ListSessionsResponse{}, fmt.Errorf("failed to resolve managed employees: %w", err)
		}
		if len(employeeIDs) == 0 {
			return emptyListResponse(filter.Page, filter.Limit), nil
		}
	}

	sessions, total, err := s.SessionRepository.List(ctx, filter, employeeIDs)
	if err != nil {
		return attendance.ListSessionsResponse{}, fmt.Errorf("failed to list sessions: %w", err)
	}

	return buildListResponse(sessions, total, filter.Page, filter.Limit), nil
}

// GetMySessions implements attendance.SessionService.
func (s *SessionServiceImpl) GetMySessions(ctx context.Context, filter attendance.MySessionFilter) (attendance.ListSessionsResponse, error) {
	employeeID, _, err := actorFromContext(ctx)
	if err != nil {
		return attendance.ListSessionsResponse{}, err
	}

	if err := filter.Validate(); err != nil {
		return attendance.ListSessionsResponse{}, err
	}

	sessions, total, err := s.SessionRepository.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return attendance.ListSessionsResponse{}, fmt.Errorf("failed to list sessions: %w", err)
	}

	return buildListResponse(sessions, total, filter.Page, filter.Limit), nil
}

func toSessionResponse(s attendance.Session) attendance.SessionResponse {
	resp := attendance.SessionResponse{
		ID:              s.ID,
		EmployeeID:      s.EmployeeID,
		EmployeeName:    s.EmployeeName,
		Date:            s.Date.Format("2006-01-02"),
		SignInTime:      s.SignInAt.Format(time.RFC3339),
		SignInLatitude:  s.SignInLatitude,
		SignInLongitude: s.SignInLongitude,
		SignInPhotoURL:  s.SignInPhotoURL,
		WorkedHours:     s.WorkedHours(),
		Status:          string(s.Status),
		ApprovedBy:      s.ApprovedBy,
	}
	if s.SignOutAt != nil {
		signOut := s.SignOutAt.Format(time.RFC3339)
		resp.SignOutTime = &signOut
		resp.SignOutLatitude = s.SignOutLatitude
		resp.SignOutLongitude = s.SignOutLongitude
	}
	if s.ApprovedAt != nil {
		approvedAt := s.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &approvedAt
	}
	return resp
}

func buildListResponse(sessions []attendance.Session, total int64, page, limit int) attendance.ListSessionsResponse {
	responses := make([]attendance.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, toSessionResponse(session))
	}

	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	return attendance.ListSessionsResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		Sessions:   responses,
	}
}

func emptyListResponse(page, limit int) attendance.ListSessionsResponse {
	return attendance.ListSessionsResponse{
		Page:     page,
		Limit:    limit,
		Sessions: []attendance.SessionResponse{},
	}
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
