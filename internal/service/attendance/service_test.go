package attendance

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtc-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/vtc-hr/attendance-backend-go/internal/domain/employee"
	"github.com/vtc-hr/attendance-backend-go/internal/domain/leave"
	"github.com/vtc-hr/attendance-backend-go/internal/pkg/sse"
)

const testSecret = "test-secret-key-for-jwt"

var testJA = jwtauth.New("HS256", []byte(testSecret), nil)

func authedContext(t *testing.T, employeeID string, role employee.Role) context.Context {
	t.Helper()
	token, _, err := testJA.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"role":        string(role),
		"type":        "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

// In-memory fakes

type fakeSessionRepo struct {
	sessions map[string]attendance.Session
	nextID   int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]attendance.Session)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session attendance.Session) (attendance.Session, error) {
	for _, s := range f.sessions {
		if s.EmployeeID == session.EmployeeID && s.Date.Equal(session.Date) && s.IsOpen() {
			return attendance.Session{}, attendance.ErrOpenSessionExists
		}
	}
	f.nextID++
	session.ID = fmt.Sprintf("sess-%d", f.nextID)
	session.CreatedAt = time.Now()
	session.UpdatedAt = session.CreatedAt
	f.sessions[session.ID] = session
	return session, nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id string) (attendance.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return attendance.Session{}, attendance.ErrSessionNotFound
	}
	return s, nil
}

func (f *fakeSessionRepo) GetOpenSession(ctx context.Context, employeeID string, date time.Time) (attendance.Session, error) {
	for _, s := range f.sessions {
		if s.EmployeeID == employeeID && s.Date.Equal(date) && s.IsOpen() {
			return s, nil
		}
	}
	return attendance.Session{}, attendance.ErrNoOpenSession
}

func (f *fakeSessionRepo) GetOpenApprovedSession(ctx context.Context, employeeID string, date time.Time) (attendance.Session, error) {
	for _, s := range f.sessions {
		if s.EmployeeID == employeeID && s.Date.Equal(date) && s.IsOpen() && s.Status == attendance.SessionStatusApproved {
			return s, nil
		}
	}
	return attendance.Session{}, attendance.ErrNoOpenSession
}

func (f *fakeSessionRepo) HasSessionOn(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	for _, s := range f.sessions {
		if s.EmployeeID == employeeID && s.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSessionRepo) Update(ctx context.Context, session attendance.Session) error {
	if _, ok := f.sessions[session.ID]; !ok {
		return attendance.ErrSessionNotFound
	}
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionRepo) List(ctx context.Context, filter attendance.SessionFilter, employeeIDs []string) ([]attendance.Session, int64, error) {
	var out []attendance.Session
	for _, s := range f.sessions {
		if employeeIDs != nil && !containsID(employeeIDs, s.EmployeeID) {
			continue
		}
		if filter.Status != nil && string(s.Status) != *filter.Status {
			continue
		}
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func (f *fakeSessionRepo) ListByEmployee(ctx context.Context, employeeID string, filter attendance.MySessionFilter) ([]attendance.Session, int64, error) {
	var out []attendance.Session
	for _, s := range f.sessions {
		if s.EmployeeID == employeeID {
			out = append(out, s)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeSessionRepo) ListApprovedInRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Session, error) {
	var out []attendance.Session
	for _, s := range f.sessions {
		if s.EmployeeID == employeeID && s.Status == attendance.SessionStatusApproved &&
			!s.Date.Before(from) && s.Date.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
	managed   map[string][]string
}

func newFakeEmployeeRepo(ids ...string) *fakeEmployeeRepo {
	f := &fakeEmployeeRepo{
		employees: make(map[string]employee.Employee),
		managed:   make(map[string][]string),
	}
	for _, id := range ids {
		f.employees[id] = employee.Employee{ID: id, FullName: id, Role: employee.RoleEmployee}
	}
	return f
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	f.employees[emp.ID] = emp
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) UpdateManager(ctx context.Context, employeeID string, managerID *string) error {
	return nil
}

func (f *fakeEmployeeRepo) BulkUpdateManager(ctx context.Context, employeeIDs []string, managerID string) error {
	return nil
}

func (f *fakeEmployeeRepo) ListManagedIDs(ctx context.Context, managerID string) ([]string, error) {
	return f.managed[managerID], nil
}

// fakeBalanceService records accrual calls and optionally fails them.
type fakeBalanceService struct {
	accruals []time.Time
	failNext bool
}

func (f *fakeBalanceService) Get(ctx context.Context, employeeID string) (leave.Balance, error) {
	return leave.NewDefaultBalance(employeeID), nil
}

func (f *fakeBalanceService) Credit(ctx context.Context, employeeID string, category leave.Category, amount int) (leave.Balance, error) {
	return leave.NewDefaultBalance(employeeID), nil
}

func (f *fakeBalanceService) Debit(ctx context.Context, employeeID string, category leave.Category, amount int) (leave.Balance, error) {
	return leave.NewDefaultBalance(employeeID), nil
}

func (f *fakeBalanceService) AccrueCompensatory(ctx context.Context, employeeID string, date time.Time, firstSessionOfDay bool) error {
	if f.failNext {
		f.failNext = false
		return fmt.Errorf("holiday calendar unavailable")
	}
	if firstSessionOfDay {
		f.accruals = append(f.accruals, date)
	}
	return nil
}

// fakeFileService stores nothing and returns deterministic URLs.
type fakeFileService struct{}

func (f *fakeFileService) UploadSignInPhoto(ctx context.Context, employeeID string, date time.Time, file io.Reader, filename string) (string, error) {
	return "uploads/attendance/" + employeeID + ".jpg", nil
}

func (f *fakeFileService) UploadLeaveDocument(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	return "uploads/leave/" + employeeID + ".pdf", nil
}

func (f *fakeFileService) DeleteFile(ctx context.Context, path string) error {
	return nil
}

func (f *fakeFileService) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return path, nil
}

func photoRequest() attendance.SignInRequest {
	return attendance.SignInRequest{
		Latitude:  12.97,
		Longitude: 77.59,
		File:      nopFile{bytes.NewReader([]byte("jpeg-bytes"))},
		FileHeader: &multipart.FileHeader{
			Filename: "selfie.jpg",
			Size:     1024,
		},
	}
}

type nopFile struct {
	io.Reader
}

func (nopFile) Close() error                                  { return nil }
func (nopFile) ReadAt(p []byte, off int64) (n int, err error) { return 0, io.EOF }
func (nopFile) Seek(offset int64, whence int) (int64, error)  { return 0, nil }

func newTestService() (attendance.SessionService, *fakeSessionRepo, *fakeEmployeeRepo, *fakeBalanceService) {
	sessionRepo := newFakeSessionRepo()
	employeeRepo := newFakeEmployeeRepo("emp-1", "emp-2", "mgr-1", "admin-1")
	balanceSvc := &fakeBalanceService{}
	svc := NewSessionService(sessionRepo, employeeRepo, balanceSvc, &fakeFileService{}, sse.NewHub(), slog.Default())
	return svc, sessionRepo, employeeRepo, balanceSvc
}

func TestSignInOpensPendingSession(t *testing.T) {
	svc, _, _, balanceSvc := newTestService()
	ctx := authedContext(t, "emp-1", employee.RoleEmployee)

	resp, err := svc.SignIn(ctx, photoRequest())
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "emp-1", resp.EmployeeID)
	assert.NotEmpty(t, resp.SignInPhotoURL)
	assert.Nil(t, resp.SignOutTime)
	assert.Len(t, balanceSvc.accruals, 1)
}

func TestSignInConflictsOnOpenSession(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := authedContext(t, "emp-1", employee.RoleEmployee)

	_, err := svc.SignIn(ctx, photoRequest())
	require.NoError(t, err)

	_, err = svc.SignIn(ctx, photoRequest())
	assert.ErrorIs(t, err, attendance.ErrOpenSessionExists)
}

func TestSignInAccrualFailureDoesNotBlock(t *testing.T) {
	svc, _, _, balanceSvc := newTestService()
	ctx := authedContext(t, "emp-1", employee.RoleEmployee)

	balanceSvc.failNext = true

	resp, err := svc.SignIn(ctx, photoRequest())
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
}

func TestSignOutClosesOpenSession(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := authedContext(t, "emp-1", employee.RoleEmployee)

	_, err := svc.SignIn(ctx, photoRequest())
	require.NoError(t, err)

	resp, err := svc.SignOut(ctx, attendance.SignOutRequest{Latitude: 12.98, Longitude: 77.60})
	require.NoError(t, err)
	require.NotNil(t, resp.SignOutTime)
	assert.NotNil(t, resp.SignOutLatitude)
}

func TestSignOutWithoutOpenSession(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := authedContext(t, "emp-1", employee.RoleEmployee)

	_, err := svc.SignOut(ctx, attendance.SignOutRequest{Latitude: 12.98, Longitude: 77.60})
	assert.ErrorIs(t, err, attendance.ErrNoOpenSession)
}

func TestSignInAgainAfterSignOutSameDay(t *testing.T) {
	svc, _, _, balanceSvc := newTestService()
	ctx := authedContext(t, "emp-1", employee.RoleEmployee)

	_, err := svc.SignIn(ctx, photoRequest())
	require.NoError(t, err)
	_, err = svc.SignOut(ctx, attendance.SignOutRequest{Latitude: 12.98, Longitude: 77.60})
	require.NoError(t, err)

	// No open session anymore, so a new one may start; the accrual flag must
	// see this as a repeat day.
	_, err = svc.SignIn(ctx, photoRequest())
	require.NoError(t, err)
	assert.Len(t, balanceSvc.accruals, 1)
}

func TestDecideIdempotentAndFlipConflicts(t *testing.T) {
	svc, _, _, _ := newTestService()
	empCtx := authedContext(t, "emp-1", employee.RoleEmployee)
	adminCtx := authedContext(t, "admin-1", employee.RoleAdmin)

	resp, err := svc.SignIn(empCtx, photoRequest())
	require.NoError(t, err)

	decided, err := svc.Decide(adminCtx, attendance.DecideSessionRequest{ID: resp.ID, Decision: "approved"})
	require.NoError(t, err)
	assert.Equal(t, "approved", decided.Status)
	require.NotNil(t, decided.ApprovedBy)
	assert.Equal(t, "admin-1", *decided.ApprovedBy)

	again, err := svc.Decide(adminCtx, attendance.DecideSessionRequest{ID: resp.ID, Decision: "approved"})
	require.NoError(t, err)
	assert.Equal(t, "approved", again.Status)

	_, err = svc.Decide(adminCtx, attendance.DecideSessionRequest{ID: resp.ID, Decision: "rejected"})
	assert.ErrorIs(t, err, attendance.ErrSessionAlreadyDecided)
}

func TestDecideRequiresApprovalRole(t *testing.T) {
	svc, _, _, _ := newTestService()
	empCtx := authedContext(t, "emp-1", employee.RoleEmployee)

	resp, err := svc.SignIn(empCtx, photoRequest())
	require.NoError(t, err)

	_, err = svc.Decide(empCtx, attendance.DecideSessionRequest{ID: resp.ID, Decision: "approved"})
	assert.ErrorIs(t, err, employee.ErrApprovalRoleNeeded)
}

func TestManagerDecidesOnlyManagedSet(t *testing.T) {
	svc, _, employeeRepo, _ := newTestService()
	empCtx := authedContext(t, "emp-1", employee.RoleEmployee)
	managerCtx := authedContext(t, "mgr-1", employee.RoleManager)

	resp, err := svc.SignIn(empCtx, photoRequest())
	require.NoError(t, err)

	_, err = svc.Decide(managerCtx, attendance.DecideSessionRequest{ID: resp.ID, Decision: "approved"})
	assert.ErrorIs(t, err, employee.ErrOutsideManagedSet)

	employeeRepo.managed["mgr-1"] = []string{"emp-1"}

	decided, err := svc.Decide(managerCtx, attendance.DecideSessionRequest{ID: resp.ID, Decision: "approved"})
	require.NoError(t, err)
	assert.Equal(t, "approved", decided.Status)
}

func TestOnBehalfSignInPreApproved(t *testing.T) {
	svc, _, _, _ := newTestService()
	adminCtx := authedContext(t, "admin-1", employee.RoleAdmin)

	resp, err := svc.CreateOnBehalf(adminCtx, attendance.OnBehalfRequest{
		EmployeeID: "emp-2",
		Action:     "signin",
	})
	require.NoError(t, err)

	assert.Equal(t, "approved", resp.Status)
	require.NotNil(t, resp.ApprovedBy)
	assert.Equal(t, "admin-1", *resp.ApprovedBy)
	assert.Empty(t, resp.SignInPhotoURL)
}

func TestOnBehalfSignOut(t *testing.T) {
	svc, _, _, _ := newTestService()
	adminCtx := authedContext(t, "admin-1", employee.RoleAdmin)

	_, err := svc.CreateOnBehalf(adminCtx, attendance.OnBehalfRequest{
		EmployeeID: "emp-2",
		Action:     "signin",
	})
	require.NoError(t, err)

	resp, err := svc.CreateOnBehalf(adminCtx, attendance.OnBehalfRequest{
		EmployeeID: "emp-2",
		Action:     "signout",
	})
	require.NoError(t, err)
	assert.NotNil(t, resp.SignOutTime)
}

func TestOnBehalfRequiresAuthority(t *testing.T) {
	svc, _, _, _ := newTestService()
	empCtx := authedContext(t, "emp-1", employee.RoleEmployee)

	_, err := svc.CreateOnBehalf(empCtx, attendance.OnBehalfRequest{
		EmployeeID: "emp-2",
		Action:     "signin",
	})
	assert.ErrorIs(t, err, employee.ErrApprovalRoleNeeded)
}

func TestListRequiresViewAllPermission(t *testing.T) {
	svc, _, _, _ := newTestService()
	empCtx := authedContext(t, "emp-1", employee.RoleEmployee)

	_, err := svc.List(empCtx, attendance.SessionFilter{})
	assert.ErrorIs(t, err, employee.ErrApprovalRoleNeeded)
}

func TestGetMySessionsReturnsOwnOnly(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.SignIn(authedContext(t, "emp-1", employee.RoleEmployee), photoRequest())
	require.NoError(t, err)
	_, err = svc.SignIn(authedContext(t, "emp-2", employee.RoleEmployee), photoRequest())
	require.NoError(t, err)

	resp, err := svc.GetMySessions(authedContext(t, "emp-1", employee.RoleEmployee), attendance.MySessionFilter{})
	require.NoError(t, err)
	require.Len(t, resp.Sessions, 1)
	assert.Equal(t, "emp-1", resp.Sessions[0].EmployeeID)
}
