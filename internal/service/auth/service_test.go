package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vtc-hr/attendance-backend-go/internal/domain/auth"
	"github.com/vtc-hr/attendance-backend-go/internal/domain/employee"
	"github.com/vtc-hr/attendance-backend-go/internal/pkg/jwt"
)

const (
	testSecret     = "test-secret-key-for-jwt"
	testAccessExp  = "1h"
	testRefreshExp = "24h"
	testPassword   = "password123"
)

type fakeEmployeeRepo struct {
	byEmail map[string]employee.Employee
	byID    map[string]employee.Employee
}

func newFakeEmployeeRepo(emps ...employee.Employee) *fakeEmployeeRepo {
	f := &fakeEmployeeRepo{
		byEmail: make(map[string]employee.Employee),
		byID:    make(map[string]employee.Employee),
	}
	for _, e := range emps {
		f.byEmail[e.Email] = e
		f.byID[e.ID] = e
	}
	return f
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	f.byEmail[emp.Email] = emp
	f.byID[emp.ID] = emp
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	e, ok := f.byEmail[email]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
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
	return nil, nil
}

func newTestService(t *testing.T) auth.AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.DefaultCost)
	require.NoError(t, err)

	repo := newFakeEmployeeRepo(employee.Employee{
		ID:           "emp-1",
		Email:        "jane@example.com",
		FullName:     "Jane Doe",
		Role:         employee.RoleEmployee,
		PasswordHash: string(hash),
	})
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	return NewAuthService(repo, jwtService)
}

func TestLoginSuccess(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	resp, cookie, err := svc.Login(ctx, auth.LoginRequest{Email: "jane@example.com", Password: testPassword})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "emp-1", resp.EmployeeID)
	assert.Equal(t, "Jane Doe", resp.FullName)
	assert.Equal(t, "employee", resp.Role)
	assert.Greater(t, resp.ExpiresAt, int64(0))

	require.NotNil(t, cookie)
	assert.Equal(t, "refresh_token", cookie.Name)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestLoginInvalidPassword(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.Login(context.Background(), auth.LoginRequest{Email: "jane@example.com", Password: "wrongpassword"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.Login(context.Background(), auth.LoginRequest{Email: "nobody@example.com", Password: testPassword})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, cookie, err := svc.Login(ctx, auth.LoginRequest{Email: "jane@example.com", Password: testPassword})
	require.NoError(t, err)

	resp, newCookie, err := svc.Refresh(ctx, cookie.Value)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	require.NotNil(t, newCookie)
	assert.NotEqual(t, cookie.Value, newCookie.Value)

	// The old token was revoked by the rotation.
	_, _, err = svc.Refresh(ctx, cookie.Value)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	resp, _, err := svc.Login(ctx, auth.LoginRequest{Email: "jane@example.com", Password: testPassword})
	require.NoError(t, err)

	_, _, err = svc.Refresh(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, cookie, err := svc.Login(ctx, auth.LoginRequest{Email: "jane@example.com", Password: testPassword})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, cookie.Value))

	_, _, err = svc.Refresh(ctx, cookie.Value)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestLogoutWithoutTokenIsNoOp(t *testing.T) {
	svc := newTestService(t)
	assert.NoError(t, svc.Logout(context.Background(), ""))
}
