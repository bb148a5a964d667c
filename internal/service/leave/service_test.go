package leave

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtc-hr/attendance-backend-go/internal/domain/employee"
	"github.com/vtc-hr/attendance-backend-go/internal/domain/holiday"
	"github.com/vtc-hr/attendance-backend-go/internal/domain/leave"
	"github.com/vtc-hr/attendance-backend-go/internal/pkg/sse"
)

const testSecret = "test-secret-key-for-jwt"

var testJA = jwtauth.New("HS256", []byte(testSecret), nil)

// authedContext builds a context carrying verified claims, the same shape the
// middleware produces for a real request.
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

type fakeBalanceRepo struct {
	balances map[string]leave.Balance
	failGet  bool
}

func newFakeBalanceRepo() *fakeBalanceRepo {
	return &fakeBalanceRepo{balances: make(map[string]leave.Balance)}
}

func (f *fakeBalanceRepo) Get(ctx context.Context, employeeID string) (leave.Balance, error) {
	if f.failGet {
		return leave.Balance{}, fmt.Errorf("storage unavailable")
	}
	b, ok := f.balances[employeeID]
	if !ok {
		return leave.Balance{}, leave.ErrBalanceNotFound
	}
	return b, nil
}

func (f *fakeBalanceRepo) Create(ctx context.Context, balance leave.Balance) (leave.Balance, error) {
	f.balances[balance.EmployeeID] = balance
	return balance, nil
}

func (f *fakeBalanceRepo) Update(ctx context.Context, balance leave.Balance) error {
	if _, ok := f.balances[balance.EmployeeID]; !ok {
		return leave.ErrBalanceNotFound
	}
	f.balances[balance.EmployeeID] = balance
	return nil
}

type fakeHolidayRepo struct {
	holidays map[string]holiday.Holiday // keyed by YYYY-MM-DD
}

func newFakeHolidayRepo(dates ...time.Time) *fakeHolidayRepo {
	f := &fakeHolidayRepo{holidays: make(map[string]holiday.Holiday)}
	for i, d := range dates {
		f.holidays[d.Format("2006-01-02")] = holiday.Holiday{
			ID:   fmt.Sprintf("hol-%d", i),
			Date: d,
			Name: "Holiday",
		}
	}
	return f
}

func (f *fakeHolidayRepo) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	key := h.Date.Format("2006-01-02")
	if _, ok := f.holidays[key]; ok {
		return holiday.Holiday{}, holiday.ErrHolidayExists
	}
	f.holidays[key] = h
	return h, nil
}

func (f *fakeHolidayRepo) GetByDate(ctx context.Context, date time.Time) (holiday.Holiday, error) {
	h, ok := f.holidays[date.Format("2006-01-02")]
	if !ok {
		return holiday.Holiday{}, holiday.ErrHolidayNotFound
	}
	return h, nil
}

func (f *fakeHolidayRepo) List(ctx context.Context) ([]holiday.Holiday, error) {
	var out []holiday.Holiday
	for _, h := range f.holidays {
		out = append(out, h)
	}
	return out, nil
}

func (f *fakeHolidayRepo) Delete(ctx context.Context, id string) error {
	for key, h := range f.holidays {
		if h.ID == id {
			delete(f.holidays, key)
			return nil
		}
	}
	return holiday.ErrHolidayNotFound
}

type fakeRequestRepo struct {
	requests map[string]leave.Request
	nextID   int
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]leave.Request)}
}

func (f *fakeRequestRepo) Create(ctx context.Context, request leave.Request) (leave.Request, error) {
	f.nextID++
	request.ID = fmt.Sprintf("req-%d", f.nextID)
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt
	f.requests[request.ID] = request
	return request, nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id string) (leave.Request, error) {
	r, ok := f.requests[id]
	if !ok {
		return leave.Request{}, leave.ErrRequestNotFound
	}
	return r, nil
}

func (f *fakeRequestRepo) Update(ctx context.Context, request leave.Request) error {
	if _, ok := f.requests[request.ID]; !ok {
		return leave.ErrRequestNotFound
	}
	f.requests[request.ID] = request
	return nil
}

func (f *fakeRequestRepo) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Request, error) {
	var out []leave.Request
	for _, r := range f.requests {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) List(ctx context.Context, status *leave.RequestStatus, employeeIDs []string) ([]leave.Request, error) {
	var out []leave.Request
	for _, r := range f.requests {
		if status != nil && r.Status != *status {
			continue
		}
		if employeeIDs != nil && !containsID(employeeIDs, r.EmployeeID) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
	managed   map[string][]string
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{
		employees: make(map[string]employee.Employee),
		managed:   make(map[string][]string),
	}
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
	for _, e := range f.employees {
		if e.Email == email {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		out = append(out, e)
	}
	return out, nil
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

func newTestServices(holidayRepo *fakeHolidayRepo) (leave.BalanceService, leave.RequestService, *fakeRequestRepo, *fakeEmployeeRepo) {
	balanceRepo := newFakeBalanceRepo()
	requestRepo := newFakeRequestRepo()
	employeeRepo := newFakeEmployeeRepo()
	balanceSvc := NewBalanceService(balanceRepo, holidayRepo)
	requestSvc := NewRequestService(requestRepo, employeeRepo, balanceSvc, nil, sse.NewHub())
	return balanceSvc, requestSvc, requestRepo, employeeRepo
}

// Ledger tests

func TestBalanceLazyDefaults(t *testing.T) {
	balanceSvc, _, _, _ := newTestServices(newFakeHolidayRepo())

	balance, err := balanceSvc.Get(context.Background(), "emp-1")
	require.NoError(t, err)

	assert.Equal(t, 12, balance.Casual)
	assert.Equal(t, 10, balance.Sick)
	assert.Equal(t, 15, balance.Earned)
	assert.Equal(t, 0, balance.Compensatory)
}

func TestBalanceCreditAndDebit(t *testing.T) {
	balanceSvc, _, _, _ := newTestServices(newFakeHolidayRepo())
	ctx := context.Background()

	balance, err := balanceSvc.Credit(ctx, "emp-1", leave.CategoryCasual, 3)
	require.NoError(t, err)
	assert.Equal(t, 15, balance.Casual)

	balance, err = balanceSvc.Debit(ctx, "emp-1", leave.CategoryCasual, 5)
	require.NoError(t, err)
	assert.Equal(t, 10, balance.Casual)
}

func TestBalanceDebitNeverGoesNegative(t *testing.T) {
	balanceSvc, _, _, _ := newTestServices(newFakeHolidayRepo())
	ctx := context.Background()

	_, err := balanceSvc.Debit(ctx, "emp-1", leave.CategoryCompensatory, 1)
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)

	balance, err := balanceSvc.Get(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 0, balance.Compensatory)
}

func TestBalanceRejectsNonPositiveAmounts(t *testing.T) {
	balanceSvc, _, _, _ := newTestServices(newFakeHolidayRepo())
	ctx := context.Background()

	_, err := balanceSvc.Credit(ctx, "emp-1", leave.CategoryCasual, 0)
	assert.ErrorIs(t, err, leave.ErrInvalidAmount)

	_, err = balanceSvc.Debit(ctx, "emp-1", leave.CategoryCasual, -2)
	assert.ErrorIs(t, err, leave.ErrInvalidAmount)
}

// Accrual tests

func TestAccrueCompensatoryOnHoliday(t *testing.T) {
	day := time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)
	balanceSvc, _, _, _ := newTestServices(newFakeHolidayRepo(day))
	ctx := context.Background()

	require.NoError(t, balanceSvc.AccrueCompensatory(ctx, "emp-1", day, true))

	balance, err := balanceSvc.Get(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 1, balance.Compensatory)
}

func TestAccrueCompensatorySkipsOrdinaryDay(t *testing.T) {
	day := time.Date(2025, 3, 18, 0, 0, 0, 0, time.UTC)
	balanceSvc, _, _, _ := newTestServices(newFakeHolidayRepo())
	ctx := context.Background()

	require.NoError(t, balanceSvc.AccrueCompensatory(ctx, "emp-1", day, true))

	balance, err := balanceSvc.Get(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 0, balance.Compensatory)
}

func TestAccrueCompensatoryIdempotentPerDay(t *testing.T) {
	day := time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)
	balanceSvc, _, _, _ := newTestServices(newFakeHolidayRepo(day))
	ctx := context.Background()

	require.NoError(t, balanceSvc.AccrueCompensatory(ctx, "emp-1", day, true))
	// A later session on the same day is not the first one
	require.NoError(t, balanceSvc.AccrueCompensatory(ctx, "emp-1", day, false))

	balance, err := balanceSvc.Get(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 1, balance.Compensatory)
}

// Request workflow tests

func TestSubmitRequiresPositiveBalance(t *testing.T) {
	_, requestSvc, _, _ := newTestServices(newFakeHolidayRepo())
	ctx := authedContext(t, "emp-1", employee.RoleEmployee)

	// Compensatory starts at zero
	_, err := requestSvc.Submit(ctx, leave.SubmitRequest{
		Category:  "compensatory",
		StartDate: "2025-04-01",
		EndDate:   "2025-04-01",
		Reason:    "family event",
	})
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
}

func TestSubmitAdmitsOnPositiveBalanceRegardlessOfSpan(t *testing.T) {
	balanceSvc, requestSvc, _, _ := newTestServices(newFakeHolidayRepo())
	ctx := authedContext(t, "emp-1", employee.RoleEmployee)

	// Leave one casual day, then ask for a five-day span: the admission rule
	// checks only that the counter is positive.
	_, err := balanceSvc.Debit(context.Background(), "emp-1", leave.CategoryCasual, 11)
	require.NoError(t, err)

	resp, err := requestSvc.Submit(ctx, leave.SubmitRequest{
		Category:  "casual",
		StartDate: "2025-04-07",
		EndDate:   "2025-04-11",
		Reason:    "travel",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 5, resp.Days)
}

func TestApproveDoesNotDebitBalance(t *testing.T) {
	balanceSvc, requestSvc, _, _ := newTestServices(newFakeHolidayRepo())
	empCtx := authedContext(t, "emp-1", employee.RoleEmployee)
	adminCtx := authedContext(t, "admin-1", employee.RoleAdmin)

	resp, err := requestSvc.Submit(empCtx, leave.SubmitRequest{
		Category:  "sick",
		StartDate: "2025-04-02",
		EndDate:   "2025-04-03",
		Reason:    "flu",
	})
	require.NoError(t, err)

	decided, err := requestSvc.Decide(adminCtx, leave.DecideRequest{ID: resp.ID, Decision: "approved"})
	require.NoError(t, err)
	assert.Equal(t, "approved", decided.Status)
	require.NotNil(t, decided.ApprovedBy)
	assert.Equal(t, "admin-1", *decided.ApprovedBy)

	balance, err := balanceSvc.Get(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 10, balance.Sick)
}

func TestRejectDoesNotCreditBalance(t *testing.T) {
	balanceSvc, requestSvc, _, _ := newTestServices(newFakeHolidayRepo())
	empCtx := authedContext(t, "emp-1", employee.RoleEmployee)
	adminCtx := authedContext(t, "admin-1", employee.RoleAdmin)

	resp, err := requestSvc.Submit(empCtx, leave.SubmitRequest{
		Category:  "earned",
		StartDate: "2025-04-02",
		EndDate:   "2025-04-04",
		Reason:    "vacation",
	})
	require.NoError(t, err)

	_, err = requestSvc.Decide(adminCtx, leave.DecideRequest{ID: resp.ID, Decision: "rejected"})
	require.NoError(t, err)

	balance, err := balanceSvc.Get(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 15, balance.Earned)
}

func TestDecideIsIdempotentAndFlipConflicts(t *testing.T) {
	_, requestSvc, _, _ := newTestServices(newFakeHolidayRepo())
	empCtx := authedContext(t, "emp-1", employee.RoleEmployee)
	adminCtx := authedContext(t, "admin-1", employee.RoleAdmin)

	resp, err := requestSvc.Submit(empCtx, leave.SubmitRequest{
		Category:  "casual",
		StartDate: "2025-04-02",
		EndDate:   "2025-04-02",
		Reason:    "errand",
	})
	require.NoError(t, err)

	_, err = requestSvc.Decide(adminCtx, leave.DecideRequest{ID: resp.ID, Decision: "approved"})
	require.NoError(t, err)

	// Same decision again is a no-op
	again, err := requestSvc.Decide(adminCtx, leave.DecideRequest{ID: resp.ID, Decision: "approved"})
	require.NoError(t, err)
	assert.Equal(t, "approved", again.Status)

	// Flipping is a conflict
	_, err = requestSvc.Decide(adminCtx, leave.DecideRequest{ID: resp.ID, Decision: "rejected"})
	assert.ErrorIs(t, err, leave.ErrRequestAlreadyDecided)
}

func TestDecideRequiresApprovalRole(t *testing.T) {
	_, requestSvc, _, _ := newTestServices(newFakeHolidayRepo())
	empCtx := authedContext(t, "emp-1", employee.RoleEmployee)
	hrCtx := authedContext(t, "hr-1", employee.RoleHR)

	resp, err := requestSvc.Submit(empCtx, leave.SubmitRequest{
		Category:  "casual",
		StartDate: "2025-04-02",
		EndDate:   "2025-04-02",
		Reason:    "errand",
	})
	require.NoError(t, err)

	_, err = requestSvc.Decide(empCtx, leave.DecideRequest{ID: resp.ID, Decision: "approved"})
	assert.ErrorIs(t, err, employee.ErrApprovalRoleNeeded)

	// HR can view but not decide
	_, err = requestSvc.Decide(hrCtx, leave.DecideRequest{ID: resp.ID, Decision: "approved"})
	assert.ErrorIs(t, err, employee.ErrApprovalRoleNeeded)
}

func TestManagerDecidesOnlyManagedSet(t *testing.T) {
	_, requestSvc, _, employeeRepo := newTestServices(newFakeHolidayRepo())
	empCtx := authedContext(t, "emp-1", employee.RoleEmployee)
	managerCtx := authedContext(t, "mgr-1", employee.RoleManager)

	employeeRepo.managed["mgr-1"] = []string{"emp-2", "emp-3"}

	resp, err := requestSvc.Submit(empCtx, leave.SubmitRequest{
		Category:  "casual",
		StartDate: "2025-04-02",
		EndDate:   "2025-04-02",
		Reason:    "errand",
	})
	require.NoError(t, err)

	_, err = requestSvc.Decide(managerCtx, leave.DecideRequest{ID: resp.ID, Decision: "approved"})
	assert.ErrorIs(t, err, employee.ErrOutsideManagedSet)

	employeeRepo.managed["mgr-1"] = append(employeeRepo.managed["mgr-1"], "emp-1")

	decided, err := requestSvc.Decide(managerCtx, leave.DecideRequest{ID: resp.ID, Decision: "approved"})
	require.NoError(t, err)
	assert.Equal(t, "approved", decided.Status)
}

func TestListScopedByRole(t *testing.T) {
	_, requestSvc, _, employeeRepo := newTestServices(newFakeHolidayRepo())
	adminCtx := authedContext(t, "admin-1", employee.RoleAdmin)
	managerCtx := authedContext(t, "mgr-1", employee.RoleManager)

	for _, emp := range []string{"emp-1", "emp-2"} {
		_, err := requestSvc.Submit(authedContext(t, emp, employee.RoleEmployee), leave.SubmitRequest{
			Category:  "casual",
			StartDate: "2025-04-02",
			EndDate:   "2025-04-02",
			Reason:    "errand",
		})
		require.NoError(t, err)
	}

	all, err := requestSvc.List(adminCtx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	employeeRepo.managed["mgr-1"] = []string{"emp-2"}
	scoped, err := requestSvc.List(managerCtx, nil)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "emp-2", scoped[0].EmployeeID)
}
