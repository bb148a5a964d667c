package salary

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/vtc-hr/attendance-backend-go/internal/domain/attendance"
)

func session(day int, hours float64) attendance.Session {
	signIn := time.Date(2025, 3, day, 9, 0, 0, 0, time.UTC)
	signOut := signIn.Add(time.Duration(hours * float64(time.Hour)))
	return attendance.Session{
		EmployeeID: "emp-1",
		Date:       time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC),
		SignInAt:   signIn,
		SignOutAt:  &signOut,
		Status:     attendance.SessionStatusApproved,
	}
}

func TestComputeFixedComponents(t *testing.T) {
	slip := Compute("emp-1", "2025-03", nil)

	assert.True(t, slip.BasicPay.Equal(decimal.NewFromInt(25000)))
	assert.True(t, slip.HRA.Equal(decimal.NewFromInt(10000)))
	assert.True(t, slip.Conveyance.Equal(decimal.NewFromInt(1600)))
	assert.True(t, slip.MedicalAllowance.Equal(decimal.NewFromInt(1250)))
	assert.True(t, slip.GrossSalary.Equal(decimal.NewFromInt(37850)))

	assert.True(t, slip.ProfessionalTax.Equal(decimal.NewFromInt(200)))
	assert.True(t, slip.ProvidentFund.Equal(decimal.NewFromInt(3000)))
	assert.True(t, slip.TotalDeductions.Equal(decimal.NewFromInt(3200)))

	assert.True(t, slip.NetSalary.Equal(decimal.NewFromInt(34650)))
}

func TestComputeNetIdentity(t *testing.T) {
	slip := Compute("emp-1", "2025-03", []attendance.Session{session(3, 8), session(4, 7.5)})

	assert.True(t, slip.NetSalary.Equal(slip.GrossSalary.Sub(slip.TotalDeductions)))
}

func TestComputePayDoesNotScaleWithAttendance(t *testing.T) {
	empty := Compute("emp-1", "2025-03", nil)
	busy := Compute("emp-1", "2025-03", []attendance.Session{
		session(3, 8), session(4, 8), session(5, 8), session(6, 8),
	})

	assert.True(t, empty.NetSalary.Equal(busy.NetSalary))
	assert.True(t, empty.GrossSalary.Equal(busy.GrossSalary))
}

func TestComputeAggregatesDaysAndHours(t *testing.T) {
	slip := Compute("emp-1", "2025-03", []attendance.Session{session(3, 8), session(4, 6.5)})

	assert.Equal(t, 2, slip.TotalDays)
	assert.True(t, slip.TotalHours.Equal(decimal.NewFromFloat(14.5)), "got %s", slip.TotalHours)
}

func TestComputeMissingSignOutCountsDayNotHours(t *testing.T) {
	open := attendance.Session{
		EmployeeID: "emp-1",
		Date:       time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		SignInAt:   time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		Status:     attendance.SessionStatusApproved,
	}

	slip := Compute("emp-1", "2025-03", []attendance.Session{open, session(11, 4)})

	assert.Equal(t, 2, slip.TotalDays)
	assert.True(t, slip.TotalHours.Equal(decimal.NewFromInt(4)))
}

func TestComputeDeterministic(t *testing.T) {
	sessions := []attendance.Session{session(3, 8), session(4, 7.25)}

	first := Compute("emp-1", "2025-03", sessions)
	second := Compute("emp-1", "2025-03", sessions)

	assert.Equal(t, first, second)
}
