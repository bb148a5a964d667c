package salary

import (
	"github.com/shopspring/decimal"

	"github.com/vtc-hr/attendance-backend-go/internal/domain/attendance"
)

var secondsPerHour = decimal.NewFromInt(3600)

// Compute derives the salary slip for one employee and month from the
// approved attendance sessions of that month. Pure: same input, same output.
func Compute(employeeID string, period string, sessions []attendance.Session) Slip {
	hra := BasicPay.Mul(HRARate)
	gross := BasicPay.Add(hra).Add(Conveyance).Add(MedicalAllowance)

	pf := BasicPay.Mul(PFRate)
	deductions := ProfessionalTax.Add(pf)

	// Sessions without a sign-out contribute zero hours but still count as a
	// worked day.
	totalHours := decimal.Zero
	for _, s := range sessions {
		if s.SignOutAt == nil {
			continue
		}
		seconds := int64(s.SignOutAt.Sub(s.SignInAt).Seconds())
		totalHours = totalHours.Add(decimal.NewFromInt(seconds).Div(secondsPerHour))
	}

	return Slip{
		EmployeeID: employeeID,
		Period:     period,

		BasicPay:         BasicPay,
		HRA:              hra,
		Conveyance:       Conveyance,
		MedicalAllowance: MedicalAllowance,
		GrossSalary:      gross,

		ProfessionalTax: ProfessionalTax,
		ProvidentFund:   pf,
		TotalDeductions: deductions,

		NetSalary: gross.Sub(deductions),

		TotalDays:  len(sessions),
		TotalHours: totalHours,
	}
}
