package salary

import (
	"github.com/shopspring/decimal"
)

// Fixed pay figures. Flat for every employee; pay does not scale with
// attendance volume.
var (
	BasicPay         = decimal.NewFromInt(25000)
	HRARate          = decimal.NewFromFloat(0.40) // of basic
	Conveyance       = decimal.NewFromInt(1600)
	MedicalAllowance = decimal.NewFromInt(1250)
	ProfessionalTax  = decimal.NewFromInt(200)
	PFRate           = decimal.NewFromFloat(0.12) // of basic
)

// Slip is the flat salary record handed to a formatting consumer. No I/O
// happens here; rendering and printing live outside the engine.
type Slip struct {
	EmployeeID string `json:"employee_id"`
	Period     string `json:"period"` // YYYY-MM

	BasicPay         decimal.Decimal `json:"basic_pay"`
	HRA              decimal.Decimal `json:"hra"`
	Conveyance       decimal.Decimal `json:"conveyance"`
	MedicalAllowance decimal.Decimal `json:"medical_allowance"`
	GrossSalary      decimal.Decimal `json:"gross_salary"`

	ProfessionalTax decimal.Decimal `json:"professional_tax"`
	ProvidentFund   decimal.Decimal `json:"provident_fund"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`

	NetSalary decimal.Decimal `json:"net_salary"`

	TotalDays  int             `json:"total_days"`
	TotalHours decimal.Decimal `json:"total_hours"`
}
