package leave

import (
	"time"
)

// Category is the fixed leave category enumeration.
type Category string

const (
	CategoryCasual       Category = "casual"
	CategorySick         Category = "sick"
	CategoryEarned       Category = "earned"
	CategoryCompensatory Category = "compensatory"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryCasual, CategorySick, CategoryEarned, CategoryCompensatory}

// DefaultAllotment is the starting balance for an employee whose ledger row
// has never been touched.
var DefaultAllotment = map[Category]int{
	CategoryCasual:       12,
	CategorySick:         10,
	CategoryEarned:       15,
	CategoryCompensatory: 0,
}

func IsValidCategory(c string) bool {
	for _, cat := range Categories {
		if string(cat) == c {
			return true
		}
	}
	return false
}

// Balance holds the per-category remaining-day counters of one employee.
// Counters are non-negative after every committed operation.
type Balance struct {
	EmployeeID   string
	Casual       int
	Sick         int
	Earned       int
	Compensatory int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewDefaultBalance returns the lazily-initialized ledger row for an employee.
func NewDefaultBalance(employeeID string) Balance {
	return Balance{
		EmployeeID:   employeeID,
		Casual:       DefaultAllotment[CategoryCasual],
		Sick:         DefaultAllotment[CategorySick],
		Earned:       DefaultAllotment[CategoryEarned],
		Compensatory: DefaultAllotment[CategoryCompensatory],
	}
}

// Get returns the counter for the named category.
func (b *Balance) Get(category Category) int {
	switch category {
	case CategoryCasual:
		return b.Casual
	case CategorySick:
		return b.Sick
	case CategoryEarned:
		return b.Earned
	case CategoryCompensatory:
		return b.Compensatory
	}
	return 0
}

// Set overwrites the counter for the named category.
func (b *Balance) Set(category Category, value int) {
	switch category {
	case CategoryCasual:
		b.Casual = value
	case CategorySick:
		b.Sick = value
	case CategoryEarned:
		b.Earned = value
	case CategoryCompensatory:
		b.Compensatory = value
	}
}

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// Request is a dated off-work request against one balance category.
type Request struct {
	ID         string
	EmployeeID string
	Category   Category

	StartDate time.Time
	EndDate   time.Time // inclusive

	Reason      string
	DocumentURL *string

	Status     RequestStatus
	ApprovedBy *string
	ApprovedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
}

// Decided reports whether an approver already settled the request.
func (r *Request) Decided() bool {
	return r.Status == RequestStatusApproved || r.Status == RequestStatusRejected
}

// Days returns the requested day count: whole days between the dates plus one,
// both ends inclusive.
func (r *Request) Days() int {
	return int(r.EndDate.Sub(r.StartDate).Hours()/24) + 1
}
