package holiday

import (
	"time"
)

// Holiday is a company holiday. The date is the lookup key used by the
// compensatory accrual rule.
type Holiday struct {
	ID          string
	Date        time.Time
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
