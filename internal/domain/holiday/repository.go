package holiday

import (
	"context"
	"time"
)

// HolidayRepository defines data access methods for the holiday calendar.
type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)

	// GetByDate retrieves the holiday on the given calendar date, or
	// ErrHolidayNotFound. Used by the compensatory accrual rule.
	GetByDate(ctx context.Context, date time.Time) (Holiday, error)

	// List retrieves all holidays ordered by date
	List(ctx context.Context) ([]Holiday, error)

	Delete(ctx context.Context, id string) error
}
