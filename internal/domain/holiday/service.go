package holiday

import (
	"context"
)

// HolidayService defines business logic for the company holiday calendar
type HolidayService interface {
	// Create adds a holiday (admin only); one holiday per calendar date
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)

	// List retrieves all holidays in date order
	List(ctx context.Context) ([]HolidayResponse, error)

	// Delete removes a holiday (admin only)
	Delete(ctx context.Context, id string) error
}
