package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vtc-hr/attendance-backend-go/internal/domain/holiday"
	"github.com/vtc-hr/attendance-backend-go/internal/domain/leave"
)

// BalanceServiceImpl is the leave balance ledger: the single writer of the
// per-employee counters.
type BalanceServiceImpl struct {
	leave.BalanceRepository
	holiday.HolidayRepository
}

func NewBalanceService(
	balanceRepo leave.BalanceRepository,
	holidayRepo holiday.HolidayRepository,
) leave.BalanceService {
	return &BalanceServiceImpl{
		BalanceRepository: balanceRepo,
		HolidayRepository: holidayRepo,
	}
}

// Get implements leave.BalanceService. The ledger row is created lazily with
// the default allotment the first time any leave action touches the employee.
func (s *BalanceServiceImpl) Get(ctx context.Context, employeeID string) (leave.Balance, error) {
	balance, err := s.BalanceRepository.Get(ctx, employeeID)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, leave.ErrBalanceNotFound) {
		return leave.Balance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	created, err := s.BalanceRepository.Create(ctx, leave.NewDefaultBalance(employeeID))
	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to initialize leave balance: %w", err)
	}
	return created, nil
}

// Credit implements leave.BalanceService.
func (s *BalanceServiceImpl) Credit(ctx context.Context, employeeID string, category leave.Category, amount int) (leave.Balance, error) {
	if amount <= 0 {
		return leave.Balance{}, leave.ErrInvalidAmount
	}
	if !leave.IsValidCategory(string(category)) {
		return leave.Balance{}, leave.ErrInvalidCategory
	}

	balance, err := s.Get(ctx, employeeID)
	if err != nil {
		return leave.Balance{}, err
	}

	balance.Set(category, balance.Get(category)+amount)
	if err := s.BalanceRepository.Update(ctx, balance); err != nil {
		return leave.Balance{}, fmt.Errorf("failed to credit leave balance: %w", err)
	}

	return balance, nil
}

// Debit implements leave.BalanceService. A counter never goes below zero:
// insufficient balance blocks the operation instead.
func (s *BalanceServiceImpl) Debit(ctx context.Context, employeeID string, category leave.Category, amount int) (leave.Balance, error) {
	if amount <= 0 {
		return leave.Balance{}, leave.ErrInvalidAmount
	}
	if !leave.IsValidCategory(string(category)) {
		return leave.Balance{}, leave.ErrInvalidCategory
	}

	balance, err := s.Get(ctx, employeeID)
	if err != nil {
		return leave.Balance{}, err
	}

	current := balance.Get(category)
	if current < amount {
		return leave.Balance{}, leave.ErrInsufficientBalance
	}

	balance.Set(category, current-amount)
	if err := s.BalanceRepository.Update(ctx, balance); err != nil {
		return leave.Balance{}, fmt.Errorf("failed to debit leave balance: %w", err)
	}

	return balance, nil
}

// AccrueCompensatory implements leave.BalanceService. Credits one
// compensatory day when the work day is a company holiday.
//
// firstSessionOfDay is the idempotency key: the caller passes false when an
// attendance row already existed for (employee, date), so re-invoking the
// rule for the same day never accrues twice.
func (s *BalanceServiceImpl) AccrueCompensatory(ctx context.Context, employeeID string, date time.Time, firstSessionOfDay bool) error {
	if !firstSessionOfDay {
		return nil
	}

	_, err := s.HolidayRepository.GetByDate(ctx, date)
	if err != nil {
		if errors.Is(err, holiday.ErrHolidayNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up holiday calendar: %w", err)
	}

	if _, err := s.Credit(ctx, employeeID, leave.CategoryCompensatory, 1); err != nil {
		return fmt.Errorf("failed to credit compensatory day: %w", err)
	}

	return nil
}
