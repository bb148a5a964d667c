package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vtc-hr/attendance-backend-go/internal/domain/leave"
	"github.com/vtc-hr/attendance-backend-go/internal/pkg/database"
)

type leaveBalanceRepository struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepository{db: db}
}

// Get implements leave.BalanceRepository.
func (r *leaveBalanceRepository) Get(ctx context.Context, employeeID string) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, casual, sick, earned, compensatory, created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1
	`

	var b leave.Balance
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&b.EmployeeID, &b.Casual, &b.Sick, &b.Earned, &b.Compensatory,
		&b.CreatedAt, &b.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Balance{}, leave.ErrBalanceNotFound
		}
		return leave.Balance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return b, nil
}

// Create implements leave.BalanceRepository. Concurrent lazy initialization
// is resolved by the primary key: a loser of the race reads the winner's row.
func (r *leaveBalanceRepository) Create(ctx context.Context, balance leave.Balance) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (employee_id, casual, sick, earned, compensatory)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id) DO NOTHING
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		balance.EmployeeID,
		balance.Casual,
		balance.Sick,
		balance.Earned,
		balance.Compensatory,
	).Scan(&balance.CreatedAt, &balance.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Another request initialized the row first
			return r.Get(ctx, balance.EmployeeID)
		}
		return leave.Balance{}, fmt.Errorf("failed to create leave balance: %w", err)
	}

	return balance, nil
}

// Update implements leave.BalanceRepository.
func (r *leaveBalanceRepository) Update(ctx context.Context, balance leave.Balance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET casual = $1, sick = $2, earned = $3, compensatory = $4, updated_at = NOW()
		WHERE employee_id = $5
	`

	tag, err := q.Exec(ctx, query,
		balance.Casual,
		balance.Sick,
		balance.Earned,
		balance.Compensatory,
		balance.EmployeeID,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}

	return nil
}
