package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vtc-hr/attendance-backend-go/internal/domain/employee"
	"github.com/vtc-hr/attendance-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (full_name, email, role, manager_id, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.FullName,
		emp.Email,
		emp.Role,
		emp.ManagerID,
		emp.PasswordHash,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.full_name, e.email, e.role, e.manager_id, e.password_hash,
			   e.created_at, e.updated_at, m.full_name
		FROM employees e
		LEFT JOIN employees m ON m.id = e.manager_id
		WHERE e.id = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.FullName, &emp.Email, &emp.Role, &emp.ManagerID, &emp.PasswordHash,
		&emp.CreatedAt, &emp.UpdatedAt, &emp.ManagerName,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// GetByEmail implements employee.EmployeeRepository.
func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, email, role, manager_id, password_hash, created_at, updated_at
		FROM employees
		WHERE email = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, email).Scan(
		&emp.ID, &emp.FullName, &emp.Email, &emp.Role, &emp.ManagerID, &emp.PasswordHash,
		&emp.CreatedAt, &emp.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by email: %w", err)
	}

	return emp, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.full_name, e.email, e.role, e.manager_id, e.password_hash,
			   e.created_at, e.updated_at, m.full_name
		FROM employees e
		LEFT JOIN employees m ON m.id = e.manager_id
		ORDER BY e.created_at DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(
			&emp.ID, &emp.FullName, &emp.Email, &emp.Role, &emp.ManagerID, &emp.PasswordHash,
			&emp.CreatedAt, &emp.UpdatedAt, &emp.ManagerName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, rows.Err()
}

// UpdateManager implements employee.EmployeeRepository.
func (r *employeeRepository) UpdateManager(ctx context.Context, employeeID string, managerID *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET manager_id = $1, updated_at = NOW()
		WHERE id = $2
	`

	tag, err := q.Exec(ctx, query, managerID, employeeID)
	if err != nil {
		return fmt.Errorf("failed to update manager: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// BulkUpdateManager implements employee.EmployeeRepository.
func (r *employeeRepository) BulkUpdateManager(ctx context.Context, employeeIDs []string, managerID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET manager_id = $1, updated_at = NOW()
		WHERE id = ANY($2)
	`

	if _, err := q.Exec(ctx, query, managerID, employeeIDs); err != nil {
		return fmt.Errorf("failed to bulk update manager: %w", err)
	}

	return nil
}

// ListManagedIDs implements employee.EmployeeRepository. Walks the reporting
// chain so a manager also covers employees managed by their reports.
func (r *employeeRepository) ListManagedIDs(ctx context.Context, managerID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH RECURSIVE managed AS (
			SELECT id FROM employees WHERE manager_id = $1
			UNION
			SELECT e.id FROM employees e
			INNER JOIN managed m ON e.manager_id = m.id
		)
		SELECT id FROM managed
	`

	rows, err := q.Query(ctx, query, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list managed employees: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
