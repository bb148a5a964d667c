package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vtc-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/vtc-hr/attendance-backend-go/internal/pkg/database"
)

type sessionRepository struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) attendance.SessionRepository {
	return &sessionRepository{db: db}
}

const sessionColumns = `
	s.id, s.employee_id, s.date,
	s.sign_in_at, s.sign_in_latitude, s.sign_in_longitude, s.sign_in_photo_url,
	s.sign_out_at, s.sign_out_latitude, s.sign_out_longitude,
	s.status, s.approved_by, s.approved_at,
	s.created_at, s.updated_at
`

func scanSession(row pgx.Row) (attendance.Session, error) {
	var s attendance.Session
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.Date,
		&s.SignInAt, &s.SignInLatitude, &s.SignInLongitude, &s.SignInPhotoURL,
		&s.SignOutAt, &s.SignOutLatitude, &s.SignOutLongitude,
		&s.Status, &s.ApprovedBy, &s.ApprovedAt,
		&s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// Create implements attendance.SessionRepository. A partial unique index on
// (employee_id, date) WHERE sign_out_at IS NULL enforces the single open
// session rule under concurrency.
func (r *sessionRepository) Create(ctx context.Context, session attendance.Session) (attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_sessions (
			employee_id, date, sign_in_at, sign_in_latitude, sign_in_longitude,
			sign_in_photo_url, status, approved_by, approved_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		session.EmployeeID,
		session.Date,
		session.SignInAt,
		session.SignInLatitude,
		session.SignInLongitude,
		session.SignInPhotoURL,
		session.Status,
		session.ApprovedBy,
		session.ApprovedAt,
	).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Session{}, attendance.ErrOpenSessionExists
		}
		return attendance.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// GetByID implements attendance.SessionRepository.
func (r *sessionRepository) GetByID(ctx context.Context, id string) (attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions s
		WHERE s.id = $1
	`

	session, err := scanSession(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Session{}, attendance.ErrSessionNotFound
		}
		return attendance.Session{}, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// GetOpenSession implements attendance.SessionRepository.
func (r *sessionRepository) GetOpenSession(ctx context.Context, employeeID string, date time.Time) (attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions s
		WHERE s.employee_id = $1
		  AND s.date = $2
		  AND s.sign_out_at IS NULL
		ORDER BY s.sign_in_at DESC
		LIMIT 1
	`

	session, err := scanSession(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Session{}, attendance.ErrNoOpenSession
		}
		return attendance.Session{}, fmt.Errorf("failed to get open session: %w", err)
	}

	return session, nil
}

// GetOpenApprovedSession implements attendance.SessionRepository.
func (r *sessionRepository) GetOpenApprovedSession(ctx context.Context, employeeID string, date time.Time) (attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions s
		WHERE s.employee_id = $1
		  AND s.date = $2
		  AND s.sign_out_at IS NULL
		  AND s.status = 'approved'
		ORDER BY s.sign_in_at DESC
		LIMIT 1
	`

	session, err := scanSession(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Session{}, attendance.ErrNoOpenSession
		}
		return attendance.Session{}, fmt.Errorf("failed to get open approved session: %w", err)
	}

	return session, nil
}

// HasSessionOn implements attendance.SessionRepository.
func (r *sessionRepository) HasSessionOn(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM attendance_sessions
			WHERE employee_id = $1
			  AND date = $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check sessions for day: %w", err)
	}

	return exists, nil
}

// Update implements attendance.SessionRepository.
func (r *sessionRepository) Update(ctx context.Context, session attendance.Session) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_sessions
		SET sign_out_at = $1, sign_out_latitude = $2, sign_out_longitude = $3,
			status = $4, approved_by = $5, approved_at = $6, updated_at = NOW()
		WHERE id = $7
	`

	tag, err := q.Exec(ctx, query,
		session.SignOutAt,
		session.SignOutLatitude,
		session.SignOutLongitude,
		session.Status,
		session.ApprovedBy,
		session.ApprovedAt,
		session.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrSessionNotFound
	}

	return nil
}

// List implements attendance.SessionRepository.
func (r *sessionRepository) List(ctx context.Context, filter attendance.SessionFilter, employeeIDs []string) ([]attendance.Session, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	if employeeIDs != nil {
		baseWhere += fmt.Sprintf(" AND s.employee_id = ANY($%d)", argIdx)
		args = append(args, employeeIDs)
		argIdx++
	}

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND s.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND s.date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND s.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND s.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND s.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM attendance_sessions s
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+sessionColumns+`, e.full_name
		FROM attendance_sessions s
		LEFT JOIN employees e ON e.id = s.employee_id
		WHERE `+baseWhere+`
		ORDER BY s.date DESC, s.sign_in_at DESC
		LIMIT $%d OFFSET $%d
	`, argIdx, argIdx+1)

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []attendance.Session
	for rows.Next() {
		var s attendance.Session
		err := rows.Scan(
			&s.ID, &s.EmployeeID, &s.Date,
			&s.SignInAt, &s.SignInLatitude, &s.SignInLongitude, &s.SignInPhotoURL,
			&s.SignOutAt, &s.SignOutLatitude, &s.SignOutLongitude,
			&s.Status, &s.ApprovedBy, &s.ApprovedAt,
			&s.CreatedAt, &s.UpdatedAt,
			&s.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, total, rows.Err()
}

// ListByEmployee implements attendance.SessionRepository.
func (r *sessionRepository) ListByEmployee(ctx context.Context, employeeID string, filter attendance.MySessionFilter) ([]attendance.Session, int64, error) {
	full := attendance.SessionFilter{
		EmployeeID: &employeeID,
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
		Status:     filter.Status,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	return r.List(ctx, full, nil)
}

// ListApprovedInRange implements attendance.SessionRepository.
func (r *sessionRepository) ListApprovedInRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions s
		WHERE s.employee_id = $1
		  AND s.status = 'approved'
		  AND s.date >= $2
		  AND s.date < $3
		ORDER BY s.date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query approved sessions: %w", err)
	}
	defer rows.Close()

	var sessions []attendance.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}
