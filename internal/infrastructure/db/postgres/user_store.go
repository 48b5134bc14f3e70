package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/driveline/dealership-system/internal/core/domain"
	"github.com/driveline/dealership-system/internal/core/ports"
)

const userColumns = `id, email, password, firstname, middlename, lastname, contact_num, type, status, created_at, updated_at, created_by, updated_by`

const (
	insertUserQuery = `
		INSERT INTO users (email, password, firstname, middlename, lastname, contact_num, type, status, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	getUserByIDQuery    = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	getUserByEmailQuery = `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	updateUserQuery     = `
		UPDATE users
		SET email = $1,
			password = $2,
			firstname = $3,
			middlename = $4,
			lastname = $5,
			contact_num = $6,
			type = $7,
			status = $8,
			updated_at = now(),
			updated_by = $9
		WHERE id = $10
	`
	deleteUserQuery = `DELETE FROM users WHERE id = $1`
)

type userScanner interface {
	Scan(dest ...any) error
}

func scanUser(row userScanner) (*domain.User, error) {
	var u domain.User
	var middlename, contactNum, createdBy, updatedBy sql.NullString
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Firstname,
		&middlename,
		&u.Lastname,
		&contactNum,
		&u.Type,
		&u.Status,
		&u.CreatedAt,
		&u.UpdatedAt,
		&createdBy,
		&updatedBy,
	)
	if err != nil {
		return nil, err
	}
	u.Middlename = middlename.String
	u.ContactNum = contactNum.String
	u.CreatedBy = createdBy.String
	u.UpdatedBy = updatedBy.String
	return &u, nil
}

// nullable maps an empty string to SQL NULL.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// --- Unit-of-work writes ---

func (t *entityTx) InsertUser(ctx context.Context, u *domain.User) (int64, error) {
	var id int64
	err := t.tx.QueryRowContext(ctx, insertUserQuery,
		u.Email, u.PasswordHash, u.Firstname, nullable(u.Middlename), u.Lastname,
		nullable(u.ContactNum), u.Type, u.Status, u.CreatedBy, u.UpdatedBy,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", classify(err))
	}
	u.ID = id
	return id, nil
}

func (t *entityTx) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	u, err := scanUser(t.tx.QueryRowContext(ctx, getUserByIDQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (t *entityTx) UpdateUser(ctx context.Context, u *domain.User) error {
	res, err := t.tx.ExecContext(ctx, updateUserQuery,
		u.Email, u.PasswordHash, u.Firstname, nullable(u.Middlename), u.Lastname,
		nullable(u.ContactNum), u.Type, u.Status, u.UpdatedBy, u.ID,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", classify(err))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (t *entityTx) DeleteUser(ctx context.Context, id int64) error {
	res, err := t.tx.ExecContext(ctx, deleteUserQuery, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", classify(err))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// --- Pool reads ---

func (s *Store) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, getUserByIDQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, getUserByEmailQuery, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// ListUsers applies the discrete filters with AND and the search term with
// ILIKE OR-combined across the name and email columns.
func (s *Store) ListUsers(ctx context.Context, f ports.UserFilter) ([]domain.User, int64, error) {
	query := `SELECT ` + userColumns + `, count(*) OVER () FROM users`
	var conds []string
	var args []any

	if f.Type != "" {
		args = append(args, f.Type)
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(firstname ILIKE $%d OR middlename ILIKE $%d OR lastname ILIKE $%d OR email ILIKE $%d)", n, n, n, n))
	}
	query += whereClause(conds)
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := []domain.User{}
	var total int64
	for rows.Next() {
		var u domain.User
		var middlename, contactNum, createdBy, updatedBy sql.NullString
		if err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.Firstname, &middlename, &u.Lastname,
			&contactNum, &u.Type, &u.Status, &u.CreatedAt, &u.UpdatedAt, &createdBy, &updatedBy,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		u.Middlename = middlename.String
		u.ContactNum = contactNum.String
		u.CreatedBy = createdBy.String
		u.UpdatedBy = updatedBy.String
		out = append(out, u)
	}
	return out, total, rows.Err()
}
