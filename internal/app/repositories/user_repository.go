package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/placenet/portal/internal/app/models"
	"github.com/placenet/portal/internal/app/models/dto"
	"github.com/placenet/portal/internal/pkg/apperrors"
	"github.com/placenet/portal/internal/pkg/dberrors"
)

const userColumns = `user_id, email, password_hash, role, name, phone, department,
	college_name, graduation_year, current_company, designation, bio, created_at`

// UserRepository handles database operations for users
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.UserID, &u.Email, &u.PasswordHash, &u.Role, &u.Name, &u.Phone, &u.Department,
		&u.CollegeName, &u.GraduationYear, &u.CurrentCompany, &u.Designation, &u.Bio, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

// Create inserts a new user row.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (user_id, email, password_hash, role, name, phone, department,
			college_name, graduation_year, current_company, designation, bio)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at`

	err := r.db.QueryRow(ctx, query,
		user.UserID, strings.ToLower(user.Email), user.PasswordHash, user.Role, user.Name,
		user.Phone, user.Department, user.CollegeName, user.GraduationYear,
		user.CurrentCompany, user.Designation, user.Bio,
	).Scan(&user.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolationOn(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrUserIDExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByUserID retrieves a user by institutional code.
func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	return scanUser(r.db.QueryRow(ctx, query, userID))
}

// GetByEmail retrieves a user by (lowercased) email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, query, strings.ToLower(email)))
}

// UpdateProfile updates the self-editable profile fields.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET name = $2, phone = $3, department = $4, college_name = $5,
			graduation_year = $6, current_company = $7, designation = $8, bio = $9
		WHERE user_id = $1`

	tag, err := r.db.Exec(ctx, query,
		user.UserID, user.Name, user.Phone, user.Department, user.CollegeName,
		user.GraduationYear, user.CurrentCompany, user.Designation, user.Bio,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdatePassword replaces a user's password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE user_id = $1`, userID, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Upsert inserts the user if no row matches its user_id or email, otherwise
// updates the matching row. Returns true when a new row was inserted.
// Used by bulk provisioning, one row at a time.
func (r *UserRepository) Upsert(ctx context.Context, user *models.User) (inserted bool, err error) {
	var existingID string
	err = r.db.QueryRow(ctx,
		`SELECT user_id FROM users WHERE user_id = $1 OR email = $2`,
		user.UserID, strings.ToLower(user.Email),
	).Scan(&existingID)

	if errors.Is(err, pgx.ErrNoRows) {
		if err := r.Create(ctx, user); err != nil {
			return false, err
		}
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up existing user: %w", err)
	}

	query := `
		UPDATE users
		SET email = $2, password_hash = $3, role = $4, name = $5, phone = $6,
			department = $7, graduation_year = $8
		WHERE user_id = $1`

	_, err = r.db.Exec(ctx, query,
		existingID, strings.ToLower(user.Email), user.PasswordHash, user.Role,
		user.Name, user.Phone, user.Department, user.GraduationYear,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update existing user: %w", err)
	}
	return false, nil
}

// List returns users ordered by creation time, newest first, with the total
// count for pagination.
func (r *UserRepository) List(ctx context.Context, params dto.ListParams) ([]models.User, int64, error) {
	params.Normalize()

	query := `SELECT ` + userColumns + `, COUNT(*) OVER() AS total_count FROM users`
	args := []any{}
	if params.Search != "" {
		query += ` WHERE name ILIKE $1 OR email ILIKE $1 OR user_id ILIKE $1`
		args = append(args, "%"+params.Search+"%")
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, params.PageSize, params.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	var total int64
	for rows.Next() {
		var u models.User
		err := rows.Scan(
			&u.UserID, &u.Email, &u.PasswordHash, &u.Role, &u.Name, &u.Phone, &u.Department,
			&u.CollegeName, &u.GraduationYear, &u.CurrentCompany, &u.Designation, &u.Bio,
			&u.CreatedAt, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user row: %w", err)
		}
		u.PasswordHash = ""
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate user rows: %w", err)
	}

	return users, total, nil
}
