package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/placenet/portal/internal/app/models"
	"github.com/placenet/portal/internal/app/models/dto"
	"github.com/placenet/portal/internal/pkg/apperrors"
)

// CompanyRepository handles database operations for companies
type CompanyRepository struct {
	db DB
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// Create inserts a company and fills in the generated id and timestamp.
func (r *CompanyRepository) Create(ctx context.Context, company *models.Company) error {
	query := `
		INSERT INTO companies (name, website, location, description, logo_url, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING company_id, created_at`

	err := r.db.QueryRow(ctx, query,
		company.Name, company.Website, company.Location,
		company.Description, company.LogoURL, company.CreatedBy,
	).Scan(&company.CompanyID, &company.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}
	return nil
}

// GetAll returns companies, newest first, with an optional name search.
func (r *CompanyRepository) GetAll(ctx context.Context, params dto.ListParams) ([]models.Company, int64, error) {
	params.Normalize()

	query := `
		SELECT company_id, name, website, location, description, logo_url, created_by, created_at,
			COUNT(*) OVER() AS total_count
		FROM companies`
	args := []any{}
	if params.Search != "" {
		query += ` WHERE name ILIKE $1 OR location ILIKE $1`
		args = append(args, "%"+params.Search+"%")
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, params.PageSize, params.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	companies := []models.Company{}
	var total int64
	for rows.Next() {
		var c models.Company
		err := rows.Scan(&c.CompanyID, &c.Name, &c.Website, &c.Location,
			&c.Description, &c.LogoURL, &c.CreatedBy, &c.CreatedAt, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan company row: %w", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate company rows: %w", err)
	}

	return companies, total, nil
}

// GetByID retrieves a company by id.
func (r *CompanyRepository) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	query := `
		SELECT company_id, name, website, location, description, logo_url, created_by, created_at
		FROM companies WHERE company_id = $1`

	var c models.Company
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.CompanyID, &c.Name, &c.Website, &c.Location,
		&c.Description, &c.LogoURL, &c.CreatedBy, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return &c, nil
}

// Exists reports whether a company row exists.
func (r *CompanyRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM companies WHERE company_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check company existence: %w", err)
	}
	return exists, nil
}

// Update replaces a company's editable fields.
func (r *CompanyRepository) Update(ctx context.Context, company *models.Company) error {
	query := `
		UPDATE companies
		SET name = $2, website = $3, location = $4, description = $5, logo_url = $6
		WHERE company_id = $1`

	tag, err := r.db.Exec(ctx, query,
		company.CompanyID, company.Name, company.Website, company.Location,
		company.Description, company.LogoURL,
	)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCompanyNotFound
	}
	return nil
}

// Delete removes a company. Reviews and their rounds cascade; questions keep
// their rows with company_id cleared (see schema).
func (r *CompanyRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM companies WHERE company_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCompanyNotFound
	}
	return nil
}
