package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/placenet/portal/internal/app/models"
	"github.com/placenet/portal/internal/pkg/apperrors"
)

// ReviewRepository handles database operations for reviews and their rounds
type ReviewRepository struct {
	db DB
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// CreateWithRounds persists a review and its rounds as one atomic unit:
// either the review row and every round row exist afterwards, or none do.
// Rounds are inserted sequentially so round_id order matches input order.
func (r *ReviewRepository) CreateWithRounds(ctx context.Context, review *models.Review, rounds []models.ReviewRound) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO reviews (company_id, alumni_id, job_role, placement_type, offer_status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING review_id, created_at`,
		review.CompanyID, review.AlumniID, review.JobRole, review.PlacementType, review.OfferStatus,
	).Scan(&review.ReviewID, &review.CreatedAt)
	if err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("failed to insert review: %w", err)
	}

	for i := range rounds {
		rounds[i].ReviewID = review.ReviewID
		err = tx.QueryRow(ctx,
			`INSERT INTO review_rounds (review_id, round_type, description, tips)
			 VALUES ($1, $2, $3, $4)
			 RETURNING round_id`,
			rounds[i].ReviewID, rounds[i].RoundType, rounds[i].Description, rounds[i].Tips,
		).Scan(&rounds[i].RoundID)
		if err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("failed to insert review round %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit review transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a review by id.
func (r *ReviewRepository) GetByID(ctx context.Context, reviewID int64) (*models.Review, error) {
	var rv models.Review
	err := r.db.QueryRow(ctx,
		`SELECT review_id, company_id, alumni_id, job_role, placement_type, offer_status, created_at
		 FROM reviews WHERE review_id = $1`,
		reviewID,
	).Scan(&rv.ReviewID, &rv.CompanyID, &rv.AlumniID, &rv.JobRole, &rv.PlacementType, &rv.OfferStatus, &rv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return &rv, nil
}

// GetByCompany returns a company's reviews, newest first, with author names.
func (r *ReviewRepository) GetByCompany(ctx context.Context, companyID int64) ([]models.Review, error) {
	rows, err := r.db.Query(ctx,
		`SELECT r.review_id, r.company_id, r.alumni_id, u.name, r.job_role,
			r.placement_type, r.offer_status, r.created_at
		 FROM reviews r
		 JOIN users u ON u.user_id = r.alumni_id
		 WHERE r.company_id = $1
		 ORDER BY r.created_at DESC`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var rv models.Review
		err := rows.Scan(&rv.ReviewID, &rv.CompanyID, &rv.AlumniID, &rv.AlumniName,
			&rv.JobRole, &rv.PlacementType, &rv.OfferStatus, &rv.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate review rows: %w", err)
	}

	return reviews, nil
}

// GetRounds returns a review's rounds ordered by ascending round_id, which
// matches insertion order.
func (r *ReviewRepository) GetRounds(ctx context.Context, reviewID int64) ([]models.ReviewRound, error) {
	rows, err := r.db.Query(ctx,
		`SELECT round_id, review_id, round_type, description, tips
		 FROM review_rounds
		 WHERE review_id = $1
		 ORDER BY round_id ASC`,
		reviewID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list review rounds: %w", err)
	}
	defer rows.Close()

	rounds := []models.ReviewRound{}
	for rows.Next() {
		var rd models.ReviewRound
		if err := rows.Scan(&rd.RoundID, &rd.ReviewID, &rd.RoundType, &rd.Description, &rd.Tips); err != nil {
			return nil, fmt.Errorf("failed to scan round row: %w", err)
		}
		rounds = append(rounds, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate round rows: %w", err)
	}

	return rounds, nil
}

// AddRound appends one round to an existing review.
func (r *ReviewRepository) AddRound(ctx context.Context, round *models.ReviewRound) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO review_rounds (review_id, round_type, description, tips)
		 VALUES ($1, $2, $3, $4)
		 RETURNING round_id`,
		round.ReviewID, round.RoundType, round.Description, round.Tips,
	).Scan(&round.RoundID)
	if err != nil {
		return fmt.Errorf("failed to insert review round: %w", err)
	}
	return nil
}
