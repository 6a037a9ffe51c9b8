package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/placenet/portal/internal/app/authz"
	"github.com/placenet/portal/internal/app/models"
	"github.com/placenet/portal/internal/app/models/dto"
	"github.com/placenet/portal/internal/app/repositories"
	"github.com/placenet/portal/internal/pkg/apperrors"
)

// ReviewService handles review submission and reads.
type ReviewService struct {
	reviewRepo  *repositories.ReviewRepository
	companyRepo *repositories.CompanyRepository
	ownership   *authz.OwnershipService
	logger      zerolog.Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	reviewRepo *repositories.ReviewRepository,
	companyRepo *repositories.CompanyRepository,
	ownership *authz.OwnershipService,
	logger zerolog.Logger,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		companyRepo: companyRepo,
		ownership:   ownership,
		logger:      logger,
	}
}

// validateCompleteReview applies all cheap checks before any database work.
func validateCompleteReview(req *dto.CompleteReviewRequest) error {
	if req.JobRole == "" || req.PlacementType == "" || req.OfferStatus == "" {
		return apperrors.NewBadRequestError("All fields are required")
	}
	if !models.PlacementType(req.PlacementType).Valid() || !models.OfferStatus(req.OfferStatus).Valid() {
		return apperrors.NewBadRequestError("Invalid placement type or offer status")
	}
	if len(req.Rounds) == 0 {
		return apperrors.NewBadRequestError("At least one round is required")
	}
	for i, round := range req.Rounds {
		if !models.RoundType(round.RoundType).Valid() {
			return apperrors.NewBadRequestError(fmt.Sprintf("Round %d has an invalid round type", i+1))
		}
		if round.Description == "" {
			return apperrors.NewBadRequestError(fmt.Sprintf("Round %d is missing a description", i+1))
		}
	}
	return nil
}

// SubmitComplete validates a full review payload and persists the review
// plus its rounds atomically. Validation runs before any write so invalid
// requests leave no partial state behind.
func (s *ReviewService) SubmitComplete(ctx context.Context, companyID int64, alumniID string, req *dto.CompleteReviewRequest) (*dto.CompleteReviewResponse, error) {
	if err := validateCompleteReview(req); err != nil {
		return nil, err
	}

	exists, err := s.companyRepo.Exists(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrCompanyNotFound
	}

	review := &models.Review{
		CompanyID:     companyID,
		AlumniID:      alumniID,
		JobRole:       req.JobRole,
		PlacementType: models.PlacementType(req.PlacementType),
		OfferStatus:   models.OfferStatus(req.OfferStatus),
	}

	rounds := make([]models.ReviewRound, len(req.Rounds))
	for i, r := range req.Rounds {
		rounds[i] = models.ReviewRound{
			RoundType:   models.RoundType(r.RoundType),
			Description: r.Description,
			Tips:        r.Tips,
		}
	}

	if err := s.reviewRepo.CreateWithRounds(ctx, review, rounds); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("reviewID", review.ReviewID).
		Int64("companyID", companyID).
		Int("rounds", len(rounds)).
		Msg("Review submitted")

	return &dto.CompleteReviewResponse{Review: review, Rounds: rounds}, nil
}

// AddRound appends one round to an existing review owned by the caller.
func (s *ReviewService) AddRound(ctx context.Context, reviewID int64, alumniID string, req *dto.AddRoundRequest) (*models.ReviewRound, error) {
	if !models.RoundType(req.RoundType).Valid() {
		return nil, apperrors.NewBadRequestError("Invalid round type")
	}
	if req.Description == "" {
		return nil, apperrors.NewBadRequestError("Round description is required")
	}

	if err := s.ownership.ValidateReviewOwner(ctx, reviewID, alumniID); err != nil {
		return nil, err
	}

	round := &models.ReviewRound{
		ReviewID:    reviewID,
		RoundType:   models.RoundType(req.RoundType),
		Description: req.Description,
		Tips:        req.Tips,
	}
	if err := s.reviewRepo.AddRound(ctx, round); err != nil {
		return nil, err
	}
	return round, nil
}

// ListByCompany returns a company's reviews, newest first.
func (s *ReviewService) ListByCompany(ctx context.Context, companyID int64) ([]models.Review, error) {
	return s.reviewRepo.GetByCompany(ctx, companyID)
}

// ListRounds returns a review's rounds in insertion order.
func (s *ReviewService) ListRounds(ctx context.Context, reviewID int64) ([]models.ReviewRound, error) {
	if _, err := s.reviewRepo.GetByID(ctx, reviewID); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetRounds(ctx, reviewID)
}
