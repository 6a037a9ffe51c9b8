// Package authz centralizes the role policy and ownership checks that were
// previously re-derived ad hoc inside individual handlers.
package authz

import (
	"context"
	"errors"

	"github.com/placenet/portal/internal/app/models"
	"github.com/placenet/portal/internal/app/repositories"
	"github.com/placenet/portal/internal/pkg/apperrors"
)

// Operation names one guarded API action.
type Operation string

const (
	OpCompanyWrite    Operation = "company:write"
	OpReviewCreate    Operation = "review:create"
	OpQuestionCreate  Operation = "question:create"
	OpAnswerCreate    Operation = "answer:create"
	OpUserProvision   Operation = "user:provision"
	OpUserAdminAccess Operation = "user:admin"
)

// Policy maps each guarded operation to the roles allowed to perform it.
// Evaluated by the shared role-gate middleware at route registration.
var Policy = map[Operation][]models.Role{
	OpCompanyWrite:    {models.RoleAdmin},
	OpReviewCreate:    {models.RoleAlumni},
	OpQuestionCreate:  {models.RoleStudent},
	OpAnswerCreate:    {models.RoleAlumni},
	OpUserProvision:   {models.RoleAdmin},
	OpUserAdminAccess: {models.RoleAdmin},
}

// RolesFor returns the roles allowed to perform an operation. Unknown
// operations allow nothing.
func RolesFor(op Operation) []models.Role {
	return Policy[op]
}

// Allowed reports whether a role may perform an operation.
func Allowed(op Operation, role models.Role) bool {
	for _, r := range Policy[op] {
		if r == role {
			return true
		}
	}
	return false
}

// OwnershipService resolves per-resource ownership questions.
type OwnershipService struct {
	questionRepo *repositories.QuestionRepository
	reviewRepo   *repositories.ReviewRepository
}

// NewOwnershipService creates a new OwnershipService
func NewOwnershipService(questionRepo *repositories.QuestionRepository, reviewRepo *repositories.ReviewRepository) *OwnershipService {
	return &OwnershipService{questionRepo: questionRepo, reviewRepo: reviewRepo}
}

// ValidateQuestionOwner allows the authoring student or an admin to modify a
// question.
func (s *OwnershipService) ValidateQuestionOwner(ctx context.Context, questionID int64, userID string, role models.Role) error {
	if role == models.RoleAdmin {
		// Admin override still requires the question to exist.
		if _, err := s.questionRepo.GetByID(ctx, questionID); err != nil {
			return err
		}
		return nil
	}

	q, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return err
	}
	if q.StudentID != userID {
		return apperrors.NewForbiddenError("You can only modify your own questions")
	}
	return nil
}

// ValidateReviewOwner allows only the authoring alumni to extend a review.
func (s *OwnershipService) ValidateReviewOwner(ctx context.Context, reviewID int64, userID string) error {
	rv, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if rv.AlumniID != userID {
		return apperrors.NewForbiddenError("You can only add rounds to your own reviews")
	}
	return nil
}

// IsNotFound reports whether an ownership check failed because the resource
// is missing rather than because access was denied.
func IsNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrResourceNotFound) ||
		errors.Is(err, apperrors.ErrQuestionNotFound) ||
		errors.Is(err, apperrors.ErrReviewNotFound)
}
