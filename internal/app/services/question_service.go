package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/placenet/portal/internal/app/authz"
	"github.com/placenet/portal/internal/app/models"
	"github.com/placenet/portal/internal/app/models/dto"
	"github.com/placenet/portal/internal/app/repositories"
	"github.com/placenet/portal/internal/pkg/apperrors"
)

// QuestionService handles Q&A operations.
type QuestionService struct {
	questionRepo *repositories.QuestionRepository
	companyRepo  *repositories.CompanyRepository
	ownership    *authz.OwnershipService
	logger       zerolog.Logger
}

// NewQuestionService creates a new QuestionService
func NewQuestionService(
	questionRepo *repositories.QuestionRepository,
	companyRepo *repositories.CompanyRepository,
	ownership *authz.OwnershipService,
	logger zerolog.Logger,
) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		companyRepo:  companyRepo,
		ownership:    ownership,
		logger:       logger,
	}
}

// Create creates a question authored by a student.
func (s *QuestionService) Create(ctx context.Context, studentID string, req *dto.CreateQuestionRequest) (*models.Question, error) {
	if req.CompanyID != nil {
		exists, err := s.companyRepo.Exists(ctx, *req.CompanyID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperrors.ErrCompanyNotFound
		}
	}

	q := &models.Question{
		Content:   req.Content,
		StudentID: studentID,
		CompanyID: req.CompanyID,
	}
	if err := s.questionRepo.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// List returns questions, optionally filtered by company.
func (s *QuestionService) List(ctx context.Context, companyID *int64) ([]models.Question, error) {
	return s.questionRepo.List(ctx, companyID)
}

// Update edits a question's content after an ownership check.
func (s *QuestionService) Update(ctx context.Context, questionID int64, userID string, role models.Role, req *dto.UpdateQuestionRequest) (*models.Question, error) {
	if err := s.ownership.ValidateQuestionOwner(ctx, questionID, userID, role); err != nil {
		return nil, err
	}
	if err := s.questionRepo.UpdateContent(ctx, questionID, req.Content); err != nil {
		return nil, err
	}
	return s.questionRepo.GetByID(ctx, questionID)
}

// Delete removes a question after an ownership check.
func (s *QuestionService) Delete(ctx context.Context, questionID int64, userID string, role models.Role) error {
	if err := s.ownership.ValidateQuestionOwner(ctx, questionID, userID, role); err != nil {
		return err
	}
	return s.questionRepo.Delete(ctx, questionID)
}

// ListAnswers returns a question's answers in ascending creation order.
func (s *QuestionService) ListAnswers(ctx context.Context, questionID int64) ([]models.Answer, error) {
	if _, err := s.questionRepo.GetByID(ctx, questionID); err != nil {
		return nil, err
	}
	return s.questionRepo.ListAnswers(ctx, questionID)
}

// CreateAnswer creates an alumni answer to an existing question.
func (s *QuestionService) CreateAnswer(ctx context.Context, questionID int64, alumniID string, req *dto.CreateAnswerRequest) (*models.Answer, error) {
	if _, err := s.questionRepo.GetByID(ctx, questionID); err != nil {
		return nil, err
	}

	a := &models.Answer{
		QuestionID: questionID,
		Content:    req.Content,
		AlumniID:   alumniID,
	}
	if err := s.questionRepo.CreateAnswer(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
