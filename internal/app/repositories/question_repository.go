package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/placenet/portal/internal/app/models"
	"github.com/placenet/portal/internal/pkg/apperrors"
)

// QuestionRepository handles database operations for questions and answers
type QuestionRepository struct {
	db DB
}

// NewQuestionRepository creates a new QuestionRepository
func NewQuestionRepository(db DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// Create inserts a question and fills in generated fields.
func (r *QuestionRepository) Create(ctx context.Context, q *models.Question) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO questions (content, student_id, company_id)
		 VALUES ($1, $2, $3)
		 RETURNING question_id, created_at, updated_at`,
		q.Content, q.StudentID, q.CompanyID,
	).Scan(&q.QuestionID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

// List returns questions with author names, newest first, optionally
// filtered by company.
func (r *QuestionRepository) List(ctx context.Context, companyID *int64) ([]models.Question, error) {
	query := `
		SELECT q.question_id, q.content, q.student_id, u.name, q.company_id, q.created_at, q.updated_at
		FROM questions q
		JOIN users u ON u.user_id = q.student_id`
	args := []any{}
	if companyID != nil {
		query += ` WHERE q.company_id = $1`
		args = append(args, *companyID)
	}
	query += ` ORDER BY q.created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var q models.Question
		err := rows.Scan(&q.QuestionID, &q.Content, &q.StudentID, &q.StudentName,
			&q.CompanyID, &q.CreatedAt, &q.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question row: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate question rows: %w", err)
	}

	return questions, nil
}

// GetByID retrieves a question by id.
func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*models.Question, error) {
	var q models.Question
	err := r.db.QueryRow(ctx,
		`SELECT question_id, content, student_id, company_id, created_at, updated_at
		 FROM questions WHERE question_id = $1`,
		id,
	).Scan(&q.QuestionID, &q.Content, &q.StudentID, &q.CompanyID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return &q, nil
}

// UpdateContent replaces a question's content.
func (r *QuestionRepository) UpdateContent(ctx context.Context, id int64, content string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE questions SET content = $2, updated_at = NOW() WHERE question_id = $1`,
		id, content,
	)
	if err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrQuestionNotFound
	}
	return nil
}

// Delete removes a question. Its answers cascade.
func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM questions WHERE question_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrQuestionNotFound
	}
	return nil
}

// ListAnswers returns a question's answers in ascending creation order.
func (r *QuestionRepository) ListAnswers(ctx context.Context, questionID int64) ([]models.Answer, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.answer_id, a.question_id, a.content, a.alumni_id, u.name, a.created_at, a.updated_at
		 FROM answers a
		 JOIN users u ON u.user_id = a.alumni_id
		 WHERE a.question_id = $1
		 ORDER BY a.created_at ASC`,
		questionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}
	defer rows.Close()

	answers := []models.Answer{}
	for rows.Next() {
		var a models.Answer
		err := rows.Scan(&a.AnswerID, &a.QuestionID, &a.Content, &a.AlumniID,
			&a.AlumniName, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan answer row: %w", err)
		}
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate answer rows: %w", err)
	}

	return answers, nil
}

// CreateAnswer inserts an answer and fills in generated fields.
func (r *QuestionRepository) CreateAnswer(ctx context.Context, a *models.Answer) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO answers (question_id, content, alumni_id)
		 VALUES ($1, $2, $3)
		 RETURNING answer_id, created_at, updated_at`,
		a.QuestionID, a.Content, a.AlumniID,
	).Scan(&a.AnswerID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create answer: %w", err)
	}
	return nil
}
