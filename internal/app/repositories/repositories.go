// Package repositories contains the parameterized pgx queries for each
// entity. Repositories hold no state beyond the shared connection pool.
package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repositories use. Tests substitute a
// pgxmock pool through the same interface.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories bundles all entity repositories.
type Repositories struct {
	User     *UserRepository
	Token    *TokenRepository
	Company  *CompanyRepository
	Review   *ReviewRepository
	Question *QuestionRepository
}

// NewRepositories creates all repositories over one pool.
func NewRepositories(db DB) *Repositories {
	return &Repositories{
		User:     NewUserRepository(db),
		Token:    NewTokenRepository(db),
		Company:  NewCompanyRepository(db),
		Review:   NewReviewRepository(db),
		Question: NewQuestionRepository(db),
	}
}
