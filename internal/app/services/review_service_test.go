package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placenet/portal/internal/app/authz"
	"github.com/placenet/portal/internal/app/models"
	"github.com/placenet/portal/internal/app/models/dto"
	"github.com/placenet/portal/internal/app/repositories"
	"github.com/placenet/portal/internal/pkg/apperrors"
)

func newReviewServiceWithMock(t *testing.T) (*ReviewService, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	repos := repositories.NewRepositories(mock)
	ownership := authz.NewOwnershipService(repos.Question, repos.Review)
	svc := NewReviewService(repos.Review, repos.Company, ownership, zerolog.Nop())

	return svc, mock
}

func validReviewRequest() *dto.CompleteReviewRequest {
	return &dto.CompleteReviewRequest{
		JobRole:       "Software Engineer",
		PlacementType: "on-campus",
		OfferStatus:   "offer",
		Rounds: []dto.RoundInput{
			{RoundType: "aptitude", Description: "Online aptitude test"},
			{RoundType: "technical", Description: "DSA and system design"},
		},
	}
}

func TestSubmitComplete_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*dto.CompleteReviewRequest)
		wantMsg string
	}{
		{
			name:    "missing job role",
			mutate:  func(r *dto.CompleteReviewRequest) { r.JobRole = "" },
			wantMsg: "All fields are required",
		},
		{
			name:    "missing placement type",
			mutate:  func(r *dto.CompleteReviewRequest) { r.PlacementType = "" },
			wantMsg: "All fields are required",
		},
		{
			name:    "invalid placement type",
			mutate:  func(r *dto.CompleteReviewRequest) { r.PlacementType = "remote" },
			wantMsg: "Invalid placement type or offer status",
		},
		{
			name:    "invalid offer status",
			mutate:  func(r *dto.CompleteReviewRequest) { r.OfferStatus = "pending" },
			wantMsg: "Invalid placement type or offer status",
		},
		{
			name:    "no rounds",
			mutate:  func(r *dto.CompleteReviewRequest) { r.Rounds = nil },
			wantMsg: "At least one round is required",
		},
		{
			name:    "invalid round type",
			mutate:  func(r *dto.CompleteReviewRequest) { r.Rounds[1].RoundType = "telepathy" },
			wantMsg: "Round 2 has an invalid round type",
		},
		{
			name:    "missing round description",
			mutate:  func(r *dto.CompleteReviewRequest) { r.Rounds[0].Description = "" },
			wantMsg: "Round 1 is missing a description",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mock := newReviewServiceWithMock(t)

			req := validReviewRequest()
			tt.mutate(req)

			_, err := svc.SubmitComplete(context.Background(), 5, "AL001", req)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrBadRequest)
			assert.Equal(t, tt.wantMsg, apperrors.Message(err))

			// Validation failures must never reach the database.
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSubmitComplete_UnknownCompany(t *testing.T) {
	svc, mock := newReviewServiceWithMock(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := svc.SubmitComplete(context.Background(), 99, "AL001", validReviewRequest())
	assert.ErrorIs(t, err, apperrors.ErrCompanyNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitComplete_Success(t *testing.T) {
	svc, mock := newReviewServiceWithMock(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO reviews").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"review_id", "created_at"}).AddRow(int64(7), time.Now()))
	mock.ExpectQuery("INSERT INTO review_rounds").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"round_id"}).AddRow(int64(11)))
	mock.ExpectQuery("INSERT INTO review_rounds").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"round_id"}).AddRow(int64(12)))
	mock.ExpectCommit()

	resp, err := svc.SubmitComplete(context.Background(), 5, "AL001", validReviewRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.Review.ReviewID)
	require.Len(t, resp.Rounds, 2)
	assert.Equal(t, int64(11), resp.Rounds[0].RoundID)
	assert.Equal(t, int64(12), resp.Rounds[1].RoundID)
	assert.Equal(t, int64(7), resp.Rounds[0].ReviewID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitComplete_RollbackOnRoundFailure(t *testing.T) {
	svc, mock := newReviewServiceWithMock(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO reviews").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"review_id", "created_at"}).AddRow(int64(7), time.Now()))
	mock.ExpectQuery("INSERT INTO review_rounds").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"round_id"}).AddRow(int64(11)))
	mock.ExpectQuery("INSERT INTO review_rounds").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := svc.SubmitComplete(context.Background(), 5, "AL001", validReviewRequest())
	require.Error(t, err)

	// The whole submission rolls back; no commit happens.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRounds_OrderedByRoundID(t *testing.T) {
	svc, mock := newReviewServiceWithMock(t)

	mock.ExpectQuery("SELECT review_id").
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(
			[]string{"review_id", "company_id", "alumni_id", "job_role", "placement_type", "offer_status", "created_at"}).
			AddRow(int64(7), int64(5), "AL001", "SDE", models.PlacementType("on-campus"), models.OfferStatus("offer"), time.Now()))

	tips := "practice graphs"
	mock.ExpectQuery(`ORDER BY round_id ASC`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"round_id", "review_id", "round_type", "description", "tips"}).
			AddRow(int64(11), int64(7), models.RoundType("aptitude"), "Online aptitude test", (*string)(nil)).
			AddRow(int64(12), int64(7), models.RoundType("technical"), "DSA and system design", &tips).
			AddRow(int64(13), int64(7), models.RoundType("hr"), "Final HR discussion", (*string)(nil)))

	rounds, err := svc.ListRounds(context.Background(), 7)
	require.NoError(t, err)

	// Rows come back oldest round first, matching insertion order.
	require.Len(t, rounds, 3)
	assert.Equal(t, int64(11), rounds[0].RoundID)
	assert.Equal(t, int64(12), rounds[1].RoundID)
	assert.Equal(t, int64(13), rounds[2].RoundID)
	assert.Equal(t, models.RoundType("technical"), rounds[1].RoundType)
	require.NotNil(t, rounds[1].Tips)
	assert.Equal(t, "practice graphs", *rounds[1].Tips)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRounds_UnknownReview(t *testing.T) {
	svc, mock := newReviewServiceWithMock(t)

	mock.ExpectQuery("SELECT review_id").
		WithArgs(int64(404)).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.ListRounds(context.Background(), 404)
	assert.ErrorIs(t, err, apperrors.ErrReviewNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddRound_Validation(t *testing.T) {
	svc, mock := newReviewServiceWithMock(t)

	_, err := svc.AddRound(context.Background(), 7, "AL001", &dto.AddRoundRequest{RoundType: "telepathy", Description: "x"})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = svc.AddRound(context.Background(), 7, "AL001", &dto.AddRoundRequest{RoundType: "hr", Description: ""})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddRound_OwnershipEnforced(t *testing.T) {
	svc, mock := newReviewServiceWithMock(t)

	mock.ExpectQuery("SELECT review_id").
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(
			[]string{"review_id", "company_id", "alumni_id", "job_role", "placement_type", "offer_status", "created_at"}).
			AddRow(int64(7), int64(5), "AL001", "SDE", models.PlacementType("on-campus"), models.OfferStatus("offer"), time.Now()))

	_, err := svc.AddRound(context.Background(), 7, "AL999", &dto.AddRoundRequest{RoundType: "hr", Description: "Final HR discussion"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.NoError(t, mock.ExpectationsWereMet())
}
