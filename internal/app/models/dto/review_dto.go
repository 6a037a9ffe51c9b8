package dto

import "github.com/placenet/portal/internal/app/models"

// RoundInput is one interview round inside a review submission.
type RoundInput struct {
	RoundType   string  `json:"round_type"`
	Description string  `json:"description"`
	Tips        *string `json:"tips"`
}

// CompleteReviewRequest is the payload for the transactional review
// submission: the review metadata plus an ordered list of rounds.
type CompleteReviewRequest struct {
	JobRole       string       `json:"job_role"`
	PlacementType string       `json:"placement_type"`
	OfferStatus   string       `json:"offer_status"`
	Rounds        []RoundInput `json:"rounds"`
}

// CompleteReviewResponse is returned after a successful submission.
type CompleteReviewResponse struct {
	Review *models.Review       `json:"review"`
	Rounds []models.ReviewRound `json:"rounds"`
}

// AddRoundRequest appends one round to an existing review.
type AddRoundRequest struct {
	RoundType   string  `json:"round_type"`
	Description string  `json:"description"`
	Tips        *string `json:"tips"`
}

// RoundResponse wraps a single created round.
type RoundResponse struct {
	Success bool                `json:"success"`
	Round   *models.ReviewRound `json:"round"`
}
