package models

import "time"

// PlacementType describes how the interview was sourced.
type PlacementType string

const (
	PlacementOnCampus  PlacementType = "on-campus"
	PlacementOffCampus PlacementType = "off-campus"
)

// Valid reports whether the placement type is a known value.
func (p PlacementType) Valid() bool {
	return p == PlacementOnCampus || p == PlacementOffCampus
}

// OfferStatus describes how the process ended.
type OfferStatus string

const (
	OfferReceived OfferStatus = "offer"
	OfferNone     OfferStatus = "no-offer"
)

// Valid reports whether the offer status is a known value.
func (o OfferStatus) Valid() bool {
	return o == OfferReceived || o == OfferNone
}

// RoundType identifies one stage of an interview process.
type RoundType string

const (
	RoundAptitude  RoundType = "aptitude"
	RoundTechnical RoundType = "technical"
	RoundHR        RoundType = "hr"
	RoundOther     RoundType = "other"
)

// Valid reports whether the round type is a known value.
func (r RoundType) Valid() bool {
	switch r {
	case RoundAptitude, RoundTechnical, RoundHR, RoundOther:
		return true
	}
	return false
}

// Review is an alumni-submitted record of one placement interview
// experience at one company.
type Review struct {
	ReviewID      int64         `json:"review_id"`
	CompanyID     int64         `json:"company_id"`
	AlumniID      string        `json:"alumni_id"`
	AlumniName    string        `json:"alumni_name,omitempty"`
	JobRole       string        `json:"job_role"`
	PlacementType PlacementType `json:"placement_type"`
	OfferStatus   OfferStatus   `json:"offer_status"`
	CreatedAt     time.Time     `json:"created_at"`
}

// ReviewRound is one stage of a review's interview process.
type ReviewRound struct {
	RoundID     int64     `json:"round_id"`
	ReviewID    int64     `json:"review_id"`
	RoundType   RoundType `json:"round_type"`
	Description string    `json:"description"`
	Tips        *string   `json:"tips,omitempty"`
}
