package models

import "time"

// Company represents an organization students prepare for.
type Company struct {
	CompanyID   int64     `json:"company_id"`
	Name        string    `json:"name"`
	Website     string    `json:"website"`
	Location    string    `json:"location"`
	Description *string   `json:"description,omitempty"`
	LogoURL     *string   `json:"logo_url,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}
