package dto

// CreateCompanyRequest is the admin company-creation payload.
type CreateCompanyRequest struct {
	Name        string  `json:"name" binding:"required"`
	Website     string  `json:"website" binding:"required"`
	Location    string  `json:"location" binding:"required"`
	Description *string `json:"description"`
	LogoURL     *string `json:"logo_url"`
}

// UpdateCompanyRequest is the admin company-update payload.
type UpdateCompanyRequest struct {
	Name        string  `json:"name" binding:"required"`
	Website     string  `json:"website" binding:"required"`
	Location    string  `json:"location" binding:"required"`
	Description *string `json:"description"`
	LogoURL     *string `json:"logo_url"`
}

// ListParams carries pagination and search filters for list endpoints.
type ListParams struct {
	Search   string
	Page     int
	PageSize int
}

// Normalize clamps pagination values to sane bounds.
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
}

// Offset returns the SQL offset for the current page.
func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}
