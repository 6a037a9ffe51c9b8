package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/placenet/portal/internal/app/models"
	"github.com/placenet/portal/internal/app/models/dto"
	"github.com/placenet/portal/internal/app/repositories"
)

// CompanyService handles company operations
type CompanyService struct {
	companyRepo *repositories.CompanyRepository
	logger      zerolog.Logger
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companyRepo *repositories.CompanyRepository, logger zerolog.Logger) *CompanyService {
	return &CompanyService{companyRepo: companyRepo, logger: logger}
}

// Create creates a company on behalf of an admin.
func (s *CompanyService) Create(ctx context.Context, createdBy string, req *dto.CreateCompanyRequest) (*models.Company, error) {
	company := &models.Company{
		Name:        req.Name,
		Website:     req.Website,
		Location:    req.Location,
		Description: req.Description,
		LogoURL:     req.LogoURL,
		CreatedBy:   createdBy,
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("companyID", company.CompanyID).Str("name", company.Name).Msg("Company created")
	return company, nil
}

// List returns companies with pagination and optional search.
func (s *CompanyService) List(ctx context.Context, params dto.ListParams) ([]models.Company, int64, error) {
	return s.companyRepo.GetAll(ctx, params)
}

// Get returns one company by id.
func (s *CompanyService) Get(ctx context.Context, id int64) (*models.Company, error) {
	return s.companyRepo.GetByID(ctx, id)
}

// Update replaces a company's editable fields.
func (s *CompanyService) Update(ctx context.Context, id int64, req *dto.UpdateCompanyRequest) (*models.Company, error) {
	company := &models.Company{
		CompanyID:   id,
		Name:        req.Name,
		Website:     req.Website,
		Location:    req.Location,
		Description: req.Description,
		LogoURL:     req.LogoURL,
	}

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}
	return s.companyRepo.GetByID(ctx, id)
}

// Delete removes a company; its reviews and rounds cascade away.
func (s *CompanyService) Delete(ctx context.Context, id int64) error {
	if err := s.companyRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("companyID", id).Msg("Company deleted")
	return nil
}
