package companysrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/pkg/logx"
	"github.com/Abraxas-365/applymint/pkg/validatex"
	"github.com/Abraxas-365/applymint/recruitment/company"
	"github.com/google/uuid"
)

// CompanyService provides business operations for companies
type CompanyService struct {
	companyRepo company.Repository
	jobs        company.JobCounter
}

// NewCompanyService creates a new instance of the company service
func NewCompanyService(companyRepo company.Repository, jobs company.JobCounter) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		jobs:        jobs,
	}
}

// CreateCompany creates a new company
func (s *CompanyService) CreateCompany(ctx context.Context, req company.CreateCompanyRequest) (*company.Company, error) {
	if err := validatex.Struct(req); err != nil {
		return nil, company.ErrValidationFailed().WithDetail("fields", validatex.Fields(err))
	}

	c, err := company.NewCompany(kernel.NewCompanyID(uuid.NewString()), req, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.companyRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	logx.Infof("company created: %s (%s)", c.Name, c.ID)
	return c, nil
}

// GetCompany retrieves a company by ID
func (s *CompanyService) GetCompany(ctx context.Context, id kernel.CompanyID) (*company.Company, error) {
	return s.companyRepo.GetByID(ctx, id)
}

// GetCompaniesByIDs retrieves several companies at once, skipping unknown ids
func (s *CompanyService) GetCompaniesByIDs(ctx context.Context, ids []kernel.CompanyID) ([]*company.Company, error) {
	return s.companyRepo.GetByIDs(ctx, ids)
}

// ListCompanies lists companies ordered by name
func (s *CompanyService) ListCompanies(ctx context.Context, opts kernel.PaginationOptions) (*kernel.Paginated[company.Company], error) {
	return s.companyRepo.List(ctx, opts)
}

// UpdateCompany applies a partial update
func (s *CompanyService) UpdateCompany(ctx context.Context, id kernel.CompanyID, req company.UpdateCompanyRequest) (*company.Company, error) {
	if err := validatex.Struct(req); err != nil {
		return nil, company.ErrValidationFailed().WithDetail("fields", validatex.Fields(err))
	}

	c, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.ApplyUpdate(req, time.Now()); err != nil {
		return nil, err
	}
	if c.Name == "" {
		return nil, company.ErrValidationFailed().WithDetail("fields", map[string]string{"name": "required"})
	}

	if err := s.companyRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCompany removes a company that no job references
func (s *CompanyService) DeleteCompany(ctx context.Context, id kernel.CompanyID) error {
	if _, err := s.companyRepo.GetByID(ctx, id); err != nil {
		return err
	}

	n, err := s.jobs.CountByCompany(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return company.ErrCompanyHasJobs().
			WithDetail("company_id", id.String()).
			WithDetail("jobs", n)
	}

	if err := s.companyRepo.Delete(ctx, id); err != nil {
		return err
	}

	logx.Infof("company deleted: %s", id)
	return nil
}
