package domainsrv

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/applymint/pkg/cachex"
	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/pkg/logx"
	"github.com/Abraxas-365/applymint/pkg/validatex"
	"github.com/Abraxas-365/applymint/recruitment/domain"
	"github.com/google/uuid"
)

// DomainService manages the domain/subdomain taxonomy
type DomainService struct {
	domainRepo domain.Repository
	cache      cachex.Cache
	popularTTL time.Duration
}

// NewDomainService creates a new domain service. cache may be nil.
func NewDomainService(domainRepo domain.Repository, cache cachex.Cache, popularTTL time.Duration) *DomainService {
	if popularTTL <= 0 {
		popularTTL = cachex.PopularDomainTTL
	}
	return &DomainService{
		domainRepo: domainRepo,
		cache:      cache,
		popularTTL: popularTTL,
	}
}

// ListDomains returns every domain with its subdomains, ordered by name
func (s *DomainService) ListDomains(ctx context.Context) ([]*domain.Domain, error) {
	return s.domainRepo.List(ctx)
}

// GetDomain retrieves a domain by ID
func (s *DomainService) GetDomain(ctx context.Context, id kernel.DomainID) (*domain.Domain, error) {
	d, err := s.domainRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// GetDomainByName retrieves a domain by its exact name
func (s *DomainService) GetDomainByName(ctx context.Context, name string) (*domain.Domain, error) {
	return s.domainRepo.GetByName(ctx, strings.TrimSpace(name))
}

// GetDomainsByIDs retrieves several domains, skipping unknown ids
func (s *DomainService) GetDomainsByIDs(ctx context.Context, ids []kernel.DomainID) ([]*domain.Domain, error) {
	return s.domainRepo.GetByIDs(ctx, ids)
}

// GetSubdomainsByIDs retrieves several subdomains, skipping unknown ids
func (s *DomainService) GetSubdomainsByIDs(ctx context.Context, ids []kernel.SubdomainID) ([]*domain.Subdomain, error) {
	return s.domainRepo.GetSubdomainsByIDs(ctx, ids)
}

// CreateDomain creates a new domain
func (s *DomainService) CreateDomain(ctx context.Context, req domain.CreateDomainRequest) (*domain.Domain, error) {
	if err := validatex.Struct(req); err != nil {
		return nil, domain.ErrValidationFailed().WithDetail("fields", validatex.Fields(err))
	}

	now := time.Now()
	d := &domain.Domain{
		ID:          kernel.NewDomainID(uuid.NewString()),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Subdomains:  []domain.Subdomain{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.domainRepo.Create(ctx, d); err != nil {
		return nil, err
	}

	s.invalidatePopular(ctx)
	return d, nil
}

// UpdateDomain renames or re-describes a domain
func (s *DomainService) UpdateDomain(ctx context.Context, id kernel.DomainID, req domain.UpdateDomainRequest) (*domain.Domain, error) {
	if err := validatex.Struct(req); err != nil {
		return nil, domain.ErrValidationFailed().WithDetail("fields", validatex.Fields(err))
	}

	d, err := s.domainRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		d.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		d.Description = req.Description
	}
	d.UpdatedAt = time.Now()

	if err := s.domainRepo.Update(ctx, d); err != nil {
		return nil, err
	}

	s.invalidatePopular(ctx)
	return d, nil
}

// DeleteDomain removes a domain and its subdomains
func (s *DomainService) DeleteDomain(ctx context.Context, id kernel.DomainID) error {
	if err := s.domainRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidatePopular(ctx)
	return nil
}

// CreateSubdomain adds a subdomain under domainID
func (s *DomainService) CreateSubdomain(ctx context.Context, domainID kernel.DomainID, req domain.CreateSubdomainRequest) (*domain.Subdomain, error) {
	if err := validatex.Struct(req); err != nil {
		return nil, domain.ErrValidationFailed().WithDetail("fields", validatex.Fields(err))
	}
	if _, err := s.domainRepo.GetByID(ctx, domainID); err != nil {
		return nil, err
	}

	now := time.Now()
	sub := &domain.Subdomain{
		ID:          kernel.NewSubdomainID(uuid.NewString()),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		DomainID:    domainID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.domainRepo.CreateSubdomain(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// DeleteSubdomain removes a subdomain
func (s *DomainService) DeleteSubdomain(ctx context.Context, id kernel.SubdomainID) error {
	return s.domainRepo.DeleteSubdomain(ctx, id)
}

// PopularDomains returns the domains with the most active jobs
func (s *DomainService) PopularDomains(ctx context.Context, limit int) ([]domain.PopularDomain, error) {
	limit = domain.ClampPopularLimit(limit)
	return cachex.GetOrLoad(ctx, s.cache, cachex.PopularDomainsKey(limit), s.popularTTL,
		func(ctx context.Context) ([]domain.PopularDomain, error) {
			return s.domainRepo.Popular(ctx, limit)
		})
}

func (s *DomainService) invalidatePopular(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePrefix(ctx, cachex.PopularDomainsPrefix()); err != nil {
		logx.Warnf("failed to invalidate popular domains cache: %v", err)
	}
}
