package domain

import (
	"context"

	"github.com/Abraxas-365/applymint/pkg/kernel"
)

type Repository interface {
	// Create stores a domain; ErrDomainAlreadyExists on a name clash
	Create(ctx context.Context, d *Domain) error

	// Update replaces name and description
	Update(ctx context.Context, d *Domain) error

	// Delete removes a domain and its subdomains
	Delete(ctx context.Context, id kernel.DomainID) error

	// GetByID returns the domain with its subdomains
	GetByID(ctx context.Context, id kernel.DomainID) (*Domain, error)

	// GetByName returns the domain with its subdomains
	GetByName(ctx context.Context, name string) (*Domain, error)

	// GetByIDs returns the domains that exist, with subdomains
	GetByIDs(ctx context.Context, ids []kernel.DomainID) ([]*Domain, error)

	// List returns every domain with subdomains, ordered by name
	List(ctx context.Context) ([]*Domain, error)

	// CreateSubdomain stores a subdomain under its domain
	CreateSubdomain(ctx context.Context, s *Subdomain) error

	// DeleteSubdomain removes a subdomain
	DeleteSubdomain(ctx context.Context, id kernel.SubdomainID) error

	// GetSubdomainsByIDs returns the subdomains that exist
	GetSubdomainsByIDs(ctx context.Context, ids []kernel.SubdomainID) ([]*Subdomain, error)

	// Popular returns domains ordered by active job count, most first
	Popular(ctx context.Context, limit int) ([]PopularDomain, error)
}
