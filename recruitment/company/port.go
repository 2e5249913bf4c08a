package company

import (
	"context"

	"github.com/Abraxas-365/applymint/pkg/kernel"
)

type Repository interface {
	// Create stores a new company; ErrCompanyAlreadyExists on a name clash
	Create(ctx context.Context, c *Company) error

	// Update replaces a company
	Update(ctx context.Context, c *Company) error

	// Delete removes a company by ID
	Delete(ctx context.Context, id kernel.CompanyID) error

	// GetByID returns ErrCompanyNotFound when absent
	GetByID(ctx context.Context, id kernel.CompanyID) (*Company, error)

	// GetByIDs returns the companies that exist; unknown ids are skipped
	GetByIDs(ctx context.Context, ids []kernel.CompanyID) ([]*Company, error)

	// List returns companies ordered by name
	List(ctx context.Context, opts kernel.PaginationOptions) (*kernel.Paginated[Company], error)
}

// JobCounter reports how many jobs reference a company
type JobCounter interface {
	CountByCompany(ctx context.Context, id kernel.CompanyID) (int, error)
}
