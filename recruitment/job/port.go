package job

import (
	"context"
	"time"

	"github.com/Abraxas-365/applymint/pkg/kernel"
)

type Repository interface {
	// Create stores a new job with its domain, subdomain and skill links
	Create(ctx context.Context, job *Job) error

	// Update replaces a job and its links
	Update(ctx context.Context, job *Job) error

	// Delete removes a job; ErrJobNotFound when absent
	Delete(ctx context.Context, id kernel.JobID) error

	// GetByID returns ErrJobNotFound when absent
	GetByID(ctx context.Context, id kernel.JobID) (*Job, error)

	// GetByIDs returns the jobs that exist, in the order of ids
	GetByIDs(ctx context.Context, ids []kernel.JobID) ([]*Job, error)

	// Count returns how many jobs match p
	Count(ctx context.Context, p Predicate) (int, error)

	// FindMany returns the window of jobs matching p under ordering o
	FindMany(ctx context.Context, p Predicate, o Ordering, w Window) ([]*Job, error)

	// IncrementViewCount atomically adds n to the view counter
	IncrementViewCount(ctx context.Context, id kernel.JobID, n int64) error

	// IncrementClickCount atomically adds n to the click counter
	IncrementClickCount(ctx context.Context, id kernel.JobID, n int64) error

	// SetShareImage stores the share image and QR code URLs
	SetShareImage(ctx context.Context, id kernel.JobID, imageURL, qrCodeURL string, at time.Time) error

	// DeactivateMatching deactivates every active job matching p
	DeactivateMatching(ctx context.Context, p Predicate, at time.Time) (int64, error)

	// CountByCompany counts jobs referencing a company
	CountByCompany(ctx context.Context, companyID kernel.CompanyID) (int, error)
}
