package savedjob

import (
	"context"

	"github.com/Abraxas-365/applymint/pkg/kernel"
)

type Repository interface {
	// Save stores s; saving the same job twice keeps the first saved_at
	Save(ctx context.Context, s *SavedJob) error

	// Delete removes the bookmark; reports whether one existed
	Delete(ctx context.Context, userID kernel.UserID, jobID kernel.JobID) (bool, error)

	// Exists checks whether userID saved jobID
	Exists(ctx context.Context, userID kernel.UserID, jobID kernel.JobID) (bool, error)

	// ListByUser lists a user's bookmarks, most recently saved first
	ListByUser(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[SavedJob], error)
}
