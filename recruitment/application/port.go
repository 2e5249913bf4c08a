package application

import (
	"context"
	"time"

	"github.com/Abraxas-365/applymint/pkg/kernel"
)

type Repository interface {
	// RecordClick inserts app, or refreshes clicked_at of the existing
	// application for the same (user, job). Returns the stored row.
	RecordClick(ctx context.Context, app *Application) (*Application, error)

	// GetByID retrieves an application by ID
	GetByID(ctx context.Context, id kernel.ApplicationID) (*Application, error)

	// UpdateStatus moves the application from status from to status to.
	// Fails with ErrStatusChanged when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id kernel.ApplicationID, from, to ApplicationStatus, at time.Time) error

	// ListByUser retrieves a user's applications, most recent click first
	ListByUser(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[Application], error)

	// CountByJob counts applications for a specific job
	CountByJob(ctx context.Context, jobID kernel.JobID) (int64, error)
}
