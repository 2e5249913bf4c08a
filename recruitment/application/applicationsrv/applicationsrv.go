package applicationsrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/pkg/logx"
	"github.com/Abraxas-365/applymint/pkg/validatex"
	"github.com/Abraxas-365/applymint/recruitment/application"
	"github.com/Abraxas-365/applymint/recruitment/job"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FallbackRedirect is where apply clicks land when the job's link cannot
// be resolved
const FallbackRedirect = "/jobs"

// JobTracker is the part of the job service apply tracking depends on
type JobTracker interface {
	IncrementClick(ctx context.Context, jobID kernel.JobID)
	ApplicationLink(ctx context.Context, jobID kernel.JobID) (string, error)
	GetJobsByIDs(ctx context.Context, ids []kernel.JobID) ([]job.JobResponse, error)
}

// ApplicationService provides business operations for applications
type ApplicationService struct {
	applicationRepo application.Repository
	jobs            JobTracker
	now             func() time.Time
}

// NewApplicationService creates a new instance of the application service
func NewApplicationService(applicationRepo application.Repository, jobs JobTracker) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		jobs:            jobs,
		now:             time.Now,
	}
}

// WithClock replaces the time source; used by tests
func (s *ApplicationService) WithClock(now func() time.Time) *ApplicationService {
	s.now = now
	return s
}

// RecordClick records that userID followed jobID's application link. The
// first click creates a CLICKED application; later clicks only refresh it.
func (s *ApplicationService) RecordClick(ctx context.Context, userID kernel.UserID, jobID kernel.JobID) (*application.Application, error) {
	if userID.IsEmpty() {
		return nil, application.ErrInsufficientPermissions().WithDetail("reason", "sign in to track applications")
	}
	if jobID.IsEmpty() {
		return nil, application.ErrInvalidRequest().WithDetail("job_id", "required")
	}

	click := application.NewClick(kernel.NewApplicationID(uuid.NewString()), userID, jobID, s.now())
	return s.applicationRepo.RecordClick(ctx, click)
}

// TrackApply counts an apply click and returns where to send the caller.
// Nothing here fails the request: errors are logged and the fallback
// redirect is used when the link is unknown.
func (s *ApplicationService) TrackApply(ctx context.Context, userID kernel.UserID, jobID kernel.JobID) string {
	s.jobs.IncrementClick(ctx, jobID)

	link, err := s.jobs.ApplicationLink(ctx, jobID)
	if err != nil {
		logx.Warn("failed to resolve application link",
			zap.String("job_id", jobID.String()),
			zap.Error(err),
		)
		return FallbackRedirect
	}

	if !userID.IsEmpty() {
		if _, err := s.RecordClick(ctx, userID, jobID); err != nil {
			logx.Warn("failed to record application click",
				zap.String("job_id", jobID.String()),
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
		}
	}

	if link == "" {
		return FallbackRedirect
	}
	return link
}

// UpdateStatus moves one of userID's applications to a new status.
// Applications owned by someone else are reported as not found.
func (s *ApplicationService) UpdateStatus(ctx context.Context, userID kernel.UserID, id kernel.ApplicationID, req application.UpdateStatusRequest) (*application.ApplicationResponse, error) {
	if err := validatex.Struct(req); err != nil {
		return nil, application.ErrValidationFailed().WithDetail("fields", validatex.Fields(err))
	}
	status, ok := application.ParseStatus(req.Status)
	if !ok {
		return nil, application.ErrValidationFailed().WithDetail("fields", map[string]string{"status": "oneof"})
	}

	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !app.BelongsTo(userID) {
		return nil, application.ErrApplicationNotFound().WithDetail("application_id", id.String())
	}

	now := s.now()
	from := app.Status
	if err := app.UpdateStatus(status, now); err != nil {
		return nil, err
	}
	if err := s.applicationRepo.UpdateStatus(ctx, id, from, status, now); err != nil {
		return nil, err
	}

	logx.Info("application status updated",
		zap.String("application_id", id.String()),
		zap.String("status", string(status)),
	)

	resp := app.ToResponse()
	return &resp, nil
}

// ListMine lists userID's applications, each with its job when it still exists
func (s *ApplicationService) ListMine(ctx context.Context, userID kernel.UserID, opts kernel.PaginationOptions) (*application.PaginatedApplicationsResponse, error) {
	page, err := s.applicationRepo.ListByUser(ctx, userID, opts)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.JobID, 0, len(page.Items))
	for _, app := range page.Items {
		ids = append(ids, app.JobID)
	}
	jobs, err := s.jobs.GetJobsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[kernel.JobID]*job.JobResponse, len(jobs))
	for i := range jobs {
		byID[jobs[i].ID] = &jobs[i]
	}

	return kernel.MapPaginated(page, func(app application.Application) application.ApplicationResponse {
		resp := app.ToResponse()
		resp.Job = byID[app.JobID]
		return resp
	}), nil
}

// CountByJob counts the applications recorded for a job
func (s *ApplicationService) CountByJob(ctx context.Context, jobID kernel.JobID) (int64, error) {
	return s.applicationRepo.CountByJob(ctx, jobID)
}
