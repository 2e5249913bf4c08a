package savedjobsrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/pkg/logx"
	"github.com/Abraxas-365/applymint/recruitment/job"
	"github.com/Abraxas-365/applymint/recruitment/savedjob"
	"go.uber.org/zap"
)

// JobLookup resolves saved job ids to assembled jobs
type JobLookup interface {
	GetJobByID(ctx context.Context, jobID kernel.JobID) (*job.JobResponse, error)
	GetJobsByIDs(ctx context.Context, ids []kernel.JobID) ([]job.JobResponse, error)
}

// SavedJobService manages a user's bookmarked jobs
type SavedJobService struct {
	savedRepo savedjob.Repository
	jobs      JobLookup
	now       func() time.Time
}

func NewSavedJobService(savedRepo savedjob.Repository, jobs JobLookup) *SavedJobService {
	return &SavedJobService{
		savedRepo: savedRepo,
		jobs:      jobs,
		now:       time.Now,
	}
}

// WithClock replaces the time source; used by tests
func (s *SavedJobService) WithClock(now func() time.Time) *SavedJobService {
	s.now = now
	return s
}

// Save bookmarks jobID for userID. Saving twice is a no-op.
func (s *SavedJobService) Save(ctx context.Context, userID kernel.UserID, jobID kernel.JobID) (*savedjob.SavedStatusResponse, error) {
	if userID.IsEmpty() {
		return nil, savedjob.ErrUserRequired()
	}

	j, err := s.jobs.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, job.ErrJobNotFound().WithDetail("job_id", jobID.String())
	}

	if err := s.savedRepo.Save(ctx, &savedjob.SavedJob{UserID: userID, JobID: jobID, SavedAt: s.now()}); err != nil {
		return nil, err
	}

	logx.Debug("job saved", zap.String("user_id", userID.String()), zap.String("job_id", jobID.String()))
	return &savedjob.SavedStatusResponse{JobID: jobID, Saved: true}, nil
}

// Unsave removes a bookmark; removing a missing one is not an error
func (s *SavedJobService) Unsave(ctx context.Context, userID kernel.UserID, jobID kernel.JobID) error {
	if userID.IsEmpty() {
		return savedjob.ErrUserRequired()
	}
	_, err := s.savedRepo.Delete(ctx, userID, jobID)
	return err
}

// IsSaved reports whether userID bookmarked jobID
func (s *SavedJobService) IsSaved(ctx context.Context, userID kernel.UserID, jobID kernel.JobID) (*savedjob.SavedStatusResponse, error) {
	if userID.IsEmpty() {
		return nil, savedjob.ErrUserRequired()
	}
	saved, err := s.savedRepo.Exists(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}
	return &savedjob.SavedStatusResponse{JobID: jobID, Saved: saved}, nil
}

// List returns one page of userID's bookmarks with their jobs. A job deleted
// after it was saved is listed without its details.
func (s *SavedJobService) List(ctx context.Context, userID kernel.UserID, opts kernel.PaginationOptions) (*savedjob.PaginatedSavedJobsResponse, error) {
	if userID.IsEmpty() {
		return nil, savedjob.ErrUserRequired()
	}

	page, err := s.savedRepo.ListByUser(ctx, userID, opts)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.JobID, 0, len(page.Items))
	for _, item := range page.Items {
		ids = append(ids, item.JobID)
	}
	jobs, err := s.jobs.GetJobsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[kernel.JobID]*job.JobResponse, len(jobs))
	for i := range jobs {
		byID[jobs[i].ID] = &jobs[i]
	}

	return kernel.MapPaginated(page, func(item savedjob.SavedJob) savedjob.SavedJobResponse {
		return savedjob.SavedJobResponse{
			JobID:   item.JobID,
			SavedAt: item.SavedAt,
			Job:     byID[item.JobID],
		}
	}), nil
}
