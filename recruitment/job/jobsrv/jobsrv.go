package jobsrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/applymint/pkg/cachex"
	"github.com/Abraxas-365/applymint/pkg/errx"
	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/pkg/logx"
	"github.com/Abraxas-365/applymint/pkg/validatex"
	"github.com/Abraxas-365/applymint/recruitment/job"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ApplicationCounter reports how many users interacted with a job's
// application link
type ApplicationCounter interface {
	CountByJob(ctx context.Context, jobID kernel.JobID) (int64, error)
}

// JobService provides business operations for jobs
type JobService struct {
	jobRepo      job.Repository
	assembler    *Assembler
	companies    CompanyReader
	domains      DomainReader
	skills       SkillReader
	applications ApplicationCounter
	cache        cachex.Cache
	similarTTL   time.Duration
	now          func() time.Time
}

// NewJobService creates a new instance of the job service. cache and
// applications may be nil.
func NewJobService(
	jobRepo job.Repository,
	companies CompanyReader,
	domains DomainReader,
	skills SkillReader,
	applications ApplicationCounter,
	cache cachex.Cache,
) *JobService {
	return &JobService{
		jobRepo:      jobRepo,
		assembler:    NewAssembler(companies, domains, skills),
		companies:    companies,
		domains:      domains,
		skills:       skills,
		applications: applications,
		cache:        cache,
		similarTTL:   cachex.SimilarJobsTTL,
		now:          time.Now,
	}
}

// WithClock replaces the time source; used by tests
func (s *JobService) WithClock(now func() time.Time) *JobService {
	s.now = now
	return s
}

// WithSimilarTTL sets how long similar-job lists stay cached
func (s *JobService) WithSimilarTTL(ttl time.Duration) *JobService {
	if ttl > 0 {
		s.similarTTL = ttl
	}
	return s
}

// GetJobsByIDs returns the assembled jobs that exist, in the order of ids.
// Inactive jobs are included.
func (s *JobService) GetJobsByIDs(ctx context.Context, ids []kernel.JobID) ([]job.JobResponse, error) {
	if len(ids) == 0 {
		return []job.JobResponse{}, nil
	}
	jobs, err := s.jobRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return s.assembler.Assemble(ctx, jobs)
}

// ============================================================================
// Public reads
// ============================================================================

// Search returns one page of jobs matching f
func (s *JobService) Search(ctx context.Context, f job.FilterOptions) (*job.PaginatedJobsResponse, error) {
	p := job.BuildPredicate(f, s.now())
	w := f.Window()
	page := kernel.PaginationOptions{Page: w.Skip/w.Take + 1, PageSize: w.Take}

	total, err := s.jobRepo.Count(ctx, p)
	if err != nil {
		return nil, err
	}

	var jobs []*job.Job
	if w.Skip < total {
		jobs, err = s.jobRepo.FindMany(ctx, p, f.Ordering(), w)
		if err != nil {
			return nil, err
		}
	}

	items, err := s.assembler.Assemble(ctx, jobs)
	if err != nil {
		return nil, err
	}
	return kernel.NewPaginated(items, page, total), nil
}

// ListAdminJobs is Search for the admin console; f may include inactive jobs
func (s *JobService) ListAdminJobs(ctx context.Context, f job.FilterOptions) (*job.PaginatedJobsResponse, error) {
	return s.Search(ctx, f)
}

// GetJobByID returns the assembled job, or nil when it does not exist
func (s *JobService) GetJobByID(ctx context.Context, jobID kernel.JobID) (*job.JobResponse, error) {
	j, err := s.jobRepo.GetByID(ctx, jobID)
	if errx.IsCode(err, job.CodeJobNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.assembler.AssembleOne(ctx, j)
}

// GetSimilar returns up to n active jobs sharing domains or skills with
// jobID. An unknown job has no similar jobs.
func (s *JobService) GetSimilar(ctx context.Context, jobID kernel.JobID, n int) ([]job.JobResponse, error) {
	n = job.ClampSimilarCount(n)
	if n == 0 {
		return []job.JobResponse{}, nil
	}

	return cachex.GetOrLoad(ctx, s.cache, cachex.SimilarJobsKey(jobID.String(), n), s.similarTTL,
		func(ctx context.Context) ([]job.JobResponse, error) {
			source, err := s.jobRepo.GetByID(ctx, jobID)
			if errx.IsCode(err, job.CodeJobNotFound) {
				return []job.JobResponse{}, nil
			}
			if err != nil {
				return nil, err
			}

			candidates, err := s.jobRepo.FindMany(ctx, job.SimilarCandidates(source),
				job.NewOrdering(job.SortByPostedDate, job.SortDesc), job.Window{})
			if err != nil {
				return nil, err
			}
			return s.assembler.Assemble(ctx, job.RankSimilar(source, candidates, n))
		})
}

// ApplicationLink returns the external link applicants are sent to
func (s *JobService) ApplicationLink(ctx context.Context, jobID kernel.JobID) (string, error) {
	j, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return "", err
	}
	return j.ApplicationLink, nil
}

// IncrementView counts a detail page view. Failures are logged, never returned.
func (s *JobService) IncrementView(ctx context.Context, jobID kernel.JobID) {
	if err := s.jobRepo.IncrementViewCount(ctx, jobID, 1); err != nil {
		logx.Warn("failed to increment view count", zap.String("job_id", jobID.String()), zap.Error(err))
	}
}

// IncrementClick counts an apply click. Failures are logged, never returned.
func (s *JobService) IncrementClick(ctx context.Context, jobID kernel.JobID) {
	if err := s.jobRepo.IncrementClickCount(ctx, jobID, 1); err != nil {
		logx.Warn("failed to increment click count", zap.String("job_id", jobID.String()), zap.Error(err))
	}
}

// ============================================================================
// Admin writes
// ============================================================================

// CreateJob creates a new job posting
func (s *JobService) CreateJob(ctx context.Context, req job.CreateJobRequest) (*job.JobResponse, error) {
	if err := validatex.Struct(req); err != nil {
		return nil, job.ErrValidationFailed().WithDetail("fields", validatex.Fields(err))
	}

	j, err := job.NewJob(kernel.NewJobID(uuid.NewString()), req, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, j); err != nil {
		return nil, err
	}

	if err := s.jobRepo.Create(ctx, j); err != nil {
		return nil, err
	}
	s.invalidateSimilar(ctx)

	logx.Info("job created", zap.String("job_id", j.ID.String()), zap.String("title", j.Title))
	return s.assembler.AssembleOne(ctx, j)
}

// UpdateJob applies a partial update
func (s *JobService) UpdateJob(ctx context.Context, jobID kernel.JobID, req job.UpdateJobRequest) (*job.JobResponse, error) {
	if err := validatex.Struct(req); err != nil {
		return nil, job.ErrValidationFailed().WithDetail("fields", validatex.Fields(err))
	}

	j, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := j.ApplyUpdate(req, s.now()); err != nil {
		return nil, err
	}
	if j.Title == "" || j.Description == "" || j.ApplicationLink == "" {
		return nil, job.ErrValidationFailed().WithDetail("fields", map[string]string{"_": "title, description and application_link are required"})
	}
	if err := s.checkReferences(ctx, j); err != nil {
		return nil, err
	}

	if err := s.jobRepo.Update(ctx, j); err != nil {
		return nil, err
	}
	s.invalidateSimilar(ctx)

	logx.Info("job updated", zap.String("job_id", j.ID.String()))
	return s.assembler.AssembleOne(ctx, j)
}

// DeleteJob removes a job and its links
func (s *JobService) DeleteJob(ctx context.Context, jobID kernel.JobID) error {
	if err := s.jobRepo.Delete(ctx, jobID); err != nil {
		return err
	}
	s.invalidateSimilar(ctx)
	logx.Info("job deleted", zap.String("job_id", jobID.String()))
	return nil
}

// SetJobActive lists or unlists a job
func (s *JobService) SetJobActive(ctx context.Context, jobID kernel.JobID, active bool) (*job.JobResponse, error) {
	j, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if active {
		if err := j.Activate(now); err != nil {
			return nil, err
		}
	} else {
		j.Deactivate(now)
	}

	if err := s.jobRepo.Update(ctx, j); err != nil {
		return nil, err
	}
	s.invalidateSimilar(ctx)
	return s.assembler.AssembleOne(ctx, j)
}

// GetJobStats reports engagement for a job
func (s *JobService) GetJobStats(ctx context.Context, jobID kernel.JobID) (*job.JobStatsResponse, error) {
	j, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	var applications int64
	if s.applications != nil {
		applications, err = s.applications.CountByJob(ctx, jobID)
		if err != nil {
			logx.Warn("failed to count applications", zap.String("job_id", jobID.String()), zap.Error(err))
			applications = 0
		}
	}

	now := s.now()
	stats := &job.JobStatsResponse{
		JobID:           j.ID,
		Title:           j.Title,
		IsActive:        j.IsActive,
		IsExpired:       j.IsExpired(now),
		ViewCount:       j.ViewCount,
		ClickCount:      j.ClickCount,
		Applications:    applications,
		DaysSincePosted: int(now.Sub(j.PostedDate).Hours() / 24),
		PostedDate:      j.PostedDate,
	}
	if j.ViewCount > 0 {
		stats.ClickThrough = float64(j.ClickCount) / float64(j.ViewCount)
	}
	return stats, nil
}

// SetShareImage stores the URLs of a rendered share card
func (s *JobService) SetShareImage(ctx context.Context, jobID kernel.JobID, imageURL, qrCodeURL string) error {
	return s.jobRepo.SetShareImage(ctx, jobID, imageURL, qrCodeURL, s.now())
}

// DeactivateExpired unlists every active job whose application deadline has passed
func (s *JobService) DeactivateExpired(ctx context.Context) (*job.DeactivateExpiredResponse, error) {
	now := s.now()
	n, err := s.jobRepo.DeactivateMatching(ctx, job.NewPredicate(job.DeadlinePassed(now)), now)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		s.invalidateSimilar(ctx)
		logx.Info("deactivated expired jobs", zap.Int64("count", n))
	}
	return &job.DeactivateExpiredResponse{Deactivated: n, RanAt: now}, nil
}

// ============================================================================
// Helper Methods
// ============================================================================

// checkReferences verifies the company, domains, subdomains and skills a
// job points at exist, and that each subdomain sits under a chosen domain
func (s *JobService) checkReferences(ctx context.Context, j *job.Job) error {
	companies, err := s.companies.GetCompaniesByIDs(ctx, []kernel.CompanyID{j.CompanyID})
	if err != nil {
		return err
	}
	if len(companies) == 0 {
		return job.ErrUnknownReference().WithDetail("company_id", j.CompanyID)
	}

	if len(j.DomainIDs) > 0 {
		domains, err := s.domains.GetDomainsByIDs(ctx, j.DomainIDs)
		if err != nil {
			return err
		}
		found := make(map[kernel.DomainID]struct{}, len(domains))
		for _, d := range domains {
			found[d.ID] = struct{}{}
		}
		for _, id := range j.DomainIDs {
			if _, ok := found[id]; !ok {
				return job.ErrUnknownReference().WithDetail("domain_id", id)
			}
		}
	}

	if len(j.SubdomainIDs) > 0 {
		subs, err := s.domains.GetSubdomainsByIDs(ctx, j.SubdomainIDs)
		if err != nil {
			return err
		}
		found := make(map[kernel.SubdomainID]kernel.DomainID, len(subs))
		for _, sub := range subs {
			found[sub.ID] = sub.DomainID
		}
		for _, id := range j.SubdomainIDs {
			parent, ok := found[id]
			if !ok {
				return job.ErrUnknownReference().WithDetail("subdomain_id", id)
			}
			if !j.HasDomain(parent) {
				return job.ErrSubdomainMismatch().
					WithDetail("subdomain_id", id).
					WithDetail("domain_id", parent)
			}
		}
	}

	if len(j.Skills) > 0 {
		skills, err := s.skills.GetSkillsByIDs(ctx, j.SkillIDs())
		if err != nil {
			return err
		}
		found := make(map[kernel.SkillID]struct{}, len(skills))
		for _, sk := range skills {
			found[sk.ID] = struct{}{}
		}
		for _, id := range j.SkillIDs() {
			if _, ok := found[id]; !ok {
				return job.ErrUnknownReference().WithDetail("skill_id", id)
			}
		}
	}
	return nil
}

func (s *JobService) invalidateSimilar(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePrefix(ctx, cachex.SimilarJobsPrefix()); err != nil {
		logx.Warn("failed to invalidate similar jobs cache", zap.Error(err))
	}
}
