package jobinfra

import (
	"context"
	"sync"
	"time"

	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/recruitment/job"
)

// MemoryJobRepository evaluates predicates in memory with the same
// semantics the Postgres adapter compiles to SQL. Used by tests and local runs.
type MemoryJobRepository struct {
	mu           sync.RWMutex
	jobs         map[kernel.JobID]*job.Job
	companyNames map[kernel.CompanyID]string
	domainNames  map[kernel.DomainID]string
	skillNames   map[kernel.SkillID]string
	err          error
}

func NewMemoryJobRepository() *MemoryJobRepository {
	return &MemoryJobRepository{
		jobs:         make(map[kernel.JobID]*job.Job),
		companyNames: make(map[kernel.CompanyID]string),
		domainNames:  make(map[kernel.DomainID]string),
		skillNames:   make(map[kernel.SkillID]string),
	}
}

// PutCompanyName registers the name text search matches against
func (r *MemoryJobRepository) PutCompanyName(id kernel.CompanyID, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.companyNames[id] = name
}

// PutDomainName registers the name domain filters match against
func (r *MemoryJobRepository) PutDomainName(id kernel.DomainID, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.domainNames[id] = name
}

// PutSkillName registers the name skill filters match against
func (r *MemoryJobRepository) PutSkillName(id kernel.SkillID, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skillNames[id] = name
}

// FailWith makes every call return err until it is called with nil
func (r *MemoryJobRepository) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *MemoryJobRepository) relations(j *job.Job) job.Relations {
	return job.Relations{
		CompanyName: r.companyNames[j.CompanyID],
		DomainNames: r.domainNames,
		SkillNames:  r.skillNames,
	}
}

func (r *MemoryJobRepository) Create(_ context.Context, j *job.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, exists := r.jobs[j.ID]; exists {
		return job.ErrJobAlreadyExists().WithDetail("job_id", j.ID)
	}
	r.jobs[j.ID] = j.Clone()
	return nil
}

func (r *MemoryJobRepository) Update(_ context.Context, j *job.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	existing, ok := r.jobs[j.ID]
	if !ok {
		return job.ErrJobNotFound().WithDetail("job_id", j.ID)
	}
	stored := j.Clone()
	// counters only move through the increment methods
	stored.ViewCount = existing.ViewCount
	stored.ClickCount = existing.ClickCount
	r.jobs[j.ID] = stored
	return nil
}

func (r *MemoryJobRepository) Delete(_ context.Context, id kernel.JobID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.jobs[id]; !ok {
		return job.ErrJobNotFound().WithDetail("job_id", id)
	}
	delete(r.jobs, id)
	return nil
}

func (r *MemoryJobRepository) GetByID(_ context.Context, id kernel.JobID) (*job.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.err != nil {
		return nil, r.err
	}
	j, ok := r.jobs[id]
	if !ok {
		return nil, job.ErrJobNotFound().WithDetail("job_id", id)
	}
	return j.Clone(), nil
}

func (r *MemoryJobRepository) GetByIDs(_ context.Context, ids []kernel.JobID) ([]*job.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.err != nil {
		return nil, r.err
	}
	seen := make(map[kernel.JobID]struct{}, len(ids))
	out := make([]*job.Job, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if j, ok := r.jobs[id]; ok {
			out = append(out, j.Clone())
		}
	}
	return out, nil
}

func (r *MemoryJobRepository) matching(p job.Predicate) []*job.Job {
	out := make([]*job.Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		if p.Matches(j, r.relations(j)) {
			out = append(out, j)
		}
	}
	return out
}

func (r *MemoryJobRepository) Count(_ context.Context, p job.Predicate) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.err != nil {
		return 0, r.err
	}
	return len(r.matching(p)), nil
}

func (r *MemoryJobRepository) FindMany(_ context.Context, p job.Predicate, o job.Ordering, w job.Window) ([]*job.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.err != nil {
		return nil, r.err
	}
	matched := r.matching(p)
	job.SortJobs(matched, o)
	if w.Take > 0 {
		matched = job.Paginate(matched, w)
	}

	out := make([]*job.Job, 0, len(matched))
	for _, j := range matched {
		out = append(out, j.Clone())
	}
	return out, nil
}

func (r *MemoryJobRepository) IncrementViewCount(_ context.Context, id kernel.JobID, n int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	j, ok := r.jobs[id]
	if !ok {
		return job.ErrJobNotFound().WithDetail("job_id", id)
	}
	j.ViewCount += n
	return nil
}

func (r *MemoryJobRepository) IncrementClickCount(_ context.Context, id kernel.JobID, n int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	j, ok := r.jobs[id]
	if !ok {
		return job.ErrJobNotFound().WithDetail("job_id", id)
	}
	j.ClickCount += n
	return nil
}

func (r *MemoryJobRepository) SetShareImage(_ context.Context, id kernel.JobID, imageURL, qrCodeURL string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	j, ok := r.jobs[id]
	if !ok {
		return job.ErrJobNotFound().WithDetail("job_id", id)
	}
	j.SetShareImage(imageURL, qrCodeURL, at)
	return nil
}

func (r *MemoryJobRepository) DeactivateMatching(_ context.Context, p job.Predicate, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	var n int64
	for _, j := range r.matching(p.And(job.IsActive())) {
		j.Deactivate(at)
		n++
	}
	return n, nil
}

func (r *MemoryJobRepository) CountByCompany(_ context.Context, companyID kernel.CompanyID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.err != nil {
		return 0, r.err
	}
	n := 0
	for _, j := range r.jobs {
		if j.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

// ActiveDomainCounts counts active jobs per domain; it plugs into the
// in-memory domain repository's popularity ranking
func (r *MemoryJobRepository) ActiveDomainCounts(_ context.Context) (map[kernel.DomainID]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.err != nil {
		return nil, r.err
	}
	counts := make(map[kernel.DomainID]int)
	for _, j := range r.jobs {
		if !j.IsActive {
			continue
		}
		seen := make(map[kernel.DomainID]struct{}, len(j.DomainIDs))
		for _, d := range j.DomainIDs {
			if _, dup := seen[d]; !dup {
				seen[d] = struct{}{}
				counts[d]++
			}
		}
	}
	return counts, nil
}

// ActiveSkillCounts counts active jobs per skill
func (r *MemoryJobRepository) ActiveSkillCounts(_ context.Context) (map[kernel.SkillID]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.err != nil {
		return nil, r.err
	}
	counts := make(map[kernel.SkillID]int)
	for _, j := range r.jobs {
		if !j.IsActive {
			continue
		}
		seen := make(map[kernel.SkillID]struct{}, len(j.Skills))
		for _, s := range j.Skills {
			if _, dup := seen[s.SkillID]; !dup {
				seen[s.SkillID] = struct{}{}
				counts[s.SkillID]++
			}
		}
	}
	return counts, nil
}
