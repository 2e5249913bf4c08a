package savedjobinfra

import (
	"context"
	"sort"
	"sync"

	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/recruitment/savedjob"
)

type key struct {
	user kernel.UserID
	job  kernel.JobID
}

// MemorySavedJobRepository keeps bookmarks in a map; used by tests and local runs
type MemorySavedJobRepository struct {
	mu    sync.RWMutex
	saved map[key]savedjob.SavedJob
}

func NewMemorySavedJobRepository() *MemorySavedJobRepository {
	return &MemorySavedJobRepository{saved: make(map[key]savedjob.SavedJob)}
}

func (r *MemorySavedJobRepository) Save(_ context.Context, s *savedjob.SavedJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{s.UserID, s.JobID}
	if _, ok := r.saved[k]; !ok {
		r.saved[k] = *s
	}
	return nil
}

func (r *MemorySavedJobRepository) Delete(_ context.Context, userID kernel.UserID, jobID kernel.JobID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{userID, jobID}
	_, ok := r.saved[k]
	delete(r.saved, k)
	return ok, nil
}

func (r *MemorySavedJobRepository) Exists(_ context.Context, userID kernel.UserID, jobID kernel.JobID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.saved[key{userID, jobID}]
	return ok, nil
}

func (r *MemorySavedJobRepository) ListByUser(_ context.Context, userID kernel.UserID, opts kernel.PaginationOptions) (*kernel.Paginated[savedjob.SavedJob], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var mine []savedjob.SavedJob
	for k, s := range r.saved {
		if k.user == userID {
			mine = append(mine, s)
		}
	}
	sort.Slice(mine, func(i, j int) bool {
		if !mine[i].SavedAt.Equal(mine[j].SavedAt) {
			return mine[i].SavedAt.After(mine[j].SavedAt)
		}
		return mine[i].JobID < mine[j].JobID
	})

	total := len(mine)
	start := min(opts.Offset(), total)
	end := min(start+opts.Limit(), total)
	return kernel.NewPaginated(mine[start:end], opts, total), nil
}
