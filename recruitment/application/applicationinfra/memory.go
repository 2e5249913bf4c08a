package applicationinfra

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/recruitment/application"
)

type userJob struct {
	user kernel.UserID
	job  kernel.JobID
}

// MemoryApplicationRepository keeps applications in a map keyed by
// (user, job); used by tests and local runs
type MemoryApplicationRepository struct {
	mu     sync.Mutex
	byID   map[kernel.ApplicationID]*application.Application
	byPair map[userJob]kernel.ApplicationID
	err    error
}

func NewMemoryApplicationRepository() *MemoryApplicationRepository {
	return &MemoryApplicationRepository{
		byID:   make(map[kernel.ApplicationID]*application.Application),
		byPair: make(map[userJob]kernel.ApplicationID),
	}
}

// FailWith makes every subsequent call return err
func (r *MemoryApplicationRepository) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *MemoryApplicationRepository) RecordClick(_ context.Context, app *application.Application) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}

	key := userJob{user: app.UserID, job: app.JobID}
	if id, ok := r.byPair[key]; ok {
		stored := r.byID[id]
		stored.ClickedAt = app.ClickedAt
		stored.UpdatedAt = app.UpdatedAt
		return clone(stored), nil
	}
	stored := clone(app)
	r.byID[app.ID] = stored
	r.byPair[key] = app.ID
	return clone(stored), nil
}

func (r *MemoryApplicationRepository) GetByID(_ context.Context, id kernel.ApplicationID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	app, ok := r.byID[id]
	if !ok {
		return nil, application.ErrApplicationNotFound().WithDetail("application_id", id.String())
	}
	return clone(app), nil
}

func (r *MemoryApplicationRepository) UpdateStatus(_ context.Context, id kernel.ApplicationID, from, to application.ApplicationStatus, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	app, ok := r.byID[id]
	if !ok {
		return application.ErrApplicationNotFound().WithDetail("application_id", id.String())
	}
	if app.Status != from {
		return application.ErrStatusChanged().
			WithDetail("application_id", id.String()).
			WithDetail("expected", string(from))
	}
	app.Status = to
	app.StatusChangedAt = &at
	app.UpdatedAt = at
	return nil
}

func (r *MemoryApplicationRepository) ListByUser(_ context.Context, userID kernel.UserID, opts kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}

	var mine []application.Application
	for _, app := range r.byID {
		if app.UserID == userID {
			mine = append(mine, *clone(app))
		}
	}
	sort.Slice(mine, func(i, j int) bool {
		if !mine[i].ClickedAt.Equal(mine[j].ClickedAt) {
			return mine[i].ClickedAt.After(mine[j].ClickedAt)
		}
		return mine[i].ID < mine[j].ID
	})

	total := len(mine)
	start := min(opts.Offset(), total)
	end := min(start+opts.Limit(), total)
	return kernel.NewPaginated(mine[start:end], opts, total), nil
}

func (r *MemoryApplicationRepository) CountByJob(_ context.Context, jobID kernel.JobID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	var n int64
	for _, app := range r.byID {
		if app.JobID == jobID {
			n++
		}
	}
	return n, nil
}

func clone(app *application.Application) *application.Application {
	c := *app
	if app.StatusChangedAt != nil {
		t := *app.StatusChangedAt
		c.StatusChangedAt = &t
	}
	return &c
}
