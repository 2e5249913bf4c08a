package companyinfra

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/recruitment/company"
)

// MemoryCompanyRepository keeps companies in a map; used by tests and local runs
type MemoryCompanyRepository struct {
	mu        sync.RWMutex
	companies map[kernel.CompanyID]company.Company
}

func NewMemoryCompanyRepository() *MemoryCompanyRepository {
	return &MemoryCompanyRepository{companies: make(map[kernel.CompanyID]company.Company)}
}

func (r *MemoryCompanyRepository) Create(_ context.Context, c *company.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nameTaken(c.Name, c.ID) {
		return company.ErrCompanyAlreadyExists().WithDetail("name", c.Name)
	}
	r.companies[c.ID] = clone(c)
	return nil
}

func (r *MemoryCompanyRepository) Update(_ context.Context, c *company.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[c.ID]; !ok {
		return company.ErrCompanyNotFound()
	}
	if r.nameTaken(c.Name, c.ID) {
		return company.ErrCompanyAlreadyExists().WithDetail("name", c.Name)
	}
	r.companies[c.ID] = clone(c)
	return nil
}

func (r *MemoryCompanyRepository) Delete(_ context.Context, id kernel.CompanyID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[id]; !ok {
		return company.ErrCompanyNotFound()
	}
	delete(r.companies, id)
	return nil
}

func (r *MemoryCompanyRepository) GetByID(_ context.Context, id kernel.CompanyID) (*company.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.companies[id]
	if !ok {
		return nil, company.ErrCompanyNotFound().WithDetail("company_id", id.String())
	}
	out := clone(&c)
	return &out, nil
}

func (r *MemoryCompanyRepository) GetByIDs(_ context.Context, ids []kernel.CompanyID) ([]*company.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*company.Company, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.companies[id]; ok {
			cp := clone(&c)
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MemoryCompanyRepository) List(_ context.Context, opts kernel.PaginationOptions) (*kernel.Paginated[company.Company], error) {
	r.mu.RLock()
	all := make([]company.Company, 0, len(r.companies))
	for _, c := range r.companies {
		all = append(all, clone(&c))
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].ID < all[j].ID
	})

	start := opts.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + opts.Limit()
	if end > len(all) {
		end = len(all)
	}
	return kernel.NewPaginated(all[start:end], opts, len(all)), nil
}

func (r *MemoryCompanyRepository) nameTaken(name string, except kernel.CompanyID) bool {
	for id, c := range r.companies {
		if id != except && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

func clone(c *company.Company) company.Company {
	out := *c
	out.Industry = append([]string(nil), c.Industry...)
	return out
}
