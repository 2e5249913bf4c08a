package domaininfra

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/recruitment/domain"
)

// ActiveJobCounter reports, per domain, how many active jobs it has
type ActiveJobCounter func(ctx context.Context) (map[kernel.DomainID]int, error)

// MemoryDomainRepository keeps the taxonomy in maps; used by tests and local runs
type MemoryDomainRepository struct {
	mu         sync.RWMutex
	domains    map[kernel.DomainID]domain.Domain
	subdomains map[kernel.SubdomainID]domain.Subdomain
	activeJobs ActiveJobCounter
}

func NewMemoryDomainRepository() *MemoryDomainRepository {
	return &MemoryDomainRepository{
		domains:    make(map[kernel.DomainID]domain.Domain),
		subdomains: make(map[kernel.SubdomainID]domain.Subdomain),
	}
}

// SetActiveJobCounter wires the source Popular ranks by
func (r *MemoryDomainRepository) SetActiveJobCounter(fn ActiveJobCounter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activeJobs = fn
}

func (r *MemoryDomainRepository) Create(_ context.Context, d *domain.Domain) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.domains {
		if strings.EqualFold(existing.Name, d.Name) {
			return domain.ErrDomainAlreadyExists().WithDetail("name", d.Name)
		}
	}
	stored := *d
	stored.Subdomains = nil
	r.domains[d.ID] = stored
	return nil
}

func (r *MemoryDomainRepository) Update(_ context.Context, d *domain.Domain) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.domains[d.ID]
	if !ok {
		return domain.ErrDomainNotFound()
	}
	for id, other := range r.domains {
		if id != d.ID && strings.EqualFold(other.Name, d.Name) {
			return domain.ErrDomainAlreadyExists().WithDetail("name", d.Name)
		}
	}
	existing.Name = d.Name
	existing.Description = d.Description
	existing.UpdatedAt = d.UpdatedAt
	r.domains[d.ID] = existing
	return nil
}

func (r *MemoryDomainRepository) Delete(_ context.Context, id kernel.DomainID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.domains[id]; !ok {
		return domain.ErrDomainNotFound()
	}
	delete(r.domains, id)
	for sid, s := range r.subdomains {
		if s.DomainID == id {
			delete(r.subdomains, sid)
		}
	}
	return nil
}

func (r *MemoryDomainRepository) GetByID(_ context.Context, id kernel.DomainID) (*domain.Domain, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.domains[id]
	if !ok {
		return nil, domain.ErrDomainNotFound()
	}
	return r.assemble(d), nil
}

func (r *MemoryDomainRepository) GetByName(_ context.Context, name string) (*domain.Domain, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.domains {
		if d.Name == name {
			return r.assemble(d), nil
		}
	}
	return nil, domain.ErrDomainNotFound()
}

func (r *MemoryDomainRepository) GetByIDs(_ context.Context, ids []kernel.DomainID) ([]*domain.Domain, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Domain, 0, len(ids))
	for _, id := range ids {
		if d, ok := r.domains[id]; ok {
			out = append(out, r.assemble(d))
		}
	}
	sortDomains(out)
	return out, nil
}

func (r *MemoryDomainRepository) List(_ context.Context) ([]*domain.Domain, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Domain, 0, len(r.domains))
	for _, d := range r.domains {
		out = append(out, r.assemble(d))
	}
	sortDomains(out)
	return out, nil
}

func (r *MemoryDomainRepository) CreateSubdomain(_ context.Context, s *domain.Subdomain) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.domains[s.DomainID]; !ok {
		return domain.ErrDomainNotFound().WithDetail("domain_id", s.DomainID.String())
	}
	for _, other := range r.subdomains {
		if other.DomainID == s.DomainID && strings.EqualFold(other.Name, s.Name) {
			return domain.ErrSubdomainAlreadyExists().WithDetail("name", s.Name)
		}
	}
	r.subdomains[s.ID] = *s
	return nil
}

func (r *MemoryDomainRepository) DeleteSubdomain(_ context.Context, id kernel.SubdomainID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subdomains[id]; !ok {
		return domain.ErrSubdomainNotFound()
	}
	delete(r.subdomains, id)
	return nil
}

func (r *MemoryDomainRepository) GetSubdomainsByIDs(_ context.Context, ids []kernel.SubdomainID) ([]*domain.Subdomain, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Subdomain, 0, len(ids))
	for _, id := range ids {
		if s, ok := r.subdomains[id]; ok {
			cp := s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MemoryDomainRepository) Popular(ctx context.Context, limit int) ([]domain.PopularDomain, error) {
	r.mu.RLock()
	counter := r.activeJobs
	r.mu.RUnlock()

	out := []domain.PopularDomain{}
	if counter == nil {
		return out, nil
	}
	counts, err := counter(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	for id, n := range counts {
		if d, ok := r.domains[id]; ok && n > 0 {
			out = append(out, domain.PopularDomain{Domain: *r.assemble(d), ActiveJobs: n})
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].ActiveJobs != out[j].ActiveJobs {
			return out[i].ActiveJobs > out[j].ActiveJobs
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// assemble copies d and attaches its subdomains; callers hold the lock
func (r *MemoryDomainRepository) assemble(d domain.Domain) *domain.Domain {
	subs := []domain.Subdomain{}
	for _, s := range r.subdomains {
		if s.DomainID == d.ID {
			subs = append(subs, s)
		}
	}
	sort.Slice(subs, func(i, j int) bool {
		if subs[i].Name != subs[j].Name {
			return subs[i].Name < subs[j].Name
		}
		return subs[i].ID < subs[j].ID
	})
	d.Subdomains = subs
	return &d
}

func sortDomains(ds []*domain.Domain) {
	sort.Slice(ds, func(i, j int) bool {
		if ds[i].Name != ds[j].Name {
			return ds[i].Name < ds[j].Name
		}
		return ds[i].ID < ds[j].ID
	})
}
