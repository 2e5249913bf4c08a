package skillinfra

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/recruitment/skill"
)

// ActiveJobCounter reports, per skill, how many active jobs list it
type ActiveJobCounter func(ctx context.Context) (map[kernel.SkillID]int, error)

// MemorySkillRepository keeps skills in a map; used by tests and local runs
type MemorySkillRepository struct {
	mu         sync.RWMutex
	skills     map[kernel.SkillID]skill.Skill
	activeJobs ActiveJobCounter
}

func NewMemorySkillRepository() *MemorySkillRepository {
	return &MemorySkillRepository{skills: make(map[kernel.SkillID]skill.Skill)}
}

// SetActiveJobCounter wires the source Popular ranks by
func (r *MemorySkillRepository) SetActiveJobCounter(fn ActiveJobCounter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activeJobs = fn
}

func (r *MemorySkillRepository) Create(_ context.Context, s *skill.Skill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nameTaken(s.Name, s.ID) {
		return skill.ErrSkillAlreadyExists().WithDetail("name", s.Name)
	}
	r.skills[s.ID] = *s
	return nil
}

func (r *MemorySkillRepository) Update(_ context.Context, s *skill.Skill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.skills[s.ID]; !ok {
		return skill.ErrSkillNotFound()
	}
	if r.nameTaken(s.Name, s.ID) {
		return skill.ErrSkillAlreadyExists().WithDetail("name", s.Name)
	}
	r.skills[s.ID] = *s
	return nil
}

func (r *MemorySkillRepository) Delete(_ context.Context, id kernel.SkillID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.skills[id]; !ok {
		return skill.ErrSkillNotFound()
	}
	delete(r.skills, id)
	return nil
}

func (r *MemorySkillRepository) GetByID(_ context.Context, id kernel.SkillID) (*skill.Skill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.skills[id]
	if !ok {
		return nil, skill.ErrSkillNotFound()
	}
	return &s, nil
}

func (r *MemorySkillRepository) GetByName(_ context.Context, name string) (*skill.Skill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.skills {
		if s.Name == name {
			out := s
			return &out, nil
		}
	}
	return nil, skill.ErrSkillNotFound()
}

func (r *MemorySkillRepository) GetByIDs(_ context.Context, ids []kernel.SkillID) ([]*skill.Skill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*skill.Skill, 0, len(ids))
	for _, id := range ids {
		if s, ok := r.skills[id]; ok {
			cp := s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MemorySkillRepository) List(_ context.Context, opts skill.ListOptions) (*kernel.Paginated[skill.Skill], error) {
	r.mu.RLock()
	matched := make([]skill.Skill, 0, len(r.skills))
	for _, s := range r.skills {
		if opts.Matches(&s) {
			matched = append(matched, s)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		var ka, kb string
		if opts.OrderBy == skill.OrderByCategory {
			ka, kb = deref(a.Category), deref(b.Category)
		} else {
			ka, kb = a.Name, b.Name
		}
		if ka != kb {
			if opts.Desc {
				return ka > kb
			}
			return ka < kb
		}
		return a.ID < b.ID
	})

	start := opts.Page.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + opts.Page.Limit()
	if end > len(matched) {
		end = len(matched)
	}
	return kernel.NewPaginated(matched[start:end], opts.Page, len(matched)), nil
}

func (r *MemorySkillRepository) Popular(ctx context.Context, limit int) ([]skill.PopularSkill, error) {
	r.mu.RLock()
	counter := r.activeJobs
	r.mu.RUnlock()

	out := []skill.PopularSkill{}
	if counter == nil {
		return out, nil
	}
	counts, err := counter(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	for id, n := range counts {
		if s, ok := r.skills[id]; ok && n > 0 {
			out = append(out, skill.PopularSkill{Skill: s, ActiveJobs: n})
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

func (r *MemorySkillRepository) nameTaken(name string, except kernel.SkillID) bool {
	for id, s := range r.skills {
		if id != except && strings.EqualFold(s.Name, name) {
			return true
		}
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
