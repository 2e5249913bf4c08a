package skill

import (
	"context"

	"github.com/Abraxas-365/applymint/pkg/kernel"
)

type Repository interface {
	Create(ctx context.Context, s *Skill) error
	Update(ctx context.Context, s *Skill) error
	Delete(ctx context.Context, id kernel.SkillID) error

	// GetByID returns ErrSkillNotFound when absent
	GetByID(ctx context.Context, id kernel.SkillID) (*Skill, error)

	// GetByName matches the exact name
	GetByName(ctx context.Context, name string) (*Skill, error)

	// GetByIDs returns the skills that exist; unknown ids are skipped
	GetByIDs(ctx context.Context, ids []kernel.SkillID) ([]*Skill, error)

	// List returns a filtered, ordered page of skills
	List(ctx context.Context, opts ListOptions) (*kernel.Paginated[Skill], error)

	// Popular returns skills ordered by active job count, most first
	Popular(ctx context.Context, limit int) ([]PopularSkill, error)
}
