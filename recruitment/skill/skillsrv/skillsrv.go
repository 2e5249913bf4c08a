package skillsrv

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/applymint/pkg/cachex"
	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/pkg/logx"
	"github.com/Abraxas-365/applymint/pkg/validatex"
	"github.com/Abraxas-365/applymint/recruitment/skill"
	"github.com/google/uuid"
)

// SkillService manages the skill catalogue
type SkillService struct {
	skillRepo  skill.Repository
	cache      cachex.Cache
	popularTTL time.Duration
}

// NewSkillService creates a new skill service. cache may be nil.
func NewSkillService(skillRepo skill.Repository, cache cachex.Cache, popularTTL time.Duration) *SkillService {
	if popularTTL <= 0 {
		popularTTL = cachex.PopularSkillTTL
	}
	return &SkillService{
		skillRepo:  skillRepo,
		cache:      cache,
		popularTTL: popularTTL,
	}
}

// ListSkills returns a filtered, ordered page of skills
func (s *SkillService) ListSkills(ctx context.Context, opts skill.ListOptions) (*kernel.Paginated[skill.Skill], error) {
	return s.skillRepo.List(ctx, opts)
}

// GetSkill retrieves a skill by ID
func (s *SkillService) GetSkill(ctx context.Context, id kernel.SkillID) (*skill.Skill, error) {
	return s.skillRepo.GetByID(ctx, id)
}

// GetSkillByName retrieves a skill by its exact name
func (s *SkillService) GetSkillByName(ctx context.Context, name string) (*skill.Skill, error) {
	return s.skillRepo.GetByName(ctx, strings.TrimSpace(name))
}

// GetSkillsByIDs retrieves several skills, skipping unknown ids
func (s *SkillService) GetSkillsByIDs(ctx context.Context, ids []kernel.SkillID) ([]*skill.Skill, error) {
	return s.skillRepo.GetByIDs(ctx, ids)
}

// CreateSkill creates a new skill
func (s *SkillService) CreateSkill(ctx context.Context, req skill.CreateSkillRequest) (*skill.Skill, error) {
	if err := validatex.Struct(req); err != nil {
		return nil, skill.ErrValidationFailed().WithDetail("fields", validatex.Fields(err))
	}

	now := time.Now()
	sk := &skill.Skill{
		ID:        kernel.NewSkillID(uuid.NewString()),
		Name:      strings.TrimSpace(req.Name),
		Category:  nonEmpty(req.Category),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.skillRepo.Create(ctx, sk); err != nil {
		return nil, err
	}

	s.invalidatePopular(ctx)
	return sk, nil
}

// UpdateSkill renames or recategorizes a skill
func (s *SkillService) UpdateSkill(ctx context.Context, id kernel.SkillID, req skill.UpdateSkillRequest) (*skill.Skill, error) {
	if err := validatex.Struct(req); err != nil {
		return nil, skill.ErrValidationFailed().WithDetail("fields", validatex.Fields(err))
	}

	sk, err := s.skillRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		sk.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		sk.Category = nonEmpty(req.Category)
	}
	sk.UpdatedAt = time.Now()

	if err := s.skillRepo.Update(ctx, sk); err != nil {
		return nil, err
	}

	s.invalidatePopular(ctx)
	return sk, nil
}

// DeleteSkill removes a skill
func (s *SkillService) DeleteSkill(ctx context.Context, id kernel.SkillID) error {
	if err := s.skillRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidatePopular(ctx)
	return nil
}

// PopularSkills returns the skills listed by the most active jobs
func (s *SkillService) PopularSkills(ctx context.Context, limit int) ([]skill.PopularSkill, error) {
	limit = skill.ClampPopularLimit(limit)
	return cachex.GetOrLoad(ctx, s.cache, cachex.PopularSkillsKey(limit), s.popularTTL,
		func(ctx context.Context) ([]skill.PopularSkill, error) {
			return s.skillRepo.Popular(ctx, limit)
		})
}

func (s *SkillService) invalidatePopular(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePrefix(ctx, cachex.PopularSkillsPrefix()); err != nil {
		logx.Warnf("failed to invalidate popular skills cache: %v", err)
	}
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
