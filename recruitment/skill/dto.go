package skill

// CreateSkillRequest - DTO for creating a skill
type CreateSkillRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=100"`
	Category *string `json:"category,omitempty" validate:"omitempty,max=100"`
}

// UpdateSkillRequest - DTO for a partial skill update. An empty category
// clears it.
type UpdateSkillRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Category *string `json:"category,omitempty" validate:"omitempty,max=100"`
}

// SkillSummary is a job's skill as shown in a listing
type SkillSummary struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Category  *string `json:"category,omitempty"`
	IsPrimary bool    `json:"is_primary"`
}

// ToSummary returns the listing view of s
func (s *Skill) ToSummary(isPrimary bool) SkillSummary {
	var category *string
	if s.Category != nil && *s.Category != "" {
		c := *s.Category
		category = &c
	}
	return SkillSummary{
		ID:        s.ID.String(),
		Name:      s.Name,
		Category:  category,
		IsPrimary: isPrimary,
	}
}
