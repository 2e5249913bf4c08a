package skill

import (
	"strings"
	"time"

	"github.com/Abraxas-365/applymint/pkg/kernel"
)

const (
	DefaultPageSize     = 50
	MaxPageSize         = 200
	DefaultPopularLimit = 10
	MaxPopularLimit     = 50
)

type Skill struct {
	ID        kernel.SkillID `json:"id"`
	Name      string         `json:"name"`
	Category  *string        `json:"category,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// PopularSkill is a skill with the number of active jobs listing it
type PopularSkill struct {
	Skill
	ActiveJobs int `json:"active_jobs"`
}

type OrderBy string

const (
	OrderByName     OrderBy = "name"
	OrderByCategory OrderBy = "category"
)

// ListOptions filters and orders a skill listing
type ListOptions struct {
	Category *string
	Search   *string
	OrderBy  OrderBy
	Desc     bool
	Page     kernel.PaginationOptions
}

// NewListOptions normalizes raw listing parameters. Unknown orderings fall
// back to name ascending.
func NewListOptions(category, search, orderBy, direction string, page, pageSize int) ListOptions {
	opts := ListOptions{
		Category: trimmed(category),
		Search:   trimmed(search),
		OrderBy:  OrderByName,
	}
	switch OrderBy(strings.ToLower(orderBy)) {
	case OrderByCategory:
		opts.OrderBy = OrderByCategory
	}
	opts.Desc = strings.EqualFold(direction, "desc")

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	opts.Page = kernel.PaginationOptions{Page: page, PageSize: pageSize}
	return opts
}

// Matches evaluates the category and search filters in memory
func (o ListOptions) Matches(s *Skill) bool {
	if o.Category != nil && (s.Category == nil || *s.Category != *o.Category) {
		return false
	}
	if o.Search != nil && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(*o.Search)) {
		return false
	}
	return true
}

// ClampPopularLimit applies the default and upper bound for popular listings
func ClampPopularLimit(n int) int {
	if n <= 0 {
		return DefaultPopularLimit
	}
	if n > MaxPopularLimit {
		return MaxPopularLimit
	}
	return n
}

func trimmed(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
