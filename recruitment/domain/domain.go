package domain

import (
	"strings"
	"time"

	"github.com/Abraxas-365/applymint/pkg/kernel"
)

const (
	DefaultPopularLimit = 5
	MaxPopularLimit     = 50
)

// Domain is a top-level job category such as "Technology"
type Domain struct {
	ID          kernel.DomainID `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Subdomains  []Subdomain     `json:"subdomains"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Subdomain is a specialization inside exactly one domain
type Subdomain struct {
	ID          kernel.SubdomainID `json:"id"`
	Name        string             `json:"name"`
	Description *string            `json:"description,omitempty"`
	DomainID    kernel.DomainID    `json:"domain_id"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// PopularDomain is a domain with its number of active jobs
type PopularDomain struct {
	Domain
	ActiveJobs int `json:"active_jobs"`
}

// HasSubdomain reports whether id belongs to the domain
func (d *Domain) HasSubdomain(id kernel.SubdomainID) bool {
	for _, s := range d.Subdomains {
		if s.ID == id {
			return true
		}
	}
	return false
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

func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
