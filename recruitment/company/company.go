package company

import (
	"strings"
	"time"

	"github.com/Abraxas-365/applymint/pkg/kernel"
)

type CompanySize string

const (
	CompanySizeSmall      CompanySize = "Small"
	CompanySizeMedium     CompanySize = "Medium"
	CompanySizeLarge      CompanySize = "Large"
	CompanySizeEnterprise CompanySize = "Enterprise"
)

var CompanySizes = []CompanySize{CompanySizeSmall, CompanySizeMedium, CompanySizeLarge, CompanySizeEnterprise}

// ParseCompanySize matches a size case-insensitively
func ParseCompanySize(s string) (CompanySize, bool) {
	for _, size := range CompanySizes {
		if strings.EqualFold(string(size), strings.TrimSpace(s)) {
			return size, true
		}
	}
	return CompanySize(s), false
}

type Company struct {
	ID          kernel.CompanyID `json:"id"`
	Name        string           `json:"name"`
	Logo        *string          `json:"logo,omitempty"`
	Website     *string          `json:"website,omitempty"`
	Description *string          `json:"description,omitempty"`
	Industry    []string         `json:"industry"`
	Size        *CompanySize     `json:"size,omitempty"`
	Location    *string          `json:"location,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// ApplyUpdate copies the fields present in req onto the company
func (c *Company) ApplyUpdate(req UpdateCompanyRequest, now time.Time) error {
	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Logo != nil {
		c.Logo = optional(*req.Logo)
	}
	if req.Website != nil {
		c.Website = optional(*req.Website)
	}
	if req.Description != nil {
		c.Description = optional(*req.Description)
	}
	if req.Industry != nil {
		c.Industry = cleanList(*req.Industry)
	}
	if req.Size != nil {
		if *req.Size == "" {
			c.Size = nil
		} else {
			size, ok := ParseCompanySize(*req.Size)
			if !ok {
				return ErrInvalidCompanySize().WithDetail("size", *req.Size)
			}
			c.Size = &size
		}
	}
	if req.Location != nil {
		c.Location = optional(*req.Location)
	}
	c.UpdatedAt = now
	return nil
}

// NewCompany builds a company from a create request
func NewCompany(id kernel.CompanyID, req CreateCompanyRequest, now time.Time) (*Company, error) {
	c := &Company{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Logo:        optionalPtr(req.Logo),
		Website:     optionalPtr(req.Website),
		Description: optionalPtr(req.Description),
		Industry:    cleanList(req.Industry),
		Location:    optionalPtr(req.Location),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Size != nil && *req.Size != "" {
		size, ok := ParseCompanySize(*req.Size)
		if !ok {
			return nil, ErrInvalidCompanySize().WithDetail("size", *req.Size)
		}
		c.Size = &size
	}
	return c, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func optionalPtr(s *string) *string {
	if s == nil {
		return nil
	}
	return optional(*s)
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
