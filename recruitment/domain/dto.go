package domain

// CreateDomainRequest - DTO for creating a domain
type CreateDomainRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

// UpdateDomainRequest - DTO for a partial domain update
type UpdateDomainRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

// CreateSubdomainRequest - DTO for creating a subdomain
type CreateSubdomainRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

// DomainSummary is the domain as embedded in a job listing
type DomainSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// SubdomainSummary is the subdomain as embedded in a job listing
type SubdomainSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	DomainID    string  `json:"domain_id"`
	DomainName  string  `json:"domain_name,omitempty"`
}

func (d *Domain) ToSummary() DomainSummary {
	return DomainSummary{
		ID:          d.ID.String(),
		Name:        d.Name,
		Description: optional(d.Description),
	}
}

// ToSummary returns the listing view of s; domainName may be empty
func (s *Subdomain) ToSummary(domainName string) SubdomainSummary {
	return SubdomainSummary{
		ID:          s.ID.String(),
		Name:        s.Name,
		Description: optional(s.Description),
		DomainID:    s.DomainID.String(),
		DomainName:  domainName,
	}
}
