package company

// CreateCompanyRequest - DTO for creating a company
type CreateCompanyRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=200"`
	Logo        *string  `json:"logo,omitempty" validate:"omitempty,url"`
	Website     *string  `json:"website,omitempty" validate:"omitempty,url"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	Industry    []string `json:"industry" validate:"dive,max=100"`
	Size        *string  `json:"size,omitempty"`
	Location    *string  `json:"location,omitempty" validate:"omitempty,max=200"`
}

// UpdateCompanyRequest - DTO for a partial company update. An empty string
// clears an optional field.
type UpdateCompanyRequest struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Logo        *string   `json:"logo,omitempty" validate:"omitempty,url"`
	Website     *string   `json:"website,omitempty" validate:"omitempty,url"`
	Description *string   `json:"description,omitempty" validate:"omitempty,max=5000"`
	Industry    *[]string `json:"industry,omitempty"`
	Size        *string   `json:"size,omitempty"`
	Location    *string   `json:"location,omitempty" validate:"omitempty,max=200"`
}

// CompanySummary is the company as embedded in a job listing
type CompanySummary struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Logo     *string `json:"logo,omitempty"`
	Website  *string `json:"website,omitempty"`
	Location *string `json:"location,omitempty"`
	Size     *string `json:"size,omitempty"`
}

// ToSummary returns the listing view of c
func (c *Company) ToSummary() CompanySummary {
	s := CompanySummary{
		ID:       c.ID.String(),
		Name:     c.Name,
		Logo:     optionalPtr(c.Logo),
		Website:  optionalPtr(c.Website),
		Location: optionalPtr(c.Location),
	}
	if c.Size != nil {
		size := string(*c.Size)
		s.Size = &size
	}
	return s
}
