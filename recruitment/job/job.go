package job

import (
	"time"

	"github.com/Abraxas-365/applymint/pkg/kernel"
)

// JobSkill links a skill to a job, flagging the job's primary skills
type JobSkill struct {
	SkillID   kernel.SkillID `db:"skill_id" json:"skill_id"`
	IsPrimary bool           `db:"is_primary" json:"is_primary"`
}

type Job struct {
	ID                  kernel.JobID         `json:"id"`
	Title               string               `json:"title"`
	Description         string               `json:"description"`
	Responsibilities    *string              `json:"responsibilities,omitempty"`
	Requirements        *string              `json:"requirements,omitempty"`
	PreferredSkills     *string              `json:"preferred_skills,omitempty"`
	CompanyID           kernel.CompanyID     `json:"company_id"`
	Location            *string              `json:"location,omitempty"`
	LocationType        LocationType         `json:"location_type"`
	SalaryMin           *int64               `json:"salary_min,omitempty"`
	SalaryMax           *int64               `json:"salary_max,omitempty"`
	SalaryCurrency      string               `json:"salary_currency"`
	SalaryPeriod        SalaryPeriod         `json:"salary_period"`
	JobType             JobType              `json:"job_type"`
	ExperienceLevel     ExperienceLevel      `json:"experience_level"`
	ApplicationLink     string               `json:"application_link"`
	ApplicationDeadline *time.Time           `json:"application_deadline,omitempty"`
	PostedDate          time.Time            `json:"posted_date"`
	IsActive            bool                 `json:"is_active"`
	ViewCount           int64                `json:"view_count"`
	ClickCount          int64                `json:"click_count"`
	ImageURL            *string              `json:"image_url,omitempty"`
	QRCodeURL           *string              `json:"qr_code_url,omitempty"`
	DomainIDs           []kernel.DomainID    `json:"domain_ids"`
	SubdomainIDs        []kernel.SubdomainID `json:"subdomain_ids"`
	Skills              []JobSkill           `json:"skills"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsExpired reports whether the application deadline has passed
func (j *Job) IsExpired(now time.Time) bool {
	return j.ApplicationDeadline != nil && j.ApplicationDeadline.Before(now)
}

// HasDomain reports whether the job is classified under id
func (j *Job) HasDomain(id kernel.DomainID) bool {
	for _, d := range j.DomainIDs {
		if d == id {
			return true
		}
	}
	return false
}

// HasSkill reports whether the job lists id among its skills
func (j *Job) HasSkill(id kernel.SkillID) bool {
	for _, s := range j.Skills {
		if s.SkillID == id {
			return true
		}
	}
	return false
}

// SkillIDs returns the skill ids in stored order
func (j *Job) SkillIDs() []kernel.SkillID {
	ids := make([]kernel.SkillID, 0, len(j.Skills))
	for _, s := range j.Skills {
		ids = append(ids, s.SkillID)
	}
	return ids
}

// Overlap counts the distinct domains plus distinct skills shared with other
func (j *Job) Overlap(other *Job) int {
	n := 0
	seenD := make(map[kernel.DomainID]struct{}, len(j.DomainIDs))
	for _, d := range j.DomainIDs {
		if _, dup := seenD[d]; dup {
			continue
		}
		seenD[d] = struct{}{}
		if other.HasDomain(d) {
			n++
		}
	}
	seenS := make(map[kernel.SkillID]struct{}, len(j.Skills))
	for _, s := range j.Skills {
		if _, dup := seenS[s.SkillID]; dup {
			continue
		}
		seenS[s.SkillID] = struct{}{}
		if other.HasSkill(s.SkillID) {
			n++
		}
	}
	return n
}

// Validate checks the invariants every stored job must satisfy
func (j *Job) Validate(now time.Time) error {
	if j.PostedDate.After(now) {
		return ErrInvalidPostedDate().WithDetail("posted_date", j.PostedDate)
	}
	if j.SalaryMin != nil && *j.SalaryMin < 0 {
		return ErrInvalidSalaryRange().WithDetail("salary_min", *j.SalaryMin)
	}
	if j.SalaryMax != nil && *j.SalaryMax < 0 {
		return ErrInvalidSalaryRange().WithDetail("salary_max", *j.SalaryMax)
	}
	if j.SalaryMin != nil && j.SalaryMax != nil && *j.SalaryMin > *j.SalaryMax {
		return ErrInvalidSalaryRange().
			WithDetail("salary_min", *j.SalaryMin).
			WithDetail("salary_max", *j.SalaryMax)
	}
	return nil
}

// ValidateForListing adds the checks applied when a job is created or
// (re)activated: a listed job needs at least one domain
func (j *Job) ValidateForListing(now time.Time) error {
	if err := j.Validate(now); err != nil {
		return err
	}
	if j.IsActive && len(j.DomainIDs) == 0 {
		return ErrDomainRequired()
	}
	return nil
}

// Activate lists the job publicly
func (j *Job) Activate(now time.Time) error {
	if len(j.DomainIDs) == 0 {
		return ErrDomainRequired()
	}
	j.IsActive = true
	j.UpdatedAt = now
	return nil
}

// Deactivate hides the job from public listings
func (j *Job) Deactivate(now time.Time) {
	j.IsActive = false
	j.UpdatedAt = now
}

// SetShareImage records the generated share image and QR code URLs
func (j *Job) SetShareImage(imageURL, qrCodeURL string, now time.Time) {
	j.ImageURL = nonEmpty(imageURL)
	j.QRCodeURL = nonEmpty(qrCodeURL)
	j.UpdatedAt = now
}

// Clone returns a deep copy so callers can never alias stored slices
func (j *Job) Clone() *Job {
	c := *j
	c.Responsibilities = cloneString(j.Responsibilities)
	c.Requirements = cloneString(j.Requirements)
	c.PreferredSkills = cloneString(j.PreferredSkills)
	c.Location = cloneString(j.Location)
	c.ImageURL = cloneString(j.ImageURL)
	c.QRCodeURL = cloneString(j.QRCodeURL)
	if j.SalaryMin != nil {
		v := *j.SalaryMin
		c.SalaryMin = &v
	}
	if j.SalaryMax != nil {
		v := *j.SalaryMax
		c.SalaryMax = &v
	}
	if j.ApplicationDeadline != nil {
		v := *j.ApplicationDeadline
		c.ApplicationDeadline = &v
	}
	c.DomainIDs = append([]kernel.DomainID(nil), j.DomainIDs...)
	c.SubdomainIDs = append([]kernel.SubdomainID(nil), j.SubdomainIDs...)
	c.Skills = append([]JobSkill(nil), j.Skills...)
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
