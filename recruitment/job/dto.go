package job

import (
	"time"

	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/recruitment/company"
	"github.com/Abraxas-365/applymint/recruitment/domain"
	"github.com/Abraxas-365/applymint/recruitment/skill"
)

// JobSkillInput - a skill reference inside a create/update request
type JobSkillInput struct {
	SkillID   string `json:"skill_id" validate:"required"`
	IsPrimary bool   `json:"is_primary"`
}

// CreateJobRequest - DTO for creating a new job
type CreateJobRequest struct {
	Title               string          `json:"title" validate:"required,min=3,max=200"`
	Description         string          `json:"description" validate:"required,min=20"`
	Responsibilities    *string         `json:"responsibilities,omitempty"`
	Requirements        *string         `json:"requirements,omitempty"`
	PreferredSkills     *string         `json:"preferred_skills,omitempty"`
	CompanyID           string          `json:"company_id" validate:"required"`
	Location            *string         `json:"location,omitempty" validate:"omitempty,max=200"`
	LocationType        string          `json:"location_type" validate:"required"`
	SalaryMin           *int64          `json:"salary_min,omitempty" validate:"omitempty,gte=0"`
	SalaryMax           *int64          `json:"salary_max,omitempty" validate:"omitempty,gte=0"`
	SalaryCurrency      string          `json:"salary_currency,omitempty" validate:"omitempty,len=3,alpha"`
	SalaryPeriod        string          `json:"salary_period,omitempty"`
	JobType             string          `json:"job_type" validate:"required"`
	ExperienceLevel     string          `json:"experience_level" validate:"required"`
	ApplicationLink     string          `json:"application_link" validate:"required,url"`
	ApplicationDeadline *time.Time      `json:"application_deadline,omitempty"`
	PostedDate          *time.Time      `json:"posted_date,omitempty"`
	DomainIDs           []string        `json:"domain_ids" validate:"dive,required"`
	SubdomainIDs        []string        `json:"subdomain_ids" validate:"dive,required"`
	Skills              []JobSkillInput `json:"skills" validate:"dive"`
	IsActive            *bool           `json:"is_active,omitempty"`
}

// UpdateJobRequest - DTO for a partial job update. Slices replace the
// stored links when present; an empty string clears an optional text field.
type UpdateJobRequest struct {
	Title               *string          `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description         *string          `json:"description,omitempty" validate:"omitempty,min=20"`
	Responsibilities    *string          `json:"responsibilities,omitempty"`
	Requirements        *string          `json:"requirements,omitempty"`
	PreferredSkills     *string          `json:"preferred_skills,omitempty"`
	CompanyID           *string          `json:"company_id,omitempty" validate:"omitempty,min=1"`
	Location            *string          `json:"location,omitempty" validate:"omitempty,max=200"`
	LocationType        *string          `json:"location_type,omitempty"`
	SalaryMin           *int64           `json:"salary_min,omitempty" validate:"omitempty,gte=0"`
	SalaryMax           *int64           `json:"salary_max,omitempty" validate:"omitempty,gte=0"`
	ClearSalary         bool             `json:"clear_salary,omitempty"`
	SalaryCurrency      *string          `json:"salary_currency,omitempty" validate:"omitempty,len=3,alpha"`
	SalaryPeriod        *string          `json:"salary_period,omitempty"`
	JobType             *string          `json:"job_type,omitempty"`
	ExperienceLevel     *string          `json:"experience_level,omitempty"`
	ApplicationLink     *string          `json:"application_link,omitempty" validate:"omitempty,url"`
	ApplicationDeadline *time.Time       `json:"application_deadline,omitempty"`
	ClearDeadline       bool             `json:"clear_deadline,omitempty"`
	DomainIDs           *[]string        `json:"domain_ids,omitempty"`
	SubdomainIDs        *[]string        `json:"subdomain_ids,omitempty"`
	Skills              *[]JobSkillInput `json:"skills,omitempty"`
}

// SetActiveRequest - DTO for activating or deactivating a job
type SetActiveRequest struct {
	IsActive bool `json:"is_active"`
}

// Response type alias for paginated jobs
type PaginatedJobsResponse = kernel.Paginated[JobResponse]

// JobResponse - a job joined with its company, taxonomy and skills
type JobResponse struct {
	ID                  kernel.JobID              `json:"id"`
	Title               string                    `json:"title"`
	Description         string                    `json:"description"`
	Responsibilities    *string                   `json:"responsibilities,omitempty"`
	Requirements        *string                   `json:"requirements,omitempty"`
	PreferredSkills     *string                   `json:"preferred_skills,omitempty"`
	CompanyID           kernel.CompanyID          `json:"company_id"`
	Company             *company.CompanySummary   `json:"company,omitempty"`
	Location            *string                   `json:"location,omitempty"`
	LocationType        LocationType              `json:"location_type"`
	SalaryMin           *int64                    `json:"salary_min,omitempty"`
	SalaryMax           *int64                    `json:"salary_max,omitempty"`
	SalaryCurrency      string                    `json:"salary_currency"`
	SalaryPeriod        SalaryPeriod              `json:"salary_period"`
	JobType             JobType                   `json:"job_type"`
	ExperienceLevel     ExperienceLevel           `json:"experience_level"`
	ApplicationLink     string                    `json:"application_link"`
	ApplicationDeadline *time.Time                `json:"application_deadline,omitempty"`
	PostedDate          time.Time                 `json:"posted_date"`
	IsActive            bool                      `json:"is_active"`
	ViewCount           int64                     `json:"view_count"`
	ClickCount          int64                     `json:"click_count"`
	ImageURL            *string                   `json:"image_url,omitempty"`
	QRCodeURL           *string                   `json:"qr_code_url,omitempty"`
	Domains             []domain.DomainSummary    `json:"domains"`
	Subdomains          []domain.SubdomainSummary `json:"subdomains"`
	Skills              []skill.SkillSummary      `json:"skills"`
	CreatedAt           time.Time                 `json:"created_at"`
	UpdatedAt           time.Time                 `json:"updated_at"`
}

// JobStatsResponse - Engagement statistics for a job
type JobStatsResponse struct {
	JobID           kernel.JobID `json:"job_id"`
	Title           string       `json:"title"`
	IsActive        bool         `json:"is_active"`
	IsExpired       bool         `json:"is_expired"`
	ViewCount       int64        `json:"view_count"`
	ClickCount      int64        `json:"click_count"`
	Applications    int64        `json:"applications"`
	ClickThrough    float64      `json:"click_through_rate"`
	DaysSincePosted int          `json:"days_since_posted"`
	PostedDate      time.Time    `json:"posted_date"`
}

// DeactivateExpiredResponse - Result of an expiry sweep
type DeactivateExpiredResponse struct {
	Deactivated int64     `json:"deactivated"`
	RanAt       time.Time `json:"ran_at"`
}
