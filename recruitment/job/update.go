package job

import (
	"strings"
	"time"

	"github.com/Abraxas-365/applymint/pkg/kernel"
)

// NewJob builds a job from a validated create request. Enum fields are
// canonicalized; unknown values are rejected with the offending field.
func NewJob(id kernel.JobID, req CreateJobRequest, now time.Time) (*Job, error) {
	fields := map[string]string{}

	jobType, ok := ParseJobType(req.JobType)
	if !ok {
		fields["job_type"] = "oneof"
	}
	level, ok := ParseExperienceLevel(req.ExperienceLevel)
	if !ok {
		fields["experience_level"] = "oneof"
	}
	locType, ok := ParseLocationType(req.LocationType)
	if !ok {
		fields["location_type"] = "oneof"
	}
	period := DefaultSalaryPeriod
	if strings.TrimSpace(req.SalaryPeriod) != "" {
		if period, ok = ParseSalaryPeriod(req.SalaryPeriod); !ok {
			fields["salary_period"] = "oneof"
		}
	}
	if len(fields) > 0 {
		return nil, ErrValidationFailed().WithDetail("fields", fields)
	}

	currency := DefaultCurrency
	if c := strings.TrimSpace(req.SalaryCurrency); c != "" {
		currency = strings.ToUpper(c)
	}
	posted := now
	if req.PostedDate != nil {
		posted = *req.PostedDate
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	j := &Job{
		ID:                  id,
		Title:               strings.TrimSpace(req.Title),
		Description:         strings.TrimSpace(req.Description),
		Responsibilities:    optionalText(req.Responsibilities),
		Requirements:        optionalText(req.Requirements),
		PreferredSkills:     optionalText(req.PreferredSkills),
		CompanyID:           kernel.CompanyID(req.CompanyID),
		Location:            optionalText(req.Location),
		LocationType:        locType,
		SalaryMin:           positiveSalary(req.SalaryMin),
		SalaryMax:           positiveSalary(req.SalaryMax),
		SalaryCurrency:      currency,
		SalaryPeriod:        period,
		JobType:             jobType,
		ExperienceLevel:     level,
		ApplicationLink:     strings.TrimSpace(req.ApplicationLink),
		ApplicationDeadline: req.ApplicationDeadline,
		PostedDate:          posted,
		IsActive:            active,
		DomainIDs:           domainIDs(req.DomainIDs),
		SubdomainIDs:        subdomainIDs(req.SubdomainIDs),
		Skills:              jobSkills(req.Skills),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := j.ValidateForListing(now); err != nil {
		return nil, err
	}
	return j, nil
}

// ApplyUpdate applies the fields present in req. Link lists are replaced
// wholesale; an empty string clears an optional text field.
func (j *Job) ApplyUpdate(req UpdateJobRequest, now time.Time) error {
	fields := map[string]string{}

	if req.Title != nil {
		j.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		j.Description = strings.TrimSpace(*req.Description)
	}
	if req.Responsibilities != nil {
		j.Responsibilities = optionalText(req.Responsibilities)
	}
	if req.Requirements != nil {
		j.Requirements = optionalText(req.Requirements)
	}
	if req.PreferredSkills != nil {
		j.PreferredSkills = optionalText(req.PreferredSkills)
	}
	if req.CompanyID != nil {
		j.CompanyID = kernel.CompanyID(strings.TrimSpace(*req.CompanyID))
	}
	if req.Location != nil {
		j.Location = optionalText(req.Location)
	}
	if req.LocationType != nil {
		if v, ok := ParseLocationType(*req.LocationType); ok {
			j.LocationType = v
		} else {
			fields["location_type"] = "oneof"
		}
	}
	if req.JobType != nil {
		if v, ok := ParseJobType(*req.JobType); ok {
			j.JobType = v
		} else {
			fields["job_type"] = "oneof"
		}
	}
	if req.ExperienceLevel != nil {
		if v, ok := ParseExperienceLevel(*req.ExperienceLevel); ok {
			j.ExperienceLevel = v
		} else {
			fields["experience_level"] = "oneof"
		}
	}
	if req.SalaryPeriod != nil {
		if v, ok := ParseSalaryPeriod(*req.SalaryPeriod); ok {
			j.SalaryPeriod = v
		} else {
			fields["salary_period"] = "oneof"
		}
	}
	if len(fields) > 0 {
		return ErrValidationFailed().WithDetail("fields", fields)
	}

	if req.ClearSalary {
		j.SalaryMin, j.SalaryMax = nil, nil
	}
	if req.SalaryMin != nil {
		j.SalaryMin = positiveSalary(req.SalaryMin)
	}
	if req.SalaryMax != nil {
		j.SalaryMax = positiveSalary(req.SalaryMax)
	}
	if req.SalaryCurrency != nil && strings.TrimSpace(*req.SalaryCurrency) != "" {
		j.SalaryCurrency = strings.ToUpper(strings.TrimSpace(*req.SalaryCurrency))
	}
	if req.ApplicationLink != nil {
		j.ApplicationLink = strings.TrimSpace(*req.ApplicationLink)
	}
	if req.ClearDeadline {
		j.ApplicationDeadline = nil
	}
	if req.ApplicationDeadline != nil {
		d := *req.ApplicationDeadline
		j.ApplicationDeadline = &d
	}
	if req.DomainIDs != nil {
		j.DomainIDs = domainIDs(*req.DomainIDs)
	}
	if req.SubdomainIDs != nil {
		j.SubdomainIDs = subdomainIDs(*req.SubdomainIDs)
	}
	if req.Skills != nil {
		j.Skills = jobSkills(*req.Skills)
	}
	j.UpdatedAt = now

	return j.ValidateForListing(now)
}

func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// positiveSalary keeps a salary bound; zero means "not disclosed"
func positiveSalary(n *int64) *int64 {
	if n == nil || *n == 0 {
		return nil
	}
	v := *n
	return &v
}

func domainIDs(raw []string) []kernel.DomainID {
	out := make([]kernel.DomainID, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, id := range raw {
		id = strings.TrimSpace(id)
		if _, dup := seen[id]; dup || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, kernel.DomainID(id))
	}
	return out
}

func subdomainIDs(raw []string) []kernel.SubdomainID {
	out := make([]kernel.SubdomainID, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, id := range raw {
		id = strings.TrimSpace(id)
		if _, dup := seen[id]; dup || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, kernel.SubdomainID(id))
	}
	return out
}

// jobSkills keeps the first occurrence of each skill, in request order
func jobSkills(in []JobSkillInput) []JobSkill {
	out := make([]JobSkill, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		id := strings.TrimSpace(s.SkillID)
		if _, dup := seen[id]; dup || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, JobSkill{SkillID: kernel.SkillID(id), IsPrimary: s.IsPrimary})
	}
	return out
}
