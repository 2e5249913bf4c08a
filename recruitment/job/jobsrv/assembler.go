package jobsrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/recruitment/company"
	"github.com/Abraxas-365/applymint/recruitment/domain"
	"github.com/Abraxas-365/applymint/recruitment/job"
	"github.com/Abraxas-365/applymint/recruitment/skill"
)

// CompanyReader loads companies in bulk; unknown ids are skipped
type CompanyReader interface {
	GetCompaniesByIDs(ctx context.Context, ids []kernel.CompanyID) ([]*company.Company, error)
}

// DomainReader loads domains and subdomains in bulk
type DomainReader interface {
	GetDomainsByIDs(ctx context.Context, ids []kernel.DomainID) ([]*domain.Domain, error)
	GetSubdomainsByIDs(ctx context.Context, ids []kernel.SubdomainID) ([]*domain.Subdomain, error)
}

// SkillReader loads skills in bulk
type SkillReader interface {
	GetSkillsByIDs(ctx context.Context, ids []kernel.SkillID) ([]*skill.Skill, error)
}

// Assembler joins jobs with their company, taxonomy and skills. It issues
// one lookup per relation kind for a whole page, whatever its size.
type Assembler struct {
	companies CompanyReader
	domains   DomainReader
	skills    SkillReader
}

func NewAssembler(companies CompanyReader, domains DomainReader, skills SkillReader) *Assembler {
	return &Assembler{
		companies: companies,
		domains:   domains,
		skills:    skills,
	}
}

type lookup struct {
	companies  map[kernel.CompanyID]*company.Company
	domains    map[kernel.DomainID]*domain.Domain
	subdomains map[kernel.SubdomainID]*domain.Subdomain
	skills     map[kernel.SkillID]*skill.Skill
}

// Assemble builds one response per job, in input order. Jobs are not modified.
func (a *Assembler) Assemble(ctx context.Context, jobs []*job.Job) ([]job.JobResponse, error) {
	out := make([]job.JobResponse, 0, len(jobs))
	if len(jobs) == 0 {
		return out, nil
	}

	l, err := a.load(ctx, jobs)
	if err != nil {
		return nil, err
	}
	for _, j := range jobs {
		out = append(out, l.response(j))
	}
	return out, nil
}

// AssembleOne is Assemble for a single job
func (a *Assembler) AssembleOne(ctx context.Context, j *job.Job) (*job.JobResponse, error) {
	resp, err := a.Assemble(ctx, []*job.Job{j})
	if err != nil {
		return nil, err
	}
	return &resp[0], nil
}

func (a *Assembler) load(ctx context.Context, jobs []*job.Job) (*lookup, error) {
	var (
		companyIDs   []kernel.CompanyID
		domainIDs    []kernel.DomainID
		subdomainIDs []kernel.SubdomainID
		skillIDs     []kernel.SkillID
	)
	seenCompany := make(map[kernel.CompanyID]struct{})
	seenDomain := make(map[kernel.DomainID]struct{})
	seenSub := make(map[kernel.SubdomainID]struct{})
	seenSkill := make(map[kernel.SkillID]struct{})

	for _, j := range jobs {
		if _, ok := seenCompany[j.CompanyID]; !ok && !j.CompanyID.IsEmpty() {
			seenCompany[j.CompanyID] = struct{}{}
			companyIDs = append(companyIDs, j.CompanyID)
		}
		for _, id := range j.DomainIDs {
			if _, ok := seenDomain[id]; !ok {
				seenDomain[id] = struct{}{}
				domainIDs = append(domainIDs, id)
			}
		}
		for _, id := range j.SubdomainIDs {
			if _, ok := seenSub[id]; !ok {
				seenSub[id] = struct{}{}
				subdomainIDs = append(subdomainIDs, id)
			}
		}
		for _, s := range j.Skills {
			if _, ok := seenSkill[s.SkillID]; !ok {
				seenSkill[s.SkillID] = struct{}{}
				skillIDs = append(skillIDs, s.SkillID)
			}
		}
	}

	l := &lookup{
		companies:  make(map[kernel.CompanyID]*company.Company),
		domains:    make(map[kernel.DomainID]*domain.Domain),
		subdomains: make(map[kernel.SubdomainID]*domain.Subdomain),
		skills:     make(map[kernel.SkillID]*skill.Skill),
	}

	// subdomains first: their parents join the domain lookup
	if len(subdomainIDs) > 0 {
		subs, err := a.domains.GetSubdomainsByIDs(ctx, subdomainIDs)
		if err != nil {
			return nil, err
		}
		for _, s := range subs {
			l.subdomains[s.ID] = s
			if _, ok := seenDomain[s.DomainID]; !ok {
				seenDomain[s.DomainID] = struct{}{}
				domainIDs = append(domainIDs, s.DomainID)
			}
		}
	}
	if len(domainIDs) > 0 {
		domains, err := a.domains.GetDomainsByIDs(ctx, domainIDs)
		if err != nil {
			return nil, err
		}
		for _, d := range domains {
			l.domains[d.ID] = d
		}
	}
	if len(companyIDs) > 0 {
		companies, err := a.companies.GetCompaniesByIDs(ctx, companyIDs)
		if err != nil {
			return nil, err
		}
		for _, c := range companies {
			l.companies[c.ID] = c
		}
	}
	if len(skillIDs) > 0 {
		skills, err := a.skills.GetSkillsByIDs(ctx, skillIDs)
		if err != nil {
			return nil, err
		}
		for _, s := range skills {
			l.skills[s.ID] = s
		}
	}
	return l, nil
}

func (l *lookup) response(j *job.Job) job.JobResponse {
	resp := job.JobResponse{
		ID:                  j.ID,
		Title:               j.Title,
		Description:         j.Description,
		Responsibilities:    textOrNil(j.Responsibilities),
		Requirements:        textOrNil(j.Requirements),
		PreferredSkills:     textOrNil(j.PreferredSkills),
		CompanyID:           j.CompanyID,
		Location:            textOrNil(j.Location),
		LocationType:        j.LocationType,
		SalaryMin:           copyInt(j.SalaryMin),
		SalaryMax:           copyInt(j.SalaryMax),
		SalaryCurrency:      j.SalaryCurrency,
		SalaryPeriod:        j.SalaryPeriod,
		JobType:             j.JobType,
		ExperienceLevel:     j.ExperienceLevel,
		ApplicationLink:     j.ApplicationLink,
		ApplicationDeadline: copyTime(j.ApplicationDeadline),
		PostedDate:          j.PostedDate,
		IsActive:            j.IsActive,
		ViewCount:           j.ViewCount,
		ClickCount:          j.ClickCount,
		ImageURL:            textOrNil(j.ImageURL),
		QRCodeURL:           textOrNil(j.QRCodeURL),
		Domains:             []domain.DomainSummary{},
		Subdomains:          []domain.SubdomainSummary{},
		Skills:              []skill.SkillSummary{},
		CreatedAt:           j.CreatedAt,
		UpdatedAt:           j.UpdatedAt,
	}

	if c, ok := l.companies[j.CompanyID]; ok {
		summary := c.ToSummary()
		resp.Company = &summary
	}
	for _, id := range j.DomainIDs {
		if d, ok := l.domains[id]; ok {
			resp.Domains = append(resp.Domains, d.ToSummary())
		}
	}
	for _, id := range j.SubdomainIDs {
		s, ok := l.subdomains[id]
		if !ok {
			continue
		}
		parent := ""
		if d, ok := l.domains[s.DomainID]; ok {
			parent = d.Name
		}
		resp.Subdomains = append(resp.Subdomains, s.ToSummary(parent))
	}
	for _, js := range j.Skills {
		if s, ok := l.skills[js.SkillID]; ok {
			resp.Skills = append(resp.Skills, s.ToSummary(js.IsPrimary))
		}
	}
	return resp
}

func textOrNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}

func copyInt(n *int64) *int64 {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
