package job

import (
	"strings"
	"time"

	"github.com/Abraxas-365/applymint/pkg/kernel"
)

type ClauseKind int

const (
	ClauseActive ClauseKind = iota + 1
	ClauseDomain
	ClauseSkill
	ClauseJobType
	ClauseExperienceLevel
	ClauseLocationType
	ClauseSalaryMin
	ClauseSalaryMax
	ClauseSearch
	ClausePostedSince
	ClauseExcludeID
	ClauseRelatedTo
	ClauseDeadlinePassed
)

// Clause is a single condition on a job. Only the operand fields relevant
// to Kind are set.
type Clause struct {
	Kind      ClauseKind
	Text      string
	Number    int64
	Time      time.Time
	JobID     kernel.JobID
	DomainIDs []kernel.DomainID
	SkillIDs  []kernel.SkillID
}

func IsActive() Clause {
	return Clause{Kind: ClauseActive}
}

// DomainIs matches jobs classified under a domain with this name or id
func DomainIs(nameOrID string) Clause {
	return Clause{Kind: ClauseDomain, Text: nameOrID}
}

// SkillIs matches jobs listing a skill with this name or id
func SkillIs(nameOrID string) Clause {
	return Clause{Kind: ClauseSkill, Text: nameOrID}
}

func JobTypeIs(t JobType) Clause {
	return Clause{Kind: ClauseJobType, Text: string(t)}
}

func ExperienceLevelIs(l ExperienceLevel) Clause {
	return Clause{Kind: ClauseExperienceLevel, Text: string(l)}
}

func LocationTypeIs(l LocationType) Clause {
	return Clause{Kind: ClauseLocationType, Text: string(l)}
}

// SalaryAtLeast matches jobs whose recorded minimum salary is >= n. Jobs
// without a minimum never match.
func SalaryAtLeast(n int64) Clause {
	return Clause{Kind: ClauseSalaryMin, Number: n}
}

// SalaryAtMost matches jobs whose recorded maximum salary is <= n. Jobs
// without a maximum never match.
func SalaryAtMost(n int64) Clause {
	return Clause{Kind: ClauseSalaryMax, Number: n}
}

// TextSearch matches q case-insensitively in title, description or company name
func TextSearch(q string) Clause {
	return Clause{Kind: ClauseSearch, Text: q}
}

func PostedSince(t time.Time) Clause {
	return Clause{Kind: ClausePostedSince, Time: t}
}

func ExcludeJob(id kernel.JobID) Clause {
	return Clause{Kind: ClauseExcludeID, JobID: id}
}

// DeadlinePassed matches jobs whose application deadline is before t
func DeadlinePassed(t time.Time) Clause {
	return Clause{Kind: ClauseDeadlinePassed, Time: t}
}

// RelatedTo matches jobs sharing at least one of the domains or skills
func RelatedTo(domains []kernel.DomainID, skills []kernel.SkillID) Clause {
	return Clause{
		Kind:      ClauseRelatedTo,
		DomainIDs: append([]kernel.DomainID(nil), domains...),
		SkillIDs:  append([]kernel.SkillID(nil), skills...),
	}
}

// Relations carries the names a predicate needs that are not on Job itself
type Relations struct {
	CompanyName string
	DomainNames map[kernel.DomainID]string
	SkillNames  map[kernel.SkillID]string
}

// Matches evaluates the clause against a job in memory
func (c Clause) Matches(j *Job, rel Relations) bool {
	switch c.Kind {
	case ClauseActive:
		return j.IsActive
	case ClauseDomain:
		for _, id := range j.DomainIDs {
			if string(id) == c.Text || rel.DomainNames[id] == c.Text {
				return true
			}
		}
		return false
	case ClauseSkill:
		for _, s := range j.Skills {
			if string(s.SkillID) == c.Text || rel.SkillNames[s.SkillID] == c.Text {
				return true
			}
		}
		return false
	case ClauseJobType:
		return string(j.JobType) == c.Text
	case ClauseExperienceLevel:
		return string(j.ExperienceLevel) == c.Text
	case ClauseLocationType:
		return string(j.LocationType) == c.Text
	case ClauseSalaryMin:
		return j.SalaryMin != nil && *j.SalaryMin >= c.Number
	case ClauseSalaryMax:
		return j.SalaryMax != nil && *j.SalaryMax <= c.Number
	case ClauseSearch:
		q := strings.ToLower(c.Text)
		return strings.Contains(strings.ToLower(j.Title), q) ||
			strings.Contains(strings.ToLower(j.Description), q) ||
			strings.Contains(strings.ToLower(rel.CompanyName), q)
	case ClausePostedSince:
		return !j.PostedDate.Before(c.Time)
	case ClauseExcludeID:
		return j.ID != c.JobID
	case ClauseRelatedTo:
		for _, d := range c.DomainIDs {
			if j.HasDomain(d) {
				return true
			}
		}
		for _, s := range c.SkillIDs {
			if j.HasSkill(s) {
				return true
			}
		}
		return false
	case ClauseDeadlinePassed:
		return j.IsExpired(c.Time)
	}
	return false
}

// Predicate is the conjunction of its clauses; the empty predicate matches
// everything
type Predicate struct {
	clauses []Clause
}

// NewPredicate returns the conjunction of clauses
func NewPredicate(clauses ...Clause) Predicate {
	return Predicate{}.And(clauses...)
}

// And returns a new predicate with clauses added; p is left untouched
func (p Predicate) And(clauses ...Clause) Predicate {
	out := make([]Clause, 0, len(p.clauses)+len(clauses))
	out = append(out, p.clauses...)
	out = append(out, clauses...)
	return Predicate{clauses: out}
}

// Clauses returns a copy of the clauses in insertion order
func (p Predicate) Clauses() []Clause {
	return append([]Clause(nil), p.clauses...)
}

func (p Predicate) IsEmpty() bool { return len(p.clauses) == 0 }

// Has reports whether a clause of kind is present
func (p Predicate) Has(kind ClauseKind) bool {
	for _, c := range p.clauses {
		if c.Kind == kind {
			return true
		}
	}
	return false
}

func (p Predicate) Matches(j *Job, rel Relations) bool {
	for _, c := range p.clauses {
		if !c.Matches(j, rel) {
			return false
		}
	}
	return true
}

// BuildPredicate translates filters into clauses. Absent filters add
// nothing, so they can never narrow a result.
func BuildPredicate(f FilterOptions, now time.Time) Predicate {
	var cs []Clause
	if !f.IncludeInactive {
		cs = append(cs, IsActive())
	}
	if f.Domain != nil {
		cs = append(cs, DomainIs(*f.Domain))
	}
	if f.Skill != nil {
		cs = append(cs, SkillIs(*f.Skill))
	}
	if f.JobType != nil {
		cs = append(cs, JobTypeIs(*f.JobType))
	}
	if f.ExperienceLevel != nil {
		cs = append(cs, ExperienceLevelIs(*f.ExperienceLevel))
	}
	if f.LocationType != nil {
		cs = append(cs, LocationTypeIs(*f.LocationType))
	}
	if f.Remote != nil && *f.Remote {
		cs = append(cs, LocationTypeIs(LocationRemote))
	}
	if f.MinSalary != nil {
		cs = append(cs, SalaryAtLeast(*f.MinSalary))
	}
	if f.MaxSalary != nil {
		cs = append(cs, SalaryAtMost(*f.MaxSalary))
	}
	if f.Search != nil {
		cs = append(cs, TextSearch(*f.Search))
	}
	if f.PostedWithin != nil {
		cs = append(cs, PostedSince(now.AddDate(0, 0, -*f.PostedWithin)))
	}
	return NewPredicate(cs...)
}

// SimilarCandidates is the predicate for jobs related to source
func SimilarCandidates(source *Job) Predicate {
	return NewPredicate(
		IsActive(),
		ExcludeJob(source.ID),
		RelatedTo(source.DomainIDs, source.SkillIDs()),
	)
}
