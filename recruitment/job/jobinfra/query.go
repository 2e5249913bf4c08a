package jobinfra

import (
	"strings"

	"github.com/Abraxas-365/applymint/recruitment/job"
	"github.com/gocraft/dbr/v2"
)

// Every condition below is written against the jobs table aliased as j.

// condition compiles p into a dbr condition; nil for the empty predicate
func condition(p job.Predicate) dbr.Builder {
	clauses := p.Clauses()
	if len(clauses) == 0 {
		return nil
	}
	conds := make([]dbr.Builder, 0, len(clauses))
	for _, c := range clauses {
		conds = append(conds, clauseCondition(c))
	}
	if len(conds) == 1 {
		return conds[0]
	}
	return dbr.And(conds...)
}

func clauseCondition(c job.Clause) dbr.Builder {
	switch c.Kind {
	case job.ClauseActive:
		return dbr.Expr("j.is_active = TRUE")
	case job.ClauseDomain:
		return dbr.Expr(`EXISTS (SELECT 1 FROM job_domains jd JOIN domains d ON d.id = jd.domain_id
			WHERE jd.job_id = j.id AND (d.id = ? OR d.name = ?))`, c.Text, c.Text)
	case job.ClauseSkill:
		return dbr.Expr(`EXISTS (SELECT 1 FROM job_skills js JOIN skills s ON s.id = js.skill_id
			WHERE js.job_id = j.id AND (s.id = ? OR s.name = ?))`, c.Text, c.Text)
	case job.ClauseJobType:
		return dbr.Eq("j.job_type", c.Text)
	case job.ClauseExperienceLevel:
		return dbr.Eq("j.experience_level", c.Text)
	case job.ClauseLocationType:
		return dbr.Eq("j.location_type", c.Text)
	case job.ClauseSalaryMin:
		return dbr.Gte("j.salary_min", c.Number)
	case job.ClauseSalaryMax:
		return dbr.Lte("j.salary_max", c.Number)
	case job.ClauseSearch:
		pattern := "%" + escapeLike(c.Text) + "%"
		return dbr.Expr(`(j.title ILIKE ? ESCAPE '\' OR j.description ILIKE ? ESCAPE '\'
			OR EXISTS (SELECT 1 FROM companies c WHERE c.id = j.company_id AND c.name ILIKE ? ESCAPE '\'))`,
			pattern, pattern, pattern)
	case job.ClausePostedSince:
		return dbr.Gte("j.posted_date", c.Time)
	case job.ClauseExcludeID:
		return dbr.Neq("j.id", c.JobID.String())
	case job.ClauseDeadlinePassed:
		return dbr.Lt("j.application_deadline", c.Time)
	case job.ClauseRelatedTo:
		return relatedCondition(c)
	}
	return dbr.Expr("FALSE")
}

func relatedCondition(c job.Clause) dbr.Builder {
	var conds []dbr.Builder
	if len(c.DomainIDs) > 0 {
		ids := make([]string, len(c.DomainIDs))
		for i, id := range c.DomainIDs {
			ids[i] = id.String()
		}
		conds = append(conds, dbr.Expr(
			"EXISTS (SELECT 1 FROM job_domains jd WHERE jd.job_id = j.id AND jd.domain_id IN ?)", ids))
	}
	if len(c.SkillIDs) > 0 {
		ids := make([]string, len(c.SkillIDs))
		for i, id := range c.SkillIDs {
			ids[i] = id.String()
		}
		conds = append(conds, dbr.Expr(
			"EXISTS (SELECT 1 FROM job_skills js WHERE js.job_id = j.id AND js.skill_id IN ?)", ids))
	}
	switch len(conds) {
	case 0:
		return dbr.Expr("FALSE")
	case 1:
		return conds[0]
	}
	return dbr.Or(conds...)
}

// applyOrdering adds the ORDER BY for o followed by the id tie-break
func applyOrdering(stmt *dbr.SelectStmt, o job.Ordering) *dbr.SelectStmt {
	dir := "DESC"
	if o.Direction == job.SortAsc {
		dir = "ASC"
	}
	switch o.Key {
	case job.SortBySalary:
		stmt.OrderBy("j.salary_min " + dir + " NULLS LAST")
	case job.SortByTitle:
		stmt.OrderBy(`j.title COLLATE "C" ` + dir)
	case job.SortByViewCount:
		stmt.OrderBy("j.view_count " + dir)
	default:
		stmt.OrderBy("j.posted_date " + dir)
	}
	return stmt.OrderAsc("j.id")
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
