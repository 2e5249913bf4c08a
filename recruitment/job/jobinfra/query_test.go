package jobinfra

import (
	"strings"
	"testing"
	"time"

	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/recruitment/job"
	"github.com/gocraft/dbr/v2"
	"github.com/gocraft/dbr/v2/dialect"
)

func render(t *testing.T, p job.Predicate, o job.Ordering, w job.Window) string {
	t.Helper()
	stmt := findStatement(dbr.Select("j.id"), p, o, w)
	sql, err := interpolate(stmt)
	if err != nil {
		t.Fatalf("interpolate: %v", err)
	}
	return sql
}

// interpolate renders a dbr statement as the SQL sent to PostgreSQL
func interpolate(b dbr.Builder) (string, error) {
	d := dialect.PostgreSQL
	buf := dbr.NewBuffer()
	if err := b.Build(d, buf); err != nil {
		return "", err
	}
	return dbr.InterpolateForDialect(buf.String(), buf.Value(), d)
}

// ── Predicate compilation ───────────────────────────────────────────────────

func TestCondition_EmptyPredicateHasNoWhere(t *testing.T) {
	if condition(job.NewPredicate()) != nil {
		t.Fatal("empty predicate should compile to no condition")
	}
	sql := render(t, job.NewPredicate(), job.NewOrdering(job.SortByPostedDate, job.SortDesc), job.NewWindow(1, 10))
	if strings.Contains(sql, "WHERE") {
		t.Errorf("unexpected WHERE in %s", sql)
	}
}

func TestCondition_ClauseFragments(t *testing.T) {
	cases := []struct {
		name   string
		clause job.Clause
		want   []string
	}{
		{"active", job.IsActive(), []string{"j.is_active = TRUE"}},
		{"domain by name or id", job.DomainIs("Technology"), []string{"job_domains jd", "d.id = 'Technology' OR d.name = 'Technology'"}},
		{"skill by name or id", job.SkillIs("Go"), []string{"job_skills js", "s.id = 'Go' OR s.name = 'Go'"}},
		{"salary floor", job.SalaryAtLeast(90000), []string{"salary_min", ">= 90000"}},
		{"salary ceiling", job.SalaryAtMost(120000), []string{"salary_max", "<= 120000"}},
		{"search", job.TextSearch("golang"), []string{"j.title ILIKE '%golang%'", "c.name ILIKE"}},
		{"exclude", job.ExcludeJob("job-1"), []string{"!= 'job-1'"}},
		{"related", job.RelatedTo([]kernel.DomainID{"d1"}, []kernel.SkillID{"s1", "s2"}),
			[]string{"jd.domain_id IN (", "'d1'", "js.skill_id IN (", "'s2'", " OR "}},
		{"related to nothing", job.RelatedTo(nil, nil), []string{"FALSE"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sql := render(t, job.NewPredicate(c.clause), job.NewOrdering("", ""), job.Window{})
			for _, frag := range c.want {
				if !strings.Contains(sql, frag) {
					t.Errorf("missing %q in %s", frag, sql)
				}
			}
		})
	}
}

func TestCondition_SearchEscapesWildcards(t *testing.T) {
	sql := render(t, job.NewPredicate(job.TextSearch("100%_done")), job.NewOrdering("", ""), job.Window{})
	if strings.Contains(sql, "'%100%_done%'") {
		t.Errorf("wildcards in the search text were not escaped: %s", sql)
	}
	if !strings.Contains(sql, "ESCAPE") {
		t.Errorf("expected an ESCAPE clause: %s", sql)
	}
}

func TestCondition_ClausesAreConjoined(t *testing.T) {
	p := job.NewPredicate(job.IsActive(), job.JobTypeIs(job.JobTypeFullTime), job.PostedSince(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	sql := render(t, p, job.NewOrdering("", ""), job.Window{})
	if strings.Count(sql, " AND ") < 2 {
		t.Errorf("expected clauses joined with AND: %s", sql)
	}
}

// ── Ordering and window ─────────────────────────────────────────────────────

func TestApplyOrdering(t *testing.T) {
	cases := []struct {
		ordering job.Ordering
		want     string
	}{
		{job.NewOrdering(job.SortByPostedDate, job.SortDesc), "ORDER BY j.posted_date DESC, j.id ASC"},
		{job.NewOrdering(job.SortBySalary, job.SortAsc), "ORDER BY j.salary_min ASC NULLS LAST, j.id ASC"},
		{job.NewOrdering(job.SortBySalary, job.SortDesc), "ORDER BY j.salary_min DESC NULLS LAST, j.id ASC"},
		{job.NewOrdering(job.SortByTitle, job.SortAsc), `ORDER BY j.title COLLATE "C" ASC, j.id ASC`},
		{job.NewOrdering(job.SortByViewCount, job.SortDesc), "ORDER BY j.view_count DESC, j.id ASC"},
		{job.NewOrdering("bogus", job.SortAsc), "ORDER BY j.posted_date DESC, j.id ASC"},
	}
	for _, c := range cases {
		sql := render(t, job.NewPredicate(), c.ordering, job.Window{})
		if !strings.Contains(sql, c.want) {
			t.Errorf("ordering %+v: missing %q in %s", c.ordering, c.want, sql)
		}
	}
}

func TestFindStatement_Window(t *testing.T) {
	sql := render(t, job.NewPredicate(), job.NewOrdering("", ""), job.NewWindow(3, 10))
	if !strings.Contains(sql, "LIMIT 10") || !strings.Contains(sql, "OFFSET 20") {
		t.Errorf("expected LIMIT 10 OFFSET 20 in %s", sql)
	}
}

func TestEscapeLike(t *testing.T) {
	if got := escapeLike(`a%b_c\d`); got != `a\%b\_c\\d` {
		t.Errorf("escapeLike = %q", got)
	}
}

// ── Deactivation ────────────────────────────────────────────────────────────

func TestDeactivateStatement_KeepsValuesOutOfTheQueryText(t *testing.T) {
	at := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	p := job.NewPredicate(job.TextSearch("x'); DELETE FROM jobs; --"))
	stmt := deactivateStatement(dbr.Update("jobs"), p, at)

	buf := dbr.NewBuffer()
	if err := stmt.Build(dialect.PostgreSQL, buf); err != nil {
		t.Fatalf("build: %v", err)
	}
	if strings.Contains(buf.String(), "DELETE") || strings.Contains(buf.String(), "2026") {
		t.Errorf("values leaked into query text: %s", buf.String())
	}
	if len(buf.Value()) != 3 {
		t.Errorf("expected 3 bound values, got %d", len(buf.Value()))
	}

	sql, err := interpolate(stmt)
	if err != nil {
		t.Fatalf("interpolate: %v", err)
	}
	for _, frag := range []string{`UPDATE "jobs" SET`, `"is_active" = FALSE`, `id IN (SELECT j.id FROM "jobs" AS "j"`, "j.is_active = TRUE", "x'');"} {
		if !strings.Contains(sql, frag) {
			t.Errorf("missing %q in %s", frag, sql)
		}
	}
	if strings.Contains(sql, "x');") {
		t.Errorf("search text escaped its literal: %s", sql)
	}
}

func TestDeactivateStatement_EmptyPredicateTargetsActiveJobs(t *testing.T) {
	stmt := deactivateStatement(dbr.Update("jobs"), job.NewPredicate(), time.Now())
	sql, err := interpolate(stmt)
	if err != nil {
		t.Fatalf("interpolate: %v", err)
	}
	if !strings.Contains(sql, "WHERE (j.is_active = TRUE))") {
		t.Errorf("expected only the active filter in %s", sql)
	}
}
