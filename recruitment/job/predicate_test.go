package job_test

import (
	"testing"
	"time"

	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/recruitment/job"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func fixture(id string, opts ...func(*job.Job)) *job.Job {
	j := &job.Job{
		ID:              kernel.JobID(id),
		Title:           "Backend Engineer",
		Description:     "Build services in Go",
		CompanyID:       "acme",
		LocationType:    job.LocationOnSite,
		JobType:         job.JobTypeFullTime,
		ExperienceLevel: job.ExperienceMid,
		PostedDate:      now.AddDate(0, 0, -1),
		IsActive:        true,
	}
	for _, o := range opts {
		o(j)
	}
	return j
}

func salary(min, max *int64) func(*job.Job) {
	return func(j *job.Job) { j.SalaryMin, j.SalaryMax = min, max }
}

var rel = job.Relations{
	CompanyName: "Acme Corp",
	DomainNames: map[kernel.DomainID]string{"d1": "Technology"},
	SkillNames:  map[kernel.SkillID]string{"s1": "Go"},
}

// ── Salary containment ──────────────────────────────────────────────────────

func TestBuildPredicate_SalaryScenario(t *testing.T) {
	jobs := []*job.Job{
		fixture("a", salary(ptr(int64(80000)), ptr(int64(100000)))),
		fixture("b", salary(ptr(int64(95000)), ptr(int64(130000)))),
		fixture("c", salary(nil, nil)),
	}
	f := job.DefaultFilterOptions()
	f.MinSalary = ptr(int64(90000))
	p := job.BuildPredicate(f, now)

	var got []kernel.JobID
	for _, j := range jobs {
		if p.Matches(j, rel) {
			got = append(got, j.ID)
		}
	}
	if len(got) != 1 || got[0] != "b" {
		t.Errorf("minSalary=90000 matched %v, want [b]", got)
	}

	f.MinSalary = nil
	f.MaxSalary = ptr(int64(110000))
	p = job.BuildPredicate(f, now)
	if !p.Matches(jobs[0], rel) || p.Matches(jobs[1], rel) || p.Matches(jobs[2], rel) {
		t.Error("maxSalary=110000 should match only a")
	}
}

// ── Clause semantics ────────────────────────────────────────────────────────

func TestClause_Matches(t *testing.T) {
	j := fixture("x", func(j *job.Job) {
		j.DomainIDs = []kernel.DomainID{"d1"}
		j.Skills = []job.JobSkill{{SkillID: "s1", IsPrimary: true}}
		j.LocationType = job.LocationRemote
	})
	cases := []struct {
		name   string
		clause job.Clause
		want   bool
	}{
		{"domain by name", job.DomainIs("Technology"), true},
		{"domain by id", job.DomainIs("d1"), true},
		{"other domain", job.DomainIs("Finance"), false},
		{"skill by name", job.SkillIs("Go"), true},
		{"search title", job.TextSearch("backend"), true},
		{"search company", job.TextSearch("ACME"), true},
		{"search miss", job.TextSearch("rust"), false},
		{"remote", job.LocationTypeIs(job.LocationRemote), true},
		{"posted since", job.PostedSince(now.AddDate(0, 0, -7)), true},
		{"posted too early", job.PostedSince(now), false},
		{"exclude self", job.ExcludeJob("x"), false},
		{"related by skill", job.RelatedTo(nil, []kernel.SkillID{"s1"}), true},
		{"related to nothing", job.RelatedTo(nil, nil), false},
		{"unknown enum", job.JobTypeIs("Freelance"), false},
	}
	for _, c := range cases {
		if got := c.clause.Matches(j, rel); got != c.want {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}

func TestBuildPredicate_InactiveExcludedUnlessRequested(t *testing.T) {
	inactive := fixture("i", func(j *job.Job) { j.IsActive = false })

	if job.BuildPredicate(job.DefaultFilterOptions(), now).Matches(inactive, rel) {
		t.Error("public search matched an inactive job")
	}
	f := job.DefaultFilterOptions()
	f.IncludeInactive = true
	if !job.BuildPredicate(f, now).Matches(inactive, rel) {
		t.Error("admin search should include inactive jobs")
	}
}

// ── Composition ─────────────────────────────────────────────────────────────

func TestPredicate_OrderIndependent(t *testing.T) {
	clauses := []job.Clause{
		job.IsActive(),
		job.SalaryAtLeast(50000),
		job.TextSearch("engineer"),
		job.JobTypeIs(job.JobTypeFullTime),
	}
	jobs := []*job.Job{
		fixture("1", salary(ptr(int64(60000)), nil)),
		fixture("2", salary(ptr(int64(40000)), nil)),
		fixture("3", salary(ptr(int64(60000)), nil), func(j *job.Job) { j.JobType = job.JobTypeContract }),
		fixture("4", salary(ptr(int64(70000)), nil), func(j *job.Job) { j.IsActive = false }),
	}

	reference := job.NewPredicate(clauses...)
	for _, perm := range permutations(len(clauses)) {
		ordered := make([]job.Clause, len(perm))
		for i, idx := range perm {
			ordered[i] = clauses[idx]
		}
		p := job.NewPredicate(ordered...)
		for _, j := range jobs {
			if p.Matches(j, rel) != reference.Matches(j, rel) {
				t.Fatalf("permutation %v disagrees on job %s", perm, j.ID)
			}
		}
	}
}

func TestPredicate_AddingClauseNeverWidens(t *testing.T) {
	jobs := []*job.Job{
		fixture("1", salary(ptr(int64(60000)), ptr(int64(90000)))),
		fixture("2", salary(nil, nil)),
		fixture("3", func(j *job.Job) { j.Title = "Designer" }),
	}
	extra := []job.Clause{
		job.SalaryAtLeast(10000),
		job.SalaryAtMost(100000),
		job.TextSearch("engineer"),
		job.PostedSince(now.AddDate(0, 0, -30)),
	}

	p := job.NewPredicate(job.IsActive())
	for _, c := range extra {
		narrower := p.And(c)
		for _, j := range jobs {
			if narrower.Matches(j, rel) && !p.Matches(j, rel) {
				t.Fatalf("adding %+v widened the match for %s", c, j.ID)
			}
		}
		p = narrower
	}
}

func TestPredicate_AndDoesNotMutateReceiver(t *testing.T) {
	p := job.NewPredicate(job.IsActive())
	_ = p.And(job.SalaryAtLeast(1))
	if len(p.Clauses()) != 1 {
		t.Errorf("receiver changed: %d clauses", len(p.Clauses()))
	}
	if !job.NewPredicate().IsEmpty() {
		t.Error("NewPredicate() should be empty")
	}
}

func TestSimilarCandidates(t *testing.T) {
	src := fixture("src", func(j *job.Job) { j.DomainIDs = []kernel.DomainID{"d1"} })
	p := job.SimilarCandidates(src)
	for _, kind := range []job.ClauseKind{job.ClauseActive, job.ClauseExcludeID, job.ClauseRelatedTo} {
		if !p.Has(kind) {
			t.Errorf("missing clause kind %d", kind)
		}
	}
	if p.Matches(src, rel) {
		t.Error("source must not be its own candidate")
	}
}

func permutations(n int) [][]int {
	if n == 0 {
		return [][]int{{}}
	}
	var out [][]int
	for _, p := range permutations(n - 1) {
		for i := 0; i <= len(p); i++ {
			next := make([]int, 0, n)
			next = append(next, p[:i]...)
			next = append(next, n-1)
			next = append(next, p[i:]...)
			out = append(out, next)
		}
	}
	return out
}
