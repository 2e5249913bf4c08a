package job_test

import (
	"testing"

	"github.com/Abraxas-365/applymint/recruitment/job"
)

func q(kv ...string) map[string][]string {
	out := make(map[string][]string)
	for i := 0; i+1 < len(kv); i += 2 {
		out[kv[i]] = append(out[kv[i]], kv[i+1])
	}
	return out
}

// ── Defaults ────────────────────────────────────────────────────────────────

func TestParseFilterOptions_Defaults(t *testing.T) {
	f := job.ParseFilterOptions(nil)
	if f.Page != 1 || f.PageSize != 10 {
		t.Errorf("page=%d pageSize=%d, want 1/10", f.Page, f.PageSize)
	}
	if f.SortBy != job.SortByPostedDate || f.SortDir != job.SortDesc {
		t.Errorf("sort = %s %s", f.SortBy, f.SortDir)
	}
	if f.Search != nil || f.Domain != nil || f.MinSalary != nil || f.Remote != nil || f.PostedWithin != nil {
		t.Errorf("expected every filter absent: %+v", f)
	}
}

// ── Numbers ─────────────────────────────────────────────────────────────────

func TestParseFilterOptions_Salary(t *testing.T) {
	cases := []struct {
		raw  string
		want *int64
	}{
		{"90000", ptr(int64(90000))},
		{"90000.9", ptr(int64(90000))},
		{"0", nil},
		{"-5", nil},
		{"abc", nil},
		{"", nil},
		{"NaN", nil},
	}
	for _, c := range cases {
		f := job.ParseFilterOptions(q("minSalary", c.raw))
		switch {
		case c.want == nil && f.MinSalary != nil:
			t.Errorf("minSalary=%q: got %d, want absent", c.raw, *f.MinSalary)
		case c.want != nil && (f.MinSalary == nil || *f.MinSalary != *c.want):
			t.Errorf("minSalary=%q: got %v, want %d", c.raw, f.MinSalary, *c.want)
		}
	}
}

func TestParseFilterOptions_Paging(t *testing.T) {
	cases := []struct {
		page, size         string
		wantPage, wantSize int
	}{
		{"2", "20", 2, 20},
		{"0", "0", 1, 10},
		{"-3", "1000", 1, 100},
		{"x", "y", 1, 10},
		{"2.0", "5", 2, 5},
	}
	for _, c := range cases {
		f := job.ParseFilterOptions(q("page", c.page, "pageSize", c.size))
		if f.Page != c.wantPage || f.PageSize != c.wantSize {
			t.Errorf("page=%q pageSize=%q: got %d/%d, want %d/%d",
				c.page, c.size, f.Page, f.PageSize, c.wantPage, c.wantSize)
		}
	}
}

// ── Text, enums and flags ───────────────────────────────────────────────────

func TestParseFilterOptions_TextIsTrimmedAndRepeatedKeysIgnored(t *testing.T) {
	f := job.ParseFilterOptions(q("search", "  golang  ", "domain", "a", "domain", "b"))
	if f.Search == nil || *f.Search != "golang" {
		t.Errorf("search = %v", f.Search)
	}
	if f.Domain != nil {
		t.Errorf("repeated domain key should be absent, got %q", *f.Domain)
	}

	blank := job.ParseFilterOptions(q("search", "   "))
	if blank.Search != nil {
		t.Error("blank search should be absent")
	}
}

func TestParseFilterOptions_Enums(t *testing.T) {
	f := job.ParseFilterOptions(q("jobType", "full-time", "locationType", "Mars"))
	if f.JobType == nil || *f.JobType != job.JobTypeFullTime {
		t.Errorf("jobType = %v", f.JobType)
	}
	// unknown values are kept and simply match nothing
	if f.LocationType == nil || *f.LocationType != "Mars" {
		t.Errorf("locationType = %v", f.LocationType)
	}
}

func TestParseFilterOptions_Remote(t *testing.T) {
	cases := map[string]*bool{
		"true":  ptr(true),
		"1":     ptr(true),
		"yes":   ptr(true),
		"false": ptr(false),
		"0":     ptr(false),
		"maybe": nil,
	}
	for raw, want := range cases {
		f := job.ParseFilterOptions(q("remote", raw))
		if (want == nil) != (f.Remote == nil) || (want != nil && *want != *f.Remote) {
			t.Errorf("remote=%q: got %v", raw, f.Remote)
		}
	}
}

func TestParseFilterOptions_Sort(t *testing.T) {
	cases := []struct {
		by, dir string
		wantBy  job.SortKey
		wantDir job.SortDirection
	}{
		{"salary", "asc", job.SortBySalary, job.SortAsc},
		{"title", "", job.SortByTitle, job.SortDesc},
		{"viewCount", "DESC", job.SortByViewCount, job.SortDesc},
		{"popularity", "asc", job.SortByPostedDate, job.SortDesc},
		{"", "asc", job.SortByPostedDate, job.SortAsc},
	}
	for _, c := range cases {
		raw := q()
		if c.by != "" {
			raw["sortBy"] = []string{c.by}
		}
		if c.dir != "" {
			raw["sortDir"] = []string{c.dir}
		}
		f := job.ParseFilterOptions(raw)
		if f.SortBy != c.wantBy || f.SortDir != c.wantDir {
			t.Errorf("sortBy=%q sortDir=%q: got %s %s", c.by, c.dir, f.SortBy, f.SortDir)
		}
	}

	alias := job.ParseFilterOptions(q("orderBy", "salary", "orderDirection", "asc"))
	if alias.SortBy != job.SortBySalary || alias.SortDir != job.SortAsc {
		t.Errorf("orderBy alias: got %s %s", alias.SortBy, alias.SortDir)
	}
}

func TestParseFilterOptions_IncludeInactiveOnlyForAdmin(t *testing.T) {
	raw := q("includeInactive", "true")
	if job.ParseFilterOptions(raw).IncludeInactive {
		t.Error("public parse must ignore includeInactive")
	}
	if !job.ParseAdminFilterOptions(raw).IncludeInactive {
		t.Error("admin parse should honor includeInactive")
	}
}

func TestParseFilterOptions_PostedWithin(t *testing.T) {
	f := job.ParseFilterOptions(q("postedWithin", "7"))
	if f.PostedWithin == nil || *f.PostedWithin != 7 {
		t.Errorf("postedWithin = %v", f.PostedWithin)
	}
	if job.ParseFilterOptions(q("postedWithin", "0")).PostedWithin != nil {
		t.Error("zero days should be absent")
	}
}

func ptr[T any](v T) *T { return &v }
