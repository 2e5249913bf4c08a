package job

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// SortKey is a job field results can be ordered by
type SortKey string

const (
	SortByPostedDate SortKey = "postedDate"
	SortBySalary     SortKey = "salary"
	SortByTitle      SortKey = "title"
	SortByViewCount  SortKey = "viewCount"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// FilterOptions is the typed form of a job search request. A nil pointer
// means the filter is absent and must not narrow the result.
type FilterOptions struct {
	Search          *string
	Domain          *string
	Skill           *string
	JobType         *JobType
	ExperienceLevel *ExperienceLevel
	LocationType    *LocationType
	MinSalary       *int64
	MaxSalary       *int64
	Remote          *bool
	PostedWithin    *int // days
	SortBy          SortKey
	SortDir         SortDirection
	Page            int
	PageSize        int
	IncludeInactive bool
}

// DefaultFilterOptions matches every active job, newest first
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		SortBy:   SortByPostedDate,
		SortDir:  SortDesc,
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}
}

// Ordering returns the sort requested by the filter
func (f FilterOptions) Ordering() Ordering {
	return NewOrdering(f.SortBy, f.SortDir)
}

// Window returns the skip/take pair for the requested page
func (f FilterOptions) Window() Window {
	return NewWindow(f.Page, f.PageSize)
}

// ParseFilterOptions turns raw query parameters into FilterOptions. It never
// fails: malformed values are dropped and defaults take their place.
// includeInactive is ignored; see ParseAdminFilterOptions.
func ParseFilterOptions(raw map[string][]string) FilterOptions {
	f := DefaultFilterOptions()
	p := params(raw)

	f.Search = p.text("search")
	f.Domain = p.text("domain")
	f.Skill = p.text("skill")

	if v := p.text("jobType"); v != nil {
		t, _ := ParseJobType(*v)
		f.JobType = &t
	}
	if v := p.text("experienceLevel"); v != nil {
		l, _ := ParseExperienceLevel(*v)
		f.ExperienceLevel = &l
	}
	if v := p.text("locationType"); v != nil {
		l, _ := ParseLocationType(*v)
		f.LocationType = &l
	}

	f.MinSalary = p.positiveInt("minSalary")
	f.MaxSalary = p.positiveInt("maxSalary")
	f.Remote = p.boolean("remote")
	if days := p.positiveInt("postedWithin"); days != nil && *days <= math.MaxInt32 {
		d := int(*days)
		f.PostedWithin = &d
	}

	if v := p.first("sortBy", "orderBy"); v != nil {
		f.SortBy, f.SortDir = parseSort(*v, p.first("sortDir", "orderDirection"))
	} else if dir := p.first("sortDir", "orderDirection"); dir != nil {
		f.SortDir = parseDirection(*dir)
	}

	if page := p.integer("page"); page != nil {
		f.Page = int(clamp(*page, 1, math.MaxInt32))
	}
	if size := p.positiveInt("pageSize"); size != nil {
		f.PageSize = int(clamp(*size, 1, MaxPageSize))
	}

	return f
}

// ParseAdminFilterOptions is ParseFilterOptions plus includeInactive
func ParseAdminFilterOptions(raw map[string][]string) FilterOptions {
	f := ParseFilterOptions(raw)
	if b := params(raw).boolean("includeInactive"); b != nil {
		f.IncludeInactive = *b
	}
	return f
}

// parseSort resolves a sort key. Unknown keys fall back to newest first
// regardless of the requested direction.
func parseSort(key string, dir *string) (SortKey, SortDirection) {
	var k SortKey
	switch strings.ToLower(key) {
	case "posteddate":
		k = SortByPostedDate
	case "salary":
		k = SortBySalary
	case "title":
		k = SortByTitle
	case "viewcount":
		k = SortByViewCount
	default:
		return SortByPostedDate, SortDesc
	}
	if dir == nil {
		return k, SortDesc
	}
	return k, parseDirection(*dir)
}

func parseDirection(s string) SortDirection {
	if strings.EqualFold(s, string(SortAsc)) {
		return SortAsc
	}
	return SortDesc
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// params reads single-valued parameters; a repeated key counts as absent
type params map[string][]string

func (p params) text(key string) *string {
	vals, ok := p[key]
	if !ok || len(vals) != 1 {
		return nil
	}
	v := strings.TrimSpace(vals[0])
	if v == "" {
		return nil
	}
	return &v
}

func (p params) first(keys ...string) *string {
	for _, k := range keys {
		if v := p.text(k); v != nil {
			return v
		}
	}
	return nil
}

// integer accepts whole numbers and truncates finite decimals ("2.0", "90000.5")
func (p params) integer(key string) *int64 {
	v := p.text(key)
	if v == nil {
		return nil
	}
	if n, err := strconv.ParseInt(*v, 10, 64); err == nil {
		return &n
	}
	fv, err := strconv.ParseFloat(*v, 64)
	if err != nil || math.IsNaN(fv) || math.IsInf(fv, 0) || math.Abs(fv) > math.MaxInt64/2 {
		return nil
	}
	n := int64(fv)
	return &n
}

// positiveInt treats zero and negatives as absent
func (p params) positiveInt(key string) *int64 {
	n := p.integer(key)
	if n == nil || *n <= 0 {
		return nil
	}
	return n
}

func (p params) boolean(key string) *bool {
	v := p.text(key)
	if v == nil {
		return nil
	}
	var b bool
	switch strings.ToLower(*v) {
	case "true", "1", "yes", "on":
		b = true
	case "false", "0", "no", "off":
		b = false
	default:
		return nil
	}
	return &b
}
