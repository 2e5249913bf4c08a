package job

import (
	"sort"
	"strings"
)

// Ordering is a primary sort followed by an id tie-break, so equal keys
// always come back in the same order
type Ordering struct {
	Key       SortKey
	Direction SortDirection
}

// NewOrdering normalizes key and direction; unknown keys mean newest first
func NewOrdering(key SortKey, dir SortDirection) Ordering {
	switch key {
	case SortByPostedDate, SortBySalary, SortByTitle, SortByViewCount:
	default:
		return Ordering{Key: SortByPostedDate, Direction: SortDesc}
	}
	if dir != SortAsc {
		dir = SortDesc
	}
	return Ordering{Key: key, Direction: dir}
}

// Less reports whether a sorts before b. Jobs without a salary sort last in
// both directions.
func (o Ordering) Less(a, b *Job) bool {
	if c := o.compare(a, b); c != 0 {
		return c < 0
	}
	return a.ID < b.ID
}

func (o Ordering) compare(a, b *Job) int {
	var c int
	switch o.Key {
	case SortBySalary:
		switch {
		case a.SalaryMin == nil && b.SalaryMin == nil:
			return 0
		case a.SalaryMin == nil:
			return 1
		case b.SalaryMin == nil:
			return -1
		}
		c = cmpInt64(*a.SalaryMin, *b.SalaryMin)
	case SortByTitle:
		c = strings.Compare(a.Title, b.Title)
	case SortByViewCount:
		c = cmpInt64(a.ViewCount, b.ViewCount)
	default:
		c = a.PostedDate.Compare(b.PostedDate)
	}
	if o.Direction == SortDesc {
		c = -c
	}
	return c
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// SortJobs sorts jobs in place by o
func SortJobs(jobs []*Job, o Ordering) {
	sort.SliceStable(jobs, func(i, j int) bool { return o.Less(jobs[i], jobs[j]) })
}

// Window is the slice of an ordered result set that makes up one page
type Window struct {
	Skip int
	Take int
}

// NewWindow computes skip/take for a 1-based page
func NewWindow(page, pageSize int) Window {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return Window{Skip: (page - 1) * pageSize, Take: pageSize}
}

// Paginate returns the window's part of items; past the end it is empty
func Paginate[T any](items []T, w Window) []T {
	if w.Skip >= len(items) {
		return []T{}
	}
	end := w.Skip + w.Take
	if end > len(items) {
		end = len(items)
	}
	return items[w.Skip:end]
}
