package kernel

// PaginationOptions is a 1-based page request
type PaginationOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Offset is the number of rows to skip
func (p PaginationOptions) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Limit is the number of rows to take
func (p PaginationOptions) Limit() int {
	return p.PageSize
}

// Page describes where a result slice sits inside the full result set
type Page struct {
	Number int `json:"page"`
	Size   int `json:"page_size"`
	Total  int `json:"total"`
	Pages  int `json:"page_count"`
}

// NewPage computes page metadata for total matching rows
func NewPage(opts PaginationOptions, total int) Page {
	pages := 0
	if opts.PageSize > 0 {
		pages = (total + opts.PageSize - 1) / opts.PageSize
	}
	return Page{
		Number: opts.Page,
		Size:   opts.PageSize,
		Total:  total,
		Pages:  pages,
	}
}

// Paginated is a page of items plus its metadata
type Paginated[T any] struct {
	Items []T `json:"items"`
	Page
	Empty bool `json:"empty"`
}

// NewPaginated builds a Paginated, never leaving Items nil
func NewPaginated[T any](items []T, opts PaginationOptions, total int) *Paginated[T] {
	if items == nil {
		items = []T{}
	}
	return &Paginated[T]{
		Items: items,
		Page:  NewPage(opts, total),
		Empty: len(items) == 0,
	}
}

// MapPaginated converts the items of p with fn, keeping the metadata
func MapPaginated[T, U any](p *Paginated[T], fn func(T) U) *Paginated[U] {
	out := make([]U, 0, len(p.Items))
	for _, item := range p.Items {
		out = append(out, fn(item))
	}
	return &Paginated[U]{Items: out, Page: p.Page, Empty: len(out) == 0}
}
