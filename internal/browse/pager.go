package browse

// DefaultPageSize is used when a pager is built with a non-positive size.
const DefaultPageSize = 10

// Pager walks a fixed-size result set one page at a time. Pages are
// numbered from 1; navigation clamps at both ends.
type Pager struct {
	total int
	size  int
	page  int
}

// NewPager returns a pager over total items positioned on page 1.
func NewPager(total, size int) *Pager {
	if size <= 0 {
		size = DefaultPageSize
	}
	if total < 0 {
		total = 0
	}
	return &Pager{total: total, size: size, page: 1}
}

// Pages is ceil(total/size); an empty set has zero pages.
func (p *Pager) Pages() int {
	return (p.total + p.size - 1) / p.size
}

// Page returns the current page number.
func (p *Pager) Page() int { return p.page }

// Size returns the page size.
func (p *Pager) Size() int { return p.size }

// Next advances one page and reports whether the page changed.
func (p *Pager) Next() bool {
	return p.Goto(p.page + 1)
}

// Prev moves back one page and reports whether the page changed.
func (p *Pager) Prev() bool {
	return p.Goto(p.page - 1)
}

// Goto moves to page n clamped to [1, Pages()] and reports whether the page
// changed.
func (p *Pager) Goto(n int) bool {
	last := max(p.Pages(), 1)
	n = min(max(n, 1), last)
	if n == p.page {
		return false
	}
	p.page = n
	return true
}

// Bounds returns the half-open slice window [start, end) of the current
// page.
func (p *Pager) Bounds() (start, end int) {
	start = min((p.page-1)*p.size, p.total)
	end = min(start+p.size, p.total)
	return start, end
}

// Slice returns the current page of items.
func Slice[T any](p *Pager, items []T) []T {
	start, end := p.Bounds()
	if end > len(items) {
		end = len(items)
	}
	if start > end {
		start = end
	}
	return items[start:end]
}
