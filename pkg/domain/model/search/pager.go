package search

// PageSize is the fixed number of results shown per page.
const PageSize = 10

// Pager slices an ordered result set of length total into fixed-size pages.
// The zero-based page index is clamped into the valid range, so callers can
// hand it raw navigation input.
type Pager struct {
	total int
	page  int
}

func NewPager(total, page int) Pager {
	if total < 0 {
		total = 0
	}
	last := lastPage(total)
	if page < 0 {
		page = 0
	}
	if page > last {
		page = last
	}
	return Pager{total: total, page: page}
}

func lastPage(total int) int {
	if total == 0 {
		return 0
	}
	return (total - 1) / PageSize
}

func (p Pager) Page() int {
	return p.page
}

// TotalPages is at least 1: an empty result set still renders as a single
// empty page.
func (p Pager) TotalPages() int {
	return lastPage(p.total) + 1
}

func (p Pager) Total() int {
	return p.total
}

// Bounds returns the half-open slice range [start, end) of the current page.
func (p Pager) Bounds() (int, int) {
	start := p.page * PageSize
	end := start + PageSize
	if end > p.total {
		end = p.total
	}
	if start > p.total {
		start = p.total
	}
	return start, end
}

func (p Pager) HasNext() bool {
	return (p.page+1)*PageSize < p.total
}

func (p Pager) HasPrev() bool {
	return p.page > 0
}
