package domain

import "math"

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 20
)

type Pagination struct {
	Page     int
	PageSize int
}

func (p Pagination) Limit() int {
	return p.PageSize
}

// Offset saturates at math.MaxInt for pages past any addressable record.
func (p Pagination) Offset() int {
	if p.Page <= 1 || p.PageSize <= 0 {
		return 0
	}

	if p.Page-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}

	return (p.Page - 1) * p.PageSize
}

// Window clamps the page to [offset, offset+limit) of a slice of length n.
func (p Pagination) Window(n int) (int, int) {
	start := min(p.Offset(), n)
	end := min(start+p.Limit(), n)

	return start, end
}
