package domain

import (
	"math"
	"time"
)

const (
	DefaultPage  = 1
	DefaultLimit = 5
	MaxLimit     = 100

	// MaxOffset bounds how many rows a listing may skip.
	MaxOffset = math.MaxInt32
)

// TodoFilter narrows a todo listing. Zero values mean "no constraint",
// except Page and Limit which fall back to the defaults.
type TodoFilter struct {
	OwnerID  string
	Status   TodoStatus
	Search   string
	DueStart *time.Time
	DueEnd   *time.Time
	Page     int
	Limit    int
}

// Normalize clamps paging to the supported range.
func (f TodoFilter) Normalize() TodoFilter {
	f.Page, f.Limit = NormalizePaging(f.Page, f.Limit)
	return f
}

func (f TodoFilter) Offset() int {
	return Offset(f.Page, f.Limit)
}

// MaxPage is the last page number whose offset stays within MaxOffset.
func MaxPage(limit int) int {
	_, limit = NormalizePaging(1, limit)
	return MaxOffset/limit + 1
}

// Offset returns the rows to skip for a 1-based page, saturating at MaxOffset.
func Offset(page, limit int) int {
	page, limit = NormalizePaging(page, limit)
	if page > MaxPage(limit) {
		return MaxOffset
	}
	return (page - 1) * limit
}

func NormalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// Page is one slice of a paginated listing.
type Page[T any] struct {
	Items []T
	Total int64
	Page  int
	Limit int
}

func (p Page[T]) TotalPages() int {
	if p.Limit <= 0 || p.Total == 0 {
		return 0
	}
	return int((p.Total + int64(p.Limit) - 1) / int64(p.Limit))
}
