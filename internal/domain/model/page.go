package model

import (
	"math"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	DefaultSortField = "createdAt"
)

// SortDirection is the order of a sorted listing.
type SortDirection int

const (
	SortAsc  SortDirection = 1
	SortDesc SortDirection = -1
)

// ParseSortDirection accepts "asc"/"desc" (or "1"/"-1"). Empty means descending.
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "desc", "-1":
		return SortDesc, nil
	case "asc", "1":
		return SortAsc, nil
	default:
		return 0, ErrInvalidSortDir
	}
}

// SortAllowlist is the set of fields a listing may be sorted by.
type SortAllowlist map[string]struct{}

func NewSortAllowlist(fields ...string) SortAllowlist {
	a := make(SortAllowlist, len(fields))
	for _, f := range fields {
		a[f] = struct{}{}
	}
	return a
}

func (a SortAllowlist) Allows(field string) bool {
	_, ok := a[field]
	return ok
}

var (
	VideoSortFields      = NewSortAllowlist("createdAt", "updatedAt", "views", "duration", "title")
	CommentSortFields    = NewSortAllowlist("createdAt", "updatedAt")
	TweetSortFields      = NewSortAllowlist("createdAt", "updatedAt")
	LikedVideoSortFields = NewSortAllowlist("createdAt")
)

// PageRequest describes one page of a sorted listing. Pages are 1-based.
type PageRequest struct {
	Page    int64
	Limit   int64
	SortBy  string
	SortDir SortDirection
}

// NewPageRequest validates paging parameters against allowed sort fields.
// Zero page/limit and an empty sort field fall back to defaults.
func NewPageRequest(page, limit int64, sortBy string, dir SortDirection, allowed SortAllowlist) (PageRequest, error) {
	if page == 0 {
		page = DefaultPage
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if sortBy == "" {
		sortBy = DefaultSortField
	}
	if dir == 0 {
		dir = SortDesc
	}

	if page < 1 {
		return PageRequest{}, ErrInvalidPage
	}
	if limit < 1 || limit > MaxLimit {
		return PageRequest{}, ErrInvalidLimit
	}
	// Skip must stay representable.
	if page-1 > math.MaxInt64/limit {
		return PageRequest{}, ErrInvalidPage
	}
	if !allowed.Allows(sortBy) {
		return PageRequest{}, ErrInvalidSortField
	}
	if dir != SortAsc && dir != SortDesc {
		return PageRequest{}, ErrInvalidSortDir
	}

	return PageRequest{Page: page, Limit: limit, SortBy: sortBy, SortDir: dir}, nil
}

// DefaultPageRequest is page 1 of 10, newest first.
func DefaultPageRequest() PageRequest {
	return PageRequest{Page: DefaultPage, Limit: DefaultLimit, SortBy: DefaultSortField, SortDir: SortDesc}
}

// Skip is the number of items before this page.
func (p PageRequest) Skip() int64 {
	return (p.Page - 1) * p.Limit
}

// Page is one page of results plus the total number of matching items.
type Page[T any] struct {
	Items []T
	Total int64
	Page  int64
	Limit int64
}

func NewPage[T any](items []T, total int64, req PageRequest) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Items: items, Total: total, Page: req.Page, Limit: req.Limit}
}

func (p *Page[T]) TotalPages() int64 {
	if p.Limit <= 0 || p.Total == 0 {
		return 0
	}
	return (p.Total + p.Limit - 1) / p.Limit
}

func (p *Page[T]) HasPrev() bool {
	return p.Page > 1
}

func (p *Page[T]) HasNext() bool {
	return p.Page < p.TotalPages()
}
