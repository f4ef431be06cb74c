package pagination

import (
	"math"
	"net/url"
	"strconv"
)

const (
	MaxPerPage = 100
	// MaxPage keeps Offset from overflowing at any per-page size.
	MaxPage = math.MaxInt32 / MaxPerPage

	DefaultPerPageProducts = 12
	DefaultPerPageOrders   = 10
	DefaultPerPageReviews  = 10
	DefaultPerPageAdmin    = 20
)

type Params struct {
	Page    int
	PerPage int
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// NewParams clamps page to [1, MaxPage] and perPage to [1, MaxPerPage].
func NewParams(page, perPage int) Params {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if perPage < 1 {
		perPage = 1
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return Params{Page: page, PerPage: perPage}
}

// ParseParams reads page and per_page from a query string. Values that do not
// parse as integers are ignored and the defaults apply.
func ParseParams(q url.Values, defaultPerPage int) Params {
	page := 1
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		page = v
	}
	perPage := defaultPerPage
	if v, err := strconv.Atoi(q.Get("per_page")); err == nil {
		perPage = v
	}
	return NewParams(page, perPage)
}

type Meta struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
	HasPrev bool  `json:"has_prev"`
	HasNext bool  `json:"has_next"`
}

func NewMeta(total int64, p Params) Meta {
	pages := 1
	if total > 0 {
		pages = int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
	}
	return Meta{
		Page:    p.Page,
		PerPage: p.PerPage,
		Pages:   pages,
		Total:   total,
		HasPrev: p.Page > 1,
		HasNext: p.Page < pages,
	}
}

type Page[T any] struct {
	Items []T
	Meta  Meta
}

func NewPage[T any](items []T, total int64, p Params) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Meta: NewMeta(total, p)}
}
