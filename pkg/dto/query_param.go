package dto

import "math"

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

type Filter struct {
	Limit  int    `query:"limit"`
	Page   int    `query:"page"`
	Q      string `query:"q"`
	Brand  string `query:"brand"`
	Status string `query:"status"`
}

// Normalize clamps paging values so handlers never pass a zero or unbounded limit
// down to the repositories.
func (f Filter) Normalize() Filter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if f.Page > math.MaxInt/f.Limit {
		f.Page = math.MaxInt / f.Limit
	}
	return f
}

func (f Filter) Offset() int {
	return (f.Page - 1) * f.Limit
}
