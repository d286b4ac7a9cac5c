package ports

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageRequest is a 1-based page of a fixed size.
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize clamps out-of-range values to the defaults.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset is the number of rows to skip. Call on a normalized request.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageMeta describes where a page sits in the full result set.
type PageMeta struct {
	TotalItems  int64 `json:"totalItems"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	Limit       int   `json:"limit"`
}

// NewPageMeta computes totalPages as ceil(total/limit).
func NewPageMeta(p PageRequest, total int64) PageMeta {
	pages := 0
	if p.Limit > 0 {
		pages = int(total / int64(p.Limit))
		if total%int64(p.Limit) != 0 {
			pages++
		}
	}
	return PageMeta{TotalItems: total, CurrentPage: p.Page, TotalPages: pages, Limit: p.Limit}
}
