package ports

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PageRequest is a 1-based page request. Zero values fall back to defaults.
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize clamps the request: page >= 1, 1 <= limit <= MaxPageLimit,
// using defaultLimit when no limit was given.
func (p PageRequest) Normalize(defaultLimit int) PageRequest {
	if defaultLimit <= 0 {
		defaultLimit = DefaultPageLimit
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// Skip is the number of rows to skip for this page.
func (p PageRequest) Skip() int64 {
	return int64((p.Page - 1) * p.Limit)
}

// Pagination describes where a page sits in the full result set.
type Pagination struct {
	Page       int   `json:"current"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"totalItems"`
	TotalPages int   `json:"total"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// NewPagination derives page metadata from a normalized request and a total.
func NewPagination(req PageRequest, total int64) Pagination {
	pages := 0
	if req.Limit > 0 {
		pages = int((total + int64(req.Limit) - 1) / int64(req.Limit))
	}
	return Pagination{
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: pages,
		HasNext:    int64(req.Page*req.Limit) < total,
		HasPrev:    req.Page > 1,
	}
}
