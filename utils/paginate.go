package utils

// DefaultPageLimit is used when the request carries no usable limit.
const DefaultPageLimit = 20

type PageInfo struct {
	Page       int  `json:"page"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// Paginate slices an already-ordered, already-filtered result set.
// Unusable page/limit values fall back to 1 and DefaultPageLimit, and a
// page past the end is clamped to the last page rather than erroring.
// Callers short-circuit empty sets before paginating.
func Paginate[T any](results []T, page, limit int) ([]T, PageInfo) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if page <= 0 {
		page = 1
	}

	totalPages := (len(results) + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * limit
	end := start + limit
	if start > len(results) {
		start = len(results)
	}
	if end > len(results) {
		end = len(results)
	}

	return results[start:end], PageInfo{
		Page:       page,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
