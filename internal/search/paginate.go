package search

// Page is one page of results plus the page arithmetic callers render.
type Page[T any] struct {
	Items      []T
	TotalItems int
	TotalPages int
	Page       int
}

// Paginate slices items into 1-based pages of pageSize. A page beyond range
// (including page < 1) yields an empty Items with the true TotalPages; it
// is never clamped to the last valid page. A non-positive pageSize yields
// an empty page with zero total pages.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize <= 0 {
		return Page[T]{TotalItems: len(items), Page: page}
	}

	totalPages := (len(items) + pageSize - 1) / pageSize
	out := Page[T]{
		TotalItems: len(items),
		TotalPages: totalPages,
		Page:       page,
	}
	if page < 1 || page > totalPages {
		return out
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	out.Items = items[start:end]
	return out
}
