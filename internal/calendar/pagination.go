package calendar

const defaultPageSize = 20

// Page is one page of a listing. Page numbers start at 1.
type Page[T any] struct {
	Items    []T  `json:"items"`
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	HasNext  bool `json:"has_next"`
	HasPrev  bool `json:"has_prev"`
	Total    int  `json:"total"`
}

// PageBounds clamps page/pageSize to sane values and returns the offset.
func PageBounds(page, pageSize int) (int, int, int) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	return page, pageSize, (page - 1) * pageSize
}

// NewPage wraps items that were already limited by the store.
func NewPage[T any](items []T, page, pageSize, total int) Page[T] {
	page, pageSize, offset := PageBounds(page, pageSize)
	return Page[T]{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		HasPrev:  page > 1,
		HasNext:  offset+len(items) < total,
		Total:    total,
	}
}

// Paginate slices an in-memory list.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	page, pageSize, start := PageBounds(page, pageSize)

	total := len(items)
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return NewPage(items[start:end], page, pageSize, total)
}
