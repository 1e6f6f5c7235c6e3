package pagination

// Page is the list envelope every list endpoint returns.
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalPages int   `json:"totalPages"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
}

// TotalPages returns ceil(count/limit). A non-positive limit yields 0.
func TotalPages(count int64, limit int) int {
	if limit <= 0 || count <= 0 {
		return 0
	}
	return int((count + int64(limit) - 1) / int64(limit))
}

// Offset returns the row offset of a 1-based page.
func Offset(page, limit int) int {
	if page < 1 || limit < 1 {
		return 0
	}
	return (page - 1) * limit
}

// New assembles a page. Items is never nil so it encodes as [].
func New[T any](items []T, count int64, page, limit int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		TotalPages: TotalPages(count, limit),
		Page:       page,
		Limit:      limit,
		Total:      count,
	}
}
