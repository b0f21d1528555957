package pagination

const (
	// DefaultPageSize is used when a page size is not provided.
	DefaultPageSize = 12
	// MaxPageSize caps how many rows any page query can request.
	MaxPageSize = 100
)

// Params holds 1-based page inputs from controllers or services.
type Params struct {
	Page     int
	PageSize int
}

// Normalize clamps the page to >= 1 and the size to (0, max], using
// defaultSize when unset. Non-positive limits fall back to the package values.
func Normalize(p Params, defaultSize, maxSize int) Params {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	if maxSize <= 0 {
		maxSize = MaxPageSize
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = defaultSize
	}
	if p.PageSize > maxSize {
		p.PageSize = maxSize
	}
	return p
}

// Offset returns the zero-based row offset of the first item on the page.
func (p Params) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// TotalPages returns how many pages total rows span.
func TotalPages(total int64, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
