package payload

// Order of list results
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type (
	// PageReqQuery is the 1-based pagination query used by the training list.
	PageReqQuery struct {
		Page     int `form:"page"`
		PageSize int `form:"page_size" binding:"omitempty,lte=100"`
	}

	PageResp[T any] struct {
		Items    []T   `json:"items"`
		Page     int   `json:"page"`
		PageSize int   `json:"page_size"`
		Total    int64 `json:"total"`
	}
)

// Normalize applies the defaults and bounds: page >= 1, page size in
// [1, MaxPageSize] with DefaultPageSize when unset.
func (q *PageReqQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
}

// Offset is the row offset for the normalized page.
func (q *PageReqQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}
