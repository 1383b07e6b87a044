package shared

// Filter carries common list query options
type Filter struct {
	Limit   int
	Offset  int
	OrderBy string
	Desc    bool
}

// DefaultFilter returns a filter with sensible pagination defaults
func DefaultFilter() Filter {
	return Filter{
		Limit:  20,
		Offset: 0,
	}
}

// Paginated wraps a page of results with the total count
type Paginated[T any] struct {
	Items  []T
	Total  int64
	Limit  int
	Offset int
}
