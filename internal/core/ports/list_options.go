package ports

// SortOrder is the direction of a list query.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

const (
	DefaultListLimit = 10
	MaxListLimit     = 100
	DefaultSortField = "id"
)

// ListOptions carries the normalized pagination/sort options of a list endpoint.
// Sort is the public (JSON) field name; repositories map it to their own column.
type ListOptions struct {
	Limit int
	Sort  string
	Order SortOrder
}

// WithDefaults fills zero values with the documented defaults.
func (o ListOptions) WithDefaults() ListOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultListLimit
	}
	if o.Limit > MaxListLimit {
		o.Limit = MaxListLimit
	}
	if o.Sort == "" {
		o.Sort = DefaultSortField
	}
	if o.Order != SortDesc {
		o.Order = SortAsc
	}
	return o
}
