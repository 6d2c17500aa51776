package params

import "appointments-api/core/constants"

// QueryParams carries standard list-endpoint parameters.
type QueryParams struct {
	PageNumber int
	PageSize   int
	Search     string
}

// Normalize clamps paging values into their valid ranges.
func (p QueryParams) Normalize() QueryParams {
	if p.PageNumber < 1 {
		p.PageNumber = 1
	}
	if p.PageSize < 1 {
		p.PageSize = constants.DefaultPageSize
	}
	if p.PageSize > constants.MaxPageSize {
		p.PageSize = constants.MaxPageSize
	}
	return p
}

// Offset returns the SQL offset for the current page.
func (p QueryParams) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}
