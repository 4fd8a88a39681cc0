package fmc

import (
	"net/url"
	"strconv"
)

// QueryParams represents the list options accepted by FMC collection
// endpoints.
type QueryParams struct {
	// Offset is the index of the first item to return.
	Offset int
	// Limit is the maximum number of items per page.
	Limit int
	// Filter is the FMC filter expression, e.g. "name:web-server-01".
	Filter string
	// Expanded asks the server to return full objects instead of references.
	Expanded bool
}

// NewQueryParams creates empty query parameters.
func NewQueryParams() *QueryParams {
	return &QueryParams{}
}

// WithFilter sets the filter expression.
func (q *QueryParams) WithFilter(filter string) *QueryParams {
	q.Filter = filter

	return q
}

// WithLimit sets the page size.
func (q *QueryParams) WithLimit(limit int) *QueryParams {
	q.Limit = limit

	return q
}

// WithOffset sets the start offset.
func (q *QueryParams) WithOffset(offset int) *QueryParams {
	q.Offset = offset

	return q
}

// WithExpanded requests full objects.
func (q *QueryParams) WithExpanded(expanded bool) *QueryParams {
	q.Expanded = expanded

	return q
}

// ToValues converts the parameters to url.Values.
func (q *QueryParams) ToValues() url.Values {
	values := url.Values{}

	if q == nil {
		return values
	}

	if q.Offset > 0 {
		values.Set("offset", strconv.Itoa(q.Offset))
	}

	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}

	if q.Filter != "" {
		values.Set("filter", q.Filter)
	}

	if q.Expanded {
		values.Set("expanded", "true")
	}

	return values
}
