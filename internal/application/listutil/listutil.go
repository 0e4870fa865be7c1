// Package listutil parses paging and filter query parameters for list
// endpoints.
package listutil

import (
	"net/url"
	"strconv"
)

// DefaultPerPage is the default number of rows per page.
const DefaultPerPage = 20

// PerPageOptions are the allowed rows-per-page values.
var PerPageOptions = []int{10, 20, 50, 100}

// PageParams carries pagination parameters parsed from a request.
type PageParams struct {
	Page    int `json:"page"`     // 1-indexed
	PerPage int `json:"per_page"` // rows per page
}

// Offset returns the SQL OFFSET for the current page.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// ParsePageParams extracts page and per_page from URL query values,
// applying defaults for missing or out-of-range values.
func ParsePageParams(q url.Values) PageParams {
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	if !isValidPerPage(perPage) {
		perPage = DefaultPerPage
	}
	return PageParams{Page: page, PerPage: perPage}
}

// ParseFilters extracts the recognised exact-match filters from URL
// query values. Unknown keys are dropped.
func ParseFilters(q url.Values, filterKeys []string) map[string]string {
	filters := make(map[string]string)
	for _, key := range filterKeys {
		if v := q.Get(key); v != "" {
			filters[key] = v
		}
	}
	return filters
}

// PageInfo carries pagination metadata for a response.
type PageInfo struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPageInfo computes pagination metadata, clamping the page into the
// valid range.
// PRE: total >= 0
func NewPageInfo(params PageParams, total int) PageInfo {
	perPage := params.PerPage
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	page := params.Page
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return PageInfo{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

func isValidPerPage(n int) bool {
	for _, opt := range PerPageOptions {
		if n == opt {
			return true
		}
	}
	return false
}
