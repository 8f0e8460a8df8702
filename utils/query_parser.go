package utils

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// TimeFilterParams holds parsed time filter parameters
type TimeFilterParams struct {
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// ParseTimeFilters extracts and validates created_after / created_before.
func ParseTimeFilters(r *http.Request) (*TimeFilterParams, error) {
	params := &TimeFilterParams{}

	if str := r.URL.Query().Get("created_after"); str != "" {
		parsed, err := time.Parse(time.RFC3339, str)
		if err != nil {
			return nil, fmt.Errorf("invalid created_after format. Use RFC3339 (e.g., 2025-11-13T10:00:00Z)")
		}
		params.CreatedAfter = &parsed
	}

	if str := r.URL.Query().Get("created_before"); str != "" {
		parsed, err := time.Parse(time.RFC3339, str)
		if err != nil {
			return nil, fmt.Errorf("invalid created_before format. Use RFC3339 (e.g., 2025-11-13T10:00:00Z)")
		}
		params.CreatedBefore = &parsed
	}

	return params, nil
}

// ListFilter is the search box and status dropdown of an admin screen.
type ListFilter struct {
	Search string
	Status string
}

// ParseListFilter reads ?search= and ?status=. "all" and empty both mean
// no status filter.
func ParseListFilter(r *http.Request) ListFilter {
	q := r.URL.Query()
	status := strings.TrimSpace(q.Get("status"))
	if status == StatusAll {
		status = ""
	}
	return ListFilter{
		Search: strings.TrimSpace(q.Get("search")),
		Status: status,
	}
}

// ContainsFold reports whether any of the fields contains term, ignoring case.
// An empty term matches everything; nil fields never match.
func ContainsFold(term string, fields ...*string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if f != nil && strings.Contains(strings.ToLower(*f), term) {
			return true
		}
	}
	return false
}
