// Package listing parses pagination and filter query parameters and builds
// the paged list payload.
package listing

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/dates"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page is a validated page request.
type Page struct {
	Page     int
	PageSize int
}

// Offset is the number of rows to skip.
func (p Page) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ParsePage reads page and pageSize, falling back to defaults on missing,
// malformed or non-positive values and capping pageSize.
func ParsePage(q url.Values) Page {
	p := Page{Page: 1, PageSize: DefaultPageSize}
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n >= 1 {
		p.Page = n
	}
	if n, err := strconv.Atoi(q.Get("pageSize")); err == nil && n >= 1 {
		p.PageSize = min(n, MaxPageSize)
	}
	return p
}

// Result is the data payload of every list endpoint.
type Result[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// NewResult wraps one page of items. A nil slice renders as [].
func NewResult[T any](items []T, total int, p Page) Result[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if p.PageSize > 0 {
		pages = (total + p.PageSize - 1) / p.PageSize
	}
	return Result[T]{Items: items, Total: total, Page: p.Page, PageSize: p.PageSize, TotalPages: pages}
}

// Slice returns the page window of an already filtered and ordered slice.
func Slice[T any](all []T, p Page) []T {
	start := p.Offset()
	if start >= len(all) {
		return []T{}
	}
	end := min(start+p.PageSize, len(all))
	return all[start:end]
}

func badParam(name string) error {
	return dErrors.New(dErrors.CodeBadRequest, "Invalid "+name+" parameter")
}

// String returns a trimmed parameter, nil when absent or empty.
func String(q url.Values, name string) *string {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return nil
	}
	return &v
}

// Bool parses "true"/"false" case-insensitively.
func Bool(q url.Values, name string) (*bool, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return nil, nil
	}
	switch strings.ToLower(v) {
	case "true":
		b := true
		return &b, nil
	case "false":
		b := false
		return &b, nil
	}
	return nil, badParam(name)
}

// Int parses an integer parameter.
func Int(q url.Values, name string) (*int, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, badParam(name)
	}
	return &n, nil
}

// IntOr parses an integer parameter with a default.
func IntOr(q url.Values, name string, def int) (int, error) {
	n, err := Int(q, name)
	if err != nil {
		return 0, err
	}
	if n == nil {
		return def, nil
	}
	return *n, nil
}

// Date parses an ISO-8601 date parameter.
func Date(q url.Values, name string) (*dates.Date, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return nil, nil
	}
	t, err := dates.ParseTime(v)
	if err != nil {
		return nil, badParam(name)
	}
	d := dates.FromTime(t)
	return &d, nil
}

// UUID parses an id parameter.
func UUID(q url.Values, name string) (*uuid.UUID, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, badParam(name)
	}
	return &id, nil
}
