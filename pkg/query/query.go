// Package query filters, sorts and paginates small in-memory lists for the
// back-office listing pages.
package query

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var (
	ErrUnknownFilter = errors.New("unknown filter")
	ErrInvalidFilter = errors.New("invalid filter")
	ErrUnknownSort   = errors.New("unknown sort key")
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection accepts "asc" or "desc"; anything else is ascending.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Desc)) {
		return Desc
	}
	return Asc
}

// Params is one listing request.
type Params struct {
	Search   string            `json:"search,omitempty"`
	Filters  map[string]string `json:"filters,omitempty"`
	SortKey  string            `json:"sortKey,omitempty"`
	SortDir  Direction         `json:"sortDir,omitempty"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
}

// Reconcile resets the page to 1 when search, filters or sort differ from prev.
func (p Params) Reconcile(prev Params) Params {
	if p.Search != prev.Search || p.SortKey != prev.SortKey || p.SortDir != prev.SortDir ||
		!maps.Equal(nonEmpty(p.Filters), nonEmpty(prev.Filters)) {
		p.Page = 1
	}
	return p
}

func nonEmpty(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// Predicate selects items.
type Predicate[T any] func(T) bool

// FilterFunc turns a raw filter value into a predicate. It may reject the value.
type FilterFunc[T any] func(value string) (Predicate[T], error)

// Spec describes how a list of T is searched, filtered and sorted.
type Spec[T any] struct {
	// SearchFields return the texts matched by free-text search.
	SearchFields []func(T) string
	Filters      map[string]FilterFunc[T]
	Sorters      map[string]func(a, b T) int
	DefaultSort  string
	DefaultDir   Direction
}

type Page[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Pages    int `json:"pages"`
}

// Run applies search, filters, sort and pagination to items. The input slice
// is not modified. Ties keep their input order.
func Run[T any](items []T, spec Spec[T], p Params) (Page[T], error) {
	preds, err := spec.predicates(p)
	if err != nil {
		return Page[T]{}, err
	}

	needle := strings.ToLower(strings.TrimSpace(p.Search))
	matched := make([]T, 0, len(items))
	for _, it := range items {
		if needle != "" && !spec.matches(it, needle) {
			continue
		}
		if !all(preds, it) {
			continue
		}
		matched = append(matched, it)
	}

	key, dir := p.SortKey, p.SortDir
	if key == "" {
		key, dir = spec.DefaultSort, spec.DefaultDir
	}
	if key != "" {
		cmp, ok := spec.Sorters[key]
		if !ok {
			return Page[T]{}, fmt.Errorf("%w: %s", ErrUnknownSort, key)
		}
		if dir == Desc {
			asc := cmp
			cmp = func(a, b T) int { return asc(b, a) }
		}
		slices.SortStableFunc(matched, cmp)
	}

	return paginate(matched, p.Page, p.PageSize), nil
}

func (s Spec[T]) matches(it T, needle string) bool {
	for _, field := range s.SearchFields {
		if strings.Contains(strings.ToLower(field(it)), needle) {
			return true
		}
	}
	return false
}

func (s Spec[T]) predicates(p Params) ([]Predicate[T], error) {
	keys := make([]string, 0, len(p.Filters))
	for k, v := range p.Filters {
		if v != "" {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	preds := make([]Predicate[T], 0, len(keys))
	for _, k := range keys {
		build, ok := s.Filters[k]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownFilter, k)
		}
		pred, err := build(p.Filters[k])
		if err != nil {
			return nil, fmt.Errorf("%w %s: %w", ErrInvalidFilter, k, err)
		}
		if pred != nil {
			preds = append(preds, pred)
		}
	}
	return preds, nil
}

func all[T any](preds []Predicate[T], it T) bool {
	for _, p := range preds {
		if !p(it) {
			return false
		}
	}
	return true
}

// paginate is 1-indexed. A page past the end is empty, not an error.
// pageSize <= 0 returns everything on one page.
func paginate[T any](items []T, page, pageSize int) Page[T] {
	if page < 1 {
		page = 1
	}
	total := len(items)
	if pageSize <= 0 {
		return Page[T]{Items: items, Total: total, Page: 1, PageSize: total, Pages: 1}
	}

	pages := (total + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	if start >= total {
		return Page[T]{Items: []T{}, Total: total, Page: page, PageSize: pageSize, Pages: pages}
	}
	end := min(start+pageSize, total)
	return Page[T]{Items: items[start:end], Total: total, Page: page, PageSize: pageSize, Pages: pages}
}
