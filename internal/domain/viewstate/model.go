// Package viewstate derives filtered and sorted projections of fetched record
// sets. One Model serves every list view regardless of record type.
package viewstate

import (
	"slices"
	"strings"
)

// Project is the derivation rule: sort(filter(records, query), sortState).
// It never mutates records and returns a new slice.
func Project[T any](records []T, title func(T) string, query string, sort SortState, compare Comparator[T]) []T {
	out := filter(records, title, query)
	if !sort.Active() || compare == nil {
		return out
	}
	c := compare
	if sort.Direction == DirectionDescending {
		c = reverse(compare)
	}
	slices.SortStableFunc(out, c)
	return out
}

func filter[T any](records []T, title func(T) string, query string) []T {
	out := make([]T, 0, len(records))
	if query == "" || title == nil {
		return append(out, records...)
	}
	q := strings.ToLower(query)
	for _, rec := range records {
		if strings.Contains(strings.ToLower(title(rec)), q) {
			out = append(out, rec)
		}
	}
	return out
}

// Model holds a record set with its filter and sort state and keeps the
// derived projection current. A Model is owned by a single goroutine.
type Model[T any] struct {
	title      func(T) string
	records    []T
	query      string
	sort       SortState
	compare    Comparator[T]
	projection []T

	nextSub     int
	subscribers map[int]func([]T)
}

// New creates an empty model filtering on the given title field.
func New[T any](title func(T) string) *Model[T] {
	return &Model[T]{
		title:       title,
		sort:        SortState{Direction: DirectionNone},
		projection:  []T{},
		subscribers: make(map[int]func([]T)),
	}
}

// Load replaces the full record set. A failed fetch is loaded as nil.
func (m *Model[T]) Load(records []T) {
	m.records = slices.Clone(records)
	m.derive()
}

// SetFilterText updates the title query.
func (m *Model[T]) SetFilterText(q string) {
	m.query = q
	m.derive()
}

// SetSort selects a sort column. Selecting the active column again cycles
// ascending, descending, none. A new column replaces the previous one.
func (m *Model[T]) SetSort(columnKey string, compare Comparator[T]) {
	m.sort = m.sort.Toggle(columnKey)
	if m.sort.Active() {
		m.compare = compare
	} else {
		m.compare = nil
	}
	m.derive()
}

// Projection returns the current derived sequence.
func (m *Model[T]) Projection() []T {
	return slices.Clone(m.projection)
}

// Records returns the full record set in fetch order.
func (m *Model[T]) Records() []T {
	return slices.Clone(m.records)
}

func (m *Model[T]) Query() string { return m.query }
func (m *Model[T]) Sort() SortState { return m.sort }
func (m *Model[T]) Len() int { return len(m.projection) }

// PageCount returns the number of pages of the projection, never less than one.
func (m *Model[T]) PageCount(size int) int {
	if size <= 0 || len(m.projection) == 0 {
		return 1
	}
	return (len(m.projection) + size - 1) / size
}

// Page returns the zero-based page of the projection. The index is clamped.
func (m *Model[T]) Page(index, size int) []T {
	if size <= 0 {
		return m.Projection()
	}
	last := m.PageCount(size) - 1
	index = max(0, min(index, last))
	start := index * size
	if start >= len(m.projection) {
		return []T{}
	}
	end := min(start+size, len(m.projection))
	return slices.Clone(m.projection[start:end])
}

// Subscribe registers fn to receive every new projection. The returned func
// removes the subscription.
func (m *Model[T]) Subscribe(fn func([]T)) func() {
	id := m.nextSub
	m.nextSub++
	m.subscribers[id] = fn
	return func() {
		delete(m.subscribers, id)
	}
}

func (m *Model[T]) derive() {
	m.projection = Project(m.records, m.title, m.query, m.sort, m.compare)
	for _, fn := range m.subscribers {
		fn(m.Projection())
	}
}
