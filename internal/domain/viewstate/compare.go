package viewstate

import (
	"cmp"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparator orders two records. It returns a negative number when a sorts
// before b, zero when they are equal and a positive number otherwise.
type Comparator[T any] func(a, b T) int

// TextComparator compares a string field with locale-aware collation.
// Missing values are empty strings, which sort first.
func TextComparator[T any](field func(T) string) Comparator[T] {
	// collate.Collator keeps internal buffers and is not safe for concurrent use.
	var mu sync.Mutex
	col := collate.New(language.Und)
	return func(a, b T) int {
		mu.Lock()
		defer mu.Unlock()
		return col.CompareString(field(a), field(b))
	}
}

// NumberComparator compares a numeric field. Missing values are zero.
func NumberComparator[T any](field func(T) float64) Comparator[T] {
	return func(a, b T) int {
		return cmp.Compare(field(a), field(b))
	}
}

func reverse[T any](c Comparator[T]) Comparator[T] {
	return func(a, b T) int {
		return c(b, a)
	}
}
