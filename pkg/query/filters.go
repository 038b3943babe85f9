package query

import (
	"cmp"
	"fmt"
	"strings"
	"time"
)

// Status builds the usual all/active/inactive filter.
func Status[T any](isActive func(T) bool) FilterFunc[T] {
	return func(v string) (Predicate[T], error) {
		switch strings.ToLower(v) {
		case "all":
			return nil, nil
		case "active":
			return func(it T) bool { return isActive(it) }, nil
		case "inactive":
			return func(it T) bool { return !isActive(it) }, nil
		default:
			return nil, fmt.Errorf("invalid status %q", v)
		}
	}
}

// Equals matches a field exactly. The value "all" disables the filter.
func Equals[T any](field func(T) string) FilterFunc[T] {
	return func(v string) (Predicate[T], error) {
		if strings.EqualFold(v, "all") {
			return nil, nil
		}
		return func(it T) bool { return field(it) == v }, nil
	}
}

const dateLayout = "2006-01-02"

// DateFrom keeps items on or after the start of the given day.
func DateFrom[T any](at func(T) time.Time) FilterFunc[T] {
	return func(v string) (Predicate[T], error) {
		from, err := time.Parse(dateLayout, v)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q", v)
		}
		return func(it T) bool { return !at(it).Before(from) }, nil
	}
}

// DateTo keeps items up to and including the end of the given day.
func DateTo[T any](at func(T) time.Time) FilterFunc[T] {
	return func(v string) (Predicate[T], error) {
		day, err := time.Parse(dateLayout, v)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q", v)
		}
		end := EndOfDay(day)
		return func(it T) bool { return !at(it).After(end) }, nil
	}
}

// EndOfDay is the last representable instant of t's day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// By builds an ascending comparator from a key.
func By[T any, K cmp.Ordered](key func(T) K) func(a, b T) int {
	return func(a, b T) int { return cmp.Compare(key(a), key(b)) }
}

// ByFold compares strings case-insensitively.
func ByFold[T any](key func(T) string) func(a, b T) int {
	return func(a, b T) int { return cmp.Compare(strings.ToLower(key(a)), strings.ToLower(key(b))) }
}

// ByTime orders by a timestamp.
func ByTime[T any](key func(T) time.Time) func(a, b T) int {
	return func(a, b T) int { return key(a).Compare(key(b)) }
}
