package normalize

import (
	"regexp"
	"strconv"

	"github.com/arjunv/invoice-organizer/internal/document"
)

// Patterns compiles a list of case-insensitive regular expressions.
// Used for the static pattern tables below; panics on a bad expression.
func Patterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(`(?i)`+e))
	}
	return out
}

// FindValue scans the mapping's keys in insertion order and returns the
// value of the first key matched by any pattern. Returns false if no
// key matches or the mapping is nil.
func FindValue(m *document.Mapping, patterns []*regexp.Regexp) (any, bool) {
	if m == nil {
		return nil, false
	}
	for _, key := range m.Keys() {
		for _, pattern := range patterns {
			if pattern.MatchString(key) {
				v, _ := m.Get(key)
				return v, true
			}
		}
	}
	return nil, false
}

// FindString is FindValue narrowed to a string result. Numeric values
// are formatted; mappings and sequences come back empty.
func FindString(m *document.Mapping, patterns []*regexp.Regexp) string {
	v, ok := FindValue(m, patterns)
	if !ok {
		return ""
	}
	return AsString(v)
}

// AsString renders a scalar tree value as a string. Non-scalars render
// empty rather than as Go syntax.
func AsString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}
