package document

// A document tree is the unvalidated output of a source extractor. Its
// values are one of: nil, bool, string, float64, []any (sequence) or
// *Mapping. No shape is guaranteed; field names vary per source.

// Mapping is a string-keyed node that preserves key insertion order.
// Plain Go maps iterate in random order, which would make pattern scans
// and first-sequence fallbacks nondeterministic, so keys are tracked in
// a slice alongside the value map.
type Mapping struct {
	keys   []string
	values map[string]any
}

// NewMapping creates an empty Mapping
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]any)}
}

// Set stores a value under key, appending the key on first insertion
func (m *Mapping) Set(key string, value any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key
func (m *Mapping) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order. The returned slice is
// shared; callers must not modify it.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// Len returns the number of keys
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Clone returns a deep copy of the mapping. Nested mappings and
// sequences are copied; scalars are shared.
func (m *Mapping) Clone() *Mapping {
	if m == nil {
		return nil
	}
	out := NewMapping()
	for _, k := range m.keys {
		out.Set(k, cloneValue(m.values[k]))
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case *Mapping:
		return val.Clone()
	case []any:
		out := make([]any, len(val))
		for i, el := range val {
			out[i] = cloneValue(el)
		}
		return out
	default:
		return v
	}
}

// FirstSequence finds the first sequence-valued property in the tree
// using a breadth-first scan over mappings in key order, bounded by
// maxDepth levels of nesting. Returns false if no sequence exists.
func FirstSequence(root *Mapping, maxDepth int) ([]any, bool) {
	type entry struct {
		node  *Mapping
		depth int
	}
	if root == nil {
		return nil, false
	}
	queue := []entry{{node: root, depth: 0}}
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		for _, k := range e.node.Keys() {
			v, _ := e.node.Get(k)
			switch val := v.(type) {
			case []any:
				return val, true
			case *Mapping:
				if e.depth+1 < maxDepth {
					queue = append(queue, entry{node: val, depth: e.depth + 1})
				}
			}
		}
	}
	return nil, false
}
