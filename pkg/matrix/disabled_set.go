package matrix

// DisabledSet is an insertion-ordered set of cell keys. Absence means enabled.
type DisabledSet struct {
	keys  []string
	index map[string]struct{}
}

// NewDisabledSet builds a set from keys, dropping duplicates and blanks while keeping
// the first occurrence order.
func NewDisabledSet(keys ...string) *DisabledSet {
	s := &DisabledSet{index: make(map[string]struct{}, len(keys))}
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

// Add inserts a key. It reports whether the key was new.
func (s *DisabledSet) Add(key string) bool {
	if key == "" {
		return false
	}
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[key]; ok {
		return false
	}
	s.index[key] = struct{}{}
	s.keys = append(s.keys, key)
	return true
}

// Contains reports whether the pairing behind key is disabled
func (s *DisabledSet) Contains(key string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[key]
	return ok
}

// Len returns the number of disabled keys
func (s *DisabledSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Keys returns a copy of the keys in insertion order. Never nil.
func (s *DisabledSet) Keys() []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}
