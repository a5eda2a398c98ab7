package model

import "sort"

// Viewport is the measured size of the hosting container, in pixels.
type Viewport struct {
	Width  float64
	Height float64
}

// Valid reports whether the viewport has been measured.
func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}

// Margin is the inset between a chart box and its plotting area.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// Filter is an ordered, de-duplicated set of partition keys.
// The zero value is the empty filter.
type Filter struct {
	keys []string
}

// NewFilter builds a filter from keys, dropping blanks and duplicates.
func NewFilter(keys ...string) Filter {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return Filter{keys: out}
}

// Keys returns a copy of the keys in ascending order.
func (f Filter) Keys() []string {
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}

// Len returns the number of keys.
func (f Filter) Len() int { return len(f.keys) }

// Empty reports whether the filter holds no keys.
func (f Filter) Empty() bool { return len(f.keys) == 0 }

// Contains reports whether key is selected.
func (f Filter) Contains(key string) bool {
	i := sort.SearchStrings(f.keys, key)
	return i < len(f.keys) && f.keys[i] == key
}

// With returns a filter that also selects key.
func (f Filter) With(key string) Filter {
	return NewFilter(append(f.Keys(), key)...)
}

// Without returns a filter that no longer selects key.
func (f Filter) Without(key string) Filter {
	out := make([]string, 0, len(f.keys))
	for _, k := range f.keys {
		if k != key {
			out = append(out, k)
		}
	}
	return Filter{keys: out}
}

// SubsetOf reports whether every key is present in universe.
func (f Filter) SubsetOf(universe Filter) bool {
	for _, k := range f.keys {
		if !universe.Contains(k) {
			return false
		}
	}
	return true
}

// Equal reports whether both filters select the same keys.
func (f Filter) Equal(o Filter) bool {
	if len(f.keys) != len(o.keys) {
		return false
	}
	for i := range f.keys {
		if f.keys[i] != o.keys[i] {
			return false
		}
	}
	return true
}
