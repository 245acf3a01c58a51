package transport

import "strings"

// Headers is an insertion-ordered header mapping.
// Keys are compared case-insensitively; the first spelling is kept.
type Headers struct {
	keys   []string
	values map[string]string
}

// NewHeaders creates headers from key/value pairs
func NewHeaders(pairs ...string) *Headers {
	ret := &Headers{values: map[string]string{}}
	for i := 0; i+1 < len(pairs); i += 2 {
		ret.Set(pairs[i], pairs[i+1])
	}
	return ret
}

func (h *Headers) index(key string) int {
	for i, candidate := range h.keys {
		if strings.EqualFold(candidate, key) {
			return i
		}
	}
	return -1
}

// Set sets a header value, keeping the original position of an existing key
func (h *Headers) Set(key, value string) {
	if h.values == nil {
		h.values = map[string]string{}
	}
	if i := h.index(key); i != -1 {
		h.values[h.keys[i]] = value
		return
	}
	h.keys = append(h.keys, key)
	h.values[key] = value
}

// Get returns a header value
func (h *Headers) Get(key string) string {
	if h == nil {
		return ""
	}
	if i := h.index(key); i != -1 {
		return h.values[h.keys[i]]
	}
	return ""
}

// Has reports whether key is present
func (h *Headers) Has(key string) bool {
	return h != nil && h.index(key) != -1
}

// Del removes a header
func (h *Headers) Del(key string) {
	if h == nil {
		return
	}
	i := h.index(key)
	if i == -1 {
		return
	}
	delete(h.values, h.keys[i])
	h.keys = append(h.keys[:i], h.keys[i+1:]...)
}

// Len returns number of headers
func (h *Headers) Len() int {
	if h == nil {
		return 0
	}
	return len(h.keys)
}

// Keys returns header names in insertion order
func (h *Headers) Keys() []string {
	if h == nil {
		return nil
	}
	return append([]string(nil), h.keys...)
}

// Range iterates headers in insertion order until fn returns false
func (h *Headers) Range(fn func(key, value string) bool) {
	if h == nil {
		return
	}
	for _, key := range h.keys {
		if !fn(key, h.values[key]) {
			return
		}
	}
}

// Clone returns an independent copy
func (h *Headers) Clone() *Headers {
	ret := NewHeaders()
	h.Range(func(key, value string) bool {
		ret.Set(key, value)
		return true
	})
	return ret
}
