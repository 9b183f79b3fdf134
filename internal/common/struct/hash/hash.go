// Released under an MIT license. See LICENSE.

// Package hash provides kaguya's name to overload list mapping type.
package hash

import (
	"sort"
	"sync"

	"github.com/kaguya-lang/kaguya/internal/common/struct/lazy"
)

// T (hash) maps names to one or more alternatives.
type T struct {
	sync.RWMutex
	m map[string][]*lazy.T
}

type hash = T

// New creates a new hash.
func New() *hash {
	return &hash{m: map[string][]*lazy.T{}}
}

// Add appends v to the alternatives for the name k in the hash h.
func (h *hash) Add(k string, v *lazy.T) {
	h.Lock()
	defer h.Unlock()

	h.m[k] = append(h.m[k], v)
}

// Get retrieves a copy of the alternatives for the name k in the hash h.
func (h *hash) Get(k string) []*lazy.T {
	if h == nil {
		return nil
	}

	h.RLock()
	defer h.RUnlock()

	vs := h.m[k]
	if vs == nil {
		return nil
	}

	return append([]*lazy.T(nil), vs...)
}

// Names returns the defined names in the hash h in sorted order.
func (h *hash) Names() []string {
	h.RLock()
	defer h.RUnlock()

	names := make([]string, 0, len(h.m))
	for k := range h.m {
		names = append(names, k)
	}

	sort.Strings(names)

	return names
}

// Size returns the number of names in the hash h.
func (h *hash) Size() int {
	h.RLock()
	defer h.RUnlock()

	return len(h.m)
}
