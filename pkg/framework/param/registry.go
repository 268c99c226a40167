package param

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Registry holds a plugin's parameters keyed by serialization tag, in
// registration order. It is used from the control thread; the audio thread
// should keep its own *Param references.
type Registry struct {
	params map[string]*Param
	order  []string
	mu     sync.RWMutex
}

// NewRegistry creates a new parameter registry
func NewRegistry() *Registry {
	return &Registry{
		params: make(map[string]*Param),
		order:  make([]string, 0),
	}
}

// Add registers parameters. If any tag is already present, or repeated in
// params, nothing is added.
func (r *Registry) Add(params ...*Param) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if _, exists := r.params[p.Tag()]; exists || seen[p.Tag()] {
			return fmt.Errorf("%w: %q", ErrDuplicateTag, p.Tag())
		}
		seen[p.Tag()] = true
	}

	for _, p := range params {
		r.params[p.Tag()] = p
		r.order = append(r.order, p.Tag())

		logrus.WithFields(logrus.Fields{
			"function": "Registry.Add",
			"tag":      p.Tag(),
			"name":     p.Name(),
		}).Debug("Parameter registered")
	}

	return nil
}

// Get retrieves a parameter by tag, or nil
func (r *Registry) Get(tag string) *Param {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.params[tag]
}

// GetByIndex retrieves a parameter by registration index, or nil
func (r *Registry) GetByIndex(index int) *Param {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= len(r.order) {
		return nil
	}

	return r.params[r.order[index]]
}

// Count returns the number of parameters
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}

// All returns all parameters in order
func (r *Registry) All() []*Param {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Param, len(r.order))
	for i, tag := range r.order {
		result[i] = r.params[tag]
	}

	return result
}

// PollDirty clears every parameter's UI dirty flag and calls fn for those
// that were set. It returns how many were dirty.
func (r *Registry) PollDirty(fn func(p *Param)) int {
	n := 0
	for _, p := range r.All() {
		if p.IsUIDirty() {
			n++
			if fn != nil {
				fn(p)
			}
		}
	}
	return n
}
