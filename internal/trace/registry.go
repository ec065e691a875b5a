package trace

import (
	"fmt"
	"sort"
	"sync"

	"github.com/san-kum/algoviz/internal/algorithms"
)

type Registry struct {
	mu        sync.RWMutex
	producers map[string]algorithms.Producer
	order     []string
}

// NewRegistry returns a registry preloaded with the built-in producers.
func NewRegistry() *Registry {
	r := &Registry{producers: make(map[string]algorithms.Producer)}
	for _, info := range algorithms.Builtin() {
		r.producers[info.ID] = info.Produce
		r.order = append(r.order, info.ID)
	}
	return r
}

func (r *Registry) Register(id string, p algorithms.Producer) error {
	if p == nil {
		return fmt.Errorf("register %s: %w", id, ErrNilProducer)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.producers[id]; ok {
		return fmt.Errorf("register %s: %w", id, ErrDuplicateAlgo)
	}
	r.producers[id] = p
	r.order = append(r.order, id)
	return nil
}

func (r *Registry) Get(id string) (algorithms.Producer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.producers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgo, id)
	}
	return p, nil
}

// List returns ids in registration order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Sorted returns ids alphabetically.
func (r *Registry) Sorted() []string {
	out := r.List()
	sort.Strings(out)
	return out
}
