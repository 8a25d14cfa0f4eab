package surveys

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory Store useful for tests.
// It is not intended for production use.
type MemoryRepo struct {
	mu   sync.Mutex
	byID map[string]Survey
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Survey)}
}

func (r *MemoryRepo) List(ctx context.Context) ([]Survey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Survey, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (Survey, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	return s, ok, nil
}

func (r *MemoryRepo) Insert(ctx context.Context, s Survey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[s.ID] = s
	return nil
}

func (r *MemoryRepo) Update(ctx context.Context, s Survey) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[s.ID]; !ok {
		return false, nil
	}
	r.byID[s.ID] = s
	return true, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}
