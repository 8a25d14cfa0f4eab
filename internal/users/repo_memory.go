package users

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory Store useful for tests.
// It is not intended for production use.
//
// It counts store operations so gate tests can assert that anonymous or
// malformed requests never touch the store.
type MemoryRepo struct {
	mu      sync.Mutex
	byExtID map[string]User

	finds   int
	ensures int
	inserts int

	// FailNext makes the next store call return this error, then clears it.
	FailNext error
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byExtID: make(map[string]User)}
}

func (r *MemoryRepo) FindByExternalID(ctx context.Context, externalID string) (User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finds++
	if err := r.takeFailure(); err != nil {
		return User{}, false, err
	}
	u, ok := r.byExtID[externalID]
	return u, ok, nil
}

func (r *MemoryRepo) Ensure(ctx context.Context, in User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensures++
	if err := r.takeFailure(); err != nil {
		return User{}, err
	}
	if existing, ok := r.byExtID[in.ExternalID]; ok {
		return existing, nil
	}
	r.inserts++
	r.byExtID[in.ExternalID] = in
	return in, nil
}

// Put seeds a user directly, bypassing provisioning. Tests use it to stage
// admin rows, since the service itself never writes roles.
func (r *MemoryRepo) Put(u User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byExtID[u.ExternalID] = u
}

// Ops reports total store calls and how many of them inserted a row.
func (r *MemoryRepo) Ops() (calls, inserts int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.finds + r.ensures, r.inserts
}

func (r *MemoryRepo) takeFailure() error {
	err := r.FailNext
	r.FailNext = nil
	return err
}
