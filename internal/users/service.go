package users

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Store is the persistence boundary for local users.
//
// Ensure must be atomic get-or-insert: two concurrent calls with the same
// external id must both observe the same single row: the storage layer owns
// the uniqueness guarantee, not this package.
type Store interface {
	FindByExternalID(ctx context.Context, externalID string) (User, bool, error)
	Ensure(ctx context.Context, u User) (User, error)
}

// Service provisions local users lazily from decoded identity claims.
// It never mutates an existing row.
type Service struct {
	store Store
	// clock is injectable for deterministic tests.
	clock func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, clock: time.Now}
}

// Ensure returns the local user for an external identity, creating it with
// role "user" on first sight. The returned row is the one the store holds,
// whether this call created it or a previous one did.
func (s *Service) Ensure(ctx context.Context, externalID, email string) (User, error) {
	if externalID == "" {
		return User{}, ErrInvalidArgument
	}

	return s.store.Ensure(ctx, User{
		ID:         uuid.NewString(),
		ExternalID: externalID,
		Email:      email,
		Role:       RoleUser,
		CreatedAt:  s.clock().UTC(),
	})
}

// FindByExternalID looks up an existing local user without provisioning.
func (s *Service) FindByExternalID(ctx context.Context, externalID string) (User, error) {
	if externalID == "" {
		return User{}, ErrInvalidArgument
	}
	u, ok, err := s.store.FindByExternalID(ctx, externalID)
	if err != nil {
		return User{}, err
	}
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}
