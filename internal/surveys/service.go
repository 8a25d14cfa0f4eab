package surveys

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Store is the persistence boundary for surveys.
type Store interface {
	List(ctx context.Context) ([]Survey, error)
	Get(ctx context.Context, id string) (Survey, bool, error)
	Insert(ctx context.Context, s Survey) error
	Update(ctx context.Context, s Survey) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Service owns survey CRUD. Mutations are admin-gated at the HTTP layer;
// this package does not re-check roles.
type Service struct {
	store Store
	clock func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, clock: time.Now}
}

func (s *Service) List(ctx context.Context) ([]Survey, error) {
	return s.store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Survey, error) {
	if id == "" {
		return Survey{}, ErrInvalidArgument
	}
	sv, ok, err := s.store.Get(ctx, id)
	if err != nil {
		return Survey{}, err
	}
	if !ok {
		return Survey{}, ErrNotFound
	}
	return sv, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest, createdBy string) (Survey, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || len(title) > maxTitleLen {
		return Survey{}, ErrInvalidArgument
	}

	now := s.clock().UTC()
	sv := Survey{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Insert(ctx, sv); err != nil {
		return Survey{}, err
	}
	return sv, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (Survey, error) {
	if id == "" {
		return Survey{}, ErrInvalidArgument
	}
	title := strings.TrimSpace(req.Title)
	if title == "" || len(title) > maxTitleLen {
		return Survey{}, ErrInvalidArgument
	}

	existing, ok, err := s.store.Get(ctx, id)
	if err != nil {
		return Survey{}, err
	}
	if !ok {
		return Survey{}, ErrNotFound
	}

	existing.Title = title
	existing.Description = strings.TrimSpace(req.Description)
	existing.UpdatedAt = s.clock().UTC()

	ok, err = s.store.Update(ctx, existing)
	if err != nil {
		return Survey{}, err
	}
	if !ok {
		return Survey{}, ErrNotFound
	}
	return existing, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidArgument
	}
	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
