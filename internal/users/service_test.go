package users

import (
	"context"
	"testing"
	"time"
)

func TestEnsure_ProvisionsOnce(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	svc.clock = func() time.Time { return time.Unix(1700000000, 0) }

	first, err := svc.Ensure(context.Background(), "ext-1", "mario@example.com")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if first.Role != RoleUser {
		t.Fatalf("expected role user, got %q", first.Role)
	}
	if first.ID == "" {
		t.Fatalf("expected generated id")
	}

	second, err := svc.Ensure(context.Background(), "ext-1", "mario@example.com")
	if err != nil {
		t.Fatalf("ensure again: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same row, got %q then %q", first.ID, second.ID)
	}

	_, inserts := repo.Ops()
	if inserts != 1 {
		t.Fatalf("expected exactly one insert, got %d", inserts)
	}
}

func TestEnsure_RejectsEmptyExternalID(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if _, err := svc.Ensure(context.Background(), "", "x@example.com"); err != ErrInvalidArgument {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestEnsure_NeverMutatesExisting(t *testing.T) {
	repo := NewMemoryRepo()
	repo.Put(User{ID: "u1", ExternalID: "ext-9", Email: "old@example.com", Role: RoleAdmin})
	svc := NewService(repo)

	got, err := svc.Ensure(context.Background(), "ext-9", "new@example.com")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if got.Email != "old@example.com" || got.Role != RoleAdmin {
		t.Fatalf("existing row must be returned unchanged, got %+v", got)
	}
}

func TestFindByExternalID_NotFound(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if _, err := svc.FindByExternalID(context.Background(), "nope"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestParseRole_NormalizesUnknown(t *testing.T) {
	if ParseRole("admin") != RoleAdmin {
		t.Fatalf("admin should parse as admin")
	}
	for _, s := range []string{"user", "", "superuser", "ADMIN"} {
		if ParseRole(s) != RoleUser {
			t.Fatalf("%q should normalize to user", s)
		}
	}
}
