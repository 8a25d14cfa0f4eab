package ratings

import (
	"context"
	"testing"
)

func newTestService() (*Service, *MemoryRepo) {
	repo := NewMemoryRepo()
	repo.AddSurvey("s1")
	return NewService(repo, nil), repo
}

func TestSubmit_RejectsOutOfRangeScore(t *testing.T) {
	svc, _ := newTestService()
	for _, score := range []int{0, -1, 11, 100} {
		if _, err := svc.Submit(context.Background(), "s1", "u1", score); err != ErrScoreOutOfRange {
			t.Fatalf("score %d: expected ErrScoreOutOfRange, got %v", score, err)
		}
	}
}

func TestSubmit_RejectsUnknownSurvey(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Submit(context.Background(), "missing", "u1", 5); err != ErrSurveyNotFound {
		t.Fatalf("expected ErrSurveyNotFound, got %v", err)
	}
}

func TestSubmit_RejectsEmptyIDs(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Submit(context.Background(), "", "u1", 5); err != ErrInvalidArgument {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := svc.Submit(context.Background(), "s1", "", 5); err != ErrInvalidArgument {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestSubmit_ReplacesPreviousScore(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first, err := svc.Submit(ctx, "s1", "u1", 7)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	second, err := svc.Submit(ctx, "s1", "u1", 9)
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("resubmission must update the existing row, got %q then %q", first.ID, second.ID)
	}
	if second.Score != 9 {
		t.Fatalf("expected score 9, got %d", second.Score)
	}

	sum, err := svc.Results(ctx, "s1", "")
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if sum.Count != 1 || sum.Average != 9 {
		t.Fatalf("expected one rating at 9, got %+v", sum)
	}
}

func TestResults_Aggregates(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for user, score := range map[string]int{"u1": 6, "u2": 8, "u3": 10} {
		if _, err := svc.Submit(ctx, "s1", user, score); err != nil {
			t.Fatalf("submit %s: %v", user, err)
		}
	}

	sum, err := svc.Results(ctx, "s1", "u2")
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if sum.Count != 3 || sum.Average != 8 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if sum.YourScore == nil || *sum.YourScore != 8 {
		t.Fatalf("expected caller score 8, got %v", sum.YourScore)
	}
}

func TestResults_EmptySurvey(t *testing.T) {
	svc, _ := newTestService()
	sum, err := svc.Results(context.Background(), "s1", "u1")
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if sum.Count != 0 || sum.Average != 0 || sum.YourScore != nil {
		t.Fatalf("unexpected empty summary: %+v", sum)
	}
}
