package ratings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSurveyNotFound  = errors.New("survey not found")
	ErrScoreOutOfRange = errors.New("score out of range")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Store is the persistence boundary for ratings.
//
// Upsert must reject unknown surveys with ErrSurveyNotFound and must replace
// the caller's previous score atomically (unique (survey_id, user_id) row).
type Store interface {
	Upsert(ctx context.Context, r Rating) (Rating, error)
	Summarize(ctx context.Context, surveyID string) (count int, average float64, err error)
	FindScore(ctx context.Context, surveyID, userID string) (int, bool, error)
}

// Service owns score submission and results aggregation. The cache is
// best-effort: a cold or unreachable cache only costs a Summarize query.
type Service struct {
	store Store
	cache *Cache
	clock func() time.Time
}

func NewService(store Store, cache *Cache) *Service {
	return &Service{store: store, cache: cache, clock: time.Now}
}

// Submit records score for (surveyID, userID), replacing any previous score
// by the same user on the same survey.
func (s *Service) Submit(ctx context.Context, surveyID, userID string, score int) (Rating, error) {
	if surveyID == "" || userID == "" {
		return Rating{}, ErrInvalidArgument
	}
	if score < MinScore || score > MaxScore {
		return Rating{}, ErrScoreOutOfRange
	}

	now := s.clock().UTC()
	r, err := s.store.Upsert(ctx, Rating{
		ID:        uuid.NewString(),
		SurveyID:  surveyID,
		UserID:    userID,
		Score:     score,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return Rating{}, err
	}

	s.cache.Invalidate(ctx, surveyID)
	return r, nil
}

// Results returns the aggregated summary for a survey. When userID is
// non-empty the caller's own score is attached; only the aggregate part is
// cached.
func (s *Service) Results(ctx context.Context, surveyID, userID string) (Summary, error) {
	if surveyID == "" {
		return Summary{}, ErrInvalidArgument
	}

	sum, ok := s.cache.Get(ctx, surveyID)
	if !ok {
		count, avg, err := s.store.Summarize(ctx, surveyID)
		if err != nil {
			return Summary{}, err
		}
		sum = Summary{SurveyID: surveyID, Count: count, Average: avg}
		s.cache.Set(ctx, surveyID, sum)
	}

	if userID != "" {
		if score, found, err := s.store.FindScore(ctx, surveyID, userID); err == nil && found {
			sum.YourScore = &score
		}
	}
	return sum, nil
}
