package ratings

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory Store useful for tests.
// It is not intended for production use.
type MemoryRepo struct {
	mu      sync.Mutex
	surveys map[string]struct{}
	// keyed by survey_id then user_id
	scores map[string]map[string]Rating
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		surveys: make(map[string]struct{}),
		scores:  make(map[string]map[string]Rating),
	}
}

// AddSurvey registers a survey id so Upsert will accept ratings for it.
func (r *MemoryRepo) AddSurvey(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.surveys[id] = struct{}{}
}

func (r *MemoryRepo) Upsert(ctx context.Context, in Rating) (Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.surveys[in.SurveyID]; !ok {
		return Rating{}, ErrSurveyNotFound
	}
	bySurvey, ok := r.scores[in.SurveyID]
	if !ok {
		bySurvey = make(map[string]Rating)
		r.scores[in.SurveyID] = bySurvey
	}
	if prev, ok := bySurvey[in.UserID]; ok {
		prev.Score = in.Score
		prev.UpdatedAt = in.UpdatedAt
		bySurvey[in.UserID] = prev
		return prev, nil
	}
	bySurvey[in.UserID] = in
	return in, nil
}

func (r *MemoryRepo) Summarize(ctx context.Context, surveyID string) (int, float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bySurvey := r.scores[surveyID]
	if len(bySurvey) == 0 {
		return 0, 0, nil
	}
	total := 0
	for _, rt := range bySurvey {
		total += rt.Score
	}
	return len(bySurvey), float64(total) / float64(len(bySurvey)), nil
}

func (r *MemoryRepo) FindScore(ctx context.Context, surveyID, userID string) (int, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rt, ok := r.scores[surveyID][userID]
	if !ok {
		return 0, false, nil
	}
	return rt.Score, true, nil
}
