package ratings

import "time"

const (
	MinScore = 1
	MaxScore = 10
)

// Rating is one user's score for one survey. The pair (SurveyID, UserID) is
// unique; resubmitting replaces the previous score.
type Rating struct {
	ID        string    `json:"id"`
	SurveyID  string    `json:"survey_id"`
	UserID    string    `json:"user_id"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Summary is the aggregated result for a survey. YourScore is only set when
// the caller is authenticated and has rated.
type Summary struct {
	SurveyID  string  `json:"survey_id"`
	Count     int     `json:"count"`
	Average   float64 `json:"average"`
	YourScore *int    `json:"your_score,omitempty"`
}
