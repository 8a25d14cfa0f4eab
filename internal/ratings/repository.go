package ratings

import (
	"context"
	"database/sql"
	"errors"

	"slicepoll/pkg/utils"
)

// Repo is the Postgres-backed Store.
//
// NOTE: This repository assumes a `ratings` table with
// UNIQUE (survey_id, user_id) and a CHECK constraint on score.
type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Upsert(ctx context.Context, in Rating) (Rating, error) {
	var out Rating

	err := utils.WithTx(ctx, r.db, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		// The survey check and the upsert run in one transaction so a
		// concurrent survey delete cannot leave an orphan rating.
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM surveys WHERE id = $1)`, in.SurveyID,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrSurveyNotFound
		}

		const q = `
INSERT INTO ratings (id, survey_id, user_id, score, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (survey_id, user_id)
DO UPDATE SET score = EXCLUDED.score, updated_at = EXCLUDED.updated_at
RETURNING id, survey_id, user_id, score, created_at, updated_at
`
		return tx.QueryRowContext(ctx, q,
			in.ID, in.SurveyID, in.UserID, in.Score, in.CreatedAt, in.UpdatedAt,
		).Scan(&out.ID, &out.SurveyID, &out.UserID, &out.Score, &out.CreatedAt, &out.UpdatedAt)
	})
	if err != nil {
		return Rating{}, err
	}
	return out, nil
}

func (r *Repo) Summarize(ctx context.Context, surveyID string) (int, float64, error) {
	const q = `
SELECT COUNT(*), COALESCE(AVG(score), 0)
FROM ratings
WHERE survey_id = $1
`
	var count int
	var avg float64
	if err := r.db.QueryRowContext(ctx, q, surveyID).Scan(&count, &avg); err != nil {
		return 0, 0, err
	}
	return count, avg, nil
}

func (r *Repo) FindScore(ctx context.Context, surveyID, userID string) (int, bool, error) {
	const q = `
SELECT score
FROM ratings
WHERE survey_id = $1 AND user_id = $2
`
	var score int
	err := r.db.QueryRowContext(ctx, q, surveyID, userID).Scan(&score)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return score, true, nil
}
