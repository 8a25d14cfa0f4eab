package surveys

import (
	"context"
	"database/sql"
	"errors"
)

// Repo is the Postgres-backed Store. Ratings rows cascade on survey delete
// (see the schema), so Delete here is a single statement.
type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) List(ctx context.Context) ([]Survey, error) {
	const q = `
SELECT id, title, COALESCE(description, ''), COALESCE(created_by, ''), created_at, updated_at
FROM surveys
ORDER BY created_at DESC
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Survey{}
	for rows.Next() {
		var s Survey
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id string) (Survey, bool, error) {
	const q = `
SELECT id, title, COALESCE(description, ''), COALESCE(created_by, ''), created_at, updated_at
FROM surveys
WHERE id = $1
`
	var s Survey
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.Title, &s.Description, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Survey{}, false, nil
		}
		return Survey{}, false, err
	}
	return s, true, nil
}

func (r *Repo) Insert(ctx context.Context, s Survey) error {
	const q = `
INSERT INTO surveys (id, title, description, created_by, created_at, updated_at)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
`
	_, err := r.db.ExecContext(ctx, q, s.ID, s.Title, s.Description, s.CreatedBy, s.CreatedAt, s.UpdatedAt)
	return err
}

func (r *Repo) Update(ctx context.Context, s Survey) (bool, error) {
	const q = `
UPDATE surveys
SET title = $2, description = $3, updated_at = $4
WHERE id = $1
`
	res, err := r.db.ExecContext(ctx, q, s.ID, s.Title, s.Description, s.UpdatedAt)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *Repo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM surveys WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
