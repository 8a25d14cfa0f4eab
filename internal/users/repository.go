package users

import (
	"context"
	"database/sql"
	"errors"
)

// Repo is the Postgres-backed Store.
//
// NOTE: This repository assumes a `users` table with a UNIQUE constraint on
// external_id. The Ensure upsert relies on that constraint; without it the
// find-or-create race on concurrent first logins comes back.
type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) FindByExternalID(ctx context.Context, externalID string) (User, bool, error) {
	const q = `
SELECT id, external_id, email, role, created_at
FROM users
WHERE external_id = $1
`
	var u User
	var role string
	err := r.db.QueryRowContext(ctx, q, externalID).Scan(
		&u.ID,
		&u.ExternalID,
		&u.Email,
		&role,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, false, nil
		}
		return User{}, false, err
	}
	u.Role = ParseRole(role)
	return u, true, nil
}

func (r *Repo) Ensure(ctx context.Context, in User) (User, error) {
	// Single-statement get-or-insert. The no-op DO UPDATE makes RETURNING
	// yield the existing row when the external id is already provisioned,
	// so concurrent first logins converge on one row.
	const q = `
INSERT INTO users (id, external_id, email, role, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (external_id)
DO UPDATE SET external_id = EXCLUDED.external_id
RETURNING id, external_id, email, role, created_at
`
	var u User
	var role string
	err := r.db.QueryRowContext(ctx, q,
		in.ID,
		in.ExternalID,
		in.Email,
		string(in.Role),
		in.CreatedAt,
	).Scan(
		&u.ID,
		&u.ExternalID,
		&u.Email,
		&role,
		&u.CreatedAt,
	)
	if err != nil {
		return User{}, err
	}
	u.Role = ParseRole(role)
	return u, nil
}
