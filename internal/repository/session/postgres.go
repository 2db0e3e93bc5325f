package session

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"kebuli-storefront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Get(ctx context.Context, deviceID string) (*Session, error) {
	const q = `
SELECT device_id, auth_token, role, first_name, last_name, email, phone, gender, picture_url, updated_at
FROM sessions
WHERE device_id = $1
`
	var s Session
	err := r.pool.QueryRow(ctx, q, deviceID).Scan(
		&s.DeviceID,
		&s.AuthToken,
		&s.Role,
		&s.Profile.FirstName,
		&s.Profile.LastName,
		&s.Profile.Email,
		&s.Profile.Phone,
		&s.Profile.Gender,
		&s.Profile.PictureURL,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepo) SaveCredential(ctx context.Context, deviceID, token, role string, profile domain.Profile) error {
	const q = `
INSERT INTO sessions (device_id, auth_token, role, first_name, last_name, email, phone, gender, picture_url, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
ON CONFLICT (device_id) DO UPDATE
SET auth_token = EXCLUDED.auth_token,
    role = EXCLUDED.role,
    first_name = EXCLUDED.first_name,
    last_name = EXCLUDED.last_name,
    email = EXCLUDED.email,
    phone = EXCLUDED.phone,
    gender = EXCLUDED.gender,
    picture_url = EXCLUDED.picture_url,
    updated_at = now()
`
	_, err := r.pool.Exec(ctx, q, deviceID, token, role,
		profile.FirstName, profile.LastName, profile.Email, profile.Phone, profile.Gender, profile.PictureURL)
	return err
}

func (r *postgresRepo) SaveProfile(ctx context.Context, deviceID string, profile domain.Profile) error {
	const q = `
UPDATE sessions
SET first_name = $2, last_name = $3, email = $4, phone = $5, gender = $6, picture_url = $7, updated_at = now()
WHERE device_id = $1
`
	cmd, err := r.pool.Exec(ctx, q, deviceID,
		profile.FirstName, profile.LastName, profile.Email, profile.Phone, profile.Gender, profile.PictureURL)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) ClearCredential(ctx context.Context, deviceID string) error {
	// One statement on purpose: credential, role and cached profile go
	// together or not at all.
	const q = `
UPDATE sessions
SET auth_token = '', role = '', first_name = '', last_name = '', email = '', phone = '', gender = '', picture_url = '', updated_at = now()
WHERE device_id = $1
`
	_, err := r.pool.Exec(ctx, q, deviceID)
	return err
}
