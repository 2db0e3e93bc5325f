package cartintent

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"kebuli-storefront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, intent Intent) error {
	const q = `
INSERT INTO cart_intents (id, device_id, server_line_id, product_id, size, quantity, stage)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	_, err := r.pool.Exec(ctx, q,
		intent.ID, intent.DeviceID, intent.ServerLineID, intent.ProductID, intent.Size, intent.Quantity, intent.Stage)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *postgresRepo) SetStage(ctx context.Context, id, stage string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE cart_intents SET stage = $2 WHERE id = $1`, id, stage)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_intents WHERE id = $1`, id)
	return err
}

func (r *postgresRepo) ListByDevice(ctx context.Context, deviceID string) ([]Intent, error) {
	const q = `
SELECT id, device_id, server_line_id, product_id, size, quantity, stage, created_at
FROM cart_intents
WHERE device_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q, deviceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var intents []Intent
	for rows.Next() {
		var in Intent
		if err := rows.Scan(&in.ID, &in.DeviceID, &in.ServerLineID, &in.ProductID, &in.Size, &in.Quantity, &in.Stage, &in.CreatedAt); err != nil {
			return nil, err
		}
		intents = append(intents, in)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return intents, nil
}
