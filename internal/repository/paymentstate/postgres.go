package paymentstate

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
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

func (r *postgresRepo) Create(ctx context.Context, rec Record) error {
	const q = `
INSERT INTO payment_states (order_id, device_id, state)
VALUES ($1, $2, $3)
`
	_, err := r.pool.Exec(ctx, q, rec.OrderID, rec.DeviceID, rec.State)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *postgresRepo) Get(ctx context.Context, orderID string) (*Record, error) {
	const q = `
SELECT order_id, device_id, state, updated_at
FROM payment_states
WHERE order_id = $1
`
	var rec Record
	err := r.pool.QueryRow(ctx, q, orderID).Scan(&rec.OrderID, &rec.DeviceID, &rec.State, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *postgresRepo) Transition(ctx context.Context, orderID, from, to string) (bool, error) {
	const q = `
UPDATE payment_states
SET state = $3, updated_at = now()
WHERE order_id = $1 AND state = $2
`
	cmd, err := r.pool.Exec(ctx, q, orderID, from, to)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
