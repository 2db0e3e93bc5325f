package guestcart

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

func (r *postgresRepo) List(ctx context.Context, deviceID string) ([]Line, error) {
	const q = `
SELECT device_id, product_id, size, name, unit_price_cents, image_url, quantity, created_at
FROM guest_cart_lines
WHERE device_id = $1
ORDER BY created_at ASC, id ASC
`
	rows, err := r.pool.Query(ctx, q, deviceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(
			&l.DeviceID,
			&l.ProductID,
			&l.Size,
			&l.Name,
			&l.UnitPriceCents,
			&l.ImageURL,
			&l.Quantity,
			&l.CreatedAt,
		); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *postgresRepo) Add(ctx context.Context, line Line) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var existingQty int
	err = tx.QueryRow(ctx, `
SELECT quantity
FROM guest_cart_lines
WHERE device_id = $1 AND product_id = $2 AND size = $3
`, line.DeviceID, line.ProductID, line.Size).Scan(&existingQty)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	if err == nil {
		if _, err := tx.Exec(ctx, `
UPDATE guest_cart_lines
SET quantity = $4
WHERE device_id = $1 AND product_id = $2 AND size = $3
`, line.DeviceID, line.ProductID, line.Size, existingQty+line.Quantity); err != nil {
			return err
		}
	} else {
		if _, err := tx.Exec(ctx, `
INSERT INTO guest_cart_lines (device_id, product_id, size, name, unit_price_cents, image_url, quantity)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, line.DeviceID, line.ProductID, line.Size, line.Name, line.UnitPriceCents, line.ImageURL, line.Quantity); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) SetQuantity(ctx context.Context, deviceID, productID, size string, quantity int) error {
	const q = `
UPDATE guest_cart_lines
SET quantity = $4
WHERE device_id = $1 AND product_id = $2 AND size = $3
`
	cmd, err := r.pool.Exec(ctx, q, deviceID, productID, size, quantity)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, deviceID, productID, size string) error {
	const q = `
DELETE FROM guest_cart_lines
WHERE device_id = $1 AND product_id = $2 AND size = $3
`
	cmd, err := r.pool.Exec(ctx, q, deviceID, productID, size)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Clear(ctx context.Context, deviceID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM guest_cart_lines WHERE device_id = $1`, deviceID)
	return err
}
