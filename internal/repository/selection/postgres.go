package selection

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Get(ctx context.Context, deviceID string) (map[string]bool, error) {
	const q = `
SELECT line_key, selected
FROM checkout_selections
WHERE device_id = $1
`
	rows, err := r.pool.Query(ctx, q, deviceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var key string
		var selected bool
		if err := rows.Scan(&key, &selected); err != nil {
			return nil, err
		}
		out[key] = selected
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) Put(ctx context.Context, deviceID, lineKey string, selected bool) error {
	const q = `
INSERT INTO checkout_selections (device_id, line_key, selected)
VALUES ($1, $2, $3)
ON CONFLICT (device_id, line_key) DO UPDATE SET selected = EXCLUDED.selected
`
	_, err := r.pool.Exec(ctx, q, deviceID, lineKey, selected)
	return err
}

func (r *postgresRepo) SetAll(ctx context.Context, deviceID string, lineKeys []string, selected bool) error {
	const q = `
INSERT INTO checkout_selections (device_id, line_key, selected)
SELECT $1, unnest($2::text[]), $3
ON CONFLICT (device_id, line_key) DO UPDATE SET selected = EXCLUDED.selected
`
	_, err := r.pool.Exec(ctx, q, deviceID, lineKeys, selected)
	return err
}

func (r *postgresRepo) Sync(ctx context.Context, deviceID string, lineKeys []string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
DELETE FROM checkout_selections
WHERE device_id = $1 AND NOT (line_key = ANY($2::text[]))
`, deviceID, lineKeys); err != nil {
		return err
	}

	// New lines default to selected so user intent on existing lines survives.
	if len(lineKeys) > 0 {
		if _, err := tx.Exec(ctx, `
INSERT INTO checkout_selections (device_id, line_key, selected)
SELECT $1, unnest($2::text[]), TRUE
ON CONFLICT (device_id, line_key) DO NOTHING
`, deviceID, lineKeys); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) Clear(ctx context.Context, deviceID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM checkout_selections WHERE device_id = $1`, deviceID)
	return err
}
