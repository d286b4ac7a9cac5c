package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aether-dashboard/aether-api/internal/core/domain"
	"github.com/aether-dashboard/aether-api/internal/core/ports"
)

// StatsRepository implements ports.StatsRepository on Postgres.
type StatsRepository struct {
	pool *pgxpool.Pool
}

func NewStatsRepository(pool *pgxpool.Pool) ports.StatsRepository {
	return &StatsRepository{pool: pool}
}

// Snapshot reads everything inside one repeatable-read transaction so the
// order rows and the counts describe the same point in time.
func (r *StatsRepository) Snapshot(ctx context.Context, since time.Time) (*domain.StatsSnapshot, error) {
	snap := &domain.StatsSnapshot{Orders: []domain.StatsOrder{}}

	txOpts := pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}
	err := pgx.BeginTxFunc(ctx, r.pool, txOpts, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `SELECT amount, status, date FROM orders WHERE date >= $1`, since)
		if err != nil {
			return err
		}
		for rows.Next() {
			var o domain.StatsOrder
			var status string
			if err := rows.Scan(&o.Amount, &status, &o.Date); err != nil {
				rows.Close()
				return err
			}
			o.Status = domain.OrderStatus(status)
			snap.Orders = append(snap.Orders, o)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		return tx.QueryRow(ctx,
			`SELECT
				(SELECT COUNT(*) FROM customers),
				(SELECT COUNT(*) FROM customers WHERE status = $1),
				(SELECT COUNT(*) FROM products),
				(SELECT COUNT(*) FROM products WHERE status = $2)`,
			string(domain.CustomerActive), string(domain.ProductInStock),
		).Scan(&snap.CustomersTotal, &snap.CustomersActive, &snap.ProductsTotal, &snap.ProductsInStock)
	})
	if err != nil {
		return nil, translate(err, "stats snapshot", "", "")
	}

	return snap, nil
}
