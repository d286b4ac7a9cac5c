package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aether-dashboard/aether-api/internal/core/domain"
	"github.com/aether-dashboard/aether-api/internal/core/ports"
)

const (
	msgOrderExists   = "Order already exists."
	msgOrderNotFound = "Order not found"

	orderViewSelect = `SELECT o.id, c.name, c.email, o.amount, o.status, to_char(o.date, 'YYYY-MM-DD')
		FROM orders o
		JOIN customers c ON c.id = o.customer_id`
)

// OrderRepository implements ports.OrderRepository on Postgres.
type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) ports.OrderRepository {
	return &OrderRepository{pool: pool}
}

// List returns a page ordered by date, newest first, with id as tiebreaker.
func (r *OrderRepository) List(ctx context.Context, offset, limit int) ([]domain.OrderView, error) {
	rows, err := r.pool.Query(ctx,
		orderViewSelect+` ORDER BY o.date DESC, o.id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, translate(err, "list orders", msgOrderExists, msgOrderNotFound)
	}
	return collectOrderViews(rows)
}

func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n); err != nil {
		return 0, translate(err, "count orders", msgOrderExists, msgOrderNotFound)
	}
	return n, nil
}

func (r *OrderRepository) Get(ctx context.Context, id string) (*domain.OrderView, error) {
	var v domain.OrderView
	if err := scanOrderView(r.pool.QueryRow(ctx, orderViewSelect+` WHERE o.id = $1`, id), &v); err != nil {
		return nil, translate(err, "get order", msgOrderExists, msgOrderNotFound)
	}
	return &v, nil
}

// Create resolves the customer by email and inserts the order in one
// transaction. The upsert leaves an existing customer's data untouched and
// cannot race with a concurrent order for the same new email.
func (r *OrderRepository) Create(ctx context.Context, o ports.NewOrder) (*domain.OrderView, error) {
	var view domain.OrderView

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var customerID int64
		err := tx.QueryRow(ctx,
			`INSERT INTO customers (name, email, status) VALUES ($1, $2, $3)
			 ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
			 RETURNING id, name, email`,
			o.CustomerName, o.CustomerEmail, string(domain.CustomerActive),
		).Scan(&customerID, &view.Customer, &view.Email)
		if err != nil {
			return err
		}

		var status string
		err = tx.QueryRow(ctx,
			`INSERT INTO orders (id, customer_id, amount, status, date)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id, amount, status, to_char(date, 'YYYY-MM-DD')`,
			o.ID, customerID, o.Amount, string(o.Status), o.Date,
		).Scan(&view.ID, &view.Amount, &status, &view.Date)
		view.Status = domain.OrderStatus(status)
		return err
	})
	if err != nil {
		return nil, translate(err, "create order", msgOrderExists, msgOrderNotFound)
	}
	return &view, nil
}

func (r *OrderRepository) Status(ctx context.Context, id string) (domain.OrderStatus, error) {
	var status string
	if err := r.pool.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1`, id).Scan(&status); err != nil {
		return "", translate(err, "read order status", msgOrderExists, msgOrderNotFound)
	}
	return domain.OrderStatus(status), nil
}

// Update changes only the non-nil fields of p in a single statement.
func (r *OrderRepository) Update(ctx context.Context, id string, p ports.OrderPatch) error {
	var status *string
	if p.Status != nil {
		s := string(*p.Status)
		status = &s
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE orders SET
			amount = COALESCE($1, amount),
			status = COALESCE($2, status),
			date   = COALESCE($3::date, date)
		 WHERE id = $4`,
		p.Amount, status, p.Date, id,
	)
	if err != nil {
		return translate(err, "update order", msgOrderExists, msgOrderNotFound)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound(msgOrderNotFound)
	}
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return translate(err, "delete order", msgOrderExists, msgOrderNotFound)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound(msgOrderNotFound)
	}
	return nil
}

func scanOrderView(row pgx.Row, v *domain.OrderView) error {
	var status string
	if err := row.Scan(&v.ID, &v.Customer, &v.Email, &v.Amount, &status, &v.Date); err != nil {
		return err
	}
	v.Status = domain.OrderStatus(status)
	return nil
}

func collectOrderViews(rows pgx.Rows) ([]domain.OrderView, error) {
	defer rows.Close()

	out := []domain.OrderView{}
	for rows.Next() {
		var v domain.OrderView
		if err := scanOrderView(rows, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
