package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aether-dashboard/aether-api/internal/core/domain"
	"github.com/aether-dashboard/aether-api/internal/core/ports"
)

// SearchRepository implements ports.SearchRepository with ILIKE substring
// matches. Result order is whatever the store returns.
type SearchRepository struct {
	pool *pgxpool.Pool
}

func NewSearchRepository(pool *pgxpool.Pool) ports.SearchRepository {
	return &SearchRepository{pool: pool}
}

func (r *SearchRepository) SearchOrders(ctx context.Context, term string, limit int) ([]domain.OrderView, error) {
	rows, err := r.pool.Query(ctx,
		orderViewSelect+` WHERE o.id ILIKE $1 OR c.name ILIKE $1 OR c.email ILIKE $1 LIMIT $2`,
		containsPattern(term), limit,
	)
	if err != nil {
		return nil, translate(err, "search orders", msgOrderExists, msgOrderNotFound)
	}
	return collectOrderViews(rows)
}

func (r *SearchRepository) SearchProducts(ctx context.Context, term string, limit int) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE name ILIKE $1 OR sku ILIKE $1 LIMIT $2`,
		containsPattern(term), limit,
	)
	if err != nil {
		return nil, translate(err, "search products", msgProductExists, msgProductNotFound)
	}
	return collectProducts(rows)
}

func (r *SearchRepository) SearchCustomers(ctx context.Context, term string, limit int) ([]domain.Customer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE name ILIKE $1 OR email ILIKE $1 LIMIT $2`,
		containsPattern(term), limit,
	)
	if err != nil {
		return nil, translate(err, "search customers", msgCustomerExists, msgCustomerNotFound)
	}
	return collectCustomers(rows)
}
