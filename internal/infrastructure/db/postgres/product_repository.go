package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aether-dashboard/aether-api/internal/core/domain"
	"github.com/aether-dashboard/aether-api/internal/core/ports"
)

const (
	msgProductExists   = "Product id or SKU already exists."
	msgProductNotFound = "Product not found"

	productColumns = `id, name, sku, stock, price, status, image_url`
)

// ProductRepository implements ports.ProductRepository on Postgres.
type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) ports.ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, translate(err, "list products", msgProductExists, msgProductNotFound)
	}
	return collectProducts(rows)
}

func (r *ProductRepository) Get(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := scanProduct(r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id), &p)
	if err != nil {
		return nil, translate(err, "get product", msgProductExists, msgProductNotFound)
	}
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO products (id, name, sku, stock, price, status, image_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.Name, p.SKU, p.Stock, p.Price, string(p.Status), p.ImageURL,
	)
	return translate(err, "create product", msgProductExists, msgProductNotFound)
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE products SET name = $1, sku = $2, stock = $3, price = $4, status = $5, image_url = $6
		 WHERE id = $7`,
		p.Name, p.SKU, p.Stock, p.Price, string(p.Status), p.ImageURL, p.ID,
	)
	if err != nil {
		return translate(err, "update product", msgProductExists, msgProductNotFound)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound(msgProductNotFound)
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return translate(err, "delete product", msgProductExists, msgProductNotFound)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound(msgProductNotFound)
	}
	return nil
}

func scanProduct(row pgx.Row, p *domain.Product) error {
	var status string
	if err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.Stock, &p.Price, &status, &p.ImageURL); err != nil {
		return err
	}
	p.Status = domain.ProductStatus(status)
	return nil
}

func collectProducts(rows pgx.Rows) ([]domain.Product, error) {
	defer rows.Close()

	out := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
