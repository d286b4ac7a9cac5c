package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aether-dashboard/aether-api/internal/core/domain"
	"github.com/aether-dashboard/aether-api/internal/core/ports"
)

const (
	msgCustomerExists   = "Customer email already exists."
	msgCustomerNotFound = "Customer not found"

	customerColumns = `id, name, email, phone, location, status, avatar`
)

// CustomerRepository implements ports.CustomerRepository on Postgres.
type CustomerRepository struct {
	pool *pgxpool.Pool
}

func NewCustomerRepository(pool *pgxpool.Pool) ports.CustomerRepository {
	return &CustomerRepository{pool: pool}
}

func (r *CustomerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY id`)
	if err != nil {
		return nil, translate(err, "list customers", msgCustomerExists, msgCustomerNotFound)
	}
	return collectCustomers(rows)
}

func (r *CustomerRepository) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	var c domain.Customer
	err := scanCustomer(r.pool.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id), &c)
	if err != nil {
		return nil, translate(err, "get customer", msgCustomerExists, msgCustomerNotFound)
	}
	return &c, nil
}

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	created := *c
	err := r.pool.QueryRow(ctx,
		`INSERT INTO customers (name, email, phone, location, status, avatar)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		c.Name, c.Email, c.Phone, c.Location, string(c.Status), c.Avatar,
	).Scan(&created.ID)
	if err != nil {
		return nil, translate(err, "create customer", msgCustomerExists, msgCustomerNotFound)
	}
	return &created, nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *domain.Customer) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE customers SET name = $1, email = $2, phone = $3, location = $4, status = $5, avatar = $6
		 WHERE id = $7`,
		c.Name, c.Email, c.Phone, c.Location, string(c.Status), c.Avatar, c.ID,
	)
	if err != nil {
		return translate(err, "update customer", msgCustomerExists, msgCustomerNotFound)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound(msgCustomerNotFound)
	}
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return translate(err, "delete customer", msgCustomerExists, msgCustomerNotFound)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound(msgCustomerNotFound)
	}
	return nil
}

func scanCustomer(row pgx.Row, c *domain.Customer) error {
	var status string
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Location, &status, &c.Avatar); err != nil {
		return err
	}
	c.Status = domain.CustomerStatus(status)
	return nil
}

func collectCustomers(rows pgx.Rows) ([]domain.Customer, error) {
	defer rows.Close()

	out := []domain.Customer{}
	for rows.Next() {
		var c domain.Customer
		if err := scanCustomer(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
