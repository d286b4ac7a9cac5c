package ports

import (
	"context"

	"github.com/aether-dashboard/aether-api/internal/core/domain"
)

type CustomerRepository interface {
	List(ctx context.Context) ([]domain.Customer, error)
	Get(ctx context.Context, id int64) (*domain.Customer, error)
	Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	// Delete removes the customer and, by cascade, its orders.
	Delete(ctx context.Context, id int64) error
}

type CustomerInput struct {
	Name     string
	Email    string
	Phone    *string
	Location *string
	Status   string
	Avatar   *string
}

type CustomerService interface {
	List(ctx context.Context) ([]domain.Customer, error)
	Get(ctx context.Context, id int64) (*domain.Customer, error)
	Create(ctx context.Context, in CustomerInput) (*domain.Customer, error)
	Update(ctx context.Context, id int64, in CustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, id int64) error
}
