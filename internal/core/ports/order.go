package ports

import (
	"context"
	"time"

	"github.com/aether-dashboard/aether-api/internal/core/domain"
)

// NewOrder is what the repository needs to place an order for a customer
// identified by email, creating the customer when the email is unknown.
type NewOrder struct {
	ID            string
	CustomerName  string
	CustomerEmail string
	Amount        string
	Status        domain.OrderStatus
	Date          time.Time
}

// OrderPatch holds the fields to change. Nil fields are left untouched.
type OrderPatch struct {
	Amount *string
	Status *domain.OrderStatus
	Date   *time.Time
}

// Empty reports whether the patch changes nothing.
func (p OrderPatch) Empty() bool {
	return p.Amount == nil && p.Status == nil && p.Date == nil
}

type OrderRepository interface {
	// List returns orders joined with their customer, newest date first.
	List(ctx context.Context, offset, limit int) ([]domain.OrderView, error)
	Count(ctx context.Context) (int64, error)
	Get(ctx context.Context, id string) (*domain.OrderView, error)
	// Create upserts the customer by email and inserts the order atomically.
	Create(ctx context.Context, o NewOrder) (*domain.OrderView, error)
	// Status returns the current status, or a not-found error.
	Status(ctx context.Context, id string) (domain.OrderStatus, error)
	// Update applies p in a single statement and returns a not-found error
	// when no row matched.
	Update(ctx context.Context, id string, p OrderPatch) error
	Delete(ctx context.Context, id string) error
}

// OrderEventRepository stores the order audit trail.
type OrderEventRepository interface {
	Insert(ctx context.Context, e domain.OrderEvent) error
	ListByOrder(ctx context.Context, orderID string) ([]domain.OrderEvent, error)
}

// AuditPublisher hands audit events to a background writer. Publish never
// blocks the caller.
type AuditPublisher interface {
	Publish(e domain.OrderEvent)
}

// CreateOrderInput is the raw request. Status and Date are optional.
type CreateOrderInput struct {
	ID       string
	Customer string
	Email    string
	Amount   string
	Status   string
	Date     string
}

// UpdateOrderInput is the raw request. At least one field must be set.
type UpdateOrderInput struct {
	Amount *string
	Status *string
	Date   *string
}

type OrderPage struct {
	Data []domain.OrderView `json:"data"`
	Meta PageMeta           `json:"meta"`
}

type OrderService interface {
	List(ctx context.Context, page PageRequest) (*OrderPage, error)
	Get(ctx context.Context, id string) (*domain.OrderView, error)
	Create(ctx context.Context, actor domain.Identity, in CreateOrderInput) (*domain.OrderView, error)
	Update(ctx context.Context, actor domain.Identity, id string, in UpdateOrderInput) error
	Delete(ctx context.Context, actor domain.Identity, id string) error
	History(ctx context.Context, id string) ([]domain.OrderEvent, error)
}
