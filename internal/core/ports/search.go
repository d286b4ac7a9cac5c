package ports

import (
	"context"

	"github.com/aether-dashboard/aether-api/internal/core/domain"
)

// SearchRepository runs case-insensitive substring matches. term is the raw
// user text; escaping LIKE wildcards is the repository's job.
type SearchRepository interface {
	SearchOrders(ctx context.Context, term string, limit int) ([]domain.OrderView, error)
	SearchProducts(ctx context.Context, term string, limit int) ([]domain.Product, error)
	SearchCustomers(ctx context.Context, term string, limit int) ([]domain.Customer, error)
}

type SearchResult struct {
	Orders    []domain.OrderView `json:"orders"`
	Products  []domain.Product   `json:"products"`
	Customers []domain.Customer  `json:"customers"`
}

type SearchService interface {
	Search(ctx context.Context, q string) (*SearchResult, error)
}
