package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aether-dashboard/aether-api/internal/core/domain"
	"github.com/aether-dashboard/aether-api/internal/core/ports"
)

type ProductService struct {
	repo   ports.ProductRepository
	stats  ports.StatsInvalidator
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, stats ports.StatsInvalidator, logger zerolog.Logger) *ProductService {
	if stats == nil {
		stats = nopInvalidator{}
	}
	return &ProductService{repo: repo, stats: stats, logger: logger}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Product{}
	}
	return items, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.Get(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, in ports.ProductInput) (*domain.Product, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, domain.Validation("Product id is required.")
	}
	p, err := productFromInput(in)
	if err != nil {
		return nil, err
	}
	p.ID = strings.TrimSpace(in.ID)

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", p.ID).Msg("product created")
	s.stats.Invalidate(ctx)
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id string, in ports.ProductInput) (*domain.Product, error) {
	p, err := productFromInput(in)
	if err != nil {
		return nil, err
	}
	p.ID = id

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.stats.Invalidate(ctx)
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("product_id", id).Msg("product deleted")
	s.stats.Invalidate(ctx)
	return nil
}

// productFromInput validates everything but the id. Status is taken as given
// and never derived from stock.
func productFromInput(in ports.ProductInput) (*domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	sku := strings.TrimSpace(in.SKU)
	price := strings.TrimSpace(in.Price)
	if name == "" || sku == "" || price == "" {
		return nil, domain.Validation("Name, sku and price are required.")
	}
	if in.Stock < 0 {
		return nil, domain.Validation("stock must not be negative")
	}

	status := domain.ProductInStock
	if in.Status != "" {
		status = domain.ProductStatus(in.Status)
		if !status.Valid() {
			return nil, domain.Validation("status must be one of In Stock, Low Stock, Out of Stock")
		}
	}

	return &domain.Product{
		Name:     name,
		SKU:      sku,
		Stock:    in.Stock,
		Price:    price,
		Status:   status,
		ImageURL: in.ImageURL,
	}, nil
}
