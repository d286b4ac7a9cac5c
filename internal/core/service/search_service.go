package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/aether-dashboard/aether-api/internal/core/domain"
	"github.com/aether-dashboard/aether-api/internal/core/ports"
)

const (
	minSearchLength   = 2
	searchResultLimit = 5
)

type SearchService struct {
	repo ports.SearchRepository
}

func NewSearchService(repo ports.SearchRepository) *SearchService {
	return &SearchService{repo: repo}
}

// Search matches q as a case-insensitive substring across orders, products
// and customers, at most five of each. Queries shorter than two characters
// return empty results without touching the store.
func (s *SearchService) Search(ctx context.Context, q string) (*ports.SearchResult, error) {
	res := &ports.SearchResult{
		Orders:    []domain.OrderView{},
		Products:  []domain.Product{},
		Customers: []domain.Customer{},
	}

	term := strings.TrimSpace(q)
	if utf8.RuneCountInString(term) < minSearchLength {
		return res, nil
	}

	orders, err := s.repo.SearchOrders(ctx, term, searchResultLimit)
	if err != nil {
		return nil, err
	}
	products, err := s.repo.SearchProducts(ctx, term, searchResultLimit)
	if err != nil {
		return nil, err
	}
	customers, err := s.repo.SearchCustomers(ctx, term, searchResultLimit)
	if err != nil {
		return nil, err
	}

	if orders != nil {
		res.Orders = orders
	}
	if products != nil {
		res.Products = products
	}
	if customers != nil {
		res.Customers = customers
	}
	return res, nil
}
