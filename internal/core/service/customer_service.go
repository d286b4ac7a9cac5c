package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aether-dashboard/aether-api/internal/core/domain"
	"github.com/aether-dashboard/aether-api/internal/core/ports"
)

type CustomerService struct {
	repo   ports.CustomerRepository
	stats  ports.StatsInvalidator
	logger zerolog.Logger
}

func NewCustomerService(repo ports.CustomerRepository, stats ports.StatsInvalidator, logger zerolog.Logger) *CustomerService {
	if stats == nil {
		stats = nopInvalidator{}
	}
	return &CustomerService{repo: repo, stats: stats, logger: logger}
}

func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Customer{}
	}
	return items, nil
}

func (s *CustomerService) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.repo.Get(ctx, id)
}

func (s *CustomerService) Create(ctx context.Context, in ports.CustomerInput) (*domain.Customer, error) {
	c, err := customerFromInput(in)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("customer_id", created.ID).Msg("customer created")
	s.stats.Invalidate(ctx)
	return created, nil
}

func (s *CustomerService) Update(ctx context.Context, id int64, in ports.CustomerInput) (*domain.Customer, error) {
	c, err := customerFromInput(in)
	if err != nil {
		return nil, err
	}
	c.ID = id

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.stats.Invalidate(ctx)
	return c, nil
}

// Delete removes the customer together with all of its orders.
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("customer_id", id).Msg("customer deleted")
	s.stats.Invalidate(ctx)
	return nil
}

func customerFromInput(in ports.CustomerInput) (*domain.Customer, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" {
		return nil, domain.Validation("Name and email are required.")
	}

	status := domain.CustomerActive
	if in.Status != "" {
		status = domain.CustomerStatus(in.Status)
		if !status.Valid() {
			return nil, domain.Validation("status must be one of Active, Inactive, New, Pending")
		}
	}

	return &domain.Customer{
		Name:     name,
		Email:    email,
		Phone:    in.Phone,
		Location: in.Location,
		Status:   status,
		Avatar:   in.Avatar,
	}, nil
}
