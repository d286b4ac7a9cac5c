package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/aether-dashboard/aether-api/internal/core/domain"
	"github.com/aether-dashboard/aether-api/internal/core/ports"
)

type memCustomerRepo struct {
	byID   map[int64]domain.Customer
	nextID int64
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{byID: make(map[int64]domain.Customer), nextID: 1}
}

func (r *memCustomerRepo) List(context.Context) ([]domain.Customer, error) {
	if len(r.byID) == 0 {
		return nil, nil
	}
	out := make([]domain.Customer, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	return out, nil
}

func (r *memCustomerRepo) Get(_ context.Context, id int64) (*domain.Customer, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.NotFound("Customer not found")
	}
	return &c, nil
}

func (r *memCustomerRepo) Create(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	for _, existing := range r.byID {
		if existing.Email == c.Email {
			return nil, domain.Conflict("Customer email already exists.")
		}
	}
	created := *c
	created.ID = r.nextID
	r.nextID++
	r.byID[created.ID] = created
	return &created, nil
}

func (r *memCustomerRepo) Update(_ context.Context, c *domain.Customer) error {
	if _, ok := r.byID[c.ID]; !ok {
		return domain.NotFound("Customer not found")
	}
	r.byID[c.ID] = *c
	return nil
}

func (r *memCustomerRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.NotFound("Customer not found")
	}
	delete(r.byID, id)
	return nil
}

func TestCustomerService_CreateDefaultsAndValidation(t *testing.T) {
	stats := &stubInvalidator{}
	svc := NewCustomerService(newMemCustomerRepo(), stats, zerolog.Nop())
	ctx := context.Background()

	c, err := svc.Create(ctx, ports.CustomerInput{Name: "  Sarah ", Email: "sarah@example.com"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.Name != "Sarah" || c.Status != domain.CustomerActive || c.ID == 0 {
		t.Fatalf("unexpected customer: %+v", c)
	}
	if stats.calls != 1 {
		t.Fatalf("expected stats invalidation, got %d", stats.calls)
	}

	cases := []ports.CustomerInput{
		{Name: "", Email: "x@example.com"},
		{Name: "X", Email: "  "},
		{Name: "X", Email: "x@example.com", Status: "Gold"},
	}
	for _, in := range cases {
		if _, err := svc.Create(ctx, in); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%+v: expected ErrValidation, got %v", in, err)
		}
	}

	if _, err := svc.Create(ctx, ports.CustomerInput{Name: "Dup", Email: "sarah@example.com"}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestCustomerService_ListNeverNil(t *testing.T) {
	svc := NewCustomerService(newMemCustomerRepo(), nil, zerolog.Nop())
	got, err := svc.List(context.Background())
	if err != nil || got == nil {
		t.Fatalf("expected empty non-nil slice, got %v %v", got, err)
	}
}

func TestCustomerService_UpdateAndDeleteMissing(t *testing.T) {
	svc := NewCustomerService(newMemCustomerRepo(), nil, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.Update(ctx, 99, ports.CustomerInput{Name: "A", Email: "a@example.com"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, 99); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

type memProductRepo struct {
	byID map[string]domain.Product
}

func (r *memProductRepo) List(context.Context) ([]domain.Product, error) {
	out := []domain.Product{}
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}

func (r *memProductRepo) Get(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.NotFound("Product not found")
	}
	return &p, nil
}

func (r *memProductRepo) Create(_ context.Context, p *domain.Product) error {
	if _, ok := r.byID[p.ID]; ok {
		return domain.Conflict("Product id or SKU already exists.")
	}
	r.byID[p.ID] = *p
	return nil
}

func (r *memProductRepo) Update(_ context.Context, p *domain.Product) error {
	if _, ok := r.byID[p.ID]; !ok {
		return domain.NotFound("Product not found")
	}
	r.byID[p.ID] = *p
	return nil
}

func (r *memProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.NotFound("Product not found")
	}
	delete(r.byID, id)
	return nil
}

func TestProductService_Create(t *testing.T) {
	repo := &memProductRepo{byID: make(map[string]domain.Product)}
	svc := NewProductService(repo, nil, zerolog.Nop())
	ctx := context.Background()

	p, err := svc.Create(ctx, ports.ProductInput{ID: "INV-1", Name: "Keyboard", SKU: "MK-87", Stock: 0, Price: "$129.99"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Status != domain.ProductInStock {
		t.Fatalf("status must default to In Stock and never derive from stock, got %q", p.Status)
	}

	cases := []ports.ProductInput{
		{Name: "No id", SKU: "A", Price: "$1"},
		{ID: "INV-2", SKU: "A", Price: "$1"},
		{ID: "INV-2", Name: "A", SKU: "A", Price: "$1", Stock: -1},
		{ID: "INV-2", Name: "A", SKU: "A", Price: "$1", Status: "Discontinued"},
	}
	for _, in := range cases {
		if _, err := svc.Create(ctx, in); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%+v: expected ErrValidation, got %v", in, err)
		}
	}
}

func TestProductService_UpdateKeepsCallerStatus(t *testing.T) {
	repo := &memProductRepo{byID: map[string]domain.Product{
		"INV-1": {ID: "INV-1", Name: "Keyboard", SKU: "MK-87", Stock: 10, Price: "$1", Status: domain.ProductInStock},
	}}
	stats := &stubInvalidator{}
	svc := NewProductService(repo, stats, zerolog.Nop())

	p, err := svc.Update(context.Background(), "INV-1", ports.ProductInput{
		Name: "Keyboard", SKU: "MK-87", Stock: 0, Price: "$1", Status: string(domain.ProductLowStock),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if p.Status != domain.ProductLowStock || repo.byID["INV-1"].Stock != 0 {
		t.Fatalf("unexpected product: %+v", repo.byID["INV-1"])
	}
	if stats.calls != 1 {
		t.Fatalf("expected stats invalidation")
	}

	if err := svc.Delete(context.Background(), "INV-404"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
