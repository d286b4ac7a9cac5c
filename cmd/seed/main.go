// Command seed wipes the catalogue tables and loads demo data: three
// customers, four products, five orders and an admin account.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/aether-dashboard/aether-api/internal/core/domain"
	"github.com/aether-dashboard/aether-api/internal/core/ports"
	"github.com/aether-dashboard/aether-api/internal/infrastructure/db/postgres"
	"github.com/aether-dashboard/aether-api/internal/pkg/config"
	"github.com/aether-dashboard/aether-api/pkg/logger"
)

const (
	adminEmail           = "admin@aether.dev"
	defaultAdminPassword = "admin123"
)

func strptr(s string) *string { return &s }

var customers = []domain.Customer{
	{Name: "Alex Morgan", Email: "alex@aether.io", Phone: strptr("+1 (555) 123-4567"), Location: strptr("New York, USA"), Status: domain.CustomerActive, Avatar: strptr("https://picsum.photos/seed/alex/100/100")},
	{Name: "Sarah Chen", Email: "sarah@example.com", Phone: strptr("+1 (555) 987-6543"), Location: strptr("San Francisco, USA"), Status: domain.CustomerActive, Avatar: strptr("https://picsum.photos/seed/sarah/100/100")},
	{Name: "Emma Brown", Email: "emma@example.com", Phone: strptr("+1 (555) 555-4444"), Location: strptr("Toronto, Canada"), Status: domain.CustomerPending, Avatar: strptr("https://picsum.photos/seed/emma/100/100")},
}

var products = []domain.Product{
	{ID: "INV-001", Name: "Mechanical Keyboard", SKU: "MK-87-RGB", Stock: 45, Price: "$129.99", Status: domain.ProductInStock},
	{ID: "INV-002", Name: "Wireless Mouse", SKU: "WM-PRO-X", Stock: 12, Price: "$79.99", Status: domain.ProductLowStock},
	{ID: "INV-003", Name: `27" 4K Monitor`, SKU: "MON-4K-IPS", Stock: 0, Price: "$499.99", Status: domain.ProductOutOfStock},
	{ID: "INV-004", Name: "USB-C Hub", SKU: "USB-C-7IN1", Stock: 89, Price: "$49.99", Status: domain.ProductInStock},
}

// Orders are dated relative to today so the dashboard windows have data.
var orders = []struct {
	id       string
	customer int
	amount   string
	status   domain.OrderStatus
	daysAgo  int
}{
	{"ORD-001", 0, "$250.00", domain.OrderCompleted, 45},
	{"ORD-002", 1, "$150.00", domain.OrderProcessing, 20},
	{"ORD-003", 0, "$350.00", domain.OrderCompleted, 12},
	{"ORD-004", 2, "$450.00", domain.OrderPending, 5},
	{"ORD-005", 1, "$550.00", domain.OrderCompleted, 1},
}

func main() {
	ctx := context.Background()
	log := logger.Init(logger.Options{Level: "info", Pretty: true, Service: "aether-seed"})

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL, MaxConns: 2})
	if err != nil {
		log.Fatal().Err(err).Msg("connect")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, log); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	if err := run(ctx, pool); err != nil {
		log.Error().Err(err).Msg("seed failed")
		pool.Close()
		os.Exit(1)
	}
	log.Info().
		Int("customers", len(customers)).
		Int("products", len(products)).
		Int("orders", len(orders)).
		Str("admin", adminEmail).
		Msg("database seeded")
}

func run(ctx context.Context, pool *pgxpool.Pool) error {
	err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		for _, table := range []string{"orders", "products", "customers"} {
			if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	customerRepo := postgres.NewCustomerRepository(pool)
	for i := range customers {
		if _, err := customerRepo.Create(ctx, &customers[i]); err != nil {
			return fmt.Errorf("customer %s: %w", customers[i].Email, err)
		}
	}

	productRepo := postgres.NewProductRepository(pool)
	for i := range products {
		if err := productRepo.Create(ctx, &products[i]); err != nil {
			return fmt.Errorf("product %s: %w", products[i].ID, err)
		}
	}

	orderRepo := postgres.NewOrderRepository(pool)
	today := time.Now().UTC().Truncate(24 * time.Hour)
	for _, o := range orders {
		c := customers[o.customer]
		_, err := orderRepo.Create(ctx, ports.NewOrder{
			ID:            o.id,
			CustomerName:  c.Name,
			CustomerEmail: c.Email,
			Amount:        o.amount,
			Status:        o.status,
			Date:          today.AddDate(0, 0, -o.daysAgo),
		})
		if err != nil {
			return fmt.Errorf("order %s: %w", o.id, err)
		}
	}

	return ensureAdmin(ctx, postgres.NewUserRepository(pool))
}

// ensureAdmin creates the demo admin unless an account with that email exists.
func ensureAdmin(ctx context.Context, users ports.UserRepository) error {
	_, err := users.FindByEmail(ctx, adminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = defaultAdminPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	_, err = users.Create(ctx, &domain.User{
		Email:        adminEmail,
		PasswordHash: string(hash),
		Name:         "Aether Admin",
		Role:         domain.RoleAdmin,
	})
	return err
}
