package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/aether-dashboard/aether-api/internal/api/handler"
	"github.com/aether-dashboard/aether-api/internal/core/domain"
	"github.com/aether-dashboard/aether-api/internal/core/ports"
	"github.com/aether-dashboard/aether-api/internal/pkg/token"
)

type fakeOrders struct {
	ports.OrderService
	deleted []string
}

func (f *fakeOrders) Delete(_ context.Context, _ domain.Identity, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeOrders) List(_ context.Context, page ports.PageRequest) (*ports.OrderPage, error) {
	page = page.Normalize()
	return &ports.OrderPage{Data: []domain.OrderView{}, Meta: ports.NewPageMeta(page, 0)}, nil
}

func newTestRouter(t *testing.T) (*fakeOrders, *token.Manager, http.Handler) {
	t.Helper()
	tokens := token.NewManager("router-test-secret", time.Hour)
	orders := &fakeOrders{}

	e := NewRouter(Config{Logger: zerolog.Nop(), Verifier: tokens}, Handlers{
		Auth:          handler.NewAuthHandler(nil),
		Users:         handler.NewUserHandler(nil),
		Customers:     handler.NewCustomerHandler(nil),
		Products:      handler.NewProductHandler(nil),
		Orders:        handler.NewOrderHandler(orders),
		Notifications: handler.NewNotificationHandler(nil),
		Stats:         handler.NewStatsHandler(nil),
		Search:        handler.NewSearchHandler(nil),
		Health:        handler.NewHealthHandler(nil),
	})
	return orders, tokens, e
}

func do(h http.Handler, method, target, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return body["error"]
}

func TestRouter_HealthIsPublic(t *testing.T) {
	_, _, h := newTestRouter(t)

	rec := do(h, http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Aether Backend API is live!") {
		t.Fatalf("unexpected health response: %d %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("request id header missing")
	}
}

func TestRouter_AuthGateAsymmetry(t *testing.T) {
	_, _, h := newTestRouter(t)

	rec := do(h, http.MethodGet, "/api/orders", "")
	if rec.Code != http.StatusUnauthorized || errorOf(t, rec) != "Access denied. No token provided." {
		t.Fatalf("missing token: %d %s", rec.Code, rec.Body.String())
	}

	rec = do(h, http.MethodGet, "/api/orders", "tampered.token.value")
	if rec.Code != http.StatusForbidden || errorOf(t, rec) != "Invalid or expired token." {
		t.Fatalf("invalid token: %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_ValidTokenReachesHandler(t *testing.T) {
	_, tokens, h := newTestRouter(t)
	signed, err := tokens.Issue(domain.Identity{ID: 1, Email: "a@x.io", Name: "A", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	rec := do(h, http.MethodGet, "/api/orders?page=5", signed)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_DeleteRequiresAdmin(t *testing.T) {
	orders, tokens, h := newTestRouter(t)

	viewer, _ := tokens.Issue(domain.Identity{ID: 2, Email: "v@x.io", Name: "V", Role: domain.RoleViewer})
	rec := do(h, http.MethodDelete, "/api/orders/ORD-1", viewer)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("viewer delete: expected 403, got %d", rec.Code)
	}
	if len(orders.deleted) != 0 {
		t.Fatalf("viewer must not delete")
	}

	adminToken, _ := tokens.Issue(domain.Identity{ID: 1, Email: "a@x.io", Name: "A", Role: domain.RoleAdmin})
	rec = do(h, http.MethodDelete, "/api/orders/ORD-1", adminToken)
	if rec.Code != http.StatusOK || len(orders.deleted) != 1 || orders.deleted[0] != "ORD-1" {
		t.Fatalf("admin delete: %d %v", rec.Code, orders.deleted)
	}
}
