package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/aether-dashboard/aether-api/internal/core/domain"
	"github.com/aether-dashboard/aether-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubOrderRepo struct {
	orders    map[string]*domain.OrderView
	customers map[string]string // email -> name
	listCalls int
	updateErr error
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{
		orders:    make(map[string]*domain.OrderView),
		customers: make(map[string]string),
	}
}

func (r *stubOrderRepo) List(_ context.Context, offset, limit int) ([]domain.OrderView, error) {
	r.listCalls++
	out := []domain.OrderView{}
	i := 0
	for _, o := range r.orders {
		if i >= offset && len(out) < limit {
			out = append(out, *o)
		}
		i++
	}
	return out, nil
}

func (r *stubOrderRepo) Count(context.Context) (int64, error) { return int64(len(r.orders)), nil }

func (r *stubOrderRepo) Get(_ context.Context, id string) (*domain.OrderView, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.NotFound("Order not found")
	}
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) Create(_ context.Context, o ports.NewOrder) (*domain.OrderView, error) {
	if _, ok := r.orders[o.ID]; ok {
		return nil, domain.Conflict("Order already exists.")
	}
	name, ok := r.customers[o.CustomerEmail]
	if !ok {
		name = o.CustomerName
		r.customers[o.CustomerEmail] = name
	}
	view := &domain.OrderView{
		ID:       o.ID,
		Customer: name,
		Email:    o.CustomerEmail,
		Amount:   o.Amount,
		Status:   o.Status,
		Date:     o.Date.Format(domain.DateLayout),
	}
	r.orders[o.ID] = view
	clone := *view
	return &clone, nil
}

func (r *stubOrderRepo) Status(_ context.Context, id string) (domain.OrderStatus, error) {
	o, ok := r.orders[id]
	if !ok {
		return "", domain.NotFound("Order not found")
	}
	return o.Status, nil
}

func (r *stubOrderRepo) Update(_ context.Context, id string, p ports.OrderPatch) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	o, ok := r.orders[id]
	if !ok {
		return domain.NotFound("Order not found")
	}
	if p.Amount != nil {
		o.Amount = *p.Amount
	}
	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.Date != nil {
		o.Date = p.Date.Format(domain.DateLayout)
	}
	return nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.orders[id]; !ok {
		return domain.NotFound("Order not found")
	}
	delete(r.orders, id)
	return nil
}

type emitted struct {
	userID  int64
	message string
	typ     domain.NotificationType
}

type stubNotifier struct {
	emitted []emitted
}

func (n *stubNotifier) Emit(_ context.Context, userID int64, message string, typ domain.NotificationType) {
	n.emitted = append(n.emitted, emitted{userID: userID, message: message, typ: typ})
}

type stubPublisher struct {
	events []domain.OrderEvent
}

func (p *stubPublisher) Publish(e domain.OrderEvent) { p.events = append(p.events, e) }

type stubInvalidator struct{ calls int }

func (s *stubInvalidator) Invalidate(context.Context) { s.calls++ }

type stubEventRepo struct {
	byOrder map[string][]domain.OrderEvent
}

func (r *stubEventRepo) Insert(_ context.Context, e domain.OrderEvent) error {
	r.byOrder[e.OrderID] = append(r.byOrder[e.OrderID], e)
	return nil
}

func (r *stubEventRepo) ListByOrder(_ context.Context, id string) ([]domain.OrderEvent, error) {
	return r.byOrder[id], nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var admin = domain.Identity{ID: 1, Email: "admin@example.com", Name: "Admin", Role: domain.RoleAdmin}

type orderFixture struct {
	svc       *OrderService
	repo      *stubOrderRepo
	notifier  *stubNotifier
	publisher *stubPublisher
	stats     *stubInvalidator
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		repo:      newStubOrderRepo(),
		notifier:  &stubNotifier{},
		publisher: &stubPublisher{},
		stats:     &stubInvalidator{},
	}
	f.svc = NewOrderService(f.repo, nil, f.notifier, f.publisher, f.stats, zerolog.Nop())
	f.svc.now = func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) }
	return f
}

func (f *orderFixture) seed(t *testing.T, id string, status domain.OrderStatus) {
	t.Helper()
	_, err := f.repo.Create(context.Background(), ports.NewOrder{
		ID: id, CustomerName: "Alex Morgan", CustomerEmail: "alex@example.com",
		Amount: "$250.00", Status: status, Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func strPtr(s string) *string { return &s }

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestOrderService_Create_EmitsCreatedNotification(t *testing.T) {
	f := newOrderFixture()

	order, err := f.svc.Create(context.Background(), admin, ports.CreateOrderInput{
		ID: "ORD-100", Customer: "Sarah Chen", Email: "sarah@example.com", Amount: "$99.00",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if order.Status != domain.OrderPending {
		t.Errorf("expected default status Pending, got %s", order.Status)
	}
	if order.Date != "2024-03-15" {
		t.Errorf("expected today's date, got %s", order.Date)
	}
	if len(f.notifier.emitted) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(f.notifier.emitted))
	}
	n := f.notifier.emitted[0]
	if n.userID != admin.ID || n.typ != domain.NotificationOrder || !strings.Contains(n.message, "ORD-100") {
		t.Errorf("unexpected notification: %+v", n)
	}
	if len(f.publisher.events) != 1 || f.publisher.events[0].Type != domain.OrderEventCreated {
		t.Errorf("expected one created audit event, got %+v", f.publisher.events)
	}
	if f.stats.calls != 1 {
		t.Errorf("expected stats cache invalidation")
	}
}

func TestOrderService_Create_ReusesExistingCustomer(t *testing.T) {
	f := newOrderFixture()
	f.seed(t, "ORD-001", domain.OrderPending)

	order, err := f.svc.Create(context.Background(), admin, ports.CreateOrderInput{
		ID: "ORD-002", Customer: "Someone Else", Email: "alex@example.com", Amount: "$10", Date: "2024-03-10",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if order.Customer != "Alex Morgan" {
		t.Errorf("expected existing customer name, got %q", order.Customer)
	}
	if len(f.repo.customers) != 1 {
		t.Errorf("expected one customer, got %d", len(f.repo.customers))
	}
}

func TestOrderService_Create_Validation(t *testing.T) {
	f := newOrderFixture()

	cases := []ports.CreateOrderInput{
		{Customer: "A", Email: "a@example.com", Amount: "$1"},
		{ID: "ORD-1", Customer: "A", Email: "a@example.com", Amount: "$1", Status: "Shipped"},
		{ID: "ORD-1", Customer: "A", Email: "a@example.com", Amount: "$1", Date: "15/03/2024"},
	}
	for _, in := range cases {
		if _, err := f.svc.Create(context.Background(), admin, in); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("%+v: expected ErrValidation, got %v", in, err)
		}
	}
	if len(f.notifier.emitted) != 0 {
		t.Errorf("no notification expected on validation failure")
	}
}

func TestOrderService_Create_DuplicateID(t *testing.T) {
	f := newOrderFixture()
	f.seed(t, "ORD-001", domain.OrderPending)

	_, err := f.svc.Create(context.Background(), admin, ports.CreateOrderInput{
		ID: "ORD-001", Customer: "A", Email: "a@example.com", Amount: "$1",
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if len(f.notifier.emitted) != 0 {
		t.Errorf("no notification expected when the insert fails")
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestOrderService_Update_StatusChangeEmitsOnce(t *testing.T) {
	f := newOrderFixture()
	f.seed(t, "ORD-001", domain.OrderPending)

	err := f.svc.Update(context.Background(), admin, "ORD-001", ports.UpdateOrderInput{Status: strPtr("Processing")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if len(f.notifier.emitted) != 1 {
		t.Fatalf("expected exactly 1 notification, got %d", len(f.notifier.emitted))
	}
	msg := f.notifier.emitted[0].message
	if !strings.Contains(msg, "Pending") || !strings.Contains(msg, "Processing") {
		t.Errorf("message should name old and new status: %q", msg)
	}
	if f.notifier.emitted[0].userID != admin.ID {
		t.Errorf("notification must go to the acting admin")
	}
	if f.repo.orders["ORD-001"].Status != domain.OrderProcessing {
		t.Errorf("status not applied")
	}
	ev := f.publisher.events[len(f.publisher.events)-1]
	if ev.Type != domain.OrderEventStatusChanged || ev.FromStatus != domain.OrderPending || ev.ToStatus != domain.OrderProcessing {
		t.Errorf("unexpected audit event: %+v", ev)
	}
}

func TestOrderService_Update_SameStatusEmitsNothing(t *testing.T) {
	f := newOrderFixture()
	f.seed(t, "ORD-001", domain.OrderPending)

	err := f.svc.Update(context.Background(), admin, "ORD-001", ports.UpdateOrderInput{
		Status: strPtr("Pending"),
		Amount: strPtr("$300.00"),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(f.notifier.emitted) != 0 {
		t.Fatalf("expected no notification, got %d", len(f.notifier.emitted))
	}
	if f.repo.orders["ORD-001"].Amount != "$300.00" {
		t.Errorf("amount not applied")
	}
}

func TestOrderService_Update_AnyTransitionAllowed(t *testing.T) {
	f := newOrderFixture()
	f.seed(t, "ORD-001", domain.OrderCancelled)

	if err := f.svc.Update(context.Background(), admin, "ORD-001", ports.UpdateOrderInput{Status: strPtr("Pending")}); err != nil {
		t.Fatalf("expected Cancelled -> Pending to be accepted, got %v", err)
	}
}

func TestOrderService_Update_NotFound(t *testing.T) {
	f := newOrderFixture()

	err := f.svc.Update(context.Background(), admin, "ORD-404", ports.UpdateOrderInput{Status: strPtr("Completed")})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(f.notifier.emitted) != 0 {
		t.Errorf("no notification expected")
	}
}

func TestOrderService_Update_RowVanishedBetweenReadAndWrite(t *testing.T) {
	f := newOrderFixture()
	f.seed(t, "ORD-001", domain.OrderPending)
	f.repo.updateErr = domain.NotFound("Order not found")

	err := f.svc.Update(context.Background(), admin, "ORD-001", ports.UpdateOrderInput{Status: strPtr("Completed")})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(f.notifier.emitted) != 0 {
		t.Errorf("no notification expected when the write fails")
	}
}

func TestOrderService_Update_EmptyPatch(t *testing.T) {
	f := newOrderFixture()
	f.seed(t, "ORD-001", domain.OrderPending)

	if err := f.svc.Update(context.Background(), admin, "ORD-001", ports.UpdateOrderInput{}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestOrderService_Update_AcceptsRFC3339Date(t *testing.T) {
	f := newOrderFixture()
	f.seed(t, "ORD-001", domain.OrderPending)

	err := f.svc.Update(context.Background(), admin, "ORD-001", ports.UpdateOrderInput{Date: strPtr("2024-02-10T23:30:00-03:00")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := f.repo.orders["ORD-001"].Date; got != "2024-02-11" {
		t.Errorf("expected UTC calendar date 2024-02-11, got %s", got)
	}
}

// ---------------------------------------------------------------------------
// List, Delete, History
// ---------------------------------------------------------------------------

func TestOrderService_List_Pagination(t *testing.T) {
	f := newOrderFixture()
	for _, id := range []string{"ORD-1", "ORD-2", "ORD-3", "ORD-4", "ORD-5"} {
		f.seed(t, id, domain.OrderPending)
	}

	page, err := f.svc.List(context.Background(), ports.PageRequest{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Data) != 2 || page.Meta.TotalItems != 5 || page.Meta.TotalPages != 3 || page.Meta.CurrentPage != 2 {
		t.Fatalf("unexpected page: %+v", page.Meta)
	}
}

func TestOrderService_List_PastLastPage(t *testing.T) {
	f := newOrderFixture()
	f.seed(t, "ORD-1", domain.OrderPending)
	f.seed(t, "ORD-2", domain.OrderPending)

	page, err := f.svc.List(context.Background(), ports.PageRequest{Page: 9, Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Data == nil || len(page.Data) != 0 {
		t.Fatalf("expected empty non-nil data, got %v", page.Data)
	}
	if page.Meta.TotalItems != 2 || page.Meta.TotalPages != 1 {
		t.Fatalf("unexpected meta: %+v", page.Meta)
	}
	if f.repo.listCalls != 0 {
		t.Errorf("store should not be queried past the last page")
	}
}

func TestOrderService_List_HugePageSkipsStore(t *testing.T) {
	f := newOrderFixture()
	f.seed(t, "ORD-1", domain.OrderPending)

	page, err := f.svc.List(context.Background(), ports.PageRequest{Page: 100000000000000000, Limit: 100})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Data) != 0 || page.Meta.TotalItems != 1 || page.Meta.TotalPages != 1 {
		t.Fatalf("unexpected page: data=%v meta=%+v", page.Data, page.Meta)
	}
	if f.repo.listCalls != 0 {
		t.Errorf("store queried for page %d", page.Meta.CurrentPage)
	}
}

func TestOrderService_Delete(t *testing.T) {
	f := newOrderFixture()
	f.seed(t, "ORD-001", domain.OrderPending)

	if err := f.svc.Delete(context.Background(), admin, "ORD-001"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := f.svc.Delete(context.Background(), admin, "ORD-001"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if got := f.publisher.events[len(f.publisher.events)-1].Type; got != domain.OrderEventDeleted {
		t.Errorf("expected deleted audit event, got %s", got)
	}
}

func TestOrderService_History(t *testing.T) {
	f := newOrderFixture()
	if events, err := f.svc.History(context.Background(), "ORD-001"); err != nil || len(events) != 0 || events == nil {
		t.Fatalf("expected empty history without an audit store, got %v %v", events, err)
	}

	repo := &stubEventRepo{byOrder: map[string][]domain.OrderEvent{
		"ORD-001": {{OrderID: "ORD-001", Type: domain.OrderEventCreated}},
	}}
	svc := NewOrderService(f.repo, repo, f.notifier, nil, nil, zerolog.Nop())
	events, err := svc.History(context.Background(), "ORD-001")
	if err != nil || len(events) != 1 {
		t.Fatalf("unexpected history: %v %v", events, err)
	}
}
