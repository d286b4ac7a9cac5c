package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aether-dashboard/aether-api/internal/core/domain"
	"github.com/aether-dashboard/aether-api/internal/core/ports"
	"github.com/aether-dashboard/aether-api/internal/pkg/metrics"
)

var orderStatuses = []domain.OrderStatus{
	domain.OrderPending, domain.OrderProcessing, domain.OrderCompleted, domain.OrderDelivered, domain.OrderCancelled,
}

// OrderService runs the order workflow. Status changes are unconstrained:
// any status may move to any other.
type OrderService struct {
	repo     ports.OrderRepository
	events   ports.OrderEventRepository
	notifier ports.Notifier
	audit    ports.AuditPublisher
	stats    ports.StatsInvalidator
	logger   zerolog.Logger
	now      func() time.Time
}

// NewOrderService wires the workflow. events and audit may be nil when the
// audit trail is disabled.
func NewOrderService(
	repo ports.OrderRepository,
	events ports.OrderEventRepository,
	notifier ports.Notifier,
	audit ports.AuditPublisher,
	stats ports.StatsInvalidator,
	logger zerolog.Logger,
) *OrderService {
	if audit == nil {
		audit = nopPublisher{}
	}
	if stats == nil {
		stats = nopInvalidator{}
	}
	return &OrderService{
		repo:     repo,
		events:   events,
		notifier: notifier,
		audit:    audit,
		stats:    stats,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *OrderService) List(ctx context.Context, page ports.PageRequest) (*ports.OrderPage, error) {
	page = page.Normalize()

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	meta := ports.NewPageMeta(page, total)
	data := []domain.OrderView{}
	if page.Page <= meta.TotalPages {
		data, err = s.repo.List(ctx, page.Offset(), page.Limit)
		if err != nil {
			return nil, err
		}
		if data == nil {
			data = []domain.OrderView{}
		}
	}

	return &ports.OrderPage{Data: data, Meta: meta}, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.OrderView, error) {
	return s.repo.Get(ctx, id)
}

// Create places an order, creating the customer when the email is new, then
// emits a notification for the acting admin.
func (s *OrderService) Create(ctx context.Context, actor domain.Identity, in ports.CreateOrderInput) (*domain.OrderView, error) {
	id := strings.TrimSpace(in.ID)
	customer := strings.TrimSpace(in.Customer)
	email := strings.TrimSpace(in.Email)
	amount := strings.TrimSpace(in.Amount)
	if id == "" || customer == "" || email == "" || amount == "" {
		return nil, domain.Validation("Order id, customer, email and amount are required.")
	}

	status := domain.OrderPending
	if in.Status != "" {
		status = domain.OrderStatus(in.Status)
		if !status.Valid() {
			return nil, invalidOrderStatus(in.Status)
		}
	}

	date := s.today()
	if in.Date != "" {
		d, err := parseDate(in.Date)
		if err != nil {
			return nil, err
		}
		date = d
	}

	order, err := s.repo.Create(ctx, ports.NewOrder{
		ID:            id,
		CustomerName:  customer,
		CustomerEmail: email,
		Amount:        amount,
		Status:        status,
		Date:          date,
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	s.logger.Info().Str("order_id", order.ID).Int64("actor_id", actor.ID).Msg("order created")

	s.notifier.Emit(ctx, actor.ID, fmt.Sprintf("New order %s created for %s (%s)", order.ID, order.Customer, order.Amount), domain.NotificationOrder)
	s.audit.Publish(s.event(actor, order.ID, domain.OrderEventCreated, func(e *domain.OrderEvent) {
		e.ToStatus = order.Status
		e.Amount = order.Amount
	}))
	s.stats.Invalidate(ctx)

	return order, nil
}

// Update applies a partial change. The status is read before the write so a
// change can be reported as old -> new.
func (s *OrderService) Update(ctx context.Context, actor domain.Identity, id string, in ports.UpdateOrderInput) error {
	patch, err := buildPatch(in)
	if err != nil {
		return err
	}
	if patch.Empty() {
		return domain.Validation("Nothing to update: provide amount, status or date.")
	}

	previous, err := s.repo.Status(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Update(ctx, id, patch); err != nil {
		return err
	}

	s.stats.Invalidate(ctx)

	if patch.Status == nil || *patch.Status == previous {
		s.audit.Publish(s.event(actor, id, domain.OrderEventUpdated, func(e *domain.OrderEvent) {
			if patch.Amount != nil {
				e.Amount = *patch.Amount
			}
		}))
		return nil
	}

	next := *patch.Status
	metrics.OrderStatusChangesTotal.WithLabelValues(string(previous), string(next)).Inc()
	s.logger.Info().
		Str("order_id", id).
		Str("from", string(previous)).
		Str("to", string(next)).
		Int64("actor_id", actor.ID).
		Msg("order status changed")

	s.notifier.Emit(ctx, actor.ID, fmt.Sprintf("Order %s status changed from %s to %s", id, previous, next), domain.NotificationOrder)
	s.audit.Publish(s.event(actor, id, domain.OrderEventStatusChanged, func(e *domain.OrderEvent) {
		e.FromStatus = previous
		e.ToStatus = next
	}))

	return nil
}

func (s *OrderService) Delete(ctx context.Context, actor domain.Identity, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("order_id", id).Int64("actor_id", actor.ID).Msg("order deleted")
	s.audit.Publish(s.event(actor, id, domain.OrderEventDeleted, nil))
	s.stats.Invalidate(ctx)
	return nil
}

// History returns the audit trail, oldest first. It is empty when the audit
// trail is disabled.
func (s *OrderService) History(ctx context.Context, id string) ([]domain.OrderEvent, error) {
	if s.events == nil {
		return []domain.OrderEvent{}, nil
	}
	events, err := s.events.ListByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []domain.OrderEvent{}
	}
	return events, nil
}

func (s *OrderService) event(actor domain.Identity, orderID string, typ domain.OrderEventType, fill func(*domain.OrderEvent)) domain.OrderEvent {
	e := domain.OrderEvent{
		OrderID:    orderID,
		Type:       typ,
		ActorID:    actor.ID,
		ActorEmail: actor.Email,
		OccurredAt: s.now().UTC(),
	}
	if fill != nil {
		fill(&e)
	}
	return e
}

func (s *OrderService) today() time.Time {
	y, m, d := s.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func buildPatch(in ports.UpdateOrderInput) (ports.OrderPatch, error) {
	var p ports.OrderPatch

	if in.Amount != nil {
		amount := strings.TrimSpace(*in.Amount)
		if amount == "" {
			return p, domain.Validation("amount must not be empty")
		}
		p.Amount = &amount
	}
	if in.Status != nil {
		status := domain.OrderStatus(*in.Status)
		if !status.Valid() {
			return p, invalidOrderStatus(*in.Status)
		}
		p.Status = &status
	}
	if in.Date != nil {
		d, err := parseDate(*in.Date)
		if err != nil {
			return p, err
		}
		p.Date = &d
	}

	return p, nil
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp and keeps
// only the UTC calendar date.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(domain.DateLayout, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		y, m, d := t.UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, domain.Validation("date must be formatted as YYYY-MM-DD")
}

func invalidOrderStatus(s string) error {
	names := make([]string, len(orderStatuses))
	for i, st := range orderStatuses {
		names[i] = string(st)
	}
	return domain.Validation(fmt.Sprintf("invalid status %q: must be one of %s", s, strings.Join(names, ", ")))
}

type nopPublisher struct{}

func (nopPublisher) Publish(domain.OrderEvent) {}

type nopInvalidator struct{}

func (nopInvalidator) Invalidate(context.Context) {}
