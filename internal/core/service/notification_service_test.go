package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/aether-dashboard/aether-api/internal/core/domain"
	"github.com/aether-dashboard/aether-api/internal/pkg/metrics"
)

type memNotificationRepo struct {
	items     []*domain.Notification
	insertErr error
	inserts   int
	// ctxErr is the context error observed while Insert was running.
	ctxErr error
}

func (r *memNotificationRepo) Insert(ctx context.Context, n *domain.Notification) error {
	r.inserts++
	r.ctxErr = ctx.Err()
	if r.insertErr != nil {
		return r.insertErr
	}
	clone := *n
	clone.ID = int64(len(r.items) + 1)
	r.items = append(r.items, &clone)
	return nil
}

func (r *memNotificationRepo) ListRecent(_ context.Context, userID int64, limit int) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range r.items {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memNotificationRepo) CountUnread(_ context.Context, userID int64) (int64, error) {
	var n int64
	for _, it := range r.items {
		if it.UserID == userID && !it.Read {
			n++
		}
	}
	return n, nil
}

func (r *memNotificationRepo) MarkRead(_ context.Context, id, userID int64) error {
	for _, it := range r.items {
		if it.ID == id && it.UserID == userID {
			it.Read = true
		}
	}
	return nil
}

func (r *memNotificationRepo) MarkAllRead(_ context.Context, userID int64) error {
	for _, it := range r.items {
		if it.UserID == userID {
			it.Read = true
		}
	}
	return nil
}

func TestNotifier_Emit_Stores(t *testing.T) {
	repo := &memNotificationRepo{}
	n := NewNotifier(repo, zerolog.Nop())

	n.Emit(context.Background(), 7, "Order ORD-1 created", "")

	if len(repo.items) != 1 {
		t.Fatalf("expected 1 stored notification, got %d", len(repo.items))
	}
	got := repo.items[0]
	if got.UserID != 7 || got.Type != domain.NotificationInfo || got.Read {
		t.Fatalf("unexpected notification: %+v", got)
	}
}

func TestNotifier_Emit_SwallowsFailure(t *testing.T) {
	repo := &memNotificationRepo{insertErr: errors.New("relation does not exist")}
	n := NewNotifier(repo, zerolog.Nop())

	failed := metrics.NotificationsFailedTotal.WithLabelValues(string(domain.NotificationOrder))
	before := testutil.ToFloat64(failed)

	n.Emit(context.Background(), 7, "boom", domain.NotificationOrder)

	if repo.inserts != 1 {
		t.Fatalf("expected one insert attempt, got %d", repo.inserts)
	}
	if len(repo.items) != 0 {
		t.Fatalf("nothing should be stored, got %d", len(repo.items))
	}
	if got := testutil.ToFloat64(failed) - before; got != 1 {
		t.Fatalf("expected failed counter to rise by 1, got %v", got)
	}
}

func TestNotifier_Emit_SurvivesCancelledRequest(t *testing.T) {
	repo := &memNotificationRepo{}
	n := NewNotifier(repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n.Emit(ctx, 7, "late", domain.NotificationOrder)

	if repo.inserts != 1 {
		t.Fatalf("expected one insert, got %d", repo.inserts)
	}
	if repo.ctxErr != nil {
		t.Fatalf("insert ran with a done context: %v", repo.ctxErr)
	}
}

func TestNotificationService_ListNewestFirstBounded(t *testing.T) {
	repo := &memNotificationRepo{}
	n := NewNotifier(repo, zerolog.Nop())
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		n.now = func() time.Time { return at }
		n.Emit(context.Background(), 1, fmt.Sprintf("n%d", i), domain.NotificationOrder)
	}
	n.Emit(context.Background(), 2, "someone else", domain.NotificationOrder)

	list, err := NewNotificationService(repo).List(context.Background(), 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list.Notifications) != domain.NotificationListLimit {
		t.Fatalf("expected %d notifications, got %d", domain.NotificationListLimit, len(list.Notifications))
	}
	if list.Notifications[0].Message != "n24" {
		t.Errorf("expected newest first, got %s", list.Notifications[0].Message)
	}
	if list.UnreadCount != 25 {
		t.Errorf("expected 25 unread, got %d", list.UnreadCount)
	}
}

func TestNotificationService_MarkAllReadIdempotent(t *testing.T) {
	repo := &memNotificationRepo{}
	n := NewNotifier(repo, zerolog.Nop())
	n.Emit(context.Background(), 1, "a", domain.NotificationOrder)
	n.Emit(context.Background(), 1, "b", domain.NotificationOrder)
	svc := NewNotificationService(repo)

	for i := 0; i < 2; i++ {
		if err := svc.MarkAllRead(context.Background(), 1); err != nil {
			t.Fatalf("MarkAllRead #%d: %v", i+1, err)
		}
		list, err := svc.List(context.Background(), 1)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if list.UnreadCount != 0 {
			t.Fatalf("expected 0 unread after MarkAllRead #%d, got %d", i+1, list.UnreadCount)
		}
	}
}

func TestNotificationService_MarkReadNoOps(t *testing.T) {
	repo := &memNotificationRepo{}
	n := NewNotifier(repo, zerolog.Nop())
	n.Emit(context.Background(), 1, "mine", domain.NotificationOrder)
	n.Emit(context.Background(), 2, "theirs", domain.NotificationOrder)
	svc := NewNotificationService(repo)
	ctx := context.Background()

	if err := svc.MarkRead(ctx, 1, 1); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if err := svc.MarkRead(ctx, 1, 1); err != nil {
		t.Fatalf("MarkRead on already-read notification must not fail: %v", err)
	}
	if err := svc.MarkRead(ctx, 2, 1); err != nil {
		t.Fatalf("MarkRead on foreign notification must not fail: %v", err)
	}

	mine, _ := svc.List(ctx, 1)
	theirs, _ := svc.List(ctx, 2)
	if mine.UnreadCount != 0 || theirs.UnreadCount != 1 {
		t.Fatalf("unexpected unread counts: mine=%d theirs=%d", mine.UnreadCount, theirs.UnreadCount)
	}
}

func TestNotificationService_ListEmpty(t *testing.T) {
	list, err := NewNotificationService(&memNotificationRepo{}).List(context.Background(), 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if list.Notifications == nil || len(list.Notifications) != 0 || list.UnreadCount != 0 {
		t.Fatalf("expected empty list, got %+v", list)
	}
}
