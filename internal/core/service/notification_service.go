package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/aether-dashboard/aether-api/internal/core/domain"
	"github.com/aether-dashboard/aether-api/internal/core/ports"
	"github.com/aether-dashboard/aether-api/internal/pkg/metrics"
)

const emitTimeout = 5 * time.Second

// Notifier stores notifications after the triggering write has committed.
// It is the only place where a failed side effect is swallowed.
type Notifier struct {
	repo   ports.NotificationRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewNotifier(repo ports.NotificationRepository, logger zerolog.Logger) *Notifier {
	return &Notifier{repo: repo, logger: logger, now: time.Now}
}

// Emit inserts one notification. It runs detached from ctx cancellation so a
// client hanging up after the write does not lose the notification, and it is
// never retried.
func (n *Notifier) Emit(ctx context.Context, userID int64, message string, typ domain.NotificationType) {
	if typ == "" {
		typ = domain.NotificationInfo
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), emitTimeout)
	defer cancel()

	err := n.repo.Insert(ctx, &domain.Notification{
		UserID:    userID,
		Message:   message,
		Type:      typ,
		CreatedAt: n.now().UTC(),
	})
	if err != nil {
		metrics.NotificationsFailedTotal.WithLabelValues(string(typ)).Inc()
		n.logger.Warn().Err(err).Int64("user_id", userID).Str("type", string(typ)).Msg("notification discarded")
		return
	}

	metrics.NotificationsEmittedTotal.WithLabelValues(string(typ)).Inc()
}

// NotificationService is the read side of notifications.
type NotificationService struct {
	repo ports.NotificationRepository
}

func NewNotificationService(repo ports.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) List(ctx context.Context, userID int64) (*ports.NotificationList, error) {
	items, err := s.repo.ListRecent(ctx, userID, domain.NotificationListLimit)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Notification{}
	}
	return &ports.NotificationList{Notifications: items, UnreadCount: unread}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID int64) error {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllRead(ctx, userID)
}
