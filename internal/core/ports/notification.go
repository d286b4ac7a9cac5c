package ports

import (
	"context"

	"github.com/aether-dashboard/aether-api/internal/core/domain"
)

type NotificationRepository interface {
	Insert(ctx context.Context, n *domain.Notification) error
	// ListRecent returns at most limit notifications, newest first.
	ListRecent(ctx context.Context, userID int64, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	// MarkRead is a no-op when the notification is missing, owned by someone
	// else or already read.
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
}

// Notifier is the post-commit hook for user-facing notifications. Emit is
// best effort: failures are logged and never reach the caller.
type Notifier interface {
	Emit(ctx context.Context, userID int64, message string, typ domain.NotificationType)
}

type NotificationList struct {
	Notifications []domain.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unreadCount"`
}

type NotificationService interface {
	List(ctx context.Context, userID int64) (*NotificationList, error)
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
}
