package domain

import "time"

type NotificationType string

const (
	NotificationInfo  NotificationType = "info"
	NotificationOrder NotificationType = "order"
	NotificationError NotificationType = "error"
)

// NotificationListLimit bounds how many notifications are returned per list.
const NotificationListLimit = 20

// Notification is a human-readable event addressed to the admin who caused it.
type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
