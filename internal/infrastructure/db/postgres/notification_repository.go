package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aether-dashboard/aether-api/internal/core/domain"
	"github.com/aether-dashboard/aether-api/internal/core/ports"
)

const (
	msgNotificationExists   = "Notification already exists."
	msgNotificationNotFound = "Notification not found"
)

// NotificationRepository implements ports.NotificationRepository on Postgres.
type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) ports.NotificationRepository {
	return &NotificationRepository{pool: pool}
}

func (r *NotificationRepository) Insert(ctx context.Context, n *domain.Notification) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO notifications (user_id, message, type, created_at)
		 VALUES ($1, $2, $3, COALESCE($4, now()))
		 RETURNING id, read, created_at`,
		n.UserID, n.Message, string(n.Type), nullTime(n.CreatedAt),
	).Scan(&n.ID, &n.Read, &n.CreatedAt)
	return translate(err, "insert notification", msgNotificationExists, msgNotificationNotFound)
}

func (r *NotificationRepository) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.Notification, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, message, type, read, created_at
		 FROM notifications
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, translate(err, "list notifications", msgNotificationExists, msgNotificationNotFound)
	}
	defer rows.Close()

	out := []domain.Notification{}
	for rows.Next() {
		var n domain.Notification
		var typ string
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &typ, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.Type = domain.NotificationType(typ)
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT read`, userID,
	).Scan(&n)
	if err != nil {
		return 0, translate(err, "count unread notifications", msgNotificationExists, msgNotificationNotFound)
	}
	return n, nil
}

// MarkRead touches nothing when the row is missing, foreign or already read.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2 AND NOT read`, id, userID)
	return translate(err, "mark notification read", msgNotificationExists, msgNotificationNotFound)
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE notifications SET read = true WHERE user_id = $1 AND NOT read`, userID)
	return translate(err, "mark all notifications read", msgNotificationExists, msgNotificationNotFound)
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
