package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/neomorfeo/skillbarter/internal/domain"
)

// Compile-time check: NotificationRepository implements domain.NotificationRepository.
var _ domain.NotificationRepository = (*NotificationRepository)(nil)

// NotificationRepository implements domain.NotificationRepository using SQLite.
type NotificationRepository struct {
	db *sql.DB
}

func (r *NotificationRepository) Create(ctx context.Context, n domain.Notification) error {
	var tradeID any
	if n.TradeID != "" {
		tradeID = n.TradeID
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications (id, user_id, type, message, trade_id, read, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, string(n.Type), n.Message, tradeID, n.Read, formatTime(n.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting notification: %w", err)
	}
	return nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	query := `SELECT id, user_id, type, message, trade_id, read, created_at
		FROM notifications WHERE user_id = ?`
	if unreadOnly {
		query += ` AND read = 0`
	}
	query += ` ORDER BY created_at DESC, rowid DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]domain.Notification, 0)
	for rows.Next() {
		var n domain.Notification
		var typ, createdAt string
		var tradeID sql.NullString

		if err := rows.Scan(&n.ID, &n.UserID, &typ, &n.Message, &tradeID, &n.Read, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning notification row: %w", err)
		}

		n.Type = domain.NotificationType(typ)
		n.TradeID = tradeID.String
		n.CreatedAt = parseTime(createdAt)
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read = 1 WHERE id = ? AND user_id = ?`, id, userID,
	)
	if err != nil {
		return fmt.Errorf("marking notification read: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotificationNotFound
	}

	return nil
}
