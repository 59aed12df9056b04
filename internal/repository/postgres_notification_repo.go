package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/picstream/internal/model"
)

// PostgresNotificationRepo はPostgreSQLを使用した通知リポジトリ。
type PostgresNotificationRepo struct {
	db *sql.DB
}

// NewPostgresNotificationRepo はPostgresNotificationRepoを生成する。
func NewPostgresNotificationRepo(db *sql.DB) *PostgresNotificationRepo {
	return &PostgresNotificationRepo{db: db}
}

// ListByUserID は指定ユーザーの通知を作成日時の降順で最大limit件返す。
func (r *PostgresNotificationRepo) ListByUserID(ctx context.Context, userID string, limit int) ([]model.NotificationWithActor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT n.id, n.user_id, n.actor_id, n.kind, COALESCE(n.post_id, ''), n.read, n.created_at,
		        u.username, u.avatar
		 FROM notifications n
		 JOIN users u ON n.actor_id = u.id
		 WHERE n.user_id = $1
		 ORDER BY n.created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.NotificationWithActor
	for rows.Next() {
		var n model.NotificationWithActor
		var kind string
		if err := rows.Scan(
			&n.ID, &n.UserID, &n.ActorID, &kind, &n.PostID, &n.Read, &n.CreatedAt,
			&n.ActorUsername, &n.ActorAvatar,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.Kind = model.NotificationKind(kind)
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}

	return notifications, nil
}

// CountUnreadByUserID は指定ユーザーの未読通知数を返す。
func (r *PostgresNotificationRepo) CountUnreadByUserID(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM notifications WHERE user_id = $1 AND read = FALSE`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkAllRead は指定ユーザーの全通知を既読にする。
// 既読の通知に対しては何もしない（冪等）。
func (r *PostgresNotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

// compile-time interface check
var _ NotificationRepository = (*PostgresNotificationRepo)(nil)
