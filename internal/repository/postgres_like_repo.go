package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/picstream/internal/model"
)

// PostgresLikeRepo はPostgreSQLを使用したいいねリポジトリ。
type PostgresLikeRepo struct {
	db *sql.DB
}

// NewPostgresLikeRepo はPostgresLikeRepoを生成する。
func NewPostgresLikeRepo(db *sql.DB) *PostgresLikeRepo {
	return &PostgresLikeRepo{db: db}
}

// Exists は指定の(post, user)のいいねが存在するかを返す。
func (r *PostgresLikeRepo) Exists(ctx context.Context, postID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM likes WHERE post_id = $1 AND user_id = $2)`,
		postID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check like existence: %w", err)
	}
	return exists, nil
}

// CreateWithNotification はいいねと通知を同一トランザクションで作成する。
// 並行した同一(post, user)の挿入は主キー制約で1件しか成功しない。
// 負けた側にはLIKE_CONFLICTエラーを返し、呼び出し側がトグル解除として再試行する。
func (r *PostgresLikeRepo) CreateWithNotification(ctx context.Context, like *model.Like, notification *model.Notification) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO likes (post_id, user_id, created_at) VALUES ($1, $2, $3)`,
		like.PostID, like.UserID, like.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.NewLikeConflictError(like.PostID)
		}
		return fmt.Errorf("failed to insert like: %w", err)
	}

	if notification != nil {
		if err := insertNotifications(ctx, tx, []*model.Notification{notification}); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Delete は指定の(post, user)のいいねを削除する。
// 削除した場合はtrue、行が存在しなかった場合はfalseを返す。
func (r *PostgresLikeRepo) Delete(ctx context.Context, postID, userID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM likes WHERE post_id = $1 AND user_id = $2`,
		postID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete like: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// CountByPostID は投稿のいいね数を返す。
func (r *PostgresLikeRepo) CountByPostID(ctx context.Context, postID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM likes WHERE post_id = $1`,
		postID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

// compile-time interface check
var _ LikeRepository = (*PostgresLikeRepo)(nil)
