package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/picstream/internal/model"
)

// PostgresPostRepo はPostgreSQLを使用した投稿リポジトリ。
type PostgresPostRepo struct {
	db *sql.DB
}

// NewPostgresPostRepo はPostgresPostRepoを生成する。
func NewPostgresPostRepo(db *sql.DB) *PostgresPostRepo {
	return &PostgresPostRepo{db: db}
}

// FindByID は指定IDの投稿を取得する。見つからない場合はnilを返す。
func (r *PostgresPostRepo) FindByID(ctx context.Context, id string) (*model.Post, error) {
	post := &model.Post{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, image_url, caption, created_at FROM posts WHERE id = $1`,
		id,
	).Scan(&post.ID, &post.UserID, &post.ImageURL, &post.Caption, &post.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find post by ID: %w", err)
	}

	return post, nil
}

// CreateWithNotifications は投稿とメンション通知を同一トランザクションで作成する。
// 投稿の挿入とメンションのファンアウトはall-or-nothingで、
// 途中で失敗した場合は投稿自体も作成されない。
func (r *PostgresPostRepo) CreateWithNotifications(ctx context.Context, post *model.Post, notifications []*model.Notification) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO posts (id, user_id, image_url, caption, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		post.ID, post.UserID, post.ImageURL, post.Caption, post.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	if err := insertNotifications(ctx, tx, notifications); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Update は投稿のキャプションと画像を上書き更新する。
func (r *PostgresPostRepo) Update(ctx context.Context, post *model.Post) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE posts SET image_url = $1, caption = $2 WHERE id = $3`,
		post.ImageURL, post.Caption, post.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return model.NewPostNotFoundError(post.ID)
	}
	return nil
}

// DeleteByID は指定IDの投稿を削除する。
// comments、likes、post_idを持つnotificationsはCASCADE削除される。
func (r *PostgresPostRepo) DeleteByID(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM posts WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return model.NewPostNotFoundError(id)
	}
	return nil
}

// insertNotifications はトランザクション内で通知をまとめて挿入する。
// 投稿・いいね・コメントの各リポジトリから共用される。
func insertNotifications(ctx context.Context, tx *sql.Tx, notifications []*model.Notification) error {
	for _, n := range notifications {
		// post_idが空の通知はNULLとして保存する
		var postID any
		if n.PostID != "" {
			postID = n.PostID
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO notifications (id, user_id, actor_id, kind, post_id, read, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			n.ID, n.UserID, n.ActorID, string(n.Kind), postID, n.Read, n.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert notification: %w", err)
		}
	}
	return nil
}

// compile-time interface check
var _ PostRepository = (*PostgresPostRepo)(nil)
