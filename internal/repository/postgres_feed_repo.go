package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/picstream/internal/model"
)

// PostgresFeedRepo はPostgreSQLを使用したフィード読み取りリポジトリ。
// 投稿・投稿者・集計値（いいね数、viewerのいいね有無、コメント数）を
// 単一のSQL文で取得するため、1レスポンス内の全行が同一スナップショットを反映する。
type PostgresFeedRepo struct {
	db *sql.DB
}

// NewPostgresFeedRepo はPostgresFeedRepoを生成する。
func NewPostgresFeedRepo(db *sql.DB) *PostgresFeedRepo {
	return &PostgresFeedRepo{db: db}
}

// feedSelectSQL はフィード1行分の取得カラム。
// 相関サブクエリで投稿ごとの集計を行う。
const feedSelectSQL = `
	SELECT p.id, p.user_id, p.image_url, p.caption, p.created_at,
	       u.username, u.avatar,
	       (SELECT count(*) FROM likes WHERE post_id = p.id) AS like_count,
	       EXISTS (SELECT 1 FROM likes WHERE post_id = p.id AND user_id = $1) AS is_liked,
	       (SELECT count(*) FROM comments WHERE post_id = p.id) AS comment_count
	FROM posts p
	JOIN users u ON p.user_id = u.id`

// ListFeed は全ユーザーの投稿を作成日時の降順で最大limit件返す。
func (r *PostgresFeedRepo) ListFeed(ctx context.Context, viewerID string, limit int) ([]model.FeedPost, error) {
	rows, err := r.db.QueryContext(ctx,
		feedSelectSQL+`
		 ORDER BY p.created_at DESC
		 LIMIT $2`,
		viewerID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list feed: %w", err)
	}
	defer rows.Close()

	return scanFeedPosts(rows)
}

// ListByAuthorID は指定ユーザーの投稿のみを作成日時の降順で最大limit件返す。
func (r *PostgresFeedRepo) ListByAuthorID(ctx context.Context, viewerID, authorID string, limit int) ([]model.FeedPost, error) {
	rows, err := r.db.QueryContext(ctx,
		feedSelectSQL+`
		 WHERE p.user_id = $2
		 ORDER BY p.created_at DESC
		 LIMIT $3`,
		viewerID, authorID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list user posts: %w", err)
	}
	defer rows.Close()

	return scanFeedPosts(rows)
}

// scanFeedPosts はフィードクエリの結果行をFeedPostのスライスに変換する。
func scanFeedPosts(rows *sql.Rows) ([]model.FeedPost, error) {
	var posts []model.FeedPost
	for rows.Next() {
		var p model.FeedPost
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.ImageURL, &p.Caption, &p.CreatedAt,
			&p.AuthorUsername, &p.AuthorAvatar,
			&p.LikeCount, &p.IsLiked, &p.CommentCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan feed post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feed posts: %w", err)
	}

	return posts, nil
}

// compile-time interface check
var _ FeedRepository = (*PostgresFeedRepo)(nil)
