// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/picstream/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByUsername は指定ユーザー名のユーザーを取得する。見つからない場合はnilを返す。
	// メンション解決とログインで使用される。
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// Create はユーザーを作成する。
	// ユーザー名が既に使用されている場合はUSERNAME_TAKENエラーを返す。
	Create(ctx context.Context, user *model.User) error

	// UpdateAvatar は指定ユーザーのアバターを更新する。
	// avatar以外のユーザーフィールドは不変。
	UpdateAvatar(ctx context.Context, id, avatar string) error

	// DeleteByID は指定IDのユーザーを削除する。
	// 関連するsessions、posts、comments、likes、notificationsはCASCADE削除される。
	DeleteByID(ctx context.Context, id string) error
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションを取得する。期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID は指定IDのセッションを削除する。そのセッションのみが終了する。
	DeleteByID(ctx context.Context, id string) error
	// DeleteByUserID は指定ユーザーの全セッションを削除する。
	DeleteByUserID(ctx context.Context, userID string) error
}

// PostRepository は投稿データの永続化インターフェース。
type PostRepository interface {
	// FindByID は指定IDの投稿を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Post, error)

	// CreateWithNotifications は投稿とメンション通知を同一トランザクションで作成する。
	// 通知が1件も無い場合は投稿のみを作成する。
	// 途中で失敗した場合は全体がロールバックされる。
	CreateWithNotifications(ctx context.Context, post *model.Post, notifications []*model.Notification) error

	// Update は投稿のキャプションと画像を上書き更新する。
	Update(ctx context.Context, post *model.Post) error

	// DeleteByID は指定IDの投稿を削除する。
	// 関連するcomments、likes、post_idを持つnotificationsはCASCADE削除される。
	DeleteByID(ctx context.Context, id string) error
}

// LikeRepository はいいねデータの永続化インターフェース。
// いいねは(post_id, user_id)を主キーとする集合のメンバーシップとして扱う。
type LikeRepository interface {
	// Exists は指定の(post, user)のいいねが存在するかを返す。
	Exists(ctx context.Context, postID, userID string) (bool, error)

	// CreateWithNotification はいいねと通知を同一トランザクションで作成する。
	// notificationがnilの場合はいいねのみを作成する（自分の投稿へのいいね）。
	// 並行した挿入により主キー制約違反となった場合はLIKE_CONFLICTエラーを返す。
	CreateWithNotification(ctx context.Context, like *model.Like, notification *model.Notification) error

	// Delete は指定の(post, user)のいいねを削除する。
	// 削除した場合はtrue、行が存在しなかった場合はfalseを返す。
	Delete(ctx context.Context, postID, userID string) (bool, error)

	// CountByPostID は投稿のいいね数を返す。
	CountByPostID(ctx context.Context, postID string) (int, error)
}

// CommentRepository はコメントデータの永続化インターフェース。
type CommentRepository interface {
	// CreateWithNotifications はコメントと通知（コメント通知＋メンション通知）を
	// 同一トランザクションで作成する。
	// 途中で失敗した場合は全体がロールバックされる。
	CreateWithNotifications(ctx context.Context, comment *model.Comment, notifications []*model.Notification) error

	// ListByPostID は投稿のコメント一覧を作成日時の昇順（古い順）で返す。
	// コメント投稿者の公開情報を結合して取得する。
	ListByPostID(ctx context.Context, postID string) ([]model.CommentWithAuthor, error)

	// CountByPostID は投稿のコメント数を返す。
	CountByPostID(ctx context.Context, postID string) (int, error)
}

// NotificationRepository は通知データの永続化インターフェース。
type NotificationRepository interface {
	// ListByUserID は指定ユーザーの通知を作成日時の降順（新しい順）で最大limit件返す。
	// アクターの公開情報を結合して取得する。
	ListByUserID(ctx context.Context, userID string, limit int) ([]model.NotificationWithActor, error)

	// CountUnreadByUserID は指定ユーザーの未読通知数を返す。
	CountUnreadByUserID(ctx context.Context, userID string) (int, error)

	// MarkAllRead は指定ユーザーの全通知を既読にする。
	MarkAllRead(ctx context.Context, userID string) error
}

// FeedRepository はフィード表示用の読み取り専用インターフェース。
// 投稿・投稿者・集計値を単一のSQL文（＝単一スナップショット）で取得する。
// 書き込みは行わない。
type FeedRepository interface {
	// ListFeed は全ユーザーの投稿を作成日時の降順で最大limit件返す。
	// 各投稿にいいね数・コメント数・viewerのいいね有無を付与する。
	ListFeed(ctx context.Context, viewerID string, limit int) ([]model.FeedPost, error)

	// ListByAuthorID は指定ユーザーの投稿のみを同じ形で返す。
	ListByAuthorID(ctx context.Context, viewerID, authorID string, limit int) ([]model.FeedPost, error)
}
