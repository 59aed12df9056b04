// Package model はドメインモデルを定義する。
package model

import "time"

// Comment は投稿へのコメントを表す。
// 追記専用で、編集・削除の操作は存在しない。
type Comment struct {
	ID        string
	PostID    string
	UserID    string
	Content   string
	CreatedAt time.Time
}

// CommentWithAuthor はコメントとコメント投稿者の公開情報を結合したモデル。
// usersテーブルとJOINして取得される。
type CommentWithAuthor struct {
	Comment
	AuthorUsername string
	AuthorAvatar   string
}
