// Package model はドメインモデルを定義する。
package model

import "time"

// Post は画像投稿を表す。
// 画像は必須、キャプションは任意。作成者のみが更新・削除できる。
type Post struct {
	ID        string
	UserID    string
	ImageURL  string // 必須。空の投稿は作成できない。
	Caption   string
	CreatedAt time.Time
}

// FeedPost はフィード表示用の非正規化された読み取りモデル。
// 投稿に投稿者情報と集計値（いいね数・コメント数・閲覧者のいいね有無）を
// 結合した形で、単一のスナップショット読み取りで取得される。
type FeedPost struct {
	Post
	AuthorUsername string
	AuthorAvatar   string
	LikeCount      int
	CommentCount   int
	IsLiked        bool // 閲覧者自身がいいね済みか
}

// Like は投稿へのいいねを表す。
// (PostID, UserID)の複合キーによる集合のメンバーシップであり、カウンタではない。
// 同一ユーザーが同一投稿に複数回いいねすることはできない。
type Like struct {
	PostID    string
	UserID    string
	CreatedAt time.Time
}
