// Package model はドメインモデルを定義する。
package model

import "time"

// NotificationKind は通知の種別を表す。
type NotificationKind string

const (
	// NotificationKindLike はいいねによる通知。
	NotificationKindLike NotificationKind = "like"
	// NotificationKindComment はコメントによる通知。
	NotificationKindComment NotificationKind = "comment"
	// NotificationKindMention はメンション（@username）による通知。
	NotificationKindMention NotificationKind = "mention"
)

// Notification はユーザーへの通知を表す。
// ActorIDは通知を発生させたユーザーで、受信者（UserID）と同一になることはない。
// 自分自身の操作では通知は生成されない。
// 未読で作成され、MarkAllReadで既読になる。既読は終端状態。
type Notification struct {
	ID        string
	UserID    string // 受信者
	ActorID   string // 通知を発生させたユーザー
	Kind      NotificationKind
	PostID    string // 関連する投稿ID。投稿に紐付かない通知では空。
	Read      bool
	CreatedAt time.Time
}

// NotificationWithActor は通知とアクターの公開情報を結合したモデル。
// usersテーブルとJOINして取得される。
type NotificationWithActor struct {
	Notification
	ActorUsername string
	ActorAvatar   string
}
