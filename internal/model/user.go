// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// usernameは一意で、メンション（@username）の解決に使用される。
// avatar以外のフィールドは作成後に変更されない。
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcryptハッシュ。平文は保持しない。
	Avatar       string // アバター画像のURL
	CreatedAt    time.Time
}

// PublicProfile はユーザーの公開情報（パスワードハッシュを除く）を表す。
// API応答やフィードの投稿者表示に使用する。
type PublicProfile struct {
	ID        string
	Username  string
	Avatar    string
	CreatedAt time.Time
}

// Public はUserから公開情報のみを取り出す。
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:        u.ID,
		Username:  u.Username,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

// Session はユーザーのログインセッションを表す。
// IDはCookieに保存される不透明なランダムトークン。
// 1ユーザーが複数セッションを持てる。
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
