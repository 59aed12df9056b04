// Package security はアプリケーションのセキュリティ機能を提供する。
//
// ContentSanitizerService はユーザー入力テキスト（キャプション・コメント）を
// サニタイズし、XSS攻撃などのセキュリティリスクからユーザーを保護する。
// このサービスではユーザーテキストはプレーンテキストとして扱うため、
// bluemondayのStrictPolicyで全てのHTMLタグを除去する。
package security

import (
	"github.com/microcosm-cc/bluemonday"
)

// ContentSanitizerService はユーザー入力テキストのサニタイズ機能の
// インターフェースを定義する。キャプション・コメントの保存前に使用される。
type ContentSanitizerService interface {
	// SanitizeText はテキストから全てのHTMLタグを除去して返す。
	// メンション（@username）等のプレーンテキストはそのまま保持される。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	SanitizeText(text string) string
}

// contentSanitizer はContentSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type contentSanitizer struct {
	policy *bluemonday.Policy
}

// NewContentSanitizer はContentSanitizerServiceの新しいインスタンスを生成する。
// StrictPolicy（許可タグなし）を使用し、タグをすべて除去してテキストのみを残す。
func NewContentSanitizer() *contentSanitizer {
	return &contentSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// SanitizeText はテキストから全てのHTMLタグを除去して返す。
func (s *contentSanitizer) SanitizeText(text string) string {
	return s.policy.Sanitize(text)
}
