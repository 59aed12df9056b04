// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, not_found, forbidden, conflict, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeMissingFields      = "MISSING_FIELDS"
	ErrCodeInvalidUsername    = "INVALID_USERNAME"
	ErrCodeUsernameTaken      = "USERNAME_TAKEN"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeImageRequired      = "IMAGE_REQUIRED"
	ErrCodeAvatarRequired     = "AVATAR_REQUIRED"
	ErrCodePostNotFound       = "POST_NOT_FOUND"
	ErrCodePostForbidden      = "POST_FORBIDDEN"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeLikeConflict       = "LIKE_CONFLICT"
	ErrCodeInvalidImageData   = "INVALID_IMAGE_DATA"
)

// NewMissingFieldsError は必須フィールド未指定エラーを生成する。
func NewMissingFieldsError() *APIError {
	return &APIError{
		Code:     ErrCodeMissingFields,
		Message:  "ユーザー名とパスワードは必須です。",
		Category: "validation",
		Action:   "ユーザー名とパスワードを入力してください。",
	}
}

// NewInvalidUsernameError は使用できないユーザー名エラーを生成する。
func NewInvalidUsernameError(username string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidUsername,
		Message:  fmt.Sprintf("使用できないユーザー名です: %s", username),
		Category: "validation",
		Action:   "ユーザー名には英数字とアンダースコア（30文字以内）のみ使用できます。",
	}
}

// NewUsernameTakenError はユーザー名重複エラーを生成する。
func NewUsernameTakenError(username string) *APIError {
	return &APIError{
		Code:     ErrCodeUsernameTaken,
		Message:  fmt.Sprintf("このユーザー名は既に使用されています: %s", username),
		Category: "conflict",
		Action:   "別のユーザー名を指定してください。",
	}
}

// NewInvalidCredentialsError は認証情報不一致エラーを生成する。
// ユーザー名の存在有無を区別しない単一のエラーを返す。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "ユーザー名またはパスワードが正しくありません。",
		Category: "auth",
		Action:   "入力内容を確認して再度お試しください。",
	}
}

// NewUnauthorizedError は未認証エラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "認証が必要です。",
		Category: "auth",
		Action:   "ログインしてください。",
	}
}

// NewImageRequiredError は画像未指定エラーを生成する。
// 投稿には画像参照が必須で、空の画像では作成も更新もできない。
func NewImageRequiredError() *APIError {
	return &APIError{
		Code:     ErrCodeImageRequired,
		Message:  "投稿には画像が必要です。",
		Category: "validation",
		Action:   "画像を指定してください。",
	}
}

// NewAvatarRequiredError はアバター未指定エラーを生成する。
func NewAvatarRequiredError() *APIError {
	return &APIError{
		Code:     ErrCodeAvatarRequired,
		Message:  "アバター画像が指定されていません。",
		Category: "validation",
		Action:   "アバター画像を指定してください。",
	}
}

// NewPostNotFoundError は投稿未検出エラーを生成する。
func NewPostNotFoundError(postID string) *APIError {
	return &APIError{
		Code:     ErrCodePostNotFound,
		Message:  fmt.Sprintf("指定された投稿が見つかりません: %s", postID),
		Category: "not_found",
		Action:   "投稿IDを確認してください。",
	}
}

// NewPostForbiddenError は投稿の所有権違反エラーを生成する。
// 認証済みだが投稿の作成者ではないユーザーによる更新・削除を拒否する。
func NewPostForbiddenError(postID string) *APIError {
	return &APIError{
		Code:     ErrCodePostForbidden,
		Message:  fmt.Sprintf("この投稿を操作する権限がありません: %s", postID),
		Category: "forbidden",
		Action:   "自分の投稿のみ更新・削除できます。",
	}
}

// NewUserNotFoundError はユーザー未検出エラーを生成する。
func NewUserNotFoundError(username string) *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  fmt.Sprintf("指定されたユーザーが見つかりません: %s", username),
		Category: "not_found",
		Action:   "ユーザー名を確認してください。",
	}
}

// NewLikeConflictError はいいねの同時実行競合エラーを生成する。
// 同一の(post, user)に対する並行した挿入が一意制約違反となった場合に返す。
// 呼び出し側はトグル（解除）として再試行できる。
func NewLikeConflictError(postID string) *APIError {
	return &APIError{
		Code:     ErrCodeLikeConflict,
		Message:  fmt.Sprintf("いいねの処理が競合しました: %s", postID),
		Category: "conflict",
		Action:   "再度お試しください。",
	}
}

// NewInvalidImageDataError は画像データ解析失敗エラーを生成する。
func NewInvalidImageDataError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidImageData,
		Message:  fmt.Sprintf("画像データを解析できませんでした: %s", reason),
		Category: "validation",
		Action:   "画像の形式を確認してください。",
	}
}
