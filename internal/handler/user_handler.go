package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/picstream/internal/middleware"
	"github.com/hitoshi/picstream/internal/model"
	"github.com/hitoshi/picstream/internal/user"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	UpdateAvatar(ctx context.Context, userID, avatarRef string) (*model.User, error)
	Withdraw(ctx context.Context, userID string) error
}

// UserHandler はユーザー管理のHTTPハンドラー。
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// avatarRequest はアバター更新リクエストのボディ。
type avatarRequest struct {
	Avatar string `json:"avatar"`
}

// UpdateAvatar は自分のアバター画像を更新する。
// PUT /api/users/profile
func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req avatarRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	updated, err := h.service.UpdateAvatar(r.Context(), userID, req.Avatar)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(updated.Public()))
}

// Withdraw は自分のアカウントを削除する。
// 投稿・コメント・いいね・通知も連鎖的に削除される。
// DELETE /api/users/me
func (h *UserHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	if err := h.service.Withdraw(r.Context(), userID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// user.Service がUserServiceInterfaceを満たすことを保証する。
var _ UserServiceInterface = (*user.Service)(nil)
