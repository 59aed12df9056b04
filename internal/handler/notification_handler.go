package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/picstream/internal/middleware"
	"github.com/hitoshi/picstream/internal/notification"
)

// NotificationServiceInterface は通知ハンドラーが必要とするサービスインターフェース。
type NotificationServiceInterface interface {
	List(ctx context.Context, userID string) (*notification.ListResult, error)
	MarkAllRead(ctx context.Context, userID string) error
}

// NotificationHandler は通知のHTTPハンドラー。
type NotificationHandler struct {
	service NotificationServiceInterface
}

// NewNotificationHandler はNotificationHandlerを生成する。
func NewNotificationHandler(service NotificationServiceInterface) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// notificationListResponse は通知一覧のAPIレスポンス。
type notificationListResponse struct {
	Notifications []notificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unread_count"`
}

// List は自分宛ての通知を新しい順で最大50件返す。
// GET /api/notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	result, err := h.service.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]notificationResponse, len(result.Notifications))
	for i, n := range result.Notifications {
		results[i] = toNotificationResponse(n)
	}
	writeJSON(w, http.StatusOK, notificationListResponse{
		Notifications: results,
		UnreadCount:   result.UnreadCount,
	})
}

// MarkAllRead は自分宛ての全通知を既読にする。
// POST /api/notifications/read
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	if err := h.service.MarkAllRead(r.Context(), userID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// notification.Service がNotificationServiceInterfaceを満たすことを保証する。
var _ NotificationServiceInterface = (*notification.Service)(nil)
