package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/picstream/internal/feed"
	"github.com/hitoshi/picstream/internal/middleware"
	"github.com/hitoshi/picstream/internal/model"
)

// FeedServiceInterface はフィードハンドラーが必要とするサービスインターフェース。
type FeedServiceInterface interface {
	ListFeed(ctx context.Context, viewerID string) ([]model.FeedPost, error)
	GetProfile(ctx context.Context, viewerID, username string) (*feed.ProfileResult, error)
}

// FeedHandler はフィードとプロフィールのHTTPハンドラー。
type FeedHandler struct {
	service FeedServiceInterface
}

// NewFeedHandler はFeedHandlerを生成する。
func NewFeedHandler(service FeedServiceInterface) *FeedHandler {
	return &FeedHandler{service: service}
}

// ListFeed は全ユーザーの投稿を新しい順で返す。
// GET /api/posts
func (h *FeedHandler) ListFeed(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	posts, err := h.service.ListFeed(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toFeedPostResponses(posts))
}

// profileResponse はプロフィールのAPIレスポンス。
type profileResponse struct {
	User  userResponse       `json:"user"`
	Posts []feedPostResponse `json:"posts"`
}

// GetProfile は指定ユーザーのプロフィールと投稿一覧を返す。
// GET /api/users/{username}
func (h *FeedHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	username := chi.URLParam(r, "username")

	result, err := h.service.GetProfile(r.Context(), userID, username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{
		User:  toUserResponse(result.Profile),
		Posts: toFeedPostResponses(result.Posts),
	})
}

// feed.Service がFeedServiceInterfaceを満たすことを保証する。
var _ FeedServiceInterface = (*feed.Service)(nil)
