package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/picstream/internal/comment"
	"github.com/hitoshi/picstream/internal/like"
	"github.com/hitoshi/picstream/internal/middleware"
	"github.com/hitoshi/picstream/internal/model"
	"github.com/hitoshi/picstream/internal/post"
)

// PostServiceInterface は投稿ハンドラーが必要とするサービスインターフェース。
type PostServiceInterface interface {
	CreatePost(ctx context.Context, userID, imageRef, caption string) (*model.Post, error)
	UpdatePost(ctx context.Context, userID, postID, imageRef, caption string) (*model.Post, error)
	DeletePost(ctx context.Context, userID, postID string) error
}

// LikeServiceInterface はいいねハンドラーが必要とするサービスインターフェース。
type LikeServiceInterface interface {
	Toggle(ctx context.Context, userID, postID string) (*like.ToggleResult, error)
}

// CommentServiceInterface はコメントハンドラーが必要とするサービスインターフェース。
type CommentServiceInterface interface {
	AddComment(ctx context.Context, userID, postID, content string) (*model.Comment, error)
	ListComments(ctx context.Context, postID string) ([]model.CommentWithAuthor, error)
}

// PostHandler は投稿・いいね・コメントのHTTPハンドラー。
type PostHandler struct {
	postService    PostServiceInterface
	likeService    LikeServiceInterface
	commentService CommentServiceInterface
}

// NewPostHandler はPostHandlerを生成する。
func NewPostHandler(
	postService PostServiceInterface,
	likeService LikeServiceInterface,
	commentService CommentServiceInterface,
) *PostHandler {
	return &PostHandler{
		postService:    postService,
		likeService:    likeService,
		commentService: commentService,
	}
}

// postRequest は投稿作成・更新リクエストのボディ。
// ImageはURLまたはdata URL形式の画像参照。
type postRequest struct {
	Image   string `json:"image"`
	Caption string `json:"caption"`
}

// commentRequest はコメント追加リクエストのボディ。
type commentRequest struct {
	Content string `json:"content"`
}

// CreatePost は新しい投稿を作成する。
// POST /api/posts
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req postRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	post, err := h.postService.CreatePost(r.Context(), userID, req.Image, req.Caption)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPostResponse(post))
}

// UpdatePost は投稿のキャプションと画像を更新する。
// PUT /api/posts/{id}
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	postID := chi.URLParam(r, "id")

	var req postRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	post, err := h.postService.UpdatePost(r.Context(), userID, postID, req.Image, req.Caption)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(post))
}

// DeletePost は投稿を削除する。
// DELETE /api/posts/{id}
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	postID := chi.URLParam(r, "id")

	if err := h.postService.DeletePost(r.Context(), userID, postID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// likeResponse はいいねトグルのAPIレスポンス。
type likeResponse struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

// ToggleLike は投稿へのいいねをトグルする。
// POST /api/posts/{id}/like
func (h *PostHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	postID := chi.URLParam(r, "id")

	result, err := h.likeService.Toggle(r.Context(), userID, postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, likeResponse{
		Liked:     result.Liked,
		LikeCount: result.LikeCount,
	})
}

// AddComment は投稿にコメントを追加する。
// POST /api/posts/{id}/comment
func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	postID := chi.URLParam(r, "id")

	var req commentRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	c, err := h.commentService.AddComment(r.Context(), userID, postID, req.Content)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCommentResponse(model.CommentWithAuthor{Comment: *c}))
}

// ListComments は投稿のコメント一覧を古い順で返す。
// GET /api/posts/{id}/comments
func (h *PostHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")

	comments, err := h.commentService.ListComments(r.Context(), postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]commentResponse, len(comments))
	for i, c := range comments {
		results[i] = toCommentResponse(c)
	}
	writeJSON(w, http.StatusOK, results)
}

// 各ドメインサービスがハンドラー側インターフェースを満たすことを保証する。
var (
	_ PostServiceInterface    = (*post.Service)(nil)
	_ LikeServiceInterface    = (*like.Service)(nil)
	_ CommentServiceInterface = (*comment.Service)(nil)
)
