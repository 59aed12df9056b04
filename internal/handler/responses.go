package handler

import (
	"time"

	"github.com/hitoshi/picstream/internal/model"
)

// userResponse はユーザー公開情報のAPIレスポンス。
// パスワードハッシュは含めない。
type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(p model.PublicProfile) userResponse {
	return userResponse{
		ID:        p.ID,
		Username:  p.Username,
		Avatar:    p.Avatar,
		CreatedAt: p.CreatedAt,
	}
}

// postResponse は投稿単体のAPIレスポンス。作成・更新の応答に使用する。
type postResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ImageURL  string    `json:"image_url"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"created_at"`
}

func toPostResponse(p *model.Post) postResponse {
	return postResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		ImageURL:  p.ImageURL,
		Caption:   p.Caption,
		CreatedAt: p.CreatedAt,
	}
}

// feedPostResponse はフィード表示用のAPIレスポンス。
// 投稿者情報と集計値を含む。
type feedPostResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	ImageURL       string    `json:"image_url"`
	Caption        string    `json:"caption"`
	AuthorUsername string    `json:"author_username"`
	AuthorAvatar   string    `json:"author_avatar"`
	LikeCount      int       `json:"like_count"`
	CommentCount   int       `json:"comment_count"`
	IsLiked        bool      `json:"is_liked"`
	CreatedAt      time.Time `json:"created_at"`
}

func toFeedPostResponse(p model.FeedPost) feedPostResponse {
	return feedPostResponse{
		ID:             p.ID,
		UserID:         p.UserID,
		ImageURL:       p.ImageURL,
		Caption:        p.Caption,
		AuthorUsername: p.AuthorUsername,
		AuthorAvatar:   p.AuthorAvatar,
		LikeCount:      p.LikeCount,
		CommentCount:   p.CommentCount,
		IsLiked:        p.IsLiked,
		CreatedAt:      p.CreatedAt,
	}
}

func toFeedPostResponses(posts []model.FeedPost) []feedPostResponse {
	results := make([]feedPostResponse, len(posts))
	for i, p := range posts {
		results[i] = toFeedPostResponse(p)
	}
	return results
}

// commentResponse はコメントのAPIレスポンス。
type commentResponse struct {
	ID             string    `json:"id"`
	PostID         string    `json:"post_id"`
	UserID         string    `json:"user_id"`
	Content        string    `json:"content"`
	AuthorUsername string    `json:"author_username,omitempty"`
	AuthorAvatar   string    `json:"author_avatar,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func toCommentResponse(c model.CommentWithAuthor) commentResponse {
	return commentResponse{
		ID:             c.ID,
		PostID:         c.PostID,
		UserID:         c.UserID,
		Content:        c.Content,
		AuthorUsername: c.AuthorUsername,
		AuthorAvatar:   c.AuthorAvatar,
		CreatedAt:      c.CreatedAt,
	}
}

// notificationResponse は通知のAPIレスポンス。
type notificationResponse struct {
	ID            string    `json:"id"`
	Kind          string    `json:"kind"`
	ActorID       string    `json:"actor_id"`
	ActorUsername string    `json:"actor_username"`
	ActorAvatar   string    `json:"actor_avatar"`
	PostID        string    `json:"post_id,omitempty"`
	Read          bool      `json:"read"`
	CreatedAt     time.Time `json:"created_at"`
}

func toNotificationResponse(n model.NotificationWithActor) notificationResponse {
	return notificationResponse{
		ID:            n.ID,
		Kind:          string(n.Kind),
		ActorID:       n.ActorID,
		ActorUsername: n.ActorUsername,
		ActorAvatar:   n.ActorAvatar,
		PostID:        n.PostID,
		Read:          n.Read,
		CreatedAt:     n.CreatedAt,
	}
}
