// Package comment は投稿へのコメントのドメインロジックを提供する。
package comment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/picstream/internal/mention"
	"github.com/hitoshi/picstream/internal/metrics"
	"github.com/hitoshi/picstream/internal/model"
	"github.com/hitoshi/picstream/internal/repository"
	"github.com/hitoshi/picstream/internal/security"
)

// Service はコメントの追加と一覧取得を提供する。
// コメントは追記専用で、編集・削除の操作は持たない。
type Service struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	resolver    *mention.Resolver
	sanitizer   security.ContentSanitizerService
	recorder    metrics.Recorder
}

// NewService はServiceを生成する。
func NewService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	resolver *mention.Resolver,
	sanitizer security.ContentSanitizerService,
	recorder metrics.Recorder,
) *Service {
	return &Service{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		resolver:    resolver,
		sanitizer:   sanitizer,
		recorder:    recorder,
	}
}

// AddComment は投稿にコメントを追加する。空のコメントも許容される。
// 投稿者が自分でない場合は投稿者へのコメント通知を作成する。
// 本文内のメンション（@username）対象にはメンション通知を作成する。
// 投稿者がメンションにも含まれる場合、投稿者にはコメント通知と
// メンション通知の両方が届く。重複排除はしない。
// コメントと全通知は単一トランザクションで作成される。
func (s *Service) AddComment(ctx context.Context, userID, postID, content string) (*model.Comment, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("投稿の取得に失敗しました: %w", err)
	}
	if post == nil {
		return nil, model.NewPostNotFoundError(postID)
	}

	content = s.sanitizer.SanitizeText(content)

	comment := &model.Comment{
		ID:        uuid.New().String(),
		PostID:    postID,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	targets, err := s.resolver.Resolve(ctx, userID, content)
	if err != nil {
		return nil, fmt.Errorf("メンションの解決に失敗しました: %w", err)
	}

	notifications := buildCommentNotifications(userID, post.UserID, postID, targets)

	if err := s.commentRepo.CreateWithNotifications(ctx, comment, notifications); err != nil {
		return nil, fmt.Errorf("コメントの作成に失敗しました: %w", err)
	}

	if s.recorder != nil {
		s.recorder.RecordCommentCreated()
		for _, n := range notifications {
			s.recorder.RecordNotificationFanout(string(n.Kind), 1)
		}
	}

	return comment, nil
}

// ListComments は投稿のコメント一覧を古い順で返す。
// 未知の投稿IDに対しては空のリストを返す。エラーにはしない。
func (s *Service) ListComments(ctx context.Context, postID string) ([]model.CommentWithAuthor, error) {
	comments, err := s.commentRepo.ListByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("コメント一覧の取得に失敗しました: %w", err)
	}
	if comments == nil {
		comments = []model.CommentWithAuthor{}
	}

	return comments, nil
}

// buildCommentNotifications はコメントに伴う通知を構築する。
// 投稿者へのコメント通知（自分の投稿でない場合）と、
// メンション対象へのメンション通知を返す。
// 投稿者がメンション対象でもある場合は両方の通知が作成される。
func buildCommentNotifications(actorID, postOwnerID, postID string, mentionTargets []string) []*model.Notification {
	now := time.Now()
	var notifications []*model.Notification

	if postOwnerID != actorID {
		notifications = append(notifications, &model.Notification{
			ID:        uuid.New().String(),
			UserID:    postOwnerID,
			ActorID:   actorID,
			Kind:      model.NotificationKindComment,
			PostID:    postID,
			CreatedAt: now,
		})
	}

	for _, target := range mentionTargets {
		notifications = append(notifications, &model.Notification{
			ID:        uuid.New().String(),
			UserID:    target,
			ActorID:   actorID,
			Kind:      model.NotificationKindMention,
			PostID:    postID,
			CreatedAt: now,
		})
	}

	return notifications
}
