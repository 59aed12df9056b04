// Package post は画像投稿のドメインロジックを提供する。
package post

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/picstream/internal/media"
	"github.com/hitoshi/picstream/internal/mention"
	"github.com/hitoshi/picstream/internal/metrics"
	"github.com/hitoshi/picstream/internal/model"
	"github.com/hitoshi/picstream/internal/repository"
	"github.com/hitoshi/picstream/internal/security"
)

// Service は投稿の作成・更新・削除のビジネスロジックを提供する。
// キャプション内のメンションはresolverで解決され、
// 投稿の保存とメンション通知の作成は単一トランザクションで行われる。
type Service struct {
	postRepo   repository.PostRepository
	resolver   *mention.Resolver
	sanitizer  security.ContentSanitizerService
	imageStore media.ImageStore
	recorder   metrics.Recorder
}

// NewService はServiceを生成する。
func NewService(
	postRepo repository.PostRepository,
	resolver *mention.Resolver,
	sanitizer security.ContentSanitizerService,
	imageStore media.ImageStore,
	recorder metrics.Recorder,
) *Service {
	return &Service{
		postRepo:   postRepo,
		resolver:   resolver,
		sanitizer:  sanitizer,
		imageStore: imageStore,
		recorder:   recorder,
	}
}

// CreatePost は新しい投稿を作成する。
// 画像は必須、キャプションは任意。
// キャプション内のメンション（@username）は解決され、対象ユーザーへの
// 通知が投稿と同一トランザクションで作成される。
// 存在しないハンドルと自分自身へのメンションは黙って無視される。
func (s *Service) CreatePost(ctx context.Context, userID, imageRef, caption string) (*model.Post, error) {
	if imageRef == "" {
		return nil, model.NewImageRequiredError()
	}

	caption = s.sanitizer.SanitizeText(caption)

	imageURL, err := s.imageStore.StoreImage(ctx, userID, imageRef)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		ID:        uuid.New().String(),
		UserID:    userID,
		ImageURL:  imageURL,
		Caption:   caption,
		CreatedAt: time.Now(),
	}

	targets, err := s.resolver.Resolve(ctx, userID, caption)
	if err != nil {
		return nil, fmt.Errorf("メンションの解決に失敗しました: %w", err)
	}

	notifications := buildMentionNotifications(userID, post.ID, targets)

	if err := s.postRepo.CreateWithNotifications(ctx, post, notifications); err != nil {
		return nil, fmt.Errorf("投稿の作成に失敗しました: %w", err)
	}

	if s.recorder != nil {
		s.recorder.RecordPostCreated()
		s.recorder.RecordNotificationFanout(string(model.NotificationKindMention), len(notifications))
	}

	slog.Info("投稿を作成しました",
		slog.String("post_id", post.ID),
		slog.String("user_id", userID),
		slog.Int("mention_count", len(notifications)),
	)

	return post, nil
}

// UpdatePost は投稿のキャプションと画像を更新する。
// 作成時と同様に画像は必須。
// 作成者本人のみが更新でき、他人の投稿に対してはPOST_FORBIDDENを返す。
// 更新によって新たなメンション通知は生成されない。
func (s *Service) UpdatePost(ctx context.Context, userID, postID, imageRef, caption string) (*model.Post, error) {
	if imageRef == "" {
		return nil, model.NewImageRequiredError()
	}

	post, err := s.findOwnedPost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if imageRef != post.ImageURL {
		imageURL, err := s.imageStore.StoreImage(ctx, userID, imageRef)
		if err != nil {
			return nil, err
		}
		post.ImageURL = imageURL
	}

	post.Caption = s.sanitizer.SanitizeText(caption)

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("投稿の更新に失敗しました: %w", err)
	}

	return post, nil
}

// DeletePost は投稿を削除する。
// 作成者本人のみが削除でき、関連するコメント・いいね・通知はCASCADE削除される。
func (s *Service) DeletePost(ctx context.Context, userID, postID string) error {
	if _, err := s.findOwnedPost(ctx, userID, postID); err != nil {
		return err
	}

	if err := s.postRepo.DeleteByID(ctx, postID); err != nil {
		return fmt.Errorf("投稿の削除に失敗しました: %w", err)
	}

	if s.recorder != nil {
		s.recorder.RecordPostDeleted()
	}

	slog.Info("投稿を削除しました",
		slog.String("post_id", postID),
		slog.String("user_id", userID),
	)

	return nil
}

// findOwnedPost は投稿を取得し、所有者を検証する。
func (s *Service) findOwnedPost(ctx context.Context, userID, postID string) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("投稿の取得に失敗しました: %w", err)
	}
	if post == nil {
		return nil, model.NewPostNotFoundError(postID)
	}
	if post.UserID != userID {
		return nil, model.NewPostForbiddenError(postID)
	}
	return post, nil
}

// buildMentionNotifications はメンション対象ユーザーへの通知を構築する。
func buildMentionNotifications(actorID, postID string, targets []string) []*model.Notification {
	if len(targets) == 0 {
		return nil
	}

	now := time.Now()
	notifications := make([]*model.Notification, len(targets))
	for i, target := range targets {
		notifications[i] = &model.Notification{
			ID:        uuid.New().String(),
			UserID:    target,
			ActorID:   actorID,
			Kind:      model.NotificationKindMention,
			PostID:    postID,
			CreatedAt: now,
		}
	}
	return notifications
}
