// Package like はいいねのトグル操作のドメインロジックを提供する。
package like

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/picstream/internal/metrics"
	"github.com/hitoshi/picstream/internal/model"
	"github.com/hitoshi/picstream/internal/repository"
)

// ToggleResult はトグル操作後のいいね状態を表す。
type ToggleResult struct {
	Liked     bool // 操作後に自分のいいねが存在するか
	LikeCount int  // 操作後の投稿のいいね数
}

// Service はいいねのトグル操作を提供する。
// いいねは(post, user)の集合メンバーシップとして扱い、
// 同じ操作を2回実行すると元の状態に戻る。
type Service struct {
	likeRepo repository.LikeRepository
	postRepo repository.PostRepository
	recorder metrics.Recorder
}

// NewService はServiceを生成する。
func NewService(
	likeRepo repository.LikeRepository,
	postRepo repository.PostRepository,
	recorder metrics.Recorder,
) *Service {
	return &Service{
		likeRepo: likeRepo,
		postRepo: postRepo,
		recorder: recorder,
	}
}

// Toggle は指定投稿へのいいねをトグルする。
// いいねが存在しなければ作成し、存在すれば削除する。
// いいね作成時、投稿者が自分でない場合は投稿者への通知を
// いいねと同一トランザクションで作成する。
// 並行した同一いいねの挿入が衝突した場合はLIKE_CONFLICTを返す。
func (s *Service) Toggle(ctx context.Context, userID, postID string) (*ToggleResult, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("投稿の取得に失敗しました: %w", err)
	}
	if post == nil {
		return nil, model.NewPostNotFoundError(postID)
	}

	exists, err := s.likeRepo.Exists(ctx, postID, userID)
	if err != nil {
		return nil, fmt.Errorf("いいねの取得に失敗しました: %w", err)
	}

	var liked bool
	if exists {
		// いいね解除。行が既に消えていても結果は同じ（未いいね状態）。
		if _, err := s.likeRepo.Delete(ctx, postID, userID); err != nil {
			return nil, fmt.Errorf("いいねの削除に失敗しました: %w", err)
		}
		liked = false
	} else {
		newLike := &model.Like{
			PostID:    postID,
			UserID:    userID,
			CreatedAt: time.Now(),
		}

		// 自分の投稿へのいいねでは通知を作成しない
		var notification *model.Notification
		if post.UserID != userID {
			notification = &model.Notification{
				ID:        uuid.New().String(),
				UserID:    post.UserID,
				ActorID:   userID,
				Kind:      model.NotificationKindLike,
				PostID:    postID,
				CreatedAt: time.Now(),
			}
		}

		if err := s.likeRepo.CreateWithNotification(ctx, newLike, notification); err != nil {
			return nil, err
		}
		liked = true

		if s.recorder != nil && notification != nil {
			s.recorder.RecordNotificationFanout(string(model.NotificationKindLike), 1)
		}
	}

	if s.recorder != nil {
		s.recorder.RecordLikeToggled(liked)
	}

	count, err := s.likeRepo.CountByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("いいね数の取得に失敗しました: %w", err)
	}

	return &ToggleResult{Liked: liked, LikeCount: count}, nil
}
