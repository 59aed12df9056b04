// Package feed はフィードとプロフィールの読み取りロジックを提供する。
package feed

import (
	"context"
	"fmt"

	"github.com/hitoshi/picstream/internal/model"
	"github.com/hitoshi/picstream/internal/repository"
)

// feedLimit はフィードで返す投稿の最大件数。
const feedLimit = 100

// ProfileResult はプロフィール表示用の読み取りモデル。
// ユーザーの公開情報と、そのユーザーの投稿一覧を含む。
type ProfileResult struct {
	Profile model.PublicProfile
	Posts   []model.FeedPost
}

// Service はフィードとプロフィールの読み取りを提供する。
// 書き込みは行わない。
type Service struct {
	feedRepo repository.FeedRepository
	userRepo repository.UserRepository
}

// NewService はServiceを生成する。
func NewService(feedRepo repository.FeedRepository, userRepo repository.UserRepository) *Service {
	return &Service{
		feedRepo: feedRepo,
		userRepo: userRepo,
	}
}

// ListFeed は全ユーザーの投稿を新しい順で返す。
// 各投稿にはいいね数・コメント数・閲覧者のいいね有無が付与される。
// viewerIDが空（未認証）の場合、IsLikedはすべてfalseになる。
func (s *Service) ListFeed(ctx context.Context, viewerID string) ([]model.FeedPost, error) {
	posts, err := s.feedRepo.ListFeed(ctx, viewerID, feedLimit)
	if err != nil {
		return nil, fmt.Errorf("フィードの取得に失敗しました: %w", err)
	}
	if posts == nil {
		posts = []model.FeedPost{}
	}
	return posts, nil
}

// GetProfile は指定ユーザー名のプロフィールと投稿一覧を返す。
// ユーザーが存在しない場合はUSER_NOT_FOUNDを返す。
func (s *Service) GetProfile(ctx context.Context, viewerID, username string) (*ProfileResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError(username)
	}

	posts, err := s.feedRepo.ListByAuthorID(ctx, viewerID, user.ID, feedLimit)
	if err != nil {
		return nil, fmt.Errorf("ユーザー投稿の取得に失敗しました: %w", err)
	}
	if posts == nil {
		posts = []model.FeedPost{}
	}

	return &ProfileResult{
		Profile: user.Public(),
		Posts:   posts,
	}, nil
}
