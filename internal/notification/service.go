// Package notification は通知の一覧取得と既読管理を提供する。
package notification

import (
	"context"
	"fmt"

	"github.com/hitoshi/picstream/internal/model"
	"github.com/hitoshi/picstream/internal/repository"
)

// listLimit は通知一覧で返す最大件数。
const listLimit = 50

// ListResult は通知一覧と未読数をまとめた読み取りモデル。
type ListResult struct {
	Notifications []model.NotificationWithActor
	UnreadCount   int
}

// Service は通知の一覧取得と既読化を提供する。
// 通知の作成は各ドメインサービス（post, like, comment）が行う。
type Service struct {
	notificationRepo repository.NotificationRepository
}

// NewService はServiceを生成する。
func NewService(notificationRepo repository.NotificationRepository) *Service {
	return &Service{notificationRepo: notificationRepo}
}

// List は自分宛ての通知を新しい順で最大50件返す。
// 未読数は一覧の表示件数とは独立に全未読通知を数える。
func (s *Service) List(ctx context.Context, userID string) (*ListResult, error) {
	notifications, err := s.notificationRepo.ListByUserID(ctx, userID, listLimit)
	if err != nil {
		return nil, fmt.Errorf("通知一覧の取得に失敗しました: %w", err)
	}
	if notifications == nil {
		notifications = []model.NotificationWithActor{}
	}

	unread, err := s.notificationRepo.CountUnreadByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("未読数の取得に失敗しました: %w", err)
	}

	return &ListResult{
		Notifications: notifications,
		UnreadCount:   unread,
	}, nil
}

// MarkAllRead は自分宛ての全通知を既読にする。
// 既読は終端状態であり、再実行しても結果は変わらない。
func (s *Service) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		return fmt.Errorf("通知の既読化に失敗しました: %w", err)
	}
	return nil
}
