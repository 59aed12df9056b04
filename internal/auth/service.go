// Package auth はユーザー登録、ログイン、セッション管理を提供する。
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/picstream/internal/model"
	"github.com/hitoshi/picstream/internal/repository"
)

// usernamePattern は有効なユーザー名のパターン。
// 英数字とアンダースコアのみ、1〜30文字。
// メンション（@username）のトークンパターンと同じ文字集合であることが前提。
var usernamePattern = regexp.MustCompile(`^\w{1,30}$`)

// avatarURLTemplate は登録時に割り当てるデフォルトアバターのURLテンプレート。
const avatarURLTemplate = "https://api.dicebear.com/7.x/avataaars/svg?seed=%s"

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	SessionMaxAge int // セッション有効期間（秒）
}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	hasher      PasswordHasher
	config      ServiceConfig
}

// NewService はServiceを生成する。
func NewService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	hasher PasswordHasher,
	config ServiceConfig,
) *Service {
	return &Service{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		hasher:      hasher,
		config:      config,
	}
}

// Register は新規ユーザーを登録し、セッションを発行する。
// ユーザー名は英数字とアンダースコア1〜30文字のみ有効。
// アバターにはユーザー名をシードとしたデフォルト画像URLを割り当てる。
func (s *Service) Register(ctx context.Context, username, password string) (*model.User, *model.Session, error) {
	if username == "" || password == "" {
		return nil, nil, model.NewMissingFieldsError()
	}
	if !usernamePattern.MatchString(username) {
		return nil, nil, model.NewInvalidUsernameError(username)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, nil, fmt.Errorf("パスワードのハッシュ化に失敗しました: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		Avatar:       fmt.Sprintf(avatarURLTemplate, username),
		CreatedAt:    time.Now(),
	}

	// ユーザー名の一意性はDB制約で担保される（重複時はUSERNAME_TAKEN）
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	slog.Info("新規ユーザーを登録しました",
		slog.String("user_id", user.ID),
		slog.String("username", username),
	)

	return user, session, nil
}

// Login はユーザー名とパスワードを検証し、新しいセッションを発行する。
// ユーザーが存在しない場合とパスワードが一致しない場合を区別せず、
// どちらもINVALID_CREDENTIALSを返す。
func (s *Service) Login(ctx context.Context, username, password string) (*model.User, *model.Session, error) {
	if username == "" || password == "" {
		return nil, nil, model.NewMissingFieldsError()
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, nil, model.NewInvalidCredentialsError()
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, nil, model.NewInvalidCredentialsError()
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	slog.Info("ユーザーがログインしました",
		slog.String("user_id", user.ID),
	)

	return user, session, nil
}

// Logout は指定セッションを削除する。
// 同一ユーザーの他のセッションには影響しない。
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessionRepo.DeleteByID(ctx, sessionID); err != nil {
		return fmt.Errorf("セッションの削除に失敗しました: %w", err)
	}
	return nil
}

// GetCurrentUser は認証済みユーザーIDから現在のユーザーを取得する。
// ユーザーが既に削除されている場合はUNAUTHORIZEDを返す。
func (s *Service) GetCurrentUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.NewUnauthorizedError()
	}
	return user, nil
}

// createSession は新しいセッションを作成して永続化する。
func (s *Service) createSession(ctx context.Context, userID string) (*model.Session, error) {
	sessionID, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("セッションIDの生成に失敗しました: %w", err)
	}

	now := time.Now()
	session := &model.Session{
		ID:        sessionID,
		UserID:    userID,
		ExpiresAt: now.Add(time.Duration(s.config.SessionMaxAge) * time.Second),
		CreatedAt: now,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("セッションの作成に失敗しました: %w", err)
	}

	return session, nil
}

// generateSessionID は暗号的に安全なランダムセッションIDを生成する。
func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
