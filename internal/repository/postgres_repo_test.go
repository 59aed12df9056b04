package repository

import (
	"testing"
)

// 各PostgresリポジトリがRepositoryインターフェースを満たすことを検証
func TestPostgresRepos_ImplementInterfaces(t *testing.T) {
	var _ UserRepository = (*PostgresUserRepo)(nil)
	var _ SessionRepository = (*PostgresSessionRepo)(nil)
	var _ PostRepository = (*PostgresPostRepo)(nil)
	var _ LikeRepository = (*PostgresLikeRepo)(nil)
	var _ CommentRepository = (*PostgresCommentRepo)(nil)
	var _ NotificationRepository = (*PostgresNotificationRepo)(nil)
	var _ FeedRepository = (*PostgresFeedRepo)(nil)
}

// 各コンストラクタが正しく初期化されることを検証
func TestNewPostgresRepos_Initialize(t *testing.T) {
	if NewPostgresUserRepo(nil) == nil {
		t.Error("NewPostgresUserRepo returned nil")
	}
	if NewPostgresSessionRepo(nil) == nil {
		t.Error("NewPostgresSessionRepo returned nil")
	}
	if NewPostgresPostRepo(nil) == nil {
		t.Error("NewPostgresPostRepo returned nil")
	}
	if NewPostgresLikeRepo(nil) == nil {
		t.Error("NewPostgresLikeRepo returned nil")
	}
	if NewPostgresCommentRepo(nil) == nil {
		t.Error("NewPostgresCommentRepo returned nil")
	}
	if NewPostgresNotificationRepo(nil) == nil {
		t.Error("NewPostgresNotificationRepo returned nil")
	}
	if NewPostgresFeedRepo(nil) == nil {
		t.Error("NewPostgresFeedRepo returned nil")
	}
}

// isUniqueViolationが一般のエラーに反応しないことを検証
func TestIsUniqueViolation_GenericError(t *testing.T) {
	if isUniqueViolation(errGeneric) {
		t.Error("expected false for generic error")
	}
	if isUniqueViolation(nil) {
		t.Error("expected false for nil error")
	}
}

var errGeneric = errDummy{}

type errDummy struct{}

func (errDummy) Error() string { return "dummy" }
