package comment

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/picstream/internal/mention"
	"github.com/hitoshi/picstream/internal/model"
	"github.com/hitoshi/picstream/internal/security"
)

// mockCommentRepo はrepository.CommentRepositoryのモック実装。
type mockCommentRepo struct {
	createWithNotificationsFunc func(ctx context.Context, comment *model.Comment, notifications []*model.Notification) error
	listByPostIDFunc            func(ctx context.Context, postID string) ([]model.CommentWithAuthor, error)
}

func (m *mockCommentRepo) CreateWithNotifications(ctx context.Context, comment *model.Comment, notifications []*model.Notification) error {
	return m.createWithNotificationsFunc(ctx, comment, notifications)
}

func (m *mockCommentRepo) ListByPostID(ctx context.Context, postID string) ([]model.CommentWithAuthor, error) {
	return m.listByPostIDFunc(ctx, postID)
}

func (m *mockCommentRepo) CountByPostID(ctx context.Context, postID string) (int, error) {
	return 0, nil
}

// mockPostFinder はrepository.PostRepositoryのモック実装。読み取りのみ使用する。
type mockPostFinder struct {
	post *model.Post
}

func (m *mockPostFinder) FindByID(ctx context.Context, id string) (*model.Post, error) {
	return m.post, nil
}

func (m *mockPostFinder) CreateWithNotifications(ctx context.Context, post *model.Post, notifications []*model.Notification) error {
	return nil
}

func (m *mockPostFinder) Update(ctx context.Context, post *model.Post) error {
	return nil
}

func (m *mockPostFinder) DeleteByID(ctx context.Context, id string) error {
	return nil
}

// mockUserLookup はmention.UserLookupのモック実装。
type mockUserLookup struct {
	users map[string]string
}

func (m *mockUserLookup) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	id, ok := m.users[username]
	if !ok {
		return nil, nil
	}
	return &model.User{ID: id, Username: username}, nil
}

func newTestService(commentRepo *mockCommentRepo, post *model.Post, users map[string]string) *Service {
	if users == nil {
		users = map[string]string{}
	}
	return NewService(
		commentRepo,
		&mockPostFinder{post: post},
		mention.NewResolver(&mockUserLookup{users: users}),
		security.NewContentSanitizer(),
		nil,
	)
}

func TestAddComment_NotifiesOwnerAndMentions(t *testing.T) {
	var gotComment *model.Comment
	var gotNotifications []*model.Notification
	commentRepo := &mockCommentRepo{
		createWithNotificationsFunc: func(ctx context.Context, comment *model.Comment, notifications []*model.Notification) error {
			gotComment = comment
			gotNotifications = notifications
			return nil
		},
	}
	post := &model.Post{ID: "post-1", UserID: "user-owner"}
	users := map[string]string{"bob": "user-bob"}

	service := newTestService(commentRepo, post, users)

	comment, err := service.AddComment(context.Background(), "user-alice", "post-1", "nice shot @bob")
	if err != nil {
		t.Fatalf("AddComment()がエラーを返した: %v", err)
	}

	if gotComment == nil || gotComment.ID != comment.ID {
		t.Fatal("コメントがリポジトリに渡されていない")
	}
	if len(gotNotifications) != 2 {
		t.Fatalf("通知数 = %d, want 2", len(gotNotifications))
	}

	// 1件目は投稿者へのコメント通知
	if gotNotifications[0].UserID != "user-owner" || gotNotifications[0].Kind != model.NotificationKindComment {
		t.Errorf("コメント通知が不正: %+v", gotNotifications[0])
	}
	// 2件目はメンション通知
	if gotNotifications[1].UserID != "user-bob" || gotNotifications[1].Kind != model.NotificationKindMention {
		t.Errorf("メンション通知が不正: %+v", gotNotifications[1])
	}
}

func TestAddComment_OwnerMentionedGetsBothNotifications(t *testing.T) {
	var gotNotifications []*model.Notification
	commentRepo := &mockCommentRepo{
		createWithNotificationsFunc: func(ctx context.Context, comment *model.Comment, notifications []*model.Notification) error {
			gotNotifications = notifications
			return nil
		},
	}
	post := &model.Post{ID: "post-1", UserID: "user-owner"}
	users := map[string]string{"owner": "user-owner"}

	service := newTestService(commentRepo, post, users)

	_, err := service.AddComment(context.Background(), "user-alice", "post-1", "hey @owner")
	if err != nil {
		t.Fatalf("AddComment()がエラーを返した: %v", err)
	}

	// 投稿者にはコメント通知とメンション通知の両方が届く
	if len(gotNotifications) != 2 {
		t.Fatalf("通知数 = %d, want 2", len(gotNotifications))
	}
	if gotNotifications[0].UserID != "user-owner" || gotNotifications[0].Kind != model.NotificationKindComment {
		t.Errorf("コメント通知が不正: %+v", gotNotifications[0])
	}
	if gotNotifications[1].UserID != "user-owner" || gotNotifications[1].Kind != model.NotificationKindMention {
		t.Errorf("メンション通知が不正: %+v", gotNotifications[1])
	}
}

func TestAddComment_SelfCommentNoOwnerNotification(t *testing.T) {
	var gotNotifications []*model.Notification
	commentRepo := &mockCommentRepo{
		createWithNotificationsFunc: func(ctx context.Context, comment *model.Comment, notifications []*model.Notification) error {
			gotNotifications = notifications
			return nil
		},
	}
	post := &model.Post{ID: "post-1", UserID: "user-1"}

	service := newTestService(commentRepo, post, nil)

	_, err := service.AddComment(context.Background(), "user-1", "post-1", "my own post")
	if err != nil {
		t.Fatalf("AddComment()がエラーを返した: %v", err)
	}
	if len(gotNotifications) != 0 {
		t.Errorf("自分の投稿へのコメントで通知が作成された: %d件", len(gotNotifications))
	}
}

func TestAddComment_EmptyContentIsAccepted(t *testing.T) {
	var gotComment *model.Comment
	commentRepo := &mockCommentRepo{
		createWithNotificationsFunc: func(ctx context.Context, comment *model.Comment, notifications []*model.Notification) error {
			gotComment = comment
			return nil
		},
	}
	service := newTestService(commentRepo, &model.Post{ID: "post-1", UserID: "user-1"}, nil)

	comment, err := service.AddComment(context.Background(), "user-1", "post-1", "")
	if err != nil {
		t.Fatalf("空コメントでエラーが返った: %v", err)
	}
	if gotComment == nil || gotComment.ID != comment.ID {
		t.Fatal("コメントがリポジトリに渡されていない")
	}
	if gotComment.Content != "" {
		t.Errorf("Content = %q, want empty", gotComment.Content)
	}
}

func TestAddComment_PostNotFound(t *testing.T) {
	service := newTestService(&mockCommentRepo{}, nil, nil)

	_, err := service.AddComment(context.Background(), "user-1", "post-missing", "hello")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodePostNotFound {
		t.Errorf("POST_NOT_FOUNDが返らなかった: %v", err)
	}
}

func TestAddComment_SanitizesContent(t *testing.T) {
	var gotComment *model.Comment
	commentRepo := &mockCommentRepo{
		createWithNotificationsFunc: func(ctx context.Context, comment *model.Comment, notifications []*model.Notification) error {
			gotComment = comment
			return nil
		},
	}
	post := &model.Post{ID: "post-1", UserID: "user-owner"}

	service := newTestService(commentRepo, post, nil)

	_, err := service.AddComment(context.Background(), "user-alice", "post-1", `<img src=x onerror=alert(1)>great`)
	if err != nil {
		t.Fatalf("AddComment()がエラーを返した: %v", err)
	}
	if gotComment.Content != "great" {
		t.Errorf("Content = %q, want %q", gotComment.Content, "great")
	}
}

func TestListComments_UnknownPostReturnsEmptyList(t *testing.T) {
	commentRepo := &mockCommentRepo{
		listByPostIDFunc: func(ctx context.Context, postID string) ([]model.CommentWithAuthor, error) {
			return nil, nil
		},
	}
	service := newTestService(commentRepo, nil, nil)

	got, err := service.ListComments(context.Background(), "post-missing")
	if err != nil {
		t.Fatalf("ListComments()がエラーを返した: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("未知の投稿には空のリストを返すべき: %+v", got)
	}
}

func TestListComments_ReturnsInOrder(t *testing.T) {
	comments := []model.CommentWithAuthor{
		{Comment: model.Comment{ID: "c1", Content: "first"}, AuthorUsername: "alice"},
		{Comment: model.Comment{ID: "c2", Content: "second"}, AuthorUsername: "bob"},
	}
	commentRepo := &mockCommentRepo{
		listByPostIDFunc: func(ctx context.Context, postID string) ([]model.CommentWithAuthor, error) {
			return comments, nil
		},
	}
	service := newTestService(commentRepo, &model.Post{ID: "post-1"}, nil)

	got, err := service.ListComments(context.Background(), "post-1")
	if err != nil {
		t.Fatalf("ListComments()がエラーを返した: %v", err)
	}
	if len(got) != 2 || got[0].ID != "c1" || got[1].ID != "c2" {
		t.Errorf("コメント一覧が不正: %+v", got)
	}
}
