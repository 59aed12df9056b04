package mention

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/hitoshi/picstream/internal/model"
)

// mockUserLookup はテスト用のUserLookup実装。
// usernameからユーザーIDへのマップで解決する。
type mockUserLookup struct {
	users map[string]string // username -> userID
	err   error
}

func (m *mockUserLookup) FindByUsername(_ context.Context, username string) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	id, ok := m.users[username]
	if !ok {
		return nil, nil
	}
	return &model.User{ID: id, Username: username}, nil
}

// --- ExtractHandles テスト ---

func TestExtractHandles(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "単一メンション",
			text: "hi @bob",
			want: []string{"bob"},
		},
		{
			name: "重複は初出順で除去される",
			text: "@alice @bob @alice",
			want: []string{"alice", "bob"},
		},
		{
			name: "メンションなし",
			text: "ただのキャプション",
			want: nil,
		},
		{
			name: "空文字列",
			text: "",
			want: nil,
		},
		{
			name: "単語構成文字のみがハンドルになる",
			text: "@bob! と @carol_99, そして @",
			want: []string{"bob", "carol_99"},
		},
		{
			name: "文中に埋め込まれたメンション",
			text: "thanks@alice and @bob.",
			want: []string{"alice", "bob"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractHandles(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractHandles(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

// --- Resolve テスト ---

// TestResolver_Resolve_DedupAndOrder は@alice @bob @aliceが
// [alice, bob]に解決されることを検証する。
func TestResolver_Resolve_DedupAndOrder(t *testing.T) {
	lookup := &mockUserLookup{users: map[string]string{
		"alice": "user-alice",
		"bob":   "user-bob",
	}}
	r := NewResolver(lookup)

	targets, err := r.Resolve(context.Background(), "user-carol", "@alice @bob @alice")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	want := []string{"user-alice", "user-bob"}
	if !reflect.DeepEqual(targets, want) {
		t.Errorf("targets = %v, want %v", targets, want)
	}
}

// TestResolver_Resolve_DropsSelf は操作者自身へのメンションが除外されることを検証する。
func TestResolver_Resolve_DropsSelf(t *testing.T) {
	lookup := &mockUserLookup{users: map[string]string{
		"alice": "user-alice",
		"bob":   "user-bob",
	}}
	r := NewResolver(lookup)

	targets, err := r.Resolve(context.Background(), "user-alice", "@alice @bob @alice")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	want := []string{"user-bob"}
	if !reflect.DeepEqual(targets, want) {
		t.Errorf("targets = %v, want %v", targets, want)
	}
}

// TestResolver_Resolve_DropsUnknownSilently は存在しないハンドルが
// エラーにならず黙って除外されることを検証する。
func TestResolver_Resolve_DropsUnknownSilently(t *testing.T) {
	lookup := &mockUserLookup{users: map[string]string{
		"bob": "user-bob",
	}}
	r := NewResolver(lookup)

	targets, err := r.Resolve(context.Background(), "user-alice", "@ghost @bob")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	want := []string{"user-bob"}
	if !reflect.DeepEqual(targets, want) {
		t.Errorf("targets = %v, want %v", targets, want)
	}
}

// TestResolver_Resolve_NoMentions はメンションを含まないテキストで
// 空の結果が返ることを検証する。
func TestResolver_Resolve_NoMentions(t *testing.T) {
	r := NewResolver(&mockUserLookup{})

	targets, err := r.Resolve(context.Background(), "user-alice", "mentions無しのテキスト")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if targets != nil {
		t.Errorf("targets = %v, want nil", targets)
	}
}

// TestResolver_Resolve_StoreError はストアアクセス失敗がエラーとして
// 伝播することを検証する。
func TestResolver_Resolve_StoreError(t *testing.T) {
	lookup := &mockUserLookup{err: errors.New("connection refused")}
	r := NewResolver(lookup)

	_, err := r.Resolve(context.Background(), "user-alice", "@bob")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
