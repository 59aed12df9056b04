// Package mention は自由テキストからのメンション（@username）抽出と解決を提供する。
//
// 投稿キャプションとコメント本文の2箇所で同じ規則が必要になるため、
// 抽出パターンと解決ロジックをこのパッケージに一元化する。
package mention

import (
	"context"
	"fmt"
	"regexp"

	"github.com/hitoshi/picstream/internal/model"
)

// handlePattern はメンションのトークンパターン。
// 「@」に続く1文字以上の単語構成文字（英数字とアンダースコア）にマッチする。
// 重複・部分一致はせず、先頭から順に走査される。
var handlePattern = regexp.MustCompile(`@(\w+)`)

// UserLookup はハンドルからユーザーを解決するためのインターフェース。
// repository.UserRepositoryの部分集合として定義する。
type UserLookup interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

// Resolver はメンションの抽出と解決を行う。
// 副作用を持たず、ストアへの読み取りのみを行う。
type Resolver struct {
	users UserLookup
}

// NewResolver はResolverを生成する。
func NewResolver(users UserLookup) *Resolver {
	return &Resolver{users: users}
}

// ExtractHandles はテキストからメンションのハンドルを抽出する。
// 初出順を保ったまま重複を除去したハンドル（@を除いた形）を返す。
func ExtractHandles(text string) []string {
	matches := handlePattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	var handles []string
	for _, m := range matches {
		handle := m[1]
		if seen[handle] {
			continue
		}
		seen[handle] = true
		handles = append(handles, handle)
	}

	return handles
}

// Resolve はテキストからメンションを抽出し、通知対象のユーザーIDを初出順で返す。
// 存在しないハンドルと操作者自身（actorID）へのメンションはエラーにせず黙って除外する。
// ストアアクセス自体の失敗はエラーとして返す。
func (r *Resolver) Resolve(ctx context.Context, actorID, text string) ([]string, error) {
	handles := ExtractHandles(text)
	if len(handles) == 0 {
		return nil, nil
	}

	var targets []string
	for _, handle := range handles {
		user, err := r.users.FindByUsername(ctx, handle)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve mention %q: %w", handle, err)
		}
		if user == nil || user.ID == actorID {
			continue
		}
		targets = append(targets, user.ID)
	}

	return targets, nil
}
