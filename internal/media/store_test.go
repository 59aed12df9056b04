package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"

	"github.com/hitoshi/picstream/internal/model"
)

// mockPutter はテスト用のobjectPutter実装。
type mockPutter struct {
	putFn func(ctx context.Context, bucketName, objectName string, reader *bytes.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)

	// 記録用
	lastBucket      string
	lastObjectName  string
	lastSize        int64
	lastContentType string
}

func (m *mockPutter) PutObject(ctx context.Context, bucketName, objectName string, reader *bytes.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	m.lastBucket = bucketName
	m.lastObjectName = objectName
	m.lastSize = objectSize
	m.lastContentType = opts.ContentType
	if m.putFn != nil {
		return m.putFn(ctx, bucketName, objectName, reader, objectSize, opts)
	}
	return minio.UploadInfo{}, nil
}

func newTestMinioStore(putter objectPutter) *MinioStore {
	return &MinioStore{
		putter:        putter,
		bucket:        "picstream-media",
		publicBaseURL: "https://media.example.com",
	}
}

// TestPassthroughStore_ReturnsInputUnchanged はPassthroughStoreが
// あらゆる画像参照を無変換で返すことを検証する。
func TestPassthroughStore_ReturnsInputUnchanged(t *testing.T) {
	s := NewPassthroughStore()

	inputs := []string{
		"https://example.com/image.jpg",
		"data:image/png;base64,aGVsbG8=",
		"",
	}

	for _, input := range inputs {
		got, err := s.StoreImage(context.Background(), "user-1", input)
		if err != nil {
			t.Fatalf("StoreImage(%q) returned error: %v", input, err)
		}
		if got != input {
			t.Errorf("StoreImage(%q) = %q, want unchanged", input, got)
		}
	}
}

// TestMinioStore_PassesThroughHTTPURL は通常のURLがアップロードされず
// そのまま返ることを検証する。
func TestMinioStore_PassesThroughHTTPURL(t *testing.T) {
	putter := &mockPutter{}
	s := newTestMinioStore(putter)

	got, err := s.StoreImage(context.Background(), "user-1", "https://example.com/a.jpg")
	if err != nil {
		t.Fatalf("StoreImage returned error: %v", err)
	}
	if got != "https://example.com/a.jpg" {
		t.Errorf("got %q, want unchanged URL", got)
	}
	if putter.lastObjectName != "" {
		t.Error("http URLでPutObjectが呼ばれました")
	}
}

// TestMinioStore_UploadsDataURL はdata URLがデコード・アップロードされ、
// 公開URLが返ることを検証する。
func TestMinioStore_UploadsDataURL(t *testing.T) {
	putter := &mockPutter{}
	s := newTestMinioStore(putter)

	payload := []byte("fake-png-bytes")
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	got, err := s.StoreImage(context.Background(), "user-1", dataURL)
	if err != nil {
		t.Fatalf("StoreImage returned error: %v", err)
	}

	if putter.lastBucket != "picstream-media" {
		t.Errorf("bucket = %q, want %q", putter.lastBucket, "picstream-media")
	}
	if !strings.HasPrefix(putter.lastObjectName, "user-1/") || !strings.HasSuffix(putter.lastObjectName, ".png") {
		t.Errorf("objectName = %q, want user-1/<uuid>.png", putter.lastObjectName)
	}
	if putter.lastSize != int64(len(payload)) {
		t.Errorf("size = %d, want %d", putter.lastSize, len(payload))
	}
	if putter.lastContentType != "image/png" {
		t.Errorf("contentType = %q, want image/png", putter.lastContentType)
	}

	wantPrefix := "https://media.example.com/picstream-media/user-1/"
	if !strings.HasPrefix(got, wantPrefix) {
		t.Errorf("URL = %q, want prefix %q", got, wantPrefix)
	}
}

// TestMinioStore_RejectsInvalidDataURL は不正なdata URLが
// INVALID_IMAGE_DATAエラーになることを検証する。
func TestMinioStore_RejectsInvalidDataURL(t *testing.T) {
	s := newTestMinioStore(&mockPutter{})

	tests := []struct {
		name    string
		dataURL string
	}{
		{name: "データ部なし", dataURL: "data:image/png;base64"},
		{name: "base64以外のエンコード", dataURL: "data:image/png,rawdata"},
		{name: "サポート外のMIMEタイプ", dataURL: "data:application/pdf;base64,aGVsbG8="},
		{name: "壊れたbase64", dataURL: "data:image/png;base64,!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.StoreImage(context.Background(), "user-1", tt.dataURL)
			var apiErr *model.APIError
			if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeInvalidImageData {
				t.Errorf("expected INVALID_IMAGE_DATA error, got %v", err)
			}
		})
	}
}

// TestMinioStore_PropagatesUploadError はアップロード失敗がエラーとして
// 伝播することを検証する。
func TestMinioStore_PropagatesUploadError(t *testing.T) {
	putter := &mockPutter{
		putFn: func(_ context.Context, _, _ string, _ *bytes.Reader, _ int64, _ minio.PutObjectOptions) (minio.UploadInfo, error) {
			return minio.UploadInfo{}, errors.New("connection refused")
		},
	}
	s := newTestMinioStore(putter)

	_, err := s.StoreImage(context.Background(), "user-1", "data:image/png;base64,aGVsbG8=")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
