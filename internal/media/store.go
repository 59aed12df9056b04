// Package media は投稿画像・アバター画像の保存先を提供する。
//
// クライアントはbase64のdata URL形式で画像を送信してくる。
// オブジェクトストレージが構成されている場合はインラインペイロードを
// S3互換ストレージ（MinIO）へ退避し、公開URLに差し替えて保存する。
// 構成されていない場合はdata URLをそのまま保存する（後方互換）。
// 通常のhttp(s) URLは常に無変換で通過する。
package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hitoshi/picstream/internal/model"
)

// ImageStore は画像参照の保存インターフェース。
type ImageStore interface {
	// StoreImage は画像参照を保存可能な形に変換して返す。
	// data URLの場合はストレージへ退避した上で公開URLを返し、
	// それ以外のURLはそのまま返す。
	StoreImage(ctx context.Context, ownerID, imageRef string) (string, error)
}

// mimeExtensions はサポートする画像MIMEタイプと拡張子の対応。
var mimeExtensions = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

// PassthroughStore は画像参照を無変換で保存するImageStore実装。
// オブジェクトストレージが構成されていない場合に使用され、
// data URLはインラインのままデータベースに保存される。
type PassthroughStore struct{}

// NewPassthroughStore はPassthroughStoreを生成する。
func NewPassthroughStore() *PassthroughStore {
	return &PassthroughStore{}
}

// StoreImage は画像参照をそのまま返す。
func (s *PassthroughStore) StoreImage(_ context.Context, _, imageRef string) (string, error) {
	return imageRef, nil
}

// MinioConfig はMinIOストアの接続設定。
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicBaseURL はオブジェクトの公開URLのベース
	// （例: "https://media.example.com"）。バケットは公開読み取りを前提とする。
	PublicBaseURL string
}

// objectPutter はMinIOクライアントのうちストアが必要とする操作のインターフェース。
// テストでのモック差し替え用。
type objectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader *bytes.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// minioPutter は実クライアントをobjectPutterに適合させるアダプタ。
type minioPutter struct {
	client *minio.Client
}

func (p *minioPutter) PutObject(ctx context.Context, bucketName, objectName string, reader *bytes.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return p.client.PutObject(ctx, bucketName, objectName, reader, objectSize, opts)
}

// MinioStore はS3互換オブジェクトストレージを使用するImageStore実装。
// data URLのペイロードをデコードしてアップロードし、公開URLを返す。
type MinioStore struct {
	putter        objectPutter
	bucket        string
	publicBaseURL string
}

// NewMinioStore はMinioStoreを生成する。
func NewMinioStore(cfg MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &MinioStore{
		putter:        &minioPutter{client: client},
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}, nil
}

// StoreImage は画像参照を保存する。
// data URL以外はそのまま返す。data URLはデコードしてアップロードし、
// posts/<uuid>.<ext> 形式のオブジェクトの公開URLを返す。
func (s *MinioStore) StoreImage(ctx context.Context, ownerID, imageRef string) (string, error) {
	if !strings.HasPrefix(imageRef, "data:") {
		return imageRef, nil
	}

	mimeType, payload, err := parseDataURL(imageRef)
	if err != nil {
		return "", err
	}

	ext := mimeExtensions[mimeType]
	objectName := fmt.Sprintf("%s/%s%s", ownerID, uuid.New().String(), ext)

	_, err = s.putter.PutObject(ctx, s.bucket, objectName,
		bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: mimeType},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, objectName), nil
}

// parseDataURL はdata URLからMIMEタイプとデコード済みペイロードを取り出す。
// base64エンコードされた、サポート対象のMIMEタイプのみを受け付ける。
func parseDataURL(dataURL string) (string, []byte, error) {
	rest := strings.TrimPrefix(dataURL, "data:")

	meta, encoded, found := strings.Cut(rest, ",")
	if !found {
		return "", nil, model.NewInvalidImageDataError("データ部がありません")
	}

	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, model.NewInvalidImageDataError("base64エンコードのみサポートしています")
	}

	if _, supported := mimeExtensions[mimeType]; !supported {
		return "", nil, model.NewInvalidImageDataError("サポート外の画像形式: " + mimeType)
	}

	payload, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, model.NewInvalidImageDataError("base64のデコードに失敗しました")
	}

	return mimeType, payload, nil
}

// compile-time interface check
var (
	_ ImageStore = (*PassthroughStore)(nil)
	_ ImageStore = (*MinioStore)(nil)
)
