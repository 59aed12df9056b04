// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder はメトリクス収集のインターフェース。
// サービス層とHTTPミドルウェアから利用する。
type Recorder interface {
	RecordPostCreated()
	RecordPostDeleted()
	RecordCommentCreated()
	RecordLikeToggled(liked bool)
	RecordNotificationFanout(kind string, count int)
	RecordHTTPStatus(statusCode int)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	postsCreated        prometheus.Counter
	postsDeleted        prometheus.Counter
	commentsCreated     prometheus.Counter
	likesToggled        *prometheus.CounterVec
	notificationFanout  *prometheus.CounterVec
	httpStatus          *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		postsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "picstream_posts_created_total",
			Help: "作成された投稿の合計数",
		}),
		postsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "picstream_posts_deleted_total",
			Help: "削除された投稿の合計数",
		}),
		commentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "picstream_comments_created_total",
			Help: "作成されたコメントの合計数",
		}),
		likesToggled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "picstream_likes_toggled_total",
			Help: "いいねトグルの合計数（結果の状態別）",
		}, []string{"state"}),
		notificationFanout: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "picstream_notification_fanout_total",
			Help: "ファンアウトされた通知の合計数（種別別）",
		}, []string{"kind"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "picstream_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.postsCreated,
		c.postsDeleted,
		c.commentsCreated,
		c.likesToggled,
		c.notificationFanout,
		c.httpStatus,
	)

	return c
}

// RecordPostCreated は投稿作成を記録する。
func (c *Collector) RecordPostCreated() {
	c.postsCreated.Inc()
}

// RecordPostDeleted は投稿削除を記録する。
func (c *Collector) RecordPostDeleted() {
	c.postsDeleted.Inc()
}

// RecordCommentCreated はコメント作成を記録する。
func (c *Collector) RecordCommentCreated() {
	c.commentsCreated.Inc()
}

// RecordLikeToggled はいいねトグルを結果の状態付きで記録する。
func (c *Collector) RecordLikeToggled(liked bool) {
	state := "unliked"
	if liked {
		state = "liked"
	}
	c.likesToggled.WithLabelValues(state).Inc()
}

// RecordNotificationFanout は通知のファンアウトを種別付きで記録する。
func (c *Collector) RecordNotificationFanout(kind string, count int) {
	if count <= 0 {
		return
	}
	c.notificationFanout.WithLabelValues(kind).Add(float64(count))
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// compile-time interface check
var _ Recorder = (*Collector)(nil)
