package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hitoshi/picstream/internal/middleware"
	"github.com/hitoshi/picstream/internal/model"
)

// mockSessionFinder はmiddleware.SessionFinderのモック実装。
type mockSessionFinder struct {
	sessions map[string]*model.Session
}

func (m *mockSessionFinder) FindByID(ctx context.Context, id string) (*model.Session, error) {
	return m.sessions[id], nil
}

// mockPinger はHealthCheckerのモック実装。
type mockPinger struct {
	err error
}

func (m *mockPinger) PingContext(ctx context.Context) error {
	return m.err
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	rl := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())
	t.Cleanup(rl.Stop)

	finder := &mockSessionFinder{sessions: map[string]*model.Session{
		"sess-valid": {
			ID:        "sess-valid",
			UserID:    "user-1",
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}}

	deps := &RouterDeps{
		SessionFinder:     finder,
		CORSAllowedOrigin: "http://localhost:3000",
		RateLimiter:       rl,
		HealthChecker:     &mockPinger{},
		AuthService: &mockAuthService{
			loginFunc: func(ctx context.Context, username, password string) (*model.User, *model.Session, error) {
				return &model.User{ID: "user-1", Username: username},
					&model.Session{ID: "sess-new", UserID: "user-1"},
					nil
			},
		},
		AuthConfig: testAuthConfig(),
		PostService: &mockPostService{
			createPostFunc: func(ctx context.Context, userID, imageRef, caption string) (*model.Post, error) {
				return &model.Post{ID: "post-1", UserID: userID, ImageURL: imageRef}, nil
			},
		},
		LikeService:    &mockLikeService{},
		CommentService: &mockCommentService{},
		FeedService: &mockFeedService{
			listFeedFunc: func(ctx context.Context, viewerID string) ([]model.FeedPost, error) {
				return []model.FeedPost{}, nil
			},
		},
		NotificationService: &mockNotificationService{},
		UserService:         &mockUserService{},
	}

	return NewRouter(deps)
}

func TestRouter_HealthzNoAuth(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRouter_LoginNoAuth(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"alice","password":"secret"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRouter_FeedRequiresSession(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRouter_FeedWithValidSession(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "sess-valid"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRouter_PostCreateRequiresCSRFToken(t *testing.T) {
	router := newTestRouter(t)

	// CSRFトークンなしのPOSTは403
	req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(`{"image":"https://img.example.com/1.png"}`))
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "sess-valid"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("CSRFトークンなし: status = %d, want %d", rec.Code, http.StatusForbidden)
	}

	// トークンを付与すると成功
	req = httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(`{"image":"https://img.example.com/1.png"}`))
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "sess-valid"})
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: "token-1"})
	req.Header.Set("X-CSRF-Token", "token-1")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("CSRFトークンあり: status = %d, want %d", rec.Code, http.StatusCreated)
	}
}

func TestRouter_CSRFTokenEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/csrf-token", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRouter_SecurityHeadersApplied(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestRouter_HealthzUnavailableWhenDBDown(t *testing.T) {
	h := newHealthHandler(&mockPinger{err: context.DeadlineExceeded})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}
