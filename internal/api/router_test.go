package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/openblog/blog-api/internal/core/domain"
	"github.com/openblog/blog-api/internal/core/service"
	"github.com/openblog/blog-api/internal/pkg/config"
)

// memUserRepo is an in-memory UserRepository with the same uniqueness
// contract as the Mongo implementation.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]domain.User)}
}

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return nil, domain.ErrUserExists
	}
	u := *user
	u.ID = strconv.Itoa(len(r.users) + 1)
	r.users[u.Username] = u
	return &u, nil
}

func (r *memUserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *memUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[username]
	return ok, nil
}

// memBlogRepo is an in-memory BlogRepository.
type memBlogRepo struct {
	mu    sync.Mutex
	next  int
	blogs map[string]domain.Blog
}

func newMemBlogRepo() *memBlogRepo {
	return &memBlogRepo{blogs: make(map[string]domain.Blog)}
}

func (r *memBlogRepo) Create(ctx context.Context, blog *domain.Blog) (*domain.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	b := *blog
	b.ID = strconv.Itoa(r.next)
	r.blogs[b.ID] = b
	return &b, nil
}

func (r *memBlogRepo) FindByID(ctx context.Context, id string) (*domain.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.blogs[id]
	if !ok {
		return nil, domain.ErrBlogNotFound
	}
	return &b, nil
}

func (r *memBlogRepo) FindAll(ctx context.Context) ([]*domain.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Blog, 0, len(r.blogs))
	for _, b := range r.blogs {
		copied := b
		out = append(out, &copied)
	}
	return out, nil
}

func (r *memBlogRepo) Update(ctx context.Context, blog *domain.Blog) (*domain.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.blogs[blog.ID]; !ok {
		return nil, domain.ErrBlogNotFound
	}
	r.blogs[blog.ID] = *blog
	b := *blog
	return &b, nil
}

func (r *memBlogRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.blogs[id]; !ok {
		return domain.ErrBlogNotFound
	}
	delete(r.blogs, id)
	return nil
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	cfg := &config.Config{
		Env:        "development",
		JWTSecret:  "0123456789abcdef0123456789abcdef",
		TokenTTL:   time.Hour,
		CORSOrigin: "http://localhost:3000",
	}
	log := zerolog.Nop()

	tokens, err := service.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	authService := service.NewAuthService(newMemUserRepo(), tokens, log)
	blogService := service.NewBlogService(newMemBlogRepo(), log)

	return assemble(cfg, tokens, authService, blogService, log)
}

func doJSON(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return body
}

// TestRouter_SignupLoginAndProtectedAccess drives the full pipeline
// end to end over in-memory stores: registration, duplicate rejection,
// login, anonymous rejection on the protected group, and authenticated
// blog access with the issued token.
//
// assemble registers Prometheus collectors against the default
// registry, so this suite builds the server exactly once.
func TestRouter_SignupLoginAndProtectedAccess(t *testing.T) {
	e := newTestServer(t)

	// Signup succeeds for a fresh username.
	rec := doJSON(e, http.MethodPost, "/auth/signup", `{"username":"alice","password":"secret"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("signup: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if body := parseJSON(t, rec); body["success"] != true {
		t.Fatalf("signup: unexpected body %+v", body)
	}

	// Second signup with the same username conflicts regardless of password.
	rec = doJSON(e, http.MethodPost, "/auth/signup", `{"username":"alice","password":"other"}`, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate signup: expected 409, got %d", rec.Code)
	}
	if body := parseJSON(t, rec); body["message"] != "User already exists!" {
		t.Fatalf("duplicate signup: unexpected body %+v", body)
	}

	// Wrong password fails with the conflated message.
	rec = doJSON(e, http.MethodPost, "/auth/login", `{"username":"alice","password":"other"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: expected 401, got %d", rec.Code)
	}
	if body := parseJSON(t, rec); body["message"] != "Invalid username or password" {
		t.Fatalf("bad login: unexpected body %+v", body)
	}

	// Correct credentials return a token and set the jwt cookie.
	rec = doJSON(e, http.MethodPost, "/auth/login", `{"username":"alice","password":"secret"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	loginBody := parseJSON(t, rec)
	token, _ := loginBody["token"].(string)
	if token == "" {
		t.Fatalf("login: expected non-empty token, got %+v", loginBody)
	}
	if loginBody["username"] != "alice" || loginBody["role"] != domain.RoleUser {
		t.Fatalf("login: unexpected identity %+v", loginBody)
	}
	cookieSet := false
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "jwt" && ck.Value == token {
			cookieSet = true
		}
	}
	if !cookieSet {
		t.Fatalf("login: expected jwt cookie carrying the token")
	}

	// The protected group rejects anonymous requests with the fixed body.
	rec = doJSON(e, http.MethodGet, "/blogs", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous list: expected 401, got %d", rec.Code)
	}
	body := parseJSON(t, rec)
	if body["success"] != false || body["message"] != "Authentication required" {
		t.Fatalf("anonymous list: unexpected body %+v", body)
	}

	// A tampered token also stays anonymous and hits the same 401.
	rec = doJSON(e, http.MethodGet, "/blogs", "", token+"x")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("tampered token: expected 401, got %d", rec.Code)
	}

	// The issued token grants access.
	rec = doJSON(e, http.MethodGet, "/blogs", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("authenticated list: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if body := parseJSON(t, rec); body["count"] != float64(0) {
		t.Fatalf("authenticated list: expected empty list, got %+v", body)
	}

	// Creating a post attributes it to the token's principal.
	rec = doJSON(e, http.MethodPost, "/blogs", `{"title":"First","content":"Hello"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	created := parseJSON(t, rec)
	data, ok := created["data"].(map[string]any)
	if !ok || data["username"] != "alice" {
		t.Fatalf("create: expected author alice, got %+v", created)
	}

	rec = doJSON(e, http.MethodGet, "/blogs", "", token)
	if body := parseJSON(t, rec); body["count"] != float64(1) {
		t.Fatalf("list after create: expected count=1, got %+v", body)
	}

	// The jwt cookie works as a fallback credential for browser clients.
	req := httptest.NewRequest(http.MethodGet, "/blogs", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: token})
	cookieRec := httptest.NewRecorder()
	e.ServeHTTP(cookieRec, req)
	if cookieRec.Code != http.StatusOK {
		t.Fatalf("cookie auth: expected 200, got %d", cookieRec.Code)
	}

	// Liveness stays public.
	rec = doJSON(e, http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}
}
