package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openblog/blog-api/internal/api/middleware"
	"github.com/openblog/blog-api/internal/core/domain"
	"github.com/openblog/blog-api/internal/core/ports"
)

type stubBlogService struct {
	listFn   func(ctx context.Context) ([]*domain.Blog, error)
	getFn    func(ctx context.Context, id string) (*domain.Blog, error)
	createFn func(ctx context.Context, in ports.CreateBlogInput) (*domain.Blog, error)
	updateFn func(ctx context.Context, in ports.UpdateBlogInput) (*domain.Blog, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubBlogService) List(ctx context.Context) ([]*domain.Blog, error) {
	return s.listFn(ctx)
}

func (s *stubBlogService) Get(ctx context.Context, id string) (*domain.Blog, error) {
	return s.getFn(ctx, id)
}

func (s *stubBlogService) Create(ctx context.Context, in ports.CreateBlogInput) (*domain.Blog, error) {
	return s.createFn(ctx, in)
}

func (s *stubBlogService) Update(ctx context.Context, in ports.UpdateBlogInput) (*domain.Blog, error) {
	return s.updateFn(ctx, in)
}

func (s *stubBlogService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func newBlogContext(t *testing.T, method, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestBlogHandler_List(t *testing.T) {
	stub := &stubBlogService{
		listFn: func(ctx context.Context) ([]*domain.Blog, error) {
			return []*domain.Blog{
				{ID: "1", Title: "First", Content: "Hello", Username: "alice", CreatedAt: time.Now().UTC()},
				{ID: "2", Title: "Second", Content: "World", Username: "bob", CreatedAt: time.Now().UTC()},
			}, nil
		},
	}
	h := NewBlogHandler(stub)

	c, rec := newBlogContext(t, http.MethodGet, "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Fatalf("expected success=true, got %+v", body)
	}
	if body["count"] != float64(2) {
		t.Fatalf("expected count=2, got %v", body["count"])
	}
	data, ok := body["data"].([]any)
	if !ok || len(data) != 2 {
		t.Fatalf("expected 2 items in data, got %v", body["data"])
	}
}

func TestBlogHandler_List_Empty(t *testing.T) {
	stub := &stubBlogService{
		listFn: func(ctx context.Context) ([]*domain.Blog, error) {
			return []*domain.Blog{}, nil
		},
	}
	h := NewBlogHandler(stub)

	c, rec := newBlogContext(t, http.MethodGet, "")
	_ = h.List(c)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["count"] != float64(0) {
		t.Fatalf("expected count=0, got %v", body["count"])
	}
}

func TestBlogHandler_Get_NotFound(t *testing.T) {
	stub := &stubBlogService{
		getFn: func(ctx context.Context, id string) (*domain.Blog, error) {
			return nil, domain.ErrBlogNotFound
		},
	}
	h := NewBlogHandler(stub)

	c, rec := newBlogContext(t, http.MethodGet, "")
	c.SetParamNames("id")
	c.SetParamValues("missing")
	_ = h.Get(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != false || body["message"] != "Blog not found" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestBlogHandler_Create_AuthorFromPrincipal(t *testing.T) {
	var got ports.CreateBlogInput
	stub := &stubBlogService{
		createFn: func(ctx context.Context, in ports.CreateBlogInput) (*domain.Blog, error) {
			got = in
			return &domain.Blog{ID: "1", Title: in.Title, Content: in.Content, Username: in.Author}, nil
		},
	}
	h := NewBlogHandler(stub)

	c, rec := newBlogContext(t, http.MethodPost, `{"title":"First","content":"Hello"}`)
	middleware.SetPrincipal(c, &domain.Principal{Username: "alice", Role: domain.RoleUser, Authenticated: true})
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got.Author != "alice" {
		t.Fatalf("expected author alice, got %q", got.Author)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Blog created successfully" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestBlogHandler_Create_TitleRequired(t *testing.T) {
	stub := &stubBlogService{
		createFn: func(ctx context.Context, in ports.CreateBlogInput) (*domain.Blog, error) {
			return nil, domain.ErrTitleRequired
		},
	}
	h := NewBlogHandler(stub)

	c, rec := newBlogContext(t, http.MethodPost, `{"title":"","content":"Hello"}`)
	_ = h.Create(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Blog title is required" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestBlogHandler_Update_NotFoundBeforeValidation(t *testing.T) {
	stub := &stubBlogService{
		updateFn: func(ctx context.Context, in ports.UpdateBlogInput) (*domain.Blog, error) {
			return nil, domain.ErrBlogNotFound
		},
	}
	h := NewBlogHandler(stub)

	// Blank title in the payload; the missing record still wins.
	c, rec := newBlogContext(t, http.MethodPut, `{"title":"","content":""}`)
	c.SetParamNames("id")
	c.SetParamValues("missing")
	_ = h.Update(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestBlogHandler_Update_Success(t *testing.T) {
	stub := &stubBlogService{
		updateFn: func(ctx context.Context, in ports.UpdateBlogInput) (*domain.Blog, error) {
			if in.ID != "1" {
				t.Fatalf("unexpected id %q", in.ID)
			}
			return &domain.Blog{ID: in.ID, Title: in.Title, Content: in.Content, Username: "alice"}, nil
		},
	}
	h := NewBlogHandler(stub)

	c, rec := newBlogContext(t, http.MethodPut, `{"title":"Edited","content":"New text"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	_ = h.Update(c)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Blog updated successfully" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestBlogHandler_Delete(t *testing.T) {
	deleted := ""
	stub := &stubBlogService{
		deleteFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	h := NewBlogHandler(stub)

	c, rec := newBlogContext(t, http.MethodDelete, "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	_ = h.Delete(c)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if deleted != "1" {
		t.Fatalf("expected delete of id 1, got %q", deleted)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Blog deleted successfully" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestBlogHandler_Delete_NotFound(t *testing.T) {
	stub := &stubBlogService{
		deleteFn: func(ctx context.Context, id string) error {
			return domain.ErrBlogNotFound
		},
	}
	h := NewBlogHandler(stub)

	c, rec := newBlogContext(t, http.MethodDelete, "")
	c.SetParamNames("id")
	c.SetParamValues("missing")
	_ = h.Delete(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
