package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openblog/blog-api/internal/api/middleware"
	"github.com/openblog/blog-api/internal/core/domain"
	"github.com/openblog/blog-api/internal/core/ports"
)

// BlogHandler handles the protected blog CRUD routes. Authentication is
// enforced by the RequireAuth middleware on the route group; handlers
// only read the principal for author attribution.
type BlogHandler struct {
	service ports.BlogService
}

func NewBlogHandler(service ports.BlogService) *BlogHandler {
	return &BlogHandler{service: service}
}

// List handles GET /blogs.
func (h *BlogHandler) List(c echo.Context) error {
	blogs, err := h.service.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, statusResponse{
			Success: false,
			Message: "Failed to fetch blogs: " + err.Error(),
		})
	}

	count := len(blogs)
	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: blogs, Count: &count})
}

// Get handles GET /blogs/:id.
func (h *BlogHandler) Get(c echo.Context) error {
	blog, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrBlogNotFound) {
			return c.JSON(http.StatusNotFound, statusResponse{Success: false, Message: "Blog not found"})
		}
		return c.JSON(http.StatusInternalServerError, statusResponse{
			Success: false,
			Message: "Failed to fetch blog: " + err.Error(),
		})
	}

	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: blog})
}

// Create handles POST /blogs.
func (h *BlogHandler) Create(c echo.Context) error {
	var req blogRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, statusResponse{Success: false, Message: "invalid payload"})
	}

	author := ""
	if p, ok := middleware.GetPrincipal(c); ok {
		author = p.Username
	}

	blog, err := h.service.Create(c.Request().Context(), ports.CreateBlogInput{
		Title:   req.Title,
		Content: req.Content,
		Author:  author,
	})
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			return c.JSON(http.StatusBadRequest, statusResponse{Success: false, Message: msg})
		}
		return c.JSON(http.StatusInternalServerError, statusResponse{
			Success: false,
			Message: "Failed to create blog: " + err.Error(),
		})
	}

	return c.JSON(http.StatusCreated, dataResponse{Success: true, Message: "Blog created successfully", Data: blog})
}

// Update handles PUT /blogs/:id.
func (h *BlogHandler) Update(c echo.Context) error {
	var req blogRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, statusResponse{Success: false, Message: "invalid payload"})
	}

	blog, err := h.service.Update(c.Request().Context(), ports.UpdateBlogInput{
		ID:      c.Param("id"),
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		if errors.Is(err, domain.ErrBlogNotFound) {
			return c.JSON(http.StatusNotFound, statusResponse{Success: false, Message: "Blog not found"})
		}
		if msg, ok := validationMessage(err); ok {
			return c.JSON(http.StatusBadRequest, statusResponse{Success: false, Message: msg})
		}
		return c.JSON(http.StatusInternalServerError, statusResponse{
			Success: false,
			Message: "Failed to update blog: " + err.Error(),
		})
	}

	return c.JSON(http.StatusOK, dataResponse{Success: true, Message: "Blog updated successfully", Data: blog})
}

// Delete handles DELETE /blogs/:id.
func (h *BlogHandler) Delete(c echo.Context) error {
	err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrBlogNotFound) {
			return c.JSON(http.StatusNotFound, statusResponse{Success: false, Message: "Blog not found"})
		}
		return c.JSON(http.StatusInternalServerError, statusResponse{
			Success: false,
			Message: "Failed to delete blog: " + err.Error(),
		})
	}

	return c.JSON(http.StatusOK, statusResponse{Success: true, Message: "Blog deleted successfully"})
}

func validationMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, domain.ErrTitleRequired):
		return "Blog title is required", true
	case errors.Is(err, domain.ErrContentRequired):
		return "Blog content is required", true
	default:
		return "", false
	}
}
