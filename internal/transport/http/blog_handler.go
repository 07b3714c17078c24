package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sandsky/travel-backend/internal/domain"
	"github.com/sandsky/travel-backend/internal/service"
	"github.com/sandsky/travel-backend/internal/util"
)

type BlogHandler struct {
	blog *service.BlogService
	seo  *service.SeoService
}

type BlogPostResponse struct {
	Post domain.BlogPost     `json:"post"`
	Seo  *service.SeoContext `json:"seo,omitempty"`
}

func RegisterBlog(e *echo.Echo, blog *service.BlogService, seo *service.SeoService) {
	handler := &BlogHandler{blog: blog, seo: seo}
	e.GET("/api/v1/blog", handler.list)
	e.GET("/api/v1/blog/:slug", handler.detail)
}

// list handles GET /api/v1/blog
func (h *BlogHandler) list(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	posts, err := h.blog.ListPublished(c.Request().Context(), limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to list posts"))
	}
	return c.JSON(http.StatusOK, util.Data("posts", posts))
}

// detail handles GET /api/v1/blog/{slug}
func (h *BlogHandler) detail(c echo.Context) error {
	post, err := h.blog.GetPublishedBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrBlogPostNotFound) {
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load post"))
	}

	resp := BlogPostResponse{Post: *post}
	resolved := h.seo.ResolveForBlogPost(c.Request().Context(), *post)
	if seoCtx, seoErr := h.seo.BuildContext(c.Request().Context(), resolved); seoErr == nil {
		resp.Seo = seoCtx
	}
	return c.JSON(http.StatusOK, resp)
}
