package post

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/core/internal/middleware"
	"github.com/inkpress/core/internal/models"
	"github.com/inkpress/core/internal/modules/upload"
	"github.com/inkpress/core/internal/pkg/markdown"
	"github.com/inkpress/core/internal/pkg/response"
)

// Handler handles post HTTP requests.
type Handler struct {
	svc     *Service
	uploads *upload.Service
}

func NewHandler(svc *Service, uploads *upload.Service) *Handler {
	return &Handler{svc: svc, uploads: uploads}
}

// RegisterRoutes mounts post routes onto the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	posts := rg.Group("/post")

	posts.GET("", h.list)
	posts.GET("/recent", h.recent)
	posts.GET("/:identifier", h.getBySlug)

	posts.POST("", authMW, middleware.RequireRoles(models.RoleAdmin, models.RoleAuthor), h.create)
	posts.PATCH("/:identifier", authMW, middleware.RequireRoles(models.RoleAuthor), h.update)
	posts.DELETE("/:identifier", authMW, middleware.RequireRoles(models.RoleAdmin, models.RoleAuthor), h.delete)
}

// list GET /post
func (h *Handler) list(c *gin.Context) {
	opts := ParseListOptions(c.Request.URL.Query())

	posts, meta, err := h.svc.List(opts)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Posts retrieved successfully!", listResponse{Posts: posts, Pagination: meta})
}

// recent GET /post/recent
func (h *Handler) recent(c *gin.Context) {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = recentDefault
	}

	posts, err := h.svc.Recent(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Recent posts retrieved successfully", posts)
}

// getBySlug GET /post/:slug
func (h *Handler) getBySlug(c *gin.Context) {
	post, err := h.svc.GetBySlug(c.Param("identifier"))
	if err != nil {
		response.Error(c, err)
		return
	}

	if strings.EqualFold(c.Query("format"), "html") {
		html, err := markdown.Render(post.Content)
		if err != nil {
			response.Error(c, err)
			return
		}
		post.Content = html
	}

	response.OK(c, "Post retrieved successfully !", gin.H{"post": post})
}

// create POST /post  [admin|author]
func (h *Handler) create(c *gin.Context) {
	var dto CreatePostDTO
	if err := c.ShouldBind(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		name, err := h.uploads.Save(file, upload.KindPosts)
		if err != nil {
			response.Error(c, err)
			return
		}
		dto.Image = name
	}

	user := middleware.CurrentUser(c)
	post, err := h.svc.Create(c.Request.Context(), user.ID, &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Post Created !", post)
}

// update PATCH /post/:id  [author]
func (h *Handler) update(c *gin.Context) {
	var dto UpdatePostDTO
	if err := c.ShouldBind(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		name, err := h.uploads.Save(file, upload.KindPosts)
		if err != nil {
			response.Error(c, err)
			return
		}
		dto.Image = &name
	}

	post, err := h.svc.Update(c.Request.Context(), c.Param("identifier"), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Post updated successfully !", gin.H{"post": post})
}

// delete DELETE /post/:id  [admin|author]
func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("identifier")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Post deleted successfully !", nil)
}
