// Package admin serves the admin dashboard: all posts, authors, analytics.
package admin

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/core/internal/middleware"
	"github.com/inkpress/core/internal/models"
	"github.com/inkpress/core/internal/modules/post"
	"github.com/inkpress/core/internal/modules/stats"
	"github.com/inkpress/core/internal/pkg/response"
)

type Handler struct {
	svc   *Service
	posts *post.Service
	stats *stats.Service
}

func NewHandler(svc *Service, posts *post.Service, statsSvc *stats.Service) *Handler {
	return &Handler{svc: svc, posts: posts, stats: statsSvc}
}

// RegisterRoutes mounts the admin routes; everything requires the admin role.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/admin", authMW, middleware.RequireRoles(models.RoleAdmin))

	g.GET("/posts", h.listPosts)
	g.GET("/post/:id", h.getPost)
	g.GET("/posts/chart", h.chart)
	g.GET("/posts/analytics", h.analytics)
	g.GET("/authors", h.listAuthors)
	g.POST("/author/:id", h.authorAction)
}

// listPosts GET /admin/posts
func (h *Handler) listPosts(c *gin.Context) {
	filters := post.ParseFilterOptions(c.Request.URL.Query())

	posts, err := h.posts.ListFiltered("", filters)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Posts retrieved successfully", gin.H{"posts": posts})
}

// getPost GET /admin/post/:id
func (h *Handler) getPost(c *gin.Context) {
	p, err := h.posts.GetByID(c.Param("id"), "")
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Post retrieved successfully!", gin.H{"post": p})
}

// chart GET /admin/posts/chart
func (h *Handler) chart(c *gin.Context) {
	period := c.DefaultQuery("period", "weekly")

	chart, err := h.stats.BuildChart(period, "", time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Chart data retrieved successfully", chart)
}

// analytics GET /admin/posts/analytics
func (h *Handler) analytics(c *gin.Context) {
	counts, err := h.stats.CountByStatus("")
	if err != nil {
		response.Error(c, err)
		return
	}
	authors, err := h.stats.CountAuthors()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Post analytics retrieved successfully", gin.H{"analytics": gin.H{
		"authors":   authors,
		"draft":     counts.Draft,
		"published": counts.Published,
		"scheduled": counts.Scheduled,
	}})
}

// listAuthors GET /admin/authors
func (h *Handler) listAuthors(c *gin.Context) {
	authors, err := h.svc.ListAuthors(c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Authors retrieved successfully", authors)
}

// authorAction POST /admin/author/:id
func (h *Handler) authorAction(c *gin.Context) {
	var dto struct {
		Status models.UserStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Status is required")
		return
	}

	author, err := h.svc.SetAuthorStatus(c.Param("id"), dto.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Author status updated successfully", author)
}
