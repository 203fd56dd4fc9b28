// Package author serves the authenticated author's own dashboard.
package author

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
	posts *post.Service
	stats *stats.Service
}

func NewHandler(posts *post.Service, statsSvc *stats.Service) *Handler {
	return &Handler{posts: posts, stats: statsSvc}
}

// RegisterRoutes mounts the author dashboard routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/author", authMW, middleware.RequireRoles(models.RoleAuthor, models.RoleAdmin))

	g.GET("/posts", h.listPosts)
	g.GET("/posts/chart", h.chart)
	g.GET("/posts/analytics", h.analytics)
	g.GET("/post/:id", h.getPost)
}

// listPosts GET /author/posts
func (h *Handler) listPosts(c *gin.Context) {
	user := middleware.CurrentUser(c)
	filters := post.ParseFilterOptions(c.Request.URL.Query())

	posts, err := h.posts.ListFiltered(user.ID, filters)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Posts retrieved successfully", gin.H{"posts": posts})
}

// getPost GET /author/post/:id
func (h *Handler) getPost(c *gin.Context) {
	user := middleware.CurrentUser(c)

	p, err := h.posts.GetByID(c.Param("id"), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Post retrieved successfully!", gin.H{"post": p})
}

// chart GET /author/posts/chart
func (h *Handler) chart(c *gin.Context) {
	user := middleware.CurrentUser(c)
	period := c.DefaultQuery("period", "weekly")

	chart, err := h.stats.BuildChart(period, user.ID, time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Chart data retrieved successfully", chart)
}

// analytics GET /author/posts/analytics
func (h *Handler) analytics(c *gin.Context) {
	user := middleware.CurrentUser(c)

	counts, err := h.stats.CountByStatus(user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Post analytics retrieved successfully", gin.H{"analytics": counts})
}
