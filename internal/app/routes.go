package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/core/internal/middleware"
	"github.com/inkpress/core/internal/modules/admin"
	"github.com/inkpress/core/internal/modules/auth"
	"github.com/inkpress/core/internal/modules/author"
	"github.com/inkpress/core/internal/modules/category"
	"github.com/inkpress/core/internal/modules/post"
	"github.com/inkpress/core/internal/modules/stats"
	"github.com/inkpress/core/internal/modules/upload"
	pkgredis "github.com/inkpress/core/internal/pkg/redis"
	"github.com/inkpress/core/internal/pkg/response"
)

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	authMW := middleware.Auth(db)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, c.Request.URL.Path+" route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		response.Fail(c, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Use(middleware.RateLimit(rc.Raw()))

	// Uploaded images are served from the static directory.
	r.Static("/upload", a.cfg.StaticDir)

	uploads := upload.NewService(a.cfg.StaticDir, a.logger)
	statsSvc := stats.NewService(db)
	postSvc := post.NewService(db, rc, a.pub, uploads)
	authSvc := auth.NewService(db, time.Duration(a.cfg.TokenTTLHours)*time.Hour)
	categorySvc := category.NewService(db)
	adminSvc := admin.NewService(db)

	api := r.Group("/api/v1")

	auth.NewHandler(authSvc, uploads).RegisterRoutes(api, authMW)
	category.NewHandler(categorySvc, uploads).RegisterRoutes(api, authMW)
	post.NewHandler(postSvc, uploads).RegisterRoutes(api, authMW)
	author.NewHandler(postSvc, statsSvc).RegisterRoutes(api, authMW)
	admin.NewHandler(adminSvc, postSvc, statsSvc).RegisterRoutes(api, authMW)
}
