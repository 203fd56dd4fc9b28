package category

import (
	"github.com/gin-gonic/gin"
	"github.com/inkpress/core/internal/middleware"
	"github.com/inkpress/core/internal/models"
	"github.com/inkpress/core/internal/modules/upload"
	"github.com/inkpress/core/internal/pkg/response"
)

type Handler struct {
	svc     *Service
	uploads *upload.Service
}

func NewHandler(svc *Service, uploads *upload.Service) *Handler {
	return &Handler{svc: svc, uploads: uploads}
}

// RegisterRoutes mounts category routes; writes require the admin role.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/category")
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.POST("", authMW, adminOnly, h.create)
	g.PATCH("/:id", authMW, adminOnly, h.update)
	g.DELETE("/:id", authMW, adminOnly, h.delete)
}

// list GET /category
func (h *Handler) list(c *gin.Context) {
	cats, err := h.svc.List()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Categories retrieved successfully", gin.H{"category": cats})
}

// get GET /category/:id
func (h *Handler) get(c *gin.Context) {
	cat, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Category retrieved successfully", gin.H{"category": cat})
}

// create POST /category  [admin]
func (h *Handler) create(c *gin.Context) {
	var dto CreateCategoryDTO
	if err := c.ShouldBind(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		name, err := h.uploads.Save(file, upload.KindCategories)
		if err != nil {
			response.Error(c, err)
			return
		}
		dto.Image = name
	}

	if _, err := h.svc.Create(&dto); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Category created !", nil)
}

// update PATCH /category/:id  [admin]
func (h *Handler) update(c *gin.Context) {
	var dto UpdateCategoryDTO
	if err := c.ShouldBind(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if _, err := h.svc.Update(c.Param("id"), &dto); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Category updated !", nil)
}

// delete DELETE /category/:id  [admin]
func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Category deleted !", nil)
}
