package auth

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

// RegisterRoutes mounts auth routes onto the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	a := rg.Group("/auth")

	a.POST("/register", h.register)
	a.POST("/login", h.login)
	a.POST("/admin/login", h.adminLogin)

	a.PATCH("/profile", authMW, h.updateProfile)
	a.PATCH("/profile/password", authMW, h.updatePassword)
}

// register POST /auth/register
func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if _, err := h.svc.Register(&dto); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Account created !, You can now login to your account", nil)
}

// login POST /auth/login
func (h *Handler) login(c *gin.Context) {
	h.loginWithRole(c, models.RoleAuthor)
}

// adminLogin POST /auth/admin/login
func (h *Handler) adminLogin(c *gin.Context) {
	h.loginWithRole(c, models.RoleAdmin)
}

func (h *Handler) loginWithRole(c *gin.Context, role models.Role) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Please enter your email address and password")
		return
	}

	token, user, err := h.svc.Login(dto.Email, dto.Password, role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Logged in successfully", gin.H{
		"token": token,
		"user":  user,
	})
}

// updateProfile PATCH /auth/profile  [auth]
func (h *Handler) updateProfile(c *gin.Context) {
	var dto UpdateProfileDTO
	if err := c.ShouldBind(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	image := ""
	if file, err := c.FormFile("image"); err == nil && file != nil {
		name, err := h.uploads.Save(file, upload.KindProfile)
		if err != nil {
			response.Error(c, err)
			return
		}
		image = name
	}

	user := middleware.CurrentUser(c)
	updated, err := h.svc.UpdateProfile(user.ID, &dto, image)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "User profile updated successfully", gin.H{"user": updated})
}

// updatePassword PATCH /auth/profile/password  [auth]
func (h *Handler) updatePassword(c *gin.Context) {
	var dto UpdatePasswordDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.svc.UpdatePassword(user.ID, &dto); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Password has been updated successfully", nil)
}
