package post

import (
	"time"

	"github.com/inkpress/core/internal/models"
)

// CreatePostDTO is accepted as JSON or multipart form fields.
type CreatePostDTO struct {
	Title        string            `json:"title"        form:"title"    binding:"required"`
	Content      string            `json:"content"      form:"content"  binding:"required"`
	Image        string            `json:"image"        form:"image"`
	Category     string            `json:"category"     form:"category" binding:"required"`
	Tags         []string          `json:"tags"         form:"tags"`
	Status       models.PostStatus `json:"status"       form:"status"   binding:"required"`
	ScheduleDate *time.Time        `json:"scheduleDate" form:"scheduleDate" time_format:"2006-01-02T15:04:05Z07:00"`
}

// UpdatePostDTO carries partial updates; nil fields are left untouched.
type UpdatePostDTO struct {
	Title        *string            `json:"title"        form:"title"`
	Content      *string            `json:"content"      form:"content"`
	Image        *string            `json:"image"        form:"image"`
	Category     *string            `json:"category"     form:"category"`
	Tags         *[]string          `json:"tags"         form:"tags"`
	Status       *models.PostStatus `json:"status"       form:"status"`
	ScheduleDate *time.Time         `json:"scheduleDate" form:"scheduleDate" time_format:"2006-01-02T15:04:05Z07:00"`
}

type listResponse struct {
	Posts      []models.PostModel `json:"posts"`
	Pagination interface{}        `json:"pagination"`
}
