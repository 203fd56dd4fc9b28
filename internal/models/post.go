package models

import (
	"time"

	"github.com/inkpress/core/internal/pkg/apperror"
	"github.com/inkpress/core/internal/pkg/slugger"
	"gorm.io/gorm"
)

// PostStatus is the closed set of post lifecycle states.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
	StatusScheduled PostStatus = "scheduled"
)

func (s PostStatus) Valid() bool {
	return s == StatusDraft || s == StatusPublished || s == StatusScheduled
}

// PostModel is a blog post.
type PostModel struct {
	Base
	Title        string         `json:"title"   gorm:"uniqueIndex;not null"`
	Content      string         `json:"content" gorm:"type:longtext"`
	Image        string         `json:"image"`
	AuthorID     string         `json:"-"       gorm:"index;not null"`
	Author       *UserModel     `json:"author,omitempty"   gorm:"foreignKey:AuthorID"`
	CategoryID   string         `json:"-"       gorm:"index"`
	Category     *CategoryModel `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Slug         string         `json:"slug"    gorm:"index"`
	Tags         StringArray    `json:"tags"    gorm:"type:text"`
	Status       PostStatus     `json:"status"  gorm:"type:varchar(16);not null;index"`
	Published    bool           `json:"published" gorm:"default:false"`
	ScheduleDate *time.Time     `json:"scheduleDate,omitempty"`
}

func (PostModel) TableName() string { return "posts" }

// BeforeSave enforces the schedule-date invariant and recomputes the slug.
// The slug is derived from the title on every save and is not reserved as
// unique itself; duplicate titles are already rejected by the title index.
func (p *PostModel) BeforeSave(tx *gorm.DB) error {
	if p.Status == StatusScheduled && p.ScheduleDate == nil {
		return apperror.Validation("Schedule date is required when status is scheduled")
	}
	if p.Title != "" {
		p.Slug = slugger.Make(p.Title)
	}
	return nil
}
