package models

// CategoryModel represents a post category.
// There is no foreign key to posts: deleting a category leaves referencing
// posts with a dangling CategoryID.
type CategoryModel struct {
	Base
	Name  string `json:"name"  gorm:"uniqueIndex;not null"`
	Image string `json:"image"`

	// PostCount is populated by the category service, not stored.
	PostCount int64 `json:"postCount" gorm:"-"`
}

func (CategoryModel) TableName() string { return "categories" }
