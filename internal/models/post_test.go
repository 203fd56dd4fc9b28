package models

import (
	"testing"
	"time"

	"github.com/inkpress/core/internal/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&UserModel{}, &CategoryModel{}, &PostModel{}))
	return db
}

func seedAuthor(t *testing.T, db *gorm.DB) *UserModel {
	t.Helper()
	user := UserModel{
		Name:     "Seed Author",
		Email:    "seed@example.com",
		Phone:    "1234567890",
		Password: "hashed",
		Role:     RoleAuthor,
		Status:   UserActive,
		Joined:   time.Now(),
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func TestPostBeforeSave_GeneratesSlug(t *testing.T) {
	db := newTestDB(t)
	author := seedAuthor(t, db)

	post := PostModel{
		Title:    "Hello World, Again!",
		Content:  "body",
		AuthorID: author.ID,
		Status:   StatusDraft,
	}
	require.NoError(t, db.Create(&post).Error)

	assert.Equal(t, "hello-world-again", post.Slug)
	assert.NotEmpty(t, post.ID)
}

func TestPostBeforeSave_SlugTracksTitleChanges(t *testing.T) {
	db := newTestDB(t)
	author := seedAuthor(t, db)

	post := PostModel{Title: "First Title", Content: "body", AuthorID: author.ID, Status: StatusDraft}
	require.NoError(t, db.Create(&post).Error)

	post.Title = "Second Title"
	require.NoError(t, db.Save(&post).Error)

	var got PostModel
	require.NoError(t, db.First(&got, "id = ?", post.ID).Error)
	assert.Equal(t, "second-title", got.Slug)
}

func TestPostBeforeSave_ScheduledRequiresDate(t *testing.T) {
	db := newTestDB(t)
	author := seedAuthor(t, db)

	post := PostModel{
		Title:    "Scheduled Without Date",
		Content:  "body",
		AuthorID: author.ID,
		Status:   StatusScheduled,
	}
	err := db.Create(&post).Error
	require.Error(t, err)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Equal(t, "Schedule date is required when status is scheduled", appErr.Message)
}

func TestPostBeforeSave_ScheduledWithDateSaves(t *testing.T) {
	db := newTestDB(t)
	author := seedAuthor(t, db)

	at := time.Now().Add(time.Hour)
	post := PostModel{
		Title:        "Scheduled With Date",
		Content:      "body",
		AuthorID:     author.ID,
		Status:       StatusScheduled,
		ScheduleDate: &at,
	}
	require.NoError(t, db.Create(&post).Error)
}

func TestPostDuplicateTitleRejected(t *testing.T) {
	db := newTestDB(t)
	author := seedAuthor(t, db)

	first := PostModel{Title: "Same Title", Content: "a", AuthorID: author.ID, Status: StatusDraft}
	require.NoError(t, db.Create(&first).Error)

	second := PostModel{Title: "Same Title", Content: "b", AuthorID: author.ID, Status: StatusDraft}
	err := db.Create(&second).Error
	require.Error(t, err)
	assert.Equal(t, apperror.KindDuplicate, apperror.Translate(err).Kind)
}

func TestStringArrayRoundTrip(t *testing.T) {
	db := newTestDB(t)
	author := seedAuthor(t, db)

	post := PostModel{
		Title:    "Tagged Post",
		Content:  "body",
		AuthorID: author.ID,
		Status:   StatusDraft,
		Tags:     StringArray{"go", "web"},
	}
	require.NoError(t, db.Create(&post).Error)

	var got PostModel
	require.NoError(t, db.First(&got, "id = ?", post.ID).Error)
	assert.Equal(t, StringArray{"go", "web"}, got.Tags)
}

func TestPostStatusValid(t *testing.T) {
	assert.True(t, StatusDraft.Valid())
	assert.True(t, StatusPublished.Valid())
	assert.True(t, StatusScheduled.Valid())
	assert.False(t, PostStatus("archived").Valid())
}

func TestRoleAndStatusValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleAuthor.Valid())
	assert.False(t, Role("editor").Valid())

	assert.True(t, UserActive.Valid())
	assert.True(t, UserBanned.Valid())
	assert.False(t, UserStatus("frozen").Valid())
}
