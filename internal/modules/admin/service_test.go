package admin

import (
	"testing"
	"time"

	"github.com/inkpress/core/internal/models"
	"github.com/inkpress/core/internal/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.UserModel{}, &models.CategoryModel{}, &models.PostModel{}))
	return NewService(db), db
}

func seedAuthor(t *testing.T, db *gorm.DB, name string, joined time.Time) *models.UserModel {
	t.Helper()
	user := models.UserModel{
		Name: name, Email: name + "@example.com", Phone: name + "-phone",
		Password: "x", Role: models.RoleAuthor, Status: models.UserActive, Joined: joined,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedPosts(t *testing.T, db *gorm.DB, authorID string, titles ...string) {
	t.Helper()
	for _, title := range titles {
		post := models.PostModel{Title: title, Content: "body", AuthorID: authorID, Status: models.StatusDraft}
		require.NoError(t, db.Create(&post).Error)
	}
}

func TestListAuthors(t *testing.T) {
	svc, db := newTestService(t)

	older := seedAuthor(t, db, "older", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	newer := seedAuthor(t, db, "newer", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	seedPosts(t, db, older.ID, "a", "b", "c")
	seedPosts(t, db, newer.ID, "d")

	// Admin accounts never show up in the author list.
	admin := models.UserModel{
		Name: "boss", Email: "boss@example.com", Phone: "boss-phone",
		Password: "x", Role: models.RoleAdmin, Status: models.UserActive, Joined: time.Now(),
	}
	require.NoError(t, db.Create(&admin).Error)

	items, err := svc.ListAuthors("")
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "newer", items[0].Name)
	assert.Equal(t, int64(1), items[0].PostCount)
	assert.Equal(t, "older", items[1].Name)
	assert.Equal(t, int64(3), items[1].PostCount)
}

func TestListAuthors_Search(t *testing.T) {
	svc, db := newTestService(t)
	seedAuthor(t, db, "Alice Wonder", time.Now())
	seedAuthor(t, db, "Bob Builder", time.Now())

	items, err := svc.ListAuthors("alice")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Alice Wonder", items[0].Name)
}

func TestSetAuthorStatus(t *testing.T) {
	svc, db := newTestService(t)
	author := seedAuthor(t, db, "target", time.Now())

	updated, err := svc.SetAuthorStatus(author.ID, models.UserBanned)
	require.NoError(t, err)
	assert.Equal(t, models.UserBanned, updated.Status)

	var got models.UserModel
	require.NoError(t, db.First(&got, "id = ?", author.ID).Error)
	assert.Equal(t, models.UserBanned, got.Status)

	updated, err = svc.SetAuthorStatus(author.ID, models.UserActive)
	require.NoError(t, err)
	assert.Equal(t, models.UserActive, updated.Status)
}

func TestSetAuthorStatus_InvalidStatus(t *testing.T) {
	svc, db := newTestService(t)
	author := seedAuthor(t, db, "victim", time.Now())

	_, err := svc.SetAuthorStatus(author.ID, "frozen")
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Equal(t, "status must be one of active, banned", appErr.Message)
}

func TestSetAuthorStatus_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SetAuthorStatus("missing-id", models.UserBanned)
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindNotFound, appErr.Kind)
	assert.Equal(t, "Author not found", appErr.Message)
}
