package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/core/internal/models"
	"github.com/inkpress/core/internal/pkg/jwt"
	"github.com/inkpress/core/internal/pkg/response"
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

	require.NoError(t, db.AutoMigrate(&models.UserModel{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role models.Role) *models.UserModel {
	t.Helper()
	user := models.UserModel{
		Name: "mw-" + string(role), Email: string(role) + "@example.com", Phone: string(role) + "-phone",
		Password: "x", Role: role, Status: models.UserActive, Joined: time.Now(),
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func newRouter(db *gorm.DB, roles ...models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{Auth(db)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRoles(roles...))
	}
	r.GET("/protected", append(handlers, func(c *gin.Context) {
		user := CurrentUser(c)
		response.OK(c, "ok", gin.H{"userId": user.ID})
	})...)
	return r
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func body(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestAuth_ValidToken(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, models.RoleAuthor)

	token, err := jwt.Sign(user.ID, time.Hour)
	require.NoError(t, err)

	w := doRequest(newRouter(db), token)
	assert.Equal(t, http.StatusOK, w.Code)

	got := body(t, w)
	assert.Equal(t, true, got["success"])
}

func TestAuth_MissingToken(t *testing.T) {
	db := newTestDB(t)

	w := doRequest(newRouter(db), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	got := body(t, w)
	assert.Equal(t, false, got["success"])
	assert.Equal(t, "You are not logged in, Please Login to access this route", got["message"])
}

func TestAuth_ExpiredToken(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, models.RoleAuthor)

	token, err := jwt.Sign(user.ID, -time.Minute)
	require.NoError(t, err)

	w := doRequest(newRouter(db), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Your token has expired, Please login again", body(t, w)["message"])
}

func TestAuth_DeletedUser(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, models.RoleAuthor)

	token, err := jwt.Sign(user.ID, time.Hour)
	require.NoError(t, err)
	require.NoError(t, db.Unscoped().Delete(&models.UserModel{}, "id = ?", user.ID).Error)

	w := doRequest(newRouter(db), token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User belonging to this token does not exist", body(t, w)["message"])
}

func TestRequireRoles_AllowsMatchingRole(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin)

	token, err := jwt.Sign(admin.ID, time.Hour)
	require.NoError(t, err)

	w := doRequest(newRouter(db, models.RoleAdmin), token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoles_RejectsOtherRole(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, models.RoleAuthor)

	token, err := jwt.Sign(author.ID, time.Hour)
	require.NoError(t, err)

	w := doRequest(newRouter(db, models.RoleAdmin), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "User role author is not authorized to access this route", body(t, w)["message"])
}

func TestRequireRoles_AcceptsAnyListedRole(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, models.RoleAuthor)

	token, err := jwt.Sign(author.ID, time.Hour)
	require.NoError(t, err)

	w := doRequest(newRouter(db, models.RoleAdmin, models.RoleAuthor), token)
	assert.Equal(t, http.StatusOK, w.Code)
}
