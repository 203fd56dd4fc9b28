package admin

import (
	"errors"
	"strings"

	"github.com/inkpress/core/internal/models"
	"github.com/inkpress/core/internal/pkg/apperror"
	"gorm.io/gorm"
)

// AuthorItem is an author account with its post count.
type AuthorItem struct {
	models.UserModel
	PostCount int64 `json:"postCount"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListAuthors returns author accounts with post counts, newest joined first.
// A search term matches author names case-insensitively.
func (s *Service) ListAuthors(search string) ([]AuthorItem, error) {
	tx := s.db.Model(&models.UserModel{}).Where("role = ?", models.RoleAuthor)
	if search != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var users []models.UserModel
	if err := tx.Order("joined DESC").Find(&users).Error; err != nil {
		return nil, err
	}

	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}

	counts := map[string]int64{}
	if len(ids) > 0 {
		var rows []struct {
			AuthorID string
			Count    int64
		}
		err := s.db.Model(&models.PostModel{}).
			Select("author_id, COUNT(*) as count").
			Where("author_id IN ?", ids).
			Group("author_id").
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			counts[row.AuthorID] = row.Count
		}
	}

	items := make([]AuthorItem, len(users))
	for i, u := range users {
		items[i] = AuthorItem{UserModel: u, PostCount: counts[u.ID]}
	}
	return items, nil
}

// SetAuthorStatus bans or re-activates an author account.
func (s *Service) SetAuthorStatus(id string, status models.UserStatus) (*models.UserModel, error) {
	if !status.Valid() {
		return nil, apperror.Validation("status must be one of active, banned")
	}

	var user models.UserModel
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Author not found")
		}
		return nil, err
	}

	if err := s.db.Model(&user).Update("status", status).Error; err != nil {
		return nil, err
	}
	user.Status = status
	return &user, nil
}
