package category

import (
	"errors"

	"github.com/inkpress/core/internal/models"
	"github.com/inkpress/core/internal/pkg/apperror"
	"gorm.io/gorm"
)

type CreateCategoryDTO struct {
	Name  string `json:"name" form:"name" binding:"required"`
	Image string `json:"image" form:"image"`
}

type UpdateCategoryDTO struct {
	Name  *string `json:"name" form:"name"`
	Image *string `json:"image" form:"image"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns all categories with their post counts.
func (s *Service) List() ([]models.CategoryModel, error) {
	var cats []models.CategoryModel
	if err := s.db.Order("created_at ASC").Find(&cats).Error; err != nil {
		return nil, err
	}

	var rows []struct {
		CategoryID string
		Count      int64
	}
	err := s.db.Model(&models.PostModel{}).
		Select("category_id, COUNT(*) as count").
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.CategoryID] = row.Count
	}
	for i := range cats {
		cats[i].PostCount = counts[cats[i].ID]
	}
	return cats, nil
}

func (s *Service) GetByID(id string) (*models.CategoryModel, error) {
	var cat models.CategoryModel
	if err := s.db.First(&cat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Category not found")
		}
		return nil, err
	}
	return &cat, nil
}

func (s *Service) Create(dto *CreateCategoryDTO) (*models.CategoryModel, error) {
	var count int64
	if err := s.db.Model(&models.CategoryModel{}).Where("name = ?", dto.Name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, &apperror.Error{Kind: apperror.KindDuplicate, Message: "Category name already exist"}
	}

	cat := models.CategoryModel{Name: dto.Name, Image: dto.Image}
	return &cat, s.db.Create(&cat).Error
}

func (s *Service) Update(id string, dto *UpdateCategoryDTO) (*models.CategoryModel, error) {
	cat, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		cat.Name = *dto.Name
	}
	if dto.Image != nil && *dto.Image != "" {
		cat.Image = *dto.Image
	}
	return cat, s.db.Save(cat).Error
}

// Delete permanently removes a category, freeing its name for reuse. Posts
// referencing it are left untouched and keep their dangling category
// reference.
func (s *Service) Delete(id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.db.Unscoped().Delete(&models.CategoryModel{}, "id = ?", id).Error
}
