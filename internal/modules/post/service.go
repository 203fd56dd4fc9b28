package post

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/inkpress/core/internal/models"
	"github.com/inkpress/core/internal/modules/publisher"
	"github.com/inkpress/core/internal/modules/upload"
	"github.com/inkpress/core/internal/pkg/apperror"
	"github.com/inkpress/core/internal/pkg/pagination"
	redisc "github.com/inkpress/core/internal/pkg/redis"
	"gorm.io/gorm"
)

const (
	recentCacheKey = "inkpress:recent_posts"
	recentCacheTTL = time.Minute
	recentDefault  = 5
)

// Service handles post business logic.
type Service struct {
	db      *gorm.DB
	cache   *redisc.Client // optional
	pub     *publisher.Service
	uploads *upload.Service
}

func NewService(db *gorm.DB, cache *redisc.Client, pub *publisher.Service, uploads *upload.Service) *Service {
	return &Service{db: db, cache: cache, pub: pub, uploads: uploads}
}

func preloadRelations(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Preload("Category", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		})
}

// List returns one page of posts matching the listing options, plus the
// next/prev pagination metadata.
func (s *Service) List(opts ListOptions) ([]models.PostModel, pagination.Meta, error) {
	tx := s.buildListQuery(opts)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, pagination.Meta{}, err
	}

	tx = applyProjection(tx, opts.Select)
	tx = applyOrder(tx, opts.Sort)
	tx = preloadRelations(tx)

	var posts []models.PostModel
	if err := tx.Offset(opts.Page.Offset()).Limit(opts.Page.Limit).Find(&posts).Error; err != nil {
		return nil, pagination.Meta{}, err
	}

	return posts, pagination.BuildMeta(opts.Page, total), nil
}

// Recent returns the newest posts, served from the Redis cache for the
// default page size.
func (s *Service) Recent(ctx context.Context, limit int) ([]models.PostModel, error) {
	if limit < 1 {
		limit = recentDefault
	}

	useCache := s.cache != nil && limit == recentDefault
	if useCache {
		if raw, err := s.cache.Get(ctx, recentCacheKey); err == nil && raw != "" {
			var posts []models.PostModel
			if json.Unmarshal([]byte(raw), &posts) == nil {
				return posts, nil
			}
		}
	}

	var posts []models.PostModel
	if err := preloadRelations(s.db).Order("created_at DESC").Limit(limit).Find(&posts).Error; err != nil {
		return nil, err
	}

	if useCache {
		if raw, err := json.Marshal(posts); err == nil {
			_ = s.cache.Set(ctx, recentCacheKey, raw, recentCacheTTL)
		}
	}
	return posts, nil
}

func (s *Service) invalidateRecent(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, recentCacheKey)
	}
}

// GetBySlug fetches a single post by slug.
func (s *Service) GetBySlug(slug string) (*models.PostModel, error) {
	var post models.PostModel
	if err := preloadRelations(s.db).Where("slug = ?", slug).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("Post with %s not found", slug))
		}
		return nil, err
	}
	return &post, nil
}

// GetByID fetches a single post by ID, optionally scoped to an author.
func (s *Service) GetByID(id, authorID string) (*models.PostModel, error) {
	tx := preloadRelations(s.db).Where("id = ?", id)
	if authorID != "" {
		tx = tx.Where("author_id = ?", authorID)
	}
	var post models.PostModel
	if err := tx.First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("Post %s not found", id))
		}
		return nil, err
	}
	return &post, nil
}

// Create stores a new post for the author and registers its publish timer
// when scheduled.
func (s *Service) Create(ctx context.Context, authorID string, dto *CreatePostDTO) (*models.PostModel, error) {
	if !dto.Status.Valid() {
		return nil, apperror.Validation("status must be one of draft, published, scheduled")
	}

	var count int64
	if err := s.db.Model(&models.PostModel{}).Where("title = ?", dto.Title).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, &apperror.Error{Kind: apperror.KindDuplicate, Message: "Post title already exist"}
	}

	var cat models.CategoryModel
	if err := s.db.First(&cat, "id = ?", dto.Category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.BadRequest("Category not found")
		}
		return nil, err
	}

	post := models.PostModel{
		Title:        dto.Title,
		Content:      dto.Content,
		Image:        dto.Image,
		AuthorID:     authorID,
		CategoryID:   cat.ID,
		Tags:         dto.Tags,
		Status:       dto.Status,
		ScheduleDate: dto.ScheduleDate,
	}
	if post.Status == models.StatusPublished {
		post.Published = true
	}

	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}

	if post.Status == models.StatusScheduled {
		s.pub.Schedule(post.ID, *post.ScheduleDate)
	}
	s.invalidateRecent(ctx)
	return &post, nil
}

// Update applies a partial update, keeping the publish timer registry in sync
// with status transitions.
func (s *Service) Update(ctx context.Context, id string, dto *UpdatePostDTO) (*models.PostModel, error) {
	post, err := s.GetByID(id, "")
	if err != nil {
		return nil, err
	}

	if dto.Image != nil && *dto.Image != "" && post.Image != "" && post.Image != *dto.Image {
		s.uploads.Remove(upload.KindPosts, post.Image)
	}

	prevStatus := post.Status

	if dto.Title != nil {
		post.Title = *dto.Title
	}
	if dto.Content != nil {
		post.Content = *dto.Content
	}
	if dto.Image != nil && *dto.Image != "" {
		post.Image = *dto.Image
	}
	if dto.Category != nil {
		var cat models.CategoryModel
		if err := s.db.First(&cat, "id = ?", *dto.Category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.BadRequest("Category not found")
			}
			return nil, err
		}
		post.CategoryID = cat.ID
	}
	if dto.Tags != nil {
		post.Tags = *dto.Tags
	}
	if dto.ScheduleDate != nil {
		post.ScheduleDate = dto.ScheduleDate
	}
	if dto.Status != nil {
		if !dto.Status.Valid() {
			return nil, apperror.Validation("status must be one of draft, published, scheduled")
		}
		post.Status = *dto.Status
	}
	if post.Status == models.StatusPublished {
		post.Published = true
	}

	if err := s.db.Save(post).Error; err != nil {
		return nil, err
	}

	if prevStatus == models.StatusScheduled && post.Status != models.StatusScheduled {
		s.pub.Cancel(post.ID)
	}
	if post.Status == models.StatusScheduled {
		s.pub.Schedule(post.ID, *post.ScheduleDate)
	}

	s.invalidateRecent(ctx)
	return post, nil
}

// Delete permanently removes a post, its publish timer, and (best effort) its
// image file. The row is hard-deleted so the title becomes available again.
func (s *Service) Delete(ctx context.Context, id string) error {
	post, err := s.GetByID(id, "")
	if err != nil {
		return err
	}

	if post.Image != "" {
		s.uploads.Remove(upload.KindPosts, post.Image)
	}
	s.pub.Cancel(post.ID)

	if err := s.db.Unscoped().Delete(&models.PostModel{}, "id = ?", id).Error; err != nil {
		return err
	}
	s.invalidateRecent(ctx)
	return nil
}

// ListFiltered serves the author/admin dashboards. An empty authorID means
// all posts.
func (s *Service) ListFiltered(authorID string, f FilterOptions) ([]models.PostModel, error) {
	tx := preloadRelations(s.db.Model(&models.PostModel{}))

	if authorID != "" {
		tx = tx.Where("author_id = ?", authorID)
	}
	if f.Status != "" {
		tx = tx.Where("status = ?", f.Status)
	}
	if f.StartDate != nil {
		tx = tx.Where("created_at >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		tx = tx.Where("created_at <= ?", *f.EndDate)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		tx = tx.Where("title LIKE ? OR content LIKE ?", like, like)
	}

	switch f.Sort {
	case "latest":
		tx = tx.Order("created_at DESC")
	case "alphabetical":
		tx = tx.Order("title ASC")
	}

	var posts []models.PostModel
	return posts, tx.Find(&posts).Error
}
