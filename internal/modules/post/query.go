package post

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/inkpress/core/internal/models"
	"github.com/inkpress/core/internal/pkg/pagination"
	"gorm.io/gorm"
)

// fieldColumns whitelists API field names against post columns. Parameters
// naming anything else are ignored rather than reaching the database.
var fieldColumns = map[string]string{
	"title":        "title",
	"content":      "content",
	"image":        "image",
	"slug":         "slug",
	"status":       "status",
	"published":    "published",
	"tags":         "tags",
	"author":       "author_id",
	"category":     "category_id",
	"scheduleDate": "schedule_date",
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
}

// reservedParams are consumed by the query builder itself and never become
// equality filters.
var reservedParams = map[string]bool{
	"select": true, "sort": true, "page": true, "limit": true,
	"search": true, "author": true, "category": true, "tags": true,
}

// ListOptions is the parsed form of the post listing query string.
type ListOptions struct {
	Select   []string
	Sort     []string
	Page     pagination.Query
	Search   string
	Author   string
	Category string
	Tags     []string
	Filters  map[string]string
}

// ParseListOptions turns flat query parameters into listing options.
func ParseListOptions(values url.Values) ListOptions {
	opts := ListOptions{
		Page:     pagination.Parse(values.Get("page"), values.Get("limit")),
		Search:   values.Get("search"),
		Author:   values.Get("author"),
		Category: values.Get("category"),
		Filters:  map[string]string{},
	}
	if sel := values.Get("select"); sel != "" {
		opts.Select = splitList(sel)
	}
	if sort := values.Get("sort"); sort != "" {
		opts.Sort = splitList(sort)
	}
	if tags := values.Get("tags"); tags != "" {
		opts.Tags = splitList(tags)
	}
	for key, vals := range values {
		if reservedParams[key] || len(vals) == 0 {
			continue
		}
		opts.Filters[key] = vals[0]
	}
	return opts
}

// buildListQuery composes the filter predicates for a post listing.
func (s *Service) buildListQuery(opts ListOptions) *gorm.DB {
	tx := s.db.Model(&models.PostModel{})

	for field, value := range opts.Filters {
		column, ok := fieldColumns[field]
		if !ok {
			continue
		}
		tx = tx.Where(column+" = ?", coerceFilterValue(column, value))
	}

	if opts.Search != "" {
		like := "%" + strings.ToLower(opts.Search) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(tags) LIKE ?", like, like, like)
	}

	// Author and category names resolve to identifiers before filtering. An
	// unmatched name adds no constraint at all, so the listing falls through
	// unfiltered rather than returning an empty page.
	if opts.Author != "" {
		var user models.UserModel
		like := "%" + strings.ToLower(opts.Author) + "%"
		if err := s.db.Where("LOWER(name) LIKE ?", like).First(&user).Error; err == nil {
			tx = tx.Where("author_id = ?", user.ID)
		}
	}
	if opts.Category != "" {
		var cat models.CategoryModel
		like := "%" + strings.ToLower(opts.Category) + "%"
		if err := s.db.Where("LOWER(name) LIKE ?", like).First(&cat).Error; err == nil {
			tx = tx.Where("category_id = ?", cat.ID)
		}
	}

	if len(opts.Tags) > 0 {
		// Tags are stored as a JSON array; membership is matched on the
		// quoted element, which holds for both MySQL and SQLite.
		conds := make([]string, 0, len(opts.Tags))
		args := make([]interface{}, 0, len(opts.Tags))
		for _, tag := range opts.Tags {
			conds = append(conds, "tags LIKE ?")
			args = append(args, `%"`+tag+`"%`)
		}
		tx = tx.Where(strings.Join(conds, " OR "), args...)
	}

	return tx
}

// applyProjection restricts selected columns. The id and relation keys are
// always kept so preloads keep working.
func applyProjection(tx *gorm.DB, selected []string) *gorm.DB {
	if len(selected) == 0 {
		return tx
	}
	columns := []string{"id", "author_id", "category_id"}
	for _, field := range selected {
		if column, ok := fieldColumns[field]; ok {
			columns = append(columns, column)
		}
	}
	return tx.Select(columns)
}

// applyOrder maps sort fields ("-" prefix = descending) onto ORDER BY.
// Default order is newest-created-first.
func applyOrder(tx *gorm.DB, sort []string) *gorm.DB {
	applied := false
	for _, field := range sort {
		desc := strings.HasPrefix(field, "-")
		name := strings.TrimPrefix(field, "-")
		column, ok := fieldColumns[name]
		if !ok {
			continue
		}
		if desc {
			column += " DESC"
		}
		tx = tx.Order(column)
		applied = true
	}
	if !applied {
		tx = tx.Order("created_at DESC")
	}
	return tx
}

func coerceFilterValue(column, value string) interface{} {
	if column == "published" {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return value
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FilterOptions are the author/admin dashboard filters.
type FilterOptions struct {
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
	Sort      string
	Search    string
}

// ParseFilterOptions reads dashboard filters from a query string. Dates accept
// date-only or RFC 3339 forms; unparseable values are ignored.
func ParseFilterOptions(values url.Values) FilterOptions {
	return FilterOptions{
		Status:    values.Get("status"),
		StartDate: parseDate(values.Get("startDate")),
		EndDate:   parseDate(values.Get("endDate")),
		Sort:      values.Get("sort"),
		Search:    values.Get("search"),
	}
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
