// Package stats aggregates post counts for the dashboard analytics and charts.
package stats

import (
	"time"

	"github.com/inkpress/core/internal/models"
	"gorm.io/gorm"
)

var weekdayLabels = []string{"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"}

var monthLabels = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// StatusCounts holds post counts per lifecycle status.
type StatusCounts struct {
	Draft     int64 `json:"draft"`
	Published int64 `json:"published"`
	Scheduled int64 `json:"scheduled"`
}

// ChartPoint is one labeled bucket of the chart.
type ChartPoint struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// Chart is the ordered bucket sequence plus the total over the period.
type Chart struct {
	Chart []ChartPoint `json:"chart"`
	Total int64        `json:"total"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CountByStatus groups posts by status, globally or per author.
func (s *Service) CountByStatus(authorID string) (StatusCounts, error) {
	tx := s.db.Model(&models.PostModel{})
	if authorID != "" {
		tx = tx.Where("author_id = ?", authorID)
	}

	var rows []struct {
		Status models.PostStatus
		Count  int64
	}
	if err := tx.Select("status, COUNT(*) as count").Group("status").Scan(&rows).Error; err != nil {
		return StatusCounts{}, err
	}

	var counts StatusCounts
	for _, row := range rows {
		switch row.Status {
		case models.StatusDraft:
			counts.Draft = row.Count
		case models.StatusPublished:
			counts.Published = row.Count
		case models.StatusScheduled:
			counts.Scheduled = row.Count
		}
	}
	return counts, nil
}

// CountAuthors returns the number of author accounts.
func (s *Service) CountAuthors() (int64, error) {
	var count int64
	err := s.db.Model(&models.UserModel{}).Where("role = ?", models.RoleAuthor).Count(&count).Error
	return count, err
}

// BuildChart buckets post creation times over the current ISO week (weekly)
// or calendar year (monthly). Buckets with no posts stay at zero. Rows are
// bucketed in Go so the query stays portable across SQL dialects.
func (s *Service) BuildChart(period string, authorID string, now time.Time) (Chart, error) {
	var start, end time.Time
	var labels []string
	if period == "monthly" {
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(1, 0, 0)
		labels = monthLabels
	} else {
		start = startOfISOWeek(now)
		end = start.AddDate(0, 0, 7)
		labels = weekdayLabels
	}

	tx := s.db.Model(&models.PostModel{}).
		Where("created_at >= ? AND created_at < ?", start, end)
	if authorID != "" {
		tx = tx.Where("author_id = ?", authorID)
	}

	var rows []struct {
		CreatedAt time.Time
	}
	if err := tx.Select("created_at").Scan(&rows).Error; err != nil {
		return Chart{}, err
	}

	points := make([]ChartPoint, len(labels))
	for i, label := range labels {
		points[i] = ChartPoint{Label: label}
	}
	for _, row := range rows {
		created := row.CreatedAt.In(now.Location())
		var idx int
		if period == "monthly" {
			idx = int(created.Month()) - 1
		} else {
			idx = isoWeekdayIndex(created.Weekday())
		}
		points[idx].Count++
	}

	return Chart{Chart: points, Total: int64(len(rows))}, nil
}

// startOfISOWeek returns the Monday 00:00 of t's week.
func startOfISOWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -isoWeekdayIndex(day.Weekday()))
}

// isoWeekdayIndex maps Monday→0 … Sunday→6.
func isoWeekdayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}
