// Package publisher flips scheduled posts to published at their target time.
//
// The posts table is the durable source of truth: a pending transition is any
// row with status=scheduled and a schedule date. In-process timers only make
// firing prompt; a startup recovery scan and a periodic sweep pick up anything
// the timers miss, so pending schedules survive restarts.
package publisher

import (
	"sync"
	"time"

	"github.com/inkpress/core/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service owns the one-shot publish timers, keyed by post ID.
type Service struct {
	db  *gorm.DB
	log *zap.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	return &Service{
		db:     db,
		log:    log.Named("PublishService"),
		timers: make(map[string]*time.Timer),
	}
}

// Schedule registers (or replaces) the one-shot timer for a post. A target
// time in the past fires immediately.
func (s *Service) Schedule(postID string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[postID]; ok {
		t.Stop()
	}

	wait := time.Until(at)
	if wait < 0 {
		wait = 0
	}
	s.timers[postID] = time.AfterFunc(wait, func() {
		s.fire(postID)
	})
	s.log.Info("publish scheduled",
		zap.String("post_id", postID),
		zap.Time("at", at),
	)
}

// Cancel stops and removes the pending timer for a post, if any. Called when
// a post is updated away from scheduled or deleted.
func (s *Service) Cancel(postID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[postID]; ok {
		t.Stop()
		delete(s.timers, postID)
		s.log.Info("publish cancelled", zap.String("post_id", postID))
	}
}

func (s *Service) fire(postID string) {
	s.mu.Lock()
	delete(s.timers, postID)
	s.mu.Unlock()

	if err := s.publish(postID); err != nil {
		s.log.Warn("publish failed", zap.String("post_id", postID), zap.Error(err))
	}
}

// publish reloads the post and performs the scheduled → published transition.
// The post must still be scheduled and its target time elapsed; a timer that
// fired early or against a since-changed post is a no-op.
func (s *Service) publish(postID string) error {
	var post models.PostModel
	if err := s.db.First(&post, "id = ?", postID).Error; err != nil {
		return err
	}
	if post.Status != models.StatusScheduled || post.ScheduleDate == nil {
		return nil
	}
	if post.ScheduleDate.After(time.Now()) {
		return nil
	}

	err := s.db.Model(&models.PostModel{}).
		Where("id = ? AND status = ?", postID, models.StatusScheduled).
		Updates(map[string]interface{}{
			"status":        models.StatusPublished,
			"published":     true,
			"schedule_date": nil,
		}).Error
	if err != nil {
		return err
	}

	s.log.Info("post published", zap.String("post_id", postID), zap.String("slug", post.Slug))
	return nil
}

// Recover scans persisted scheduled posts on startup: overdue ones are
// published right away, future ones get their timers back.
func (s *Service) Recover() error {
	var posts []models.PostModel
	if err := s.db.Where("status = ?", models.StatusScheduled).Find(&posts).Error; err != nil {
		return err
	}

	recovered := 0
	for _, p := range posts {
		if p.ScheduleDate == nil {
			continue
		}
		s.Schedule(p.ID, *p.ScheduleDate)
		recovered++
	}
	if recovered > 0 {
		s.log.Info("recovered pending schedules", zap.Int("count", recovered))
	}
	return nil
}

// PublishDue publishes every overdue scheduled post. It backs the periodic
// sweep that catches timer drift.
func (s *Service) PublishDue() (int, error) {
	var posts []models.PostModel
	err := s.db.
		Where("status = ? AND schedule_date IS NOT NULL AND schedule_date <= ?", models.StatusScheduled, time.Now()).
		Find(&posts).Error
	if err != nil {
		return 0, err
	}

	published := 0
	for _, p := range posts {
		if err := s.publish(p.ID); err != nil {
			s.log.Warn("sweep publish failed", zap.String("post_id", p.ID), zap.Error(err))
			continue
		}
		s.Cancel(p.ID)
		published++
	}
	return published, nil
}

// Shutdown stops all pending timers.
func (s *Service) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

// Pending reports how many timers are currently registered.
func (s *Service) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
