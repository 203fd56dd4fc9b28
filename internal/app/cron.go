package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/inkpress/core/internal/config"
	"github.com/inkpress/core/internal/models"
	"github.com/inkpress/core/internal/modules/publisher"
	"github.com/inkpress/core/internal/modules/upload"
	pkgcron "github.com/inkpress/core/internal/pkg/cron"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// registerCronJobs registers all scheduled background jobs.
func registerCronJobs(sched *pkgcron.Scheduler, db *gorm.DB, cfg *config.AppConfig, pub *publisher.Service, logger *zap.Logger) {
	cronLogger := logger.Named("CronService")

	sched.Register(pkgcron.Job{
		Name:        "publish_due_posts",
		Description: "Publish scheduled posts whose target time has elapsed",
		Interval:    30 * time.Second,
		Fn: func(ctx context.Context) error {
			n, err := pub.PublishDue()
			if err != nil {
				cronLogger.Warn("publish sweep failed", zap.Error(err))
				return err
			}
			if n > 0 {
				cronLogger.Info(fmt.Sprintf("publish sweep released %d post(s)", n))
			}
			return nil
		},
	})

	sched.Register(pkgcron.Job{
		Name:        "cleanup_orphan_images",
		Description: "Remove uploaded images no longer referenced by any record",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			removed, err := cleanupOrphanImages(db, cfg.StaticDir)
			if err != nil {
				cronLogger.Warn("orphan image cleanup failed", zap.Error(err))
				return err
			}
			if removed > 0 {
				cronLogger.Info(fmt.Sprintf("orphan image cleanup removed %d file(s)", removed))
			}
			return nil
		},
	})
}

// cleanupOrphanImages deletes files under the static directory that no post,
// category, or user references anymore.
func cleanupOrphanImages(db *gorm.DB, staticDir string) (int, error) {
	referenced := map[upload.Kind]map[string]bool{
		upload.KindPosts:      {},
		upload.KindCategories: {},
		upload.KindProfile:    {},
	}

	var names []string
	if err := db.Model(&models.PostModel{}).Where("image <> ''").Pluck("image", &names).Error; err != nil {
		return 0, err
	}
	for _, n := range names {
		referenced[upload.KindPosts][n] = true
	}

	names = names[:0]
	if err := db.Model(&models.CategoryModel{}).Where("image <> ''").Pluck("image", &names).Error; err != nil {
		return 0, err
	}
	for _, n := range names {
		referenced[upload.KindCategories][n] = true
	}

	names = names[:0]
	if err := db.Model(&models.UserModel{}).Where("image <> ''").Pluck("image", &names).Error; err != nil {
		return 0, err
	}
	for _, n := range names {
		referenced[upload.KindProfile][n] = true
	}

	removed := 0
	for kind, keep := range referenced {
		dir := filepath.Join(staticDir, string(kind))
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return removed, err
		}
		for _, ent := range entries {
			if ent.IsDir() || keep[ent.Name()] {
				continue
			}
			if err := os.Remove(filepath.Join(dir, ent.Name())); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}
