// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	taskadapters "taskverse_backend/internal/feature/tasks/adapters"
	"taskverse_backend/internal/feature/tasks/usecase"
	"taskverse_backend/internal/platform/cache"
)

// NewTaskRepository creates a TaskRepository implementation.
// If Redis is available, the gorm repository is wrapped with the task list cache.
func NewTaskRepository(db *gorm.DB, rdb *redis.Client, ttl time.Duration) usecase.TaskRepository {
	repo := taskadapters.NewTaskRepository(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingTaskRepository(rdb, ttl, repo, "tasks")
}
