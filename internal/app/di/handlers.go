package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"taskverse_backend/internal/app/router"
	authadapters "taskverse_backend/internal/feature/auth/adapters"
	authhandler "taskverse_backend/internal/feature/auth/transport/handler"
	authusecase "taskverse_backend/internal/feature/auth/usecase"
	taskhandler "taskverse_backend/internal/feature/tasks/transport/handler"
	taskusecase "taskverse_backend/internal/feature/tasks/usecase"
	platformhandler "taskverse_backend/internal/platform/http/handler"
	jwtmw "taskverse_backend/internal/platform/jwt"
)

// Options は依存関係の組み立てに必要な設定です。
type Options struct {
	JWTSecret string
	JWTTTL    time.Duration
	CacheTTL  time.Duration
}

// NewHandlers はリポジトリ・ユースケース・ハンドラーを組み立てます。rdbはnilでもよい。
func NewHandlers(db *gorm.DB, rdb *redis.Client, opts Options) (router.Handlers, error) {
	// Repository
	userRepo := authadapters.NewUserGorm(db)
	taskRepo := NewTaskRepository(db, rdb, opts.CacheTTL)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, jwtmw.NewGenerator(opts.JWTSecret, opts.JWTTTL))
	taskUC := taskusecase.NewTaskUsecase(taskRepo)

	sqlDB, err := db.DB()
	if err != nil {
		return router.Handlers{}, err
	}

	// Handler
	return router.Handlers{
		Auth:   authhandler.NewAuthHandler(authUC),
		Tasks:  taskhandler.NewTaskHandler(taskUC),
		Health: platformhandler.NewHealthHandler(sqlDB),
	}, nil
}
