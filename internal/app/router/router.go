// Package router はHTTPルーティングを定義します。
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "taskverse_backend/internal/feature/auth/transport/handler"
	taskhandler "taskverse_backend/internal/feature/tasks/transport/handler"
	platformhandler "taskverse_backend/internal/platform/http/handler"
	"taskverse_backend/internal/platform/http/middleware"
	jwtmw "taskverse_backend/internal/platform/jwt"
)

// Handlers はルーターに登録するハンドラー群です。
type Handlers struct {
	Auth   *authhandler.AuthHandler
	Tasks  *taskhandler.TaskHandler
	Health *platformhandler.HealthHandler
}

// Options はルーターの設定です。
type Options struct {
	JWTSecret   string
	CORSOrigins []string
}

func NewRouter(opts Options, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     opts.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{middleware.HeaderRequestID},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// 認証不要
	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.OPTIONS("/healthz", h.Health.Health)

	api := r.Group("/api")

	// 新規ユーザー登録・ログイン（トークン発行）
	auth := api.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)

	// 認証必須のルート
	gate := jwtmw.AuthRequired(opts.JWTSecret)
	auth.GET("/me", gate, h.Auth.Me)

	tasks := api.Group("/tasks")
	tasks.Use(gate)
	{
		tasks.GET("", h.Tasks.List)
		tasks.POST("", h.Tasks.Create)
		tasks.PUT("/:id", h.Tasks.Update)
		tasks.PATCH("/:id/complete", h.Tasks.Complete)
		tasks.DELETE("/:id", h.Tasks.Delete)
	}

	return r
}
