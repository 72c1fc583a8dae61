// Package handler はtasksフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"taskverse_backend/internal/api"
	"taskverse_backend/internal/feature/tasks/domain/entity"
	"taskverse_backend/internal/feature/tasks/usecase"
	jwtmw "taskverse_backend/internal/platform/jwt"
)

// TaskUsecase はタスク操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type TaskUsecase interface {
	List(ctx context.Context, actor string) ([]entity.Task, error)
	Create(ctx context.Context, actor string, in usecase.CreateInput) (*entity.Task, error)
	Update(ctx context.Context, actor, id string, in usecase.UpdateInput) (*entity.Task, error)
	Complete(ctx context.Context, actor, id string) (*entity.Task, error)
	Delete(ctx context.Context, actor, id string) error
}

// TaskHandler はタスクのHTTPリクエストを処理します。
// すべてのエンドポイントはjwtmw.AuthRequiredの後ろに配置される前提です。
type TaskHandler struct {
	uc TaskUsecase
}

// NewTaskHandler は指定されたusecaseでTaskHandlerの新しいインスタンスを生成します。
func NewTaskHandler(uc TaskUsecase) *TaskHandler {
	return &TaskHandler{uc: uc}
}

// List はGET /api/tasks を処理し、認証ユーザーのタスクを配列で返します。
func (h *TaskHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	tasks, err := h.uc.List(c.Request.Context(), actor)
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]api.Task, 0, len(tasks))
	for i := range tasks {
		out = append(out, toTaskResponse(&tasks[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Create はPOST /api/tasks を処理します。
func (h *TaskHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req api.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create task: bad request", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Msg: "Invalid request body"})
		return
	}

	in := usecase.CreateInput{Title: req.Title}
	if req.Priority != nil {
		in.Priority = *req.Priority
	}
	if req.DueDate != nil {
		in.DueDate = *req.DueDate
	}
	t, err := h.uc.Create(c.Request.Context(), actor, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTaskResponse(t))
}

// Update はPUT /api/tasks/:id を処理します。
// 未知のフィールドを含むボディは400で拒否します。
func (h *TaskHandler) Update(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req api.UpdateTaskRequest
	if err := decodeStrict(c, &req); err != nil {
		slog.Warn("update task: bad request", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Msg: "Invalid request body"})
		return
	}

	t, err := h.uc.Update(c.Request.Context(), actor, c.Param("id"), usecase.UpdateInput{
		Title:     req.Title,
		Priority:  req.Priority,
		DueDate:   req.DueDate,
		Completed: req.Completed,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(t))
}

// Complete はPATCH /api/tasks/:id/complete を処理し、完了状態を反転します。
func (h *TaskHandler) Complete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	t, err := h.uc.Complete(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(t))
}

// Delete はDELETE /api/tasks/:id を処理します。
func (h *TaskHandler) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Deleted"})
}

func (h *TaskHandler) actor(c *gin.Context) (string, bool) {
	id, ok := jwtmw.UserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Msg: "No token, authorization denied"})
	}
	return id, ok
}

// fail はusecaseのエラーをHTTPステータスに変換します。想定外のエラーの詳細はログにのみ出力します。
func (h *TaskHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Msg: err.Error()})
	case errors.Is(err, usecase.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Msg: "Task not found"})
	case errors.Is(err, usecase.ErrForbidden):
		slog.Warn("task access denied", "task_id", c.Param("id"), "remote_addr", c.ClientIP())
		c.JSON(http.StatusForbidden, api.ErrorResponse{Msg: "Not authorized"})
	default:
		slog.Error("task operation failed", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Msg: "Server Error"})
	}
}

// decodeStrict は未知のフィールドを拒否してJSONをデコードし、bindingタグで検証します。
func decodeStrict(c *gin.Context, dst any) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return binding.Validator.ValidateStruct(dst)
}

func toTaskResponse(t *entity.Task) api.Task {
	out := api.Task{
		Id:        t.ID,
		Title:     t.Title,
		Priority:  api.Priority(t.Priority),
		Completed: t.Completed,
		UserId:    t.OwnerID,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	if t.DueDate != nil {
		out.DueDate = &openapi_types.Date{Time: *t.DueDate}
	}
	return out
}
