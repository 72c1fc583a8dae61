// Package adapters はtasksフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskverse_backend/internal/feature/tasks/domain/entity"
	"taskverse_backend/internal/feature/tasks/usecase"
)

type taskGorm struct {
	db *gorm.DB
}

var _ usecase.TaskRepository = (*taskGorm)(nil)

// NewTaskRepository は指定されたgorm.DB接続でタスクリポジトリを生成します。
func NewTaskRepository(db *gorm.DB) *taskGorm {
	return &taskGorm{db: db}
}

// Create はタスクを保存します。IDが未設定の場合はUUIDを採番します。
func (r *taskGorm) Create(ctx context.Context, t *entity.Task) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	m := toModel(t)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	t.CreatedAt = m.CreatedAt
	t.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *taskGorm) FindByID(ctx context.Context, id string) (*entity.Task, error) {
	var m TaskModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTaskNotFound
		}
		return nil, err
	}
	t := m.ToEntity()
	return &t, nil
}

// ListByOwner は所有者のタスクを作成順に返します。
func (r *taskGorm) ListByOwner(ctx context.Context, ownerID string) ([]entity.Task, error) {
	var rows []TaskModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Task, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.ToEntity())
	}
	return out, nil
}

// Update は可変フィールドを書き換えます。WHERE句にowner_idを含めるため、
// 所有者が一致しない行は更新されません。
func (r *taskGorm) Update(ctx context.Context, t *entity.Task) error {
	res := r.db.WithContext(ctx).
		Model(&TaskModel{}).
		Where("id = ? AND owner_id = ?", t.ID, t.OwnerID).
		Updates(map[string]any{
			"title":      t.Title,
			"priority":   string(t.Priority),
			"due_date":   t.DueDate,
			"completed":  t.Completed,
			"updated_at": t.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrTaskNotFound
	}
	return nil
}

func (r *taskGorm) Delete(ctx context.Context, id, ownerID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&TaskModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrTaskNotFound
	}
	return nil
}
