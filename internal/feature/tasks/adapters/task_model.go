package adapters

import (
	"time"

	authentity "taskverse_backend/internal/feature/auth/domain/entity"
	"taskverse_backend/internal/feature/tasks/domain/entity"
)

// TaskModel はtasksテーブルの行を表します。
// owner_idはusersへの外部キーで、ユーザー削除時にタスクも削除されます。
type TaskModel struct {
	ID        string           `gorm:"primaryKey;size:36"`
	Title     string           `gorm:"type:text;not null"`
	Priority  string           `gorm:"size:16;not null;default:Low"`
	DueDate   *time.Time       `gorm:"type:date"`
	Completed bool             `gorm:"not null;default:false"`
	OwnerID   string           `gorm:"size:36;not null;index"`
	Owner     *authentity.User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (TaskModel) TableName() string {
	return "tasks"
}

func toModel(e *entity.Task) TaskModel {
	return TaskModel{
		ID:        e.ID,
		Title:     e.Title,
		Priority:  string(e.Priority),
		DueDate:   e.DueDate,
		Completed: e.Completed,
		OwnerID:   e.OwnerID,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// ToEntity は行をドメインエンティティに変換します。
func (m TaskModel) ToEntity() entity.Task {
	var due *time.Time
	if m.DueDate != nil {
		d := time.Date(m.DueDate.Year(), m.DueDate.Month(), m.DueDate.Day(), 0, 0, 0, 0, time.UTC)
		due = &d
	}
	return entity.Task{
		ID:        m.ID,
		Title:     m.Title,
		Priority:  entity.Priority(m.Priority),
		DueDate:   due,
		Completed: m.Completed,
		OwnerID:   m.OwnerID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
