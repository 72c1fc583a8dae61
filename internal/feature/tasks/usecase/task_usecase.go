// Package usecase はタスク操作のビジネスロジックを実装します。
// すべての操作は認証済みユーザー（actor）のスコープで実行されます。
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taskverse_backend/internal/feature/tasks/domain/entity"
)

// TaskRepository はタスクの永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type TaskRepository interface {
	// Create はタスクを保存し、IDを採番します。
	Create(ctx context.Context, t *entity.Task) error
	// FindByID はIDでタスクを取得します。存在しない場合はErrTaskNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.Task, error)
	// ListByOwner は指定ユーザーのタスクのみを作成順で返します。
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Task, error)
	// Update はIDとOwnerIDの両方が一致する行を書き換えます。
	// 一致する行がない場合はErrTaskNotFoundを返します。
	Update(ctx context.Context, t *entity.Task) error
	// Delete はIDとownerIDの両方が一致する行を削除します。
	// 一致する行がない場合はErrTaskNotFoundを返します。
	Delete(ctx context.Context, id, ownerID string) error
}

// CreateInput はタスク作成の入力です。PriorityとDueDateは空文字を許容します。
type CreateInput struct {
	Title    string
	Priority string
	DueDate  string
}

// UpdateInput はタスク更新の入力です。nilのフィールドは変更しません。
// DueDateに空文字を指定すると期限をクリアします。
type UpdateInput struct {
	Title     *string
	Priority  *string
	DueDate   *string
	Completed *bool
}

// taskUsecase はタスク操作のユースケースを実装します。
type taskUsecase struct {
	tasks TaskRepository
	now   func() time.Time
}

// NewTaskUsecase はtaskUsecaseの新しいインスタンスを生成します。
func NewTaskUsecase(tasks TaskRepository) *taskUsecase {
	return &taskUsecase{tasks: tasks, now: time.Now}
}

// List はactorが所有するタスクのみを返します。
func (u *taskUsecase) List(ctx context.Context, actor string) ([]entity.Task, error) {
	tasks, err := u.tasks.ListByOwner(ctx, actor)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []entity.Task{}
	}
	return tasks, nil
}

// Create はactorを所有者とする未完了タスクを作成します。
// 優先度が未指定または不正な場合はLowになります。
func (u *taskUsecase) Create(ctx context.Context, actor string, in CreateInput) (*entity.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	priority, ok := entity.ParsePriority(in.Priority)
	if !ok {
		priority = entity.PriorityLow
	}
	due, err := entity.ParseDueDate(in.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	now := u.now().UTC()
	t := &entity.Task{
		Title:     title,
		Priority:  priority,
		DueDate:   due,
		Completed: false,
		OwnerID:   actor,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Update はactorが所有するタスクに部分更新を適用します。
// 他ユーザーのタスクに対してはErrForbiddenを返し、タスクは変更しません。
func (u *taskUsecase) Update(ctx context.Context, actor, id string, in UpdateInput) (*entity.Task, error) {
	patch, err := buildPatch(in)
	if err != nil {
		return nil, err
	}
	t, err := u.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(t)
	return u.save(ctx, t)
}

// Complete はタスクの完了状態を反転します。2回呼ぶと元の状態に戻ります。
func (u *taskUsecase) Complete(ctx context.Context, actor, id string) (*entity.Task, error) {
	t, err := u.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	t.Completed = !t.Completed
	return u.save(ctx, t)
}

// Delete はactorが所有するタスクを削除します。
func (u *taskUsecase) Delete(ctx context.Context, actor, id string) error {
	if _, err := u.loadOwned(ctx, actor, id); err != nil {
		return err
	}
	return u.tasks.Delete(ctx, id, actor)
}

func (u *taskUsecase) loadOwned(ctx context.Context, actor, id string) (*entity.Task, error) {
	t, err := u.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.OwnerID != actor {
		return nil, ErrForbidden
	}
	return t, nil
}

func (u *taskUsecase) save(ctx context.Context, t *entity.Task) (*entity.Task, error) {
	t.UpdatedAt = u.now().UTC()
	if err := u.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// buildPatch は入力を検証してTaskPatchに変換します。
func buildPatch(in UpdateInput) (entity.TaskPatch, error) {
	var p entity.TaskPatch
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return p, fmt.Errorf("%w: title must not be empty", ErrValidation)
		}
		p.Title = &title
	}
	if in.Priority != nil {
		prio, ok := entity.ParsePriority(*in.Priority)
		if !ok {
			return p, fmt.Errorf("%w: priority must be Low, Medium or High", ErrValidation)
		}
		p.Priority = &prio
	}
	if in.DueDate != nil {
		due, err := entity.ParseDueDate(*in.DueDate)
		if err != nil {
			return p, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		if due == nil {
			p.ClearDueDate = true
		} else {
			p.DueDate = due
		}
	}
	p.Completed = in.Completed
	return p, nil
}
