package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"tracker/internal/amqp"
	"tracker/internal/core"
	"tracker/internal/ident"
	applog "tracker/internal/log"
	"tracker/internal/query"
	"tracker/internal/store"
)

// TaskService exposes create/read/update/delete/search/filter over tasks
type TaskService struct {
	store  *store.Store[int, core.Task]
	events notifier
}

// NewTaskService creates a task service. publisher may be nil.
func NewTaskService(alloc ident.Allocator[int], publisher ChangePublisher, logger *applog.Logger) *TaskService {
	if logger == nil {
		logger = applog.Discard()
	}
	return &TaskService{
		store:  store.New[int, core.Task](alloc),
		events: newNotifier(amqp.KindTask, publisher, logger.WithComponent(applog.ComponentTasks)),
	}
}

// Create adds a pending task
func (s *TaskService) Create(ctx context.Context, title, description string) (core.Task, error) {
	t, err := s.store.Create(func(id int) core.Task {
		return core.Task{
			ID:          id,
			Title:       title,
			Description: description,
			Status:      core.StatusPending,
		}
	})
	if err != nil {
		s.events.failed(ctx, "Task not created", err, errorType(err), applog.OpCreate, nil)
		return core.Task{}, fmt.Errorf("create task: %w", err)
	}
	s.events.changed(ctx, strconv.Itoa(t.ID), applog.OpCreate, applog.NewFields().With(applog.FieldStatus, t.Status.String()))
	return t, nil
}

// All returns every task in creation order
func (s *TaskService) All(ctx context.Context) []core.Task {
	all := s.store.All()
	s.events.queried(ctx, applog.OpRead, len(all), nil)
	return all
}

func (s *TaskService) Get(_ context.Context, id int) (core.Task, error) {
	return s.store.Get(id)
}

// Update overwrites the non-blank fields of patch. An unknown status is
// rejected and leaves the task unchanged.
func (s *TaskService) Update(ctx context.Context, id int, patch core.TaskPatch) (core.Task, error) {
	t, err := s.store.Update(id, func(t *core.Task) error {
		return t.Apply(patch)
	})
	if err != nil {
		s.events.failed(ctx, "Task not updated", err, errorType(err), applog.OpUpdate,
			applog.NewFields().With(applog.FieldRecordID, id))
		return core.Task{}, fmt.Errorf("update task: %w", err)
	}
	s.events.changed(ctx, strconv.Itoa(id), applog.OpUpdate, applog.NewFields().With(applog.FieldStatus, t.Status.String()))
	return t, nil
}

// Delete removes the task and returns it
func (s *TaskService) Delete(ctx context.Context, id int) (core.Task, error) {
	t, err := s.store.Delete(id)
	if err != nil {
		s.events.failed(ctx, "Task not deleted", err, errorType(err), applog.OpDelete,
			applog.NewFields().With(applog.FieldRecordID, id))
		return core.Task{}, fmt.Errorf("delete task: %w", err)
	}
	s.events.changed(ctx, strconv.Itoa(id), applog.OpDelete, nil)
	return t, nil
}

// Search matches keyword against title and description, ignoring case
func (s *TaskService) Search(ctx context.Context, keyword string) []core.Task {
	out := query.Search(s.store.All(), keyword)
	s.events.queried(ctx, applog.OpSearch, len(out), applog.NewFields().With(applog.FieldKeyword, keyword))
	return out
}

// FilterByStatus returns the tasks in the given status. The status is
// checked before filtering: an unknown value is ErrInvalidStatus, never an
// empty result.
func (s *TaskService) FilterByStatus(ctx context.Context, status string) ([]core.Task, error) {
	want, err := core.ParseStatus(status)
	if err != nil {
		s.events.failed(ctx, "Invalid status filter", err, applog.ErrorTypeValidation, applog.OpFilter,
			applog.NewFields().With(applog.FieldStatus, status))
		return nil, fmt.Errorf("filter tasks by %q: %w", status, err)
	}
	out := query.Filter(s.store.All(), func(t core.Task) bool { return t.Status == want })
	s.events.queried(ctx, applog.OpFilter, len(out), applog.NewFields().With(applog.FieldStatus, want.String()))
	return out, nil
}

// Len returns the number of stored tasks
func (s *TaskService) Len() int {
	return s.store.Len()
}

func errorType(err error) string {
	switch {
	case errors.Is(err, core.ErrNotFound):
		return applog.ErrorTypeNotFound
	case errors.Is(err, ident.ErrPoolExhausted):
		return applog.ErrorTypeExhausted
	case errors.Is(err, core.ErrInvalidStatus), errors.Is(err, core.ErrInvalidCategory):
		return applog.ErrorTypeValidation
	default:
		return applog.ErrorTypeInternal
	}
}
