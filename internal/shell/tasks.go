package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"tracker/internal/core"
	applog "tracker/internal/log"
)

// TaskStore is the part of the task service the shell drives.
type TaskStore interface {
	Create(ctx context.Context, title, description string) (core.Task, error)
	All(ctx context.Context) []core.Task
	Get(ctx context.Context, id int) (core.Task, error)
	Update(ctx context.Context, id int, patch core.TaskPatch) (core.Task, error)
	Delete(ctx context.Context, id int) (core.Task, error)
	Search(ctx context.Context, keyword string) []core.Task
	FilterByStatus(ctx context.Context, status string) ([]core.Task, error)
	Len() int
}

// TaskShell is the task tracker menu.
type TaskShell struct {
	tasks  TaskStore
	p      *Prompter
	logger *applog.Logger
}

func NewTaskShell(tasks TaskStore, in io.Reader, out io.Writer, logger *applog.Logger) *TaskShell {
	if logger == nil {
		logger = applog.Discard()
	}
	return &TaskShell{
		tasks:  tasks,
		p:      NewPrompter(in, out),
		logger: logger.WithComponent(applog.ComponentShell),
	}
}

const taskMenu = `
Task Tracker CLI
1. Add Task
2. View All Tasks
3. Update Task
4. Delete Task
5. Search Tasks
6. List all pending Tasks
7. List all completed Tasks
8. List all in progress Tasks
9. Filter Tasks by status
0. Exit
`

// Run shows the menu until the user exits or input ends. It returns
// ctx.Err() when ctx is cancelled and nil otherwise.
func (s *TaskShell) Run(ctx context.Context) error {
	defer s.p.Close()
	s.p.Println("Task Tracker")

	for {
		s.p.Printf("%s", taskMenu)
		choice, err := s.p.Line(ctx, "Enter your choice: ")
		if err != nil {
			return endOfInput(err)
		}

		switch strings.ToLower(choice) {
		case "1":
			err = s.add(ctx)
		case "2":
			s.viewAll(ctx)
		case "3":
			err = s.update(ctx)
		case "4":
			err = s.delete(ctx)
		case "5":
			err = s.search(ctx)
		case "6":
			s.byStatus(ctx, string(core.StatusPending))
		case "7":
			s.byStatus(ctx, string(core.StatusDone))
		case "8":
			s.byStatus(ctx, string(core.StatusInProgress))
		case "9":
			var status string
			status, err = s.p.Line(ctx, "Enter status filter (pending/done/in progress): ")
			if err == nil {
				s.byStatus(ctx, status)
			}
		case "0", "q", "quit", "exit":
			s.p.Println("Exiting Task Tracker. Goodbye!")
			return nil
		default:
			s.p.Println("Invalid choice. Please try again.")
		}
		if err != nil {
			return endOfInput(err)
		}
	}
}

func (s *TaskShell) add(ctx context.Context) error {
	title, err := s.p.Line(ctx, "Enter task title: ")
	if err != nil {
		return err
	}
	description, err := s.p.Line(ctx, "Enter task description: ")
	if err != nil {
		return err
	}
	task, err := s.tasks.Create(ctx, title, description)
	if err != nil {
		s.report(ctx, err)
		return nil
	}
	s.p.Printf("Task ID %d added.\n", task.ID)
	return nil
}

// empty reports, and tells the user, that there is nothing to work on.
func (s *TaskShell) empty() bool {
	if s.tasks.Len() > 0 {
		return false
	}
	s.p.Println("No tasks yet. Add your tasks")
	return true
}

func (s *TaskShell) viewAll(ctx context.Context) {
	if s.empty() {
		return
	}
	tasks := s.tasks.All(ctx)
	s.p.Printf("Total tasks in the list: %d\n", len(tasks))
	renderTasks(s.p.out, tasks)
}

func (s *TaskShell) update(ctx context.Context) error {
	if s.empty() {
		return nil
	}
	id, err := s.p.Int(ctx, "Enter task ID to update: ")
	if err != nil {
		return err
	}
	if _, err := s.tasks.Get(ctx, id); err != nil {
		s.reportTask(ctx, id, err)
		return nil
	}

	var patch core.TaskPatch
	if patch.Title, err = s.p.Line(ctx, "Enter new title (leave blank to keep current): "); err != nil {
		return err
	}
	if patch.Description, err = s.p.Line(ctx, "Enter new description (leave blank to keep current): "); err != nil {
		return err
	}
	if patch.Status, err = s.p.Line(ctx, "Enter new status (leave blank to keep current): "); err != nil {
		return err
	}

	if _, err := s.tasks.Update(ctx, id, patch); err != nil {
		s.reportTask(ctx, id, err)
		return nil
	}
	s.p.Printf("Task ID %d updated successfully.\n", id)
	return nil
}

func (s *TaskShell) delete(ctx context.Context) error {
	if s.empty() {
		return nil
	}
	id, err := s.p.Int(ctx, "Enter task ID to delete: ")
	if err != nil {
		return err
	}
	if _, err := s.tasks.Delete(ctx, id); err != nil {
		s.reportTask(ctx, id, err)
		return nil
	}
	s.p.Printf("Task ID %d deleted successfully.\n", id)
	return nil
}

func (s *TaskShell) search(ctx context.Context) error {
	if s.empty() {
		return nil
	}
	keyword, err := s.p.Line(ctx, "Enter keyword to search: ")
	if err != nil {
		return err
	}
	results := s.tasks.Search(ctx, keyword)
	if len(results) == 0 {
		s.p.Println("No matching tasks found.")
		return nil
	}
	renderTasks(s.p.out, results)
	return nil
}

func (s *TaskShell) byStatus(ctx context.Context, status string) {
	tasks, err := s.tasks.FilterByStatus(ctx, status)
	if err != nil {
		s.report(ctx, err)
		return
	}
	status = strings.ToLower(strings.TrimSpace(status))
	if len(tasks) == 0 {
		s.p.Printf("No tasks with the status '%s'.\n", status)
		return
	}
	s.p.Printf("Total tasks with status '%s': %d\n", status, len(tasks))
	renderTasks(s.p.out, tasks)
}

func (s *TaskShell) reportTask(ctx context.Context, id int, err error) {
	if errors.Is(err, core.ErrNotFound) {
		s.p.Printf("Task ID %d not found.\n", id)
		return
	}
	s.report(ctx, err)
}

func (s *TaskShell) report(ctx context.Context, err error) {
	s.p.Println(describe(err))
	if !isUserError(err) {
		s.logger.ErrorContext(ctx, "Task operation failed", "error", err)
	}
}

func statusChoices() string {
	names := make([]string, 0, len(core.Statuses()))
	for _, st := range core.Statuses() {
		names = append(names, fmt.Sprintf("'%s'", st))
	}
	return strings.Join(names, ", ")
}
