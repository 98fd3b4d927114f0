package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/focusflow/internal/client/models"
	"github.com/dmitrijs2005/focusflow/internal/client/store"
)

// AddTask prompts for title, description and priority and stores the task
// in the todo column.
func (a *App) AddTask(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}

	description, err := getMultiline(a.reader, "Enter description", a.out)
	if err != nil {
		return err
	}

	priority, err := getSimpleText(a.reader, "Enter priority (low/medium/high, empty for medium)", a.out)
	if err != nil {
		return err
	}

	id := a.store.AddTask(store.NewTask{
		Title:       title,
		Description: description,
		Priority:    models.TaskPriority(priority),
	})
	fmt.Fprintln(a.out, "Created task", id)
	return nil
}

func (a *App) ListTasks(ctx context.Context) error {
	tasks := a.store.Tasks()
	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "No tasks.")
		return nil
	}
	for _, t := range tasks {
		fmt.Fprintf(a.out, "%s  [%s/%s] %s\n", t.ID, t.Status, t.Priority, t.Title)
	}
	return nil
}

func (a *App) MoveTask(ctx context.Context, id, status string) error {
	switch models.TaskStatus(status) {
	case models.TaskStatusTodo, models.TaskStatusDoing, models.TaskStatusDone:
	default:
		fmt.Fprintln(a.out, "Unknown status:", status)
		return nil
	}
	a.store.MoveTask(id, models.TaskStatus(status))
	fmt.Fprintln(a.out, "Moved.")
	return nil
}

func (a *App) DeleteTask(ctx context.Context, id string) error {
	a.store.DeleteTask(id)
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}
