// Package models defines the FocusFlow domain entities and the transient
// structures exchanged with the sync and backup endpoints.
package models

import "time"

// TaskStatus is a Kanban column. Transitions are unrestricted.
type TaskStatus string

const (
	TaskStatusTodo  TaskStatus = "todo"
	TaskStatusDoing TaskStatus = "doing"
	TaskStatusDone  TaskStatus = "done"
)

// TaskPriority is a display ordering hint.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// EntityType names an entity kind on the sync wire.
type EntityType string

const (
	EntityTypeNote  EntityType = "Note"
	EntityTypeTask  EntityType = "Task"
	EntityTypeHabit EntityType = "Habit"
)

// Note is a Markdown note. When IsEncrypted is true, Content holds the
// dot-joined ciphertext produced by cryptox.EncryptToString and must never
// be rendered as Markdown.
type Note struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Tags        []string  `json:"tags"`
	IsEncrypted bool      `json:"isEncrypted,omitempty"`
	Version     int64     `json:"version,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Task is a Kanban board card.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	Version     int64        `json:"version,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Habit tracks completion of a recurring activity. CompletedDates holds
// calendar days in "YYYY-MM-DD" form; Streak is informational and is not
// recomputed from CompletedDates.
type Habit struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Color          string    `json:"color"`
	Streak         int       `json:"streak"`
	CompletedDates []string  `json:"completedDates"`
	Version        int64     `json:"version,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// PomodoroSessionType distinguishes work intervals from breaks.
type PomodoroSessionType string

const (
	PomodoroWork  PomodoroSessionType = "work"
	PomodoroBreak PomodoroSessionType = "break"
)

// PomodoroSession is one completed or in-progress timer interval.
type PomodoroSession struct {
	ID        string              `json:"id"`
	Type      PomodoroSessionType `json:"type"`
	Duration  int                 `json:"duration"`
	StartTime time.Time           `json:"startTime"`
	EndTime   *time.Time          `json:"endTime,omitempty"`
	Completed bool                `json:"completed"`
}

// BackupDescriptor mirrors the remote blob store's listing entry. It is
// owned by the remote side; the client only caches it.
type BackupDescriptor struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Size         string `json:"size,omitempty"`
	CreatedTime  string `json:"created_time,omitempty"`
	ModifiedTime string `json:"modified_time,omitempty"`
}
