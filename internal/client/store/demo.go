package store

import (
	"time"

	"github.com/dmitrijs2005/focusflow/internal/client/models"
)

// LoadDemoData seeds the store with a small sample set for first-run
// walkthroughs. Existing data is kept.
func (s *Store) LoadDemoData() {
	s.AddNote(NewNote{
		Title:   "Welcome to FocusFlow",
		Content: "# Getting started\n\nNotes support **Markdown**. Try encrypting this one from the note menu.",
		Tags:    []string{"welcome"},
	})
	s.AddTask(NewTask{
		Title:       "Review the weekly plan",
		Description: "Move finished items to Done.",
		Status:      models.TaskStatusTodo,
		Priority:    models.TaskPriorityHigh,
	})

	id := s.AddHabit(NewHabit{Name: "Morning walk", Color: "#4caf50"})
	s.ToggleHabitDate(id, time.Now().Format("2006-01-02"))
}
