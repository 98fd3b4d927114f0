// Package store holds the single source of truth for all FocusFlow entities.
//
// Every mutation is applied in memory and synchronously mirrored to a local
// snapshot. Other components (backup, sync) read copies and write back only
// through the command methods here, so the store stays the sole writer of
// its state.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/focusflow/internal/client/models"
	"github.com/dmitrijs2005/focusflow/internal/common"
	"github.com/dmitrijs2005/focusflow/internal/cryptox"
	"github.com/dmitrijs2005/focusflow/internal/logging"
	"github.com/google/uuid"
)

// Store owns the domain state. All methods are safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	state State
	snap  Snapshotter
	log   logging.Logger

	// test seams
	now   func() time.Time
	newID func() string
}

func New(snap Snapshotter, log logging.Logger) (*Store, error) {
	s := &Store{
		state: newState(),
		snap:  snap,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}

	data, ok, err := snap.Load()
	if err != nil {
		return nil, err
	}
	if ok {
		st, err := unmarshalState(data)
		if err != nil {
			// A snapshot that fails to parse is discarded rather than
			// crashing the app; the state restarts empty.
			log.Warn(context.Background(), "discarding unreadable snapshot", "error", err)
		} else {
			s.state = st
		}
	}

	return s, nil
}

// persist rewrites the snapshot. Must be called with mu held. Snapshot
// failures are logged and do not fail the mutation: memory remains
// authoritative and the next successful write catches up.
func (s *Store) persist() {
	data, err := marshalState(&s.state)
	if err != nil {
		s.log.Error(context.Background(), "snapshot marshal failed", "error", err)
		return
	}
	if err := s.snap.Save(data); err != nil {
		s.log.Error(context.Background(), "snapshot save failed", "error", err)
	}
}

// ---- Notes ----

// NewNote is the caller-supplied part of a note; id and timestamps are
// assigned by the store.
type NewNote struct {
	Title   string
	Content string
	Tags    []string
}

func (s *Store) AddNote(n NewNote) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	note := models.Note{
		ID:        s.newID(),
		Title:     n.Title,
		Content:   n.Content,
		Tags:      append([]string{}, n.Tags...),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.state.Notes = append(s.state.Notes, note)
	s.persist()
	return note.ID
}

// NoteUpdate is a partial patch; nil fields are left unchanged.
type NoteUpdate struct {
	Title   *string
	Content *string
	Tags    *[]string
}

// UpdateNote merges the patch into the note and refreshes UpdatedAt.
// Updating an absent id is a no-op.
func (s *Store) UpdateNote(id string, u NoteUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Notes {
		if s.state.Notes[i].ID != id {
			continue
		}
		if u.Title != nil {
			s.state.Notes[i].Title = *u.Title
		}
		if u.Content != nil {
			s.state.Notes[i].Content = *u.Content
		}
		if u.Tags != nil {
			s.state.Notes[i].Tags = append([]string{}, (*u.Tags)...)
		}
		s.state.Notes[i].UpdatedAt = s.now()
		s.persist()
		return
	}
}

// DeleteNote removes the note and records a tombstone for the next sync
// cycle. Deleting an absent id is a no-op.
func (s *Store) DeleteNote(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Notes {
		if s.state.Notes[i].ID == id {
			s.state.Notes = append(s.state.Notes[:i], s.state.Notes[i+1:]...)
			s.state.DeletedNotes = appendUnique(s.state.DeletedNotes, id)
			s.persist()
			return
		}
	}
}

// EncryptNote replaces the note's content with its encrypted form and sets
// IsEncrypted. Calling it on an already-encrypted note is a no-op, which
// protects against double encryption and thereby password loss.
func (s *Store) EncryptNote(id, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Notes {
		if s.state.Notes[i].ID != id {
			continue
		}
		if s.state.Notes[i].IsEncrypted {
			return nil
		}
		encrypted, err := cryptox.EncryptToString(s.state.Notes[i].Content, password)
		if err != nil {
			return err
		}
		s.state.Notes[i].Content = encrypted
		s.state.Notes[i].IsEncrypted = true
		s.state.Notes[i].UpdatedAt = s.now()
		s.persist()
		return nil
	}
	return common.ErrorNotFound
}

// DecryptNote attempts to restore the note's plaintext. It returns true on
// success; on wrong password or corrupted content it returns false and the
// note is left untouched. false is the only failure signal callers get.
func (s *Store) DecryptNote(id, password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Notes {
		if s.state.Notes[i].ID != id {
			continue
		}
		if !s.state.Notes[i].IsEncrypted {
			return false
		}
		plaintext, err := cryptox.DecryptFromString(s.state.Notes[i].Content, password)
		if err != nil {
			return false
		}
		s.state.Notes[i].Content = plaintext
		s.state.Notes[i].IsEncrypted = false
		s.state.Notes[i].UpdatedAt = s.now()
		s.persist()
		return true
	}
	return false
}

// ---- Tasks ----

type NewTask struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
}

func (s *Store) AddTask(t NewTask) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.Status == "" {
		t.Status = models.TaskStatusTodo
	}
	if t.Priority == "" {
		t.Priority = models.TaskPriorityMedium
	}

	now := s.now()
	task := models.Task{
		ID:          s.newID(),
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.state.Tasks = append(s.state.Tasks, task)
	s.persist()
	return task.ID
}

type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	Priority    *models.TaskPriority
}

func (s *Store) UpdateTask(id string, u TaskUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Tasks {
		if s.state.Tasks[i].ID != id {
			continue
		}
		if u.Title != nil {
			s.state.Tasks[i].Title = *u.Title
		}
		if u.Description != nil {
			s.state.Tasks[i].Description = *u.Description
		}
		if u.Status != nil {
			s.state.Tasks[i].Status = *u.Status
		}
		if u.Priority != nil {
			s.state.Tasks[i].Priority = *u.Priority
		}
		s.state.Tasks[i].UpdatedAt = s.now()
		s.persist()
		return
	}
}

// MoveTask sets the task's Kanban column. Any transition is allowed.
func (s *Store) MoveTask(id string, status models.TaskStatus) {
	s.UpdateTask(id, TaskUpdate{Status: &status})
}

func (s *Store) DeleteTask(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Tasks {
		if s.state.Tasks[i].ID == id {
			s.state.Tasks = append(s.state.Tasks[:i], s.state.Tasks[i+1:]...)
			s.state.DeletedTasks = appendUnique(s.state.DeletedTasks, id)
			s.persist()
			return
		}
	}
}

// ---- Habits ----

type NewHabit struct {
	Name  string
	Color string
}

func (s *Store) AddHabit(h NewHabit) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	habit := models.Habit{
		ID:             s.newID(),
		Name:           h.Name,
		Color:          h.Color,
		CompletedDates: []string{},
		Version:        1,
		CreatedAt:      s.now(),
	}
	s.state.Habits = append(s.state.Habits, habit)
	s.persist()
	return habit.ID
}

type HabitUpdate struct {
	Name   *string
	Color  *string
	Streak *int
}

func (s *Store) UpdateHabit(id string, u HabitUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Habits {
		if s.state.Habits[i].ID != id {
			continue
		}
		if u.Name != nil {
			s.state.Habits[i].Name = *u.Name
		}
		if u.Color != nil {
			s.state.Habits[i].Color = *u.Color
		}
		if u.Streak != nil && *u.Streak >= 0 {
			s.state.Habits[i].Streak = *u.Streak
		}
		s.persist()
		return
	}
}

func (s *Store) DeleteHabit(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Habits {
		if s.state.Habits[i].ID == id {
			s.state.Habits = append(s.state.Habits[:i], s.state.Habits[i+1:]...)
			s.state.DeletedHabits = appendUnique(s.state.DeletedHabits, id)
			s.persist()
			return
		}
	}
}

// ToggleHabitDate flips membership of dateKey ("YYYY-MM-DD") in the habit's
// completed set. Toggling the same date twice restores the original set.
func (s *Store) ToggleHabitDate(id, dateKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Habits {
		if s.state.Habits[i].ID != id {
			continue
		}
		// rebuilt rather than edited in place: copies handed out by the
		// accessors share the old backing array
		dates := s.state.Habits[i].CompletedDates
		next := make([]string, 0, len(dates)+1)
		removed := false
		for _, d := range dates {
			if d == dateKey {
				removed = true
				continue
			}
			next = append(next, d)
		}
		if !removed {
			next = append(next, dateKey)
		}
		s.state.Habits[i].CompletedDates = next
		s.persist()
		return
	}
}

// ---- Read access ----

// Notes returns a copy of all notes in insertion order. Nested slices are
// copied too, so the result stays valid outside the lock.
func (s *Store) Notes() []models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Note, len(s.state.Notes))
	for i, n := range s.state.Notes {
		out[i] = cloneNote(n)
	}
	return out
}

func (s *Store) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Task{}, s.state.Tasks...)
}

func (s *Store) Habits() []models.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Habit, len(s.state.Habits))
	for i, h := range s.state.Habits {
		out[i] = cloneHabit(h)
	}
	return out
}

func (s *Store) PomodoroSessions() []models.PomodoroSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.PomodoroSession{}, s.state.PomodoroSessions...)
}

func (s *Store) NoteByID(id string) (models.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.state.Notes {
		if n.ID == id {
			return cloneNote(n), true
		}
	}
	return models.Note{}, false
}

func (s *Store) TaskByID(id string) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.state.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

func (s *Store) HabitByID(id string) (models.Habit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.state.Habits {
		if h.ID == id {
			return cloneHabit(h), true
		}
	}
	return models.Habit{}, false
}

// DeletedIDs returns the pending tombstones for one entity kind.
func (s *Store) DeletedIDs(kind models.EntityType) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch kind {
	case models.EntityTypeNote:
		return append([]string{}, s.state.DeletedNotes...)
	case models.EntityTypeTask:
		return append([]string{}, s.state.DeletedTasks...)
	case models.EntityTypeHabit:
		return append([]string{}, s.state.DeletedHabits...)
	}
	return nil
}

// ---- Ephemeral UI state ----

func (s *Store) SetCurrentPage(page string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentPage = page
	s.persist()
}

func (s *Store) CurrentPage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CurrentPage
}

// ---- Bulk operations ----

// ReplaceAll swaps the full entity state in one step. Used by the
// import path; the previous state is discarded.
func (s *Store) ReplaceAll(notes []models.Note, tasks []models.Task, habits []models.Habit, sessions []models.PomodoroSession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Notes = append([]models.Note{}, notes...)
	s.state.Tasks = append([]models.Task{}, tasks...)
	s.state.Habits = append([]models.Habit{}, habits...)
	if sessions == nil {
		sessions = []models.PomodoroSession{}
	}
	s.state.PomodoroSessions = append([]models.PomodoroSession{}, sessions...)
	s.persist()
}

// ClearAll drops every entity and resets search state.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Notes = []models.Note{}
	s.state.Tasks = []models.Task{}
	s.state.Habits = []models.Habit{}
	s.state.PomodoroSessions = []models.PomodoroSession{}
	s.state.DeletedNotes = nil
	s.state.DeletedTasks = nil
	s.state.DeletedHabits = nil
	s.state.SearchQuery = ""
	s.persist()
}

func cloneNote(n models.Note) models.Note {
	n.Tags = append([]string{}, n.Tags...)
	return n
}

func cloneHabit(h models.Habit) models.Habit {
	h.CompletedDates = append([]string{}, h.CompletedDates...)
	return h
}

func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
