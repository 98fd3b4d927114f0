package store

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/focusflow/internal/client/models"
	"github.com/dmitrijs2005/focusflow/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(NewMemorySnapshotter(), testLogger())
	require.NoError(t, err)
	return s
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	})))
}

func TestAddNote_AssignsIDAndTimestamps(t *testing.T) {
	s := newTestStore(t)

	id := s.AddNote(NewNote{Title: "A", Content: "B", Tags: []string{"x"}})
	require.NotEmpty(t, id)

	note, ok := s.NoteByID(id)
	require.True(t, ok)
	assert.Equal(t, "A", note.Title)
	assert.Equal(t, "B", note.Content)
	assert.Equal(t, []string{"x"}, note.Tags)
	assert.Equal(t, int64(1), note.Version)
	assert.False(t, note.CreatedAt.IsZero())
	assert.Equal(t, note.CreatedAt, note.UpdatedAt)
}

func TestUpdateNote_PartialMerge(t *testing.T) {
	s := newTestStore(t)
	id := s.AddNote(NewNote{Title: "A", Content: "B", Tags: []string{"x"}})

	title := "A2"
	s.UpdateNote(id, NoteUpdate{Title: &title})

	note, _ := s.NoteByID(id)
	assert.Equal(t, "A2", note.Title)
	assert.Equal(t, "B", note.Content, "unset fields must survive")
	assert.Equal(t, []string{"x"}, note.Tags)
}

func TestUpdateNote_AbsentIDIsNoop(t *testing.T) {
	s := newTestStore(t)
	title := "x"
	s.UpdateNote("does-not-exist", NoteUpdate{Title: &title})
	assert.Empty(t, s.Notes())
}

func TestDeleteNote_RecordsTombstone(t *testing.T) {
	s := newTestStore(t)
	id := s.AddNote(NewNote{Title: "A"})

	s.DeleteNote(id)

	assert.Empty(t, s.Notes())
	assert.Equal(t, []string{id}, s.DeletedIDs(models.EntityTypeNote))

	// deleting again is a no-op and does not duplicate the tombstone
	s.DeleteNote(id)
	assert.Equal(t, []string{id}, s.DeletedIDs(models.EntityTypeNote))
}

func TestEncryptedNoteLifecycle(t *testing.T) {
	s := newTestStore(t)
	id := s.AddNote(NewNote{Title: "n", Content: "secret"})

	require.NoError(t, s.EncryptNote(id, "pw1"))

	note, _ := s.NoteByID(id)
	assert.True(t, note.IsEncrypted)
	assert.NotEqual(t, "secret", note.Content)
	assert.Len(t, strings.Split(note.Content, "."), 3)

	// wrong password: false, untouched
	assert.False(t, s.DecryptNote(id, "wrong"))
	after, _ := s.NoteByID(id)
	assert.True(t, after.IsEncrypted)
	assert.Equal(t, note.Content, after.Content)

	// right password restores plaintext
	assert.True(t, s.DecryptNote(id, "pw1"))
	plain, _ := s.NoteByID(id)
	assert.False(t, plain.IsEncrypted)
	assert.Equal(t, "secret", plain.Content)
}

func TestEncryptNote_AlreadyEncryptedIsNoop(t *testing.T) {
	s := newTestStore(t)
	id := s.AddNote(NewNote{Content: "secret"})

	require.NoError(t, s.EncryptNote(id, "pw1"))
	first, _ := s.NoteByID(id)

	require.NoError(t, s.EncryptNote(id, "pw2"))
	second, _ := s.NoteByID(id)

	assert.Equal(t, first.Content, second.Content, "double encryption must not change content")
	assert.True(t, s.DecryptNote(id, "pw1"))
}

func TestDecryptNote_PlaintextNoteReturnsFalse(t *testing.T) {
	s := newTestStore(t)
	id := s.AddNote(NewNote{Content: "plain"})
	assert.False(t, s.DecryptNote(id, "pw"))
}

func TestTaskStatusTransitionsUnrestricted(t *testing.T) {
	s := newTestStore(t)
	id := s.AddTask(NewTask{Title: "t", Status: models.TaskStatusDone})

	s.MoveTask(id, models.TaskStatusTodo)
	task, _ := s.TaskByID(id)
	assert.Equal(t, models.TaskStatusTodo, task.Status)

	s.MoveTask(id, models.TaskStatusDone)
	task, _ = s.TaskByID(id)
	assert.Equal(t, models.TaskStatusDone, task.Status)
}

func TestAddTask_Defaults(t *testing.T) {
	s := newTestStore(t)
	id := s.AddTask(NewTask{Title: "t"})
	task, _ := s.TaskByID(id)
	assert.Equal(t, models.TaskStatusTodo, task.Status)
	assert.Equal(t, models.TaskPriorityMedium, task.Priority)
}

func TestToggleHabitDate_Idempotent(t *testing.T) {
	s := newTestStore(t)
	id := s.AddHabit(NewHabit{Name: "h"})

	s.ToggleHabitDate(id, "2026-08-30")
	habit, _ := s.HabitByID(id)
	assert.Equal(t, []string{"2026-08-30"}, habit.CompletedDates)

	s.ToggleHabitDate(id, "2026-08-30")
	habit, _ = s.HabitByID(id)
	assert.Empty(t, habit.CompletedDates, "toggling twice must restore the original set")
}

func TestHabits_CopiesAreIsolatedFromToggle(t *testing.T) {
	s := newTestStore(t)
	id := s.AddHabit(NewHabit{Name: "read", Color: "#0f0"})
	s.ToggleHabitDate(id, "2026-08-28")
	s.ToggleHabitDate(id, "2026-08-29")

	snapshot := s.Habits()
	require.Len(t, snapshot, 1)
	before := append([]string{}, snapshot[0].CompletedDates...)

	s.ToggleHabitDate(id, "2026-08-28") // removal shifts the live set
	s.ToggleHabitDate(id, "2026-08-30")

	assert.Equal(t, before, snapshot[0].CompletedDates, "handed-out copies must not see later mutations")
}

func TestHabits_ConcurrentReadAndToggle(t *testing.T) {
	s := newTestStore(t)
	id := s.AddHabit(NewHabit{Name: "run", Color: "#00f"})
	s.ToggleHabitDate(id, "2026-08-01")
	s.ToggleHabitDate(id, "2026-08-02")

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			s.ToggleHabitDate(id, "2026-08-01")
		}
	}()
	for i := 0; i < 200; i++ {
		for _, h := range s.Habits() {
			for _, d := range h.CompletedDates {
				_ = d
			}
		}
	}
	<-done
}

func TestUpdateHabit_RejectsNegativeStreak(t *testing.T) {
	s := newTestStore(t)
	id := s.AddHabit(NewHabit{Name: "h"})

	up := 3
	s.UpdateHabit(id, HabitUpdate{Streak: &up})
	down := -1
	s.UpdateHabit(id, HabitUpdate{Streak: &down})

	habit, _ := s.HabitByID(id)
	assert.Equal(t, 3, habit.Streak)
}

func TestSearch(t *testing.T) {
	s := newTestStore(t)
	s.AddNote(NewNote{Title: "Groceries", Content: "milk, eggs", Tags: []string{"shopping"}})
	s.AddNote(NewNote{Title: "Meeting notes", Content: "quarterly review"})
	s.AddTask(NewTask{Title: "Buy MILK", Description: "2 liters"})

	t.Run("matches title, content and tags case-insensitively", func(t *testing.T) {
		res := s.Search("milk")
		assert.Len(t, res.Notes, 1)
		assert.Len(t, res.Tasks, 1)

		res = s.Search("SHOPPING")
		assert.Len(t, res.Notes, 1)
	})

	t.Run("empty query yields empty result", func(t *testing.T) {
		res := s.Search("")
		assert.Empty(t, res.Notes)
		assert.Empty(t, res.Tasks)

		res = s.Search("   ")
		assert.Empty(t, res.Notes)
		assert.Empty(t, res.Tasks)
	})
}

func TestSearch_PersistsQuery(t *testing.T) {
	snap := NewMemorySnapshotter()
	s, err := New(snap, testLogger())
	require.NoError(t, err)

	s.Search("focus")

	data, ok, err := snap.Load()
	require.NoError(t, err)
	require.True(t, ok)

	st, err := unmarshalState(data)
	require.NoError(t, err)
	assert.Equal(t, "focus", st.SearchQuery)
}

func TestPersistence_SurvivesReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")

	s1, err := New(NewFileSnapshotter(path), testLogger())
	require.NoError(t, err)
	id := s1.AddNote(NewNote{Title: "persisted", Content: "c"})
	s1.AddTask(NewTask{Title: "t"})

	s2, err := New(NewFileSnapshotter(path), testLogger())
	require.NoError(t, err)

	note, ok := s2.NoteByID(id)
	require.True(t, ok)
	assert.Equal(t, "persisted", note.Title)
	assert.Len(t, s2.Tasks(), 1)
}

func TestPersistence_SnapshotIsIndentedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")

	s, err := New(NewFileSnapshotter(path), testLogger())
	require.NoError(t, err)
	s.AddNote(NewNote{Title: "x"})

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "notes")
	assert.Contains(t, doc, "pomodoroTimer")
}

func TestNew_DiscardsCorruptSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s, err := New(NewFileSnapshotter(path), testLogger())
	require.NoError(t, err)
	assert.Empty(t, s.Notes())
}

func TestPomodoro_TickCompletesSession(t *testing.T) {
	s := newTestStore(t)

	work := 1 // minute
	s.UpdatePomodoroSettings(PomodoroSettings{WorkDuration: &work})
	s.StartPomodoro()

	for i := 0; i < 60; i++ {
		s.TickPomodoro()
	}

	p := s.Pomodoro()
	assert.Equal(t, models.PomodoroBreak, p.CurrentSession)
	assert.False(t, p.IsActive, "auto-start breaks is off by default")
	assert.Equal(t, p.BreakDuration, p.TimeLeft)

	sessions := s.PomodoroSessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, models.PomodoroWork, sessions[0].Type)
	assert.True(t, sessions[0].Completed)
	require.NotNil(t, sessions[0].EndTime)
	assert.WithinDuration(t, time.Now(), *sessions[0].EndTime, time.Minute)
}

func TestPomodoro_AutoStartBreaks(t *testing.T) {
	s := newTestStore(t)

	work := 1
	auto := true
	s.UpdatePomodoroSettings(PomodoroSettings{WorkDuration: &work, AutoStartBreaks: &auto})
	s.StartPomodoro()

	for i := 0; i < 60; i++ {
		s.TickPomodoro()
	}

	assert.True(t, s.Pomodoro().IsActive)
}

func TestClearAll(t *testing.T) {
	s := newTestStore(t)
	s.LoadDemoData()
	require.NotEmpty(t, s.Notes())

	id := s.AddNote(NewNote{Title: "x"})
	s.DeleteNote(id)
	require.NotEmpty(t, s.DeletedIDs(models.EntityTypeNote))

	s.ClearAll()

	assert.Empty(t, s.Notes())
	assert.Empty(t, s.Tasks())
	assert.Empty(t, s.Habits())
	assert.Empty(t, s.DeletedIDs(models.EntityTypeNote))
}
