package export

import (
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/focusflow/internal/client/models"
	"github.com/dmitrijs2005/focusflow/internal/client/store"
	"github.com/dmitrijs2005/focusflow/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	})))
	s, err := store.New(store.NewMemorySnapshotter(), log)
	require.NoError(t, err)
	return s
}

func TestExportAll_DocumentShape(t *testing.T) {
	s := newTestStore(t)
	s.AddNote(store.NewNote{Title: "A", Content: "B", Tags: []string{"x"}})

	data, err := ExportAll(s)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	for _, key := range []string{"notes", "tasks", "habits", "pomodoroSessions", "exportDate", "version"} {
		assert.Contains(t, doc, key)
	}
	assert.Equal(t, SchemaVersion, doc["version"])
}

func TestRoundTrip(t *testing.T) {
	src := newTestStore(t)
	noteID := src.AddNote(store.NewNote{Title: "A", Content: "B", Tags: []string{"x"}})
	src.AddTask(store.NewTask{Title: "T", Description: "D", Status: models.TaskStatusDoing, Priority: models.TaskPriorityHigh})
	habitID := src.AddHabit(store.NewHabit{Name: "H", Color: "#fff"})
	src.ToggleHabitDate(habitID, "2026-08-29")

	data, err := ExportAll(src)
	require.NoError(t, err)

	dst := newTestStore(t)
	require.True(t, ImportAll(dst, data))

	// ids are preserved, field values identical
	note, ok := dst.NoteByID(noteID)
	require.True(t, ok)
	assert.Equal(t, "A", note.Title)
	assert.Equal(t, "B", note.Content)
	assert.Equal(t, []string{"x"}, note.Tags)

	require.Len(t, dst.Tasks(), 1)
	assert.Equal(t, models.TaskStatusDoing, dst.Tasks()[0].Status)

	habit, ok := dst.HabitByID(habitID)
	require.True(t, ok)
	assert.Equal(t, []string{"2026-08-29"}, habit.CompletedDates)
}

func TestImportAll_ReplacesExistingState(t *testing.T) {
	src := newTestStore(t)
	src.AddNote(store.NewNote{Title: "only note"})
	data, err := ExportAll(src)
	require.NoError(t, err)

	dst := newTestStore(t)
	dst.AddNote(store.NewNote{Title: "stale 1"})
	dst.AddNote(store.NewNote{Title: "stale 2"})
	dst.AddTask(store.NewTask{Title: "stale task"})

	require.True(t, ImportAll(dst, data))

	require.Len(t, dst.Notes(), 1)
	assert.Equal(t, "only note", dst.Notes()[0].Title)
	assert.Empty(t, dst.Tasks(), "import is a replace, not a merge")
}

func TestImportAll_RejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not json", input: "{oops"},
		{name: "missing tasks and habits", input: `{"notes": []}`},
		{name: "missing habits", input: `{"notes": [], "tasks": []}`},
		{name: "notes not an array", input: `{"notes": {}, "tasks": [], "habits": []}`},
		{name: "scalar elements", input: `{"notes": [1,2,3], "tasks": [], "habits": []}`},
		{name: "note without id", input: `{"notes": [{"title":"x"}], "tasks": [], "habits": []}`},
		{name: "empty body", input: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			keep := s.AddNote(store.NewNote{Title: "keep me"})

			assert.False(t, ImportAll(s, []byte(tt.input)))

			// the store must be untouched on rejection
			note, ok := s.NoteByID(keep)
			require.True(t, ok)
			assert.Equal(t, "keep me", note.Title)
		})
	}
}

func TestImportAll_MissingSessionsDefaultsEmpty(t *testing.T) {
	s := newTestStore(t)
	ok := ImportAll(s, []byte(`{"notes": [], "tasks": [], "habits": []}`))
	require.True(t, ok)
	assert.Empty(t, s.PomodoroSessions())
}

func TestImportAll_IgnoresUnknownFields(t *testing.T) {
	s := newTestStore(t)
	doc := `{"notes": [], "tasks": [], "habits": [], "futureField": {"a": 1}}`
	assert.True(t, ImportAll(s, []byte(doc)), "unknown extra fields must not break import")
}

func TestFilename(t *testing.T) {
	ts := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "focusflow-backup-2026-08-30.json", Filename(ts))
}
