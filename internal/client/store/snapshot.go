package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/focusflow/internal/client/models"
)

// DefaultSnapshotFile is the local persistence key, the file equivalent of
// the browser storage slot the app state lives under.
const DefaultSnapshotFile = "focusflow-storage.json"

// State is the complete persisted document: all entities plus the ephemeral
// UI-adjacent fields that survive a restart. It is rewritten wholesale on
// every mutation; there is no incremental log.
type State struct {
	Notes            []models.Note            `json:"notes"`
	Tasks            []models.Task            `json:"tasks"`
	Habits           []models.Habit           `json:"habits"`
	PomodoroSessions []models.PomodoroSession `json:"pomodoroSessions"`

	CurrentPage string        `json:"currentPage"`
	SearchQuery string        `json:"searchQuery"`
	Pomodoro    PomodoroTimer `json:"pomodoroTimer"`

	// Tombstones for locally deleted entities, kept until the server
	// acknowledges the deletion during sync.
	DeletedNotes  []string `json:"deletedNotes,omitempty"`
	DeletedTasks  []string `json:"deletedTasks,omitempty"`
	DeletedHabits []string `json:"deletedHabits,omitempty"`
}

func newState() State {
	return State{
		Notes:            []models.Note{},
		Tasks:            []models.Task{},
		Habits:           []models.Habit{},
		PomodoroSessions: []models.PomodoroSession{},
		CurrentPage:      "dashboard",
		Pomodoro:         defaultPomodoroTimer(),
	}
}

// Snapshotter persists the serialized State. Implementations must treat a
// missing snapshot as a normal first-run condition, not an error.
type Snapshotter interface {
	// Save replaces the stored snapshot.
	Save(data []byte) error

	// Load returns the stored snapshot. ok is false when none exists yet.
	Load() (data []byte, ok bool, err error)
}

// FileSnapshotter stores the snapshot as a single JSON file.
type FileSnapshotter struct {
	path string
}

func NewFileSnapshotter(path string) *FileSnapshotter {
	if path == "" {
		path = DefaultSnapshotFile
	}
	return &FileSnapshotter{path: path}
}

// Save writes to a sibling temp file and renames it over the target so a
// crash mid-write never leaves a truncated snapshot.
func (f *FileSnapshotter) Save(data []byte) error {
	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".focusflow-*")
	if err != nil {
		return fmt.Errorf("snapshot temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("snapshot write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("snapshot close: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("snapshot rename: %w", err)
	}
	return nil
}

func (f *FileSnapshotter) Load() ([]byte, bool, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("snapshot read: %w", err)
	}
	return data, true, nil
}

// MemorySnapshotter keeps the snapshot in memory. Used in tests and by
// callers that opt out of persistence.
type MemorySnapshotter struct {
	data []byte
}

func NewMemorySnapshotter() *MemorySnapshotter { return &MemorySnapshotter{} }

func (m *MemorySnapshotter) Save(data []byte) error {
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *MemorySnapshotter) Load() ([]byte, bool, error) {
	if m.data == nil {
		return nil, false, nil
	}
	return m.data, true, nil
}

func marshalState(s *State) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

func unmarshalState(data []byte) (State, error) {
	s := newState()
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, err
	}
	return s, nil
}
