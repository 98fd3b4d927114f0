// Package export converts the full domain state to and from the versioned
// JSON backup document. It is the portability mechanism behind both the
// manual export file and the cloud backup artifact.
package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/focusflow/internal/client/models"
	"github.com/dmitrijs2005/focusflow/internal/client/store"
)

// SchemaVersion identifies the export document layout. Readers must accept
// documents with unknown extra fields so the format stays forward-readable.
const SchemaVersion = "1.0"

// Document is the top-level export shape.
type Document struct {
	Notes            []models.Note            `json:"notes"`
	Tasks            []models.Task            `json:"tasks"`
	Habits           []models.Habit           `json:"habits"`
	PomodoroSessions []models.PomodoroSession `json:"pomodoroSessions"`
	ExportDate       time.Time                `json:"exportDate"`
	Version          string                   `json:"version"`
}

// Filename returns the conventional export file name for the given day,
// e.g. "focusflow-backup-2026-08-30.json".
func Filename(t time.Time) string {
	return fmt.Sprintf("focusflow-backup-%s.json", t.Format("2006-01-02"))
}

// ExportAll serializes the current domain state as indented JSON.
func ExportAll(s *store.Store) ([]byte, error) {
	doc := Document{
		Notes:            s.Notes(),
		Tasks:            s.Tasks(),
		Habits:           s.Habits(),
		PomodoroSessions: s.PomodoroSessions(),
		ExportDate:       time.Now().UTC(),
		Version:          SchemaVersion,
	}
	return json.MarshalIndent(doc, "", "  ")
}

// ImportAll validates data and, on success, replaces the entire domain
// state in one step. It returns false (leaving the store untouched) when
// the JSON does not parse, when any of the notes/tasks/habits containers is
// missing or not an array, or when an element inside them does not look
// like its entity (missing id). There is no partial apply.
func ImportAll(s *store.Store, data []byte) bool {
	// Presence check first: a struct decode would silently default missing
	// containers to empty slices.
	var shape map[string]json.RawMessage
	if err := json.Unmarshal(data, &shape); err != nil {
		return false
	}
	for _, key := range []string{"notes", "tasks", "habits"} {
		raw, ok := shape[key]
		if !ok || !isJSONArray(raw) {
			return false
		}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return false
	}

	for _, n := range doc.Notes {
		if n.ID == "" {
			return false
		}
	}
	for _, t := range doc.Tasks {
		if t.ID == "" {
			return false
		}
	}
	for _, h := range doc.Habits {
		if h.ID == "" {
			return false
		}
	}

	s.ReplaceAll(doc.Notes, doc.Tasks, doc.Habits, doc.PomodoroSessions)
	return true
}

func isJSONArray(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return b == '['
		}
	}
	return false
}
