package store

import (
	"testing"

	"github.com/dmitrijs2005/focusflow/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertRemoteNote_InsertAndOverwrite(t *testing.T) {
	s := newTestStore(t)

	s.UpsertRemoteNote(models.Note{ID: "srv-1", Title: "from server", Version: 3})
	note, ok := s.NoteByID("srv-1")
	require.True(t, ok)
	assert.Equal(t, int64(3), note.Version)

	s.UpsertRemoteNote(models.Note{ID: "srv-1", Title: "newer", Version: 4})
	note, _ = s.NoteByID("srv-1")
	assert.Equal(t, "newer", note.Title)
	assert.Equal(t, int64(4), note.Version)
	assert.Len(t, s.Notes(), 1)
}

func TestRemoveRemote_ClearsTombstone(t *testing.T) {
	s := newTestStore(t)
	id := s.AddTask(NewTask{Title: "t"})
	s.DeleteTask(id)
	require.Equal(t, []string{id}, s.DeletedIDs(models.EntityTypeTask))

	s.RemoveRemote(models.EntityTypeTask, id)

	assert.Empty(t, s.DeletedIDs(models.EntityTypeTask))
	assert.Empty(t, s.Tasks())
}

func TestRemoveRemote_DeletesEntityWithoutTombstone(t *testing.T) {
	s := newTestStore(t)
	id := s.AddHabit(NewHabit{Name: "h"})

	s.RemoveRemote(models.EntityTypeHabit, id)

	assert.Empty(t, s.Habits())
	assert.Empty(t, s.DeletedIDs(models.EntityTypeHabit), "server-driven removal is already acknowledged")
}
