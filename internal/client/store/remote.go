package store

import "github.com/dmitrijs2005/focusflow/internal/client/models"

// Remote-apply commands used exclusively by the sync reconciler. The server
// is authoritative for both field values and versions on a successful
// outcome, so these overwrite rather than merge.

// UpsertRemoteNote overwrites the note with the server's copy, or inserts it
// when no local match exists. The note's Version must already carry the
// server-assigned value.
func (s *Store) UpsertRemoteNote(n models.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Notes {
		if s.state.Notes[i].ID == n.ID {
			s.state.Notes[i] = n
			s.persist()
			return
		}
	}
	s.state.Notes = append(s.state.Notes, n)
	s.persist()
}

func (s *Store) UpsertRemoteTask(t models.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Tasks {
		if s.state.Tasks[i].ID == t.ID {
			s.state.Tasks[i] = t
			s.persist()
			return
		}
	}
	s.state.Tasks = append(s.state.Tasks, t)
	s.persist()
}

func (s *Store) UpsertRemoteHabit(h models.Habit) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Habits {
		if s.state.Habits[i].ID == h.ID {
			s.state.Habits[i] = h
			s.persist()
			return
		}
	}
	s.state.Habits = append(s.state.Habits, h)
	s.persist()
}

// RemoveRemote deletes the entity because the server reported it deleted.
// Unlike the user-facing delete it does not record a tombstone; any pending
// tombstone for the id is considered acknowledged and dropped.
func (s *Store) RemoveRemote(kind models.EntityType, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch kind {
	case models.EntityTypeNote:
		for i := range s.state.Notes {
			if s.state.Notes[i].ID == id {
				s.state.Notes = append(s.state.Notes[:i], s.state.Notes[i+1:]...)
				break
			}
		}
		s.state.DeletedNotes = removeID(s.state.DeletedNotes, id)
	case models.EntityTypeTask:
		for i := range s.state.Tasks {
			if s.state.Tasks[i].ID == id {
				s.state.Tasks = append(s.state.Tasks[:i], s.state.Tasks[i+1:]...)
				break
			}
		}
		s.state.DeletedTasks = removeID(s.state.DeletedTasks, id)
	case models.EntityTypeHabit:
		for i := range s.state.Habits {
			if s.state.Habits[i].ID == id {
				s.state.Habits = append(s.state.Habits[:i], s.state.Habits[i+1:]...)
				break
			}
		}
		s.state.DeletedHabits = removeID(s.state.DeletedHabits, id)
	}
	s.persist()
}

func removeID(ids []string, id string) []string {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
