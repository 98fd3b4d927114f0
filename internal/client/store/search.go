package store

import (
	"strings"

	"github.com/dmitrijs2005/focusflow/internal/client/models"
)

// SearchResult groups the matches per entity kind. Habits are not searched.
type SearchResult struct {
	Notes []models.Note
	Tasks []models.Task
}

// Search performs a case-insensitive substring match over note titles,
// content and tags, and over task titles and descriptions. A blank query
// matches nothing rather than everything.
func (s *Store) Search(query string) SearchResult {
	result := SearchResult{Notes: []models.Note{}, Tasks: []models.Task{}}

	term := strings.ToLower(strings.TrimSpace(query))

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.SearchQuery != query {
		s.state.SearchQuery = query
		s.persist()
	}
	if term == "" {
		return result
	}

	for _, n := range s.state.Notes {
		if strings.Contains(strings.ToLower(n.Title), term) ||
			strings.Contains(strings.ToLower(n.Content), term) ||
			anyTagMatches(n.Tags, term) {
			result.Notes = append(result.Notes, cloneNote(n))
		}
	}

	for _, t := range s.state.Tasks {
		if strings.Contains(strings.ToLower(t.Title), term) ||
			strings.Contains(strings.ToLower(t.Description), term) {
			result.Tasks = append(result.Tasks, t)
		}
	}

	return result
}

func anyTagMatches(tags []string, term string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}
