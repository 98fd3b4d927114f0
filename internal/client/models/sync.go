package models

import "encoding/json"

// SyncAction is the server's verdict for one entity in a sync response.
type SyncAction string

const (
	SyncCreated  SyncAction = "Created"
	SyncUpdated  SyncAction = "Updated"
	SyncDeleted  SyncAction = "Deleted"
	SyncNoChange SyncAction = "NoChange"
	SyncConflict SyncAction = "Conflict"
)

// SyncItem is one entity's proposed state sent to the reconciliation
// endpoint. Deleted marks a tombstone for a locally removed entity.
type SyncItem struct {
	ID      string          `json:"id"`
	Version int64           `json:"version"`
	Deleted bool            `json:"deleted"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// SyncOutcome is the server's per-entity result. On success Version and Data
// are authoritative; on Conflict the entity appears in the response's
// conflicts list instead.
type SyncOutcome struct {
	ID      string          `json:"id"`
	Version int64           `json:"version"`
	Action  SyncAction      `json:"action"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// SyncRequest groups the full local snapshot per entity kind.
type SyncRequest struct {
	Notes  []SyncItem `json:"notes"`
	Tasks  []SyncItem `json:"tasks"`
	Habits []SyncItem `json:"habits"`
}

// Empty reports whether the request carries nothing worth sending.
func (r *SyncRequest) Empty() bool {
	return len(r.Notes) == 0 && len(r.Tasks) == 0 && len(r.Habits) == 0
}

// SyncResponse is the reconciliation endpoint's reply.
type SyncResponse struct {
	Notes     []SyncOutcome  `json:"notes"`
	Tasks     []SyncOutcome  `json:"tasks"`
	Habits    []SyncOutcome  `json:"habits"`
	Conflicts []ConflictInfo `json:"conflicts"`
}

// ConflictInfo carries both sides of a version conflict for external
// resolution. The reconciler never resolves it automatically.
type ConflictInfo struct {
	EntityType    EntityType      `json:"entity_type"`
	EntityID      string          `json:"entity_id"`
	LocalVersion  int64           `json:"local_version"`
	ServerVersion int64           `json:"server_version"`
	LocalData     json.RawMessage `json:"local_data"`
	ServerData    json.RawMessage `json:"server_data"`
}

// Wire DTOs for SyncItem.Data. Field names follow the server's snake_case
// convention rather than the local snapshot's camelCase.

type NoteData struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags"`
	IsEncrypted bool     `json:"is_encrypted"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

type TaskData struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type HabitData struct {
	Name           string   `json:"name"`
	Color          string   `json:"color"`
	Streak         int      `json:"streak"`
	CompletedDates []string `json:"completed_dates"`
	CreatedAt      string   `json:"created_at"`
}
