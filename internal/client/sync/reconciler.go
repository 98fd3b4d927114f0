// Package sync reconciles the local domain state with the remote
// reconciliation endpoint. The client always proposes, the server decides:
// on every successful outcome the server's version and data are applied
// verbatim, and conflicts are surfaced for manual resolution, never merged.
package sync

import (
	"context"
	"encoding/json"
	"errors"
	gosync "sync"
	"time"

	"github.com/dmitrijs2005/focusflow/internal/client/models"
	"github.com/dmitrijs2005/focusflow/internal/client/store"
	"github.com/dmitrijs2005/focusflow/internal/common"
	"github.com/dmitrijs2005/focusflow/internal/logging"
)

// State is the reconciler's position in a sync cycle.
type State string

const (
	StateIdle       State = "idle"
	StateCollecting State = "collecting"
	StateInFlight   State = "in-flight"
	StateApplying   State = "applying"
	StateQueued     State = "queued"
)

const (
	// DefaultSyncInterval is the wall-clock period of the automatic cycle.
	DefaultSyncInterval = 5 * time.Minute
	// DefaultProbeInterval is how often connectivity is re-checked.
	DefaultProbeInterval = 30 * time.Second

	probeTimeout = 3 * time.Second
)

// Endpoint is the remote side of the protocol. *api.Client implements it.
type Endpoint interface {
	Sync(ctx context.Context, req *models.SyncRequest) (*models.SyncResponse, error)
	Ping(ctx context.Context) error
}

// Reconciler runs sync cycles against the endpoint and applies the results
// back into the store. At most one cycle is in progress at a time; requests
// that fail in transit wait in a FIFO queue until connectivity returns.
type Reconciler struct {
	store *store.Store
	api   Endpoint
	log   logging.Logger

	mu        gosync.Mutex
	state     State
	online    bool
	queue     []*models.SyncRequest
	conflicts []models.ConflictInfo
	stopAuto  context.CancelFunc
}

func New(s *store.Store, api Endpoint, log logging.Logger) *Reconciler {
	return &Reconciler{store: s, api: api, log: log, state: StateIdle}
}

// State returns the current cycle state.
func (r *Reconciler) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Online reports the last known connectivity verdict.
func (r *Reconciler) Online() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.online
}

// QueueLen reports how many failed requests await retry.
func (r *Reconciler) QueueLen() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue)
}

// Conflicts returns a copy of the unresolved conflicts collected so far.
func (r *Reconciler) Conflicts() []models.ConflictInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.ConflictInfo, len(r.conflicts))
	copy(out, r.conflicts)
	return out
}

// ClearConflicts drops the collected conflicts, typically after the user
// has resolved them through ordinary store mutations.
func (r *Reconciler) ClearConflicts() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflicts = nil
}

// Collect snapshots the full local state as a sync request. Locally deleted
// entities are included as tombstones so the server never resurrects them.
func (r *Reconciler) Collect() *models.SyncRequest {
	req := &models.SyncRequest{}

	for _, n := range r.store.Notes() {
		req.Notes = append(req.Notes, models.SyncItem{ID: n.ID, Version: n.Version, Data: marshalNote(n)})
	}
	for _, id := range r.store.DeletedIDs(models.EntityTypeNote) {
		req.Notes = append(req.Notes, models.SyncItem{ID: id, Deleted: true})
	}

	for _, t := range r.store.Tasks() {
		req.Tasks = append(req.Tasks, models.SyncItem{ID: t.ID, Version: t.Version, Data: marshalTask(t)})
	}
	for _, id := range r.store.DeletedIDs(models.EntityTypeTask) {
		req.Tasks = append(req.Tasks, models.SyncItem{ID: id, Deleted: true})
	}

	for _, h := range r.store.Habits() {
		req.Habits = append(req.Habits, models.SyncItem{ID: h.ID, Version: h.Version, Data: marshalHabit(h)})
	}
	for _, id := range r.store.DeletedIDs(models.EntityTypeHabit) {
		req.Habits = append(req.Habits, models.SyncItem{ID: id, Deleted: true})
	}

	return req
}

// Sync runs one cycle. It returns common.ErrSyncInFlight when a cycle is
// already in progress and common.ErrOffline when the endpoint is believed
// unreachable; both leave the store untouched.
func (r *Reconciler) Sync(ctx context.Context) error {
	if err := r.begin(false); err != nil {
		return err
	}
	return r.run(ctx)
}

// ForceSync runs one cycle regardless of the connectivity verdict. The
// single-flight rule still applies.
func (r *Reconciler) ForceSync(ctx context.Context) error {
	if err := r.begin(true); err != nil {
		return err
	}
	return r.run(ctx)
}

func (r *Reconciler) begin(force bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateCollecting || r.state == StateInFlight || r.state == StateApplying {
		return common.ErrSyncInFlight
	}
	if !force && !r.online {
		return common.ErrOffline
	}
	r.state = StateCollecting
	return nil
}

func (r *Reconciler) run(ctx context.Context) error {
	req := r.Collect()
	if req.Empty() {
		r.finish()
		return nil
	}

	r.setState(StateInFlight)
	resp, err := r.api.Sync(ctx, req)
	if err != nil {
		if errors.Is(err, common.ErrTransport) {
			r.enqueue(req)
			return err
		}
		// auth and protocol failures are not retryable as-is
		r.finish()
		return err
	}

	r.setState(StateApplying)
	r.apply(resp)
	r.finish()
	return nil
}

// flushQueue retries queued requests oldest first, one at a time. The first
// failure stops the flush and puts the request back at the head so order is
// preserved for the next attempt.
func (r *Reconciler) flushQueue(ctx context.Context) {
	for {
		r.mu.Lock()
		if r.state == StateCollecting || r.state == StateInFlight || r.state == StateApplying {
			r.mu.Unlock()
			return
		}
		if len(r.queue) == 0 {
			r.state = StateIdle
			r.mu.Unlock()
			return
		}
		req := r.queue[0]
		r.queue = r.queue[1:]
		r.state = StateInFlight
		r.mu.Unlock()

		resp, err := r.api.Sync(ctx, req)
		if err != nil {
			r.mu.Lock()
			r.queue = append([]*models.SyncRequest{req}, r.queue...)
			r.state = StateQueued
			r.mu.Unlock()
			r.log.Warn(ctx, "queued sync retry failed", "remaining", len(r.queue), "error", err)
			return
		}

		r.setState(StateApplying)
		r.apply(resp)
		r.finish()
	}
}

// SetOnline records a connectivity verdict. An offline to online transition
// immediately flushes the retry queue.
func (r *Reconciler) SetOnline(ctx context.Context, online bool) {
	r.mu.Lock()
	was := r.online
	r.online = online
	r.mu.Unlock()

	if online && !was {
		r.log.Info(ctx, "endpoint reachable, flushing sync queue")
		r.flushQueue(ctx)
	}
}

// StartAuto launches the background loop: a connectivity probe every
// probeInterval and, while online, a sync cycle every syncInterval. Starting
// a new loop cancels the previous one.
func (r *Reconciler) StartAuto(syncInterval, probeInterval time.Duration) {
	r.mu.Lock()
	if r.stopAuto != nil {
		r.stopAuto()
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.stopAuto = cancel
	r.mu.Unlock()

	go r.runAuto(ctx, syncInterval, probeInterval)
}

// StopAuto cancels the background loop so no further ticks fire.
func (r *Reconciler) StopAuto() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopAuto != nil {
		r.stopAuto()
		r.stopAuto = nil
	}
}

func (r *Reconciler) runAuto(ctx context.Context, syncInterval, probeInterval time.Duration) {
	probe := time.NewTicker(probeInterval)
	defer probe.Stop()
	cycle := time.NewTicker(syncInterval)
	defer cycle.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-probe.C:
			pctx, cancel := context.WithTimeout(ctx, probeTimeout)
			err := r.api.Ping(pctx)
			cancel()
			r.SetOnline(ctx, err == nil)
		case <-cycle.C:
			if !r.Online() {
				continue
			}
			if err := r.Sync(ctx); err != nil && !errors.Is(err, common.ErrSyncInFlight) {
				if ctx.Err() != nil {
					return
				}
				r.log.Warn(ctx, "scheduled sync failed", "error", err)
			}
		}
	}
}

func (r *Reconciler) setState(s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}

func (r *Reconciler) finish() {
	r.mu.Lock()
	if len(r.queue) > 0 {
		r.state = StateQueued
	} else {
		r.state = StateIdle
	}
	r.mu.Unlock()
}

func (r *Reconciler) enqueue(req *models.SyncRequest) {
	r.mu.Lock()
	r.queue = append(r.queue, req)
	r.state = StateQueued
	r.online = false
	r.mu.Unlock()
}

// apply walks the response sequentially, one entity at a time, so two
// outcomes for the same entity cannot interleave.
func (r *Reconciler) apply(resp *models.SyncResponse) {
	for _, o := range resp.Notes {
		r.applyNote(o)
	}
	for _, o := range resp.Tasks {
		r.applyTask(o)
	}
	for _, o := range resp.Habits {
		r.applyHabit(o)
	}

	if len(resp.Conflicts) > 0 {
		r.mu.Lock()
		r.conflicts = append(r.conflicts, resp.Conflicts...)
		r.mu.Unlock()
	}
}

func (r *Reconciler) applyNote(o models.SyncOutcome) {
	switch o.Action {
	case models.SyncCreated, models.SyncUpdated:
		r.store.UpsertRemoteNote(noteFromOutcome(o, r.store))
	case models.SyncDeleted:
		r.store.RemoveRemote(models.EntityTypeNote, o.ID)
	case models.SyncNoChange, models.SyncConflict:
		// conflicts arrive separately in the conflicts list
	}
}

func (r *Reconciler) applyTask(o models.SyncOutcome) {
	switch o.Action {
	case models.SyncCreated, models.SyncUpdated:
		r.store.UpsertRemoteTask(taskFromOutcome(o, r.store))
	case models.SyncDeleted:
		r.store.RemoveRemote(models.EntityTypeTask, o.ID)
	case models.SyncNoChange, models.SyncConflict:
	}
}

func (r *Reconciler) applyHabit(o models.SyncOutcome) {
	switch o.Action {
	case models.SyncCreated, models.SyncUpdated:
		r.store.UpsertRemoteHabit(habitFromOutcome(o, r.store))
	case models.SyncDeleted:
		r.store.RemoveRemote(models.EntityTypeHabit, o.ID)
	case models.SyncNoChange, models.SyncConflict:
	}
}

func marshalNote(n models.Note) json.RawMessage {
	data, _ := json.Marshal(models.NoteData{
		Title:       n.Title,
		Content:     n.Content,
		Tags:        n.Tags,
		IsEncrypted: n.IsEncrypted,
		CreatedAt:   formatTime(n.CreatedAt),
		UpdatedAt:   formatTime(n.UpdatedAt),
	})
	return data
}

func marshalTask(t models.Task) json.RawMessage {
	data, _ := json.Marshal(models.TaskData{
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		CreatedAt:   formatTime(t.CreatedAt),
		UpdatedAt:   formatTime(t.UpdatedAt),
	})
	return data
}

func marshalHabit(h models.Habit) json.RawMessage {
	data, _ := json.Marshal(models.HabitData{
		Name:           h.Name,
		Color:          h.Color,
		Streak:         h.Streak,
		CompletedDates: h.CompletedDates,
		CreatedAt:      formatTime(h.CreatedAt),
	})
	return data
}

// noteFromOutcome builds the server-authoritative copy. When the outcome
// carries no data only the version advances; existing fields survive.
func noteFromOutcome(o models.SyncOutcome, s *store.Store) models.Note {
	n, _ := s.NoteByID(o.ID)
	n.ID = o.ID
	n.Version = o.Version
	if len(o.Data) == 0 {
		return n
	}
	var d models.NoteData
	if err := json.Unmarshal(o.Data, &d); err != nil {
		return n
	}
	n.Title = d.Title
	n.Content = d.Content
	n.Tags = d.Tags
	n.IsEncrypted = d.IsEncrypted
	n.CreatedAt = parseTime(d.CreatedAt, n.CreatedAt)
	n.UpdatedAt = parseTime(d.UpdatedAt, n.UpdatedAt)
	return n
}

func taskFromOutcome(o models.SyncOutcome, s *store.Store) models.Task {
	t, _ := s.TaskByID(o.ID)
	t.ID = o.ID
	t.Version = o.Version
	if len(o.Data) == 0 {
		return t
	}
	var d models.TaskData
	if err := json.Unmarshal(o.Data, &d); err != nil {
		return t
	}
	t.Title = d.Title
	t.Description = d.Description
	t.Status = models.TaskStatus(d.Status)
	t.Priority = models.TaskPriority(d.Priority)
	t.CreatedAt = parseTime(d.CreatedAt, t.CreatedAt)
	t.UpdatedAt = parseTime(d.UpdatedAt, t.UpdatedAt)
	return t
}

func habitFromOutcome(o models.SyncOutcome, s *store.Store) models.Habit {
	h, _ := s.HabitByID(o.ID)
	h.ID = o.ID
	h.Version = o.Version
	if len(o.Data) == 0 {
		return h
	}
	var d models.HabitData
	if err := json.Unmarshal(o.Data, &d); err != nil {
		return h
	}
	h.Name = d.Name
	h.Color = d.Color
	h.Streak = d.Streak
	h.CompletedDates = d.CompletedDates
	h.CreatedAt = parseTime(d.CreatedAt, h.CreatedAt)
	return h
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fallback
	}
	return t
}
