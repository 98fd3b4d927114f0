package store

import (
	"time"

	"github.com/dmitrijs2005/focusflow/internal/client/models"
)

// PomodoroTimer is the persisted timer state. Durations and TimeLeft are in
// seconds.
type PomodoroTimer struct {
	IsActive           bool                       `json:"isActive"`
	TimeLeft           int                        `json:"timeLeft"`
	CurrentSession     models.PomodoroSessionType `json:"currentSession"`
	WorkDuration       int                        `json:"workDuration"`
	BreakDuration      int                        `json:"breakDuration"`
	LongBreakDuration  int                        `json:"longBreakDuration"`
	AutoStartBreaks    bool                       `json:"autoStartBreaks"`
	AutoStartPomodoros bool                       `json:"autoStartPomodoros"`
}

func defaultPomodoroTimer() PomodoroTimer {
	return PomodoroTimer{
		TimeLeft:          25 * 60,
		CurrentSession:    models.PomodoroWork,
		WorkDuration:      25 * 60,
		BreakDuration:     5 * 60,
		LongBreakDuration: 15 * 60,
	}
}

func (s *Store) Pomodoro() PomodoroTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Pomodoro
}

func (s *Store) StartPomodoro() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Pomodoro.IsActive = true
	s.persist()
}

func (s *Store) PausePomodoro() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Pomodoro.IsActive = false
	s.persist()
}

// ResetPomodoro stops the timer and restores the full duration of the
// current session type.
func (s *Store) ResetPomodoro() {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := &s.state.Pomodoro
	p.IsActive = false
	if p.CurrentSession == models.PomodoroWork {
		p.TimeLeft = p.WorkDuration
	} else {
		p.TimeLeft = p.BreakDuration
	}
	s.persist()
}

// TickPomodoro advances the timer by one second. When a session runs out it
// records the finished session, switches to the other kind and either keeps
// running or pauses depending on the auto-start settings.
func (s *Store) TickPomodoro() {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := &s.state.Pomodoro
	if !p.IsActive || p.TimeLeft <= 0 {
		return
	}

	p.TimeLeft--
	if p.TimeLeft > 0 {
		s.persist()
		return
	}

	finished := p.CurrentSession
	duration := p.WorkDuration
	if finished == models.PomodoroBreak {
		duration = p.BreakDuration
	}

	now := s.now()
	start := now.Add(-time.Duration(duration) * time.Second)
	s.state.PomodoroSessions = append(s.state.PomodoroSessions, models.PomodoroSession{
		ID:        s.newID(),
		Type:      finished,
		Duration:  duration,
		StartTime: start,
		EndTime:   &now,
		Completed: true,
	})

	next := models.PomodoroWork
	nextDuration := p.WorkDuration
	if finished == models.PomodoroWork {
		next = models.PomodoroBreak
		nextDuration = p.BreakDuration
	}

	p.CurrentSession = next
	p.TimeLeft = nextDuration
	p.IsActive = (next == models.PomodoroBreak && p.AutoStartBreaks) ||
		(next == models.PomodoroWork && p.AutoStartPomodoros)

	s.persist()
}

// PomodoroSettings is a partial update; nil fields are left unchanged.
// Durations are in minutes, matching the UI surface.
type PomodoroSettings struct {
	WorkDuration       *int
	BreakDuration      *int
	LongBreakDuration  *int
	AutoStartBreaks    *bool
	AutoStartPomodoros *bool
}

func (s *Store) UpdatePomodoroSettings(u PomodoroSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := &s.state.Pomodoro
	if u.WorkDuration != nil {
		p.WorkDuration = *u.WorkDuration * 60
		if p.CurrentSession == models.PomodoroWork && !p.IsActive {
			p.TimeLeft = p.WorkDuration
		}
	}
	if u.BreakDuration != nil {
		p.BreakDuration = *u.BreakDuration * 60
		if p.CurrentSession == models.PomodoroBreak && !p.IsActive {
			p.TimeLeft = p.BreakDuration
		}
	}
	if u.LongBreakDuration != nil {
		p.LongBreakDuration = *u.LongBreakDuration * 60
	}
	if u.AutoStartBreaks != nil {
		p.AutoStartBreaks = *u.AutoStartBreaks
	}
	if u.AutoStartPomodoros != nil {
		p.AutoStartPomodoros = *u.AutoStartPomodoros
	}
	s.persist()
}
