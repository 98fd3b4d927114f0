package cli

import (
	"context"
	"fmt"
	"time"
)

// Pomodoro commands drive the store's timer. The timer itself advances in
// the background loop started by App.Run, one tick per second while active.

func (a *App) StartPomodoro(ctx context.Context) error {
	a.store.StartPomodoro()
	fmt.Fprintln(a.out, "Timer started.")
	return nil
}

func (a *App) PausePomodoro(ctx context.Context) error {
	a.store.PausePomodoro()
	fmt.Fprintln(a.out, "Timer paused.")
	return nil
}

func (a *App) ResetPomodoro(ctx context.Context) error {
	a.store.ResetPomodoro()
	fmt.Fprintln(a.out, "Timer reset.")
	return nil
}

func (a *App) PomodoroStatus(ctx context.Context) error {
	p := a.store.Pomodoro()
	state := "paused"
	if p.IsActive {
		state = "running"
	}
	fmt.Fprintf(a.out, "%s session, %02d:%02d left (%s)\n",
		p.CurrentSession, p.TimeLeft/60, p.TimeLeft%60, state)
	fmt.Fprintf(a.out, "Sessions recorded: %d\n", len(a.store.PomodoroSessions()))
	return nil
}

func (a *App) runPomodoroTicker(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.store.TickPomodoro()
		}
	}
}
