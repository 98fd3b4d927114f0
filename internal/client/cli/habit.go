package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/focusflow/internal/client/store"
)

// AddHabit prompts for a name and display color and stores the habit.
func (a *App) AddHabit(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter habit name", a.out)
	if err != nil {
		return err
	}

	color, err := getSimpleText(a.reader, "Enter color (e.g. #22c55e, empty for default)", a.out)
	if err != nil {
		return err
	}

	id := a.store.AddHabit(store.NewHabit{Name: name, Color: color})
	fmt.Fprintln(a.out, "Created habit", id)
	return nil
}

func (a *App) ListHabits(ctx context.Context) error {
	habits := a.store.Habits()
	if len(habits) == 0 {
		fmt.Fprintln(a.out, "No habits.")
		return nil
	}
	for _, h := range habits {
		fmt.Fprintf(a.out, "%s  %s (streak %d, %d days done)\n", h.ID, h.Name, h.Streak, len(h.CompletedDates))
	}
	return nil
}

// ToggleHabit flips the habit's completion for the given calendar day.
// "today" is accepted as a shorthand.
func (a *App) ToggleHabit(ctx context.Context, id, date string) error {
	if date == "today" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		fmt.Fprintln(a.out, "Invalid date, expected YYYY-MM-DD:", date)
		return nil
	}
	a.store.ToggleHabitDate(id, date)
	fmt.Fprintln(a.out, "Toggled", date)
	return nil
}

func (a *App) DeleteHabit(ctx context.Context, id string) error {
	a.store.DeleteHabit(id)
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}
