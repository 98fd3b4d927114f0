package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/focusflow/internal/client/export"
)

// Export writes the full domain state to a JSON file. When path is empty the
// dated default filename is used.
func (a *App) Export(ctx context.Context, path string) error {
	if path == "" {
		path = export.Filename(time.Now())
	}

	data, err := export.ExportAll(a.store)
	if err != nil {
		fmt.Fprintln(a.out, "Export failed:", err.Error())
		return err
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		fmt.Fprintln(a.out, "Export failed:", err.Error())
		return err
	}

	fmt.Fprintln(a.out, "Exported to", path)
	return nil
}

// Import replaces the entire domain state with the given export file.
// A malformed document is rejected without touching the current state.
func (a *App) Import(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(a.out, "Import failed:", err.Error())
		return err
	}

	if !export.ImportAll(a.store, data) {
		fmt.Fprintln(a.out, "Import failed: invalid backup document.")
		return nil
	}

	fmt.Fprintln(a.out, "Import successful. Previous state replaced.")
	return nil
}

// LoadDemo fills the store with sample entities for a first look at the app.
func (a *App) LoadDemo(ctx context.Context) error {
	a.store.LoadDemoData()
	fmt.Fprintln(a.out, "Demo data loaded.")
	return nil
}

// Search runs a case-insensitive substring search over notes and tasks.
func (a *App) Search(ctx context.Context, query string) error {
	result := a.store.Search(query)

	if len(result.Notes) == 0 && len(result.Tasks) == 0 {
		fmt.Fprintln(a.out, "No matches.")
		return nil
	}
	for _, n := range result.Notes {
		fmt.Fprintf(a.out, "note  %s  %s\n", n.ID, n.Title)
	}
	for _, t := range result.Tasks {
		fmt.Fprintf(a.out, "task  %s  %s\n", t.ID, t.Title)
	}
	return nil
}
