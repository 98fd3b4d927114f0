// Package cli provides the interactive FocusFlow command-line client.
//
// It wires the domain store, the backup service and the sync reconciler into
// an interactive REPL that supports online/offline operation. Typical flow:
// load the local snapshot, start the background sync and backup schedules,
// and execute user commands until exit.
//
// Key features:
//   - Note / task / habit management, including per-note encryption
//   - Full-state export and import as JSON files
//   - Remote backups: create, list, restore, delete
//   - Manual and forced sync, conflict inspection
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
