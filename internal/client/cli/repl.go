package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	AddNote(ctx context.Context) error
	ListNotes(ctx context.Context) error
	ShowNote(ctx context.Context, id string) error
	DeleteNote(ctx context.Context, id string) error
	EncryptNote(ctx context.Context, id string) error
	DecryptNote(ctx context.Context, id string) error

	AddTask(ctx context.Context) error
	ListTasks(ctx context.Context) error
	MoveTask(ctx context.Context, id, status string) error
	DeleteTask(ctx context.Context, id string) error

	AddHabit(ctx context.Context) error
	ListHabits(ctx context.Context) error
	ToggleHabit(ctx context.Context, id, date string) error
	DeleteHabit(ctx context.Context, id string) error

	Search(ctx context.Context, query string) error
	Export(ctx context.Context, path string) error
	Import(ctx context.Context, path string) error
	LoadDemo(ctx context.Context) error

	BackupCreate(ctx context.Context) error
	BackupList(ctx context.Context) error
	BackupRestore(ctx context.Context, id string) error
	BackupDelete(ctx context.Context, id string) error

	StartPomodoro(ctx context.Context) error
	PausePomodoro(ctx context.Context) error
	ResetPomodoro(ctx context.Context) error
	PomodoroStatus(ctx context.Context) error

	Sync(ctx context.Context) error
	ForceSync(ctx context.Context) error
	Conflicts(ctx context.Context) error
	Status(ctx context.Context) error
}

const helpText = `Available commands:
  note add | list | show <id> | del <id> | encrypt <id> | decrypt <id>
  task add | list | move <id> <todo|doing|done> | del <id>
  habit add | list | toggle <id> <YYYY-MM-DD> | del <id>
  search <query>
  export [file] / import <file> / demo
  backup create | list | restore <id> | delete <id>
  pomo start | pause | reset | status
  sync [force] / conflicts / status
  exit | quit`

// runREPL starts a simple read-eval-print loop for the FocusFlow CLI.
//
// It reads a line from the provided scanner, parses the first tokens as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("ff %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "note", "n":
			runNoteCommand(ctx, a, args)

		case "task", "t":
			runTaskCommand(ctx, a, args)

		case "habit", "h":
			runHabitCommand(ctx, a, args)

		case "search":
			if len(args) == 0 {
				printlnFn("Usage: search <query>")
				continue
			}
			_ = a.Search(ctx, strings.Join(args, " "))

		case "export":
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			_ = a.Export(ctx, path)

		case "import":
			if len(args) == 0 {
				printlnFn("Usage: import <file>")
				continue
			}
			_ = a.Import(ctx, args[0])

		case "demo":
			_ = a.LoadDemo(ctx)

		case "backup":
			runBackupCommand(ctx, a, args)

		case "pomo":
			runPomodoroCommand(ctx, a, args)

		case "sync":
			if len(args) > 0 && args[0] == "force" {
				_ = a.ForceSync(ctx)
			} else {
				_ = a.Sync(ctx)
			}

		case "conflicts":
			_ = a.Conflicts(ctx)

		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func runNoteCommand(ctx context.Context, a execIface, args []string) {
	if len(args) == 0 {
		printlnFn("Usage: note add | list | show <id> | del <id> | encrypt <id> | decrypt <id>")
		return
	}
	switch args[0] {
	case "add":
		_ = a.AddNote(ctx)
	case "list", "l":
		_ = a.ListNotes(ctx)
	case "show":
		if len(args) < 2 {
			printlnFn("Usage: note show <id>")
			return
		}
		_ = a.ShowNote(ctx, args[1])
	case "del":
		if len(args) < 2 {
			printlnFn("Usage: note del <id>")
			return
		}
		_ = a.DeleteNote(ctx, args[1])
	case "encrypt":
		if len(args) < 2 {
			printlnFn("Usage: note encrypt <id>")
			return
		}
		_ = a.EncryptNote(ctx, args[1])
	case "decrypt":
		if len(args) < 2 {
			printlnFn("Usage: note decrypt <id>")
			return
		}
		_ = a.DecryptNote(ctx, args[1])
	default:
		printlnFn("Unknown note command:", args[0])
	}
}

func runTaskCommand(ctx context.Context, a execIface, args []string) {
	if len(args) == 0 {
		printlnFn("Usage: task add | list | move <id> <status> | del <id>")
		return
	}
	switch args[0] {
	case "add":
		_ = a.AddTask(ctx)
	case "list", "l":
		_ = a.ListTasks(ctx)
	case "move":
		if len(args) < 3 {
			printlnFn("Usage: task move <id> <todo|doing|done>")
			return
		}
		_ = a.MoveTask(ctx, args[1], args[2])
	case "del":
		if len(args) < 2 {
			printlnFn("Usage: task del <id>")
			return
		}
		_ = a.DeleteTask(ctx, args[1])
	default:
		printlnFn("Unknown task command:", args[0])
	}
}

func runHabitCommand(ctx context.Context, a execIface, args []string) {
	if len(args) == 0 {
		printlnFn("Usage: habit add | list | toggle <id> <YYYY-MM-DD> | del <id>")
		return
	}
	switch args[0] {
	case "add":
		_ = a.AddHabit(ctx)
	case "list", "l":
		_ = a.ListHabits(ctx)
	case "toggle":
		if len(args) < 3 {
			printlnFn("Usage: habit toggle <id> <YYYY-MM-DD>")
			return
		}
		_ = a.ToggleHabit(ctx, args[1], args[2])
	case "del":
		if len(args) < 2 {
			printlnFn("Usage: habit del <id>")
			return
		}
		_ = a.DeleteHabit(ctx, args[1])
	default:
		printlnFn("Unknown habit command:", args[0])
	}
}

func runPomodoroCommand(ctx context.Context, a execIface, args []string) {
	if len(args) == 0 {
		printlnFn("Usage: pomo start | pause | reset | status")
		return
	}
	switch args[0] {
	case "start":
		_ = a.StartPomodoro(ctx)
	case "pause":
		_ = a.PausePomodoro(ctx)
	case "reset":
		_ = a.ResetPomodoro(ctx)
	case "status":
		_ = a.PomodoroStatus(ctx)
	default:
		printlnFn("Unknown pomo command:", args[0])
	}
}

func runBackupCommand(ctx context.Context, a execIface, args []string) {
	if len(args) == 0 {
		printlnFn("Usage: backup create | list | restore <id> | delete <id>")
		return
	}
	switch args[0] {
	case "create":
		_ = a.BackupCreate(ctx)
	case "list", "l":
		_ = a.BackupList(ctx)
	case "restore":
		if len(args) < 2 {
			printlnFn("Usage: backup restore <id>")
			return
		}
		_ = a.BackupRestore(ctx, args[1])
	case "delete":
		if len(args) < 2 {
			printlnFn("Usage: backup delete <id>")
			return
		}
		_ = a.BackupDelete(ctx, args[1])
	default:
		printlnFn("Unknown backup command:", args[0])
	}
}
