package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/focusflow/internal/client/backup"
	"github.com/dmitrijs2005/focusflow/internal/client/config"
	"github.com/dmitrijs2005/focusflow/internal/client/store"
	syncer "github.com/dmitrijs2005/focusflow/internal/client/sync"
	"github.com/dmitrijs2005/focusflow/internal/cryptox"
	"github.com/dmitrijs2005/focusflow/internal/logging"
)

// App is the interactive FocusFlow command-line client. All dependencies are
// injected so tests can run the full command surface against in-memory
// implementations.
type App struct {
	config     *config.Config
	store      *store.Store
	backups    *backup.Service
	reconciler *syncer.Reconciler
	log        logging.Logger
	reader     *bufio.Reader
	out        io.Writer
}

func NewApp(cfg *config.Config, s *store.Store, b *backup.Service, r *syncer.Reconciler, log logging.Logger) *App {
	return &App{
		config:     cfg,
		store:      s,
		backups:    b,
		reconciler: r,
		log:        log,
		reader:     bufio.NewReader(os.Stdin),
		out:        os.Stdout,
	}
}

// Run starts the background schedules and blocks in the REPL until the user
// exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to FocusFlow CLI (type 'help' for commands)")

	if !cryptox.IsSupported() {
		fmt.Fprintln(a.out, "Note: encryption is unavailable on this platform; encrypt/decrypt commands are disabled.")
	}

	a.reconciler.StartAuto(a.config.AutoSyncInterval, a.config.OnlineCheckInterval)
	defer a.reconciler.StopAuto()

	if a.config.AutoBackupInterval > 0 {
		a.backups.StartAuto(a.config.AutoBackupInterval, "")
		defer a.backups.StopAuto()
	}

	tickCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.runPomodoroTicker(tickCtx)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) getStatus() string {
	s := "offline"
	if a.reconciler.Online() {
		s = "online"
	}
	if n := a.reconciler.QueueLen(); n > 0 {
		s = fmt.Sprintf("%s, %d queued", s, n)
	}
	if n := len(a.reconciler.Conflicts()); n > 0 {
		s = fmt.Sprintf("%s, %d conflicts", s, n)
	}
	return fmt.Sprintf("(%s)", s)
}
