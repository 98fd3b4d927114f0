package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/focusflow/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend server (default from Config)
//	-f string   path of the local snapshot file
//	-s int      auto sync interval in seconds
//	-b int      auto backup interval in seconds, 0 disables
//	-i int      online check interval in seconds
//	-l string   log level (debug, info, warn, error)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-f", "-s", "-b", "-i", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "base URL of the backend server")
	fs.StringVar(&cfg.SnapshotPath, "f", cfg.SnapshotPath, "path of the local snapshot file")
	syncInterval := fs.Int("s", int(cfg.AutoSyncInterval.Seconds()), "auto sync interval (in seconds)")
	backupInterval := fs.Int("b", int(cfg.AutoBackupInterval.Seconds()), "auto backup interval (in seconds, 0 disables)")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.AutoSyncInterval = time.Duration(*syncInterval) * time.Second
	cfg.AutoBackupInterval = time.Duration(*backupInterval) * time.Second
	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
