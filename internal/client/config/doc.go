// Package config loads runtime configuration for the FocusFlow CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend HTTP API
//	-f string   path of the local snapshot file
//	-s int      auto sync interval (seconds)
//	-b int      auto backup interval (seconds, 0 disables)
//	-i int      online status check interval (seconds)
//	-l string   log level
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "5m" or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "https://focusflow.example",
//	  "snapshot_path": "focusflow-storage.json",
//	  "auto_sync_interval": "5m",
//	  "auto_backup_interval": "1h",
//	  "online_check_interval": "30s",
//	  "log_level": "info",
//	  "session_token": "...",
//	  "backup_backend": "s3",
//	  "s3": {
//	    "endpoint": "http://127.0.0.1:9000",
//	    "region": "us-east-1",
//	    "bucket": "focusflow-backups",
//	    "access_key": "...",
//	    "secret_key": "...",
//	    "account_id": "user-1"
//	  }
//	}
//
// Primary API
//
//   - type Config                     — runtime settings, see its field docs
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
