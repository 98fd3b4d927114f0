package config

import "time"

// BackupBackend selects where backup artifacts are stored.
type BackupBackend string

const (
	// BackupBackendHTTP uploads through the FocusFlow backend's blob API.
	BackupBackendHTTP BackupBackend = "http"
	// BackupBackendS3 uploads straight to an S3-compatible bucket.
	BackupBackendS3 BackupBackend = "s3"
)

// Config holds runtime settings for the FocusFlow CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the backend HTTP API.
//   - SnapshotPath: path of the local state snapshot file.
//   - AutoSyncInterval: period of the automatic sync cycle.
//   - AutoBackupInterval: period of the automatic backup; 0 disables it.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - LogLevel: minimum level for the structured logger (debug/info/warn/error).
//   - SessionToken: bearer token for the backend API; read from the JSON
//     config only, like the S3 credentials.
//
// Units: intervals are time.Duration values (e.g., 5*time.Minute).
type Config struct {
	ServerEndpointAddr  string
	SnapshotPath        string
	AutoSyncInterval    time.Duration
	AutoBackupInterval  time.Duration
	OnlineCheckInterval time.Duration
	LogLevel            string
	SessionToken        string

	BackupBackend BackupBackend
	S3            S3Settings
}

// S3Settings configures the direct-to-bucket backup backend. Only consulted
// when BackupBackend is "s3"; credentials are read from the JSON config, not
// from flags.
type S3Settings struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	AccountID string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8080"
	c.SnapshotPath = "focusflow-storage.json"
	c.AutoSyncInterval = 5 * time.Minute
	c.AutoBackupInterval = 0
	c.OnlineCheckInterval = 30 * time.Second
	c.LogLevel = "info"
	c.BackupBackend = BackupBackendHTTP
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
