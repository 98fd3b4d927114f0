package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/focusflow/internal/flagx"
	"github.com/dmitrijs2005/focusflow/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "5m" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	SnapshotPath        string         `json:"snapshot_path"`
	AutoSyncInterval    timex.Duration `json:"auto_sync_interval"`
	AutoBackupInterval  timex.Duration `json:"auto_backup_interval"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	LogLevel            string         `json:"log_level"`
	SessionToken        string         `json:"session_token"`
	BackupBackend       string         `json:"backup_backend"`
	S3                  JsonS3Settings `json:"s3"`
}

type JsonS3Settings struct {
	Endpoint  string `json:"endpoint"`
	Region    string `json:"region"`
	Bucket    string `json:"bucket"`
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
	AccountID string `json:"account_id"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Behavior:
//   - Reads and unmarshals the JSON into JsonConfig.
//   - Copies fields that are present into the provided Config; absent
//     fields keep their earlier (default) values.
//   - Panics on read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.SnapshotPath != "" {
		cfg.SnapshotPath = jc.SnapshotPath
	}
	if jc.AutoSyncInterval.Duration != 0 {
		cfg.AutoSyncInterval = time.Duration(jc.AutoSyncInterval.Duration)
	}
	if jc.AutoBackupInterval.Duration != 0 {
		cfg.AutoBackupInterval = time.Duration(jc.AutoBackupInterval.Duration)
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval.Duration)
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.SessionToken != "" {
		cfg.SessionToken = jc.SessionToken
	}
	if jc.BackupBackend != "" {
		cfg.BackupBackend = BackupBackend(jc.BackupBackend)
	}
	if jc.S3 != (JsonS3Settings{}) {
		cfg.S3 = S3Settings{
			Endpoint:  jc.S3.Endpoint,
			Region:    jc.S3.Region,
			Bucket:    jc.S3.Bucket,
			AccessKey: jc.S3.AccessKey,
			SecretKey: jc.S3.SecretKey,
			AccountID: jc.S3.AccountID,
		}
	}
}
