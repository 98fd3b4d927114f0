package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"server_endpoint_addr": "https://focusflow.example",
		"auto_sync_interval":   "10m",
		"online_check_interval": "10s",
		"session_token":        "tok-123",
		"backup_backend":       "s3",
		"s3": map[string]any{
			"bucket":     "focusflow-backups",
			"region":     "us-east-1",
			"account_id": "user-1",
		},
	})

	t.Run("loads from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "https://focusflow.example", cfg.ServerEndpointAddr)
		assert.Equal(t, 10*time.Minute, cfg.AutoSyncInterval)
		assert.Equal(t, 10*time.Second, cfg.OnlineCheckInterval)
		assert.Equal(t, "tok-123", cfg.SessionToken)
		assert.Equal(t, BackupBackendS3, cfg.BackupBackend)
		assert.Equal(t, "focusflow-backups", cfg.S3.Bucket)
		assert.Equal(t, "user-1", cfg.S3.AccountID)
	})

	t.Run("no CONFIG and no flags means no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{
			ServerEndpointAddr:  "defaults:1234",
			OnlineCheckInterval: 42 * time.Second,
		}
		parseJson(cfg)

		assert.Equal(t, "defaults:1234", cfg.ServerEndpointAddr)
		assert.Equal(t, 42*time.Second, cfg.OnlineCheckInterval)
	})

	t.Run("absent fields keep earlier values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{
			"log_level": "debug",
		})
		os.Args = []string{"testbin", "-config", partial}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "http://127.0.0.1:8080", cfg.ServerEndpointAddr)
		assert.Equal(t, 5*time.Minute, cfg.AutoSyncInterval)
	})

	t.Run("unreadable file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", filepath.Join(dir, "missing.json")}

		cfg := &Config{}
		assert.Panics(t, func() { parseJson(cfg) })
	})
}

func Test_parseJson_NanosecondDurations(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"auto_backup_interval": int64(time.Hour),
	})
	os.Args = []string{"testbin", "-c", path}

	cfg := &Config{}
	parseJson(cfg)

	assert.Equal(t, time.Hour, cfg.AutoBackupInterval)
}
