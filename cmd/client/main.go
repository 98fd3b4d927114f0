package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/focusflow/internal/buildinfo"
	"github.com/dmitrijs2005/focusflow/internal/client/api"
	"github.com/dmitrijs2005/focusflow/internal/client/auth"
	"github.com/dmitrijs2005/focusflow/internal/client/backup"
	"github.com/dmitrijs2005/focusflow/internal/client/cli"
	"github.com/dmitrijs2005/focusflow/internal/client/config"
	"github.com/dmitrijs2005/focusflow/internal/client/store"
	syncer "github.com/dmitrijs2005/focusflow/internal/client/sync"
	"github.com/dmitrijs2005/focusflow/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger, err := logging.NewProductionZapLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}

	st, err := store.New(store.NewFileSnapshotter(cfg.SnapshotPath), logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	apiClient := api.NewClient(cfg.ServerEndpointAddr, nil)
	if cfg.SessionToken != "" {
		apiClient.SetSessionToken(cfg.SessionToken)
	}
	tokens := auth.NewProvider(apiClient.FetchStorageToken)

	var blobs backup.BlobStore
	switch cfg.BackupBackend {
	case config.BackupBackendS3:
		blobs, err = backup.NewS3Store(ctx, backup.S3Config{
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			Bucket:    cfg.S3.Bucket,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			AccountID: cfg.S3.AccountID,
		})
		if err != nil {
			log.Fatalf("%v", err)
		}
	default:
		blobs = api.NewBlobClient(cfg.ServerEndpointAddr, nil, tokens)
	}

	backups := backup.NewService(st, blobs, logger)
	reconciler := syncer.New(st, apiClient, logger)

	app := cli.NewApp(cfg, st, backups, reconciler, logger)
	app.Run(ctx)

}
