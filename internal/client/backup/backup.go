// Package backup turns the exported domain document into a remote,
// optionally encrypted backup artifact and restores it later.
//
// Each account owns a single well-known artifact: creating a backup means
// overwriting it, not accumulating history.
package backup

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/focusflow/internal/client/export"
	"github.com/dmitrijs2005/focusflow/internal/client/models"
	"github.com/dmitrijs2005/focusflow/internal/client/store"
	"github.com/dmitrijs2005/focusflow/internal/common"
	"github.com/dmitrijs2005/focusflow/internal/cryptox"
	"github.com/dmitrijs2005/focusflow/internal/logging"
)

// ArtifactName is the fixed name of the account's single backup artifact.
const ArtifactName = "focusflow-backup.json"

// BlobStore is the remote artifact storage the service uploads to. The HTTP
// client in internal/client/api and the S3 store in this package both
// implement it.
type BlobStore interface {
	// Upsert creates or overwrites the named artifact.
	Upsert(ctx context.Context, name string, data []byte) (*models.BackupDescriptor, error)

	// List returns the remote listing; empty is a valid result.
	List(ctx context.Context) ([]models.BackupDescriptor, error)

	// Download fetches an artifact's content by id.
	Download(ctx context.Context, id string) ([]byte, error)

	// Delete removes an artifact; deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
}

// Service orchestrates backup creation, restore and the auto-backup loop.
type Service struct {
	store *store.Store
	blobs BlobStore
	log   logging.Logger

	mu       sync.Mutex
	stopAuto context.CancelFunc
}

func NewService(s *store.Store, blobs BlobStore, log logging.Logger) *Service {
	return &Service{store: s, blobs: blobs, log: log}
}

// Create exports the current state, optionally encrypts it with
// encryptionKey, and uploads it as the account's single artifact. Auth
// failures propagate as common.ErrUnauthorized so the caller can
// re-authenticate; everything else is wrapped as common.ErrBackup.
func (s *Service) Create(ctx context.Context, encryptionKey string) (*models.BackupDescriptor, error) {
	data, err := export.ExportAll(s.store)
	if err != nil {
		return nil, fmt.Errorf("%w: export: %w", common.ErrBackup, err)
	}

	if encryptionKey != "" {
		encrypted, err := cryptox.EncryptToString(string(data), encryptionKey)
		if err != nil {
			return nil, fmt.Errorf("%w: encrypt: %w", common.ErrBackup, err)
		}
		data = []byte(encrypted)
	}

	desc, err := s.blobs.Upsert(ctx, ArtifactName, data)
	if err != nil {
		return nil, classify(err, "upload")
	}
	return desc, nil
}

// List fetches the remote listing.
func (s *Service) List(ctx context.Context) ([]models.BackupDescriptor, error) {
	list, err := s.blobs.List(ctx)
	if err != nil {
		return nil, classify(err, "list")
	}
	return list, nil
}

// Restore downloads the artifact, optionally decrypts it, and replaces the
// domain state. Any failure (download, wrong key, malformed document)
// aborts before the store is touched.
func (s *Service) Restore(ctx context.Context, id, decryptionKey string) error {
	data, err := s.blobs.Download(ctx, id)
	if err != nil {
		return classify(err, "download")
	}

	if decryptionKey != "" {
		plaintext, err := cryptox.DecryptFromString(string(data), decryptionKey)
		if err != nil {
			return err
		}
		data = []byte(plaintext)
	}

	if !export.ImportAll(s.store, data) {
		return fmt.Errorf("%w: backup document rejected", common.ErrValidation)
	}
	return nil
}

// Delete removes the remote artifact. Idempotent.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.blobs.Delete(ctx, id); err != nil {
		return classify(err, "delete")
	}
	return nil
}

// StartAuto begins a best-effort backup schedule. A failed attempt is
// logged and the schedule keeps running; only one schedule can be active,
// starting a new one cancels the previous.
func (s *Service) StartAuto(interval time.Duration, encryptionKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopAuto != nil {
		s.stopAuto()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.stopAuto = cancel

	go s.runAuto(ctx, interval, encryptionKey)
}

// StopAuto cancels the active schedule, releasing its timer so no further
// ticks fire.
func (s *Service) StopAuto() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopAuto != nil {
		s.stopAuto()
		s.stopAuto = nil
	}
}

// AutoActive reports whether a schedule is currently running.
func (s *Service) AutoActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopAuto != nil
}

func (s *Service) runAuto(ctx context.Context, interval time.Duration, encryptionKey string) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Create(ctx, encryptionKey); err != nil {
				if ctx.Err() != nil {
					return
				}
				// transient failures must not silently disable future backups
				s.log.Error(ctx, "scheduled backup failed", "error", err)
				continue
			}
			s.log.Info(ctx, "scheduled backup completed")
		}
	}
}

// classify keeps auth failures distinguishable from backup failures.
func classify(err error, op string) error {
	if errors.Is(err, common.ErrUnauthorized) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", common.ErrBackup, op, err)
}
