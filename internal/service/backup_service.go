package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fitcoach/coach-app/internal/domain"
	"fitcoach/coach-app/internal/storage"

	"github.com/google/uuid"
)

var ErrBackupDisabled = errors.New("backup storage is not configured")

// BackupService uploads a snapshot of the current state to object storage.
type BackupService interface {
	// Backup serializes the current state and uploads it. It returns the
	// object key the snapshot was stored under.
	Backup(ctx context.Context) (string, error)
}

type backupService struct {
	coach     CoachService
	snapshots storage.SnapshotStorage
	now       func() time.Time
}

// NewBackupService creates a backup service. Snapshots may be nil when no
// backup backend is configured; Backup then reports ErrBackupDisabled.
func NewBackupService(coach CoachService, snapshots storage.SnapshotStorage) BackupService {
	return &backupService{
		coach:     coach,
		snapshots: snapshots,
		now:       time.Now,
	}
}

// Backup encodes the state with the same encoder the persistence layer uses,
// so a restored snapshot loads like any other state file.
func (b *backupService) Backup(ctx context.Context) (string, error) {
	if b.snapshots == nil {
		return "", ErrBackupDisabled
	}

	state := b.coach.State(ctx)
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode state snapshot: %w", err)
	}

	key := fmt.Sprintf("backups/%s-%s.json", domain.DayString(b.now()), uuid.NewString())
	if err := b.snapshots.UploadSnapshot(ctx, key, data); err != nil {
		return "", err
	}
	return key, nil
}
