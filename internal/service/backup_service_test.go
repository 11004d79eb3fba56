package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"fitcoach/coach-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSnapshotStorage struct {
	lastKey  string
	lastData []byte
}

func (f *fakeSnapshotStorage) UploadSnapshot(ctx context.Context, objectKey string, data []byte) error {
	f.lastKey = objectKey
	f.lastData = data
	return nil
}

func TestBackup_UploadsCurrentState(t *testing.T) {
	svc, _, _ := newTestService(t)
	onboard(t, svc)
	_, err := svc.LogMeal(context.Background(), domain.MealLog{Name: "Oats", Calories: 350})
	require.NoError(t, err)

	snapshots := &fakeSnapshotStorage{}
	backups := NewBackupService(svc, snapshots)

	key, err := backups.Backup(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "backups/"), "key %q", key)
	assert.True(t, strings.HasSuffix(key, ".json"), "key %q", key)

	// The uploaded payload decodes back to exactly the current state.
	var uploaded domain.AppState
	require.NoError(t, json.Unmarshal(snapshots.lastData, &uploaded))
	assert.Equal(t, svc.State(context.Background()), &uploaded)
}

func TestBackup_DisabledWithoutStorage(t *testing.T) {
	svc, _, _ := newTestService(t)
	backups := NewBackupService(svc, nil)

	_, err := backups.Backup(context.Background())
	assert.ErrorIs(t, err, ErrBackupDisabled)
}
