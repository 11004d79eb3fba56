package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"fitcoach/coach-app/internal/domain"
)

// DefaultStateFileName is the fixed key the state blob lives under when no
// path is configured.
const DefaultStateFileName = "fitcoach_state.json"

// fileStore implements StateStore on a single local JSON file.
type fileStore struct {
	path string
}

// NewFileStore creates a file-backed state store at the given path. The
// parent directory is created if missing.
func NewFileStore(path string) (StateStore, error) {
	if path == "" {
		path = DefaultStateFileName
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create state directory: %w", err)
		}
	}
	return &fileStore{path: path}, nil
}

// Load reads and decodes the state blob. A missing file or one that fails to
// decode both report ErrNoState; the latter is logged since it means data was
// lost, but it must not crash startup.
func (f *fileStore) Load(ctx context.Context) (*domain.AppState, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoState
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var state domain.AppState
	if err := json.Unmarshal(data, &state); err != nil {
		slog.Warn("state file is unparsable, treating as no prior state",
			"path", f.path, "error", err)
		return nil, ErrNoState
	}
	normalizeLoaded(&state)
	return &state, nil
}

// Save overwrites the blob atomically (temp file + rename) so a crash mid
// write can never leave a half-written state behind.
func (f *fileStore) Save(ctx context.Context, state *domain.AppState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	return nil
}

// normalizeLoaded backfills nil log slices so callers can append without nil
// checks. Older blobs may predate the version field; keep them loading.
func normalizeLoaded(state *domain.AppState) {
	if state.Version == 0 {
		state.Version = domain.StateVersion
	}
	if state.Logs.Meals == nil {
		state.Logs.Meals = []domain.MealLog{}
	}
	if state.Logs.Workouts == nil {
		state.Logs.Workouts = []domain.WorkoutSession{}
	}
	if state.Logs.WeightHistory == nil {
		state.Logs.WeightHistory = []domain.WeightSample{}
	}
}
