package store

import (
	"context"

	"fitcoach/coach-app/internal/domain"
)

// Error constants for the store layer
var (
	ErrNoState    = StoreError("no prior state")
	ErrSaveFailed = StoreError("save failed")
)

// StoreError helps distinguish store errors
type StoreError string

func (e StoreError) Error() string {
	return string(e)
}

// StateStore defines the interface for persisting the whole application state
// as one blob. Load is called once at startup; Save after every successful
// state transition (full-state overwrite, not incremental).
//
// A corrupt or unparsable blob must surface as ErrNoState rather than a hard
// error: the caller falls open to a fresh state instead of crashing.
type StateStore interface {
	Load(ctx context.Context) (*domain.AppState, error)
	Save(ctx context.Context, state *domain.AppState) error
}
