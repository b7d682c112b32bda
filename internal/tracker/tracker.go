// Package tracker chains Toggl API calls into the multi-step commands.
package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/beardo/toggl-tui/internal/logging"
	"github.com/beardo/toggl-tui/internal/model"
)

var (
	ErrNoEntries      = errors.New("no entries found")
	ErrNoRunningEntry = errors.New("no running entry")
	ErrAlreadyRunning = errors.New("most recent entry is still running")
)

// API is the subset of the Toggl client used by the commands.
type API interface {
	GetCurrent(ctx context.Context) (*model.Entry, error)
	GetMine(ctx context.Context) ([]model.Entry, error)
	StopEntry(ctx context.Context, workspaceID, entryID int64) error
	StartEntry(ctx context.Context, template model.Entry) (*model.Entry, error)
}

// Last returns the most recent entry, which is the first one the API lists.
func Last(ctx context.Context, api API) (*model.Entry, error) {
	entries, err := api.GetMine(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}
	return &entries[0], nil
}

// StopCurrent stops the running entry and returns it as it was before the stop.
func StopCurrent(ctx context.Context, api API) (*model.Entry, error) {
	current, err := api.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNoRunningEntry
	}
	if err := api.StopEntry(ctx, current.WorkspaceID, current.ID); err != nil {
		return nil, err
	}
	logging.Info("stopped entry", "id", current.ID, "workspace", current.WorkspaceID)
	return current, nil
}

// Restart starts a new entry copied from the most recent one. A most recent
// entry that is still running is refused rather than duplicated.
func Restart(ctx context.Context, api API) (*model.Entry, error) {
	last, err := Last(ctx, api)
	if err != nil {
		return nil, err
	}
	if last.Running() {
		return nil, fmt.Errorf("%w: %q", ErrAlreadyRunning, last.Description)
	}
	created, err := api.StartEntry(ctx, *last)
	if err != nil {
		return nil, err
	}
	logging.Info("restarted entry", "from", last.ID, "id", created.ID)
	return created, nil
}
