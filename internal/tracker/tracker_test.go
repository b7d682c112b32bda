package tracker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beardo/toggl-tui/internal/model"
	"github.com/beardo/toggl-tui/internal/tracker"
)

type fakeAPI struct {
	current  *model.Entry
	mine     []model.Entry
	err      error
	stopped  [][2]int64
	started  []model.Entry
	startErr error
}

func (f *fakeAPI) GetCurrent(context.Context) (*model.Entry, error) { return f.current, f.err }
func (f *fakeAPI) GetMine(context.Context) ([]model.Entry, error)   { return f.mine, f.err }

func (f *fakeAPI) StopEntry(_ context.Context, ws, id int64) error {
	f.stopped = append(f.stopped, [2]int64{ws, id})
	return nil
}

func (f *fakeAPI) StartEntry(_ context.Context, template model.Entry) (*model.Entry, error) {
	if f.startErr != nil {
		return nil, f.startErr
	}
	f.started = append(f.started, template)
	created := template
	created.ID = 1000
	created.Stop = nil
	return &created, nil
}

func stoppedEntry(id int64, desc string) model.Entry {
	start := time.Date(2026, 2, 27, 9, 0, 0, 0, time.UTC)
	stop := start.Add(time.Hour)
	return model.Entry{ID: id, WorkspaceID: 7, Description: desc, Start: start, Stop: &stop}
}

func TestLast(t *testing.T) {
	api := &fakeAPI{mine: []model.Entry{stoppedEntry(2, "newest"), stoppedEntry(1, "older")}}
	got, err := tracker.Last(context.Background(), api)
	require.NoError(t, err)
	assert.Equal(t, "newest", got.Description)
}

func TestLastEmpty(t *testing.T) {
	_, err := tracker.Last(context.Background(), &fakeAPI{})
	assert.ErrorIs(t, err, tracker.ErrNoEntries)
}

func TestRestart(t *testing.T) {
	api := &fakeAPI{mine: []model.Entry{stoppedEntry(2, "newest"), stoppedEntry(1, "older")}}

	created, err := tracker.Restart(context.Background(), api)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), created.ID)
	require.Len(t, api.started, 1)
	assert.Equal(t, int64(2), api.started[0].ID)
}

func TestRestartWithoutEntriesNeverCreates(t *testing.T) {
	api := &fakeAPI{}

	_, err := tracker.Restart(context.Background(), api)
	require.ErrorIs(t, err, tracker.ErrNoEntries)
	assert.Equal(t, "no entries found", err.Error())
	assert.Empty(t, api.started)
}

func TestRestartRefusesRunningEntry(t *testing.T) {
	running := stoppedEntry(2, "still going")
	running.Stop = nil
	api := &fakeAPI{mine: []model.Entry{running}}

	_, err := tracker.Restart(context.Background(), api)
	require.ErrorIs(t, err, tracker.ErrAlreadyRunning)
	assert.Empty(t, api.started)
}

func TestRestartPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")

	_, err := tracker.Restart(context.Background(), &fakeAPI{err: boom})
	assert.ErrorIs(t, err, boom)

	api := &fakeAPI{mine: []model.Entry{stoppedEntry(1, "x")}, startErr: boom}
	_, err = tracker.Restart(context.Background(), api)
	assert.ErrorIs(t, err, boom)
}

func TestStopCurrent(t *testing.T) {
	running := stoppedEntry(42, "work")
	running.Stop = nil
	api := &fakeAPI{current: &running}

	got, err := tracker.StopCurrent(context.Background(), api)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, [][2]int64{{7, 42}}, api.stopped)
}

func TestStopCurrentNothingRunning(t *testing.T) {
	api := &fakeAPI{}
	_, err := tracker.StopCurrent(context.Background(), api)
	assert.ErrorIs(t, err, tracker.ErrNoRunningEntry)
	assert.Empty(t, api.stopped)
}
