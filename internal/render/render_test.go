package render_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/beardo/toggl-tui/internal/model"
	"github.com/beardo/toggl-tui/internal/render"
)

var now = time.Date(2024, 4, 21, 12, 0, 0, 0, time.UTC)

func newPrinter(buf *bytes.Buffer, f render.Format) *render.Printer {
	return render.NewPrinter(buf, f).
		WithLocation(time.UTC).
		WithClock(func() time.Time { return now })
}

func sampleEntries() []model.Entry {
	stop := time.Date(2024, 4, 20, 17, 30, 0, 0, time.UTC)
	return []model.Entry{
		{ID: 2, WorkspaceID: 1, Description: "Test Item", Start: time.Date(2024, 4, 21, 10, 30, 0, 0, time.UTC)},
		{ID: 1, WorkspaceID: 1, Description: "", Start: time.Date(2024, 4, 20, 16, 0, 0, 0, time.UTC), Stop: &stop},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    render.Format
		wantErr bool
	}{
		{"", render.FormatText, false},
		{"text", render.FormatText, false},
		{"JSON", render.FormatJSON, false},
		{"yaml", render.FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := render.ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestEntryText(t *testing.T) {
	var buf bytes.Buffer
	e := sampleEntries()[0]
	require.NoError(t, newPrinter(&buf, render.FormatText).Entry(&e))

	out := buf.String()
	assert.Contains(t, out, "Active: ✅")
	assert.Contains(t, out, "Description: Test Item")
	assert.Contains(t, out, "Start: 21.04.2024 10:30:00")
	assert.NotContains(t, out, "Stop:")
	assert.Contains(t, out, "Duration: 01:30:00")
}

func TestStoppedEntryText(t *testing.T) {
	var buf bytes.Buffer
	e := sampleEntries()[1]
	require.NoError(t, newPrinter(&buf, render.FormatText).Entry(&e))

	out := buf.String()
	assert.Contains(t, out, "Active: ❌")
	assert.Contains(t, out, "Description: (no description)")
	assert.Contains(t, out, "Stop: 20.04.2024 17:30:00")
	assert.Contains(t, out, "Duration: 01:30:00")
}

func TestNilEntry(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newPrinter(&buf, render.FormatText).Entry(nil))
	assert.Equal(t, "No current entry.\n", buf.String())

	buf.Reset()
	require.NoError(t, newPrinter(&buf, render.FormatJSON).Entry(nil))
	assert.Equal(t, "null\n", buf.String())
}

func TestEntriesText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newPrinter(&buf, render.FormatText).Entries(sampleEntries()))

	out := buf.String()
	assert.Contains(t, out, "2024-04-21\n")
	assert.Contains(t, out, "10:30–ongoing  Test Item (1h 30m)")
	assert.Contains(t, out, "2024-04-20\n")
	assert.Contains(t, out, "16:00–17:30  (no description) (1h 30m)")
}

func TestEntriesEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newPrinter(&buf, render.FormatText).Entries(nil))
	assert.Equal(t, "No entries found.\n", buf.String())

	buf.Reset()
	require.NoError(t, newPrinter(&buf, render.FormatJSON).Entries(nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestEntriesJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newPrinter(&buf, render.FormatJSON).Entries(sampleEntries()))

	var got []model.Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Test Item", got[0].Description)
	assert.Nil(t, got[0].Stop)
}

func TestProfileYAML(t *testing.T) {
	var buf bytes.Buffer
	me := &model.Profile{Email: "jane@example.com", Fullname: "Jane Doe"}
	require.NoError(t, newPrinter(&buf, render.FormatYAML).Profile(me))

	var got map[string]string
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "jane@example.com", got["email"])
	assert.Equal(t, "Jane Doe", got["fullname"])
}

func TestProfileText(t *testing.T) {
	var buf bytes.Buffer
	me := &model.Profile{Email: "jane@example.com", Fullname: "Jane Doe"}
	require.NoError(t, newPrinter(&buf, render.FormatText).Profile(me))

	assert.Equal(t, "User is logged in as:\nEmail: jane@example.com\nFull Name: Jane Doe\n", buf.String())
}
