package model

import "time"

// Entry represents a single time entry as returned by the Toggl API.
// A nil Stop means the entry is currently running.
type Entry struct {
	ID          int64      `json:"id,omitempty" yaml:"id,omitempty"`
	WorkspaceID int64      `json:"workspace_id" yaml:"workspace_id"`
	Description string     `json:"description" yaml:"description"`
	Billable    bool       `json:"billable" yaml:"billable"`
	Start       time.Time  `json:"start" yaml:"start"`
	Stop        *time.Time `json:"stop" yaml:"stop"`
	Duration    int64      `json:"duration,omitempty" yaml:"duration,omitempty"`
	TaskID      *int64     `json:"task_id" yaml:"task_id"`
	ProjectID   *int64     `json:"project_id" yaml:"project_id"`
	Tags        []string   `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Running reports whether the entry has no stop time yet.
func (e Entry) Running() bool {
	return e.Stop == nil
}

// Elapsed returns the tracked time of the entry, measured up to now for a
// running entry.
func (e Entry) Elapsed(now time.Time) time.Duration {
	if e.Stop != nil {
		return e.Stop.Sub(e.Start)
	}
	return now.Sub(e.Start)
}

// RunningDuration is the duration value the API expects for an entry that is
// started without a stop time.
const RunningDuration int64 = -1

// NewEntry is the request body used to create a time entry.
type NewEntry struct {
	CreatedWith string   `json:"created_with"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Billable    bool     `json:"billable"`
	WorkspaceID int64    `json:"workspace_id"`
	TaskID      *int64   `json:"task_id"`
	ProjectID   *int64   `json:"project_id"`
	Duration    int64    `json:"duration"`
	Start       string   `json:"start"`
	Stop        *string  `json:"stop"`
}

// RestartOf builds a running entry that copies the tracked attributes of
// template and starts at now.
func RestartOf(template Entry, createdWith string, now time.Time) NewEntry {
	return NewEntry{
		CreatedWith: createdWith,
		Description: template.Description,
		Tags:        []string{},
		Billable:    template.Billable,
		WorkspaceID: template.WorkspaceID,
		TaskID:      template.TaskID,
		ProjectID:   template.ProjectID,
		Duration:    RunningDuration,
		Start:       now.UTC().Format(time.RFC3339),
		Stop:        nil,
	}
}
