// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RunRecord is the persisted summary of one pipeline run.
type RunRecord struct {
	// ID is a random UUID assigned when the run starts.
	ID string `json:"id" yaml:"id"`

	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`

	// InputDir is the absolute Markdown directory the run scanned.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// ArchivePath is the zip the run targeted, whether or not it was written.
	ArchivePath string `json:"archive_path" yaml:"archive_path"`

	// ExitReason is the pipeline's terminal state (e.g. "ok", "no_inputs").
	ExitReason string `json:"exit_reason" yaml:"exit_reason"`

	Succeeded int `json:"succeeded" yaml:"succeeded"`
	Total     int `json:"total" yaml:"total"`

	Files []FileRecord `json:"files,omitempty" yaml:"files,omitempty"`
}

// FileRecord is the persisted outcome of one conversion within a run.
type FileRecord struct {
	Name     string           `json:"name" yaml:"name"`
	Output   string           `json:"output" yaml:"output"`
	Status   ConversionStatus `json:"status" yaml:"status"`
	Detail   string           `json:"detail,omitempty" yaml:"detail,omitempty"`
	Duration time.Duration    `json:"duration" yaml:"duration"`
}

// FileRecordFrom converts a conversion result into its persisted form.
func FileRecordFrom(r ConversionResult) FileRecord {
	return FileRecord{
		Name:     r.Task.Name(),
		Output:   r.Task.Output,
		Status:   r.Status,
		Detail:   r.Detail,
		Duration: r.Duration,
	}
}
