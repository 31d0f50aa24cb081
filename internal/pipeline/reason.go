// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

// ExitReason is the terminal state of a run. Every way a run can end maps
// to exactly one reason.
type ExitReason int

const (
	ExitOK ExitReason = iota
	ExitUsage
	ExitMissingDependencies
	ExitInvalidInput
	ExitNoInputs
	ExitArchiveFailed
	ExitInterrupted
)

var reasonNames = map[ExitReason]string{
	ExitOK:                  "ok",
	ExitUsage:               "usage",
	ExitMissingDependencies: "missing_dependencies",
	ExitInvalidInput:        "invalid_input",
	ExitNoInputs:            "no_inputs",
	ExitArchiveFailed:       "archive_failed",
	ExitInterrupted:         "interrupted",
}

func (r ExitReason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}
	return "unknown"
}

// Code is the process exit status for r. Only ExitOK succeeds; partial
// conversion failures still end in ExitOK.
func (r ExitReason) Code() int {
	if r == ExitOK {
		return 0
	}
	return 1
}
