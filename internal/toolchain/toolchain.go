// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package toolchain runs the external executables pdfbundle depends on and
// verifies that they can be found before any work starts.
package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
	"time"
)

// defaultWaitDelay bounds how long Run waits for a killed process's output
// pipes to close after its context is done.
const defaultWaitDelay = 2 * time.Second

// Executor runs a command to completion. Production code uses OSExecutor;
// tests substitute a fake.
type Executor interface {
	// Run executes name with args, copying the process's output streams to
	// stdout and stderr (either may be nil to discard). It returns when the
	// process exits or ctx is done, whichever comes first.
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

// OSExecutor is the Executor backed by os/exec.
type OSExecutor struct {
	// WaitDelay overrides defaultWaitDelay when non-zero.
	WaitDelay time.Duration
}

func (o *OSExecutor) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = defaultWaitDelay
	if o.WaitDelay > 0 {
		cmd.WaitDelay = o.WaitDelay
	}
	return cmd.Run()
}

// IsNotFound reports whether err means the executable itself could not be
// located, as opposed to the program running and failing.
func IsNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}

// ExitCode returns the process exit code carried by err, or -1 when err
// does not come from a process that exited.
func ExitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// Tool is one required executable and the probe command used to detect it.
type Tool struct {
	// Name is the label reported when the tool is missing.
	Name string

	// Command is the probe invocation, e.g. ["pandoc", "--version"].
	Command []string
}

func (t Tool) probe() (string, []string) {
	if len(t.Command) == 0 {
		return t.Name, nil
	}
	return t.Command[0], t.Command[1:]
}

// Check runs every tool's probe command with output discarded and returns
// the names of tools whose executable could not be found, in input order.
// A tool that runs but exits non-zero still counts as present.
func Check(ctx context.Context, ex Executor, tools []Tool) []string {
	var missing []string
	for _, t := range tools {
		name, args := t.probe()
		err := ex.Run(ctx, name, args, io.Discard, io.Discard)
		if err != nil && IsNotFound(err) {
			missing = append(missing, t.Name)
		}
	}
	return missing
}

// PrintRemediation writes the missing tool list followed by per-platform
// install instructions.
func PrintRemediation(w io.Writer, missing []string) {
	fmt.Fprintln(w, "ERROR: Missing required dependencies:")
	for _, name := range missing {
		fmt.Fprintf(w, "  - %s\n", name)
	}
	fmt.Fprintln(w, "\nInstall with:")
	fmt.Fprintln(w, "  Ubuntu/Debian: sudo apt-get install pandoc texlive-full")
	fmt.Fprintln(w, "  macOS: brew install pandoc basictex")
	fmt.Fprintln(w, "  Windows: Install MiKTeX and Pandoc from their websites")
}
