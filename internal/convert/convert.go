// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert renders Markdown files to PDF through a pluggable
// Renderer and aggregates the per-file outcomes of a batch.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pdiddy/pdfbundle/internal/toolchain"
	"github.com/pdiddy/pdfbundle/pkg/types"
)

// ErrTimeout is returned by renderers that enforce their own deadline.
var ErrTimeout = errors.New("conversion timed out")

// Renderer turns one Markdown file into a PDF. Different tool chains
// implement this interface; PandocRenderer is the production one.
type Renderer interface {
	// Name identifies the renderer in diagnostics.
	Name() string

	// Dependencies lists the executables Render needs on PATH.
	Dependencies() []toolchain.Tool

	// Render writes task.Output from task.Input. It must return when ctx is
	// done.
	Render(ctx context.Context, task types.ConversionTask) error
}

// RenderError reports a renderer process that ran and exited non-zero.
type RenderError struct {
	Tool     string
	ExitCode int
	Stderr   string
}

func (e *RenderError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("%s exited with status %d", e.Tool, e.ExitCode)
	}
	return fmt.Sprintf("%s exited with status %d: %s", e.Tool, e.ExitCode, msg)
}

// ConvertFile renders a single task under a hard timeout, printing progress
// to w. Every failure is folded into the returned result; nothing is retried.
func ConvertFile(ctx context.Context, r Renderer, task types.ConversionTask, timeout time.Duration, w io.Writer) types.ConversionResult {
	fmt.Fprintf(w, "Converting: %s -> %s\n", task.Name(), baseName(task.Output))

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := r.Render(runCtx, task)
	result := types.ConversionResult{
		Task:     task,
		Status:   types.ConversionSucceeded,
		Duration: time.Since(start),
	}

	if err == nil {
		fmt.Fprintf(w, "  SUCCESS: Created %s\n", baseName(task.Output))
		return result
	}

	var renderErr *RenderError
	switch {
	case ctx.Err() != nil:
		result.Status = types.ConversionFailed
		result.Detail = "interrupted"
		fmt.Fprintln(w, "  ERROR: Conversion interrupted")
	case errors.Is(err, ErrTimeout) || errors.Is(runCtx.Err(), context.DeadlineExceeded):
		result.Status = types.ConversionTimedOut
		result.Detail = ErrTimeout.Error()
		fmt.Fprintln(w, "  ERROR: Conversion timed out")
	case errors.As(err, &renderErr):
		result.Status = types.ConversionFailed
		result.Detail = renderErr.Stderr
		fmt.Fprintf(w, "  ERROR: %s\n", renderErr.Stderr)
	default:
		result.Status = types.ConversionFailed
		result.Detail = err.Error()
		fmt.Fprintf(w, "  ERROR: %v\n", err)
	}
	return result
}

// ConvertBatch converts tasks sequentially, in order, and returns the
// aggregated summary. A failed file never stops the batch; a cancelled ctx
// stops it before the next file starts.
func ConvertBatch(ctx context.Context, r Renderer, tasks []types.ConversionTask, timeout time.Duration, w io.Writer) *Summary {
	summary := &Summary{}
	for _, task := range tasks {
		if ctx.Err() != nil {
			break
		}
		summary.Add(ConvertFile(ctx, r, task, timeout, w))
	}
	return summary
}

// Tasks maps each input to its output inside outputDir.
func Tasks(inputs []string, outputDir string) []types.ConversionTask {
	tasks := make([]types.ConversionTask, len(inputs))
	for i, in := range inputs {
		tasks[i] = types.NewTask(in, outputDir)
	}
	return tasks
}
