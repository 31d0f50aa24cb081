// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives a full run: dependency check, input validation,
// discovery, sequential conversion, archiving, and the final report.
package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pdfbundle/internal/archive"
	"github.com/pdiddy/pdfbundle/internal/console"
	"github.com/pdiddy/pdfbundle/internal/convert"
	"github.com/pdiddy/pdfbundle/internal/toolchain"
	"github.com/pdiddy/pdfbundle/pkg/types"
)

const bytesPerMB = 1024 * 1024

// Recorder persists a finished run. history.Store implements it.
type Recorder interface {
	Record(ctx context.Context, run types.RunRecord) (string, error)
}

// Options are the per-invocation inputs.
type Options struct {
	// InputDir is the Markdown directory as given on the command line.
	InputDir string

	// ArchiveName overrides the timestamped default archive name.
	ArchiveName string

	Config types.Config
}

// Deps are the collaborators a run uses. Renderer, Executor and Out are
// required; the rest are optional.
type Deps struct {
	Renderer convert.Renderer
	Executor toolchain.Executor
	Out      *console.Printer
	Log      zerolog.Logger
	Recorder Recorder

	// Now defaults to time.Now.
	Now func() time.Time
}

// Outcome is the result of a run.
type Outcome struct {
	Reason      ExitReason
	InputDir    string
	ArchivePath string
	Missing     []string
	Summary     *convert.Summary
	Manifest    archive.Manifest

	// Err is the underlying error for failure reasons that have one.
	Err error
}

// Run executes the pipeline once. States only move forward; each failure
// state ends the run immediately.
func Run(ctx context.Context, opts Options, deps Deps) Outcome {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	started := now()
	cfg := withDefaults(opts.Config)
	out := deps.Out
	log := deps.Log

	oc := Outcome{InputDir: opts.InputDir, Summary: &convert.Summary{}}
	defer func() { record(ctx, deps, started, now(), &oc) }()

	// DependencyCheck
	if missing := toolchain.Check(ctx, deps.Executor, deps.Renderer.Dependencies()); len(missing) > 0 {
		toolchain.PrintRemediation(out.Writer(), missing)
		oc.Reason, oc.Missing = ExitMissingDependencies, missing
		return oc
	}
	log.Debug().Str("renderer", deps.Renderer.Name()).Msg("dependencies satisfied")

	// DirectoryValidate
	inputDir, err := ResolveInput(opts.InputDir)
	if err != nil {
		out.Error("%v", err)
		oc.Reason, oc.Err = ExitInvalidInput, err
		return oc
	}
	oc.InputDir = inputDir

	archiveName := opts.ArchiveName
	if archiveName == "" {
		archiveName = DefaultArchiveName(cfg.ArchivePrefix, started)
	}
	oc.ArchivePath = ArchivePath(inputDir, archiveName)

	info, err := os.Stat(inputDir)
	switch {
	case err != nil:
		out.Error("Directory does not exist: %s", inputDir)
		oc.Reason, oc.Err = ExitInvalidInput, err
		return oc
	case !info.IsDir():
		out.Error("Not a directory: %s", inputDir)
		oc.Reason = ExitInvalidInput
		return oc
	}

	// Discover
	files, err := convert.Discover(inputDir)
	if err != nil {
		out.Error("%v", err)
		oc.Reason, oc.Err = ExitInvalidInput, err
		return oc
	}
	if len(files) == 0 {
		out.Error("No .md files found in %s", inputDir)
		oc.Reason = ExitNoInputs
		return oc
	}

	out.Header("Found %d Markdown files", len(files))
	out.Printf("Input directory: %s\n", inputDir)
	out.Printf("Output zip: %s\n\n", archiveName)

	outputDir := filepath.Join(inputDir, cfg.OutputDir)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		out.Error("Cannot create output directory %s: %v", outputDir, err)
		oc.Reason, oc.Err = ExitInvalidInput, err
		return oc
	}

	// Convert
	tasks := convert.Tasks(files, outputDir)
	batchStart := time.Now()
	oc.Summary = convert.ConvertBatch(ctx, deps.Renderer, tasks, cfg.Timeout, out.Writer())
	log.Debug().
		Int("succeeded", oc.Summary.Succeeded).
		Int("total", oc.Summary.Total()).
		Dur("elapsed", time.Since(batchStart)).
		Msg("conversion batch finished")

	// Aggregate
	oc.Summary.Report(out.Writer())

	if ctx.Err() != nil {
		out.Error("Interrupted after %d of %d files", oc.Summary.Total(), len(tasks))
		oc.Reason, oc.Err = ExitInterrupted, ctx.Err()
		return oc
	}

	// Archive
	var archiveOpts archive.Options
	if cfg.OnlyConverted {
		archiveOpts.Include = append([]string{}, oc.Summary.Outputs()...)
	}
	manifest, err := archive.Create(outputDir, oc.ArchivePath, archiveOpts, out.Writer())
	if err != nil {
		if errors.Is(err, archive.ErrNoFiles) {
			out.Error("No PDF files to archive")
		} else {
			out.Error("%v", err)
		}
		out.Println()
		out.Error("Failed to create zip archive")
		oc.Reason, oc.Err = ExitArchiveFailed, err
		return oc
	}
	oc.Manifest = manifest

	// Report
	out.Println()
	out.Success("Final output: %s", manifest.Path)
	out.Printf("Size: %.2f MB\n", float64(manifest.Size)/bytesPerMB)

	oc.Reason = ExitOK
	return oc
}

func withDefaults(cfg types.Config) types.Config {
	def := types.DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = def.OutputDir
	}
	if cfg.ArchivePrefix == "" {
		cfg.ArchivePrefix = def.ArchivePrefix
	}
	return cfg
}

func record(ctx context.Context, deps Deps, started, finished time.Time, oc *Outcome) {
	if deps.Recorder == nil {
		return
	}
	run := types.RunRecord{
		StartedAt:   started,
		FinishedAt:  finished,
		InputDir:    oc.InputDir,
		ArchivePath: oc.ArchivePath,
		ExitReason:  oc.Reason.String(),
		Succeeded:   oc.Summary.Succeeded,
		Total:       oc.Summary.Total(),
	}
	for _, r := range oc.Summary.Results {
		run.Files = append(run.Files, types.FileRecordFrom(r))
	}

	// Record after an interrupt still needs a live context.
	id, err := deps.Recorder.Record(context.WithoutCancel(ctx), run)
	if err != nil {
		deps.Log.Warn().Err(err).Msg("recording run history failed")
		return
	}
	deps.Log.Debug().Str("run_id", id).Msg("run recorded")
}
