// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfbundle/internal/console"
	"github.com/pdiddy/pdfbundle/internal/convert"
	"github.com/pdiddy/pdfbundle/internal/history"
	"github.com/pdiddy/pdfbundle/internal/logging"
	"github.com/pdiddy/pdfbundle/internal/pipeline"
	"github.com/pdiddy/pdfbundle/internal/toolchain"
	"github.com/pdiddy/pdfbundle/pkg/types"
)

func runBundle(cmd *cobra.Command, args []string) error {
	// Arguments are valid; from here on the pipeline prints its own
	// diagnostics.
	cmd.SilenceUsage = true

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := logging.New(cfg.LogLevel, os.Stderr)
	log.Debug().Interface("config", cfg).Msg("configuration loaded")

	opts := pipeline.Options{InputDir: args[0], Config: cfg}
	if len(args) >= 2 {
		opts.ArchiveName = args[1]
	}

	ex := &toolchain.OSExecutor{}
	deps := pipeline.Deps{
		Renderer: convert.NewPandocRenderer(cfg.Pandoc, ex),
		Executor: ex,
		Out:      console.New(os.Stdout, cfg.Color),
		Log:      log,
	}

	if store := openHistory(cfg.History, log); store != nil {
		defer store.Close()
		deps.Recorder = store
	}

	oc := pipeline.Run(cmd.Context(), opts, deps)
	if oc.Reason != pipeline.ExitOK {
		return newExitError(oc.Reason, nil)
	}
	return nil
}

// openHistory opens the history store, or returns nil when history is
// disabled or cannot be opened, logging a warning for the latter. History
// never blocks a conversion run.
func openHistory(cfg types.HistoryConfig, log zerolog.Logger) *history.Store {
	if !cfg.Enabled {
		return nil
	}
	path, err := historyPath(cfg.Path)
	if err != nil {
		log.Warn().Err(err).Msg("run history disabled")
		return nil
	}
	store, err := history.Open(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("run history disabled")
		return nil
	}
	return store
}
