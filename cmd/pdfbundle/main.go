// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdfbundle CLI: render every
// Markdown file in a directory to PDF and bundle the results into a zip.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfbundle/internal/pipeline"
)

// version is set at build time via ldflags.
var version = "dev"

// exitError carries a process exit code out of a command. err is nil when
// the diagnostics have already been printed.
type exitError struct {
	code   int
	reason string
	err    error
}

func newExitError(reason pipeline.ExitReason, err error) *exitError {
	return &exitError{code: reason.Code(), reason: reason.String(), err: err}
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return e.reason
}

func (e *exitError) Unwrap() error { return e.err }

// usageArgs reports argument validation failures as ExitUsage.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return newExitError(pipeline.ExitUsage, err)
		}
		return nil
	}
}

// rootCmd converts a Markdown directory and archives the PDFs.
var rootCmd = &cobra.Command{
	Use:   "pdfbundle <markdown_directory> [output_zip_name]",
	Short: "Convert a directory of Markdown files to PDFs and zip them",
	Long: `pdfbundle renders every *.md file directly under a directory to PDF with
pandoc and a LaTeX engine, writing the PDFs to <dir>/pdf_output, then bundles
every PDF found there into a single zip archive inside <dir>.

A failed file does not stop the batch; the run exits non-zero only when the
tool chain is missing, the directory is unusable or holds no Markdown, or the
archive cannot be written.

A directory named like a subcommand (check, history, version, help,
completion) runs that subcommand. Convert it as ./history or after --:
pdfbundle -- history.`,
	Example: `  pdfbundle ~/obinexus/workspace/phd
  pdfbundle ~/obinexus/workspace/phd phd_documents.zip`,
	Args: usageArgs(cobra.RangeArgs(1, 2)),
	RunE: runBundle,
	// main prints errors so every failure reaches stderr exactly once.
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return newExitError(pipeline.ExitUsage, err)
	})

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./pdfbundle.yaml or ~/.config/pdfbundle/pdfbundle.yaml)")
	pf.String("log-level", "", "diagnostic log level: trace, debug, info, warn, error, off (default warn)")
	pf.Bool("no-color", false, "disable colored output")

	f := rootCmd.Flags()
	f.Duration("timeout", 0, "per-file conversion timeout (default 2m0s)")
	f.String("output-dir", "", "PDF subdirectory created under the input directory (default pdf_output)")
	f.String("archive-prefix", "", "prefix of the timestamped default archive name (default phd_documents)")
	f.String("pdf-engine", "", "LaTeX engine pandoc uses (default pdflatex)")
	f.Bool("only-converted", false, "archive only PDFs produced by this run, not every PDF in the output directory")
	f.Bool("no-history", false, "do not record this run in the history database")

	bindFlags(map[string]string{
		"log_level":         "log-level",
		"timeout":           "timeout",
		"output_dir":        "output-dir",
		"archive_prefix":    "archive-prefix",
		"pandoc.pdf_engine": "pdf-engine",
		"only_converted":    "only-converted",
	})
}

func initConfig() {
	// A missing .env is normal.
	_ = godotenv.Load()

	setDefaults()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdfbundle")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdfbundle"))
		}
	}

	// PDFBUNDLE_PANDOC_PDF_ENGINE sets pandoc.pdf_engine.
	viper.SetEnvPrefix("PDFBUNDLE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "warning: reading config %s: %v\n", cfgFile, err)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			if ee.err != nil {
				fmt.Fprintln(os.Stderr, "Error:", ee.err)
			}
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
