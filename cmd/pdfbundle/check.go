// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfbundle/internal/convert"
	"github.com/pdiddy/pdfbundle/internal/pipeline"
	"github.com/pdiddy/pdfbundle/internal/toolchain"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that pandoc and the PDF engine are installed",
	Long: `Check runs each required tool's --version probe and reports any that
cannot be found on PATH, with install instructions. It exits non-zero when a
tool is missing.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ex := &toolchain.OSExecutor{}
		tools := convert.NewPandocRenderer(cfg.Pandoc, ex).Dependencies()
		missing := toolchain.Check(cmd.Context(), ex, tools)
		if len(missing) > 0 {
			toolchain.PrintRemediation(os.Stdout, missing)
			return newExitError(pipeline.ExitMissingDependencies, nil)
		}

		for _, t := range tools {
			fmt.Printf("found: %s\n", t.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
