// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfbundle/internal/pipeline"
	"github.com/pdiddy/pdfbundle/pkg/types"
)

const historyFile = "history.db"

func setDefaults() {
	def := types.DefaultConfig()
	viper.SetDefault("timeout", def.Timeout)
	viper.SetDefault("output_dir", def.OutputDir)
	viper.SetDefault("archive_prefix", def.ArchivePrefix)
	viper.SetDefault("only_converted", def.OnlyConverted)
	viper.SetDefault("pandoc.bin", def.Pandoc.Bin)
	viper.SetDefault("pandoc.pdf_engine", def.Pandoc.PDFEngine)
	viper.SetDefault("pandoc.margin", def.Pandoc.Margin)
	viper.SetDefault("pandoc.fontsize", def.Pandoc.FontSize)
	viper.SetDefault("pandoc.linkcolor", def.Pandoc.LinkColor)
	viper.SetDefault("pandoc.toc_depth", def.Pandoc.TOCDepth)
	viper.SetDefault("pandoc.papersize", def.Pandoc.PaperSize)
	viper.SetDefault("history.enabled", def.History.Enabled)
	viper.SetDefault("history.path", "")
	viper.SetDefault("log_level", def.LogLevel)
	viper.SetDefault("color", def.Color)
}

// bindFlags binds viper keys to flags defined on rootCmd (local or
// persistent).
func bindFlags(keys map[string]string) {
	for key, flag := range keys {
		f := rootCmd.Flags().Lookup(flag)
		if f == nil {
			f = rootCmd.PersistentFlags().Lookup(flag)
		}
		if f == nil {
			panic("unknown flag " + flag)
		}
		if err := viper.BindPFlag(key, f); err != nil {
			panic(err)
		}
	}
}

// loadConfig decodes the merged viper settings and applies the negated
// boolean flags, which viper cannot bind directly.
func loadConfig(cmd *cobra.Command) (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}

	if noColor, err := cmd.Flags().GetBool("no-color"); err == nil && noColor {
		cfg.Color = false
	}
	if f := cmd.Flags().Lookup("no-history"); f != nil && f.Changed {
		cfg.History.Enabled = false
	}
	return cfg, nil
}

// historyPath resolves the configured history database, defaulting to
// ~/.config/pdfbundle/history.db next to the config file.
func historyPath(configured string) (string, error) {
	if configured != "" {
		return pipeline.ExpandHome(configured)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating history database: %w", err)
	}
	return filepath.Join(home, ".config", "pdfbundle", historyFile), nil
}
