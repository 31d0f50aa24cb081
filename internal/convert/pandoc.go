// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/pdiddy/pdfbundle/internal/toolchain"
	"github.com/pdiddy/pdfbundle/pkg/types"
)

// PandocRenderer converts Markdown to PDF by running pandoc with a LaTeX PDF
// engine. It depends on a toolchain.Executor injected at construction time.
type PandocRenderer struct {
	cfg  types.PandocConfig
	exec toolchain.Executor
}

// NewPandocRenderer creates a renderer using cfg, with empty fields replaced
// by their defaults.
func NewPandocRenderer(cfg types.PandocConfig, ex toolchain.Executor) *PandocRenderer {
	def := types.DefaultConfig().Pandoc
	if cfg.Bin == "" {
		cfg.Bin = def.Bin
	}
	if cfg.PDFEngine == "" {
		cfg.PDFEngine = def.PDFEngine
	}
	if cfg.Margin == "" {
		cfg.Margin = def.Margin
	}
	if cfg.FontSize == "" {
		cfg.FontSize = def.FontSize
	}
	if cfg.LinkColor == "" {
		cfg.LinkColor = def.LinkColor
	}
	if cfg.TOCDepth <= 0 {
		cfg.TOCDepth = def.TOCDepth
	}
	if cfg.PaperSize == "" {
		cfg.PaperSize = def.PaperSize
	}
	return &PandocRenderer{cfg: cfg, exec: ex}
}

func (p *PandocRenderer) Name() string { return "pandoc" }

// Dependencies returns pandoc itself and the PDF engine it drives.
func (p *PandocRenderer) Dependencies() []toolchain.Tool {
	return []toolchain.Tool{
		{Name: "pandoc", Command: []string{p.cfg.Bin, "--version"}},
		{Name: p.cfg.PDFEngine, Command: []string{p.cfg.PDFEngine, "--version"}},
	}
}

// Args returns the pandoc argument list for task.
func (p *PandocRenderer) Args(task types.ConversionTask) []string {
	return []string{
		task.Input,
		"-o", task.Output,
		"--pdf-engine=" + p.cfg.PDFEngine,
		"--variable", "geometry:margin=" + p.cfg.Margin,
		"--variable", "fontsize=" + p.cfg.FontSize,
		"--variable", "colorlinks=true",
		"--variable", "linkcolor=" + p.cfg.LinkColor,
		"--toc",
		"--toc-depth=" + strconv.Itoa(p.cfg.TOCDepth),
		"--number-sections",
		"-V", "papersize=" + p.cfg.PaperSize,
	}
}

// Render runs pandoc for task. A non-zero exit is reported as *RenderError
// carrying pandoc's stderr.
func (p *PandocRenderer) Render(ctx context.Context, task types.ConversionTask) error {
	var stderr bytes.Buffer
	err := p.exec.Run(ctx, p.cfg.Bin, p.Args(task), io.Discard, &stderr)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return fmt.Errorf("running %s on %s: %w", p.cfg.Bin, task.Input, ctx.Err())
	}
	if code := toolchain.ExitCode(err); code >= 0 {
		return &RenderError{Tool: p.cfg.Bin, ExitCode: code, Stderr: stderr.String()}
	}
	return fmt.Errorf("running %s on %s: %w", p.cfg.Bin, task.Input, err)
}
