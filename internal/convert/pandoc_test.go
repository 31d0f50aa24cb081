// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdfbundle/internal/toolchain"
	"github.com/pdiddy/pdfbundle/pkg/types"
)

// recordingExecutor captures the last invocation and returns err.
type recordingExecutor struct {
	name string
	args []string
	err  error
}

func (r *recordingExecutor) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	r.name, r.args = name, args
	return r.err
}

func TestPandocArgs(t *testing.T) {
	p := NewPandocRenderer(types.PandocConfig{}, &recordingExecutor{})
	task := types.ConversionTask{Input: "/in/a.md", Output: "/in/pdf_output/a.pdf"}

	assert.Equal(t, []string{
		"/in/a.md",
		"-o", "/in/pdf_output/a.pdf",
		"--pdf-engine=pdflatex",
		"--variable", "geometry:margin=1in",
		"--variable", "fontsize=11pt",
		"--variable", "colorlinks=true",
		"--variable", "linkcolor=blue",
		"--toc",
		"--toc-depth=3",
		"--number-sections",
		"-V", "papersize=a4",
	}, p.Args(task))
}

func TestPandocArgsCustom(t *testing.T) {
	p := NewPandocRenderer(types.PandocConfig{
		PDFEngine: "xelatex",
		Margin:    "2cm",
		FontSize:  "12pt",
		LinkColor: "red",
		TOCDepth:  2,
		PaperSize: "letter",
	}, &recordingExecutor{})

	args := p.Args(types.ConversionTask{Input: "a.md", Output: "a.pdf"})
	assert.Contains(t, args, "--pdf-engine=xelatex")
	assert.Contains(t, args, "geometry:margin=2cm")
	assert.Contains(t, args, "fontsize=12pt")
	assert.Contains(t, args, "linkcolor=red")
	assert.Contains(t, args, "--toc-depth=2")
	assert.Contains(t, args, "papersize=letter")
}

func TestPandocDependencies(t *testing.T) {
	p := NewPandocRenderer(types.PandocConfig{Bin: "/opt/pandoc/bin/pandoc"}, &recordingExecutor{})
	assert.Equal(t, []toolchain.Tool{
		{Name: "pandoc", Command: []string{"/opt/pandoc/bin/pandoc", "--version"}},
		{Name: "pdflatex", Command: []string{"pdflatex", "--version"}},
	}, p.Dependencies())
}

func TestPandocRender(t *testing.T) {
	t.Run("success invokes the configured binary", func(t *testing.T) {
		ex := &recordingExecutor{}
		p := NewPandocRenderer(types.PandocConfig{}, ex)
		require.NoError(t, p.Render(context.Background(), types.ConversionTask{Input: "a.md", Output: "a.pdf"}))
		assert.Equal(t, "pandoc", ex.name)
		assert.Equal(t, "a.md", ex.args[0])
	})

	t.Run("invocation error is wrapped", func(t *testing.T) {
		cause := errors.New("too many open files")
		p := NewPandocRenderer(types.PandocConfig{}, &recordingExecutor{err: cause})
		err := p.Render(context.Background(), types.ConversionTask{Input: "a.md", Output: "a.pdf"})
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		var renderErr *RenderError
		assert.False(t, errors.As(err, &renderErr))
	})
}

// writeScript creates an executable shell script standing in for pandoc.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	path := filepath.Join(t.TempDir(), "fake-pandoc")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestPandocRenderWithProcess(t *testing.T) {
	t.Run("non-zero exit becomes RenderError", func(t *testing.T) {
		bin := writeScript(t, "echo 'pdflatex not found' >&2\nexit 43")
		p := NewPandocRenderer(types.PandocConfig{Bin: bin}, &toolchain.OSExecutor{})

		err := p.Render(context.Background(), types.ConversionTask{Input: "a.md", Output: "a.pdf"})
		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, 43, renderErr.ExitCode)
		assert.Equal(t, "pdflatex not found\n", renderErr.Stderr)
	})

	t.Run("hung process is abandoned at the timeout", func(t *testing.T) {
		bin := writeScript(t, "exec sleep 10")
		p := NewPandocRenderer(types.PandocConfig{Bin: bin}, &toolchain.OSExecutor{WaitDelay: 100 * time.Millisecond})
		dir := t.TempDir()
		task := types.NewTask(filepath.Join(dir, "slow.md"), dir)

		start := time.Now()
		result := ConvertFile(context.Background(), p, task, 100*time.Millisecond, io.Discard)
		assert.Equal(t, types.ConversionTimedOut, result.Status)
		assert.Less(t, time.Since(start), 5*time.Second)
	})
}
