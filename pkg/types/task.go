// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pdfbundle pipeline:
// conversion tasks and their results, run records, and configuration.
package types

import (
	"path/filepath"
	"strings"
	"time"
)

// ConversionStatus is the outcome of rendering one Markdown file.
type ConversionStatus string

const (
	ConversionSucceeded ConversionStatus = "succeeded"
	ConversionFailed    ConversionStatus = "failed"
	ConversionTimedOut  ConversionStatus = "timed_out"
)

// PDFExt is the extension given to every rendered output.
const PDFExt = ".pdf"

// ConversionTask maps one Markdown input to its intended PDF output.
type ConversionTask struct {
	// Input is the path of the Markdown source.
	Input string `json:"input" yaml:"input"`

	// Output is the path the renderer writes the PDF to.
	Output string `json:"output" yaml:"output"`
}

// NewTask derives the output path for input inside outputDir: same base
// name, .pdf extension.
func NewTask(input, outputDir string) ConversionTask {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return ConversionTask{
		Input:  input,
		Output: filepath.Join(outputDir, base+PDFExt),
	}
}

// Name returns the base name of the input file.
func (t ConversionTask) Name() string {
	return filepath.Base(t.Input)
}

// ConversionResult records what happened to a single task.
type ConversionResult struct {
	Task ConversionTask `json:"task" yaml:"task"`

	Status ConversionStatus `json:"status" yaml:"status"`

	// Detail carries the captured stderr or error text on failure.
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`

	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Succeeded reports whether the conversion produced its output.
func (r ConversionResult) Succeeded() bool {
	return r.Status == ConversionSucceeded
}
