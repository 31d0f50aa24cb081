// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"

	"github.com/pdiddy/pdfbundle/pkg/types"
)

// Summary accumulates the outcomes of a batch in discovery order.
type Summary struct {
	Succeeded int

	// Failed lists input base names that did not convert, in order.
	Failed []string

	Results []types.ConversionResult
}

// Add records one result.
func (s *Summary) Add(r types.ConversionResult) {
	s.Results = append(s.Results, r)
	if r.Succeeded() {
		s.Succeeded++
		return
	}
	s.Failed = append(s.Failed, r.Task.Name())
}

// Total returns the number of files attempted.
func (s *Summary) Total() int {
	return len(s.Results)
}

// HasFailures reports whether any file failed.
func (s *Summary) HasFailures() bool {
	return len(s.Failed) > 0
}

// Outputs returns the base names of the PDFs this batch produced.
func (s *Summary) Outputs() []string {
	var names []string
	for _, r := range s.Results {
		if r.Succeeded() {
			names = append(names, baseName(r.Task.Output))
		}
	}
	return names
}

// Report prints the completion line and, if any, the failed file list.
func (s *Summary) Report(w io.Writer) {
	fmt.Fprintf(w, "\nConversion complete: %d/%d successful\n", s.Succeeded, s.Total())
	if !s.HasFailures() {
		return
	}
	fmt.Fprintln(w, "\nFailed conversions:")
	for _, name := range s.Failed {
		fmt.Fprintf(w, "  - %s\n", name)
	}
}
