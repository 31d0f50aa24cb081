// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package console prints the human-readable operator output of a run.
package console

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer writes status lines to an underlying writer, optionally colored.
type Printer struct {
	w       io.Writer
	errC    *color.Color
	okC     *color.Color
	headerC *color.Color
}

// New returns a Printer writing to w. Color is applied only when colored is
// true and fatih/color has not detected a non-terminal output.
func New(w io.Writer, colored bool) *Printer {
	p := &Printer{
		w:       w,
		errC:    color.New(color.FgRed, color.Bold),
		okC:     color.New(color.FgGreen, color.Bold),
		headerC: color.New(color.FgCyan),
	}
	if !colored {
		p.errC.DisableColor()
		p.okC.DisableColor()
		p.headerC.DisableColor()
	}
	return p
}

// Writer exposes the plain underlying writer for components that print
// their own progress lines.
func (p *Printer) Writer() io.Writer { return p.w }

// Printf writes an uncolored formatted line.
func (p *Printer) Printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, format, args...)
}

// Println writes an uncolored line.
func (p *Printer) Println(args ...interface{}) {
	fmt.Fprintln(p.w, args...)
}

// Error writes "ERROR: <msg>" in red.
func (p *Printer) Error(format string, args ...interface{}) {
	p.errC.Fprintf(p.w, "ERROR: %s\n", fmt.Sprintf(format, args...))
}

// Success writes a green line.
func (p *Printer) Success(format string, args ...interface{}) {
	p.okC.Fprintf(p.w, format+"\n", args...)
}

// Header writes a cyan line.
func (p *Printer) Header(format string, args ...interface{}) {
	p.headerC.Fprintf(p.w, format+"\n", args...)
}
