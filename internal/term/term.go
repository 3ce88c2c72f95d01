// Package term probes terminal capabilities for the output stream.
//
// The probes are pure reads of file-descriptor state; they take the
// stream as an argument so tests can hand in pipes instead of the real
// stderr.
package term

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether f is attached to an interactive terminal,
// including Cygwin/MSYS pseudo-terminals on Windows.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ANSIWriter returns a writer that renders ANSI escape sequences on f.
// On Windows consoles without native VT support the sequences are
// translated to console API calls; elsewhere f is returned as-is.
//
// The result deliberately does not expose f's Closer: callers wrap it
// in writers that close whatever they own, and nobody owns stderr.
func ANSIWriter(f *os.File) io.Writer {
	return struct{ io.Writer }{colorable.NewColorable(f)}
}
