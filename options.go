package lloggs

import (
	"fmt"

	"github.com/spf13/pflag"
)

// ColorMode controls when terminal colors are used.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

func (m ColorMode) String() string { return string(m) }

func (m *ColorMode) Set(s string) error {
	switch ColorMode(s) {
	case ColorAuto, ColorAlways, ColorNever:
		*m = ColorMode(s)
		return nil
	}
	return fmt.Errorf("must be one of %q, %q, %q", ColorAuto, ColorAlways, ColorNever)
}

func (m *ColorMode) Type() string { return "mode" }

// Format selects the log line encoding.
//
// FormatAuto picks plain for terminal output and json when writing to a
// log file, matching what each destination is usually consumed by.
type Format string

const (
	FormatAuto  Format = "auto"
	FormatPlain Format = "plain"
	FormatJSON  Format = "json"
)

func (f Format) String() string { return string(f) }

func (f *Format) Set(s string) error {
	switch Format(s) {
	case FormatAuto, FormatPlain, FormatJSON:
		*f = Format(s)
		return nil
	}
	return fmt.Errorf("must be one of %q, %q, %q", FormatAuto, FormatPlain, FormatJSON)
}

func (f *Format) Type() string { return "format" }

// Options is the flag-driven logging configuration.
//
// Construct a zero value, call AttachFlags before the host parses its
// arguments, then call Setup exactly once. The zero value is usable
// directly for hosts that fill the fields themselves.
type Options struct {
	// Verbose counts -v occurrences. 0 is the host's default level.
	Verbose int

	// Quiet suppresses output down to errors. Beats Verbose.
	Quiet bool

	// Level is an explicit level name ("trace".."error"). When set it
	// beats both Quiet and Verbose.
	Level string

	// Format selects plain or json lines. FormatAuto (the default)
	// resolves to plain on the terminal and json for log files.
	Format Format

	// File routes output to a file instead of stderr. If the path is an
	// existing directory, a timestamped file is created inside it.
	File string

	// Color controls ANSI colors on terminal output. NO_COLOR and
	// CLICOLOR_FORCE take precedence over this field.
	Color ColorMode

	// Timeless omits timestamps from plain output. Automatically on
	// under systemd, where the journal stamps every line anyway.
	Timeless bool

	// RateLimit caps emitted records per second. Excess records are
	// dropped, never queued. 0 means unlimited.
	RateLimit int

	// LevelVar names the environment variable consulted when no level
	// flag is given and verbosity is zero. Empty means "LOG_LEVEL".
	LevelVar string
}

// AttachFlags registers the logging flags on fs. It only declares
// flags; nothing is resolved until Setup.
//
// Works with any *pflag.FlagSet, including cobra's Flags() and
// PersistentFlags().
func (o *Options) AttachFlags(fs *pflag.FlagSet) {
	if o.Format == "" {
		o.Format = FormatAuto
	}
	if o.Color == "" {
		o.Color = ColorAuto
	}

	fs.CountVarP(&o.Verbose, "verbose", "v", "increase diagnostic log verbosity (repeatable)")
	fs.BoolVarP(&o.Quiet, "quiet", "q", false, "only log errors, regardless of verbosity")
	fs.StringVar(&o.Level, "log-level", "", "explicit log level (overrides -v and -q)")
	fs.Var(&o.Format, "log-format", "log line format: auto, plain or json")
	fs.StringVar(&o.File, "log-file", "", "write logs to this path instead of stderr")
	fs.Var(&o.Color, "color", "when to use terminal colors: auto, always or never")
	fs.BoolVar(&o.Timeless, "log-timeless", false, "omit timestamps (implied under systemd)")
	fs.IntVar(&o.RateLimit, "log-rate-limit", 0, "drop log records above this many per second (0 = unlimited)")

	// --log-file without a value means "pick a file in the current
	// directory" (the directory branch of the file destination).
	fs.Lookup("log-file").NoOptDefVal = "."

	// Spelling alias, kept out of --help.
	fs.Var(&o.Color, "colour", "alias for --color")
	_ = fs.MarkHidden("colour")
}
