package lloggs

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/passcod/lloggs/internal/reopen"
	"github.com/passcod/lloggs/internal/supervisor"
	"github.com/passcod/lloggs/internal/term"
)

const (
	consoleTimeFormat = "2006-01-02T15:04:05.000Z07:00"
	defaultLevelVar   = "LOG_LEVEL"

	diodeSize = 1000
	diodePoll = 10 * time.Millisecond
)

// installed is the single-assignment cell for the process-wide log
// sink. Checked-and-set rather than a bare global so that a second
// Setup is a reportable error, not silent clobbering.
var installed atomic.Bool

// stderrFile is the default destination. Tests swap it for a pipe.
var stderrFile = os.Stderr

// LevelMap translates the -v count into a log level. It must be
// monotonic: a higher count never yields a less verbose level.
type LevelMap func(verbosity int) zerolog.Level

func defaultLevelMap(v int) zerolog.Level {
	switch {
	case v <= 0:
		return zerolog.InfoLevel
	case v == 1:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// Setup resolves the options into a zerolog configuration, installs it
// as the process-wide logger, and returns the Guard that owns the
// non-blocking writer. Call it exactly once, after parsing flags, and
// only if PreArgs.Setup did not already return a guard.
//
// levelMap customizes the -v count translation; nil gets the default
// 0:info, 1:debug, 2+:trace.
func (o *Options) Setup(levelMap LevelMap) (*Guard, error) {
	if installed.Load() {
		return nil, ErrAlreadyInitialized
	}
	if levelMap == nil {
		levelMap = defaultLevelMap
	}

	level, err := o.resolveLevel(levelMap, os.Getenv)
	if err != nil {
		return nil, err
	}

	var (
		dest       io.Writer
		fileWriter *reopen.Writer
	)
	if o.File != "" {
		fileWriter, err = reopen.Open(resolveLogPath(o.File))
		if err != nil {
			return nil, fmt.Errorf("lloggs: opening log file: %w", err)
		}
		// Hide the Closer: the Guard owns the file's lifecycle, the
		// diode must only flush into it.
		dest = struct{ io.Writer }{fileWriter}
	} else {
		dest = term.ANSIWriter(stderrFile)
	}

	format := o.Format
	if format == FormatAuto || format == "" {
		if fileWriter != nil {
			format = FormatJSON
		} else {
			format = FormatPlain
		}
	}

	color := false
	if fileWriter == nil && format == FormatPlain {
		color = o.resolveColor(os.Getenv, term.IsTerminal(stderrFile))
	}
	timeless := o.Timeless || supervisor.Timeless()

	sink := dest
	if format == FormatPlain {
		sink = consoleSink(dest, color, timeless)
	}

	dw := diode.NewWriter(sink, diodeSize, diodePoll, alertDropped)

	var out io.Writer = dw
	if o.RateLimit > 0 {
		out = &limitWriter{
			w:   dw,
			lim: rate.NewLimiter(rate.Limit(o.RateLimit), o.RateLimit),
		}
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()

	if !installed.CompareAndSwap(false, true) {
		_ = dw.Close()
		if fileWriter != nil {
			_ = fileWriter.Close()
		}
		return nil, ErrAlreadyInitialized
	}
	installGlobal(logger)

	g := &Guard{dw: dw}
	if fileWriter != nil {
		g.file = fileWriter
	}
	return g, nil
}

func (o *Options) resolveLevel(levelMap LevelMap, getenv func(string) string) (zerolog.Level, error) {
	if o.Level != "" {
		lvl, err := zerolog.ParseLevel(strings.ToLower(o.Level))
		if err != nil {
			return zerolog.NoLevel, fmt.Errorf("%w: %q", ErrInvalidLevel, o.Level)
		}
		return lvl, nil
	}
	if o.Quiet {
		return zerolog.ErrorLevel, nil
	}
	if o.Verbose > 0 {
		return levelMap(o.Verbose), nil
	}
	name := o.LevelVar
	if name == "" {
		name = defaultLevelVar
	}
	if v := getenv(name); v != "" {
		lvl, err := zerolog.ParseLevel(strings.ToLower(v))
		if err != nil {
			return zerolog.NoLevel, fmt.Errorf("%w: %s=%q", ErrInvalidLevel, name, v)
		}
		return lvl, nil
	}
	return zerolog.InfoLevel, nil
}

// resolveColor decides whether ANSI colors are emitted. NO_COLOR wins
// over everything including --color always (no-color.org convention,
// kept from the upstream policy); CLICOLOR_FORCE wins over auto
// detection but not over NO_COLOR.
func (o *Options) resolveColor(getenv func(string) string, interactive bool) bool {
	if getenv("NO_COLOR") != "" {
		return false
	}
	if getenv("CLICOLOR_FORCE") != "" {
		return true
	}
	switch o.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return interactive
	}
}

// resolveLogPath turns a --log-file value into a concrete file path.
// A directory gets a timestamped file named after the executable, so
// `--log-file` with no value drops a fresh log in the current dir.
func resolveLogPath(path string) string {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return path
	}
	prog := "log"
	if exe, err := os.Executable(); err == nil {
		base := filepath.Base(exe)
		prog = strings.TrimSuffix(base, filepath.Ext(base))
	}
	stamp := time.Now().UTC().Format("2006-01-02T15-04-05Z")
	return filepath.Join(path, prog+"."+stamp+".log")
}

func consoleSink(out io.Writer, color, timeless bool) io.Writer {
	cw := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    !color,
		TimeFormat: consoleTimeFormat,
	}
	if timeless {
		cw.PartsExclude = []string{zerolog.TimestampFieldName}
	}
	return cw
}

// installGlobal points every logging path at the new root: zerolog's
// package-level logger, the context fallback, and the stdlib log
// package for dependencies that still use it.
func installGlobal(logger zerolog.Logger) {
	zlog.Logger = logger
	zerolog.DefaultContextLogger = &logger
	stdlog.SetFlags(0)
	stdlog.SetOutput(logger)
}

func alertDropped(missed int) {
	fmt.Fprintf(os.Stderr, "lloggs: dropped %d log records\n", missed)
}

// limitWriter drops whole records above the configured rate instead of
// queueing them. One Write call is one zerolog record.
type limitWriter struct {
	w   io.Writer
	lim *rate.Limiter
}

func (l *limitWriter) Write(p []byte) (int, error) {
	if !l.lim.Allow() {
		return len(p), nil
	}
	return l.w.Write(p)
}
