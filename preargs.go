package lloggs

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"

	"github.com/passcod/lloggs/internal/supervisor"
	"github.com/passcod/lloggs/internal/term"
)

// PreArgs is the environment-only logging configuration, usable before
// the host has parsed any arguments. It exists so that argument
// parsing errors themselves can be logged.
type PreArgs struct {
	// Logline is the level name read from the environment. Empty means
	// no environment-driven setup was requested.
	Logline string

	// Timeless omits timestamps, set under systemd or via LOG_TIMELESS.
	Timeless bool

	// Color as dictated by NO_COLOR / CLICOLOR_FORCE, else auto.
	Color ColorMode
}

// ParsePreArgs reads the pre-parse logging configuration from the
// environment. varName is the host's level variable (its RUST_LOG
// equivalent); a present DEBUG_INVOCATION marker counts as "debug"
// when the variable itself is unset.
func ParsePreArgs(varName string) PreArgs {
	pre := parsePreArgs(varName, os.Getenv)
	if supervisor.UnderSystemd() {
		pre.Timeless = true
	}
	return pre
}

func parsePreArgs(varName string, getenv func(string) string) PreArgs {
	logline := getenv(varName)
	if logline == "" && getenv("DEBUG_INVOCATION") != "" {
		logline = "debug"
	}

	color := ColorAuto
	if getenv("NO_COLOR") != "" {
		color = ColorNever
	} else if getenv("CLICOLOR_FORCE") != "" {
		color = ColorAlways
	}

	return PreArgs{
		Logline:  logline,
		Timeless: getenv("LOG_TIMELESS") != "" || getenv("DEBUG_INVOCATION") != "",
		Color:    color,
	}
}

// Setup installs an environment-driven stderr logger, or does nothing.
//
// It returns (nil, nil) when no relevant environment variable was set:
// the host should proceed with Options.Setup after parsing its flags.
// A non-nil Guard means logging is live and the later Setup call must
// be skipped.
func (p PreArgs) Setup() (*Guard, error) {
	if p.Logline == "" {
		return nil, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(p.Logline))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLevel, p.Logline)
	}
	if installed.Load() {
		return nil, ErrAlreadyInitialized
	}

	color := false
	switch p.Color {
	case ColorAlways:
		color = true
	case ColorNever:
		color = false
	default:
		color = term.IsTerminal(stderrFile)
	}

	sink := consoleSink(term.ANSIWriter(stderrFile), color, p.Timeless)
	dw := diode.NewWriter(sink, diodeSize, diodePoll, alertDropped)
	logger := zerolog.New(dw).Level(lvl).With().Timestamp().Logger()

	if !installed.CompareAndSwap(false, true) {
		_ = dw.Close()
		return nil, ErrAlreadyInitialized
	}
	installGlobal(logger)

	return &Guard{dw: dw}, nil
}
