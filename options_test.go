package lloggs

import (
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func newTestFlagSet(o *Options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	o.AttachFlags(fs)
	return fs
}

func TestAttachFlagsDefaults(t *testing.T) {
	var o Options
	fs := newTestFlagSet(&o)
	if err := fs.Parse(nil); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if o.Verbose != 0 || o.Quiet || o.Level != "" || o.File != "" {
		t.Fatalf("unexpected non-zero defaults: %+v", o)
	}
	if o.Format != FormatAuto {
		t.Fatalf("format default = %q, want %q", o.Format, FormatAuto)
	}
	if o.Color != ColorAuto {
		t.Fatalf("color default = %q, want %q", o.Color, ColorAuto)
	}
	if o.RateLimit != 0 {
		t.Fatalf("rate limit default = %d, want 0", o.RateLimit)
	}
}

func TestVerbosityCounts(t *testing.T) {
	var o Options
	fs := newTestFlagSet(&o)
	if err := fs.Parse([]string{"-vv", "--verbose"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if o.Verbose != 3 {
		t.Fatalf("verbose = %d, want 3", o.Verbose)
	}
}

func TestEnumFlagsRejectUnknownValues(t *testing.T) {
	var o Options
	fs := newTestFlagSet(&o)
	err := fs.Parse([]string{"--color", "sometimes"})
	if err == nil || !strings.Contains(err.Error(), "must be one of") {
		t.Fatalf("expected enum error, got %v", err)
	}

	o = Options{}
	fs = newTestFlagSet(&o)
	err = fs.Parse([]string{"--log-format", "xml"})
	if err == nil || !strings.Contains(err.Error(), "must be one of") {
		t.Fatalf("expected enum error, got %v", err)
	}
}

func TestColourAlias(t *testing.T) {
	var o Options
	fs := newTestFlagSet(&o)
	if err := fs.Parse([]string{"--colour", "never"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if o.Color != ColorNever {
		t.Fatalf("color = %q, want %q", o.Color, ColorNever)
	}
}

func TestLogFileWithoutValueMeansCurrentDir(t *testing.T) {
	var o Options
	fs := newTestFlagSet(&o)
	if err := fs.Parse([]string{"--log-file"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if o.File != "." {
		t.Fatalf("file = %q, want %q", o.File, ".")
	}

	o = Options{}
	fs = newTestFlagSet(&o)
	if err := fs.Parse([]string{"--log-file=debug.log", "-q"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if o.File != "debug.log" || !o.Quiet {
		t.Fatalf("file = %q quiet = %v, want debug.log true", o.File, o.Quiet)
	}
}
