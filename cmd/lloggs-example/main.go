// Command lloggs-example shows the intended wiring: pre-parse
// bootstrap first, flag-driven setup only if that did nothing.
//
// Try:
//
//	lloggs-example -vv
//	EXAMPLE_LOG=trace lloggs-example
//	NO_COLOR=1 lloggs-example --color always
//	lloggs-example --log-file ./example.log --log-format json
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/passcod/lloggs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	guard, err := lloggs.ParsePreArgs("EXAMPLE_LOG").Setup()
	if err != nil {
		return err
	}
	defer func() { _ = guard.Close() }()

	var opts lloggs.Options
	cmd := &cobra.Command{
		Use:          "lloggs-example",
		Short:        "Demonstrates lloggs flag wiring",
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			if guard == nil {
				g, err := opts.Setup(func(v int) zerolog.Level {
					switch v {
					case 0:
						return zerolog.InfoLevel
					case 1:
						return zerolog.DebugLevel
					default:
						return zerolog.TraceLevel
					}
				})
				if err != nil {
					return err
				}
				guard = g
			}

			log.Trace().Msg("trace is only visible at -vv or higher")
			log.Debug().Int("verbosity", opts.Verbose).Msg("debug detail")
			log.Info().Str("format", opts.Format.String()).Msg("hello from lloggs")
			log.Error().Msg("errors survive --quiet")
			return nil
		},
	}
	opts.AttachFlags(cmd.Flags())

	return cmd.Execute()
}
