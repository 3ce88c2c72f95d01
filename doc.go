// Package lloggs wires standard logging flags into a zerolog backend.
//
// A host CLI embeds the flag schema (Options.AttachFlags), parses its own
// arguments, then calls Options.Setup once to install the process-wide
// logger. Setup resolves:
//   - Level (explicit flag > quiet > verbosity count > env var > info)
//   - Color (NO_COLOR / CLICOLOR_FORCE / --color, auto probes the terminal)
//   - Destination (--log-file, else stderr; systemd-aware defaults)
//
// and returns a Guard. The logger writes through a non-blocking diode
// buffer; closing the Guard flushes it, so hold the Guard for the whole
// process and close it on every exit path.
//
// ParsePreArgs/PreArgs.Setup cover the window before argument parsing:
// they configure logging from environment variables alone, so errors in
// the host's own flag parsing can already be logged.
package lloggs
