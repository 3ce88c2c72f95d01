// Package supervisor detects whether the process runs under a service
// manager that captures and annotates its output.
package supervisor

import (
	"os"

	"github.com/coreos/go-systemd/v22/journal"
)

// UnderSystemd reports whether stderr is connected to the systemd
// journal, or the unit was started with systemd's debug-invocation
// marker. Either way the supervisor owns timestamps and storage for
// our output.
func UnderSystemd() bool {
	return underSystemd(os.Getenv, journal.StderrIsJournalStream)
}

// Timeless reports whether timestamps should be omitted from log
// lines: under systemd the journal stamps every line, and LOG_TIMELESS
// lets any other supervisor opt in to the same treatment.
func Timeless() bool {
	return UnderSystemd() || os.Getenv("LOG_TIMELESS") != ""
}

func underSystemd(getenv func(string) string, stderrIsJournal func() (bool, error)) bool {
	if getenv("DEBUG_INVOCATION") != "" {
		return true
	}
	ok, err := stderrIsJournal()
	return err == nil && ok
}
