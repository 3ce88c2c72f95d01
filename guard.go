package lloggs

import (
	"io"
	"sync"

	"github.com/rs/zerolog/diode"
)

// Guard owns the non-blocking writer behind the installed logger.
//
// Hold it for the life of the process and Close it on every exit path;
// records still sitting in the diode buffer are only written out by
// the flush that Close performs. Close blocks until the flush is done
// and is safe to call more than once.
type Guard struct {
	once sync.Once
	dw   diode.Writer
	file io.Closer
	err  error
}

// Close flushes buffered records and releases the writer. A nil Guard
// is a no-op, so `defer guard.Close()` works even when PreArgs.Setup
// returned none.
func (g *Guard) Close() error {
	if g == nil {
		return nil
	}
	g.once.Do(func() {
		g.err = g.dw.Close()
		if g.file != nil {
			if err := g.file.Close(); g.err == nil {
				g.err = err
			}
		}
	})
	return g.err
}
