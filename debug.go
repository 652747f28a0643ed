package gesture

import (
	"fmt"
	"io"
	"os"
)

// debugOutput receives debug-mode logging. Tests swap it for a buffer.
var debugOutput io.Writer = os.Stderr

// SetDebugMode enables or disables debug mode. When enabled, session opens,
// claims, emitted events, resolutions and hold timer cancellations are
// printed to stderr.
func (r *Recognizer) SetDebugMode(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.debug = enabled
}

// debugf prints one debug line. Callers check r.debug first so the
// arguments are not formatted in release mode.
func (r *Recognizer) debugf(format string, args ...any) {
	_, _ = fmt.Fprintf(debugOutput, "[gesture] "+format+"\n", args...)
}
