package buffer

import "testing"

// TestStringWhileWriterHeldReportsMutablyBorrowed exercises the
// writer-lock-held rendering directly against the unexported state field,
// since holding the writer lock across an observation point isn't
// reachable through the public API (Borrow/BorrowMut/Set all take and
// release it within a single call).
func TestStringWhileWriterHeldReportsMutablyBorrowed(t *testing.T) {
	buf := Allocate(1)
	buf.state.mu.Lock()
	defer buf.state.mu.Unlock()

	if got := buf.String(); got != "Buffer(<mutably borrowed>)" {
		t.Errorf("String() = %q, want mutably-borrowed marker", got)
	}
}
