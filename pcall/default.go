package pcall

import (
	"sync"

	"github.com/quillvm/quill/engine"
)

// The process-wide default error handler. Functions capture whichever
// default is current at construction time; changing it later does not
// affect existing Functions.
var defaults struct {
	mu      sync.RWMutex
	handler *engine.Ref
}

// DefaultHandler returns the process-wide default error handler reference,
// which may be nil.
func DefaultHandler() *engine.Ref {
	defaults.mu.RLock()
	defer defaults.mu.RUnlock()
	return defaults.handler
}

// SetDefaultHandler replaces the process-wide default error handler. Pass
// nil to clear it.
func SetDefaultHandler(ref *engine.Ref) {
	defaults.mu.Lock()
	defaults.handler = ref
	defaults.mu.Unlock()
}
