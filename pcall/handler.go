package pcall

import "github.com/quillvm/quill/engine"

// handlerGuard scopes the error handler's stack slot to one call. When the
// target reference is invalid the guard is inert and the call primitive is
// invoked with handler index 0. Otherwise the handler is pushed on
// construction and the recorded slot, that slot exactly, is removed on
// release, whichever way the call exited.
type handlerGuard struct {
	s     *engine.State
	index int
}

func newHandlerGuard(s *engine.State, target *engine.Ref) *handlerGuard {
	h := &handlerGuard{s: s}
	if target.Valid() {
		h.index = s.Top() + 1
		target.Push()
	}
	return h
}

// consume marks the slot as already removed or repurposed, so release does
// nothing. Must be called before release by any path that has taken over
// the slot itself.
func (h *handlerGuard) consume() { h.index = 0 }

// release removes the handler slot. Safe to call more than once.
func (h *handlerGuard) release() {
	if h.index > 0 {
		h.s.Remove(h.index)
		h.index = 0
	}
}
