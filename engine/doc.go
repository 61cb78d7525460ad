// Package engine implements a small embedded stack-based virtual machine.
//
// A [State] owns an evaluation stack, a globals table, and a value registry.
// Host code and scripts exchange values through the stack: arguments are
// pushed, a callable is invoked, and results (or a single error value) are
// left in their place.
//
// # Stack Discipline
//
// Stack positions are 1-based. [State.Top] reports the current height,
// [State.Get] reads a slot, and [State.Remove] deletes one slot in place.
// Negative indices count from the top, so Get(-1) reads the topmost value.
//
// # Calls
//
// [State.ProtectedCall] is the call primitive: it consumes the callable and
// its arguments and reports failure as a [Status] plus one error value on the
// stack, never as a Go panic. An optional message handler, identified by its
// stack index, transforms the error value before it is returned. Panics
// raised by host functions are deliberately not recovered here; the caller
// owns that boundary (see the pcall package).
//
// # Values
//
// Scripts are loaded with [Load] from a line-based instruction text. Host
// functions are registered as [GoFunc] values and called with the same
// convention as script functions. A value is kept alive independently of its
// stack position by moving it into the registry with [State.PopRef].
package engine
