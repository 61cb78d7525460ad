package engine

import "fmt"

// MultRet requests however many results the callable actually produces.
const MultRet = -1

// Status is the outcome of a protected call.
type Status int

const (
	StatusOK      Status = iota
	StatusRuntime        // runtime error raised during execution
	StatusMemory         // stack or call-depth limit exhausted
	StatusHandler        // the message handler itself faulted
	StatusSyntax         // the chunk failed to load
	StatusUnknown        // call primitive misuse or unclassified failure
)

func (st Status) String() string {
	switch st {
	case StatusOK:
		return "ok"
	case StatusRuntime:
		return "runtime error"
	case StatusMemory:
		return "memory error"
	case StatusHandler:
		return "error handler error"
	case StatusSyntax:
		return "syntax error"
	default:
		return "unknown error"
	}
}

// StatusError is an execution failure tagged with the status it maps to at
// the protected-call boundary.
type StatusError struct {
	Status Status
	Msg    string
}

func (e *StatusError) Error() string { return e.Msg }

func runtimeErrf(format string, args ...any) *StatusError {
	return &StatusError{Status: StatusRuntime, Msg: fmt.Sprintf(format, args...)}
}

func statusOf(err error) Status {
	if se, ok := err.(*StatusError); ok {
		return se.Status
	}
	return StatusRuntime
}
