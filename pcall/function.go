package pcall

import (
	"fmt"

	"github.com/quillvm/quill/engine"
)

// Function is a protected callable. Handler is the per-instance error
// handler reference, captured from the process-wide default at construction;
// it may be replaced or set to nil at any point before a call.
type Function struct {
	ref     *engine.Ref
	Handler *engine.Ref
}

// New wraps a callable reference. The current default error handler is
// captured as the instance handler.
func New(ref *engine.Ref) *Function {
	return &Function{ref: ref, Handler: DefaultHandler()}
}

// Ref returns the underlying callable reference.
func (f *Function) Ref() *engine.Ref { return f.ref }

// arity selects the result-decoding strategy for one call.
type arityKind int

const (
	arityDynamic arityKind = iota // request all results, count recovered from stack height
	arityVoid                     // request zero results
	arityFixed                    // request exactly n results
)

type arity struct {
	kind arityKind
	n    int
}

// Call invokes the callable with however many results it produces. The
// results (or the single error value) stay on the stack, described by the
// returned Outcome.
func (f *Function) Call(args ...any) *Outcome {
	return f.invoke(arity{kind: arityDynamic}, args)
}

// CallVoid invokes the callable and discards all results. The stack height
// is unchanged on return, success or failure.
func (f *Function) CallVoid(args ...any) error {
	out := f.invoke(arity{kind: arityVoid}, args)
	if !out.OK() {
		err := out.Err()
		out.Release()
		return err
	}
	return nil
}

// Call1 invokes f requesting exactly one result, popped and converted to T.
func Call1[T any](f *Function, args ...any) (T, error) {
	var zero T
	out := f.invoke(arity{kind: arityFixed, n: 1}, args)
	if !out.OK() {
		err := out.Err()
		out.Release()
		return zero, err
	}
	return engine.PopAs[T](f.ref.State())
}

// Call2 invokes f requesting exactly two results. Result order matches the
// order the callable produced them.
func Call2[A, B any](f *Function, args ...any) (A, B, error) {
	var za A
	var zb B
	out := f.invoke(arity{kind: arityFixed, n: 2}, args)
	if !out.OK() {
		err := out.Err()
		out.Release()
		return za, zb, err
	}
	s := f.ref.State()
	vb := s.Pop()
	va := s.Pop()
	a, err := engine.As[A](va)
	if err != nil {
		return za, zb, err
	}
	b, err := engine.As[B](vb)
	if err != nil {
		return za, zb, err
	}
	return a, b, nil
}

// Call3 invokes f requesting exactly three results, in production order.
func Call3[A, B, C any](f *Function, args ...any) (A, B, C, error) {
	var za A
	var zb B
	var zc C
	out := f.invoke(arity{kind: arityFixed, n: 3}, args)
	if !out.OK() {
		err := out.Err()
		out.Release()
		return za, zb, zc, err
	}
	s := f.ref.State()
	vc := s.Pop()
	vb := s.Pop()
	va := s.Pop()
	a, err := engine.As[A](va)
	if err != nil {
		return za, zb, zc, err
	}
	b, err := engine.As[B](vb)
	if err != nil {
		return za, zb, zc, err
	}
	c, err := engine.As[C](vc)
	if err != nil {
		return za, zb, zc, err
	}
	return a, b, c, nil
}

// invoke is the single call path for every arity. It installs the handler
// slot, pushes the callable and arguments, runs the call primitive, and
// normalizes all four exits (success, interpreter error, handler fault,
// host panic) into an Outcome with the guard's slot released exactly once.
func (f *Function) invoke(ar arity, args []any) (out *Outcome) {
	if !f.ref.Valid() {
		return &Outcome{
			status:  engine.StatusRuntime,
			message: "call of an invalid function reference",
		}
	}
	s := f.ref.State()
	base := s.Top()

	h := newHandlerGuard(s, f.Handler)
	defer h.release()
	defer func() {
		if r := recover(); r != nil {
			out = f.absorb(s, h, base, describe(r))
		}
	}()

	f.ref.Push()
	n := s.MultiPush(args...)

	want := 0
	switch ar.kind {
	case arityDynamic:
		want = engine.MultRet
	case arityFixed:
		want = ar.n
	}

	pre := s.Top()
	st := s.ProtectedCall(n, want, h.index)
	if st != engine.StatusOK {
		return &Outcome{s: s, first: base + 1, declared: ar.n, returned: 1, status: st}
	}

	returned := ar.n
	if ar.kind == arityDynamic {
		// The all-results sentinel reports no count; recover it from the
		// height delta around the callable and its arguments.
		returned = s.Top() - (pre - n - 1)
	}
	return &Outcome{s: s, first: base + 1, declared: returned, returned: returned, status: engine.StatusOK}
}

// absorb normalizes a host panic caught underneath the protected call. The
// guard's slot is consumed and the frame is unwound, then the error handler
// (if any) transforms the panic's description unprotected; a fault in the
// handler surfaces as StatusHandler, not a panic.
func (f *Function) absorb(s *engine.State, h *handlerGuard, base int, msg string) *Outcome {
	h.consume()
	s.SetTop(base)
	if f.Handler.Valid() {
		f.Handler.Push()
		s.Push(engine.String(msg))
		if err := s.Call(1, 1); err != nil {
			s.SetTop(base)
			s.Push(engine.String(err.Error()))
			return &Outcome{s: s, first: s.Top(), returned: 1, status: engine.StatusHandler}
		}
	} else {
		s.Push(engine.String(msg))
	}
	return &Outcome{s: s, first: s.Top(), returned: 1, status: engine.StatusRuntime}
}

// describe funnels the three host failure shapes into one error text.
func describe(r any) string {
	switch v := r.(type) {
	case string:
		return v
	case error:
		return v.Error()
	default:
		return fmt.Sprintf("unknown failure during protected call: %v", v)
	}
}
