package engine

import "fmt"

// State is one interpreter instance: an evaluation stack, a globals table,
// and a value registry. A State is not safe for concurrent use; callers own
// serialization.
type State struct {
	stack   []Value
	globals map[string]Value
	refs    map[int]Value
	nextRef int
	depth   int
	cfg     config
}

// New creates a State with the given options applied.
func New(opts ...Option) *State {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &State{
		stack:   make([]Value, 0, 32),
		globals: make(map[string]Value),
		refs:    make(map[int]Value),
		nextRef: 1,
		cfg:     cfg,
	}
}

// Top returns the current stack height.
func (s *State) Top() int { return len(s.stack) }

// Push places a value on top of the stack.
func (s *State) Push(v Value) {
	s.stack = append(s.stack, v)
}

// Pop removes and returns the top of the stack.
func (s *State) Pop() Value {
	if len(s.stack) == 0 {
		panic("engine: pop from empty stack")
	}
	v := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return v
}

// PopAs pops the top of the stack and converts it to T.
func PopAs[T any](s *State) (T, error) {
	return As[T](s.Pop())
}

// MultiPush converts each argument with ValueOf and pushes it, returning the
// number of values pushed.
func (s *State) MultiPush(args ...any) int {
	for _, a := range args {
		s.Push(ValueOf(a))
	}
	return len(args)
}

// Get reads the value at a 1-based stack index. Negative indices count from
// the top: Get(-1) is the topmost value.
func (s *State) Get(idx int) Value {
	i := s.abs(idx)
	return s.stack[i-1]
}

// Remove deletes the slot at idx, shifting everything above it down.
func (s *State) Remove(idx int) {
	i := s.abs(idx)
	s.stack = append(s.stack[:i-1], s.stack[i:]...)
}

// SetTop truncates or grows the stack to height h, filling new slots with nil.
func (s *State) SetTop(h int) {
	if h < 0 {
		panic("engine: negative stack height")
	}
	for len(s.stack) < h {
		s.stack = append(s.stack, Nil{})
	}
	s.stack = s.stack[:h]
}

func (s *State) abs(idx int) int {
	if idx < 0 {
		idx = len(s.stack) + idx + 1
	}
	if idx < 1 || idx > len(s.stack) {
		panic(fmt.Sprintf("engine: stack index %d out of range (height %d)", idx, len(s.stack)))
	}
	return idx
}

// SetGlobal binds a value in the globals table.
func (s *State) SetGlobal(name string, v any) {
	s.globals[name] = ValueOf(v)
}

// Global looks up a global by name.
func (s *State) Global(name string) (Value, bool) {
	v, ok := s.globals[name]
	return v, ok
}

// GlobalRef moves a copy of a global into the registry and returns its
// handle. The second result is false if the global is not bound.
func (s *State) GlobalRef(name string) (*Ref, bool) {
	v, ok := s.globals[name]
	if !ok {
		return nil, false
	}
	s.Push(v)
	return s.PopRef(), true
}
