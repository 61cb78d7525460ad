package engine

// Ref is a registry reference: it keeps a value alive independently of its
// original stack position. Copies share the same registry entry; Release
// drops the entry for every copy at once.
type Ref struct {
	s  *State
	id int
}

// PopRef moves the top of the stack into the registry and returns a handle
// to it.
func (s *State) PopRef() *Ref {
	v := s.Pop()
	id := s.nextRef
	s.nextRef++
	s.refs[id] = v
	return &Ref{s: s, id: id}
}

// Valid reports whether the reference still names a live registry entry.
func (r *Ref) Valid() bool {
	if r == nil || r.s == nil || r.id == 0 {
		return false
	}
	_, ok := r.s.refs[r.id]
	return ok
}

// Push copies the referenced value onto the stack.
func (r *Ref) Push() {
	v, ok := r.s.refs[r.id]
	if !ok {
		panic("engine: push of released reference")
	}
	r.s.Push(v)
}

// Value returns the referenced value without touching the stack.
func (r *Ref) Value() Value {
	if v, ok := r.s.refs[r.id]; ok {
		return v
	}
	return Nil{}
}

// Release drops the registry entry. The reference and all copies of it
// become invalid.
func (r *Ref) Release() {
	if r == nil || r.s == nil {
		return
	}
	delete(r.s.refs, r.id)
}

// State returns the interpreter instance the reference belongs to.
func (r *Ref) State() *State { return r.s }
