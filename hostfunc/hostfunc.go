package hostfunc

import (
	"sync"

	"github.com/quillvm/quill/engine"
)

// Func is a host function: arguments arrive in push order, the returned
// slice becomes the call's results, and a returned error is raised as a
// runtime error inside the interpreter.
type Func func(s *engine.State, args []engine.Value) ([]engine.Value, error)

// Registry collects named host functions for installation into a State.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]Func)}
}

func (r *Registry) Register(name string, fn Func) {
	r.mu.Lock()
	r.funcs[name] = fn
	r.mu.Unlock()
}

func (r *Registry) Get(name string) (Func, bool) {
	r.mu.RLock()
	fn, ok := r.funcs[name]
	r.mu.RUnlock()
	return fn, ok
}

func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	return names
}

// Install binds every registered function into the State's globals.
func (r *Registry) Install(s *engine.State) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for name, fn := range r.funcs {
		s.SetGlobal(name, &engine.GoFunc{Name: name, Fn: fn})
	}
}
