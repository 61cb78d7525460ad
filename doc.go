// Package quill provides a small embedded stack VM whose callables are
// invoked through a protected call boundary.
//
// # Overview
//
// quill normalizes every failure path of an embedded call into one outcome
// shape: interpreter-raised runtime errors, resource exhaustion, faults in
// the error handler, and panics raised by host functions all arrive as a
// status plus a single error value, never as an unwinding panic.
//
// # Basic Usage
//
//	s := engine.New()
//	proto, _ := engine.Load("chunk", "const 2\nconst 3\nadd\nret 1")
//	s.Push(proto)
//	f := pcall.New(s.PopRef())
//
//	sum, err := pcall.Call1[int](f) // 5
//
//	out := f.Call() // dynamic: results described by the outcome
//	defer out.Release()
//
// # Host Functions
//
//	registry := hostfunc.NewRegistry()
//	registry.Register("clock", hostfunc.Clock())
//	registry.Install(s)
//
// See the [engine], [pcall], and [hostfunc] packages for detailed API
// documentation.
package quill
