// Package hostfunc provides host function implementations callable from
// scripts through the protected call boundary.
//
// Host functions are Go functions bound into an engine State's globals.
// Errors they return are raised as interpreter-level runtime errors; panics
// they raise are absorbed by the pcall boundary and never escape a
// protected call.
//
// # Registry
//
// The [Registry] collects named host functions and installs them into a
// State in one step:
//
//	registry := hostfunc.NewRegistry()
//	registry.Register("clock", hostfunc.Clock())
//	registry.Install(state)
//
// # Built-in Capabilities
//
// Key-value storage: [KVStore] exposes kv_get/kv_set/kv_delete.
//
// WebAssembly: [WasmModule] adapts exported functions of a compiled wasm
// module into host functions, so scripts can call wasm-backed capabilities
// through the same boundary.
package hostfunc
