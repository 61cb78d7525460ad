package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillvm/quill/engine"
	"github.com/quillvm/quill/hostfunc"
)

// newRootCmd builds a fresh command tree. Command and flag state is mutable,
// so every invocation gets its own tree.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quill [file]",
		Short: "Stack VM with a protected call boundary",
		Long: `quill - Run quill scripts through a protected call boundary.

Scripts are loaded from files, inline strings, or stdin and invoked so that
every failure - a runtime error in the script, a fault in an error handler,
or a panic inside a host function - is reported as a normalized error,
never as a crash.`,
		Args: cobra.MaximumNArgs(1),
		Run:  runRun, // Default to run command behavior
	}
	addRunFlags(cmd)
	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newReplCmd())
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("code", "c", "", "Script to execute")
	cmd.Flags().Int("max-depth", 200, "Maximum nested call depth")
	cmd.Flags().Int("stack-limit", 4096, "Maximum evaluation stack height")
	cmd.Flags().Bool("kv", false, "Enable key-value store")
	cmd.Flags().StringSlice("wasm", nil, "Wasm module whose exports become host functions (repeatable)")
}

// newState builds a State with host functions installed per the command's
// flags. The returned cleanup closes any loaded wasm modules.
func newState(cmd *cobra.Command) (*engine.State, func(), error) {
	maxDepth, _ := cmd.Flags().GetInt("max-depth")
	stackLimit, _ := cmd.Flags().GetInt("stack-limit")
	enableKV, _ := cmd.Flags().GetBool("kv")
	wasmPaths, _ := cmd.Flags().GetStringSlice("wasm")

	s := engine.New(engine.WithMaxDepth(maxDepth), engine.WithStackLimit(stackLimit))

	registry := hostfunc.NewRegistry()
	registry.Register("clock", hostfunc.Clock())
	registry.Register("len", hostfunc.Len())
	registry.Register("print", hostfunc.NewPrint(cmd.OutOrStdout()))

	if enableKV {
		hostfunc.NewKVStore().InstallInto(registry)
	}

	var mods []*hostfunc.WasmModule
	cleanup := func() {
		for _, m := range mods {
			m.Close()
		}
	}
	for _, path := range wasmPaths {
		binary, err := os.ReadFile(path)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("read wasm module: %w", err)
		}
		mod, err := hostfunc.LoadWasm(context.Background(), binary)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		mods = append(mods, mod)
		mod.Install(registry)
	}

	registry.Install(s)
	return s, cleanup, nil
}
