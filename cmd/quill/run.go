package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillvm/quill/engine"
	"github.com/quillvm/quill/pcall"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Run a script",
		Long: `Execute a quill script through the protected call boundary.

Scripts can be provided via:
  - File argument: quill run script.qs
  - Inline flag: quill run -c 'const 2
    const 3
    add
    ret 1'
  - Stdin: quill run < script.qs`,
		Args: cobra.MaximumNArgs(1),
		Run:  runRun,
	}
	addRunFlags(cmd)
	return cmd
}

func runRun(cmd *cobra.Command, args []string) {
	code, _ := cmd.Flags().GetString("code")

	var source string
	name := "chunk"

	switch {
	case code != "":
		source = code
	case len(args) > 0:
		name = args[0]
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			os.Exit(1)
		}
		source = string(data)
	default:
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) != 0 {
			cmd.Help()
			return
		}
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			os.Exit(1)
		}
		source = string(data)
		if source == "" {
			cmd.Help()
			return
		}
	}

	s, cleanup, err := newState(cmd)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := runSource(cmd.OutOrStdout(), s, name, source); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		os.Exit(1)
	}
}

// runSource loads a chunk, invokes it protected, and prints its results one
// per line.
func runSource(w io.Writer, s *engine.State, name, source string) error {
	proto, err := engine.Load(name, source)
	if err != nil {
		return err
	}
	s.Push(proto)
	ref := s.PopRef()
	defer ref.Release()

	f := pcall.New(ref)
	out := f.Call()
	defer out.Release()

	if !out.OK() {
		return out.Err()
	}
	for _, v := range out.Values() {
		fmt.Fprintln(w, v.String())
	}
	return nil
}
