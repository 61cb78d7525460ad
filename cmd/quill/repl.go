package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

func newReplCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive REPL with persistent state",
		Long: `Start an interactive REPL (Read-Eval-Print Loop) session.

Each submitted chunk is loaded and invoked through the protected call
boundary; host state such as the key-value store persists across chunks.

Features:
  - Command history (up/down arrows)
  - History search (Ctrl+R)
  - Multi-line input (end line with \)

Type 'exit' or 'quit' to end the session, or press Ctrl+D.`,
		Run: runRepl,
	}
	cmd.Flags().Int("max-depth", 200, "Maximum nested call depth")
	cmd.Flags().Int("stack-limit", 4096, "Maximum evaluation stack height")
	cmd.Flags().Bool("kv", false, "Enable key-value store")
	cmd.Flags().StringSlice("wasm", nil, "Wasm module whose exports become host functions (repeatable)")
	cmd.Flags().String("history", "", "History file path (default: ~/.quill_history)")
	return cmd
}

func runRepl(cmd *cobra.Command, args []string) {
	historyFile, _ := cmd.Flags().GetString("history")
	if historyFile == "" {
		home, _ := os.UserHomeDir()
		historyFile = filepath.Join(home, ".quill_history")
	}

	s, cleanup, err := newState(cmd)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            ">>> ",
		HistoryFile:       historyFile,
		HistoryLimit:      1000,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error initializing readline: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Fprintln(cmd.ErrOrStderr(), "quill REPL (type 'exit' to quit, Ctrl+D to exit)")

	var multiLine strings.Builder
	inMultiLine := false
	chunk := 0

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if inMultiLine {
					multiLine.Reset()
					inMultiLine = false
					rl.SetPrompt(">>> ")
				}
				continue
			}
			if err == io.EOF {
				fmt.Println()
				break
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Error reading input: %v\n", err)
			break
		}

		// Handle multi-line input
		if strings.HasSuffix(line, "\\") {
			multiLine.WriteString(strings.TrimSuffix(line, "\\"))
			multiLine.WriteString("\n")
			inMultiLine = true
			rl.SetPrompt("... ")
			continue
		}

		if inMultiLine {
			multiLine.WriteString(line)
			line = multiLine.String()
			multiLine.Reset()
			inMultiLine = false
			rl.SetPrompt(">>> ")
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		chunk++
		name := fmt.Sprintf("repl:%d", chunk)
		if err := runSource(cmd.OutOrStdout(), s, name, line); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	}
}
