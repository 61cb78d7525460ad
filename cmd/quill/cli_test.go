package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func executeCommand(root *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestCLIHelp(t *testing.T) {
	output, err := executeCommand(newRootCmd(), "--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectedPhrases := []string{
		"quill",
		"protected call",
		"run",
		"repl",
	}

	for _, phrase := range expectedPhrases {
		if !strings.Contains(output, phrase) {
			t.Errorf("help output should contain %q", phrase)
		}
	}
}

func TestCLIRunHelp(t *testing.T) {
	output, err := executeCommand(newRootCmd(), "run", "--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectedPhrases := []string{
		"--code",
		"--kv",
		"--wasm",
		"--max-depth",
	}

	for _, phrase := range expectedPhrases {
		if !strings.Contains(output, phrase) {
			t.Errorf("run help output should contain %q", phrase)
		}
	}
}

func TestCLICommandStateIsolated(t *testing.T) {
	// A help invocation must not leak flag state into later invocations.
	if _, err := executeCommand(newRootCmd(), "run", "--help"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := executeCommand(newRootCmd(), "run", "--kv", "-c", "const 1\nret 1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	output, err := executeCommand(newRootCmd(), "run", "-c", "const 2\nconst 3\nadd\nret 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(output) != "5" {
		t.Errorf("expected '5', got %q", output)
	}
}

func TestCLIRunInline(t *testing.T) {
	output, err := executeCommand(newRootCmd(), "run", "-c", "const 2\nconst 3\nadd\nret 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(output) != "5" {
		t.Errorf("expected '5', got %q", output)
	}
}

func TestCLIRunKV(t *testing.T) {
	script := `
		global kv_set
		const "name"
		const "quill"
		call 2 0
		global kv_get
		const "name"
		call 1 1
		ret 1
	`
	output, err := executeCommand(newRootCmd(), "run", "--kv", "-c", script)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(output) != "quill" {
		t.Errorf("expected 'quill', got %q", output)
	}
}

func TestCLIRunPrint(t *testing.T) {
	script := `
		global print
		const "hello"
		call 1 0
		ret 0
	`
	output, err := executeCommand(newRootCmd(), "run", "-c", script)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(output) != "hello" {
		t.Errorf("expected 'hello', got %q", output)
	}
}
