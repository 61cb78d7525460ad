package engine_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/quillvm/quill/engine"
)

func TestLoadBasic(t *testing.T) {
	proto, err := engine.Load("chunk", `
		# comment line
		const 1
		const "two"  # trailing comment
		const 3.5
		const true
		const nil
		ret 5
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(proto.Code) != 6 {
		t.Errorf("expected 6 instructions, got %d", len(proto.Code))
	}
	if proto.Code[1].K != engine.String("two") {
		t.Errorf("string literal = %v", proto.Code[1].K)
	}
	if proto.Code[2].K != engine.Float(3.5) {
		t.Errorf("float literal = %v", proto.Code[2].K)
	}
}

func TestLoadQuotedGlobal(t *testing.T) {
	proto, err := engine.Load("chunk", `global "my func"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proto.Code[0].K != engine.String("my func") {
		t.Errorf("global name = %v", proto.Code[0].K)
	}
}

func TestLoadSyntaxErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"unknown instruction", "frobnicate"},
		{"bad literal", "const 1x2"},
		{"missing operand", "call 1"},
		{"unterminated string", `const "oops`},
		{"bad count", "ret x"},
		{"unquoted fail", "fail boom"},
		{"negative call args", "call -1 0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := engine.Load("chunk", tc.src)
			if err == nil {
				t.Fatal("expected error")
			}
			var se *engine.StatusError
			if !errors.As(err, &se) || se.Status != engine.StatusSyntax {
				t.Errorf("expected syntax status, got %v", err)
			}
			if !strings.Contains(err.Error(), "chunk:1") {
				t.Errorf("error should carry chunk and line: %q", err)
			}
		})
	}
}

func TestLoadedChunkRuns(t *testing.T) {
	s := engine.New()
	proto, err := engine.Load("greet", `
		const "hello, "
		arg 1
		concat
		ret 1
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Push(proto)
	s.Push(engine.String("world"))
	if st := s.ProtectedCall(1, 1, 0); st != engine.StatusOK {
		t.Fatalf("status = %s", st)
	}
	if got := s.Pop(); got != engine.String("hello, world") {
		t.Errorf("greet = %v", got)
	}
}
