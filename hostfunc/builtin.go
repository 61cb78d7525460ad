package hostfunc

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/quillvm/quill/engine"
)

// Clock returns a host function reporting the current time in seconds.
func Clock() Func {
	return func(s *engine.State, args []engine.Value) ([]engine.Value, error) {
		return []engine.Value{engine.Float(float64(time.Now().UnixNano()) / 1e9)}, nil
	}
}

// NewPrint returns a host function that writes its arguments to w,
// space-separated with a trailing newline, and produces no results.
func NewPrint(w io.Writer) Func {
	return func(s *engine.State, args []engine.Value) ([]engine.Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.String()
		}
		fmt.Fprintln(w, strings.Join(parts, " "))
		return nil, nil
	}
}

// Len returns a host function reporting the length of its string argument.
func Len() Func {
	return func(s *engine.State, args []engine.Value) ([]engine.Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("len: expected 1 argument, got %d", len(args))
		}
		str, err := engine.As[string](args[0])
		if err != nil {
			return nil, fmt.Errorf("len: %w", err)
		}
		return []engine.Value{engine.Int(len(str))}, nil
	}
}
