package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Load parses a line-based instruction text into a Proto. One instruction
// per line; blank lines and lines starting with # are skipped. Literals are
// integers, floats, quoted strings, true, false, or nil.
//
//	const 2
//	const 3
//	global "add"   # or a bare name: global add
//	call 2 1
//	ret 1
//
// A parse failure is reported as a *StatusError with StatusSyntax.
func Load(name, src string) (*Proto, error) {
	p := &Proto{Name: name}
	for lineno, raw := range strings.Split(src, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tokens, err := scanLine(line)
		if err != nil {
			return nil, syntaxErr(name, lineno+1, err.Error())
		}
		in, err := parseInstr(tokens)
		if err != nil {
			return nil, syntaxErr(name, lineno+1, err.Error())
		}
		p.Code = append(p.Code, in)
	}
	return p, nil
}

func syntaxErr(name string, line int, msg string) *StatusError {
	return &StatusError{
		Status: StatusSyntax,
		Msg:    fmt.Sprintf("%s:%d: %s", name, line, msg),
	}
}

func parseInstr(tokens []string) (Instr, error) {
	op := tokens[0]
	argc := len(tokens) - 1
	switch op {
	case "const":
		if argc != 1 {
			return Instr{}, fmt.Errorf("const expects one literal")
		}
		k, err := parseLiteral(tokens[1])
		if err != nil {
			return Instr{}, err
		}
		return Instr{Op: OpConst, K: k}, nil
	case "arg":
		n, err := parseCount(op, tokens, 1)
		if err != nil {
			return Instr{}, err
		}
		if n[0] < 1 {
			return Instr{}, fmt.Errorf("arg index must be positive")
		}
		return Instr{Op: OpArg, A: n[0]}, nil
	case "global":
		if argc != 1 {
			return Instr{}, fmt.Errorf("global expects a name")
		}
		name := tokens[1]
		if strings.HasPrefix(name, `"`) {
			s, err := strconv.Unquote(name)
			if err != nil {
				return Instr{}, fmt.Errorf("bad global name %s", name)
			}
			name = s
		}
		return Instr{Op: OpGlobal, K: String(name)}, nil
	case "add", "sub", "mul", "div", "concat":
		if argc != 0 {
			return Instr{}, fmt.Errorf("%s takes no operands", op)
		}
		ops := map[string]Op{"add": OpAdd, "sub": OpSub, "mul": OpMul, "div": OpDiv, "concat": OpConcat}
		return Instr{Op: ops[op]}, nil
	case "call":
		n, err := parseCount(op, tokens, 2)
		if err != nil {
			return Instr{}, err
		}
		if n[0] < 0 {
			return Instr{}, fmt.Errorf("call argument count must not be negative")
		}
		if n[1] < MultRet {
			return Instr{}, fmt.Errorf("call result count must be >= %d", MultRet)
		}
		return Instr{Op: OpCall, A: n[0], B: n[1]}, nil
	case "ret":
		n, err := parseCount(op, tokens, 1)
		if err != nil {
			return Instr{}, err
		}
		if n[0] < 0 {
			return Instr{}, fmt.Errorf("ret count must not be negative")
		}
		return Instr{Op: OpReturn, A: n[0]}, nil
	case "fail":
		if argc != 1 {
			return Instr{}, fmt.Errorf("fail expects a quoted message")
		}
		msg, err := strconv.Unquote(tokens[1])
		if err != nil {
			return Instr{}, fmt.Errorf("bad fail message %s", tokens[1])
		}
		return Instr{Op: OpFail, K: String(msg)}, nil
	default:
		return Instr{}, fmt.Errorf("unknown instruction %q", op)
	}
}

func parseCount(op string, tokens []string, want int) ([]int, error) {
	if len(tokens)-1 != want {
		return nil, fmt.Errorf("%s expects %d operand(s)", op, want)
	}
	out := make([]int, want)
	for i := 0; i < want; i++ {
		n, err := strconv.Atoi(tokens[i+1])
		if err != nil {
			return nil, fmt.Errorf("%s operand %q is not an integer", op, tokens[i+1])
		}
		out[i] = n
	}
	return out, nil
}

func parseLiteral(tok string) (Value, error) {
	switch tok {
	case "nil":
		return Nil{}, nil
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	}
	if strings.HasPrefix(tok, `"`) {
		s, err := strconv.Unquote(tok)
		if err != nil {
			return nil, fmt.Errorf("bad string literal %s", tok)
		}
		return String(s), nil
	}
	if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return Int(i), nil
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return Float(f), nil
	}
	return nil, fmt.Errorf("bad literal %q", tok)
}

// scanLine splits on whitespace but keeps quoted strings intact.
func scanLine(line string) ([]string, error) {
	var tokens []string
	i := 0
	for i < len(line) {
		for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
			i++
		}
		if i >= len(line) || line[i] == '#' {
			break
		}
		if line[i] == '"' {
			j := i + 1
			for j < len(line) {
				if line[j] == '\\' {
					j += 2
					continue
				}
				if line[j] == '"' {
					break
				}
				j++
			}
			if j >= len(line) {
				return nil, fmt.Errorf("unterminated string")
			}
			tokens = append(tokens, line[i:j+1])
			i = j + 1
			continue
		}
		j := i
		for j < len(line) && line[j] != ' ' && line[j] != '\t' {
			j++
		}
		tokens = append(tokens, line[i:j])
		i = j
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty instruction")
	}
	return tokens, nil
}
