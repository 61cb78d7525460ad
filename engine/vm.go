package engine

import "fmt"

// Op is a micro VM instruction opcode.
type Op uint8

const (
	OpConst  Op = iota // push K
	OpArg              // push argument A (1-based)
	OpGlobal           // push global named K
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpConcat
	OpCall   // call with A args, B results (B may be MultRet)
	OpReturn // return top A values
	OpFail   // raise runtime error K
)

// Instr is one micro VM instruction.
type Instr struct {
	Op   Op
	A, B int
	K    Value
}

// Proto is a loaded chunk: a flat instruction list executable as a callable
// value.
type Proto struct {
	Name string
	Code []Instr
}

func (*Proto) Type() Type { return TypeFunction }

func (p *Proto) String() string {
	if p.Name != "" {
		return "function: " + p.Name
	}
	return "function: chunk"
}

// Call invokes the callable sitting below the top nargs stack values,
// unprotected: execution errors return as Go errors with the stack already
// unwound to below the callable, and host panics propagate to the caller.
func (s *State) Call(nargs, nresults int) error {
	return s.rawCall(nargs, nresults)
}

// ProtectedCall invokes the callable below the top nargs values and adjusts
// the stack to exactly nresults results (MultRet keeps however many were
// produced). On failure the callable and arguments are replaced by exactly
// one error value; when handlerIdx is nonzero, the callable at that stack
// slot transforms the error value first. Host panics are not recovered.
func (s *State) ProtectedCall(nargs, nresults, handlerIdx int) Status {
	if nargs < 0 || s.Top() < nargs+1 {
		s.Push(String(fmt.Sprintf("protected call needs %d stack values, have %d", nargs+1, s.Top())))
		return StatusUnknown
	}
	base := s.Top() - nargs - 1
	err := s.rawCall(nargs, nresults)
	if err == nil {
		return StatusOK
	}

	st := statusOf(err)
	s.SetTop(base)
	if handlerIdx > 0 && st == StatusRuntime {
		handler := s.Get(handlerIdx)
		s.Push(handler)
		s.Push(String(err.Error()))
		if herr := s.rawCall(1, 1); herr != nil {
			s.SetTop(base)
			s.Push(String(herr.Error()))
			return StatusHandler
		}
		return st
	}
	s.Push(String(err.Error()))
	return st
}

// rawCall pops the callable and its arguments, executes, and pushes results
// adjusted to nresults. On error the stack is left as the callee abandoned
// it; ProtectedCall restores it.
func (s *State) rawCall(nargs, nresults int) error {
	fnIdx := s.Top() - nargs
	if fnIdx < 1 {
		return runtimeErrf("call with %d arguments but only %d stack values", nargs, s.Top())
	}
	if s.depth >= s.cfg.maxDepth {
		return &StatusError{Status: StatusMemory, Msg: "call depth limit exceeded"}
	}
	fn := s.stack[fnIdx-1]
	args := make([]Value, nargs)
	copy(args, s.stack[fnIdx:])
	s.stack = s.stack[:fnIdx-1]

	s.depth++
	defer func() { s.depth-- }()

	var results []Value
	var err error
	switch f := fn.(type) {
	case *GoFunc:
		results, err = f.Fn(s, args)
	case *Proto:
		results, err = s.execProto(f, args)
	default:
		err = runtimeErrf("attempt to call a %s value", fn.Type())
	}
	if err != nil {
		return err
	}

	if nresults == MultRet {
		nresults = len(results)
	}
	for i := 0; i < nresults; i++ {
		if i < len(results) {
			s.Push(results[i])
		} else {
			s.Push(Nil{})
		}
	}
	return nil
}

func (s *State) execProto(p *Proto, args []Value) (results []Value, err error) {
	base := s.Top()
	defer s.SetTop(base)

	for pc := 0; pc < len(p.Code); pc++ {
		in := p.Code[pc]
		switch in.Op {
		case OpConst:
			err = s.pushChecked(in.K)
		case OpArg:
			if in.A < 1 || in.A > len(args) {
				return nil, runtimeErrf("%s: no argument %d", p.Name, in.A)
			}
			err = s.pushChecked(args[in.A-1])
		case OpGlobal:
			name := string(in.K.(String))
			v, ok := s.globals[name]
			if !ok {
				return nil, runtimeErrf("%s: undefined global %q", p.Name, name)
			}
			err = s.pushChecked(v)
		case OpAdd, OpSub, OpMul, OpDiv:
			if s.Top()-base < 2 {
				return nil, runtimeErrf("%s: arithmetic needs two operands", p.Name)
			}
			err = s.arith(p, in.Op)
		case OpConcat:
			if s.Top()-base < 2 {
				return nil, runtimeErrf("%s: concat needs two operands", p.Name)
			}
			b := s.Pop()
			a := s.Pop()
			err = s.pushChecked(String(a.String() + b.String()))
		case OpCall:
			if s.Top()-base < in.A+1 {
				return nil, runtimeErrf("%s: call needs %d stack values", p.Name, in.A+1)
			}
			err = s.rawCall(in.A, in.B)
		case OpReturn:
			k := in.A
			if s.Top()-base < k {
				return nil, runtimeErrf("%s: return of %d values with %d available", p.Name, k, s.Top()-base)
			}
			res := make([]Value, k)
			copy(res, s.stack[s.Top()-k:])
			return res, nil
		case OpFail:
			return nil, runtimeErrf("%s", in.K.String())
		default:
			return nil, runtimeErrf("%s: bad opcode %d", p.Name, in.Op)
		}
		if err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func (s *State) arith(p *Proto, op Op) error {
	b := s.Pop()
	a := s.Pop()

	ai, aInt := a.(Int)
	bi, bInt := b.(Int)
	if aInt && bInt {
		switch op {
		case OpAdd:
			return s.pushChecked(ai + bi)
		case OpSub:
			return s.pushChecked(ai - bi)
		case OpMul:
			return s.pushChecked(ai * bi)
		case OpDiv:
			if bi == 0 {
				return runtimeErrf("%s: integer divide by zero", p.Name)
			}
			return s.pushChecked(ai / bi)
		}
	}

	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if !aok || !bok {
		bad := a
		if aok {
			bad = b
		}
		return runtimeErrf("%s: attempt to perform arithmetic on a %s value", p.Name, bad.Type())
	}
	switch op {
	case OpAdd:
		return s.pushChecked(Float(af + bf))
	case OpSub:
		return s.pushChecked(Float(af - bf))
	case OpMul:
		return s.pushChecked(Float(af * bf))
	default:
		return s.pushChecked(Float(af / bf))
	}
}

func toFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case Int:
		return float64(n), true
	case Float:
		return float64(n), true
	default:
		return 0, false
	}
}

func (s *State) pushChecked(v Value) error {
	if s.cfg.stackLimit > 0 && len(s.stack) >= s.cfg.stackLimit {
		return &StatusError{Status: StatusMemory, Msg: "stack limit exceeded"}
	}
	s.Push(v)
	return nil
}
