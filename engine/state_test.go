package engine_test

import (
	"testing"

	"github.com/quillvm/quill/engine"
)

func TestStackPushPop(t *testing.T) {
	s := engine.New()

	s.Push(engine.Int(1))
	s.Push(engine.String("two"))
	if s.Top() != 2 {
		t.Fatalf("expected height 2, got %d", s.Top())
	}

	v := s.Pop()
	if v != engine.String("two") {
		t.Errorf("expected \"two\", got %v", v)
	}
	if s.Top() != 1 {
		t.Errorf("expected height 1, got %d", s.Top())
	}
}

func TestStackIndexing(t *testing.T) {
	s := engine.New()
	s.MultiPush(10, 20, 30)

	if got := s.Get(1); got != engine.Int(10) {
		t.Errorf("Get(1) = %v, want 10", got)
	}
	if got := s.Get(-1); got != engine.Int(30) {
		t.Errorf("Get(-1) = %v, want 30", got)
	}
	if got := s.Get(-3); got != engine.Int(10) {
		t.Errorf("Get(-3) = %v, want 10", got)
	}
}

func TestStackRemove(t *testing.T) {
	s := engine.New()
	s.MultiPush(1, 2, 3)

	s.Remove(2)
	if s.Top() != 2 {
		t.Fatalf("expected height 2, got %d", s.Top())
	}
	if s.Get(1) != engine.Int(1) || s.Get(2) != engine.Int(3) {
		t.Errorf("expected [1 3], got [%v %v]", s.Get(1), s.Get(2))
	}
}

func TestSetTop(t *testing.T) {
	s := engine.New()
	s.MultiPush(1, 2, 3)

	s.SetTop(1)
	if s.Top() != 1 {
		t.Fatalf("expected height 1, got %d", s.Top())
	}

	s.SetTop(3)
	if s.Top() != 3 {
		t.Fatalf("expected height 3, got %d", s.Top())
	}
	if _, ok := s.Get(3).(engine.Nil); !ok {
		t.Errorf("grown slot should be nil, got %v", s.Get(3))
	}
}

func TestMultiPushConverts(t *testing.T) {
	s := engine.New()
	n := s.MultiPush(1, 2.5, "x", true, nil)
	if n != 5 {
		t.Fatalf("expected 5 pushed, got %d", n)
	}
	if s.Get(1).Type() != engine.TypeInt {
		t.Errorf("expected integer, got %s", s.Get(1).Type())
	}
	if s.Get(2).Type() != engine.TypeFloat {
		t.Errorf("expected float, got %s", s.Get(2).Type())
	}
	if s.Get(5).Type() != engine.TypeNil {
		t.Errorf("expected nil, got %s", s.Get(5).Type())
	}
}

func TestPopAs(t *testing.T) {
	s := engine.New()
	s.Push(engine.Int(7))

	n, err := engine.PopAs[int](s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 7 {
		t.Errorf("expected 7, got %d", n)
	}

	s.Push(engine.String("x"))
	if _, err := engine.PopAs[int](s); err == nil {
		t.Error("expected conversion error for string to int")
	}
}

func TestRefLifecycle(t *testing.T) {
	s := engine.New()
	s.Push(engine.String("kept"))
	ref := s.PopRef()

	if s.Top() != 0 {
		t.Fatalf("PopRef should consume the slot, height %d", s.Top())
	}
	if !ref.Valid() {
		t.Fatal("expected valid reference")
	}

	ref.Push()
	if s.Top() != 1 || s.Get(1) != engine.String("kept") {
		t.Errorf("pushed value = %v, height %d", s.Get(1), s.Top())
	}
	s.Pop()

	ref.Release()
	if ref.Valid() {
		t.Error("released reference should be invalid")
	}
}

func TestNilRefInvalid(t *testing.T) {
	var ref *engine.Ref
	if ref.Valid() {
		t.Error("nil reference should be invalid")
	}
}

func TestGlobals(t *testing.T) {
	s := engine.New()
	s.SetGlobal("answer", 42)

	v, ok := s.Global("answer")
	if !ok || v != engine.Int(42) {
		t.Fatalf("Global(answer) = %v, %v", v, ok)
	}

	ref, ok := s.GlobalRef("answer")
	if !ok || !ref.Valid() {
		t.Fatal("expected valid global ref")
	}
	if ref.Value() != engine.Int(42) {
		t.Errorf("ref value = %v, want 42", ref.Value())
	}

	if _, ok := s.GlobalRef("missing"); ok {
		t.Error("expected missing global to report false")
	}
}
