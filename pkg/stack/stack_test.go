package stack_test

import (
	"sl/pkg/stack"
	"testing"
)

func TestPushPop(t *testing.T) {
	s := stack.NewStack(1, 2)
	s.Push(3)

	if s.Size() != 3 {
		t.Fatalf("expected size 3, got %d", s.Size())
	}

	for _, want := range []int{3, 2, 1} {
		got, ok := s.Pop()
		if !ok || got != want {
			t.Errorf("Pop: expected %d, got %d (ok=%v)", want, got, ok)
		}
	}

	if _, ok := s.Pop(); ok {
		t.Error("Pop on empty stack should report false")
	}
}

func TestPeek(t *testing.T) {
	s := stack.NewStack[string]()
	if _, ok := s.Peek(); ok {
		t.Error("Peek on empty stack should report false")
	}

	s.Push("a")
	s.Push("b")
	if top, _ := s.Peek(); top != "b" {
		t.Errorf("expected top b, got %q", top)
	}
	if s.Size() != 2 {
		t.Errorf("Peek must not remove, size is %d", s.Size())
	}

	arr := s.Array()
	if len(arr) != 2 || arr[0] != "a" || arr[1] != "b" {
		t.Errorf("unexpected array %v", arr)
	}
}
