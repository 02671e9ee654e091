package containers

import (
	"reflect"
	"testing"
)

func idsOf(items []interface{}) []ID {
	out := make([]ID, len(items))
	for i, v := range items {
		out[i] = v.(ID)
	}
	return out
}

func TestListSubsurfaceReorderScenario(t *testing.T) {
	eq := func(a, b interface{}) bool { return a.(ID) == b.(ID) }

	l := NewList()
	l.Append(ID(1))
	l.Append(ID(2))
	l.Append(ID(3))

	if !l.MoveAbove(ID(1), ID(3), eq) {
		t.Fatal("MoveAbove(1,3) reported no match")
	}
	want := []ID{2, 3, 1}
	if got := idsOf(l.Snapshot()); !reflect.DeepEqual(got, want) {
		t.Fatalf("after place_above(c1,c3): got %v, want %v", got, want)
	}

	if !l.MoveBelow(ID(2), ID(3), eq) {
		t.Fatal("MoveBelow(2,3) reported no match")
	}
	want = []ID{3, 2, 1}
	if got := idsOf(l.Snapshot()); !reflect.DeepEqual(got, want) {
		t.Fatalf("after place_below(c2,c3): got %v, want %v", got, want)
	}
}

func TestListAppendPopFront(t *testing.T) {
	l := NewList()
	l.Append("a")
	l.Append("b")
	l.Append("c")

	v, ok := l.PopFront()
	if !ok || v != "a" {
		t.Fatalf("PopFront() = %v, %v, want a, true", v, ok)
	}
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}
}

func TestListRemove(t *testing.T) {
	eq := func(a, b interface{}) bool { return a == b }
	l := NewList()
	l.Append(1)
	l.Append(2)
	l.Append(3)

	if !l.Remove(2, eq) {
		t.Fatal("Remove(2) reported no match")
	}
	want := []interface{}{1, 3}
	if got := l.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Fatalf("after Remove(2): got %v, want %v", got, want)
	}
	if l.Remove(99, eq) {
		t.Fatal("Remove(99) reported a match that doesn't exist")
	}
}
