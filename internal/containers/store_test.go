package containers

import "testing"

func TestIDStoreLifecycle(t *testing.T) {
	s := NewIDStore()
	id := s.NextID()
	if id == InvalidID {
		s.Add(id, "x")
	}

	s.Add(id, "payload")
	v, ok := s.Find(id)
	if !ok || v != "payload" {
		t.Fatalf("Find(%d) = %v, %v, want payload, true", id, v, ok)
	}

	if _, ok := s.Find(id + 1); ok {
		t.Fatalf("Find on unknown id unexpectedly found something")
	}

	removed, ok := s.Delete(id)
	if !ok || removed != "payload" {
		t.Fatalf("Delete(%d) = %v, %v, want payload, true", id, removed, ok)
	}
	if s.Len() != 0 {
		t.Fatalf("Len() after delete = %d, want 0", s.Len())
	}
}

func TestStringStoreForEach(t *testing.T) {
	s := NewStringStore()
	s.Add("out0", 1)
	s.Add("out1", 2)

	seen := map[string]int{}
	s.ForEach(func(key string, data interface{}) {
		seen[key] = data.(int)
	})

	if len(seen) != 2 || seen["out0"] != 1 || seen["out1"] != 2 {
		t.Fatalf("ForEach saw %v, want out0:1 out1:2", seen)
	}

	if _, ok := s.Delete("out0"); !ok {
		t.Fatal("Delete(out0) reported not found")
	}
	if s.Len() != 1 {
		t.Fatalf("Len() after delete = %d, want 1", s.Len())
	}
}
