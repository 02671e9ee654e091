package wlcache

import (
	"testing"

	"github.com/perceptia/wlfrontend/internal/containers"
	"github.com/perceptia/wlfrontend/internal/wlsurface"
)

type fakeResource struct {
	client interface{}
}

func (r *fakeResource) Client() interface{} { return r.client }

func TestSurfaceLifecycle(t *testing.T) {
	c := New()
	c.Lock()
	defer c.Unlock()

	sid := containers.ID(1)
	c.CreateSurface(sid)
	if c.FindSurface(sid) == nil {
		t.Fatal("FindSurface after CreateSurface returned nil")
	}

	rc := &fakeResource{client: "clientA"}
	c.AddSurfaceResource(sid, wlsurface.KindSurface, rc)

	client, surfaceRC := c.ResourceForSID(sid)
	if client != "clientA" || surfaceRC != rc {
		t.Fatalf("ResourceForSID = %v, %v, want clientA, rc", client, surfaceRC)
	}

	c.RemoveSurface(sid)
	if c.FindSurface(sid) != nil {
		t.Fatal("FindSurface after RemoveSurface still returns a record")
	}
}

func TestGeneralResourceRoundTrip(t *testing.T) {
	c := New()
	c.Lock()
	defer c.Unlock()

	rc1 := &fakeResource{client: "A"}
	rc2 := &fakeResource{client: "B"}
	c.AddGeneralResource(KindKeyboard, rc1)
	c.AddGeneralResource(KindKeyboard, rc2)

	got := c.Resources(KindKeyboard)
	if len(got) != 2 {
		t.Fatalf("Resources(KindKeyboard) len = %d, want 2", len(got))
	}

	c.RemoveGeneralResource(KindKeyboard, rc1)
	got = c.Resources(KindKeyboard)
	if len(got) != 1 || got[0] != rc2 {
		t.Fatalf("Resources(KindKeyboard) after remove = %v, want [rc2]", got)
	}
}

func TestRegionLifecycle(t *testing.T) {
	c := New()
	c.Lock()
	defer c.Unlock()

	rid := c.CreateRegion()
	if c.FindRegion(rid) == nil {
		t.Fatal("FindRegion after CreateRegion returned nil")
	}
	c.RemoveRegion(rid)
	if c.FindRegion(rid) != nil {
		t.Fatal("FindRegion after RemoveRegion still returns a record")
	}
}

func TestChildOrdering(t *testing.T) {
	c := New()
	c.Lock()
	defer c.Unlock()

	parent := containers.ID(100)
	c.RelateChild(parent, 1)
	c.RelateChild(parent, 2)
	c.RelateChild(parent, 3)

	c.PlaceAbove(parent, 1, 3)
	got := c.Children(parent)
	want := []containers.ID{2, 3, 1}
	if !idsEqual(got, want) {
		t.Fatalf("Children after PlaceAbove = %v, want %v", got, want)
	}

	c.PlaceBelow(parent, 2, 3)
	got = c.Children(parent)
	want = []containers.ID{3, 2, 1}
	if !idsEqual(got, want) {
		t.Fatalf("Children after PlaceBelow = %v, want %v", got, want)
	}
}

func idsEqual(a, b []containers.ID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
