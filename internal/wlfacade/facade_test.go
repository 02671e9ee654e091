package wlfacade

import (
	"testing"

	"github.com/perceptia/wlfrontend/internal/containers"
	"github.com/perceptia/wlfrontend/internal/coordinator"
	"github.com/perceptia/wlfrontend/internal/wlcache"
	"github.com/perceptia/wlfrontend/internal/wlstate"
	"github.com/perceptia/wlfrontend/internal/wlsurface"
)

type fakeResource struct {
	client interface{}
}

func (r *fakeResource) Client() interface{} { return r.client }

type fakeSerials struct{ n uint32 }

func (s *fakeSerials) NextSerial() uint32 { s.n++; return s.n }

type fakeKeyboardResource struct {
	fakeResource
	entered []uint32
}

func (k *fakeKeyboardResource) SendEnter(serial uint32, surfaceRC wlsurface.Resource, keys []byte) {
	k.entered = append(k.entered, serial)
}

func newTestFacade(t *testing.T) (*Facade, *coordinator.Fake) {
	t.Helper()
	cache := wlcache.New()
	coord := coordinator.NewFake()
	state := &wlstate.State{KeyboardFocusedSID: wlstate.InvalidSurfaceID, PointerFocusedSID: wlstate.InvalidSurfaceID}
	return New(cache, coord, state, &fakeSerials{}), coord
}

func TestCreateAndRemoveSurface(t *testing.T) {
	f, coord := newTestFacade(t)

	sid := f.CreateSurface()
	rc := &fakeResource{client: "A"}
	f.AddSurface(sid, rc)

	if f.Cache.FindSurface(sid) == nil {
		t.Fatal("surface record missing after AddSurface")
	}

	f.RemoveSurface(sid, rc)
	if f.Cache.FindSurface(sid) != nil {
		t.Fatal("surface record still present after RemoveSurface")
	}
	if coord.LastCall().Name != "SurfaceDestroy" {
		t.Fatalf("last coordinator call = %q, want SurfaceDestroy", coord.LastCall().Name)
	}
}

func TestSetInputRegionScenario(t *testing.T) {
	f, coord := newTestFacade(t)

	sid := f.CreateSurface()
	rid := f.CreateRegion()
	f.InflateRegion(rid, 10, 20, 100, 50)

	f.SetInputRegion(sid, rid)
	if call := coord.LastCall(); call.Name != "SurfaceSetRequestedSize" {
		t.Fatalf("last call = %q, want SurfaceSetRequestedSize", call.Name)
	}

	f.SetInputRegion(sid, containers.InvalidID)
	if call := coord.LastCall(); call.Name != "SurfaceResetOffsetAndRequestedSize" {
		t.Fatalf("last call = %q, want SurfaceResetOffsetAndRequestedSize", call.Name)
	}
}

func TestAddKeyboardResourceSendsImmediateEnterWhenFocused(t *testing.T) {
	f, _ := newTestFacade(t)

	sid := f.CreateSurface()
	surfaceRC := &fakeResource{client: "A"}
	f.AddSurface(sid, surfaceRC)
	f.State.KeyboardFocusedSID = sid

	kb := &fakeKeyboardResource{fakeResource: fakeResource{client: "A"}}
	f.AddKeyboardResource(kb)

	if len(kb.entered) != 1 {
		t.Fatalf("expected exactly one immediate enter, got %d", len(kb.entered))
	}
}

func TestAddKeyboardResourceSkipsEnterWhenDifferentClient(t *testing.T) {
	f, _ := newTestFacade(t)

	sid := f.CreateSurface()
	f.AddSurface(sid, &fakeResource{client: "A"})
	f.State.KeyboardFocusedSID = sid

	kb := &fakeKeyboardResource{fakeResource: fakeResource{client: "B"}}
	f.AddKeyboardResource(kb)

	if len(kb.entered) != 0 {
		t.Fatalf("expected no immediate enter for a different client, got %d", len(kb.entered))
	}
}

func TestSubsurfacePlacement(t *testing.T) {
	f, _ := newTestFacade(t)

	parent := containers.ID(1)
	f.Cache.Lock()
	f.Cache.RelateChild(parent, 1)
	f.Cache.RelateChild(parent, 2)
	f.Cache.RelateChild(parent, 3)
	f.Cache.Unlock()

	f.PlaceAbove(parent, 1, 3)
	f.PlaceBelow(parent, 2, 3)

	f.Cache.Lock()
	got := f.Cache.Children(parent)
	f.Cache.Unlock()

	want := []containers.ID{3, 2, 1}
	if len(got) != len(want) {
		t.Fatalf("Children = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Children = %v, want %v", got, want)
		}
	}
}
