// Package wlsurface implements the Surface Record: a fixed-slot table
// of protocol resources per surface id, plus the frame-callback queue,
// grounded on wayland-surface.c/.h and wayland-types.h.
package wlsurface

import "github.com/perceptia/wlfrontend/internal/logging"

// ResourceKind enumerates the fixed slots a Surface Record holds, plus
// the one unbounded slot (Frame).
type ResourceKind int

const (
	KindSurface ResourceKind = iota
	KindBuffer
	KindFrame
	KindShellSurface
	KindXDGShellSurface
	numKinds
)

// Resource is the minimal contract a protocol resource handle must
// satisfy to be stored in a Surface Record: enough to compare two
// handles for identity (the Cache never needs more than that).
type Resource interface {
	Client() interface{}
}

// Surface is the Cache's per-surface resource bundle.
type Surface struct {
	slots          [numKinds]Resource
	frameResources []Resource
}

func New() *Surface {
	return &Surface{}
}

// Resource returns the resource stored for kind, or nil. For
// KindFrame this returns the head of the queue (matching the source's
// convention that resources[NOIA_RESOURCE_FRAME] always mirrors the
// first queued frame callback).
func (s *Surface) Resource(kind ResourceKind) Resource {
	return s.slots[kind]
}

// FrameResources returns every queued frame callback, oldest first.
func (s *Surface) FrameResources() []Resource {
	return s.frameResources
}

// AddResource stores rc under kind. Frame resources append to the
// queue; every other kind overwrites a single slot, logging a
// diagnostic if one was already occupied (spec §3: "adding a second
// logs a warning and overwrites").
func (s *Surface) AddResource(kind ResourceKind, rc Resource) {
	if kind == KindFrame {
		s.frameResources = append(s.frameResources, rc)
		s.slots[KindFrame] = s.frameResources[0]
		return
	}
	if s.slots[kind] != nil {
		logging.Warn("surface resource of kind %d already present, overwriting", kind)
	}
	s.slots[kind] = rc
}

// RemoveResource clears kind. For KindFrame it removes rc from the
// queue (by identity) and promotes the new head, if any, into the
// mirror slot.
func (s *Surface) RemoveResource(kind ResourceKind, rc Resource) {
	s.slots[kind] = nil
	if kind != KindFrame {
		return
	}
	for i, item := range s.frameResources {
		if item == rc {
			s.frameResources = append(s.frameResources[:i], s.frameResources[i+1:]...)
			break
		}
	}
	if len(s.frameResources) > 0 {
		s.slots[KindFrame] = s.frameResources[0]
	}
}

// Close logs a leak warning if frame callbacks are still outstanding,
// matching noia_wayland_surface_free's check (more than the two frames
// a Qt-class client is expected to hold at once is treated as a leak).
func (s *Surface) Close() {
	if len(s.frameResources) > 2 {
		logging.Warn("wayland: %d surface frame resources not released", len(s.frameResources))
	}
}
