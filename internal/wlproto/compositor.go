package wlproto

import (
	"github.com/perceptia/wlfrontend/internal/containers"
	"github.com/perceptia/wlfrontend/internal/wire"
	"github.com/perceptia/wlfrontend/internal/wlfacade"
	"github.com/perceptia/wlfrontend/internal/wlsurface"
)

// Compositor is the wl_compositor global's bind-time resource: a
// thin handle whose only requests are the two object factories.
type Compositor struct {
	resourceBase
	facade *wlfacade.Facade
}

// BindCompositor is the wl_compositor global's bind callback,
// registered with the Engine at version 3.
func BindCompositor(facade *wlfacade.Facade) wire.BindFunc {
	return func(client wire.Client, version, objectID uint32) {
		_ = &Compositor{resourceBase: resourceBase{client: client, id: objectID, version: version}, facade: facade}
	}
}

// CreateSurface handles wl_compositor.create_surface: mint a sid,
// create the Surface Record, and return the new resource.
func (c *Compositor) CreateSurface(newID uint32) *Surface {
	sid := c.facade.CreateSurface()
	s := &Surface{resourceBase: resourceBase{client: c.client, id: newID, version: c.version}, facade: c.facade, sid: sid}
	c.facade.AddSurface(sid, s)
	return s
}

// CreateRegion handles wl_compositor.create_region.
func (c *Compositor) CreateRegion(newID uint32) *Region {
	rid := c.facade.CreateRegion()
	return &Region{resourceBase: resourceBase{client: c.client, id: newID, version: c.version}, facade: c.facade, rid: rid}
}

// Surface is the wl_surface resource: request-only state, applied to
// the Coordinator only at Commit.
type Surface struct {
	resourceBase
	facade *wlfacade.Facade
	sid    containers.ID

	pendingBuffer wlsurface.Resource
	pendingW      int
	pendingH      int
	pendingStride int
	pendingData   []byte
}

func (s *Surface) SID() containers.ID { return s.sid }

// Attach handles wl_surface.attach.
func (s *Surface) Attach(buffer *Buffer, w, h, stride int, data []byte) {
	s.pendingBuffer, s.pendingW, s.pendingH, s.pendingStride, s.pendingData = buffer, w, h, stride, data
}

// Frame handles wl_surface.frame: register a one-shot callback.
func (s *Surface) Frame(newID uint32) *Callback {
	cb := &Callback{resourceBase: resourceBase{client: s.client, id: newID, version: s.version}}
	s.facade.Cache.Lock()
	s.facade.Cache.AddSurfaceResource(s.sid, wlsurface.KindFrame, cb)
	s.facade.Cache.Unlock()
	return cb
}

// SetInputRegion handles wl_surface.set_input_region; a nil region
// argument resets both offset and requested size.
func (s *Surface) SetInputRegion(region *Region) {
	if region == nil {
		s.facade.SetInputRegion(s.sid, containers.InvalidID)
		return
	}
	s.facade.SetInputRegion(s.sid, region.rid)
}

// Commit handles wl_surface.commit: forward the buffer attach (if
// any) to the Coordinator and commit the pending state.
func (s *Surface) Commit() {
	if s.pendingBuffer != nil {
		s.facade.SurfaceAttach(s.sid, s.pendingBuffer, s.pendingW, s.pendingH, s.pendingStride, s.pendingData)
		s.pendingBuffer = nil
	}
	s.facade.Commit(s.sid)
}

// Destroy handles wl_surface.destroy.
func (s *Surface) Destroy() {
	s.facade.RemoveSurface(s.sid, s)
}

// Buffer is the wl_buffer resource.
type Buffer struct {
	resourceBase
}

func (b *Buffer) SendRelease() {
	sendLog("wl_buffer", "release", b.id)
}

// Callback is the wl_callback resource created by surface.frame.
type Callback struct {
	resourceBase
}

func (c *Callback) SendDone(msSinceEpoch int64) {
	sendLog("wl_callback", "done", c.id, msSinceEpoch)
}

func (c *Callback) Destroy() {}

// Region is the wl_region resource.
type Region struct {
	resourceBase
	facade *wlfacade.Facade
	rid    containers.ID
}

// Add handles wl_region.add: inflate the bounding rectangle.
func (r *Region) Add(x, y, w, h int) {
	r.facade.InflateRegion(r.rid, x, y, w, h)
}

// Subtract handles wl_region.subtract: accepted but unimplemented.
func (r *Region) Subtract(x, y, w, h int) {}

func (r *Region) Destroy() {
	r.facade.RemoveRegion(r.rid)
}

// Subcompositor is the wl_subcompositor global's bind-time resource.
type Subcompositor struct {
	resourceBase
	facade *wlfacade.Facade
}

func BindSubcompositor(facade *wlfacade.Facade) wire.BindFunc {
	return func(client wire.Client, version, objectID uint32) {
		_ = &Subcompositor{resourceBase: resourceBase{client: client, id: objectID, version: version}, facade: facade}
	}
}

// GetSubsurface handles wl_subcompositor.get_subsurface.
func (sc *Subcompositor) GetSubsurface(newID uint32, surface, parent *Surface, x, y int) *Subsurface {
	sc.facade.AddSubsurface(surface.sid, parent.sid, x, y)
	return &Subsurface{
		resourceBase: resourceBase{client: sc.client, id: newID, version: sc.version},
		facade:       sc.facade,
		sid:          surface.sid,
		parentSID:    parent.sid,
	}
}

// Subsurface is the wl_subsurface resource.
type Subsurface struct {
	resourceBase
	facade    *wlfacade.Facade
	sid       containers.ID
	parentSID containers.ID
}

func (sub *Subsurface) SetPosition(x, y int) {
	sub.facade.SetSubsurfacePosition(sub.sid, x, y)
}

// PlaceAbove handles wl_subsurface.place_above.
func (sub *Subsurface) PlaceAbove(sibling *Subsurface) {
	sub.facade.PlaceAbove(sub.parentSID, sub.sid, sibling.sid)
}

// PlaceBelow handles wl_subsurface.place_below.
func (sub *Subsurface) PlaceBelow(sibling *Subsurface) {
	sub.facade.PlaceBelow(sub.parentSID, sub.sid, sibling.sid)
}

func (sub *Subsurface) Destroy() {}
