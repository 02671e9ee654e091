// Package wlfacade implements the Facade: the single inbound API the
// protocol bindings call in response to client requests. Every
// operation is a short transaction — lock cache, read, call
// Coordinator, mutate cache, unlock — grounded on wayland-facade.c/.h.
package wlfacade

import (
	"github.com/perceptia/wlfrontend/internal/containers"
	"github.com/perceptia/wlfrontend/internal/coordinator"
	"github.com/perceptia/wlfrontend/internal/logging"
	"github.com/perceptia/wlfrontend/internal/wlcache"
	"github.com/perceptia/wlfrontend/internal/wlstate"
	"github.com/perceptia/wlfrontend/internal/wlsurface"
	"github.com/perceptia/wlfrontend/internal/wltransfer"
)

// SerialSource mints event serials; wlengine.Engine satisfies this.
type SerialSource interface {
	NextSerial() uint32
}

// SelectionSender is the Gateway's selection broadcast, injected here
// so send_selection can delegate to it without wlfacade importing
// wlgateway (which itself needs to call Facade-adjacent cache helpers,
// so the dependency only runs one way).
type SelectionSender interface {
	SendSelection()
}

// Facade is constructed once and shared by every protocol binding.
type Facade struct {
	Cache   *wlcache.Cache
	Coord   coordinator.Coordinator
	State   *wlstate.State
	Serials SerialSource
	Gateway SelectionSender
}

func New(cache *wlcache.Cache, coord coordinator.Coordinator, state *wlstate.State, serials SerialSource) *Facade {
	return &Facade{Cache: cache, Coord: coord, State: state, Serials: serials}
}

// CreateSurface asks the Coordinator to mint a new surface id.
func (f *Facade) CreateSurface() containers.ID {
	return f.Coord.SurfaceCreate()
}

// AddSurface attaches rc to sid's `surface` slot, creating the Surface
// Record if this is the first resource seen for sid.
func (f *Facade) AddSurface(sid containers.ID, rc wlsurface.Resource) {
	f.Cache.Lock()
	defer f.Cache.Unlock()
	if f.Cache.FindSurface(sid) == nil {
		f.Cache.CreateSurface(sid)
	}
	f.Cache.AddSurfaceResource(sid, wlsurface.KindSurface, rc)
}

// SurfaceAttach records the new buffer slot and forwards the pixel
// data to the Coordinator.
func (f *Facade) SurfaceAttach(sid containers.ID, bufferRC wlsurface.Resource, width, height, stride int, data []byte) {
	f.Cache.Lock()
	defer f.Cache.Unlock()
	f.Cache.AddSurfaceResource(sid, wlsurface.KindBuffer, bufferRC)
	f.Coord.SurfaceAttach(sid, width, height, stride, data, bufferRC)
}

// Commit applies the pending double-buffered state. The binding never
// buffers itself — that's the Coordinator's job — this call is the
// single point where pending state becomes visible.
func (f *Facade) Commit(sid containers.ID) {
	f.Cache.Lock()
	defer f.Cache.Unlock()
	f.Coord.SurfaceCommit(sid)
}

// RemoveSurface destroys sid on the Coordinator, then removes its
// `surface` slot and the whole record.
func (f *Facade) RemoveSurface(sid containers.ID, rc wlsurface.Resource) {
	f.Cache.Lock()
	defer f.Cache.Unlock()
	f.Coord.SurfaceDestroy(sid)
	f.Cache.RemoveSurfaceResource(sid, wlsurface.KindSurface, rc)
	f.Cache.RemoveSurface(sid)
}

// AddShellSurface attaches a shell-kind resource (wl_shell_surface or
// xdg_surface) and tells the Coordinator the surface is now shown in
// a shell.
func (f *Facade) AddShellSurface(sid containers.ID, kind wlsurface.ResourceKind, rc wlsurface.Resource) {
	f.Cache.Lock()
	defer f.Cache.Unlock()
	f.Cache.AddSurfaceResource(sid, kind, rc)
	f.Coord.SurfaceShow(sid, coordinator.ShowDrawable|coordinator.ShowInShell)
}

// AddSubsurface relates a child surface to its parent and positions
// it, plus records the ordering relation the Cache needs to serve
// place_above/place_below.
func (f *Facade) AddSubsurface(sid, parentSID containers.ID, x, y int) {
	f.Cache.Lock()
	defer f.Cache.Unlock()
	f.Coord.SurfaceRelate(sid, parentSID)
	f.Coord.SurfaceSetRelativePosition(sid, coordinator.Position{X: x, Y: y})
	f.Cache.RelateChild(parentSID, sid)
}

func (f *Facade) SetOffset(sid containers.ID, x, y int) {
	f.Cache.Lock()
	defer f.Cache.Unlock()
	f.Coord.SurfaceSetOffset(sid, coordinator.Position{X: x, Y: y})
}

func (f *Facade) SetRequestedSize(sid containers.ID, w, h int) {
	f.Cache.Lock()
	defer f.Cache.Unlock()
	f.Coord.SurfaceSetRequestedSize(sid, coordinator.Size{Width: w, Height: h})
}

func (f *Facade) SetSubsurfacePosition(sid containers.ID, x, y int) {
	f.Cache.Lock()
	defer f.Cache.Unlock()
	f.Coord.SurfaceSetRelativePosition(sid, coordinator.Position{X: x, Y: y})
}

func (f *Facade) SetCursor(sid containers.ID) {
	f.Cache.Lock()
	defer f.Cache.Unlock()
	f.Coord.SurfaceSetAsCursor(sid)
}

// SetInputRegion forwards rid's rectangle as offset+requested_size if
// valid, otherwise resets both — the Cache's one piece of
// region-to-Coordinator translation.
func (f *Facade) SetInputRegion(sid, rid containers.ID) {
	f.Cache.Lock()
	defer f.Cache.Unlock()

	region := f.Cache.FindRegion(rid)
	if region != nil && region.Valid() {
		f.Coord.SurfaceSetOffset(sid, coordinator.Position{X: region.Pos.X, Y: region.Pos.Y})
		f.Coord.SurfaceSetRequestedSize(sid, coordinator.Size{Width: region.Size.Width, Height: region.Size.Height})
		return
	}
	f.Coord.SurfaceResetOffsetAndRequestedSize(sid)
}

func (f *Facade) CreateRegion() containers.ID {
	f.Cache.Lock()
	defer f.Cache.Unlock()
	return f.Cache.CreateRegion()
}

func (f *Facade) InflateRegion(rid containers.ID, x, y, width, height int) {
	f.Cache.Lock()
	defer f.Cache.Unlock()
	r := f.Cache.FindRegion(rid)
	if r == nil {
		logging.Warn("wlfacade: inflate_region on unknown rid %d", rid)
		return
	}
	r.Inflate(x, y, width, height)
}

func (f *Facade) RemoveRegion(rid containers.ID) {
	f.Cache.Lock()
	defer f.Cache.Unlock()
	f.Cache.RemoveRegion(rid)
}

// PlaceAbove/PlaceBelow implement subsurface reordering directly
// against the Cache's child-ordering list rather than deferring it to
// scene-graph internals this frontend doesn't own.
func (f *Facade) PlaceAbove(parentSID, target, sibling containers.ID) {
	f.Cache.Lock()
	defer f.Cache.Unlock()
	f.Cache.PlaceAbove(parentSID, target, sibling)
}

func (f *Facade) PlaceBelow(parentSID, target, sibling containers.ID) {
	f.Cache.Lock()
	defer f.Cache.Unlock()
	f.Cache.PlaceBelow(parentSID, target, sibling)
}

// AddKeyboardResource appends rc to the keyboard resource list and, if
// its client already owns keyboard focus, immediately synthesises an
// enter so a late-binding resource is not left out of sync.
func (f *Facade) AddKeyboardResource(rc wlsurface.Resource) {
	f.Cache.Lock()
	defer f.Cache.Unlock()

	f.Cache.AddGeneralResource(wlcache.KindKeyboard, rc)

	if f.State.KeyboardFocusedSID == wlstate.InvalidSurfaceID {
		return
	}
	focusedClient, focusedRC := f.Cache.ResourceForSID(f.State.KeyboardFocusedSID)
	if focusedClient == nil || rc.Client() != focusedClient {
		return
	}
	if kb, ok := rc.(KeyboardResource); ok {
		kb.SendEnter(f.Serials.NextSerial(), focusedRC, nil)
	}
}

func (f *Facade) RemoveKeyboardResource(rc wlsurface.Resource) {
	f.Cache.Lock()
	defer f.Cache.Unlock()
	f.Cache.RemoveGeneralResource(wlcache.KindKeyboard, rc)
}

func (f *Facade) AddPointerResource(rc wlsurface.Resource) {
	f.Cache.Lock()
	defer f.Cache.Unlock()
	f.Cache.AddGeneralResource(wlcache.KindPointer, rc)
}

func (f *Facade) RemovePointerResource(rc wlsurface.Resource) {
	f.Cache.Lock()
	defer f.Cache.Unlock()
	f.Cache.RemoveGeneralResource(wlcache.KindPointer, rc)
}

func (f *Facade) AddDataDeviceResource(rc wlsurface.Resource) {
	f.Cache.Lock()
	defer f.Cache.Unlock()
	f.Cache.AddGeneralResource(wlcache.KindDataDevice, rc)
}

func (f *Facade) RemoveDataDeviceResource(rc wlsurface.Resource) {
	f.Cache.Lock()
	defer f.Cache.Unlock()
	f.Cache.RemoveGeneralResource(wlcache.KindDataDevice, rc)
}

// CreateTransfer starts a new clipboard Transfer record for a freshly
// bound data_source resource.
func (f *Facade) CreateTransfer(sourceHandle interface{}) *wltransfer.Transfer {
	return wltransfer.New(sourceHandle)
}

func (f *Facade) AddMimeType(t *wltransfer.Transfer, mimeType string) {
	t.AddOffer(mimeType)
}

// DestroyTransfer drops t if it is the current transfer.
func (f *Facade) DestroyTransfer(t *wltransfer.Transfer) {
	f.Cache.Lock()
	defer f.Cache.Unlock()
	if f.State.CurrentTransfer == t {
		f.State.CurrentTransfer = nil
	}
}

// SendSelection stores t as the current transfer, then delegates the
// client-facing broadcast to the Gateway.
func (f *Facade) SendSelection(t *wltransfer.Transfer) {
	f.Cache.Lock()
	f.State.CurrentTransfer = t
	f.Cache.Unlock()

	if f.Gateway != nil {
		f.Gateway.SendSelection()
	}
}

// ReceiveDataOffer forwards a data_offer.receive request to the
// originating data_source and closes the frontend's copy of fd: the
// source client must observe EOF after the one send.
func (f *Facade) ReceiveDataOffer(t *wltransfer.Transfer, mimeType string, fd uintptr, closeFD func(uintptr)) {
	if src, ok := t.SourceHandle.(DataSourceResource); ok {
		src.SendSend(mimeType, fd)
	}
	if closeFD != nil {
		closeFD(fd)
	}
}

// KeyboardResource is implemented by the wl_keyboard protocol binding;
// kept minimal so wlfacade does not depend on wlproto.
type KeyboardResource interface {
	SendEnter(serial uint32, surfaceRC wlsurface.Resource, keys []byte)
}

// DataSourceResource is implemented by the data_source protocol
// binding.
type DataSourceResource interface {
	SendSend(mimeType string, fd uintptr)
}
