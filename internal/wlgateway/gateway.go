// Package wlgateway implements the Gateway: the single outbound API
// that walks the Cache and fans compositor-side events out to the
// matching client resources, grounded on wayland-gateway.c/.h.
package wlgateway

import (
	"github.com/perceptia/wlfrontend/internal/containers"
	"github.com/perceptia/wlfrontend/internal/coordinator"
	"github.com/perceptia/wlfrontend/internal/keyboard"
	"github.com/perceptia/wlfrontend/internal/wlcache"
	"github.com/perceptia/wlfrontend/internal/wlstate"
	"github.com/perceptia/wlfrontend/internal/wlsurface"
)

// xdg_surface state enum values, xdg-shell-unstable-v5.
const (
	xdgStateMaximized uint32 = 1
	xdgStateActivated uint32 = 4

	dataOfferActionCopy uint32 = 1
)

// SerialSource mints event serials.
type SerialSource interface {
	NextSerial() uint32
}

// FrameResource is the wl_callback resource created by surface.frame.
type FrameResource interface {
	wlsurface.Resource
	SendDone(msSinceEpoch int64)
	Destroy()
}

// BufferResource is the wl_buffer resource attached to a surface.
type BufferResource interface {
	wlsurface.Resource
	SendRelease()
}

// KeyboardResource is the wl_keyboard protocol binding's resource.
type KeyboardResource interface {
	wlsurface.Resource
	SendEnter(serial uint32, surfaceRC wlsurface.Resource, keys []byte)
	SendLeave(serial uint32, surfaceRC wlsurface.Resource)
	SendKey(serial uint32, time int64, code uint32, state uint32)
	SendModifiers(serial, depressed, latched, locked, group uint32)
}

// PointerResource is the wl_pointer protocol binding's resource.
type PointerResource interface {
	wlsurface.Resource
	SendEnter(serial uint32, surfaceRC wlsurface.Resource, x, y int32)
	SendLeave(serial uint32, surfaceRC wlsurface.Resource)
	SendMotion(time int64, x, y int32)
	SendButton(serial uint32, time int64, button uint32, state uint32)
	SendAxis(time int64, axis uint32, value int32)
	SendAxisDiscrete(axis uint32, discrete int32)
	SendAxisStop(time int64, axis uint32)
}

// ShellSurfaceResource is the wl_shell_surface protocol binding.
type ShellSurfaceResource interface {
	SendConfigure(edges uint32, width, height int32)
}

// XDGSurfaceResource is the xdg_surface protocol binding.
type XDGSurfaceResource interface {
	SendConfigure(width, height int32, states []uint32, serial uint32)
}

// DataOfferResource is one data_offer resource, created per recipient
// per selection broadcast.
type DataOfferResource interface {
	SendOffer(mimeType string)
	SendAction(action uint32)
}

// DataDeviceResource is a bound wl_data_device resource.
type DataDeviceResource interface {
	wlsurface.Resource
	Version() uint32
	SendDataOffer(offer DataOfferResource)
	SendSelection(offer DataOfferResource)
}

// DataOfferFactory creates a fresh data_offer resource at the given
// protocol version, owned by the data_device protocol binding (the
// only module with access to the wire library's resource
// constructor). Injected so wlgateway stays independent of wlproto.
type DataOfferFactory interface {
	NewDataOffer(device DataDeviceResource, version uint32) DataOfferResource
}

// OutputWatcher is notified of output hot-plug so cmd/wlfrontend can
// wire Engine.AdvertiseOutput/DestroyOutput without the Gateway itself
// depending on wlengine.
type OutputWatcher interface {
	OutputFound(name string)
	OutputLost(name string)
}

// Gateway is constructed once, wired to the same Cache and Frontend
// State the Facade uses, and handed to the Coordinator as its
// coordinator.EventSink.
type Gateway struct {
	Cache   *wlcache.Cache
	State   *wlstate.State
	Serials SerialSource
	Offers  DataOfferFactory
	Outputs OutputWatcher
}

func New(cache *wlcache.Cache, state *wlstate.State, serials SerialSource, offers DataOfferFactory) *Gateway {
	return &Gateway{Cache: cache, State: state, Serials: serials, Offers: offers}
}

// ScreenRefresh delivers queued frame callbacks and releases the
// surface's committed buffer after it has been presented.
func (g *Gateway) ScreenRefresh(sid containers.ID, msSinceMonotonicEpoch int64) {
	g.Cache.Lock()
	surf := g.Cache.FindSurface(sid)
	if surf == nil {
		g.Cache.Unlock()
		return
	}
	frames := append([]wlsurface.Resource(nil), surf.FrameResources()...)
	var releasing wlsurface.Resource
	if len(frames) > 0 {
		releasing = surf.Resource(wlsurface.KindBuffer)
	}
	for _, rc := range frames {
		surf.RemoveResource(wlsurface.KindFrame, rc)
	}
	if releasing != nil {
		surf.RemoveResource(wlsurface.KindBuffer, releasing)
	}
	g.Cache.Unlock()

	if releasing != nil {
		if br, ok := releasing.(BufferResource); ok {
			br.SendRelease()
		}
	}
	for _, rc := range frames {
		if fr, ok := rc.(FrameResource); ok {
			fr.SendDone(msSinceMonotonicEpoch)
			fr.Destroy()
		}
	}
}

// KeyboardFocusUpdate hands keyboard focus from one surface to
// another, emitting leave/enter to the affected clients' keyboard
// resources and refreshing selection and surface state for both ends.
func (g *Gateway) KeyboardFocusUpdate(oldSID containers.ID, oldSize coordinator.Size, oldFlags coordinator.StateFlags, newSID containers.ID, newSize coordinator.Size, newFlags coordinator.StateFlags) {
	g.Cache.Lock()
	oldClient, oldRC := g.Cache.ResourceForSID(oldSID)
	newClient, newRC := g.Cache.ResourceForSID(newSID)
	var kbs []wlsurface.Resource
	changed := oldClient != newClient
	if changed {
		g.State.KeyboardFocusedSID = newSID
		kbs = g.Cache.Resources(wlcache.KindKeyboard)
	}
	g.Cache.Unlock()

	if changed {
		for _, rc := range kbs {
			kb, ok := rc.(KeyboardResource)
			if !ok {
				continue
			}
			if oldClient != nil && rc.Client() == oldClient {
				kb.SendLeave(0, oldRC)
			}
			if newClient != nil && rc.Client() == newClient {
				kb.SendEnter(0, newRC, nil)
			}
		}
	}

	g.SendSelection()

	g.SurfaceReconfigured(oldSID, oldSize, oldFlags)
	g.SurfaceReconfigured(newSID, newSize, newFlags)
}

// Key forwards a key press or release to the focused client's
// keyboard resources, updating modifiers first and sending a
// modifiers event only when they actually changed.
func (g *Gateway) Key(time int64, code uint32, pressed bool) {
	before := g.State.Keyboard.Modifiers()
	ks := keyboard.KeyReleased
	if pressed {
		ks = keyboard.KeyPressed
	}
	g.State.Keyboard.UpdateKey(code, ks)
	after := g.State.Keyboard.Modifiers()
	modsChanged := !before.Equal(after)

	g.Cache.Lock()
	focusedSID := g.State.KeyboardFocusedSID
	if focusedSID == wlstate.InvalidSurfaceID {
		g.Cache.Unlock()
		return
	}
	focusedClient, _ := g.Cache.ResourceForSID(focusedSID)
	kbs := g.Cache.Resources(wlcache.KindKeyboard)
	g.Cache.Unlock()

	if focusedClient == nil {
		return
	}
	serial := g.Serials.NextSerial()
	for _, rc := range kbs {
		if rc.Client() != focusedClient {
			continue
		}
		kb, ok := rc.(KeyboardResource)
		if !ok {
			continue
		}
		kb.SendKey(serial, time, code, keyState(pressed))
		if modsChanged {
			kb.SendModifiers(serial, after.Depressed, after.Latched, after.Locked, after.Group)
		}
	}
}

// PointerFocusUpdate hands pointer focus to a new surface, symmetric
// to KeyboardFocusUpdate but without the selection/reconfigure
// follow-up steps, which are keyboard-focus-specific.
func (g *Gateway) PointerFocusUpdate(newSID containers.ID, pos coordinator.Position) {
	g.Cache.Lock()
	oldSID := g.State.PointerFocusedSID
	oldClient, oldRC := g.Cache.ResourceForSID(oldSID)
	newClient, newRC := g.Cache.ResourceForSID(newSID)
	var ptrs []wlsurface.Resource
	changed := oldClient != newClient
	if changed {
		g.State.PointerFocusedSID = newSID
		ptrs = g.Cache.Resources(wlcache.KindPointer)
	}
	g.Cache.Unlock()

	if !changed {
		return
	}
	x, y := toFixed(pos.X), toFixed(pos.Y)
	for _, rc := range ptrs {
		p, ok := rc.(PointerResource)
		if !ok {
			continue
		}
		if oldClient != nil && rc.Client() == oldClient {
			p.SendLeave(0, oldRC)
		}
		if newClient != nil && rc.Client() == newClient {
			p.SendEnter(0, newRC, x, y)
		}
	}
}

// PointerMotion forwards relative pointer motion to the
// pointer-focused client.
func (g *Gateway) PointerMotion(sid containers.ID, pos coordinator.Position, ms int64) {
	g.Cache.Lock()
	client, _ := g.Cache.ResourceForSID(sid)
	ptrs := g.Cache.Resources(wlcache.KindPointer)
	g.Cache.Unlock()

	if client == nil {
		return
	}
	x, y := toFixed(pos.X), toFixed(pos.Y)
	for _, rc := range ptrs {
		if rc.Client() != client {
			continue
		}
		if p, ok := rc.(PointerResource); ok {
			p.SendMotion(ms, x, y)
		}
	}
}

// PointerButton forwards a button press or release to the
// pointer-focused client's pointer resources.
func (g *Gateway) PointerButton(time int64, button uint32, pressed bool) {
	g.Cache.Lock()
	focusedClient, _ := g.Cache.ResourceForSID(g.State.PointerFocusedSID)
	ptrs := g.Cache.Resources(wlcache.KindPointer)
	g.Cache.Unlock()

	if focusedClient == nil {
		return
	}
	for _, rc := range ptrs {
		if rc.Client() != focusedClient {
			continue
		}
		if p, ok := rc.(PointerResource); ok {
			p.SendButton(g.Serials.NextSerial(), time, button, keyState(pressed))
		}
	}
}

// Pointer axis indices, matching wl_pointer.axis's enum.
const (
	axisVertical   uint32 = 0
	axisHorizontal uint32 = 1
)

// PointerAxis forwards scroll input to the pointer-focused client,
// choosing discrete, continuous, or stop framing per axis.
func (g *Gateway) PointerAxis(horiz, vert, horizDiscrete, vertDiscrete float64) {
	g.Cache.Lock()
	focusedClient, _ := g.Cache.ResourceForSID(g.State.PointerFocusedSID)
	ptrs := g.Cache.Resources(wlcache.KindPointer)
	g.Cache.Unlock()

	if focusedClient == nil {
		return
	}
	for _, rc := range ptrs {
		if rc.Client() != focusedClient {
			continue
		}
		p, ok := rc.(PointerResource)
		if !ok {
			continue
		}
		emitAxis(p, axisHorizontal, horiz, horizDiscrete)
		emitAxis(p, axisVertical, vert, vertDiscrete)
	}
}

func emitAxis(p PointerResource, axis uint32, continuous, discrete float64) {
	if discrete != 0 {
		p.SendAxisDiscrete(axis, int32(discrete))
	}
	if continuous != 0 {
		p.SendAxis(0, axis, toFixed(int(continuous)))
		return
	}
	p.SendAxisStop(0, axis)
}

// SurfaceReconfigured sends a configure event to whichever shell or
// xdg_shell resource is bound to the surface.
func (g *Gateway) SurfaceReconfigured(sid containers.ID, size coordinator.Size, flags coordinator.StateFlags) {
	if sid == wlstate.InvalidSurfaceID {
		return
	}
	g.Cache.Lock()
	surf := g.Cache.FindSurface(sid)
	if surf == nil {
		g.Cache.Unlock()
		return
	}
	shellRC := surf.Resource(wlsurface.KindShellSurface)
	xdgRC := surf.Resource(wlsurface.KindXDGShellSurface)
	activated := g.State.KeyboardFocusedSID == sid
	g.Cache.Unlock()

	if shellRC != nil {
		if ss, ok := shellRC.(ShellSurfaceResource); ok {
			ss.SendConfigure(0, int32(size.Width), int32(size.Height))
		}
		return
	}
	if xdgRC == nil {
		return
	}
	var states []uint32
	if flags&coordinator.FlagMaximized != 0 {
		states = append(states, xdgStateMaximized)
	}
	if activated {
		states = append(states, xdgStateActivated)
	}
	if xs, ok := xdgRC.(XDGSurfaceResource); ok {
		xs.SendConfigure(int32(size.Width), int32(size.Height), states, g.Serials.NextSerial())
	}
}

// SendSelection broadcasts the current transfer to every data_device
// resource of the keyboard-focused client.
func (g *Gateway) SendSelection() {
	g.Cache.Lock()
	transfer := g.State.CurrentTransfer
	if transfer == nil {
		g.Cache.Unlock()
		return
	}
	focusedClient, _ := g.Cache.ResourceForSID(g.State.KeyboardFocusedSID)
	devices := g.Cache.Resources(wlcache.KindDataDevice)
	g.Cache.Unlock()

	if focusedClient == nil || g.Offers == nil {
		return
	}
	for _, rc := range devices {
		if rc.Client() != focusedClient {
			continue
		}
		dd, ok := rc.(DataDeviceResource)
		if !ok {
			continue
		}
		offer := g.Offers.NewDataOffer(dd, dd.Version())
		dd.SendDataOffer(offer)
		for _, mime := range transfer.MimeTypes() {
			offer.SendOffer(mime)
		}
		offer.SendAction(dataOfferActionCopy)
		dd.SendSelection(offer)
	}
}

// --- coordinator.EventSink -------------------------------------------

func (g *Gateway) OnSurfaceFrame(sid containers.ID, ms int64) { g.ScreenRefresh(sid, ms) }

func (g *Gateway) OnPointerFocusChanged(sid containers.ID, pos coordinator.Position) {
	g.PointerFocusUpdate(sid, pos)
}

func (g *Gateway) OnPointerRelativeMotion(sid containers.ID, pos coordinator.Position, ms int64) {
	g.PointerMotion(sid, pos, ms)
}

func (g *Gateway) OnKeyboardFocusChanged(oldSID containers.ID, oldSize coordinator.Size, oldFlags coordinator.StateFlags, newSID containers.ID, newSize coordinator.Size, newFlags coordinator.StateFlags) {
	g.KeyboardFocusUpdate(oldSID, oldSize, oldFlags, newSID, newSize, newFlags)
}

func (g *Gateway) OnKey(time int64, code uint32, pressed bool) { g.Key(time, code, pressed) }

func (g *Gateway) OnPointerButton(time int64, button uint32, pressed bool) {
	g.PointerButton(time, button, pressed)
}

func (g *Gateway) OnPointerAxis(horiz, vert, horizDiscrete, vertDiscrete float64) {
	g.PointerAxis(horiz, vert, horizDiscrete, vertDiscrete)
}

func (g *Gateway) OnSurfaceReconfigured(sid containers.ID, size coordinator.Size, flags coordinator.StateFlags) {
	g.SurfaceReconfigured(sid, size, flags)
}

func (g *Gateway) OnOutputFound(name string) {
	if g.Outputs != nil {
		g.Outputs.OutputFound(name)
	}
}

func (g *Gateway) OnOutputLost(name string) {
	if g.Outputs != nil {
		g.Outputs.OutputLost(name)
	}
}

func keyState(pressed bool) uint32 {
	if pressed {
		return 1
	}
	return 0
}

// toFixed converts an integer pixel coordinate to wl_fixed_t's 24.8
// format.
func toFixed(v int) int32 {
	return int32(v) << 8
}
