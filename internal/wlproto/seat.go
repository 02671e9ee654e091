package wlproto

import (
	"github.com/perceptia/wlfrontend/internal/wire"
	"github.com/perceptia/wlfrontend/internal/wlengine"
	"github.com/perceptia/wlfrontend/internal/wlfacade"
	"github.com/perceptia/wlfrontend/internal/wlsurface"
)

// Seat is the wl_seat global's bind-time resource.
type Seat struct {
	resourceBase
	facade *wlfacade.Facade
}

// BindSeat registers the seat global at v4, immediately advertising
// name "seat0" and the pointer+keyboard capability set.
func BindSeat(facade *wlfacade.Facade) wire.BindFunc {
	return func(client wire.Client, version, objectID uint32) {
		s := &Seat{resourceBase: resourceBase{client: client, id: objectID, version: version}, facade: facade}
		sendLog("wl_seat", "capabilities", s.id, wlengine.SeatHasPointer|wlengine.SeatHasKeyboard)
		sendLog("wl_seat", "name", s.id, "seat0")
	}
}

// GetPointer handles wl_seat.get_pointer.
func (s *Seat) GetPointer(newID uint32) *Pointer {
	p := &Pointer{resourceBase: resourceBase{client: s.client, id: newID, version: s.version}}
	s.facade.AddPointerResource(p)
	return p
}

// GetKeyboard handles wl_seat.get_keyboard: bind the resource and
// send the keymap handoff, then let the Facade decide whether an
// immediate enter is owed.
func (s *Seat) GetKeyboard(newID uint32, keymapFormat uint32, keymapFD uintptr, keymapSize uint32) *Keyboard {
	k := &Keyboard{resourceBase: resourceBase{client: s.client, id: newID, version: s.version}}
	sendLog("wl_keyboard", "keymap", k.id, keymapFormat, keymapSize)
	s.facade.AddKeyboardResource(k)
	return k
}

// Pointer is the wl_pointer resource.
type Pointer struct {
	resourceBase
}

func (p *Pointer) SendEnter(serial uint32, surfaceRC wlsurface.Resource, x, y int32) {
	sendLog("wl_pointer", "enter", p.id, serial, x, y)
}

func (p *Pointer) SendLeave(serial uint32, surfaceRC wlsurface.Resource) {
	sendLog("wl_pointer", "leave", p.id, serial)
}

func (p *Pointer) SendMotion(time int64, x, y int32) {
	sendLog("wl_pointer", "motion", p.id, time, x, y)
}

func (p *Pointer) SendButton(serial uint32, time int64, button, state uint32) {
	sendLog("wl_pointer", "button", p.id, serial, time, button, state)
}

func (p *Pointer) SendAxis(time int64, axis uint32, value int32) {
	sendLog("wl_pointer", "axis", p.id, time, axis, value)
}

func (p *Pointer) SendAxisDiscrete(axis uint32, discrete int32) {
	sendLog("wl_pointer", "axis_discrete", p.id, axis, discrete)
}

func (p *Pointer) SendAxisStop(time int64, axis uint32) {
	sendLog("wl_pointer", "axis_stop", p.id, time, axis)
}

// Keyboard is the wl_keyboard resource.
type Keyboard struct {
	resourceBase
}

func (k *Keyboard) SendEnter(serial uint32, surfaceRC wlsurface.Resource, keys []byte) {
	sendLog("wl_keyboard", "enter", k.id, serial, keys)
}

func (k *Keyboard) SendLeave(serial uint32, surfaceRC wlsurface.Resource) {
	sendLog("wl_keyboard", "leave", k.id, serial)
}

func (k *Keyboard) SendKey(serial uint32, time int64, code, state uint32) {
	sendLog("wl_keyboard", "key", k.id, serial, time, code, state)
}

func (k *Keyboard) SendModifiers(serial, depressed, latched, locked, group uint32) {
	sendLog("wl_keyboard", "modifiers", k.id, serial, depressed, latched, locked, group)
}
