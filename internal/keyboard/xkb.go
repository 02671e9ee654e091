// Package keyboard wraps libxkbcommon via purego dlopen, generalized
// into the XKB-style keyboard state machine a Wayland frontend needs
// to track modifiers and serialize them into protocol events.
package keyboard

import (
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"
)

const (
	contextNoFlags    = 0
	keymapFormatTextV1 = 1
	keyDown            = 1
	keyUp              = 0
)

// mods mirrors xkb's state component selectors.
const (
	stateDepressed = 1 << iota
	stateLatched
	stateLocked
	stateEffective = 1 << 7 // XKB_STATE_LAYOUT_EFFECTIVE in libxkbcommon's enum numbering
)

var (
	xkbContextNew            func(flags int) uintptr
	xkbKeymapNewFromNames    func(ctx uintptr, names uintptr, flags int) uintptr
	xkbStateNew              func(keymap uintptr) uintptr
	xkbStateUpdateKey        func(state uintptr, code uint32, direction int) int
	xkbStateSerializeMods    func(state uintptr, component int) uint32
	xkbStateSerializeLayout  func(state uintptr, component int) uint32
	xkbKeymapUnref           func(keymap uintptr)
	xkbStateUnref            func(state uintptr)
	xkbContextUnref          func(ctx uintptr)
)

func init() {
	lib, err := purego.Dlopen("libxkbcommon.so.0", purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		lib, err = purego.Dlopen("libxkbcommon.so", purego.RTLD_NOW|purego.RTLD_GLOBAL)
	}
	if err != nil {
		// Deferred: New reports this the first time a state
		// machine is actually constructed, rather than panicking at
		// package load (keeps this package safe to import from code
		// that never ends up needing a keyboard, e.g. unit tests).
		return
	}

	purego.RegisterLibFunc(&xkbContextNew, lib, "xkb_context_new")
	purego.RegisterLibFunc(&xkbKeymapNewFromNames, lib, "xkb_keymap_new_from_names")
	purego.RegisterLibFunc(&xkbStateNew, lib, "xkb_state_new")
	purego.RegisterLibFunc(&xkbStateUpdateKey, lib, "xkb_state_update_key")
	purego.RegisterLibFunc(&xkbStateSerializeMods, lib, "xkb_state_serialize_mods")
	purego.RegisterLibFunc(&xkbStateSerializeLayout, lib, "xkb_state_serialize_layout")
	purego.RegisterLibFunc(&xkbKeymapUnref, lib, "xkb_keymap_unref")
	purego.RegisterLibFunc(&xkbStateUnref, lib, "xkb_state_unref")
	purego.RegisterLibFunc(&xkbContextUnref, lib, "xkb_context_unref")
}

// xkbRuleNames mirrors struct xkb_rule_names from xkbcommon.h: five
// consecutive C strings (nil-terminated, UTF-8).
type xkbRuleNames struct {
	rules, model, layout, variant, options uintptr
}

func cstring(s string) uintptr {
	if s == "" {
		return 0
	}
	b := append([]byte(s), 0)
	return uintptr(unsafe.Pointer(&b[0]))
}

func newKeymapFromNames(ctx uintptr) uintptr {
	names := xkbRuleNames{
		rules:  cstring("evdev"),
		model:  cstring("evdev"),
		layout: cstring("us"),
	}
	return xkbKeymapNewFromNames(ctx, uintptr(unsafe.Pointer(&names)), 0x0)
}

// Mods is a snapshot of the four modifier masks the Gateway compares
// before/after a key event to decide whether to also send
// wl_keyboard.modifiers.
type Mods struct {
	Depressed uint32
	Latched   uint32
	Locked    uint32
	Group     uint32
}

// Equal reports whether two snapshots carry identical masks.
func (m Mods) Equal(other Mods) bool {
	return m == other
}

// KeyState is the press/release edge fed into State.UpdateKey.
type KeyState int

const (
	KeyReleased KeyState = iota
	KeyPressed
)

// State is the XKB context/keymap/state triple for one seat.
type State struct {
	context uintptr
	keymap  uintptr
	state   uintptr
}

// New constructs a US-evdev keyboard state, matching
// utils-keyboard-state.c's hardcoded rule names.
func New() (*State, error) {
	if xkbContextNew == nil {
		return nil, fmt.Errorf("keyboard: libxkbcommon not available")
	}

	s := &State{}
	s.context = xkbContextNew(contextNoFlags)
	if s.context == 0 {
		return nil, fmt.Errorf("keyboard: xkb_context_new failed")
	}

	s.keymap = newKeymapFromNames(s.context)
	if s.keymap == 0 {
		xkbContextUnref(s.context)
		return nil, fmt.Errorf("keyboard: xkb_keymap_new_from_names failed")
	}

	s.state = xkbStateNew(s.keymap)
	if s.state == 0 {
		xkbKeymapUnref(s.keymap)
		xkbContextUnref(s.context)
		return nil, fmt.Errorf("keyboard: xkb_state_new failed")
	}
	return s, nil
}

// Close releases the underlying xkb objects in reverse construction
// order, matching noia_keyboard_state_finalize.
func (s *State) Close() {
	if s.state != 0 {
		xkbStateUnref(s.state)
		s.state = 0
	}
	if s.keymap != 0 {
		xkbKeymapUnref(s.keymap)
		s.keymap = 0
	}
	if s.context != 0 {
		xkbContextUnref(s.context)
		s.context = 0
	}
}

// UpdateKey feeds a press/release into the state machine. The +8
// offset reproduces the evdev-to-X keycode shift noted in the source:
// X's keycode numbering starts at 8, evdev's at 0.
func (s *State) UpdateKey(code uint32, state KeyState) {
	direction := keyUp
	if state == KeyPressed {
		direction = keyDown
	}
	xkbStateUpdateKey(s.state, code+8, direction)
}

// Modifiers serializes the current depressed/latched/locked/group
// masks, matching noia_keyboard_state_get_modifiers.
func (s *State) Modifiers() Mods {
	return Mods{
		Depressed: xkbStateSerializeMods(s.state, stateDepressed),
		Latched:   xkbStateSerializeMods(s.state, stateLatched),
		Locked:    xkbStateSerializeMods(s.state, stateLocked),
		Group:     xkbStateSerializeLayout(s.state, stateEffective),
	}
}
