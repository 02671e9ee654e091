// Package wlstate implements the Frontend State singleton: current
// keyboard/pointer focus, the current clipboard transfer, and the
// keyboard state machine, grounded on wayland-state.c/.h.
package wlstate

import (
	"github.com/perceptia/wlfrontend/internal/containers"
	"github.com/perceptia/wlfrontend/internal/keyboard"
	"github.com/perceptia/wlfrontend/internal/wltransfer"
)

const InvalidSurfaceID containers.ID = containers.InvalidID

// State is the Cache-peer singleton holding keyboard/pointer focus
// and the current clipboard transfer.
type State struct {
	Keyboard             *keyboard.State
	KeyboardFocusedSID   containers.ID
	PointerFocusedSID    containers.ID
	CurrentTransfer      *wltransfer.Transfer
}

func New() (*State, error) {
	kb, err := keyboard.New()
	if err != nil {
		return nil, err
	}
	return &State{
		Keyboard:           kb,
		KeyboardFocusedSID: InvalidSurfaceID,
		PointerFocusedSID:  InvalidSurfaceID,
	}, nil
}

// Close finalizes the state, matching noia_wayland_state_finalize
// followed by noia_wayland_state_free.
func (s *State) Close() {
	s.PointerFocusedSID = InvalidSurfaceID
	s.KeyboardFocusedSID = InvalidSurfaceID
	if s.Keyboard != nil {
		s.Keyboard.Close()
	}
}
