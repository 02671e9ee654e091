// Package coordinator declares the boundary this frontend shares with
// the external Coordinator (scene graph / window management /
// rendering), which lives outside this repository. Only the minimal
// surface the frontend actually calls or is called back on is
// declared here.
package coordinator

import "github.com/perceptia/wlfrontend/internal/containers"

// ShowReason flags why a surface became visible.
type ShowReason int

const (
	ShowDrawable ShowReason = 1 << iota
	ShowInShell
)

// StateFlags mirrors the surface state bits surface_reconfigured reads.
type StateFlags int

const (
	FlagMaximized StateFlags = 1 << iota
	FlagActivated
)

type Position struct{ X, Y int }
type Size struct{ Width, Height int }

// Coordinator is the inbound surface of the external collaborator.
// Its methods are assumed safe to call while the Facade holds the
// Cache lock.
type Coordinator interface {
	SurfaceCreate() containers.ID
	SurfaceDestroy(sid containers.ID)
	SurfaceAttach(sid containers.ID, width, height, stride int, data []byte, bufferHandle interface{})
	SurfaceCommit(sid containers.ID)
	SurfaceShow(sid containers.ID, reason ShowReason)
	SurfaceSetOffset(sid containers.ID, pos Position)
	SurfaceSetRequestedSize(sid containers.ID, size Size)
	SurfaceResetOffsetAndRequestedSize(sid containers.ID)
	SurfaceSetRelativePosition(sid containers.ID, pos Position)
	SurfaceRelate(sid, parentSID containers.ID)
	SurfaceSetAsCursor(sid containers.ID)
}

// EventSink is implemented by the frontend (wlgateway) and driven by
// the Coordinator from arbitrary threads/goroutines.
type EventSink interface {
	OnSurfaceFrame(sid containers.ID, msSinceMonotonicEpoch int64)
	OnPointerFocusChanged(sid containers.ID, pos Position)
	OnPointerRelativeMotion(sid containers.ID, pos Position, ms int64)
	OnKeyboardFocusChanged(oldSID containers.ID, oldSize Size, oldFlags StateFlags, newSID containers.ID, newSize Size, newFlags StateFlags)
	OnKey(time int64, code uint32, pressed bool)
	OnPointerButton(time int64, button uint32, pressed bool)
	OnPointerAxis(horiz, vert, horizDiscrete, vertDiscrete float64)
	OnSurfaceReconfigured(sid containers.ID, size Size, flags StateFlags)
	OnOutputFound(name string)
	OnOutputLost(name string)
}
