package coordinator

import "github.com/perceptia/wlfrontend/internal/containers"

// Call records one method invocation, used by Fake's callers (mainly
// tests in wlfacade and wlgateway) to assert call order and
// arguments without depending on a real scene graph.
type Call struct {
	Name string
	Args []interface{}
}

// Fake is a minimal in-memory Coordinator double. It mints sequential
// surface ids and records every call it receives.
type Fake struct {
	Calls  []Call
	nextID containers.ID
}

func NewFake() *Fake {
	return &Fake{nextID: 1}
}

func (f *Fake) record(name string, args ...interface{}) {
	f.Calls = append(f.Calls, Call{Name: name, Args: args})
}

func (f *Fake) SurfaceCreate() containers.ID {
	sid := f.nextID
	f.nextID++
	f.record("SurfaceCreate")
	return sid
}

func (f *Fake) SurfaceDestroy(sid containers.ID) { f.record("SurfaceDestroy", sid) }

func (f *Fake) SurfaceAttach(sid containers.ID, width, height, stride int, data []byte, bufferHandle interface{}) {
	f.record("SurfaceAttach", sid, width, height, stride, bufferHandle)
}

func (f *Fake) SurfaceCommit(sid containers.ID) { f.record("SurfaceCommit", sid) }

func (f *Fake) SurfaceShow(sid containers.ID, reason ShowReason) {
	f.record("SurfaceShow", sid, reason)
}

func (f *Fake) SurfaceSetOffset(sid containers.ID, pos Position) {
	f.record("SurfaceSetOffset", sid, pos)
}

func (f *Fake) SurfaceSetRequestedSize(sid containers.ID, size Size) {
	f.record("SurfaceSetRequestedSize", sid, size)
}

func (f *Fake) SurfaceResetOffsetAndRequestedSize(sid containers.ID) {
	f.record("SurfaceResetOffsetAndRequestedSize", sid)
}

func (f *Fake) SurfaceSetRelativePosition(sid containers.ID, pos Position) {
	f.record("SurfaceSetRelativePosition", sid, pos)
}

func (f *Fake) SurfaceRelate(sid, parentSID containers.ID) {
	f.record("SurfaceRelate", sid, parentSID)
}

func (f *Fake) SurfaceSetAsCursor(sid containers.ID) { f.record("SurfaceSetAsCursor", sid) }

// LastCall returns the most recent recorded call, or a zero Call if
// none were made.
func (f *Fake) LastCall() Call {
	if len(f.Calls) == 0 {
		return Call{}
	}
	return f.Calls[len(f.Calls)-1]
}
