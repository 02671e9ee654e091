package wlproto

import "github.com/perceptia/wlfrontend/internal/wire"

// Screenshooter is the screenshooter v1 global's bind-time resource.
// Its single request (shoot) is a Coordinator-side capability this
// frontend does not implement rendering for; the binding exists so
// the global is advertised and clients can negotiate it.
type Screenshooter struct {
	resourceBase
}

func BindScreenshooter() wire.BindFunc {
	return func(client wire.Client, version, objectID uint32) {
		_ = &Screenshooter{resourceBase: resourceBase{client: client, id: objectID, version: version}}
	}
}

// Shoot handles screenshooter.shoot: accepted but not implemented —
// rendering is out of scope for this frontend.
func (s *Screenshooter) Shoot(output *Output, buffer *Buffer) {}
