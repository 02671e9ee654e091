package wlproto

import (
	"github.com/perceptia/wlfrontend/internal/wire"
	"github.com/perceptia/wlfrontend/internal/wlengine"
	"github.com/perceptia/wlfrontend/internal/wlfacade"
)

// Shm is the wl_shm global's bind-time resource.
type Shm struct {
	resourceBase
	facade *wlfacade.Facade
}

// BindShm registers the wl_shm global, immediately advertising the
// two pixel formats ARGB8888 and XRGB8888.
func BindShm(facade *wlfacade.Facade) wire.BindFunc {
	return func(client wire.Client, version, objectID uint32) {
		s := &Shm{resourceBase: resourceBase{client: client, id: objectID, version: version}, facade: facade}
		sendLog("wl_shm", "format", s.id, wlengine.ShmFormatARGB8888)
		sendLog("wl_shm", "format", s.id, wlengine.ShmFormatXRGB8888)
	}
}

// CreatePool handles wl_shm.create_pool: the client hands over an fd
// and size, which the pool stores alongside its identity.
func (s *Shm) CreatePool(newID uint32, fd uintptr, size int32) *ShmPool {
	return &ShmPool{resourceBase: resourceBase{client: s.client, id: newID, version: s.version}, fd: fd, size: size}
}

// ShmPool is the wl_shm_pool resource: an fd+size the client promises
// stays valid for every wl_buffer carved out of it until destroy.
type ShmPool struct {
	resourceBase
	fd   uintptr
	size int32
}

// CreateBuffer handles wl_shm_pool.create_buffer: it returns a Buffer
// resource carrying only the client, id and version; the offset,
// size, stride and format arguments are not recorded.
func (p *ShmPool) CreateBuffer(newID uint32, offset, width, height, stride int32, format uint32) *Buffer {
	return &Buffer{resourceBase: resourceBase{client: p.client, id: newID, version: p.version}}
}

// Resize handles wl_shm_pool.resize: the client has grown the pool's
// backing fd and new buffers may now be carved past the old size.
func (p *ShmPool) Resize(size int32) { p.size = size }

func (p *ShmPool) Destroy() {}
