// Package wlcache is the thread-safe store of per-surface resource
// bundles, regions, and per-kind general resource lists — the only
// component in this frontend holding shared mutable state, grounded
// on wayland-cache.c/.h.
package wlcache

import (
	"sync"

	"github.com/perceptia/wlfrontend/internal/containers"
	"github.com/perceptia/wlfrontend/internal/logging"
	"github.com/perceptia/wlfrontend/internal/wlregion"
	"github.com/perceptia/wlfrontend/internal/wlsurface"
)

// GeneralResourceKind enumerates the per-kind resource lists that are
// not surface-scoped.
type GeneralResourceKind int

const (
	KindKeyboard GeneralResourceKind = iota
	KindPointer
	KindDataDevice
	KindOther
	numGeneralKinds
)

// Cache is the single cache-wide exclusive lock plus the records it
// guards. Callers follow a strict locking discipline: the
// Facade acquires the lock, does one atomic unit of work, releases,
// without ever emitting protocol events while holding it; the Gateway
// acquires the lock, snapshots or iterates, emits events, releases,
// and never recursively re-enters via the Coordinator.
type Cache struct {
	mu sync.Mutex

	surfaces *containers.IDStore
	regions  *containers.IDStore
	nextRID  containers.ID

	general [numGeneralKinds]*containers.List

	// children holds each parent surface's subsurface ordering, keyed
	// by parent sid. The source this is ported from gates reorder
	// behind scene-graph internals not exposed in its header and
	// treats it as deferrable; this frontend instead gives the Cache
	// its own explicit ordering rather than deferring it.
	children map[containers.ID]*containers.List
}

func New() *Cache {
	c := &Cache{
		surfaces: containers.NewIDStore(),
		regions:  containers.NewIDStore(),
		nextRID:  1,
		children: make(map[containers.ID]*containers.List),
	}
	for i := range c.general {
		c.general[i] = containers.NewList()
	}
	return c
}

// Lock and Unlock expose the cache-wide mutex directly so the Facade
// and Gateway can bracket a multi-step transaction exactly once,
// matching noia_wayland_cache_lock/unlock's call shape rather than
// hiding locking behind per-method calls that would force two
// acquisitions for an operation that must be atomic.
func (c *Cache) Lock()   { c.mu.Lock() }
func (c *Cache) Unlock() { c.mu.Unlock() }

// --- Surfaces ---------------------------------------------------------

// CreateSurface allocates a Surface Record for sid. Must be called
// with the lock held.
func (c *Cache) CreateSurface(sid containers.ID) {
	c.surfaces.Add(sid, wlsurface.New())
}

// FindSurface returns the record for sid, or nil. Must be called with
// the lock held.
func (c *Cache) FindSurface(sid containers.ID) *wlsurface.Surface {
	v, ok := c.surfaces.Find(sid)
	if !ok {
		return nil
	}
	return v.(*wlsurface.Surface)
}

// RemoveSurface deletes sid's record, logging a leak warning if more
// than two frame callbacks are still outstanding. Must be called with
// the lock held.
func (c *Cache) RemoveSurface(sid containers.ID) {
	v, ok := c.surfaces.Delete(sid)
	if !ok {
		logging.Warn("wlcache: remove_surface on unknown sid %d", sid)
		return
	}
	v.(*wlsurface.Surface).Close()
}

func (c *Cache) AddSurfaceResource(sid containers.ID, kind wlsurface.ResourceKind, rc wlsurface.Resource) {
	s := c.FindSurface(sid)
	if s == nil {
		logging.Warn("wlcache: add_surface_resource on unknown sid %d", sid)
		return
	}
	s.AddResource(kind, rc)
}

func (c *Cache) RemoveSurfaceResource(sid containers.ID, kind wlsurface.ResourceKind, rc wlsurface.Resource) {
	s := c.FindSurface(sid)
	if s == nil {
		logging.Warn("wlcache: remove_surface_resource on unknown sid %d", sid)
		return
	}
	s.RemoveResource(kind, rc)
}

// ResourceForSID returns the client and surface resource handle for
// sid — the single most-called helper in this package.
func (c *Cache) ResourceForSID(sid containers.ID) (client interface{}, surfaceRC wlsurface.Resource) {
	s := c.FindSurface(sid)
	if s == nil {
		return nil, nil
	}
	rc := s.Resource(wlsurface.KindSurface)
	if rc == nil {
		return nil, nil
	}
	return rc.Client(), rc
}

// --- Regions -----------------------------------------------------------

func (c *Cache) CreateRegion() containers.ID {
	rid := c.nextRID
	c.nextRID++
	c.regions.Add(rid, wlregion.New())
	return rid
}

func (c *Cache) FindRegion(rid containers.ID) *wlregion.Region {
	v, ok := c.regions.Find(rid)
	if !ok {
		return nil
	}
	return v.(*wlregion.Region)
}

func (c *Cache) RemoveRegion(rid containers.ID) {
	if _, ok := c.regions.Delete(rid); !ok {
		logging.Warn("wlcache: remove_region on unknown rid %d", rid)
	}
}

// --- General resource lists --------------------------------------------

func (c *Cache) AddGeneralResource(kind GeneralResourceKind, rc wlsurface.Resource) {
	c.general[kind].Append(rc)
}

func resourceEq(a, b interface{}) bool {
	return a.(wlsurface.Resource) == b.(wlsurface.Resource)
}

func (c *Cache) RemoveGeneralResource(kind GeneralResourceKind, rc wlsurface.Resource) {
	if !c.general[kind].Remove(rc, resourceEq) {
		logging.Warn("wlcache: unbind for untracked resource of kind %d", kind)
	}
}

// Resources returns a snapshot of the given general resource list,
// safe to iterate after releasing the lock.
func (c *Cache) Resources(kind GeneralResourceKind) []wlsurface.Resource {
	raw := c.general[kind].Snapshot()
	out := make([]wlsurface.Resource, len(raw))
	for i, v := range raw {
		out[i] = v.(wlsurface.Resource)
	}
	return out
}

// Close finalizes the cache. Matching noia_wayland_cache_finalize, a
// non-empty general-resource list at shutdown is the principal leak
// signal and is logged rather than silently dropped.
func (c *Cache) Close() {
	for kind, list := range c.general {
		if n := list.Len(); n > 0 {
			logging.Warn("wlcache: %d resources of kind %d still registered at shutdown", n, kind)
		}
	}
}
