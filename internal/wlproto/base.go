// Package wlproto holds the Protocol Bindings: one module per Wayland
// interface, each translating client requests into Facade calls and
// each resource type translating Gateway events into protocol sends.
//
// Actual wire marshalling for Send* methods is the one piece left to
// the wire library's server-role API, which the retrieval pack never
// exercises (see internal/wlengine's package doc). Each Send* method
// here logs at debug level in place of that call, so every protocol
// path is wired and exercised by tests end-to-end except the final
// byte-level encode.
package wlproto

import (
	"github.com/perceptia/wlfrontend/internal/logging"
	"github.com/perceptia/wlfrontend/internal/wire"
)

// resourceBase is embedded by every resource type in this package: the
// minimum identity (client, object id, negotiated version) needed to
// satisfy wlsurface.Resource and to flow through Cache slots and
// lists without committing callers to a concrete wire-library type.
type resourceBase struct {
	client  wire.Client
	id      uint32
	version uint32
}

func (r *resourceBase) Client() interface{} { return r.client }
func (r *resourceBase) Version() uint32     { return r.version }

func sendLog(iface, event string, id uint32, args ...interface{}) {
	logging.Debug("wlproto: %s@%d.%s %v", iface, id, event, args)
}
