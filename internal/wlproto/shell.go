package wlproto

import (
	"github.com/perceptia/wlfrontend/internal/containers"
	"github.com/perceptia/wlfrontend/internal/wire"
	"github.com/perceptia/wlfrontend/internal/wlfacade"
	"github.com/perceptia/wlfrontend/internal/wlsurface"
)

// Shell is the wl_shell global's bind-time resource.
type Shell struct {
	resourceBase
	facade *wlfacade.Facade
}

func BindShell(facade *wlfacade.Facade) wire.BindFunc {
	return func(client wire.Client, version, objectID uint32) {
		_ = &Shell{resourceBase: resourceBase{client: client, id: objectID, version: version}, facade: facade}
	}
}

// GetShellSurface handles wl_shell.get_shell_surface.
func (sh *Shell) GetShellSurface(newID uint32, surface *Surface) *ShellSurface {
	ss := &ShellSurface{resourceBase: resourceBase{client: sh.client, id: newID, version: sh.version}, facade: sh.facade, sid: surface.sid}
	sh.facade.AddShellSurface(surface.sid, wlsurface.KindShellSurface, ss)
	return ss
}

// ShellSurface is the wl_shell_surface resource.
type ShellSurface struct {
	resourceBase
	facade *wlfacade.Facade
	sid    containers.ID
}

// AckConfigure handles wl_shell_surface's implicit ack (via
// set_state-style requests); accepted but not yet enforced as a
// throttle on further configure events.
func (ss *ShellSurface) AckConfigure(serial uint32) {}

func (ss *ShellSurface) SendConfigure(edges uint32, width, height int32) {
	sendLog("wl_shell_surface", "configure", ss.id, edges, width, height)
}

// XDGShell is the xdg_shell global's bind-time resource (unstable
// v5-era surface set only).
type XDGShell struct {
	resourceBase
	facade *wlfacade.Facade
}

func BindXDGShell(facade *wlfacade.Facade) wire.BindFunc {
	return func(client wire.Client, version, objectID uint32) {
		_ = &XDGShell{resourceBase: resourceBase{client: client, id: objectID, version: version}, facade: facade}
	}
}

// GetXDGSurface handles xdg_shell.get_xdg_surface.
func (xs *XDGShell) GetXDGSurface(newID uint32, surface *Surface) *XDGSurface {
	s := &XDGSurface{resourceBase: resourceBase{client: xs.client, id: newID, version: xs.version}, facade: xs.facade, sid: surface.sid}
	xs.facade.AddShellSurface(surface.sid, wlsurface.KindXDGShellSurface, s)
	return s
}

// XDGSurface is the xdg_surface resource.
type XDGSurface struct {
	resourceBase
	facade *wlfacade.Facade
	sid    containers.ID
}

// AckConfigure handles xdg_surface.ack_configure; accepted but not
// enforced, same as ShellSurface.AckConfigure.
func (xs *XDGSurface) AckConfigure(serial uint32) {}

func (xs *XDGSurface) SendConfigure(width, height int32, states []uint32, serial uint32) {
	sendLog("xdg_surface", "configure", xs.id, width, height, states, serial)
}
