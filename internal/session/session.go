// Package session registers this frontend's session with
// systemd-logind over D-Bus, the way a real Wayland compositor
// coordinates VT/session ownership.
package session

import (
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/perceptia/wlfrontend/internal/logging"
)

const (
	login1Dest = "org.freedesktop.login1"
	login1Path = "/org/freedesktop/login1/session/self"
)

// Manager owns the D-Bus connection used to take and release control
// of the current login session.
type Manager struct {
	conn *dbus.Conn
}

// Connect dials the session bus. A failure here is non-fatal to the
// frontend — logind integration is best-effort — so callers log and
// continue rather than aborting Engine startup.
func Connect() (*Manager, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("session: connect session bus: %w", err)
	}
	return &Manager{conn: conn}, nil
}

// TakeControl calls login1's Session.TakeControl, asking logind to
// let this process own VT switching and session-active state for the
// lifetime of the Engine.
func (m *Manager) TakeControl() error {
	obj := m.conn.Object(login1Dest, dbus.ObjectPath(login1Path))
	call := obj.Call("org.freedesktop.login1.Session.TakeControl", 0, false)
	if call.Err != nil {
		logging.Warn("session: TakeControl failed: %v", call.Err)
		return call.Err
	}
	return nil
}

// ReleaseControl gives the session back to logind, called from
// Engine.Stop.
func (m *Manager) ReleaseControl() error {
	obj := m.conn.Object(login1Dest, dbus.ObjectPath(login1Path))
	call := obj.Call("org.freedesktop.login1.Session.ReleaseControl", 0)
	if call.Err != nil {
		logging.Warn("session: ReleaseControl failed: %v", call.Err)
		return call.Err
	}
	return nil
}

func (m *Manager) Close() error {
	return m.conn.Close()
}
