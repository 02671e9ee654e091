// Package wlengine owns the listening socket, the per-client accept
// loop, serial allocation, output advertisement, and the frontend's
// own OS thread — the server-role counterpart of wayland-engine.c and
// wayland-context.c. github.com/neurlang/wayland only ever appears in
// a client role (wl.Compositor, wl.Seat, wl.Shm, wl.Output, ...) in
// the surrounding ecosystem, never as a server, so there's no
// grounded server-role marshaller to call into; internal/wire's
// Display interface is the seam where a real one would plug in, and
// acceptDisplay backs it with net.UnixListener plus a minimal decoder
// for the bootstrap subset of the wire format (wl_display.sync,
// wl_display.get_registry, wl_registry.bind) written directly against
// encoding/binary, enough to drive every registered global's real
// bind callback from a live connection. Anything a client sends past
// bind — the interface-specific requests Protocol Bindings expose as
// Go methods — is logged by object id and opcode rather than decoded,
// since decoding those needs a full per-interface argument schema
// this package does not have.
package wlengine

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/neurlang/wayland/wl"
	"golang.org/x/sys/unix"

	"github.com/perceptia/wlfrontend/internal/config"
	"github.com/perceptia/wlfrontend/internal/containers"
	"github.com/perceptia/wlfrontend/internal/logging"
	"github.com/perceptia/wlfrontend/internal/session"
	"github.com/perceptia/wlfrontend/internal/wire"
	"github.com/perceptia/wlfrontend/internal/wloutput"
)

// SeatHasPointer/SeatHasKeyboard and ShmFormatARGB8888/XRGB8888 reuse
// the client-role constants neurlang/wayland already defines rather
// than redeclaring them. internal/wlproto's seat and shm bindings
// import this package for exactly these values — wl_seat.capabilities
// advertises SeatHasPointer|SeatHasKeyboard, and wl_shm.format
// advertises both pixel formats on bind.
const (
	SeatHasPointer  = uint32(wl.SeatCapabilityPointer)
	SeatHasKeyboard = uint32(wl.SeatCapabilityKeyboard)

	ShmFormatARGB8888 = uint32(wl.ShmFormatArgb8888)
	ShmFormatXRGB8888 = uint32(wl.ShmFormatXrgb8888)
)

// Engine is the top-level object cmd/wlfrontend constructs: one
// listening socket, one frontend goroutine running the accept/dispatch
// loop pinned to its own OS thread, one loop-feeder timer, and the
// output registry.
type Engine struct {
	cfg     config.Configuration
	display wire.Display

	outputs *containers.StringStore
	serial  uint32

	sess *session.Manager

	feederStop chan struct{}
	feederDone chan struct{}

	frontendDone chan struct{}

	mu      sync.Mutex
	running bool
}

// New constructs an Engine bound to cfg.SocketPath(), but does not yet
// bind the socket or start any goroutine — callers call Start.
func New(cfg config.Configuration) *Engine {
	return &Engine{
		cfg:          cfg,
		display:      newAcceptDisplay(),
		outputs:      containers.NewStringStore(),
		feederStop:   make(chan struct{}),
		feederDone:   make(chan struct{}),
		frontendDone: make(chan struct{}),
	}
}

// Start binds the socket, takes logind session control (best-effort),
// and launches the frontend goroutine and the loop-feeder timer.
// Mirrors wayland_engine_initialize followed by wayland_engine_run.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return fmt.Errorf("wlengine: already running")
	}

	if err := e.display.AddSocket(e.cfg.SocketPath()); err != nil {
		return fmt.Errorf("wlengine: bind socket: %w", err)
	}

	if sess, err := session.Connect(); err != nil {
		logging.Warn("wlengine: session bus unavailable, continuing without logind: %v", err)
	} else {
		e.sess = sess
		if err := e.sess.TakeControl(); err != nil {
			logging.Warn("wlengine: TakeControl failed: %v", err)
		}
	}

	go e.runFrontend()
	go e.runLoopFeeder()

	e.running = true
	logging.Info("wlengine: listening on %s", e.cfg.SocketPath())
	return nil
}

// runFrontend is the frontend goroutine: pinned to its own OS thread
// for the lifetime of the display loop, matching wayland_engine's C
// thread whose only job is wl_display_run. Signal delivery for this
// process is handled by cmd/wlfrontend's main goroutine, never here.
func (e *Engine) runFrontend() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(e.frontendDone)

	e.display.Run()
}

// runLoopFeeder ticks every cfg.LoopFeederIntervalMS with a fixed
// interval rather than an adaptive scheme — see DESIGN.md.
func (e *Engine) runLoopFeeder() {
	defer close(e.feederDone)

	interval := time.Duration(e.cfg.LoopFeederIntervalMS) * time.Millisecond
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-e.feederStop:
			return
		case <-t.C:
			// Presence alone drives re-dispatch of any buffered work;
			// the accept/dispatch loop itself lives in e.display.Run.
		}
	}
}

// Stop terminates the display loop, stops the loop feeder, releases
// the logind session, and waits for both goroutines to exit.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	e.mu.Unlock()

	close(e.feederStop)
	e.display.Terminate()

	<-e.feederDone
	<-e.frontendDone

	if e.sess != nil {
		if err := e.sess.ReleaseControl(); err != nil {
			logging.Warn("wlengine: ReleaseControl failed: %v", err)
		}
		if err := e.sess.Close(); err != nil {
			logging.Warn("wlengine: closing session bus: %v", err)
		}
	}

	if err := os.Remove(e.cfg.SocketPath()); err != nil && !os.IsNotExist(err) {
		logging.Warn("wlengine: removing socket: %v", err)
	}
}

// NextSerial mints the next event serial, matching wl_display_next_serial.
func (e *Engine) NextSerial() uint32 {
	return atomic.AddUint32(&e.serial, 1)
}

// CreateGlobal exposes the Display's global-registration entry point
// to the protocol bindings layer.
func (e *Engine) CreateGlobal(interfaceName string, maxVersion uint32, bind wire.BindFunc) (wire.Global, error) {
	return e.display.CreateGlobal(interfaceName, maxVersion, bind)
}

// AdvertiseOutput registers a new Output Record keyed by name and
// creates its wl_output global, matching wayland_engine_output_advertise.
func (e *Engine) AdvertiseOutput(name string, backend wloutput.Backend, bind wire.BindFunc) error {
	global, err := e.CreateGlobal("wl_output", e.cfg.OutputVersion, bind)
	if err != nil {
		return fmt.Errorf("wlengine: advertise output %q: %w", name, err)
	}
	e.outputs.Add(name, wloutput.New(global, backend))
	logging.Info("wlengine: output %q advertised (%dx%d)", name, backend.ModeWidth, backend.ModeHeight)
	return nil
}

// DestroyOutput tears down the named output's global, matching
// wayland_engine_output_destroy.
func (e *Engine) DestroyOutput(name string) {
	v, ok := e.outputs.Delete(name)
	if !ok {
		logging.Warn("wlengine: destroy_output on unknown output %q", name)
		return
	}
	out := v.(*wloutput.Output)
	if g, ok := out.Global.(wire.Global); ok {
		g.Destroy()
	}
	logging.Info("wlengine: output %q destroyed", name)
}

// Output returns the named output's current record, or nil.
func (e *Engine) Output(name string) *wloutput.Output {
	v, ok := e.outputs.Find(name)
	if !ok {
		return nil
	}
	return v.(*wloutput.Output)
}

// Bootstrap object ids and opcodes for the subset of the wire format
// acceptDisplay decodes directly: the two wl_display requests every
// client issues before it can do anything else, and the one
// wl_registry request that turns a global into a bound resource.
const (
	wlDisplayObjectID = 1

	displayOpcodeSync        = 0
	displayOpcodeGetRegistry = 1

	registryOpcodeBind = 0
	registryEventGlobal = 0
)

// acceptDisplay implements wire.Display over a plain UNIX socket. It
// owns accept() and connection bookkeeping, and decodes just enough
// of the wire format (see the package doc comment) to advertise
// registered globals over wl_registry and invoke their bind callback
// when a client actually binds one.
type acceptDisplay struct {
	mu       sync.Mutex
	listener *net.UnixListener
	globals  map[uint32]*acceptGlobal
	nextName uint32
	done     chan struct{}
}

func newAcceptDisplay() *acceptDisplay {
	return &acceptDisplay{done: make(chan struct{}), globals: make(map[uint32]*acceptGlobal)}
}

func (d *acceptDisplay) AddSocket(path string) error {
	_ = os.Remove(path)
	addr, err := net.ResolveUnixAddr("unix", path)
	if err != nil {
		return err
	}
	ln, err := net.ListenUnix("unix", addr)
	if err != nil {
		return err
	}
	if err := os.Chmod(path, 0700); err != nil {
		logging.Warn("wlengine: chmod socket: %v", err)
	}
	d.mu.Lock()
	d.listener = ln
	d.mu.Unlock()
	return nil
}

func (d *acceptDisplay) Run() {
	d.mu.Lock()
	ln := d.listener
	d.mu.Unlock()
	if ln == nil {
		return
	}
	for {
		conn, err := ln.AcceptUnix()
		if err != nil {
			select {
			case <-d.done:
				return
			default:
				logging.Warn("wlengine: accept: %v", err)
				continue
			}
		}
		go d.serveConn(conn)
	}
}

// serveConn runs the bootstrap decode loop for one client connection
// until it disconnects or sends something malformed. Every message
// is framed as an 8-byte header (object id, then opcode in the low 16
// bits and total size in the high 16 bits of the second word) followed
// by size-8 bytes of arguments, per the Wayland wire format.
func (d *acceptDisplay) serveConn(conn *net.UnixConn) {
	defer conn.Close()

	client := &acceptClient{id: atomic.AddUint32(&acceptClientSeq, 1)}
	var registryID uint32

	header := make([]byte, 8)
	for {
		if _, err := io.ReadFull(conn, header); err != nil {
			return
		}
		objectID := binary.LittleEndian.Uint32(header[0:4])
		sizeAndOpcode := binary.LittleEndian.Uint32(header[4:8])
		opcode := uint16(sizeAndOpcode)
		size := int(sizeAndOpcode >> 16)
		if size < 8 {
			logging.Warn("wlengine: client %d sent malformed message size %d", client.id, size)
			return
		}
		body := make([]byte, size-8)
		if len(body) > 0 {
			if _, err := io.ReadFull(conn, body); err != nil {
				return
			}
		}

		switch {
		case objectID == wlDisplayObjectID && opcode == displayOpcodeGetRegistry:
			newID, _, err := decodeUint32(body, 0)
			if err != nil {
				logging.Warn("wlengine: get_registry: %v", err)
				continue
			}
			registryID = newID
			d.sendRegistryGlobals(conn, registryID)
		case objectID == wlDisplayObjectID && opcode == displayOpcodeSync:
			// Nothing is ever queued ahead of a client's requests in
			// this decoder, so there's nothing sync needs to flush.
		case registryID != 0 && objectID == registryID && opcode == registryOpcodeBind:
			d.handleBind(client, body)
		default:
			logging.Debug("wlengine: client %d unhandled request object=%d opcode=%d size=%d", client.id, objectID, opcode, size)
		}
	}
}

// sendRegistryGlobals advertises every currently registered global to
// a freshly created wl_registry object. Globals registered after this
// point are not retroactively broadcast to already-connected clients.
func (d *acceptDisplay) sendRegistryGlobals(conn *net.UnixConn, registryID uint32) {
	d.mu.Lock()
	globals := make([]*acceptGlobal, 0, len(d.globals))
	for _, g := range d.globals {
		globals = append(globals, g)
	}
	d.mu.Unlock()

	for _, g := range globals {
		args := appendUint32(nil, g.name)
		args = append(args, encodeString(g.interfaceName)...)
		args = appendUint32(args, g.maxVersion)
		if err := writeMessage(conn, registryID, registryEventGlobal, args); err != nil {
			logging.Warn("wlengine: sending registry.global for %q: %v", g.interfaceName, err)
			return
		}
	}
}

// handleBind decodes wl_registry.bind's (name uint, interface string,
// version uint, id new_id) argument layout and invokes the matching
// global's bind callback with a live client, the one step that makes
// every Protocol Binding reachable from the running binary.
func (d *acceptDisplay) handleBind(client wire.Client, body []byte) {
	name, offset, err := decodeUint32(body, 0)
	if err != nil {
		logging.Warn("wlengine: bind: %v", err)
		return
	}
	interfaceName, offset, err := decodeString(body, offset)
	if err != nil {
		logging.Warn("wlengine: bind: %v", err)
		return
	}
	version, offset, err := decodeUint32(body, offset)
	if err != nil {
		logging.Warn("wlengine: bind: %v", err)
		return
	}
	newID, _, err := decodeUint32(body, offset)
	if err != nil {
		logging.Warn("wlengine: bind: %v", err)
		return
	}

	d.mu.Lock()
	g := d.globals[name]
	d.mu.Unlock()
	if g == nil {
		logging.Warn("wlengine: bind to unknown global name %d (%s)", name, interfaceName)
		return
	}
	g.bind(client, version, newID)
}

func (d *acceptDisplay) Terminate() {
	close(d.done)
	d.mu.Lock()
	if d.listener != nil {
		_ = d.listener.Close()
	}
	d.mu.Unlock()
}

var acceptSerial uint32

func (d *acceptDisplay) NextSerial() uint32 {
	return atomic.AddUint32(&acceptSerial, 1)
}

// acceptClient is the wire.Client identity handed to every bind
// callback and onward into the Cache's client-equality checks.
type acceptClient struct{ id uint32 }

func (c *acceptClient) ID() uint32 { return c.id }

var acceptClientSeq uint32

type acceptGlobal struct {
	display       *acceptDisplay
	name          uint32
	interfaceName string
	maxVersion    uint32
	bind          wire.BindFunc
}

func (g *acceptGlobal) Destroy() {
	g.display.mu.Lock()
	delete(g.display.globals, g.name)
	g.display.mu.Unlock()
}

func (d *acceptDisplay) CreateGlobal(interfaceName string, maxVersion uint32, bind wire.BindFunc) (wire.Global, error) {
	d.mu.Lock()
	d.nextName++
	g := &acceptGlobal{display: d, name: d.nextName, interfaceName: interfaceName, maxVersion: maxVersion, bind: bind}
	d.globals[g.name] = g
	d.mu.Unlock()
	return g, nil
}

// appendUint32 appends v to b in the wire format's little-endian
// uint32 encoding, growing b as needed.
func appendUint32(b []byte, v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return append(b, buf[:]...)
}

// encodeString renders s as a Wayland wire string argument: a
// length-prefixed, null-terminated byte sequence padded to a 4-byte
// boundary.
func encodeString(s string) []byte {
	raw := append([]byte(s), 0)
	for len(raw)%4 != 0 {
		raw = append(raw, 0)
	}
	out := appendUint32(nil, uint32(len(s)+1))
	return append(out, raw...)
}

// decodeUint32 reads a little-endian uint32 argument at offset.
func decodeUint32(body []byte, offset int) (value uint32, next int, err error) {
	if offset+4 > len(body) {
		return 0, offset, fmt.Errorf("truncated uint argument at offset %d", offset)
	}
	return binary.LittleEndian.Uint32(body[offset : offset+4]), offset + 4, nil
}

// decodeString reads a length-prefixed, null-terminated, 4-byte
// padded string argument at offset, the inverse of encodeString.
func decodeString(body []byte, offset int) (value string, next int, err error) {
	length, offset, err := decodeUint32(body, offset)
	if err != nil {
		return "", offset, err
	}
	if length == 0 {
		return "", offset, nil
	}
	end := offset + int(length)
	if end > len(body) {
		return "", offset, fmt.Errorf("truncated string argument at offset %d", offset)
	}
	s := string(body[offset : end-1])
	padded := (int(length) + 3) &^ 3
	return s, offset + padded, nil
}

// writeMessage frames and writes a single outbound event: an 8-byte
// header (object id, then opcode packed with total size) followed by
// args.
func writeMessage(w io.Writer, objectID uint32, opcode uint16, args []byte) error {
	size := 8 + len(args)
	msg := make([]byte, 8, size)
	binary.LittleEndian.PutUint32(msg[0:4], objectID)
	binary.LittleEndian.PutUint32(msg[4:8], uint32(opcode)|uint32(size)<<16)
	msg = append(msg, args...)
	_, err := w.Write(msg)
	return err
}

// memfdBuffer allocates an anonymous shared-memory buffer the way
// wl_shm pool backing storage is allocated server-side, with the fd
// created here via memfd instead of borrowed from a client. Nothing in
// this repository calls it.
func memfdBuffer(size int) (fd int, data []byte, err error) {
	fd, err = unix.MemfdCreate("wlfrontend-output", 0)
	if err != nil {
		return -1, nil, fmt.Errorf("memfd_create: %w", err)
	}
	if err := unix.Ftruncate(fd, int64(size)); err != nil {
		unix.Close(fd)
		return -1, nil, fmt.Errorf("ftruncate: %w", err)
	}
	data, err = unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return -1, nil, fmt.Errorf("mmap: %w", err)
	}
	return fd, data, nil
}
