// Package wire defines the seam between this frontend's protocol core
// and the Wayland wire-marshalling library, an external collaborator
// this repository does not reimplement. This package is that
// collaborator's contract as seen from the Engine and Protocol
// Bindings, small enough to fake in tests without a live socket.
package wire

// Client identifies one connected peer. Two Client values compare
// equal iff they refer to the same connection.
type Client interface {
	ID() uint32
}

// Global is a well-known object advertised through the registry; a
// client binds it to receive a Resource of the matching interface.
type Global interface {
	Destroy()
}

// BindFunc is invoked once per client bind of a Global, with the
// client-requested version and the new object's id.
type BindFunc func(client Client, version uint32, objectID uint32)

// Display owns the listening socket, the event loop, and serial
// allocation for one frontend instance.
type Display interface {
	AddSocket(path string) error
	Run()
	Terminate()
	NextSerial() uint32
	CreateGlobal(interfaceName string, maxVersion uint32, bind BindFunc) (Global, error)
}
