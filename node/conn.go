package node

// Conn is one accepted client connection as seen by the multiplexer.
// None of its methods block.
type Conn interface {
	// Available returns the number of bytes that can be read without blocking.
	Available() int

	// ReadByte reads a single byte. Call it only when Available reports data.
	ReadByte() (byte, error)

	// WriteByte writes a single control byte back to the peer.
	WriteByte(c byte) error

	// Connected reports false once the peer has closed the connection
	// or it has been closed locally.
	Connected() bool

	// Close closes the connection.
	Close() error

	Fd() int
	Ip() string
}

// Acceptor hands out pending inbound connections.
type Acceptor interface {
	// Accept returns the next pending connection, or nil when none is pending.
	Accept() (Conn, error)

	Close() error
}
